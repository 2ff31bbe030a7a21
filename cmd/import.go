package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cr1stiaaana/movie-ai-suggestor/internal/shared"
	"github.com/cr1stiaaana/movie-ai-suggestor/internal/tasks"
	"github.com/urfave/cli/v3"
)

// ImportCSV uploads a CSV export to the backend and journals the run.
func (r *Runner) ImportCSV(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")

	if path == "" {
		return fmt.Errorf("%w: path argument is required", shared.ErrMissingArgument)
	}
	if !shared.IsCSVPath(path) {
		return fmt.Errorf("%w: %s", shared.ErrNotCSV, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot read file: %w", err)
	}
	if info.Size() > r.config.Import.MaxFileSize {
		return fmt.Errorf("%w: %s exceeds %d bytes", shared.ErrFileTooLarge, path, r.config.Import.MaxFileSize)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	r.logger.Info("uploading CSV", "path", path, "size", info.Size())

	result, err := r.library.UploadCSV(ctx, path, f)
	if err != nil {
		if result != nil && result.Message != "" {
			return fmt.Errorf("import failed: %s: %w", result.Message, err)
		}
		return fmt.Errorf("import failed: %w", err)
	}

	if r.journal != nil {
		if rec, ok := r.journal.(importJournal); ok {
			if err := rec.RecordImport(path, result.Count, len(result.Errors), result.Message); err != nil {
				r.logger.Warn("failed to journal import", "error", err)
			}
		}
	}

	message := result.Message
	if message == "" {
		message = fmt.Sprintf("Imported %s", shared.MovieCount(result.Count))
	}
	r.writePlain("✓ %s\n", message)

	if len(result.Errors) > 0 {
		r.writePlainln("Some rows were skipped:")
		for _, e := range result.Errors {
			r.writePlain("  - %s\n", e)
		}
	}
	return nil
}

// importJournal is the optional import-run half of the journal.
type importJournal interface {
	RecordImport(filename string, imported, failed int, message string) error
}

// ImportBulk parses a bulk file and adds each entry through the worker engine.
func (r *Runner) ImportBulk(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")

	if path == "" {
		return fmt.Errorf("%w: path argument is required", shared.ErrMissingArgument)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	entries, parseErrs := tasks.ParseBulkFile(f)
	for _, perr := range parseErrs {
		r.logger.Warn("skipping line", "error", perr)
	}
	if len(entries) == 0 {
		return fmt.Errorf("%w: no usable entries in %s", shared.ErrInvalidInput, path)
	}

	opts := tasks.BulkAddOpts{
		NumWorkers:    int(cmd.Int("workers")),
		RateLimit:     cmd.Float("rate"),
		DefaultRating: cmd.Float("default-rating"),
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = r.config.Import.NumWorkers
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = r.config.Import.RateLimit
	}

	r.logger.Info("bulk add starting", "entries", len(entries), "workers", opts.NumWorkers)

	prog := make(chan tasks.ProgressUpdate, len(entries)*2)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range prog {
			r.writePlain("[%d/%d] %s\n", update.Step, update.Total, update.Message)
		}
	}()

	result, err := r.engine.Run(ctx, prog, entries, opts)
	close(prog)
	<-done

	if err != nil {
		return fmt.Errorf("bulk add failed: %w", err)
	}

	r.writePlainHeader("Bulk add complete")
	r.writePlain("Added: %d\tFailed: %d\tTotal: %d\n", result.Added, result.Failed, result.Total)
	for _, er := range result.Results {
		if er.Error != nil {
			r.writePlain("  line %d (%s): %v\n", er.Entry.Line, er.Entry.Title, er.Error)
		}
	}
	return nil
}
