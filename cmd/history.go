package main

import (
	"context"
	"fmt"

	"github.com/cr1stiaaana/movie-ai-suggestor/internal/repositories"
	"github.com/cr1stiaaana/movie-ai-suggestor/internal/shared"
	"github.com/urfave/cli/v3"
)

// openHistoryRepos opens the configured database and returns both journal repositories.
// The caller owns the returned close function.
func (r *Runner) openHistoryRepos() (*repositories.WatchRecordRepository, *repositories.ImportRunRepository, func(), error) {
	db, err := shared.NewDatabase(r.config.Database)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	return repositories.NewWatchRecordRepository(db),
		repositories.NewImportRunRepository(db),
		func() { db.Close() },
		nil
}

// HistoryList prints journaled watch records, newest first.
func (r *Runner) HistoryList(ctx context.Context, cmd *cli.Command) error {
	source := cmd.String("source")
	limit := int(cmd.Int("limit"))
	useJSON := cmd.Bool("json")

	records, _, closeDB, err := r.openHistoryRepos()
	if err != nil {
		return err
	}
	defer closeDB()

	criteria := map[string]any{"limit": limit}
	if source != "" {
		if source != "manual" && source != "bulk" {
			return fmt.Errorf("%w: source must be manual or bulk", shared.ErrInvalidArgument)
		}
		criteria["source"] = source
	}

	list, err := records.List(criteria)
	if err != nil {
		return fmt.Errorf("failed to list watch records: %w", err)
	}

	if useJSON {
		out := make([]map[string]any, 0, len(list))
		for _, rec := range list {
			entry := map[string]any{
				"id":      rec.ID(),
				"tmdb_id": rec.TMDbID(),
				"title":   rec.Title(),
				"source":  rec.Source(),
				"added":   rec.CreatedAt(),
			}
			if rec.Year() > 0 {
				entry["year"] = rec.Year()
			}
			if rec.Rating() != nil {
				entry["rating"] = *rec.Rating()
			}
			if rec.WatchDate() != "" {
				entry["watch_date"] = rec.WatchDate()
			}
			out = append(out, entry)
		}
		return r.writeJSON(out, true)
	}

	if len(list) == 0 {
		return r.writePlain("No journaled actions yet.\n")
	}

	r.writePlainHeader(fmt.Sprintf("Watch history (%d records)", len(list)))
	for _, rec := range list {
		line := rec.Title()
		if rec.Year() > 0 {
			line = fmt.Sprintf("%s (%d)", line, rec.Year())
		}
		if rec.Rating() != nil {
			line += fmt.Sprintf("\t%.1f/10", *rec.Rating())
		}
		r.writePlain("%s\t%s\t[%s]\n", rec.CreatedAt().Format("2006-01-02"), line, rec.Source())
	}
	return nil
}

// HistoryImports prints journaled CSV import runs.
func (r *Runner) HistoryImports(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")

	_, runs, closeDB, err := r.openHistoryRepos()
	if err != nil {
		return err
	}
	defer closeDB()

	list, err := runs.List(map[string]any{})
	if err != nil {
		return fmt.Errorf("failed to list import runs: %w", err)
	}

	if useJSON {
		out := make([]map[string]any, 0, len(list))
		for _, run := range list {
			out = append(out, map[string]any{
				"id":       run.ID(),
				"filename": run.Filename(),
				"imported": run.Imported(),
				"failed":   run.Failed(),
				"message":  run.Message(),
				"at":       run.CreatedAt(),
			})
		}
		return r.writeJSON(out, true)
	}

	if len(list) == 0 {
		return r.writePlain("No imports recorded yet.\n")
	}

	r.writePlainHeader(fmt.Sprintf("Import runs (%d)", len(list)))
	for _, run := range list {
		r.writePlain("%s\t%s\timported %d, failed %d\n",
			run.CreatedAt().Format("2006-01-02 15:04"), run.Filename(), run.Imported(), run.Failed())
	}
	return nil
}
