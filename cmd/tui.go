package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cr1stiaaana/movie-ai-suggestor/internal/shared"
	"github.com/cr1stiaaana/movie-ai-suggestor/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for movie tracking.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.library == nil {
		return fmt.Errorf("%w: library service not initialized", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/mvt-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	opts := ui.ModelOpts{
		Library:     r.library,
		MaxFileSize: r.config.Import.MaxFileSize,
	}
	if recorder, ok := r.journal.(ui.Recorder); ok {
		opts.Recorder = recorder
	}

	model := ui.NewModel(ctx, opts)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
