package main

import (
	"context"
	"errors"
	"os"

	"github.com/cr1stiaaana/movie-ai-suggestor/internal/repositories"
	"github.com/cr1stiaaana/movie-ai-suggestor/internal/services"
	"github.com/cr1stiaaana/movie-ai-suggestor/internal/shared"
	"github.com/cr1stiaaana/movie-ai-suggestor/internal/tasks"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	library := services.NewLibraryService(config.Server.BaseURL, nil)
	apiService := services.NewAPIService(config.Server.BaseURL, nil)

	// The local history journal is optional: without a database the client
	// still works, it just stops keeping records of its own actions.
	var journal tasks.Journal
	if db, err := shared.NewDatabase(config.Database); err == nil {
		if err := shared.RunMigrations(db); err == nil {
			journal = repositories.NewJournalAdapter(
				repositories.NewWatchRecordRepository(db),
				repositories.NewImportRunRepository(db),
			)
		} else {
			logger.Warn("migrations failed, journaling disabled", "error", err)
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Library: library,
		API:     apiService,
		Journal: journal,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "mvt",
		Usage:    "Track, import, and get recommendations for your movie collection",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
