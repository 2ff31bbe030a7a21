// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// moviesCommand handles collection operations against the backend
func moviesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "movies",
		Aliases: []string{"mv"},
		Usage:   "Search, add, and browse your movie collection",
		Commands: []*cli.Command{
			{
				Name:  "search",
				Usage: "Search the movie database by title",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "title",
					},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "year",
						Usage: "Release year to narrow the search",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.MoviesSearch,
			},
			{
				Name:  "add",
				Usage: "Add a movie to your collection by TMDb ID",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "id",
						Usage:    "TMDb ID of the movie to add",
						Required: true,
					},
					&cli.FloatFlag{
						Name:     "rating",
						Usage:    "Your rating, 0-10 in half points",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "date",
						Usage: "Watch date (YYYY-MM-DD)",
					},
				},
				Action: r.MoviesAdd,
			},
			{
				Name:  "list",
				Usage: "List your collection",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.StringFlag{
						Name:    "export",
						Aliases: []string{"e"},
						Usage:   "Export format (csv, markdown, text)",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write export to file instead of stdout",
					},
				},
				Action: r.MoviesList,
			},
			{
				Name:  "show",
				Usage: "Show full details for one movie",
				Arguments: []cli.Argument{
					&cli.IntArg{
						Name: "id",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.MoviesShow,
			},
		},
	}
}

// importCommand handles CSV uploads and bulk adds
func importCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Import movies into your collection",
		Commands: []*cli.Command{
			{
				Name:  "csv",
				Usage: "Upload a TV Time or Letterboxd CSV export",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Action: r.ImportCSV,
			},
			{
				Name:  "bulk",
				Usage: "Search and add movies listed in a text file",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent workers",
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Backend requests per second",
					},
					&cli.FloatFlag{
						Name:  "default-rating",
						Usage: "Rating applied to entries without one",
						Value: 5.0,
					},
				},
				Action: r.ImportBulk,
			},
		},
	}
}

// recommendCommand generates personalized recommendations
func recommendCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "recommend",
		Aliases: []string{"rec"},
		Usage:   "Generate personalized recommendations from your rated movies",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Recommend,
	}
}

// historyCommand inspects the local watch history journal
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Inspect the local journal of your own actions",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List journaled watch records",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "source",
						Usage: "Filter by source (manual or bulk)",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum records to return",
						Value: 50,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.HistoryList,
			},
			{
				Name:  "imports",
				Usage: "List journaled CSV import runs",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.HistoryImports,
			},
		},
	}
}

// setupCommand handles setup operations for the local database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive tracking.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive movie tracker",
		Action:  r.TUI,
	}
}
