package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cr1stiaaana/movie-ai-suggestor/internal/formatter"
	"github.com/cr1stiaaana/movie-ai-suggestor/internal/shared"
	"github.com/urfave/cli/v3"
)

// MoviesSearch searches the movie database and prints candidate matches.
func (r *Runner) MoviesSearch(ctx context.Context, cmd *cli.Command) error {
	title := cmd.StringArg("title")
	year := int(cmd.Int("year"))
	useJSON := cmd.Bool("json")

	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title argument is required", shared.ErrMissingArgument)
	}

	r.logger.Info("searching", "title", title, "year", year)

	candidates, err := r.library.SearchMovies(ctx, title, year)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if useJSON {
		return r.writeJSON(candidates, true)
	}

	if len(candidates) == 0 {
		return r.writePlain("No results found for %q\n", title)
	}

	r.writePlainHeader(fmt.Sprintf("Matches for %q", title))
	for _, c := range candidates {
		if c.Year > 0 {
			r.writePlain("%d\t%s (%d)\n", c.TMDbID, c.Title, c.Year)
		} else {
			r.writePlain("%d\t%s\n", c.TMDbID, c.Title)
		}
		if c.Overview != "" {
			r.writePlain("\t%s\n", c.Overview)
		}
	}
	r.writePlain("\nAdd one with: mvt movies add --id <tmdb_id> --rating <0-10>\n")
	return nil
}

// MoviesAdd commits a movie to the collection and journals the commit.
func (r *Runner) MoviesAdd(ctx context.Context, cmd *cli.Command) error {
	tmdbID := int(cmd.Int("id"))
	rating := cmd.Float("rating")
	watchDate := cmd.String("date")

	if !shared.ValidRating(rating) {
		return fmt.Errorf("%w: rating must be between 0 and 10 in half-point steps", shared.ErrInvalidRating)
	}

	r.logger.Info("adding movie", "tmdb_id", tmdbID, "rating", rating)

	result, err := r.library.AddMovie(ctx, tmdbID, rating, watchDate)
	if err != nil {
		return fmt.Errorf("add failed: %w", err)
	}

	if r.journal != nil {
		title := ""
		year := 0
		if result.Movie != nil {
			title = result.Movie.Title
			year = result.Movie.Year
		}
		if err := r.journal.RecordCommit(tmdbID, title, year, &rating, watchDate, "manual"); err != nil {
			r.logger.Warn("failed to journal commit", "error", err)
		}
	}

	message := result.Message
	if message == "" {
		message = "Movie added to your collection"
	}
	return r.writePlain("✓ %s\n", message)
}

// MoviesList prints the collection, optionally exporting it to csv/markdown/text.
func (r *Runner) MoviesList(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	exportFormat := cmd.String("export")
	outputPath := cmd.String("output")

	r.logger.Info("fetching collection")

	collection, err := r.library.Movies(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch collection: %w", err)
	}

	if exportFormat != "" {
		data, err := formatter.Export(collection, exportFormat)
		if err != nil {
			return err
		}
		if outputPath != "" {
			if err := os.WriteFile(outputPath, data, 0644); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			return r.writePlain("✓ Exported %s to %s\n", shared.MovieCount(collection.Count), outputPath)
		}
		_, err = r.output.Write(data)
		return err
	}

	if useJSON {
		return r.writeJSON(collection, true)
	}

	if collection.Count == 0 {
		r.writePlain("Your collection is empty.\n")
		return r.writePlain("Import a CSV export or add movies manually to get started.\n")
	}

	r.writePlainHeader(fmt.Sprintf("You have %s in your collection", shared.MovieCount(collection.Count)))
	for _, entry := range collection.Movies {
		line := entry.Title
		if entry.Year > 0 {
			line = fmt.Sprintf("%s (%d)", line, entry.Year)
		}
		if entry.Rating != nil {
			line += fmt.Sprintf("\t%.1f/10", *entry.Rating)
		}
		r.writePlain("%d\t%s\n", entry.TMDbID, line)
	}
	return nil
}

// MoviesShow prints full details for a single movie.
func (r *Runner) MoviesShow(ctx context.Context, cmd *cli.Command) error {
	tmdbID := int(cmd.IntArg("id"))
	useJSON := cmd.Bool("json")

	if tmdbID <= 0 {
		return fmt.Errorf("%w: a positive TMDb ID is required", shared.ErrInvalidArgument)
	}

	r.logger.Info("fetching details", "tmdb_id", tmdbID)

	detail, err := r.library.MovieDetail(ctx, tmdbID)
	if err != nil {
		return fmt.Errorf("failed to fetch details: %w", err)
	}

	if useJSON {
		return r.writeJSON(detail, true)
	}

	header := detail.Title
	if detail.Year > 0 {
		header = fmt.Sprintf("%s (%d)", header, detail.Year)
	}
	r.writePlainHeader(header)

	if len(detail.Genres) > 0 {
		r.writePlain("Genres: %s\n", strings.Join(detail.Genres, ", "))
	}

	rating := "N/A"
	if detail.Rating > 0 {
		rating = fmt.Sprintf("%.1f/10", detail.Rating)
	}
	r.writePlain("Runtime: %s\tRating: %s\n", shared.FormatRuntime(detail.Runtime), rating)

	if detail.Overview != "" {
		r.writePlainln("%s", detail.Overview)
	}
	if detail.Director != "" {
		r.writePlain("Director: %s\n", detail.Director)
	}
	if len(detail.Cast) > 0 {
		r.writePlain("Cast:\n")
		for _, member := range detail.Cast {
			if member.Character != "" {
				r.writePlain("  %s as %s\n", member.Name, member.Character)
			} else {
				r.writePlain("  %s\n", member.Name)
			}
		}
	}
	return nil
}
