package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/cr1stiaaana/movie-ai-suggestor/internal/shared"
	"github.com/urfave/cli/v3"
)

// Recommend fetches a scored recommendation set and prints it.
func (r *Runner) Recommend(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")

	r.logger.Info("generating recommendations")

	set, err := r.library.Recommendations(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrInsufficientData) {
			r.writePlain("Not enough rated movies to generate recommendations.\n")
			return r.writePlain("Rate at least 5 movies, then try again.\n")
		}
		return fmt.Errorf("recommendations failed: %w", err)
	}

	if useJSON {
		return r.writeJSON(set, true)
	}

	r.writePlainHeader(fmt.Sprintf("Found %d personalized recommendations for you!", set.Count))
	for _, rec := range set.Recommendations {
		line := rec.Title
		if rec.Year > 0 {
			line = fmt.Sprintf("%s (%d)", line, rec.Year)
		}
		r.writePlain("%d\t%s\tmatch %.0f%%\n", rec.TMDbID, line, rec.MatchScore)
		if rec.Reasoning != "" {
			r.writePlain("\t%s\n", rec.Reasoning)
		}
	}
	return nil
}
