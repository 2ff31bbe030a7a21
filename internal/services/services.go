// package services defines interface Service for interacting with the movie tracker backend
package services

import (
	"context"
	"io"

	"github.com/cr1stiaaana/movie-ai-suggestor/internal/models"
)

// Service defines the interface for a movie tracker backend that can search,
// commit, import, recommend, and list movies.
type Service interface {
	// SearchMovies searches the backend for candidate matches by title and
	// optional year (0 means no year filter). The returned slice preserves the
	// backend's ranking and may be empty.
	SearchMovies(ctx context.Context, title string, year int) ([]models.Candidate, error)

	// AddMovie commits a candidate to the collection with a rating and optional
	// watch date. An empty watchDate is transmitted as JSON null, not omitted.
	AddMovie(ctx context.Context, tmdbID int, rating float64, watchDate string) (*models.AddResult, error)

	// UploadCSV uploads a CSV export for server-side import. The file content is
	// read from r and sent as multipart form data under the "file" field.
	UploadCSV(ctx context.Context, filename string, r io.Reader) (*models.ImportResult, error)

	// Recommendations requests a freshly scored recommendation set.
	Recommendations(ctx context.Context) (*models.RecommendationSet, error)

	// Movies fetches the current collection snapshot.
	Movies(ctx context.Context) (*models.Collection, error)

	// MovieDetail fetches the full record for a single movie. Results are never
	// cached; each call performs a fresh exchange.
	MovieDetail(ctx context.Context, tmdbID int) (*models.MovieDetail, error)

	// Name returns the name of the service (e.g., "Movie Tracker")
	Name() string
}
