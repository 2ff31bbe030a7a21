// package models defines the data model for the movie suggestor client
package models

import (
	"time"
)

// Model defines the base interface for all persistent models in the local history store.
// Implementations include WatchRecord and ImportRun.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// Candidate represents a search match from the backend, not yet committed to the collection.
type Candidate struct {
	TMDbID     int     `json:"tmdb_id"`
	Title      string  `json:"title"`
	Year       int     `json:"year,omitempty"`
	Overview   string  `json:"overview,omitempty"`
	PosterPath string  `json:"poster_path,omitempty"`
	Popularity float64 `json:"popularity,omitempty"`
}

// CollectionEntry represents a movie in the user's collection.
type CollectionEntry struct {
	TMDbID     int      `json:"tmdb_id"`
	Title      string   `json:"title"`
	Year       int      `json:"year,omitempty"`
	Genres     []string `json:"genres,omitempty"`
	Rating     *float64 `json:"rating,omitempty"`
	WatchDate  string   `json:"watch_date,omitempty"`
	PosterPath string   `json:"poster_path,omitempty"`
	Overview   string   `json:"overview,omitempty"`
}

// Collection is the backend's snapshot of the user's movies. The client replaces
// it wholesale on each refresh and never mutates it in place.
type Collection struct {
	Movies []CollectionEntry `json:"movies"`
	Count  int               `json:"count"`
}

// Recommendation represents a scored suggestion from the backend.
type Recommendation struct {
	TMDbID     int      `json:"tmdb_id"`
	Title      string   `json:"title"`
	Year       int      `json:"year,omitempty"`
	Genres     []string `json:"genres,omitempty"`
	PosterPath string   `json:"poster_path,omitempty"`
	Overview   string   `json:"overview,omitempty"`
	MatchScore float64  `json:"match_score"` // Match confidence, 0-100, opaque to the client
	Reasoning  string   `json:"reasoning"`
}

// RecommendationSet is the result of a recommendation request.
type RecommendationSet struct {
	Count           int              `json:"count"`
	Recommendations []Recommendation `json:"recommendations"`
}

// CastMember is a single cast credit in a movie detail record.
type CastMember struct {
	Name      string `json:"name"`
	Character string `json:"character,omitempty"`
}

// MovieDetail is the full per-movie record fetched on demand. Not cached;
// repeated opens re-fetch.
type MovieDetail struct {
	TMDbID       int          `json:"tmdb_id"`
	Title        string       `json:"title"`
	Year         int          `json:"year,omitempty"`
	Genres       []string     `json:"genres,omitempty"`
	Overview     string       `json:"overview,omitempty"`
	Runtime      int          `json:"runtime,omitempty"`
	Rating       float64      `json:"rating,omitempty"`
	PosterPath   string       `json:"poster_path,omitempty"`
	BackdropPath string       `json:"backdrop_path,omitempty"`
	Director     string       `json:"director,omitempty"`
	Cast         []CastMember `json:"cast,omitempty"`
}

// ImportResult is the outcome of a CSV upload.
type ImportResult struct {
	Success bool     `json:"success"`
	Count   int      `json:"count"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// AddResult is the outcome of committing a candidate to the collection.
type AddResult struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Movie   *CollectionEntry `json:"movie,omitempty"`
}
