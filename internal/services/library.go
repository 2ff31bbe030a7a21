// Movie tracker backend [Service] implementation
//
// Communicates with the Flask tracker API mounted under /api. The backend owns
// movie matching, CSV parsing, recommendation scoring, and persistence; this
// client only shapes requests and interprets response payloads.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cr1stiaaana/movie-ai-suggestor/internal/models"
	"github.com/cr1stiaaana/movie-ai-suggestor/internal/shared"
)

// LibraryService implements the Service interface for the movie tracker backend.
type LibraryService struct {
	baseURL    string
	httpClient *http.Client
}

// NewLibraryService creates a new movie tracker service instance.
func NewLibraryService(baseURL string, client *http.Client) *LibraryService {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &LibraryService{
		baseURL:    baseURL,
		httpClient: client,
	}
}

// Name returns the service name.
func (s *LibraryService) Name() string {
	return "Movie Tracker"
}

// errorPayload is the backend's error envelope. Either field may be absent.
type errorPayload struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// text returns the most user-relevant string from the payload, or fallback when
// neither field is present.
func (p errorPayload) text(fallback string) string {
	if p.Message != "" {
		return p.Message
	}
	if p.Error != "" {
		return p.Error
	}
	return fallback
}

func (s *LibraryService) doRequest(ctx context.Context, method, endpoint string, payload, result any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp errorPayload
		json.Unmarshal(raw, &errResp)
		return s.classify(resp.StatusCode, errResp)
	}

	if result != nil {
		if err := json.Unmarshal(raw, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// classify maps a non-2xx backend response to a sentinel-wrapped error carrying
// the backend's own text when it provided any.
func (s *LibraryService) classify(status int, payload errorPayload) error {
	detail := payload.text(fmt.Sprintf("status %d", status))

	switch {
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: %s", shared.ErrMovieNotFound, detail)
	case status == http.StatusBadRequest && strings.Contains(payload.Error, "Insufficient data"):
		return fmt.Errorf("%w: %s", shared.ErrInsufficientData, detail)
	default:
		return fmt.Errorf("%w: %s", shared.ErrAPIRequest, detail)
	}
}

// SearchMovies searches for candidate matches by title and optional year.
//
// Calls POST /api/add-movie in search mode ({title, year?}). The backend
// returns ranked matches; a response without a matches field is an error.
func (s *LibraryService) SearchMovies(ctx context.Context, title string, year int) ([]models.Candidate, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", shared.ErrInvalidInput)
	}

	payload := map[string]any{"title": title}
	if year > 0 {
		payload["year"] = year
	}

	var result struct {
		Matches []models.Candidate `json:"matches"`
	}

	if err := s.doRequest(ctx, http.MethodPost, "/api/add-movie", payload, &result); err != nil {
		return nil, err
	}

	if result.Matches == nil {
		result.Matches = []models.Candidate{}
	}

	return result.Matches, nil
}

// addMovieRequest is the commit-mode body for /api/add-movie. WatchDate has no
// omitempty tag on purpose: an absent date is sent as JSON null, never omitted.
type addMovieRequest struct {
	TMDbID    int     `json:"tmdb_id"`
	Rating    float64 `json:"rating"`
	WatchDate *string `json:"watch_date"`
}

// AddMovie commits a candidate to the collection.
//
// Calls POST /api/add-movie in commit mode ({tmdb_id, rating, watch_date}).
// The rating must be in [0, 10] at half-point granularity; invalid ratings are
// rejected locally with no backend round trip.
func (s *LibraryService) AddMovie(ctx context.Context, tmdbID int, rating float64, watchDate string) (*models.AddResult, error) {
	if !shared.ValidRating(rating) {
		return nil, fmt.Errorf("%w: got %v", shared.ErrInvalidRating, rating)
	}

	payload := addMovieRequest{TMDbID: tmdbID, Rating: rating}
	if watchDate != "" {
		payload.WatchDate = &watchDate
	}

	var result models.AddResult
	if err := s.doRequest(ctx, http.MethodPost, "/api/add-movie", payload, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// UploadCSV uploads a CSV export for server-side import.
//
// Calls POST /api/upload-csv with the content as multipart form data. The
// filename must carry the .csv suffix; mismatches are rejected locally. The
// returned ImportResult is populated even on a backend-reported failure so
// callers can surface per-row errors.
func (s *LibraryService) UploadCSV(ctx context.Context, filename string, r io.Reader) (*models.ImportResult, error) {
	if !shared.IsCSVPath(filename) {
		return nil, fmt.Errorf("%w: %s", shared.ErrNotCSV, filename)
	}

	api := &APIService{baseURL: s.baseURL, httpClient: s.httpClient}
	resp, err := api.Upload(ctx, "/api/upload-csv", filename, r)
	if err != nil {
		return nil, err
	}

	var result models.ImportResult
	if resp.IsJSON {
		if err := json.Unmarshal(resp.Body, &result); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
	}

	if !resp.OK() {
		var errResp errorPayload
		json.Unmarshal(resp.Body, &errResp)
		return &result, fmt.Errorf("%w: %s", shared.ErrImportFailed, errResp.text(fmt.Sprintf("status %d", resp.StatusCode)))
	}

	return &result, nil
}

// Recommendations requests a freshly scored recommendation set.
//
// Calls GET /api/recommendations. The backend refuses with fewer than five
// rated movies; that refusal surfaces as shared.ErrInsufficientData carrying
// the backend's message.
func (s *LibraryService) Recommendations(ctx context.Context) (*models.RecommendationSet, error) {
	var result struct {
		Success         bool                    `json:"success"`
		Count           int                     `json:"count"`
		Recommendations []models.Recommendation `json:"recommendations"`
	}

	if err := s.doRequest(ctx, http.MethodGet, "/api/recommendations", nil, &result); err != nil {
		return nil, err
	}

	if !result.Success {
		return nil, fmt.Errorf("%w: backend did not confirm success", shared.ErrAPIRequest)
	}

	return &models.RecommendationSet{
		Count:           result.Count,
		Recommendations: result.Recommendations,
	}, nil
}

// Movies fetches the current collection snapshot.
//
// Calls GET /api/movies. The snapshot replaces any previously held state
// wholesale; the backend remains the source of truth.
func (s *LibraryService) Movies(ctx context.Context) (*models.Collection, error) {
	var result models.Collection
	if err := s.doRequest(ctx, http.MethodGet, "/api/movies", nil, &result); err != nil {
		return nil, err
	}

	if result.Movies == nil {
		result.Movies = []models.CollectionEntry{}
	}

	return &result, nil
}

// MovieDetail fetches the full record for a single movie.
//
// Calls GET /api/movie/{id}. No caching; repeated opens re-fetch.
func (s *LibraryService) MovieDetail(ctx context.Context, tmdbID int) (*models.MovieDetail, error) {
	var result models.MovieDetail
	endpoint := fmt.Sprintf("/api/movie/%d", tmdbID)
	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

var _ Service = (*LibraryService)(nil)
