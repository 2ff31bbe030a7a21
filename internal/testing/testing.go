// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/cr1stiaaana/movie-ai-suggestor/internal/models"
)

// MockService is a configurable test double for [services.Service]
type MockService struct {
	SearchResults   []models.Candidate
	SearchErr       error
	SearchCalls     int
	AddResult       *models.AddResult
	AddErr          error
	AddCalls        int
	ImportResult    *models.ImportResult
	ImportErr       error
	Collection      *models.Collection
	CollectionErr   error
	CollectionCalls int
	RecSet          *models.RecommendationSet
	RecErr          error
	Detail          *models.MovieDetail
	DetailErr       error
	DetailCalls     int
}

func (m *MockService) SearchMovies(ctx context.Context, title string, year int) ([]models.Candidate, error) {
	m.SearchCalls++
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	if m.SearchResults == nil {
		return []models.Candidate{}, nil
	}
	return m.SearchResults, nil
}

func (m *MockService) AddMovie(ctx context.Context, tmdbID int, rating float64, watchDate string) (*models.AddResult, error) {
	m.AddCalls++
	if m.AddErr != nil {
		return nil, m.AddErr
	}
	if m.AddResult != nil {
		return m.AddResult, nil
	}
	return &models.AddResult{Success: true, Message: "Added"}, nil
}

func (m *MockService) UploadCSV(ctx context.Context, filename string, r io.Reader) (*models.ImportResult, error) {
	if m.ImportErr != nil {
		return m.ImportResult, m.ImportErr
	}
	if m.ImportResult != nil {
		return m.ImportResult, nil
	}
	return &models.ImportResult{Success: true}, nil
}

func (m *MockService) Recommendations(ctx context.Context) (*models.RecommendationSet, error) {
	if m.RecErr != nil {
		return nil, m.RecErr
	}
	if m.RecSet != nil {
		return m.RecSet, nil
	}
	return &models.RecommendationSet{}, nil
}

func (m *MockService) Movies(ctx context.Context) (*models.Collection, error) {
	m.CollectionCalls++
	if m.CollectionErr != nil {
		return nil, m.CollectionErr
	}
	if m.Collection != nil {
		return m.Collection, nil
	}
	return &models.Collection{Movies: []models.CollectionEntry{}}, nil
}

func (m *MockService) MovieDetail(ctx context.Context, tmdbID int) (*models.MovieDetail, error) {
	m.DetailCalls++
	if m.DetailErr != nil {
		return nil, m.DetailErr
	}
	if m.Detail != nil {
		return m.Detail, nil
	}
	return &models.MovieDetail{TMDbID: tmdbID}, nil
}

func (m *MockService) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}
