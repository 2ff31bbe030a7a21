package tasks

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/cr1stiaaana/movie-ai-suggestor/internal/models"
	internaltest "github.com/cr1stiaaana/movie-ai-suggestor/internal/testing"
)

// recordingJournal captures RecordCommit calls for assertions.
type recordingJournal struct {
	mu      sync.Mutex
	commits []string
	sources []string
	err     error
}

func (j *recordingJournal) RecordCommit(tmdbID int, title string, year int, rating *float64, watchDate, source string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.err != nil {
		return j.err
	}
	j.commits = append(j.commits, title)
	j.sources = append(j.sources, source)
	return nil
}

func TestAddEngine(t *testing.T) {
	entries := []BulkEntry{
		{Line: 1, Title: "Inception", Year: 2010},
		{Line: 2, Title: "Interstellar", Year: 2014},
		{Line: 3, Title: "The Matrix", Year: 1999},
	}

	t.Run("adds every entry via top candidate", func(t *testing.T) {
		svc := &internaltest.MockService{
			SearchResults: []models.Candidate{
				{TMDbID: 27205, Title: "Inception", Year: 2010},
				{TMDbID: 64956, Title: "Inception: The Cobol Job", Year: 2010},
			},
		}
		journal := &recordingJournal{}
		engine := NewAddEngine(svc, journal)

		result, err := engine.Run(context.Background(), nil, entries, BulkAddOpts{RateLimit: 1000})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if result.Total != 3 || result.Added != 3 || result.Failed != 0 {
			t.Errorf("expected 3/3 added, got added=%d failed=%d total=%d", result.Added, result.Failed, result.Total)
		}
		if svc.SearchCalls != 3 {
			t.Errorf("expected 3 searches, got %d", svc.SearchCalls)
		}
		if svc.AddCalls != 3 {
			t.Errorf("expected 3 commits, got %d", svc.AddCalls)
		}

		if len(journal.commits) != 3 {
			t.Fatalf("expected 3 journal entries, got %d", len(journal.commits))
		}
		for _, source := range journal.sources {
			if source != "bulk" {
				t.Errorf("expected source bulk, got %s", source)
			}
		}
	})

	t.Run("reports unmatched entries as failures", func(t *testing.T) {
		svc := &internaltest.MockService{SearchResults: []models.Candidate{}}
		engine := NewAddEngine(svc, nil)

		result, err := engine.Run(context.Background(), nil, entries, BulkAddOpts{RateLimit: 1000})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if result.Added != 0 || result.Failed != 3 {
			t.Errorf("expected all entries to fail, got added=%d failed=%d", result.Added, result.Failed)
		}
		for _, er := range result.Results {
			if er.Error == nil {
				t.Errorf("expected per-entry error for %q", er.Entry.Title)
			}
		}
	})

	t.Run("search failure does not abort the run", func(t *testing.T) {
		svc := &internaltest.MockService{SearchErr: errors.New("backend down")}
		engine := NewAddEngine(svc, nil)

		result, err := engine.Run(context.Background(), nil, entries, BulkAddOpts{RateLimit: 1000})
		if err != nil {
			t.Fatalf("expected partial failures, not a run error, got %v", err)
		}
		if result.Failed != 3 {
			t.Errorf("expected 3 failures, got %d", result.Failed)
		}
	})

	t.Run("journal failure does not fail the entry", func(t *testing.T) {
		svc := &internaltest.MockService{
			SearchResults: []models.Candidate{{TMDbID: 27205, Title: "Inception", Year: 2010}},
		}
		journal := &recordingJournal{err: errors.New("disk full")}
		engine := NewAddEngine(svc, journal)

		result, err := engine.Run(context.Background(), nil, entries[:1], BulkAddOpts{RateLimit: 1000})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Added != 1 {
			t.Errorf("expected the commit to count as added, got %d", result.Added)
		}
	})

	t.Run("emits progress updates", func(t *testing.T) {
		svc := &internaltest.MockService{
			SearchResults: []models.Candidate{{TMDbID: 27205, Title: "Inception", Year: 2010}},
		}
		engine := NewAddEngine(svc, nil)

		prog := make(chan ProgressUpdate, len(entries)*3)
		result, err := engine.Run(context.Background(), prog, entries, BulkAddOpts{RateLimit: 1000})
		close(prog)

		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Added != 3 {
			t.Fatalf("expected 3 added, got %d", result.Added)
		}

		var sawDone bool
		for update := range prog {
			if update.Phase == PhaseDone {
				sawDone = true
			}
		}
		if !sawDone {
			t.Error("expected a PhaseDone progress update")
		}
	})

	t.Run("nil library is refused", func(t *testing.T) {
		engine := NewAddEngine(nil, nil)
		if _, err := engine.Run(context.Background(), nil, entries, BulkAddOpts{}); err == nil {
			t.Error("expected error for missing library service")
		}
	})

	t.Run("cancelled context stops the run", func(t *testing.T) {
		svc := &internaltest.MockService{
			SearchResults: []models.Candidate{{TMDbID: 27205, Title: "Inception", Year: 2010}},
		}
		engine := NewAddEngine(svc, nil)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result, err := engine.Run(ctx, nil, entries, BulkAddOpts{RateLimit: 1000})
		if err == nil {
			t.Error("expected context error")
		}
		if result == nil {
			t.Error("expected partial result even when cancelled")
		}
	})
}
