package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/cr1stiaaana/movie-ai-suggestor/internal/services"
	"github.com/cr1stiaaana/movie-ai-suggestor/internal/shared"
	"golang.org/x/time/rate"
)

// BulkAddOpts contains configuration for bulk add runs.
type BulkAddOpts struct {
	NumWorkers    int     // Concurrent workers (default: 5, capped at 10)
	RateLimit     float64 // Backend requests per second (default: 5)
	DefaultRating float64 // Rating applied to entries without one (default: 5)
}

// AddEngine orchestrates multi-step add operations against the backend.
type AddEngine struct {
	library services.Service
	journal Journal
}

// NewAddEngine creates an AddEngine. journal may be nil to disable local recording.
func NewAddEngine(library services.Service, journal Journal) *AddEngine {
	return &AddEngine{library: library, journal: journal}
}

func (e *AddEngine) sendProgress(prog chan<- ProgressUpdate, update ProgressUpdate) {
	if prog == nil {
		return
	}
	select {
	case prog <- update:
	default:
	}
}

// Run searches and commits every entry, rate-limiting backend calls and collecting
// partial failures per entry instead of aborting the run.
//
// For each entry the top-ranked candidate is committed with the entry's rating
// (or opts.DefaultRating) and no watch date. Successful commits are appended to
// the journal with source "bulk".
func (e *AddEngine) Run(ctx context.Context, prog chan<- ProgressUpdate, entries []BulkEntry, opts BulkAddOpts) (*BulkAddResult, error) {
	if e.library == nil {
		return nil, fmt.Errorf("%w: library service not initialized", shared.ErrServiceUnavailable)
	}

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}
	if opts.DefaultRating <= 0 {
		opts.DefaultRating = 5.0
	}

	result := &BulkAddResult{
		Total:   len(entries),
		Results: make([]EntryResult, 0, len(entries)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan BulkEntry, len(entries))
	results := make(chan EntryResult, len(entries))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.addWorker(ctx, &wg, limiter, jobs, results, opts)
	}

	go func() {
		defer close(jobs)
		for i, entry := range entries {
			select {
			case <-ctx.Done():
				return
			case jobs <- entry:
			}
			e.sendProgress(prog, ProgressUpdate{
				Phase:   PhaseSearch,
				Step:    i + 1,
				Total:   len(entries),
				Message: fmt.Sprintf("Queued '%s'", entry.Title),
			})
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)
		if res.Error != nil {
			result.Failed++
			e.sendProgress(prog, ProgressUpdate{
				Phase:   PhaseCommit,
				Step:    completed,
				Total:   len(entries),
				Message: fmt.Sprintf("Failed '%s': %v", res.Entry.Title, res.Error),
			})
		} else {
			result.Added++
			e.sendProgress(prog, ProgressUpdate{
				Phase:   PhaseCommit,
				Step:    completed,
				Total:   len(entries),
				Message: fmt.Sprintf("Added '%s'", res.Candidate.Title),
			})
		}
	}

	e.sendProgress(prog, ProgressUpdate{
		Phase:   PhaseDone,
		Step:    len(entries),
		Total:   len(entries),
		Message: fmt.Sprintf("Added %d of %d entries", result.Added, result.Total),
	})

	if err := ctx.Err(); err != nil {
		return result, err
	}

	return result, nil
}

func (e *AddEngine) addWorker(ctx context.Context, wg *sync.WaitGroup, limiter *rate.Limiter, jobs <-chan BulkEntry, results chan<- EntryResult, opts BulkAddOpts) {
	defer wg.Done()

	for entry := range jobs {
		if err := limiter.Wait(ctx); err != nil {
			results <- EntryResult{Entry: entry, Error: err}
			continue
		}

		candidates, err := e.library.SearchMovies(ctx, entry.Title, entry.Year)
		if err != nil {
			results <- EntryResult{Entry: entry, Error: fmt.Errorf("search failed: %w", err)}
			continue
		}
		if len(candidates) == 0 {
			results <- EntryResult{Entry: entry, Error: fmt.Errorf("%w: no matches for '%s'", shared.ErrMovieNotFound, entry.Title)}
			continue
		}

		top := candidates[0]

		rating := opts.DefaultRating
		if entry.Rating != nil {
			rating = *entry.Rating
		}

		if _, err := e.library.AddMovie(ctx, top.TMDbID, rating, ""); err != nil {
			results <- EntryResult{Entry: entry, Candidate: &top, Error: fmt.Errorf("commit failed: %w", err)}
			continue
		}

		if e.journal != nil {
			if err := e.journal.RecordCommit(top.TMDbID, top.Title, top.Year, &rating, "", "bulk"); err != nil {
				// Journal writes are best effort; the backend commit already
				// succeeded and must not be reported as failed.
				results <- EntryResult{Entry: entry, Candidate: &top}
				continue
			}
		}

		results <- EntryResult{Entry: entry, Candidate: &top}
	}
}
