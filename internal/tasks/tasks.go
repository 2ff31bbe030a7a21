// package tasks implements multi-step operations against the movie tracker backend.
//
// The core abstraction is AddEngine, which orchestrates bulk search-and-commit runs.
// Operations emit progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cr1stiaaana/movie-ai-suggestor/internal/models"
)

// Phase identifies the stage of a bulk add operation.
type Phase int

const (
	PhaseParse Phase = iota
	PhaseSearch
	PhaseCommit
	PhaseDone
)

// ProgressUpdate reports bulk add progress over a channel.
type ProgressUpdate struct {
	Phase   Phase
	Step    int
	Total   int
	Message string
}

// BulkEntry is one line of a bulk add file: a title with optional year and rating.
type BulkEntry struct {
	Line   int
	Title  string
	Year   int
	Rating *float64
}

// EntryResult is the outcome for a single bulk entry.
type EntryResult struct {
	Entry     BulkEntry
	Candidate *models.Candidate // Top match chosen for the commit (nil on search failure)
	Error     error
}

// BulkAddResult contains all data from a bulk add run.
type BulkAddResult struct {
	Total   int
	Added   int
	Failed  int
	Results []EntryResult
}

// Journal records successful commits to the local history store.
// Implemented by repositories.JournalAdapter; a nil Journal disables recording.
type Journal interface {
	RecordCommit(tmdbID int, title string, year int, rating *float64, watchDate, source string) error
}

// ParseBulkFile reads newline-delimited bulk entries from r.
//
// Each line is "title", "title<TAB>year", or "title<TAB>year<TAB>rating".
// Blank lines and lines starting with '#' are skipped. Malformed lines are
// returned as per-line errors alongside the entries that parsed.
func ParseBulkFile(r io.Reader) ([]BulkEntry, []error) {
	var entries []BulkEntry
	var errs []error

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Split(text, "\t")
		entry := BulkEntry{Line: line, Title: strings.TrimSpace(fields[0])}
		if entry.Title == "" {
			errs = append(errs, fmt.Errorf("line %d: empty title", line))
			continue
		}

		if len(fields) > 1 && strings.TrimSpace(fields[1]) != "" {
			year, err := strconv.Atoi(strings.TrimSpace(fields[1]))
			if err != nil {
				errs = append(errs, fmt.Errorf("line %d: invalid year %q", line, fields[1]))
				continue
			}
			entry.Year = year
		}

		if len(fields) > 2 && strings.TrimSpace(fields[2]) != "" {
			rating, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("line %d: invalid rating %q", line, fields[2]))
				continue
			}
			entry.Rating = &rating
		}

		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		errs = append(errs, fmt.Errorf("failed to read bulk file: %w", err))
	}

	return entries, errs
}
