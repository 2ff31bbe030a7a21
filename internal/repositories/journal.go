package repositories

import (
	"fmt"

	"github.com/cr1stiaaana/movie-ai-suggestor/internal/models"
)

// JournalAdapter bridges the UI and the bulk add engine to the local history
// store without either depending on database types.
type JournalAdapter struct {
	records *WatchRecordRepository
	runs    *ImportRunRepository
}

// NewJournalAdapter creates a new JournalAdapter over the given repositories.
func NewJournalAdapter(records *WatchRecordRepository, runs *ImportRunRepository) *JournalAdapter {
	return &JournalAdapter{records: records, runs: runs}
}

// RecordCommit appends a watch record for a movie committed to the backend.
func (a *JournalAdapter) RecordCommit(tmdbID int, title string, year int, rating *float64, watchDate, source string) error {
	record := models.NewWatchRecord(0, tmdbID, title, year, rating, watchDate, source)

	if err := a.records.Create(record); err != nil {
		return fmt.Errorf("failed to record commit: %w", err)
	}

	return nil
}

// RecordImport appends an import run for a completed CSV upload.
func (a *JournalAdapter) RecordImport(filename string, imported, failed int, message string) error {
	run := models.NewImportRun(0, filename, imported, failed, message)

	if err := a.runs.Create(run); err != nil {
		return fmt.Errorf("failed to record import: %w", err)
	}

	return nil
}
