package models

import (
	"fmt"
	"time"
)

// WatchRecord journals a movie the client committed to the collection.
// It is an append-only local activity log, not a cache of backend state.
type WatchRecord struct {
	id        string
	sequence  int
	tmdbID    int
	title     string
	year      int
	rating    *float64
	watchDate string
	source    string // "manual" or "bulk"
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewWatchRecord creates a WatchRecord for a committed movie. The id is assigned
// by the repository on Create.
func NewWatchRecord(sequence, tmdbID int, title string, year int, rating *float64, watchDate, source string) *WatchRecord {
	now := time.Now()
	return &WatchRecord{
		sequence:  sequence,
		tmdbID:    tmdbID,
		title:     title,
		year:      year,
		rating:    rating,
		watchDate: watchDate,
		source:    source,
		createdAt: now,
		updatedAt: now,
	}
}

func (w *WatchRecord) ID() string            { return w.id }
func (w *WatchRecord) Sequence() int         { return w.sequence }
func (w *WatchRecord) TMDbID() int           { return w.tmdbID }
func (w *WatchRecord) Title() string         { return w.title }
func (w *WatchRecord) Year() int             { return w.year }
func (w *WatchRecord) Rating() *float64      { return w.rating }
func (w *WatchRecord) WatchDate() string     { return w.watchDate }
func (w *WatchRecord) Source() string        { return w.source }
func (w *WatchRecord) CreatedAt() time.Time  { return w.createdAt }
func (w *WatchRecord) UpdatedAt() time.Time  { return w.updatedAt }
func (w *WatchRecord) DeletedAt() *time.Time { return w.deletedAt }

func (w *WatchRecord) SetID(id string)             { w.id = id }
func (w *WatchRecord) SetSequence(seq int)         { w.sequence = seq }
func (w *WatchRecord) SetUpdatedAt(t time.Time)    { w.updatedAt = t }
func (w *WatchRecord) SetDeletedAt(t *time.Time)   { w.deletedAt = t }
func (w *WatchRecord) SetCreatedAt(t time.Time)    { w.createdAt = t }
func (w *WatchRecord) SetWatchDate(d string)       { w.watchDate = d }
func (w *WatchRecord) SetRating(rating *float64)   { w.rating = rating }

// Validate checks the record's invariants before persistence.
func (w *WatchRecord) Validate() error {
	if w.tmdbID <= 0 {
		return fmt.Errorf("watch record requires a positive tmdb_id, got %d", w.tmdbID)
	}
	if w.title == "" {
		return fmt.Errorf("watch record requires a title")
	}
	if w.source != "manual" && w.source != "bulk" {
		return fmt.Errorf("watch record source must be 'manual' or 'bulk', got %q", w.source)
	}
	if w.rating != nil && (*w.rating < 0 || *w.rating > 10) {
		return fmt.Errorf("watch record rating must be in [0, 10], got %v", *w.rating)
	}
	return nil
}

// ImportRun journals a CSV import the client performed.
type ImportRun struct {
	id        string
	sequence  int
	filename  string
	imported  int
	failed    int
	message   string
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewImportRun creates an ImportRun for a completed upload. The id is assigned
// by the repository on Create.
func NewImportRun(sequence int, filename string, imported, failed int, message string) *ImportRun {
	now := time.Now()
	return &ImportRun{
		sequence:  sequence,
		filename:  filename,
		imported:  imported,
		failed:    failed,
		message:   message,
		createdAt: now,
		updatedAt: now,
	}
}

func (r *ImportRun) ID() string            { return r.id }
func (r *ImportRun) Sequence() int         { return r.sequence }
func (r *ImportRun) Filename() string      { return r.filename }
func (r *ImportRun) Imported() int         { return r.imported }
func (r *ImportRun) Failed() int           { return r.failed }
func (r *ImportRun) Message() string       { return r.message }
func (r *ImportRun) CreatedAt() time.Time  { return r.createdAt }
func (r *ImportRun) UpdatedAt() time.Time  { return r.updatedAt }
func (r *ImportRun) DeletedAt() *time.Time { return r.deletedAt }

func (r *ImportRun) SetID(id string)           { r.id = id }
func (r *ImportRun) SetSequence(seq int)       { r.sequence = seq }
func (r *ImportRun) SetUpdatedAt(t time.Time)  { r.updatedAt = t }
func (r *ImportRun) SetDeletedAt(t *time.Time) { r.deletedAt = t }
func (r *ImportRun) SetCreatedAt(t time.Time)  { r.createdAt = t }

// Validate checks the run's invariants before persistence.
func (r *ImportRun) Validate() error {
	if r.filename == "" {
		return fmt.Errorf("import run requires a filename")
	}
	if r.imported < 0 || r.failed < 0 {
		return fmt.Errorf("import run counts must be non-negative")
	}
	return nil
}

var (
	_ Model = (*WatchRecord)(nil)
	_ Model = (*ImportRun)(nil)
)
