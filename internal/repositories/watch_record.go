package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/cr1stiaaana/movie-ai-suggestor/internal/models"
	"github.com/cr1stiaaana/movie-ai-suggestor/internal/shared"
)

// WatchRecordRepository implements models.Repository[*models.WatchRecord] for the local watch journal.
//
// Records are appended after each successful commit to the backend. Soft deletes
// keep the journal recoverable.
type WatchRecordRepository struct {
	db *sql.DB
}

// NewWatchRecordRepository creates a new WatchRecordRepository with the given database connection
func NewWatchRecordRepository(db *sql.DB) *WatchRecordRepository {
	return &WatchRecordRepository{db: db}
}

// Create inserts a new [models.WatchRecord] into the database with generated ID and sequence
func (r *WatchRecordRepository) Create(record *models.WatchRecord) error {
	sequence, err := NextSequence(r.db, "watch_records")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	record.SetSequence(sequence)
	record.SetID(shared.GenerateID())

	if err := record.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO watch_records (id, sequence, tmdb_id, title, year, rating, watch_date, source, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var rating any
	if record.Rating() != nil {
		rating = *record.Rating()
	}

	_, err = r.db.Exec(query,
		record.ID(),
		record.Sequence(),
		record.TMDbID(),
		record.Title(),
		record.Year(),
		rating,
		record.WatchDate(),
		record.Source(),
		record.CreatedAt(),
		record.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert watch record: %w", err)
	}

	return nil
}

// Get retrieves a record by ID, excluding soft-deleted records
func (r *WatchRecordRepository) Get(id string) (*models.WatchRecord, error) {
	query := `
		SELECT id, sequence, tmdb_id, title, year, rating, watch_date, source, created_at, updated_at, deleted_at
		FROM watch_records
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByTMDbID retrieves the most recent record for a backend movie id
func (r *WatchRecordRepository) GetByTMDbID(tmdbID int) (*models.WatchRecord, error) {
	query := `
		SELECT id, sequence, tmdb_id, title, year, rating, watch_date, source, created_at, updated_at, deleted_at
		FROM watch_records
		WHERE tmdb_id = ? AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT 1
	`

	return r.scanOne(r.db.QueryRow(query, tmdbID))
}

// Update modifies an existing record in the database
func (r *WatchRecordRepository) Update(record *models.WatchRecord) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	record.SetUpdatedAt(now)

	var rating any
	if record.Rating() != nil {
		rating = *record.Rating()
	}

	query := `
		UPDATE watch_records
		SET title = ?, year = ?, rating = ?, watch_date = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		record.Title(),
		record.Year(),
		rating,
		record.WatchDate(),
		now,
		record.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update watch record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("watch record not found: %s", record.ID())
	}

	return nil
}

// Delete soft-deletes a record by setting deleted_at
func (r *WatchRecordRepository) Delete(id string) error {
	query := `UPDATE watch_records SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete watch record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("watch record not found: %s", id)
	}

	return nil
}

// List retrieves records matching the given criteria, newest first.
// Supported criteria: "source" (string), "limit" (int).
func (r *WatchRecordRepository) List(criteria map[string]any) ([]*models.WatchRecord, error) {
	query := `
		SELECT id, sequence, tmdb_id, title, year, rating, watch_date, source, created_at, updated_at, deleted_at
		FROM watch_records
		WHERE deleted_at IS NULL
	`
	args := []any{}

	if source, ok := criteria["source"].(string); ok && source != "" {
		query += " AND source = ?"
		args = append(args, source)
	}

	query += " ORDER BY created_at DESC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query watch records: %w", err)
	}
	defer rows.Close()

	var records []*models.WatchRecord
	for rows.Next() {
		record, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate watch records: %w", err)
	}

	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *WatchRecordRepository) scanOne(row *sql.Row) (*models.WatchRecord, error) {
	record, err := scanWatchRecord(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("watch record not found")
	}
	return record, err
}

func (r *WatchRecordRepository) scanRow(rows *sql.Rows) (*models.WatchRecord, error) {
	return scanWatchRecord(rows)
}

func scanWatchRecord(s rowScanner) (*models.WatchRecord, error) {
	var (
		id        string
		sequence  int
		tmdbID    int
		title     string
		year      sql.NullInt64
		rating    sql.NullFloat64
		watchDate sql.NullString
		source    string
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	if err := s.Scan(&id, &sequence, &tmdbID, &title, &year, &rating, &watchDate, &source, &createdAt, &updatedAt, &deletedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan watch record: %w", err)
	}

	var ratingPtr *float64
	if rating.Valid {
		ratingPtr = &rating.Float64
	}

	record := models.NewWatchRecord(sequence, tmdbID, title, int(year.Int64), ratingPtr, watchDate.String, source)
	record.SetID(id)
	record.SetCreatedAt(createdAt)
	record.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		record.SetDeletedAt(&deletedAt.Time)
	}

	return record, nil
}
