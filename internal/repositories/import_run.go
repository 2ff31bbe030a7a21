package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/cr1stiaaana/movie-ai-suggestor/internal/models"
	"github.com/cr1stiaaana/movie-ai-suggestor/internal/shared"
)

// ImportRunRepository implements models.Repository[*models.ImportRun] for the CSV import journal.
type ImportRunRepository struct {
	db *sql.DB
}

// NewImportRunRepository creates a new ImportRunRepository with the given database connection
func NewImportRunRepository(db *sql.DB) *ImportRunRepository {
	return &ImportRunRepository{db: db}
}

// Create inserts a new [models.ImportRun] into the database with generated ID and sequence
func (r *ImportRunRepository) Create(run *models.ImportRun) error {
	sequence, err := NextSequence(r.db, "import_runs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	run.SetSequence(sequence)
	run.SetID(shared.GenerateID())

	if err := run.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO import_runs (id, sequence, filename, imported, failed, message, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		run.ID(),
		run.Sequence(),
		run.Filename(),
		run.Imported(),
		run.Failed(),
		run.Message(),
		run.CreatedAt(),
		run.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert import run: %w", err)
	}

	return nil
}

// Get retrieves a run by ID, excluding soft-deleted runs
func (r *ImportRunRepository) Get(id string) (*models.ImportRun, error) {
	query := `
		SELECT id, sequence, filename, imported, failed, message, created_at, updated_at, deleted_at
		FROM import_runs
		WHERE id = ? AND deleted_at IS NULL
	`

	run, err := scanImportRun(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("import run not found")
	}
	return run, err
}

// Update modifies an existing run in the database
func (r *ImportRunRepository) Update(run *models.ImportRun) error {
	if err := run.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	run.SetUpdatedAt(now)

	query := `
		UPDATE import_runs
		SET filename = ?, imported = ?, failed = ?, message = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		run.Filename(),
		run.Imported(),
		run.Failed(),
		run.Message(),
		now,
		run.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update import run: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("import run not found: %s", run.ID())
	}

	return nil
}

// Delete soft-deletes a run by setting deleted_at
func (r *ImportRunRepository) Delete(id string) error {
	query := `UPDATE import_runs SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete import run: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("import run not found: %s", id)
	}

	return nil
}

// List retrieves runs matching the given criteria, newest first.
// Supported criteria: "limit" (int).
func (r *ImportRunRepository) List(criteria map[string]any) ([]*models.ImportRun, error) {
	query := `
		SELECT id, sequence, filename, imported, failed, message, created_at, updated_at, deleted_at
		FROM import_runs
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
	`
	args := []any{}

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query import runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.ImportRun
	for rows.Next() {
		run, err := scanImportRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate import runs: %w", err)
	}

	return runs, nil
}

func scanImportRun(s rowScanner) (*models.ImportRun, error) {
	var (
		id        string
		sequence  int
		filename  string
		imported  int
		failed    int
		message   sql.NullString
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	if err := s.Scan(&id, &sequence, &filename, &imported, &failed, &message, &createdAt, &updatedAt, &deletedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan import run: %w", err)
	}

	run := models.NewImportRun(sequence, filename, imported, failed, message.String)
	run.SetID(id)
	run.SetCreatedAt(createdAt)
	run.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		run.SetDeletedAt(&deletedAt.Time)
	}

	return run, nil
}
