package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SqliteStorage implements RunStorage using SQLite.
// Thread-safe: sql.DB handles connection pooling and concurrent access.
type SqliteStorage struct {
	db *sql.DB
}

// OpenSqlite opens or creates a SQLite database at the given path.
// Creates parent directories if they don't exist.
func OpenSqlite(path string) (*SqliteStorage, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	storage := &SqliteStorage{db: db}
	if err := storage.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return storage, nil
}

// NewSqliteInMemory creates an in-memory database (useful for testing).
func NewSqliteInMemory() (*SqliteStorage, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory SQLite: %w", err)
	}

	storage := &SqliteStorage{db: db}
	if err := storage.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return storage, nil
}

// Close closes the database connection.
func (s *SqliteStorage) Close() error {
	return s.db.Close()
}

func (s *SqliteStorage) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			query TEXT NOT NULL,
			provider TEXT NOT NULL,
			model TEXT NOT NULL,
			report TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_runs_created
		ON runs(created_at DESC);

		CREATE TABLE IF NOT EXISTS findings (
			run_id TEXT NOT NULL,
			finding_index INTEGER NOT NULL,
			subtask TEXT NOT NULL,
			content TEXT NOT NULL,
			status TEXT NOT NULL,
			FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE,
			PRIMARY KEY (run_id, finding_index)
		);
	`

	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SaveRun stores a run and its findings, replacing any run with the same ID.
func (s *SqliteStorage) SaveRun(ctx context.Context, run RunRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	// Rollback is safe even after Commit() - it becomes a no-op
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO runs (run_id, query, provider, model, report, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Query, run.Provider, run.Model, run.Report, run.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	_, err = tx.ExecContext(ctx, "DELETE FROM findings WHERE run_id = ?", run.ID)
	if err != nil {
		return fmt.Errorf("failed to clear old findings: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO findings (run_id, finding_index, subtask, content, status) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	for _, f := range run.Findings {
		_, err = stmt.ExecContext(ctx, run.ID, f.Index, f.Subtask, f.Content, f.Status)
		if err != nil {
			return fmt.Errorf("failed to insert finding: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// LoadRun retrieves a run with its findings.
func (s *SqliteStorage) LoadRun(ctx context.Context, id string) (RunRecord, error) {
	var run RunRecord
	var createdAt int64
	err := s.db.QueryRowContext(ctx,
		"SELECT run_id, query, provider, model, report, created_at FROM runs WHERE run_id = ?",
		id).Scan(&run.ID, &run.Query, &run.Provider, &run.Model, &run.Report, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return RunRecord{}, ErrRunNotFound
	}
	if err != nil {
		return RunRecord{}, fmt.Errorf("failed to query run: %w", err)
	}
	run.CreatedAt = time.Unix(createdAt, 0).UTC()

	rows, err := s.db.QueryContext(ctx,
		"SELECT finding_index, subtask, content, status FROM findings WHERE run_id = ? ORDER BY finding_index ASC",
		id)
	if err != nil {
		return RunRecord{}, fmt.Errorf("failed to query findings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var f FindingRecord
		if err := rows.Scan(&f.Index, &f.Subtask, &f.Content, &f.Status); err != nil {
			return RunRecord{}, fmt.Errorf("failed to scan finding: %w", err)
		}
		run.Findings = append(run.Findings, f)
	}
	if err := rows.Err(); err != nil {
		return RunRecord{}, fmt.Errorf("error iterating findings: %w", err)
	}

	return run, nil
}

// ListRuns returns run summaries, newest first, up to limit.
func (s *SqliteStorage) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	query := "SELECT run_id, query, provider, model, created_at FROM runs ORDER BY created_at DESC"
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	summaries := []RunSummary{} // Start with empty slice, not nil
	for rows.Next() {
		var summary RunSummary
		var createdAt int64
		if err := rows.Scan(&summary.ID, &summary.Query, &summary.Provider, &summary.Model, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		summary.CreatedAt = time.Unix(createdAt, 0).UTC()
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return summaries, nil
}

// DeleteRun removes a run and its findings.
func (s *SqliteStorage) DeleteRun(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Delete findings explicitly since foreign keys are off by default.
	if _, err := tx.ExecContext(ctx, "DELETE FROM findings WHERE run_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete findings: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM runs WHERE run_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Verify SqliteStorage implements RunStorage
var _ RunStorage = (*SqliteStorage)(nil)
