package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"vendescli/pkg/contracts/domain"
)

//go:embed schema.sql
var schema string

// SQLiteStore implements Store on a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens or creates the database at the given path and applies the
// schema.
func Open(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("execute schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Replace implements the replace-all persistence contract: the prior
// rows for the kind are deleted and the new rows inserted in one
// transaction. A failure rolls back, so the dataset kind is never left
// empty by a partial insert.
func (s *SQLiteStore) Replace(ctx context.Context, kind domain.DatasetKind, rows RowSet) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM dataset_rows WHERE kind = ?`, string(kind)); err != nil {
		return fmt.Errorf("delete rows for %s: %w", kind, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO dataset_rows (kind, seq, payload) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range rows {
		payload, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("encode row %d for %s: %w", i, kind, err)
		}
		if _, err := stmt.ExecContext(ctx, string(kind), i, string(payload)); err != nil {
			return fmt.Errorf("insert row %d for %s: %w", i, kind, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace for %s: %w", kind, err)
	}
	return nil
}

// Rows returns all persisted rows for the kind in insertion order.
func (s *SQLiteStore) Rows(ctx context.Context, kind domain.DatasetKind) (RowSet, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM dataset_rows WHERE kind = ? ORDER BY seq`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("query rows for %s: %w", kind, err)
	}
	defer rows.Close()

	var out RowSet
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan row for %s: %w", kind, err)
		}
		record := make(map[string]interface{})
		if err := json.Unmarshal([]byte(payload), &record); err != nil {
			return nil, fmt.Errorf("decode row for %s: %w", kind, err)
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

// RecordRun stores the outcome of one import invocation.
func (s *SQLiteStore) RecordRun(ctx context.Context, result domain.ImportResult) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO import_runs (run_id, kind, rows_imported, rows_skipped, imported_at) VALUES (?, ?, ?, ?, ?)`,
		result.RunID, string(result.Kind), result.RowsImported, result.RowsSkipped,
		result.ImportedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("record import run %s: %w", result.RunID, err)
	}
	return nil
}

// LastRun returns the most recent import result for the kind.
func (s *SQLiteStore) LastRun(ctx context.Context, kind domain.DatasetKind) (*domain.ImportResult, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT run_id, rows_imported, rows_skipped, imported_at FROM import_runs
		 WHERE kind = ? ORDER BY imported_at DESC LIMIT 1`, string(kind))

	var result domain.ImportResult
	var importedAt string
	err := row.Scan(&result.RunID, &result.RowsImported, &result.RowsSkipped, &importedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query last run for %s: %w", kind, err)
	}
	result.Kind = kind
	if t, err := time.Parse(time.RFC3339, importedAt); err == nil {
		result.ImportedAt = t
	}
	return &result, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
