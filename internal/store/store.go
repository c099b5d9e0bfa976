// Package store is the persistence collaborator for imported rows. The
// core pipeline only sees the generic replace/query contract; the
// SQLite implementation keeps replace-all semantics inside a single
// transaction so a failed import never leaves a dataset kind
// half-written.
package store

import (
	"context"

	"vendescli/pkg/contracts/domain"
)

// RowSet is a sequence of plain key→value records matching the fixed
// column contract of one dataset kind.
type RowSet []map[string]interface{}

// Store persists imported rows per dataset kind.
type Store interface {
	// Replace deletes the existing rows for the kind and inserts the
	// new ones atomically.
	Replace(ctx context.Context, kind domain.DatasetKind, rows RowSet) error

	// Rows returns all persisted rows for the kind in insertion order.
	Rows(ctx context.Context, kind domain.DatasetKind) (RowSet, error)

	// RecordRun stores the outcome of one import invocation.
	RecordRun(ctx context.Context, result domain.ImportResult) error

	// LastRun returns the most recent import result for the kind, or
	// nil when the kind was never imported.
	LastRun(ctx context.Context, kind domain.DatasetKind) (*domain.ImportResult, error)

	Close() error
}
