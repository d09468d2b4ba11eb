// Package store persists fetched sheet snapshots so the dashboard can
// be rebuilt without refetching the source.
package store

import (
	"context"
	"time"

	"github.com/sells-group/freight-audit/internal/normalize"
)

// Snapshot is one fetched batch of raw sheet rows.
type Snapshot struct {
	ID        string             `json:"id"`
	FetchedAt time.Time          `json:"fetched_at"`
	RowCount  int                `json:"row_count"`
	Rows      []normalize.RawRow `json:"rows,omitempty"`
}

// Store is the snapshot persistence interface.
type Store interface {
	SaveSnapshot(ctx context.Context, rows []normalize.RawRow) (*Snapshot, error)
	// LatestSnapshot returns the newest snapshot with its rows, or nil
	// when none exists yet.
	LatestSnapshot(ctx context.Context) (*Snapshot, error)
	// ListSnapshots returns snapshot metadata (no rows), newest first.
	ListSnapshots(ctx context.Context, limit int) ([]Snapshot, error)

	Migrate(ctx context.Context) error
	Close() error
}
