package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/freight-audit/internal/normalize"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS snapshots (
	id         TEXT PRIMARY KEY,
	fetched_at TIMESTAMP NOT NULL,
	row_count  INTEGER NOT NULL,
	rows       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_fetched_at ON snapshots(fetched_at DESC);
`

// Migrate creates the snapshot schema if it does not exist.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteMigration); err != nil {
		return eris.Wrap(err, "sqlite: migrate")
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveSnapshot stores one fetched batch of raw rows as JSON.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, rows []normalize.RawRow) (*Snapshot, error) {
	payload, err := json.Marshal(rows)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal rows")
	}

	snap := &Snapshot{
		ID:        uuid.NewString(),
		FetchedAt: time.Now().UTC(),
		RowCount:  len(rows),
		Rows:      rows,
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots (id, fetched_at, row_count, rows) VALUES (?, ?, ?, ?)`,
		snap.ID, snap.FetchedAt, snap.RowCount, string(payload),
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert snapshot")
	}

	return snap, nil
}

// LatestSnapshot returns the newest snapshot with rows, or nil when the
// store is empty.
func (s *SQLiteStore) LatestSnapshot(ctx context.Context) (*Snapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, fetched_at, row_count, rows FROM snapshots ORDER BY fetched_at DESC LIMIT 1`,
	)

	var snap Snapshot
	var payload string
	err := row.Scan(&snap.ID, &snap.FetchedAt, &snap.RowCount, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan snapshot")
	}

	if err := json.Unmarshal([]byte(payload), &snap.Rows); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal rows")
	}
	return &snap, nil
}

// ListSnapshots returns snapshot metadata, newest first.
func (s *SQLiteStore) ListSnapshots(ctx context.Context, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, fetched_at, row_count FROM snapshots ORDER BY fetched_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list snapshots")
	}
	defer rows.Close() //nolint:errcheck

	var out []Snapshot
	for rows.Next() {
		var snap Snapshot
		if err := rows.Scan(&snap.ID, &snap.FetchedAt, &snap.RowCount); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan snapshot row")
		}
		out = append(out, snap)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate snapshots")
}
