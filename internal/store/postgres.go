package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/freight-audit/internal/db"
	"github.com/sells-group/freight-audit/internal/normalize"
)

// PostgresStore implements Store using pgxpool. Rows are bulk-loaded
// via COPY, one JSONB payload per sheet row.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// NewPostgresWithPool wraps an existing pool; used by tests.
func NewPostgresWithPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS snapshots (
	id         TEXT PRIMARY KEY,
	fetched_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	row_count  INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshot_rows (
	snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
	row_index   INTEGER NOT NULL,
	payload     JSONB NOT NULL,
	PRIMARY KEY (snapshot_id, row_index)
);

CREATE INDEX IF NOT EXISTS idx_snapshots_fetched_at ON snapshots(fetched_at DESC);
`

// Migrate creates the snapshot schema if it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, postgresMigration); err != nil {
		return eris.Wrap(err, "postgres: migrate")
	}
	return nil
}

// Ping verifies connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

// SaveSnapshot inserts the snapshot header and COPYs the raw rows.
func (s *PostgresStore) SaveSnapshot(ctx context.Context, rows []normalize.RawRow) (*Snapshot, error) {
	snap := &Snapshot{
		ID:        uuid.NewString(),
		FetchedAt: time.Now().UTC(),
		RowCount:  len(rows),
		Rows:      rows,
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO snapshots (id, fetched_at, row_count) VALUES ($1, $2, $3)`,
		snap.ID, snap.FetchedAt, snap.RowCount,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert snapshot")
	}

	copyRows := make([][]any, 0, len(rows))
	for i, raw := range rows {
		payload, err := json.Marshal(raw)
		if err != nil {
			return nil, eris.Wrapf(err, "postgres: marshal row %d", i)
		}
		copyRows = append(copyRows, []any{snap.ID, i, string(payload)})
	}

	if _, err := db.CopyFrom(ctx, s.pool, "snapshot_rows", []string{"snapshot_id", "row_index", "payload"}, copyRows); err != nil {
		return nil, err
	}

	return snap, nil
}

// LatestSnapshot returns the newest snapshot with rows, or nil when the
// store is empty.
func (s *PostgresStore) LatestSnapshot(ctx context.Context) (*Snapshot, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, fetched_at, row_count FROM snapshots ORDER BY fetched_at DESC LIMIT 1`,
	)

	var snap Snapshot
	err := row.Scan(&snap.ID, &snap.FetchedAt, &snap.RowCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: scan snapshot")
	}

	rows, err := s.pool.Query(ctx,
		`SELECT payload FROM snapshot_rows WHERE snapshot_id = $1 ORDER BY row_index`, snap.ID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: query snapshot rows")
	}
	defer rows.Close()

	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, eris.Wrap(err, "postgres: scan snapshot row")
		}
		var raw normalize.RawRow
		if err := json.Unmarshal(payload, &raw); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal snapshot row")
		}
		snap.Rows = append(snap.Rows, raw)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate snapshot rows")
	}

	return &snap, nil
}

// ListSnapshots returns snapshot metadata, newest first.
func (s *PostgresStore) ListSnapshots(ctx context.Context, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, fetched_at, row_count FROM snapshots ORDER BY fetched_at DESC LIMIT $1`, limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list snapshots")
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var snap Snapshot
		if err := rows.Scan(&snap.ID, &snap.FetchedAt, &snap.RowCount); err != nil {
			return nil, eris.Wrap(err, "postgres: scan snapshot row")
		}
		out = append(out, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate snapshots")
	}
	return out, nil
}
