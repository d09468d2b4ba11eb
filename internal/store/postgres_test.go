package store

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockPostgres(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresWithPool(mock), mock
}

func TestPostgres_SaveSnapshot(t *testing.T) {
	s, mock := newMockPostgres(t)

	mock.ExpectExec("INSERT INTO snapshots").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), 2).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCopyFrom(pgx.Identifier{"snapshot_rows"}, []string{"snapshot_id", "row_index", "payload"}).
		WillReturnResult(2)

	saved, err := s.SaveSnapshot(context.Background(), sampleRows())
	require.NoError(t, err)
	assert.Equal(t, 2, saved.RowCount)
	assert.NotEmpty(t, saved.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_LatestSnapshot(t *testing.T) {
	s, mock := newMockPostgres(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT id, fetched_at, row_count FROM snapshots").
		WillReturnRows(
			pgxmock.NewRows([]string{"id", "fetched_at", "row_count"}).
				AddRow("snap-1", now, 1),
		)
	mock.ExpectQuery("SELECT payload FROM snapshot_rows").
		WithArgs("snap-1").
		WillReturnRows(
			pgxmock.NewRows([]string{"payload"}).
				AddRow([]byte(`{"Journey Id":"J-1"}`)),
		)

	got, err := s.LatestSnapshot(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "snap-1", got.ID)
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "J-1", got.Rows[0]["Journey Id"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_LatestSnapshotEmpty(t *testing.T) {
	s, mock := newMockPostgres(t)

	mock.ExpectQuery("SELECT id, fetched_at, row_count FROM snapshots").
		WillReturnError(pgx.ErrNoRows)

	got, err := s.LatestSnapshot(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPostgres_ListSnapshots(t *testing.T) {
	s, mock := newMockPostgres(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT id, fetched_at, row_count FROM snapshots").
		WithArgs(5).
		WillReturnRows(
			pgxmock.NewRows([]string{"id", "fetched_at", "row_count"}).
				AddRow("snap-2", now, 3).
				AddRow("snap-1", now.Add(-time.Hour), 2),
		)

	list, err := s.ListSnapshots(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "snap-2", list[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
