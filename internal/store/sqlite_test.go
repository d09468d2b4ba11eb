package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/freight-audit/internal/normalize"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleRows() []normalize.RawRow {
	return []normalize.RawRow{
		{"Journey Id": "J-1", "Branch Name": "Burdwan Depot", "Diff In Lead (KM)": "-15"},
		{"Journey Id": "J-2", "Branch Name": "Asansol Hub", "Diff In Lead (KM)": "10"},
	}
}

func TestSQLite_SaveAndLatest(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	saved, err := s.SaveSnapshot(ctx, sampleRows())
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, 2, saved.RowCount)

	got, err := s.LatestSnapshot(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, saved.ID, got.ID)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, "J-1", got.Rows[0]["Journey Id"])
}

func TestSQLite_LatestEmpty(t *testing.T) {
	s := newTestSQLite(t)

	got, err := s.LatestSnapshot(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLite_LatestPicksNewest(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	_, err := s.SaveSnapshot(ctx, sampleRows()[:1])
	require.NoError(t, err)
	second, err := s.SaveSnapshot(ctx, sampleRows())
	require.NoError(t, err)

	got, err := s.LatestSnapshot(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, second.ID, got.ID)
}

func TestSQLite_ListSnapshots(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	_, err := s.SaveSnapshot(ctx, sampleRows())
	require.NoError(t, err)
	_, err = s.SaveSnapshot(ctx, sampleRows()[:1])
	require.NoError(t, err)

	list, err := s.ListSnapshots(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Nil(t, list[0].Rows, "listing returns metadata only")
}

func TestSQLite_SaveEmptyBatch(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	saved, err := s.SaveSnapshot(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, saved.RowCount)

	got, err := s.LatestSnapshot(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.Rows)
}
