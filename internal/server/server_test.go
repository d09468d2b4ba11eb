package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/freight-audit/internal/model"
	"github.com/sells-group/freight-audit/internal/normalize"
	"github.com/sells-group/freight-audit/internal/store"
)

// stubStore serves a fixed snapshot.
type stubStore struct {
	snap *store.Snapshot
	err  error
}

func (s *stubStore) SaveSnapshot(_ context.Context, rows []normalize.RawRow) (*store.Snapshot, error) {
	return nil, eris.New("not implemented")
}

func (s *stubStore) LatestSnapshot(_ context.Context) (*store.Snapshot, error) {
	return s.snap, s.err
}

func (s *stubStore) ListSnapshots(_ context.Context, _ int) ([]store.Snapshot, error) {
	return nil, nil
}

func (s *stubStore) Migrate(_ context.Context) error { return nil }
func (s *stubStore) Close() error                    { return nil }

func fixtureSnapshot() *store.Snapshot {
	return &store.Snapshot{
		ID:        "snap-1",
		FetchedAt: time.Now().UTC(),
		RowCount:  2,
		Rows: []normalize.RawRow{
			{
				"Journey Id":        "J-1",
				"Branch Name":       "Burdwan Depot",
				"Date":              "25/12/2024",
				"Diff In Lead (KM)": "-15",
				"Freight Impact":    "-1000",
			},
			{
				"Journey Id":        "J-2",
				"Branch Name":       "Asansol Hub",
				"Date":              "26/12/2024",
				"Diff In Lead (KM)": "10",
				"Freight Impact":    "-500",
			},
		},
	}
}

func newTestServer(st store.Store) *httptest.Server {
	return httptest.NewServer(New(st, Options{}).Router())
}

func getJSON(t *testing.T, url string, into any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	require.NoError(t, json.NewDecoder(resp.Body).Decode(into))
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	srv := newTestServer(&stubStore{})
	defer srv.Close()

	var body map[string]string
	status := getJSON(t, srv.URL+"/health", &body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestDashboard_DefaultFilters(t *testing.T) {
	srv := newTestServer(&stubStore{snap: fixtureSnapshot()})
	defer srv.Close()

	var d model.Dashboard
	status := getJSON(t, srv.URL+"/api/dashboard", &d)
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, 2, d.TotalRows)
	assert.Equal(t, 1, d.FilteredCount, "only the diversion passes the default filters")
	assert.Equal(t, 1000.0, d.Scorecards.TotalPotentialRecovery)
}

func TestDashboard_QueryFilters(t *testing.T) {
	srv := newTestServer(&stubStore{snap: fixtureSnapshot()})
	defer srv.Close()

	var d model.Dashboard
	status := getJSON(t, srv.URL+"/api/dashboard?only_diversions=false&branch=Asansol+Hub", &d)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, d.FilteredCount)
	require.Len(t, d.FilteredRows, 1)
	assert.Equal(t, "J-2", d.FilteredRows[0].JourneyID)
}

func TestDashboard_EmptyStore(t *testing.T) {
	srv := newTestServer(&stubStore{})
	defer srv.Close()

	var d model.Dashboard
	status := getJSON(t, srv.URL+"/api/dashboard", &d)
	require.Equal(t, http.StatusOK, status)
	assert.Zero(t, d.TotalRows)
	assert.Empty(t, d.FilteredRows)
}

func TestDashboard_StoreError(t *testing.T) {
	srv := newTestServer(&stubStore{err: eris.New("boom")})
	defer srv.Close()

	var body map[string]string
	status := getJSON(t, srv.URL+"/api/dashboard", &body)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.NotEmpty(t, body["error"])
}

func TestAssistantContext(t *testing.T) {
	srv := newTestServer(&stubStore{snap: fixtureSnapshot()})
	defer srv.Close()

	var ctx struct {
		TotalRows     int                    `json:"total_rows"`
		FilteredCount int                    `json:"filtered_count"`
		TopBranches   []model.BranchTableRow `json:"top_branches"`
	}
	status := getJSON(t, srv.URL+"/api/assistant/context", &ctx)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, ctx.TotalRows)
	assert.Equal(t, 1, ctx.FilteredCount)
	require.Len(t, ctx.TopBranches, 1)
	assert.Equal(t, "Burdwan Depot", ctx.TopBranches[0].Branch)
}

func TestFiltersFromQuery_MalformedValuesIgnored(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard?min_freight_impact=abc&only_diversions=maybe", nil)
	filters := filtersFromQuery(req)

	assert.Zero(t, filters.MinFreightImpact)
	assert.True(t, filters.OnlyDiversions)
}
