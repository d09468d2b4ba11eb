package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/freight-audit/internal/model"
)

func row(opts ...func(*model.DiversionRow)) model.DiversionRow {
	diff := -15.0
	impact := -1000.0
	r := model.DiversionRow{
		ID:                   "J-1",
		JourneyID:            "J-1",
		BranchName:           "Burdwan Depot",
		NearestConsignee:     "Acme Steel",
		Date:                 "25/12/2024",
		DateISO:              "2024-12-25T00:00:00Z",
		DateParsed:           true,
		DiffInLead:           &diff,
		FreightImpact:        &impact,
		IsPotentialDiversion: true,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func TestMatches_OnlyDiversions(t *testing.T) {
	f := model.DefaultFilters()

	assert.True(t, Matches(row(), f))
	assert.False(t, Matches(row(func(r *model.DiversionRow) {
		r.IsPotentialDiversion = false
	}), f))

	f.OnlyDiversions = false
	assert.True(t, Matches(row(func(r *model.DiversionRow) {
		r.IsPotentialDiversion = false
	}), f))
}

func TestMatches_Branch(t *testing.T) {
	f := model.DefaultFilters()
	f.Branch = "Burdwan Depot"
	assert.True(t, Matches(row(), f))

	f.Branch = "Asansol Hub"
	assert.False(t, Matches(row(), f))
}

func TestMatches_Consignee(t *testing.T) {
	f := model.DefaultFilters()
	f.Consignee = "Acme Steel"
	assert.True(t, Matches(row(), f))

	f.Consignee = "Other Mills"
	assert.False(t, Matches(row(), f))
}

func TestMatches_MinFreightImpactMagnitude(t *testing.T) {
	f := model.DefaultFilters()
	f.MinFreightImpact = 500
	assert.True(t, Matches(row(), f))

	f.MinFreightImpact = 2000
	assert.False(t, Matches(row(), f))

	// Threshold sign is ignored: -500 behaves like 500.
	f.MinFreightImpact = -500
	assert.True(t, Matches(row(), f))

	// Nil impact fails any non-zero threshold.
	f.MinFreightImpact = 1
	assert.False(t, Matches(row(func(r *model.DiversionRow) {
		r.FreightImpact = nil
	}), f))
}

func TestMatches_DateRangeInclusive(t *testing.T) {
	f := model.DefaultFilters()
	f.DateFrom = "2024-12-01"
	f.DateTo = "2024-12-25"
	assert.True(t, Matches(row(), f), "same-day upper bound includes the whole day")

	f.DateTo = "2024-12-24"
	assert.False(t, Matches(row(), f))

	f.DateFrom = "2024-12-26"
	f.DateTo = ""
	assert.False(t, Matches(row(), f))
}

func TestMatches_EndOfDayUpperBound(t *testing.T) {
	f := model.DefaultFilters()
	f.DateTo = "2024-12-25"
	late := row(func(r *model.DiversionRow) {
		r.DateISO = "2024-12-25T23:30:00Z"
	})
	assert.True(t, Matches(late, f))
}

func TestMatches_UnparsedDateExcludedByDateBounds(t *testing.T) {
	unparsed := row(func(r *model.DiversionRow) {
		r.DateParsed = false
		r.DateISO = "sometime last week"
	})

	f := model.DefaultFilters()
	assert.True(t, Matches(unparsed, f), "no date bound set")

	f.DateFrom = "2024-01-01"
	assert.False(t, Matches(unparsed, f))
}

func TestApply_PreservesOrderAndMonotonicity(t *testing.T) {
	rows := []model.DiversionRow{
		row(func(r *model.DiversionRow) { r.ID = "a" }),
		row(func(r *model.DiversionRow) { r.ID = "b"; r.IsPotentialDiversion = false }),
		row(func(r *model.DiversionRow) { r.ID = "c" }),
	}

	open := model.FilterState{OnlyDiversions: false}
	got := Apply(rows, open)
	assert.Len(t, got, 3)

	got = Apply(rows, model.DefaultFilters())
	assert.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)

	assert.LessOrEqual(t, len(got), len(rows))
}

func TestApply_Empty(t *testing.T) {
	assert.Empty(t, Apply(nil, model.DefaultFilters()))
}
