// Package aggregate derives the dashboard's scorecards, ranked chart
// series, grouped tables, and top-anomaly list from a filtered record
// slice. Every function is a pure reducer: fresh grouping maps per call,
// stable sorts, no shared state, so identical input always yields
// identical output.
package aggregate

import (
	"math"

	"github.com/sells-group/freight-audit/internal/model"
)

// Default truncation limits for ranked outputs.
const (
	DefaultSeriesLimit  = 10
	DefaultAnomalyLimit = 20
)

// UnknownLocation is the corridor placeholder for a missing origin or
// destination, so missing-location rows still form a valid group key.
const UnknownLocation = "Unknown"

// diversions returns the anomaly subset. Scorecards and tables are
// always anomaly-scoped regardless of the OnlyDiversions toggle, so the
// restriction is applied here even when the input is already filtered.
func diversions(rows []model.DiversionRow) []model.DiversionRow {
	out := make([]model.DiversionRow, 0, len(rows))
	for _, r := range rows {
		if r.IsPotentialDiversion {
			out = append(out, r)
		}
	}
	return out
}

// absImpact returns the recoverable amount of a row, 0 when unknown.
func absImpact(r model.DiversionRow) float64 {
	if r.FreightImpact == nil {
		return 0
	}
	return math.Abs(*r.FreightImpact)
}

// meanMax folds short-lead distances into their mean and max, both 0
// when no row carries a value.
func meanMax(rows []model.DiversionRow) (mean, max float64) {
	var sum float64
	var n int
	for _, r := range rows {
		if r.ShortLeadDistanceKm == nil {
			continue
		}
		sum += *r.ShortLeadDistanceKm
		n++
		if *r.ShortLeadDistanceKm > max {
			max = *r.ShortLeadDistanceKm
		}
	}
	if n == 0 {
		return 0, 0
	}
	return sum / float64(n), max
}

// distinct counts the distinct non-empty values produced by key.
func distinct(rows []model.DiversionRow, key func(model.DiversionRow) string) int {
	seen := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		if k := key(r); k != "" {
			seen[k] = struct{}{}
		}
	}
	return len(seen)
}

// groupBy buckets rows by key in first-seen order, dropping rows whose
// key is empty unless keepEmpty is set.
func groupBy(rows []model.DiversionRow, key func(model.DiversionRow) string, keepEmpty bool) ([]string, map[string][]model.DiversionRow) {
	order := make([]string, 0, len(rows))
	groups := make(map[string][]model.DiversionRow, len(rows))
	for _, r := range rows {
		k := key(r)
		if k == "" && !keepEmpty {
			continue
		}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], r)
	}
	return order, groups
}
