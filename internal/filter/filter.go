// Package filter decides which canonical records a FilterState admits.
package filter

import (
	"math"
	"time"

	"github.com/sells-group/freight-audit/internal/coerce"
	"github.com/sells-group/freight-audit/internal/model"
)

// dayEnd pushes an inclusive upper bound to the last instant of its
// calendar day, so a same-day DateTo still admits that whole day.
const dayEnd = 24*time.Hour - time.Millisecond

// Matches reports whether the record passes every active constraint.
// Checks short-circuit cheapest-first: diversion flag, branch,
// consignee, freight-impact magnitude, then the date range.
func Matches(row model.DiversionRow, f model.FilterState) bool {
	if f.OnlyDiversions && !row.IsPotentialDiversion {
		return false
	}
	if f.Branch != "" && row.BranchName != f.Branch {
		return false
	}
	if f.Consignee != "" && row.NearestConsignee != f.Consignee {
		return false
	}
	if f.MinFreightImpact != 0 {
		// Only magnitude matters; the threshold's sign is ignored.
		if row.FreightImpact == nil {
			return false
		}
		if math.Abs(*row.FreightImpact) < math.Abs(f.MinFreightImpact) {
			return false
		}
	}
	if f.DateFrom != "" || f.DateTo != "" {
		// A record whose date never parsed cannot be placed in any
		// range, so an active date bound excludes it.
		if !row.DateParsed {
			return false
		}
		ts, ok := coerce.ParseInstant(row.DateISO)
		if !ok {
			return false
		}
		if f.DateFrom != "" {
			from, err := time.Parse("2006-01-02", f.DateFrom)
			if err == nil && ts.Before(from) {
				return false
			}
		}
		if f.DateTo != "" {
			to, err := time.Parse("2006-01-02", f.DateTo)
			if err == nil && ts.After(to.Add(dayEnd)) {
				return false
			}
		}
	}
	return true
}

// Apply returns the records admitted by the filter state, preserving
// input order. The input slice is never mutated.
func Apply(rows []model.DiversionRow, f model.FilterState) []model.DiversionRow {
	out := make([]model.DiversionRow, 0, len(rows))
	for _, row := range rows {
		if Matches(row, f) {
			out = append(out, row)
		}
	}
	return out
}
