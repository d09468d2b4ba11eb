package aggregate

import (
	"sort"

	"github.com/sells-group/freight-audit/internal/model"
)

// BranchSeries ranks branches of the anomaly subset by total recovery,
// truncated to limit (DefaultSeriesLimit when limit <= 0). Rows without
// a branch name are excluded from grouping.
func BranchSeries(rows []model.DiversionRow, limit int) []model.SeriesPoint {
	return rankedSeries(rows, limit, func(r model.DiversionRow) string { return r.BranchName })
}

// ConsigneeSeries ranks consignees the same way.
func ConsigneeSeries(rows []model.DiversionRow, limit int) []model.SeriesPoint {
	return rankedSeries(rows, limit, func(r model.DiversionRow) string { return r.NearestConsignee })
}

func rankedSeries(rows []model.DiversionRow, limit int, key func(model.DiversionRow) string) []model.SeriesPoint {
	if limit <= 0 {
		limit = DefaultSeriesLimit
	}

	order, groups := groupBy(diversions(rows), key, false)

	points := make([]model.SeriesPoint, 0, len(order))
	for _, k := range order {
		var recovery float64
		for _, r := range groups[k] {
			recovery += absImpact(r)
		}
		points = append(points, model.SeriesPoint{
			Key:      k,
			Recovery: recovery,
			Count:    len(groups[k]),
		})
	}

	// Stable sort keeps first-seen order among equal recoveries.
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Recovery > points[j].Recovery
	})

	if len(points) > limit {
		points = points[:limit]
	}
	return points
}
