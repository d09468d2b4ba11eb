// Package assistant compresses a dashboard snapshot into the compact
// payload the question-answering assistant consumes. Prompting and text
// generation live outside this repository; only the payload shape is
// owned here.
package assistant

import "github.com/sells-group/freight-audit/internal/model"

// Context is the assistant-facing summary of one dashboard build.
type Context struct {
	TotalRows     int                       `json:"total_rows"`
	FilteredCount int                       `json:"filtered_count"`
	Filters       model.FilterState         `json:"filters"`
	Scorecards    model.Scorecards          `json:"scorecards"`
	TopBranches   []model.BranchTableRow    `json:"top_branches"`
	TopConsignees []model.ConsigneeTableRow `json:"top_consignees"`
	TopCorridors  []model.CorridorTableRow  `json:"top_corridors"`
	TopAnomalies  []model.Anomaly           `json:"top_anomalies"`
}

// DefaultTopN caps each ranked section of the payload.
const DefaultTopN = 5

// Summarize projects the top-N slices of each ranked view plus the
// scorecards. The dashboard is read, never modified.
func Summarize(d *model.Dashboard, filters model.FilterState, topN int) Context {
	if topN <= 0 {
		topN = DefaultTopN
	}
	return Context{
		TotalRows:     d.TotalRows,
		FilteredCount: d.FilteredCount,
		Filters:       filters,
		Scorecards:    d.Scorecards,
		TopBranches:   head(d.BranchTable, topN),
		TopConsignees: head(d.ConsigneeTable, topN),
		TopCorridors:  head(d.CorridorTable, topN),
		TopAnomalies:  head(d.TopAnomalies, topN),
	}
}

// head copies up to n leading elements so the payload does not alias
// the snapshot's slices.
func head[T any](s []T, n int) []T {
	if len(s) < n {
		n = len(s)
	}
	out := make([]T, n)
	copy(out, s[:n])
	return out
}
