// Package dashboard assembles the single output snapshot consumed by
// the presentation layers: filter vocabularies from the full dataset,
// the filtered subset, and every derived aggregate.
package dashboard

import (
	"sort"

	"github.com/sells-group/freight-audit/internal/aggregate"
	"github.com/sells-group/freight-audit/internal/coerce"
	"github.com/sells-group/freight-audit/internal/filter"
	"github.com/sells-group/freight-audit/internal/model"
)

// Limits caps the ranked outputs of a build. Zero fields fall back to
// the aggregate package defaults.
type Limits struct {
	Series    int
	Anomalies int
}

// Build computes one immutable dashboard snapshot. Vocabularies and the
// date span always come from the full dataset so filter controls never
// shrink their own option lists; everything else derives from the
// filtered subset. Build is pure: same input, same (deep-equal) output,
// no caching, no clock.
func Build(all []model.DiversionRow, f model.FilterState, limits Limits) *model.Dashboard {
	filtered := filter.Apply(all, f)

	return &model.Dashboard{
		TotalRows:       len(all),
		FilteredCount:   len(filtered),
		FilteredRows:    filtered,
		Options:         options(all),
		Scorecards:      aggregate.Scorecards(filtered),
		BranchSeries:    aggregate.BranchSeries(filtered, limits.Series),
		ConsigneeSeries: aggregate.ConsigneeSeries(filtered, limits.Series),
		BranchTable:     aggregate.BranchTable(filtered),
		ConsigneeTable:  aggregate.ConsigneeTable(filtered),
		CorridorTable:   aggregate.CorridorTable(filtered),
		TopAnomalies:    aggregate.TopAnomalies(filtered, limits.Anomalies),
	}
}

// options derives the filter-control vocabularies and the parseable
// date span from the unfiltered dataset.
func options(all []model.DiversionRow) model.FilterOptions {
	branches := make(map[string]struct{})
	consignees := make(map[string]struct{})
	var dateMin, dateMax string

	for _, r := range all {
		if r.BranchName != "" {
			branches[r.BranchName] = struct{}{}
		}
		if r.NearestConsignee != "" {
			consignees[r.NearestConsignee] = struct{}{}
		}
		if !r.DateParsed {
			continue
		}
		if _, ok := coerce.ParseInstant(r.DateISO); !ok {
			continue
		}
		if dateMin == "" || r.DateISO < dateMin {
			dateMin = r.DateISO
		}
		if dateMax == "" || r.DateISO > dateMax {
			dateMax = r.DateISO
		}
	}

	return model.FilterOptions{
		Branches:   sortedKeys(branches),
		Consignees: sortedKeys(consignees),
		DateMin:    dateMin,
		DateMax:    dateMax,
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
