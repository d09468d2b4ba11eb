package aggregate

import (
	"sort"

	"github.com/sells-group/freight-audit/internal/model"
)

// BranchTable groups the anomaly subset by branch and ranks the groups
// by total recovery, descending.
func BranchTable(rows []model.DiversionRow) []model.BranchTableRow {
	order, groups := groupBy(diversions(rows), func(r model.DiversionRow) string { return r.BranchName }, false)

	out := make([]model.BranchTableRow, 0, len(order))
	for _, k := range order {
		group := groups[k]
		var recovery float64
		for _, r := range group {
			recovery += absImpact(r)
		}
		mean, max := meanMax(group)
		out = append(out, model.BranchTableRow{
			Branch:           k,
			DivertedJourneys: distinct(group, func(r model.DiversionRow) string { return r.JourneyID }),
			TotalRecovery:    recovery,
			AvgShortLeadKm:   mean,
			MaxShortLeadKm:   max,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalRecovery > out[j].TotalRecovery
	})
	return out
}

// ConsigneeTable groups the anomaly subset by consignee and ranks by
// total recovery, descending. RepeatRate is each consignee's
// distinct-journey count over the distinct journeys across ALL anomaly
// rows in the input — so when other filters narrow the input, every
// repeat rate is relative to that narrowed population, not the whole
// dataset.
func ConsigneeTable(rows []model.DiversionRow) []model.ConsigneeTableRow {
	div := diversions(rows)
	totalJourneys := distinct(div, func(r model.DiversionRow) string { return r.JourneyID })

	order, groups := groupBy(div, func(r model.DiversionRow) string { return r.NearestConsignee }, false)

	out := make([]model.ConsigneeTableRow, 0, len(order))
	for _, k := range order {
		group := groups[k]
		var recovery float64
		for _, r := range group {
			recovery += absImpact(r)
		}
		journeys := distinct(group, func(r model.DiversionRow) string { return r.JourneyID })

		rate := 0.0
		if totalJourneys > 0 {
			rate = float64(journeys) / float64(totalJourneys) * 100
		}

		out = append(out, model.ConsigneeTableRow{
			Consignee:        k,
			DivertedJourneys: journeys,
			TotalRecovery:    recovery,
			RepeatRate:       rate,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalRecovery > out[j].TotalRecovery
	})
	return out
}

// corridorKey is the ordered origin → destination pair.
type corridorKey struct {
	origin      string
	destination string
}

// CorridorTable groups the anomaly subset by ordered (origin,
// destination) pair and ranks by occurrence count, descending — the
// most-travelled problem route first, not the most expensive one.
// Missing sides fall back to the "Unknown" placeholder so the row still
// forms a valid group.
func CorridorTable(rows []model.DiversionRow) []model.CorridorTableRow {
	div := diversions(rows)

	order := make([]corridorKey, 0, len(div))
	groups := make(map[corridorKey][]model.DiversionRow, len(div))
	for _, r := range div {
		k := corridorKey{origin: r.OriginLocation, destination: r.StopLocation}
		if k.origin == "" {
			k.origin = UnknownLocation
		}
		if k.destination == "" {
			k.destination = UnknownLocation
		}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], r)
	}

	out := make([]model.CorridorTableRow, 0, len(order))
	for _, k := range order {
		group := groups[k]
		var recovery float64
		for _, r := range group {
			recovery += absImpact(r)
		}
		mean, _ := meanMax(group)
		out = append(out, model.CorridorTableRow{
			Origin:         k.origin,
			Destination:    k.destination,
			Count:          len(group),
			TotalRecovery:  recovery,
			AvgShortLeadKm: mean,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}
