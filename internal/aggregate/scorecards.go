package aggregate

import "github.com/sells-group/freight-audit/internal/model"

// Scorecards computes the headline statistics over the anomaly subset
// of the input. Counts are set-based: two rows sharing a journey ID
// count once.
func Scorecards(rows []model.DiversionRow) model.Scorecards {
	div := diversions(rows)

	var recovery float64
	for _, r := range div {
		recovery += absImpact(r)
	}
	mean, max := meanMax(div)

	return model.Scorecards{
		TotalPotentialRecovery: recovery,
		AvgShortLeadKm:         mean,
		MaxShortLeadKm:         max,
		TotalDivertedJourneys:  distinct(div, func(r model.DiversionRow) string { return r.JourneyID }),
		ImpactedConsignees:     distinct(div, func(r model.DiversionRow) string { return r.NearestConsignee }),
		ImpactedBranches:       distinct(div, func(r model.DiversionRow) string { return r.BranchName }),
	}
}
