package aggregate

import (
	"sort"

	"github.com/sells-group/freight-audit/internal/model"
)

// TopAnomalies projects the rows with a known freight impact, ranked by
// recoverable amount descending and truncated to limit
// (DefaultAnomalyLimit when limit <= 0).
func TopAnomalies(rows []model.DiversionRow, limit int) []model.Anomaly {
	if limit <= 0 {
		limit = DefaultAnomalyLimit
	}

	withImpact := make([]model.DiversionRow, 0, len(rows))
	for _, r := range rows {
		if r.FreightImpact != nil {
			withImpact = append(withImpact, r)
		}
	}

	sort.SliceStable(withImpact, func(i, j int) bool {
		return absImpact(withImpact[i]) > absImpact(withImpact[j])
	})

	if len(withImpact) > limit {
		withImpact = withImpact[:limit]
	}

	out := make([]model.Anomaly, 0, len(withImpact))
	for _, r := range withImpact {
		out = append(out, model.Anomaly{
			ID:            r.ID,
			JourneyID:     r.JourneyID,
			Date:          r.Date,
			BranchName:    r.BranchName,
			Consignee:     r.NearestConsignee,
			VehicleNo:     r.VehicleNo,
			DiffInLead:    r.DiffInLead,
			FreightImpact: r.FreightImpact,
		})
	}
	return out
}
