package model

// FilterOptions holds the filter-control vocabularies derived from the
// full unfiltered dataset, so controls never shrink their own option
// lists as a side effect of being used.
type FilterOptions struct {
	Branches   []string `json:"branches"`
	Consignees []string `json:"consignees"`
	DateMin    string   `json:"date_min"`
	DateMax    string   `json:"date_max"`
}

// Scorecards are the headline statistics over the anomaly subset.
// Journey, consignee, and branch counts are set-based distinct counts of
// non-empty values, not row counts.
type Scorecards struct {
	TotalPotentialRecovery float64 `json:"total_potential_recovery"`
	AvgShortLeadKm         float64 `json:"avg_short_lead_km"`
	MaxShortLeadKm         float64 `json:"max_short_lead_km"`
	TotalDivertedJourneys  int     `json:"total_diverted_journeys"`
	ImpactedConsignees     int     `json:"impacted_consignees"`
	ImpactedBranches       int     `json:"impacted_branches"`
}

// SeriesPoint is one bar of a ranked chart series.
type SeriesPoint struct {
	Key      string  `json:"key"`
	Recovery float64 `json:"recovery"`
	Count    int     `json:"count"`
}

// BranchTableRow summarizes diversions for one branch.
type BranchTableRow struct {
	Branch           string  `json:"branch"`
	DivertedJourneys int     `json:"diverted_journeys"`
	TotalRecovery    float64 `json:"total_recovery"`
	AvgShortLeadKm   float64 `json:"avg_short_lead_km"`
	MaxShortLeadKm   float64 `json:"max_short_lead_km"`
}

// ConsigneeTableRow summarizes diversions for one consignee. RepeatRate
// is that consignee's distinct-journey share of all anomaly journeys in
// the filtered input, as a percentage.
type ConsigneeTableRow struct {
	Consignee        string  `json:"consignee"`
	DivertedJourneys int     `json:"diverted_journeys"`
	TotalRecovery    float64 `json:"total_recovery"`
	RepeatRate       float64 `json:"repeat_rate"`
}

// CorridorTableRow summarizes diversions on one ordered origin →
// destination pair. Missing sides are bucketed under "Unknown".
type CorridorTableRow struct {
	Origin         string  `json:"origin"`
	Destination    string  `json:"destination"`
	Count          int     `json:"count"`
	TotalRecovery  float64 `json:"total_recovery"`
	AvgShortLeadKm float64 `json:"avg_short_lead_km"`
}

// Anomaly is the display projection of one high-impact diversion row.
type Anomaly struct {
	ID            string   `json:"id"`
	JourneyID     string   `json:"journey_id"`
	Date          string   `json:"date"`
	BranchName    string   `json:"branch_name"`
	Consignee     string   `json:"consignee"`
	VehicleNo     string   `json:"vehicle_no,omitempty"`
	DiffInLead    *float64 `json:"diff_in_lead"`
	FreightImpact *float64 `json:"freight_impact"`
}

// Dashboard is the single output snapshot of one pipeline run. It is
// rebuilt from scratch on every filter or data change and must be
// treated as read-only by consumers.
type Dashboard struct {
	TotalRows       int                 `json:"total_rows"`
	FilteredCount   int                 `json:"filtered_count"`
	FilteredRows    []DiversionRow      `json:"filtered_rows"`
	Options         FilterOptions       `json:"options"`
	Scorecards      Scorecards          `json:"scorecards"`
	BranchSeries    []SeriesPoint       `json:"branch_series"`
	ConsigneeSeries []SeriesPoint       `json:"consignee_series"`
	BranchTable     []BranchTableRow    `json:"branch_table"`
	ConsigneeTable  []ConsigneeTableRow `json:"consignee_table"`
	CorridorTable   []CorridorTableRow  `json:"corridor_table"`
	TopAnomalies    []Anomaly           `json:"top_anomalies"`
}
