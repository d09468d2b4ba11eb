package model

// FilterState narrows which records feed the derived views. It is an
// immutable value: the pipeline receives it by value and never retains
// or mutates it. Zero-value fields mean "not set"; date bounds are
// inclusive calendar dates in YYYY-MM-DD form.
type FilterState struct {
	DateFrom         string  `json:"date_from,omitempty"`
	DateTo           string  `json:"date_to,omitempty"`
	Branch           string  `json:"branch,omitempty"`
	Consignee        string  `json:"consignee,omitempty"`
	MinFreightImpact float64 `json:"min_freight_impact,omitempty"`
	OnlyDiversions   bool    `json:"only_diversions"`
}

// DefaultFilters returns the dashboard's default view: diversions only,
// no other constraints.
func DefaultFilters() FilterState {
	return FilterState{OnlyDiversions: true}
}
