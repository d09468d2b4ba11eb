// Package model defines the canonical record, filter state, and dashboard
// snapshot types shared by the normalization and aggregation pipeline.
package model

// DiversionRow is the validated, immutable unit of analysis: one journey
// from the source sheet after coercion. Nullable numeric fields are nil
// when the source cell was empty or unparseable, never NaN.
type DiversionRow struct {
	// Identity. ID falls back to a positional placeholder when the
	// natural key is absent; it is unique within a batch for stable list
	// rendering, not a business identity.
	ID         string `json:"id"`
	JourneyID  string `json:"journey_id"`
	LoadID     string `json:"load_id"`
	BranchID   string `json:"branch_id"`
	BranchName string `json:"branch_name"`

	// Temporal. Date keeps the original display text; DateISO is the
	// RFC 3339 normalization, or the original text when DateParsed is
	// false.
	Date       string `json:"date"`
	DateISO    string `json:"date_iso"`
	DateParsed bool   `json:"date_parsed"`
	CreatedAt  string `json:"created_at,omitempty"`
	ClosedAt   string `json:"closed_at,omitempty"`

	// Location.
	OriginLocation       string `json:"origin_location"`
	StopLocation         string `json:"stop_location"`
	NearestConsignee     string `json:"nearest_consignee"`
	NearestConsigneeCode string `json:"nearest_consignee_code,omitempty"`
	NearestPingAddress   string `json:"nearest_ping_address,omitempty"`

	// Distances in km. DiffInLead is signed: negative means the vehicle
	// travelled a shorter route than planned, the diversion signal.
	// ShortLeadDistanceKm is abs(DiffInLead), nil iff DiffInLead is nil.
	TransitDistanceKm   *float64 `json:"transit_distance_km"`
	TravelledDistanceKm *float64 `json:"travelled_distance_km"`
	DiffInLead          *float64 `json:"diff_in_lead"`
	ShortLeadDistanceKm *float64 `json:"short_lead_distance_km"`

	// Commercial, in currency units. FreightImpact is charged minus
	// recomputed freight; negative means overcharge, i.e. recoverable.
	TotalFreight            *float64 `json:"total_freight"`
	NearestConsigneeFreight *float64 `json:"nearest_consignee_freight"`
	FreightImpact           *float64 `json:"freight_impact"`

	// IsPotentialDiversion is a pure function of DiffInLead: true iff
	// DiffInLead is non-nil and strictly negative.
	IsPotentialDiversion bool `json:"is_potential_diversion"`

	// Free-text and categorical.
	VehicleNo       string `json:"vehicle_no,omitempty"`
	VehicleType     string `json:"vehicle_type,omitempty"`
	FreightRemark   string `json:"freight_remark,omitempty"`
	TrackedMode     string `json:"tracked_mode,omitempty"`
	LoadingDuration string `json:"loading_duration,omitempty"`
	TransitDuration string `json:"transit_duration,omitempty"`
}
