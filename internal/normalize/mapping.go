package normalize

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// RawRow is one untyped spreadsheet row: column header → cell value.
// Values are strings, numbers, or nil; extra and missing keys are both
// tolerated. All coercion happens in Normalize, never downstream.
type RawRow map[string]any

// ColumnMapping maps canonical field names to source column headers.
// The mapping is external configuration: sheets rename columns without
// notice, so the binding lives here rather than in the transform logic.
type ColumnMapping map[string]string

// Canonical field keys accepted by ColumnMapping.
const (
	FieldJourneyID        = "journey_id"
	FieldLoadID           = "load_id"
	FieldBranchID         = "branch_id"
	FieldBranchName       = "branch_name"
	FieldDate             = "date"
	FieldCreatedAt        = "created_at"
	FieldClosedAt         = "closed_at"
	FieldOrigin           = "origin_location"
	FieldStop             = "stop_location"
	FieldConsignee        = "nearest_consignee"
	FieldConsigneeCode    = "nearest_consignee_code"
	FieldPingAddress      = "nearest_ping_address"
	FieldTransitDistance  = "transit_distance_km"
	FieldTravelled        = "travelled_distance_km"
	FieldDiffInLead       = "diff_in_lead"
	FieldTotalFreight     = "total_freight"
	FieldConsigneeFreight = "nearest_consignee_freight"
	FieldFreightImpact    = "freight_impact"
	FieldVehicleNo        = "vehicle_no"
	FieldVehicleType      = "vehicle_type"
	FieldFreightRemark    = "freight_remark"
	FieldTrackedMode      = "tracked_mode"
	FieldLoadingDuration  = "loading_duration"
	FieldTransitDuration  = "transit_duration"
)

// DefaultMapping binds the canonical fields to the known headers of the
// operations diversion sheet.
func DefaultMapping() ColumnMapping {
	return ColumnMapping{
		FieldJourneyID:        "Journey Id",
		FieldLoadID:           "Load Id",
		FieldBranchID:         "Branch Id",
		FieldBranchName:       "Branch Name",
		FieldDate:             "Date",
		FieldCreatedAt:        "Created At",
		FieldClosedAt:         "Closed At",
		FieldOrigin:           "Origin Location",
		FieldStop:             "Stop Location",
		FieldConsignee:        "Nearest Consignee Name",
		FieldConsigneeCode:    "Nearest Consignee Code",
		FieldPingAddress:      "Nearest Ping Address",
		FieldTransitDistance:  "Transit Distance (KM)",
		FieldTravelled:        "Travelled Distance (KM)",
		FieldDiffInLead:       "Diff In Lead (KM)",
		FieldTotalFreight:     "Total Freight",
		FieldConsigneeFreight: "Nearest Consignee Freight",
		FieldFreightImpact:    "Freight Impact",
		FieldVehicleNo:        "Vehicle No",
		FieldVehicleType:      "Vehicle Type",
		FieldFreightRemark:    "Freight Calculation Remark",
		FieldTrackedMode:      "Tracked Mode",
		FieldLoadingDuration:  "Loading Duration",
		FieldTransitDuration:  "Transit Duration",
	}
}

// LoadMapping reads a canonical-field → source-header mapping from a
// YAML file. Fields absent from the file keep their default binding.
func LoadMapping(path string) (ColumnMapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "normalize: read mapping file")
	}

	var overrides map[string]string
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, eris.Wrap(err, "normalize: parse mapping file")
	}

	m := DefaultMapping()
	for field, header := range overrides {
		if _, ok := m[field]; !ok {
			return nil, eris.Errorf("normalize: unknown canonical field %q in mapping file", field)
		}
		m[field] = header
	}
	return m, nil
}

// normalizeCol lowercases and strips parentheses so headers match across
// sheet revisions ("Diff In Lead (KM)" == "diff in lead km").
func normalizeCol(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "(", "")
	s = strings.ReplaceAll(s, ")", "")
	return strings.Join(strings.Fields(s), " ")
}

// lookup fetches the raw value bound to a canonical field, matching the
// configured header case- and parenthesis-insensitively.
func (m ColumnMapping) lookup(raw RawRow, field string) any {
	header, ok := m[field]
	if !ok {
		return nil
	}
	if v, ok := raw[header]; ok {
		return v
	}
	want := normalizeCol(header)
	for k, v := range raw {
		if normalizeCol(k) == want {
			return v
		}
	}
	return nil
}
