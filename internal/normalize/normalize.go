// Package normalize maps raw spreadsheet rows into canonical
// DiversionRow records. It is the only layer that touches untrusted
// cell values; everything downstream sees well-typed fields.
package normalize

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/sells-group/freight-audit/internal/coerce"
	"github.com/sells-group/freight-audit/internal/model"
)

// ValidationError reports a raw row that could not be mapped to the
// minimal canonical shape. The row's position in the batch is kept so
// operators can find it in the source sheet.
type ValidationError struct {
	Index  int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("normalize: row %d: %s", e.Index, e.Reason)
}

// Normalize converts one raw row at the given batch position into a
// canonical record. It fails only when the row carries no identity at
// all (no journey ID, no load ID, and no branch name); every other
// malformed field degrades to nil or empty per the coercion rules.
func Normalize(raw RawRow, idx int, mapping ColumnMapping) (*model.DiversionRow, error) {
	journeyID := coerce.String(mapping.lookup(raw, FieldJourneyID))
	loadID := coerce.String(mapping.lookup(raw, FieldLoadID))
	branchName := coerce.String(mapping.lookup(raw, FieldBranchName))

	if journeyID == "" && loadID == "" && branchName == "" {
		return nil, &ValidationError{Index: idx, Reason: "no journey id, load id, or branch name"}
	}

	id := journeyID
	if id == "" {
		id = loadID
	}
	if id == "" {
		// Positional placeholder keeps list keys unique within a batch.
		id = fmt.Sprintf("row-%d", idx)
	}

	date := coerce.String(mapping.lookup(raw, FieldDate))
	dateISO, parsed := coerce.Instant(date)
	if date != "" && !parsed {
		zap.L().Warn("normalize: unparseable journey date",
			zap.Int("row", idx),
			zap.String("date", date),
		)
	}

	diff := coerce.Number(mapping.lookup(raw, FieldDiffInLead))

	row := &model.DiversionRow{
		ID:         id,
		JourneyID:  journeyID,
		LoadID:     loadID,
		BranchID:   coerce.String(mapping.lookup(raw, FieldBranchID)),
		BranchName: branchName,

		Date:       date,
		DateISO:    dateISO,
		DateParsed: parsed,
		CreatedAt:  coerce.String(mapping.lookup(raw, FieldCreatedAt)),
		ClosedAt:   coerce.String(mapping.lookup(raw, FieldClosedAt)),

		OriginLocation:       coerce.String(mapping.lookup(raw, FieldOrigin)),
		StopLocation:         coerce.String(mapping.lookup(raw, FieldStop)),
		NearestConsignee:     coerce.String(mapping.lookup(raw, FieldConsignee)),
		NearestConsigneeCode: coerce.String(mapping.lookup(raw, FieldConsigneeCode)),
		NearestPingAddress:   coerce.String(mapping.lookup(raw, FieldPingAddress)),

		TransitDistanceKm:   coerce.Number(mapping.lookup(raw, FieldTransitDistance)),
		TravelledDistanceKm: coerce.Number(mapping.lookup(raw, FieldTravelled)),
		DiffInLead:          diff,
		ShortLeadDistanceKm: absOrNil(diff),

		TotalFreight:            coerce.Number(mapping.lookup(raw, FieldTotalFreight)),
		NearestConsigneeFreight: coerce.Number(mapping.lookup(raw, FieldConsigneeFreight)),
		FreightImpact:           coerce.Number(mapping.lookup(raw, FieldFreightImpact)),

		IsPotentialDiversion: diff != nil && *diff < 0,

		VehicleNo:       coerce.String(mapping.lookup(raw, FieldVehicleNo)),
		VehicleType:     coerce.String(mapping.lookup(raw, FieldVehicleType)),
		FreightRemark:   coerce.String(mapping.lookup(raw, FieldFreightRemark)),
		TrackedMode:     coerce.String(mapping.lookup(raw, FieldTrackedMode)),
		LoadingDuration: coerce.String(mapping.lookup(raw, FieldLoadingDuration)),
		TransitDuration: coerce.String(mapping.lookup(raw, FieldTransitDuration)),
	}

	return row, nil
}

// Batch normalizes every row, skipping rows that fail validation. One
// malformed upstream row must never blank the whole dashboard, so
// failures are logged and dropped while the rest of the batch continues
// in original order.
func Batch(raws []RawRow, mapping ColumnMapping) []model.DiversionRow {
	rows := make([]model.DiversionRow, 0, len(raws))
	for i, raw := range raws {
		row, err := Normalize(raw, i, mapping)
		if err != nil {
			zap.L().Warn("normalize: skipping invalid row",
				zap.Int("row", i),
				zap.Error(err),
			)
			continue
		}
		rows = append(rows, *row)
	}
	return rows
}

func absOrNil(v *float64) *float64 {
	if v == nil {
		return nil
	}
	a := math.Abs(*v)
	return &a
}
