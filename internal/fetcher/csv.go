package fetcher

import (
	"context"
	"encoding/csv"
	"io"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/freight-audit/internal/normalize"
)

// ParseCSV reads a CSV stream whose first record is the header row and
// returns one raw row per data record, keyed by header. Short records
// simply omit the trailing columns; extra cells beyond the header are
// dropped.
func ParseCSV(r io.Reader) ([]normalize.RawRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: read csv header")
	}

	var rows []normalize.RawRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "fetcher: read csv record")
		}

		row := make(normalize.RawRow, len(header))
		for i, col := range header {
			if i >= len(record) {
				break
			}
			row[col] = record[i]
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// FetchCSV downloads a published CSV export and parses it into raw rows.
func (f *HTTPFetcher) FetchCSV(ctx context.Context, rawURL string) ([]normalize.RawRow, error) {
	body, err := f.Download(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer body.Close() //nolint:errcheck

	rows, err := ParseCSV(body)
	if err != nil {
		return nil, err
	}

	zap.L().Info("fetcher: csv export parsed",
		zap.String("url", rawURL),
		zap.Int("rows", len(rows)),
	)
	return rows, nil
}
