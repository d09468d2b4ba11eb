package fetcher

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/sells-group/freight-audit/internal/normalize"
)

// FetchAll downloads several CSV exports concurrently and concatenates
// their rows in URL order, so a multi-tab source still yields one
// deterministic batch.
func (f *HTTPFetcher) FetchAll(ctx context.Context, urls []string) ([]normalize.RawRow, error) {
	perURL := make([][]normalize.RawRow, len(urls))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, u := range urls {
		g.Go(func() error {
			rows, err := f.FetchCSV(ctx, u)
			if err != nil {
				return err
			}
			perURL[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []normalize.RawRow
	for _, rows := range perURL {
		all = append(all, rows...)
	}
	return all, nil
}
