package scoring

import (
	"context"
	"runtime"

	"github.com/maxviazov/fantasy-cricket-service/internal/model"
	"golang.org/x/sync/errgroup"
)

// BatchResult holds the valid players of a bulk ingest in input order, plus rejected rows.
type BatchResult struct {
	Players []model.Player
	Invalid []model.RowError
}

// IngestBatch runs Ingest over every row with up to workers goroutines.
// Rows are independent; output order follows input order. Invalid rows never fail the batch,
// they are reported in Invalid. The only error is context cancellation.
func IngestBatch(ctx context.Context, rows []map[string]any, workers int) (BatchResult, error) {
	if len(rows) == 0 {
		return BatchResult{}, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(rows) {
		workers = len(rows)
	}

	results := make([]IngestResult, len(rows))
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			for i := w; i < len(rows); i += workers {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[i] = Ingest(rows[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return BatchResult{}, err
	}

	out := BatchResult{Players: make([]model.Player, 0, len(rows))}
	for i, r := range results {
		if r.Valid {
			out.Players = append(out.Players, r.Player)
			continue
		}
		out.Invalid = append(out.Invalid, model.RowError{Index: i, Data: rows[i], Error: r.Error})
	}
	return out, nil
}
