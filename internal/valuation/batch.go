package valuation

import (
	"context"

	"github.com/newthinker/optval/internal/option"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers bounds AssessAll when no limit is given.
const DefaultWorkers = 4

// AssessAll values every option under the same scenario with at most workers
// valuations in flight. Reports keep the order of opts. The first error
// cancels the remaining work; reports already produced are still returned.
func (e *Engine) AssessAll(ctx context.Context, opts []option.Option, sc Scenario, workers int) ([]*Report, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if sc.At.IsZero() {
		sc.At = e.now()
	}

	reports := make([]*Report, len(opts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, opt := range opts {
		i, opt := i, opt
		g.Go(func() error {
			r, err := e.Assess(ctx, opt, sc)
			reports[i] = r
			return err
		})
	}

	err := g.Wait()
	return reports, err
}
