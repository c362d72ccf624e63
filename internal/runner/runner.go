// Package runner drives the per-ticker position builders over the whole
// universe, serially or fanned out across a bounded worker pool.
package runner

import (
	"context"
	"io"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"earnings-straddle-lab/internal/config"
	"earnings-straddle-lab/internal/domain"
	"earnings-straddle-lab/internal/position"
	"earnings-straddle-lab/internal/storage"
)

// Runner executes both strategy variants for every ticker in the
// universe and persists the resulting trade tables.
type Runner struct {
	builders []*position.Builder
	tables   storage.TradeTableStore
	cfg      *config.Config
	logger   *log.Logger
}

// Options contains configuration for creating a Runner.
type Options struct {
	Quotes   storage.QuoteStore
	Calendar storage.EarningsCalendarStore

	// Tables receives per-ticker artifacts; nil disables persistence
	// regardless of Config.SaveResults.
	Tables storage.TradeTableStore

	Config *config.Config

	// Logger defaults to a discard logger when nil.
	Logger *log.Logger
}

// NewRunner creates a batch runner over the long and short variants.
func NewRunner(opts Options) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	builders := make([]*position.Builder, 0, 2)
	for _, v := range []domain.Variant{domain.Long, domain.Short} {
		builders = append(builders, position.NewBuilder(position.BuilderOptions{
			Variant:  v,
			Quotes:   opts.Quotes,
			Calendar: opts.Calendar,
			Pivot:    opts.Config.Pivot,
			Logger:   logger,
		}))
	}

	return &Runner{
		builders: builders,
		tables:   opts.Tables,
		cfg:      opts.Config,
		logger:   logger,
	}
}

// BatchSummary counts per-ticker outcomes across both variants.
type BatchSummary struct {
	Completed int
	Skipped   int
	Failed    int

	// Failures holds the failed results for post-run inspection.
	Failures []*position.Result
}

// Run processes every ticker through both variants. Individual ticker
// failures are recorded in the summary, never propagated; the returned
// error covers pool-level problems only.
func (r *Runner) Run(ctx context.Context, tickers []string) (*BatchSummary, error) {
	summary := &BatchSummary{}

	if !r.cfg.UseParallel {
		for _, ticker := range tickers {
			r.record(summary, r.runTicker(ctx, ticker)...)
		}
		return summary, nil
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.MaxWorkers)

	for _, ticker := range tickers {
		ticker := ticker
		g.Go(func() error {
			results := r.runTicker(gctx, ticker)
			mu.Lock()
			r.record(summary, results...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return summary, err
	}
	return summary, nil
}

// runTicker builds and persists one ticker under every variant.
func (r *Runner) runTicker(ctx context.Context, ticker string) []*position.Result {
	results := make([]*position.Result, 0, len(r.builders))
	for _, b := range r.builders {
		res := b.Run(ctx, ticker)
		if res.Status == position.StatusCompleted {
			if err := r.save(ctx, res); err != nil {
				res = &position.Result{
					Ticker:  res.Ticker,
					Variant: res.Variant,
					Status:  position.StatusFailed,
					Err:     err,
				}
			}
		}
		results = append(results, res)
	}
	return results
}

// save persists one completed result, wide straddle rows when pivoting
// is enabled and raw legs otherwise.
func (r *Runner) save(ctx context.Context, res *position.Result) error {
	if r.tables == nil || !r.cfg.SaveResults {
		return nil
	}
	if r.cfg.Pivot {
		return r.tables.SaveTicker(ctx, res.Variant.Name, res.Ticker, res.Trades)
	}
	return r.tables.SaveTickerLegs(ctx, res.Variant.Name, res.Ticker, res.Legs)
}

func (r *Runner) record(summary *BatchSummary, results ...*position.Result) {
	for _, res := range results {
		switch res.Status {
		case position.StatusCompleted:
			summary.Completed++
		case position.StatusSkipped:
			summary.Skipped++
		case position.StatusFailed:
			summary.Failed++
			summary.Failures = append(summary.Failures, res)
			r.logger.Printf("%s", res)
		}
	}
}
