// Package backtest merges persisted per-ticker trade tables into a daily
// portfolio PnL series and computes risk/return statistics over it.
package backtest

import (
	"context"
	"errors"
	"io"
	"log"
	"math"
	"sort"
	"time"

	"earnings-straddle-lab/internal/domain"
	"earnings-straddle-lab/internal/storage"
)

// Quality gate bounds. Rows outside these are known-bad data (stale
// quotes, crossed markets, unit errors), not unprofitable trades.
const (
	maxEnterPrice  = 10.0
	maxAbsNetDelta = 0.2
	minEnterVega   = 1e-3
	maxEnterVega   = 0.2
	minEnterIV     = 0.10
	maxEnterIV     = 2.0
)

// historicalFloor drops rows before reliable quote coverage begins.
var historicalFloor = domain.Day(2017, time.January, 1)

// Options configure one aggregation run.
type Options struct {
	// VegaPerTrade sizes every trade to a common vega exposure when
	// positive; zero leaves raw unsized PnL.
	VegaPerTrade float64

	// ShortSignCompat re-negates stored short-variant straddle PnL.
	// Transitional: the persisted short tables carry an inverted sign
	// from an upstream generation bug; drop this flag once the data is
	// regenerated. Not canonical behavior.
	ShortSignCompat bool
}

// Aggregator loads per-ticker tables, merges, filters and reduces them
// to the daily PnL series.
type Aggregator struct {
	tables storage.TradeTableStore
	opts   Options
	logger *log.Logger
}

// NewAggregator creates an aggregator over persisted trade tables.
func NewAggregator(tables storage.TradeTableStore, opts Options, logger *log.Logger) *Aggregator {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Aggregator{tables: tables, opts: opts, logger: logger}
}

// MergeResults loads the per-ticker tables for the requested variant
// selection and concatenates them, tagging each row with its position
// sign. A variant with no persisted tables is logged and skipped, never
// fatal; the result may be empty.
func (a *Aggregator) MergeResults(ctx context.Context, include domain.Include) ([]*domain.StraddleTrade, error) {
	var merged []*domain.StraddleTrade
	for _, v := range include.Variants() {
		trades, err := a.tables.LoadVariant(ctx, v.Name)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				a.logger.Printf("no %s trade tables found, skipping", v.Name)
				continue
			}
			return nil, err
		}
		for _, t := range trades {
			c := *t
			c.PosSign = v.PosSign()
			merged = append(merged, &c)
		}
	}
	a.logger.Printf("merged %d trades for include=%s", len(merged), include)
	return merged, nil
}

// AggregateDaily reduces merged trades to one PnL record per
// (trading date, position sign). Order of operations matches the data
// pipeline this replays: sign compatibility, vega sizing, quality gate,
// group-and-sum. Deterministic for identical inputs.
func (a *Aggregator) AggregateDaily(trades []*domain.StraddleTrade) []*domain.DailyPnL {
	if len(trades) == 0 {
		a.logger.Printf("no data to aggregate")
		return nil
	}

	if a.opts.ShortSignCompat {
		trades = applyShortSignCompat(trades)
	}

	pnlOf := func(t *domain.StraddleTrade) *float64 { return t.StraddlePnL }
	if a.opts.VegaPerTrade > 0 {
		trades, pnlOf = applyVegaSizing(trades, a.opts.VegaPerTrade)
	}

	filtered := filterTrades(trades)

	type dayKey struct {
		date int64
		sign string
	}
	// A key whose trades all lack a PnL still emits a zero record: the
	// day traded, it just has no realized exits.
	sums := make(map[dayKey]float64)
	var order []dayKey
	for _, t := range filtered {
		k := dayKey{t.TradingDate.Unix(), t.PosSign}
		if _, ok := sums[k]; !ok {
			order = append(order, k)
			sums[k] = 0
		}
		if p := pnlOf(t); p != nil {
			sums[k] += *p
		}
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].date != order[j].date {
			return order[i].date < order[j].date
		}
		return order[i].sign < order[j].sign
	})

	out := make([]*domain.DailyPnL, 0, len(order))
	for _, k := range order {
		out = append(out, &domain.DailyPnL{
			TradingDate: time.Unix(k.date, 0).UTC(),
			PosSign:     k.sign,
			DailyPnL:    sums[k],
		})
	}
	a.logger.Printf("aggregated %d rows into %d daily records", len(filtered), len(out))
	return out
}

// Run merges and aggregates in one pass.
func (a *Aggregator) Run(ctx context.Context, include domain.Include) ([]*domain.StraddleTrade, []*domain.DailyPnL, error) {
	merged, err := a.MergeResults(ctx, include)
	if err != nil {
		return nil, nil, err
	}
	return merged, a.AggregateDaily(merged), nil
}

func applyShortSignCompat(trades []*domain.StraddleTrade) []*domain.StraddleTrade {
	out := make([]*domain.StraddleTrade, len(trades))
	for i, t := range trades {
		c := *t
		if c.PosSign == domain.PosSignShort && c.StraddlePnL != nil {
			flipped := -*c.StraddlePnL
			c.StraddlePnL = &flipped
		}
		out[i] = &c
	}
	return out
}

// applyVegaSizing scales every trade to the target vega exposure and
// drops trades whose sized PnL is not finite (zero or near-zero vega).
func applyVegaSizing(trades []*domain.StraddleTrade, target float64) ([]*domain.StraddleTrade, func(*domain.StraddleTrade) *float64) {
	sized := make(map[*domain.StraddleTrade]float64, len(trades))
	var kept []*domain.StraddleTrade
	for _, t := range trades {
		if t.StraddlePnL == nil {
			continue
		}
		size := target / t.StraddleVega
		pnl := size * *t.StraddlePnL
		if math.IsNaN(pnl) || math.IsInf(pnl, 0) {
			continue
		}
		sized[t] = pnl
		kept = append(kept, t)
	}
	return kept, func(t *domain.StraddleTrade) *float64 {
		p, ok := sized[t]
		if !ok {
			return nil
		}
		return &p
	}
}

// filterTrades applies the mandatory data-quality gate.
func filterTrades(trades []*domain.StraddleTrade) []*domain.StraddleTrade {
	var out []*domain.StraddleTrade
	for _, t := range trades {
		if !passesQualityGate(t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func passesQualityGate(t *domain.StraddleTrade) bool {
	if t.EnterPriceCall <= 0 || t.EnterPriceCall >= maxEnterPrice {
		return false
	}
	if t.EnterPricePut <= 0 || t.EnterPricePut >= maxEnterPrice {
		return false
	}
	if math.Abs(t.EnterDeltaCall+t.EnterDeltaPut) >= maxAbsNetDelta {
		return false
	}
	if t.EnterVegaCall <= minEnterVega || t.EnterVegaCall >= maxEnterVega {
		return false
	}
	if t.EnterVegaPut <= minEnterVega || t.EnterVegaPut >= maxEnterVega {
		return false
	}
	if t.EnterIVCall <= minEnterIV || t.EnterIVCall >= maxEnterIV {
		return false
	}
	if t.EnterIVPut <= minEnterIV || t.EnterIVPut >= maxEnterIV {
		return false
	}
	return !t.TradingDate.Before(historicalFloor)
}
