// Package position reconstructs straddle trades around earnings events
// from raw option quotes: one entry contract and one matched exit
// contract per (ticker, event, side), under sparse and noisy data.
package position

import (
	"context"
	"fmt"
	"io"
	"log"

	"earnings-straddle-lab/internal/domain"
	"earnings-straddle-lab/internal/storage"
	"earnings-straddle-lab/internal/straddle"
)

// CountLimit is the minimum number of qualifying earnings events a
// ticker needs before its trades are worth reconstructing.
const CountLimit = 8

// Builder converts raw quotes plus an earnings calendar into a
// per-ticker straddle trade table for one variant.
type Builder struct {
	variant  domain.Variant
	quotes   storage.QuoteStore
	calendar storage.EarningsCalendarStore
	pivot    bool
	logger   *log.Logger
}

// BuilderOptions contains configuration for creating a Builder.
type BuilderOptions struct {
	Variant  domain.Variant
	Quotes   storage.QuoteStore
	Calendar storage.EarningsCalendarStore

	// Pivot reshapes legs into wide straddle rows on finalize.
	Pivot bool

	// Logger defaults to a discard logger when nil.
	Logger *log.Logger
}

// NewBuilder creates a position builder for one variant.
func NewBuilder(opts BuilderOptions) *Builder {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Builder{
		variant:  opts.Variant,
		quotes:   opts.Quotes,
		calendar: opts.Calendar,
		pivot:    opts.Pivot,
		logger:   logger,
	}
}

// Run builds the trade table for one ticker. It never returns an error:
// data insufficiency yields a skip result and real failures yield a
// failure result, so one bad ticker cannot abort a batch.
func (b *Builder) Run(ctx context.Context, ticker string) *Result {
	events, err := b.calendar.GetByTicker(ctx, ticker)
	if err != nil {
		b.logger.Printf("%s [%s]: fetching earnings dates: %v", ticker, b.variant.Name, err)
		return failed(ticker, b.variant, fmt.Errorf("fetch earnings dates: %w", err))
	}
	if len(events) < CountLimit {
		b.logger.Printf("%s [%s]: skipping (only %d earnings events)", ticker, b.variant.Name, len(events))
		return skipped(ticker, b.variant, fmt.Sprintf("only %d earnings events", len(events)))
	}

	quotes, err := b.quotes.GetByTicker(ctx, ticker)
	if err != nil {
		b.logger.Printf("%s [%s]: fetching quotes: %v", ticker, b.variant.Name, err)
		return failed(ticker, b.variant, fmt.Errorf("fetch quotes: %w", err))
	}

	legs := reduceCandidates(quotes)
	schedule := buildSchedule(events, tradingDates(legs))
	associateEvents(legs, schedule)

	var trades []*domain.TradeLeg
	if b.variant.IsShort() {
		trades = selectShortEntries(legs, b.variant)
	} else {
		trades = selectLongEntries(legs, b.variant)
	}
	joinExits(trades, quotes)

	result := &Result{Ticker: ticker, Variant: b.variant, Status: StatusCompleted, Legs: trades}
	if b.pivot {
		result.Trades = straddle.Pivot(trades, b.variant.PnLSign)
	}
	b.logger.Printf("%s [%s]: completed (%d legs, %d straddles)",
		ticker, b.variant.Name, len(result.Legs), len(result.Trades))
	return result
}
