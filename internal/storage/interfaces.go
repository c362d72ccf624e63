package storage

import (
	"context"

	"earnings-straddle-lab/internal/domain"
)

// QuoteStore provides access to the option quote catalog.
type QuoteStore interface {
	// InsertBulk adds multiple quotes. Fails the entire batch on a
	// duplicate (ticker, trading_date, expiry_date, strike, side) key.
	InsertBulk(ctx context.Context, quotes []*domain.QuoteRecord) error

	// GetByTicker retrieves all quotes for a ticker, ordered by
	// trading_date ASC, side, expiry_date, strike.
	GetByTicker(ctx context.Context, ticker string) ([]*domain.QuoteRecord, error)
}

// EarningsCalendarStore provides access to the earnings calendar.
type EarningsCalendarStore interface {
	// InsertBulk adds multiple events. Fails the entire batch on a
	// duplicate (ticker, earn_date) key.
	InsertBulk(ctx context.Context, events []*domain.EarningsEvent) error

	// GetByTicker retrieves the material (AMC/BMO) events for a ticker,
	// ordered by earn_date ASC. Other timings are filtered out here.
	GetByTicker(ctx context.Context, ticker string) ([]*domain.EarningsEvent, error)
}

// OptionVolumeStore provides access to daily option volume per ticker,
// consumed only by universe selection.
type OptionVolumeStore interface {
	// InsertBulk adds multiple points. Fails the entire batch on a
	// duplicate (ticker, date) key.
	InsertBulk(ctx context.Context, points []*domain.OptionVolumePoint) error

	// GetAll retrieves every point, ordered by ticker ASC, date ASC.
	GetAll(ctx context.Context) ([]*domain.OptionVolumePoint, error)
}

// TradeTableStore persists per-(variant, ticker) trade tables. Each save
// fully replaces the previous artifact for that key, so re-running a
// subset of tickers is idempotent.
type TradeTableStore interface {
	// SaveTicker overwrites the pivoted straddle table for one ticker.
	SaveTicker(ctx context.Context, variant, ticker string, trades []*domain.StraddleTrade) error

	// SaveTickerLegs overwrites the raw per-leg table for one ticker,
	// used when pivot-on-finalize is disabled.
	SaveTickerLegs(ctx context.Context, variant, ticker string, legs []*domain.TradeLeg) error

	// LoadVariant loads every persisted straddle table for a variant.
	// Returns ErrNotFound when the variant has no artifacts at all.
	LoadVariant(ctx context.Context, variant string) ([]*domain.StraddleTrade, error)
}

// DailyPnLStore persists aggregation-stage artifacts.
type DailyPnLStore interface {
	// SaveSeries overwrites the daily PnL series for a variant selection.
	SaveSeries(ctx context.Context, include domain.Include, records []*domain.DailyPnL) error

	// SaveMerged overwrites the full pre-aggregation merged trade table.
	SaveMerged(ctx context.Context, include domain.Include, trades []*domain.StraddleTrade) error
}
