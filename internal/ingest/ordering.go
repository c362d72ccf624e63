package ingest

import (
	"sort"

	"earnings-straddle-lab/internal/domain"
)

// SortQuotes orders quotes by (ticker, trading_date, side, expiry_date, strike)
// so repeated ingestion runs produce identical batches.
func SortQuotes(quotes []*domain.QuoteRecord) {
	sort.SliceStable(quotes, func(i, j int) bool {
		a, b := quotes[i], quotes[j]
		if a.Ticker != b.Ticker {
			return a.Ticker < b.Ticker
		}
		if !a.TradingDate.Equal(b.TradingDate) {
			return a.TradingDate.Before(b.TradingDate)
		}
		if a.Side != b.Side {
			return a.Side < b.Side
		}
		if !a.ExpiryDate.Equal(b.ExpiryDate) {
			return a.ExpiryDate.Before(b.ExpiryDate)
		}
		return a.Strike < b.Strike
	})
}

// SortEvents orders earnings events by (ticker, earn_date).
func SortEvents(events []*domain.EarningsEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.Ticker != b.Ticker {
			return a.Ticker < b.Ticker
		}
		return a.EarnDate.Before(b.EarnDate)
	})
}

// SortVolumePoints orders volume points by (ticker, date).
func SortVolumePoints(points []*domain.OptionVolumePoint) {
	sort.SliceStable(points, func(i, j int) bool {
		a, b := points[i], points[j]
		if a.Ticker != b.Ticker {
			return a.Ticker < b.Ticker
		}
		return a.Date.Before(b.Date)
	})
}
