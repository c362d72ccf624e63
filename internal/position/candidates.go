package position

import (
	"math"
	"sort"
	"time"

	"earnings-straddle-lab/internal/domain"
)

// candidateLeg is the single at-the-money observation kept per
// (trading_date, side, expiry_date) after strike reduction, optionally
// associated with the next upcoming earnings event.
type candidateLeg struct {
	quote *domain.QuoteRecord
	event *eventSchedule // nil until associated
}

// reduceCandidates keeps, for every (trading_date, side, expiry_date)
// triple, the one quote whose strike is nearest the underlying close.
// Ties keep the first quote in store order (trading_date, side, expiry,
// strike ascending), so the reduction is total and deterministic.
func reduceCandidates(quotes []*domain.QuoteRecord) []*candidateLeg {
	sorted := make([]*domain.QuoteRecord, len(quotes))
	copy(sorted, quotes)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
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

	var out []*candidateLeg
	for _, q := range sorted {
		dist := math.Abs(q.Strike - q.UnderlyingClose)
		if n := len(out); n > 0 && sameTriple(out[n-1].quote, q) {
			prev := out[n-1].quote
			if dist < math.Abs(prev.Strike-prev.UnderlyingClose) {
				out[n-1].quote = q
			}
			continue
		}
		out = append(out, &candidateLeg{quote: q})
	}
	return out
}

func sameTriple(a, b *domain.QuoteRecord) bool {
	return a.TradingDate.Equal(b.TradingDate) && a.Side == b.Side && a.ExpiryDate.Equal(b.ExpiryDate)
}

// tradingDates returns the unique observation dates present in the
// reduced legs, ascending. Legs arrive date-sorted from the reduction.
func tradingDates(legs []*candidateLeg) []time.Time {
	var dates []time.Time
	for _, l := range legs {
		if n := len(dates); n == 0 || !dates[n-1].Equal(l.quote.TradingDate) {
			dates = append(dates, l.quote.TradingDate)
		}
	}
	return dates
}
