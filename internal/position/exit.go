package position

import (
	"earnings-straddle-lab/internal/domain"
)

type exitKey struct {
	expiry int64
	strike float64
	side   domain.OptionSide
	date   int64
}

// joinExits resolves each leg's exit quote by exact key match on
// (expiry_date, strike, side) at the leg's exit trading date. The lookup
// runs against the full unreduced quote set. Legs with no matching quote
// (or no exit date at all) keep nil exit fields and nil PnL; they are
// retained for downstream filtering, not dropped.
func joinExits(legs []*domain.TradeLeg, quotes []*domain.QuoteRecord) {
	index := make(map[exitKey]*domain.QuoteRecord, len(quotes))
	for _, q := range quotes {
		k := exitKey{q.ExpiryDate.Unix(), q.Strike, q.Side, q.TradingDate.Unix()}
		if _, exists := index[k]; !exists {
			index[k] = q
		}
	}

	for _, l := range legs {
		if l.ExitTradeDate.IsZero() {
			continue
		}
		q, ok := index[exitKey{l.ExpiryDate.Unix(), l.Strike, l.Side, l.ExitTradeDate.Unix()}]
		if !ok {
			continue
		}
		price, iv, uclose := q.Price, q.IV, q.UnderlyingClose
		l.ExitPrice = &price
		l.ExitIV = &iv
		l.ExitUnderlying = &uclose
		pnl := price - l.EnterPrice
		l.PnL = &pnl
	}
}
