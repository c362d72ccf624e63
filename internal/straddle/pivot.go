// Package straddle reshapes per-side trade legs into wide straddle rows.
package straddle

import (
	"sort"

	"earnings-straddle-lab/internal/domain"
)

type pairKey struct {
	tradingDate int64
	enterDate   int64
	earnDate    int64
	earnTime    domain.Timing
	expiryDate  int64
	ticker      string
	strike      float64
}

// Pivot pairs call and put legs sharing the same (trading date, entry
// date, event, expiry, ticker, strike) into one wide row per straddle.
// Pairs missing either side are excluded: a straddle needs both legs.
// The sign is the variant's PnL direction, applied exactly once here.
func Pivot(legs []*domain.TradeLeg, sign float64) []*domain.StraddleTrade {
	pairs := make(map[pairKey]*domain.StraddleTrade)
	sides := make(map[pairKey]map[domain.OptionSide]bool)
	var order []pairKey

	for _, l := range legs {
		k := pairKey{
			tradingDate: l.TradingDate.Unix(),
			enterDate:   l.EnterTradeDate.Unix(),
			earnDate:    l.EarnDate.Unix(),
			earnTime:    l.EarnTime,
			expiryDate:  l.ExpiryDate.Unix(),
			ticker:      l.Ticker,
			strike:      l.Strike,
		}
		t, ok := pairs[k]
		if !ok {
			t = &domain.StraddleTrade{
				Ticker:         l.Ticker,
				TradingDate:    l.TradingDate,
				EnterTradeDate: l.EnterTradeDate,
				EarnDate:       l.EarnDate,
				EarnTime:       l.EarnTime,
				ExpiryDate:     l.ExpiryDate,
				Strike:         l.Strike,
			}
			pairs[k] = t
			sides[k] = make(map[domain.OptionSide]bool)
			order = append(order, k)
		}
		sides[k][l.Side] = true
		fillSide(t, l)
	}

	var out []*domain.StraddleTrade
	for _, k := range order {
		if !sides[k][domain.SideCall] || !sides[k][domain.SidePut] {
			continue
		}
		t := pairs[k]
		t.StraddleVega = t.EnterVegaCall + t.EnterVegaPut
		if t.PnLCall != nil && t.PnLPut != nil {
			pnl := sign * (*t.PnLCall + *t.PnLPut)
			t.StraddlePnL = &pnl
		}
		out = append(out, t)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TradingDate.Before(out[j].TradingDate)
	})
	return out
}

func fillSide(t *domain.StraddleTrade, l *domain.TradeLeg) {
	switch l.Side {
	case domain.SideCall:
		t.EnterPriceCall = l.EnterPrice
		t.EnterIVCall = l.EnterIV
		t.EnterDeltaCall = l.EnterDelta
		t.EnterVegaCall = l.EnterVega
		t.EnterUnderlyingCall = l.EnterUnderlying
		t.ExitPriceCall = copyFloat(l.ExitPrice)
		t.ExitIVCall = copyFloat(l.ExitIV)
		t.ExitUnderlyingCall = copyFloat(l.ExitUnderlying)
		t.PnLCall = copyFloat(l.PnL)
	case domain.SidePut:
		t.EnterPricePut = l.EnterPrice
		t.EnterIVPut = l.EnterIV
		t.EnterDeltaPut = l.EnterDelta
		t.EnterVegaPut = l.EnterVega
		t.EnterUnderlyingPut = l.EnterUnderlying
		t.ExitPricePut = copyFloat(l.ExitPrice)
		t.ExitIVPut = copyFloat(l.ExitIV)
		t.ExitUnderlyingPut = copyFloat(l.ExitUnderlying)
		t.PnLPut = copyFloat(l.PnL)
	}
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
