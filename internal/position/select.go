package position

import (
	"sort"

	"earnings-straddle-lab/internal/domain"
)

type entryCandidate struct {
	leg      *candidateLeg
	distEarn int // |target - days_to_earn|, long stage 1 score
	distExp  int // expiry_date - enter_trade_date, calendar days
}

type expirySideKey struct {
	enter  int64
	expiry int64
	side   domain.OptionSide
}

type sideKey struct {
	enter int64
	side  domain.OptionSide
}

// selectLongEntries runs the two-stage nearest-neighbor reduction for
// the long variant: first, per (entry date, expiry, side), keep the
// observation whose lead over the entry date is closest to the target
// window (observations closer than MinLeadDays are ineligible); then,
// per (entry date, side), keep the eligible expiry with the smallest
// positive distance past the entry date. Ties keep the first candidate
// in reduction order.
func selectLongEntries(legs []*candidateLeg, v domain.Variant) []*domain.TradeLeg {
	best := make(map[expirySideKey]*entryCandidate)
	var order []expirySideKey

	for _, l := range legs {
		ev := l.event
		if ev == nil || ev.Enter.IsZero() {
			continue
		}
		daysToEarn := domain.DaysBetween(l.quote.TradingDate, ev.Enter)
		if daysToEarn <= v.MinLeadDays {
			continue
		}
		distEarn := v.TargetWindowDays - daysToEarn
		if distEarn < 0 {
			distEarn = -distEarn
		}

		k := expirySideKey{ev.Enter.Unix(), l.quote.ExpiryDate.Unix(), l.quote.Side}
		cur, ok := best[k]
		if !ok {
			best[k] = &entryCandidate{leg: l, distEarn: distEarn}
			order = append(order, k)
			continue
		}
		if distEarn < cur.distEarn {
			cur.leg = l
			cur.distEarn = distEarn
		}
	}

	// Stage 2: smallest positive expiry distance per (entry date, side).
	stage1 := make([]*entryCandidate, 0, len(order))
	for _, k := range order {
		c := best[k]
		c.distExp = domain.DaysBetween(c.leg.event.Enter, c.leg.quote.ExpiryDate)
		if c.distExp > 0 {
			stage1 = append(stage1, c)
		}
	}
	return finalizeBySide(stage1, false)
}

// selectShortEntries keeps the leg observed exactly on the entry date
// and, per (entry date, side), the expiry with the smallest positive
// distance past it.
func selectShortEntries(legs []*candidateLeg, _ domain.Variant) []*domain.TradeLeg {
	var candidates []*entryCandidate
	for _, l := range legs {
		ev := l.event
		if ev == nil || ev.Enter.IsZero() || !l.quote.TradingDate.Equal(ev.Enter) {
			continue
		}
		distExp := domain.DaysBetween(ev.Enter, l.quote.ExpiryDate)
		if distExp <= 0 {
			continue
		}
		candidates = append(candidates, &entryCandidate{leg: l, distExp: distExp})
	}
	return finalizeBySide(candidates, true)
}

// finalizeBySide reduces candidates to one leg per (entry date, side) by
// minimum expiry distance and materializes the trade legs, ordered by
// entry date then side. postEventExit selects the short-style exit (the
// trading date after the event); the long variant unwinds on the entry
// date itself.
func finalizeBySide(candidates []*entryCandidate, postEventExit bool) []*domain.TradeLeg {
	best := make(map[sideKey]*entryCandidate)
	var order []sideKey

	for _, c := range candidates {
		k := sideKey{c.leg.event.Enter.Unix(), c.leg.quote.Side}
		cur, ok := best[k]
		if !ok {
			best[k] = c
			order = append(order, k)
			continue
		}
		if c.distExp < cur.distExp {
			best[k] = c
		}
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].enter != order[j].enter {
			return order[i].enter < order[j].enter
		}
		return order[i].side < order[j].side
	})

	out := make([]*domain.TradeLeg, 0, len(order))
	for _, k := range order {
		out = append(out, newTradeLeg(best[k], postEventExit))
	}
	return out
}

func newTradeLeg(c *entryCandidate, postEventExit bool) *domain.TradeLeg {
	q, ev := c.leg.quote, c.leg.event
	exit := ev.Enter
	if postEventExit {
		exit = ev.Exit
	}
	return &domain.TradeLeg{
		Ticker:          q.Ticker,
		Side:            q.Side,
		TradingDate:     q.TradingDate,
		EnterTradeDate:  ev.Enter,
		ExitTradeDate:   exit,
		EarnDate:        ev.EarnDate,
		EarnTime:        ev.EarnTime,
		ExpiryDate:      q.ExpiryDate,
		Strike:          q.Strike,
		EnterPrice:      q.Price,
		EnterIV:         q.IV,
		EnterDelta:      q.Delta,
		EnterVega:       q.Vega,
		EnterUnderlying: q.UnderlyingClose,
	}
}
