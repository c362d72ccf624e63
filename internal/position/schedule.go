package position

import (
	"sort"
	"time"

	"earnings-straddle-lab/internal/domain"
)

// eventSchedule is one earnings event with its derived entry and exit
// trading dates. Enter/Exit stay zero when the calendar edge falls off
// the quote history (no previous or next trading date exists).
type eventSchedule struct {
	EarnDate time.Time
	EarnTime domain.Timing
	Enter    time.Time
	Exit     time.Time
}

// buildSchedule derives entry and exit trading dates for each event:
//
//	AMC: enter on the event date, exit on the next trading date
//	BMO: enter on the previous trading date, exit on the event date
//
// Events whose date is not a trading date in the quote history are
// dropped; there is nothing to anchor them to.
func buildSchedule(events []*domain.EarningsEvent, dates []time.Time) []*eventSchedule {
	index := make(map[time.Time]int, len(dates))
	for i, d := range dates {
		index[d] = i
	}

	var out []*eventSchedule
	for _, e := range events {
		i, ok := index[e.EarnDate]
		if !ok {
			continue
		}
		s := &eventSchedule{EarnDate: e.EarnDate, EarnTime: e.EarnTime}
		switch e.EarnTime {
		case domain.TimingAMC:
			s.Enter = e.EarnDate
			if i+1 < len(dates) {
				s.Exit = dates[i+1]
			}
		default: // BMO and anything else entering off the prior close
			if i > 0 {
				s.Enter = dates[i-1]
			}
			s.Exit = e.EarnDate
		}
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].EarnDate.Before(out[j].EarnDate) })
	return out
}

// associateEvents assigns each candidate leg the nearest earnings event
// at or after its observation date (forward as-of join against the event
// stream). Legs past the last event keep a nil event.
func associateEvents(legs []*candidateLeg, schedule []*eventSchedule) {
	for _, l := range legs {
		d := l.quote.TradingDate
		i := sort.Search(len(schedule), func(i int) bool {
			return !schedule[i].EarnDate.Before(d)
		})
		if i < len(schedule) {
			l.event = schedule[i]
		}
	}
}
