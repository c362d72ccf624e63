package domain

import "time"

// Timing tags when earnings are announced relative to the trading session.
type Timing string

// Earnings announcement timings. Only AMC and BMO events are tradable;
// anything else is excluded upstream by the calendar store.
const (
	TimingAMC Timing = "AMC" // after market close
	TimingBMO Timing = "BMO" // before market open
)

// EarningsEvent is one earnings announcement for a ticker.
// Corresponds to the earnings_calendar table in PostgreSQL.
type EarningsEvent struct {
	Ticker   string
	EarnDate time.Time
	EarnTime Timing
}
