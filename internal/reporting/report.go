// Package reporting renders aggregation results for human consumption.
package reporting

import (
	"time"

	"earnings-straddle-lab/internal/backtest"
)

// Report represents one aggregation run over a variant selection.
type Report struct {
	GeneratedAt time.Time
	Include     string

	// Data Summary
	TradeCount int // merged straddle trades before the quality gate
	DayCount   int // aggregated daily PnL rows

	// Summary statistics, in presentation order. A nil value renders as
	// an empty cell (undefined statistic, e.g. no losing days).
	Stats []backtest.StatRow
}
