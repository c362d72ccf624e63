package position

import (
	"fmt"

	"earnings-straddle-lab/internal/domain"
)

// Status classifies the outcome of one (ticker, variant) build.
type Status int

// Build outcomes. A skipped ticker had too little earnings history; a
// failed ticker hit a real error. Neither affects sibling tickers.
const (
	StatusCompleted Status = iota
	StatusSkipped
	StatusFailed
)

// Result is the per-ticker build outcome. It replaces raised-and-caught
// signals at the ticker boundary: the batch driver inspects Status
// instead of recovering from errors mid-flight.
type Result struct {
	Ticker  string
	Variant domain.Variant
	Status  Status

	// SkipReason is set when Status is StatusSkipped.
	SkipReason string

	// Err carries the failure context when Status is StatusFailed.
	Err error

	// Legs holds the finalized trade legs for a completed build.
	Legs []*domain.TradeLeg

	// Trades holds the pivoted straddle table when pivoting is enabled.
	Trades []*domain.StraddleTrade
}

func skipped(ticker string, v domain.Variant, reason string) *Result {
	return &Result{Ticker: ticker, Variant: v, Status: StatusSkipped, SkipReason: reason}
}

func failed(ticker string, v domain.Variant, err error) *Result {
	return &Result{Ticker: ticker, Variant: v, Status: StatusFailed, Err: err}
}

// String summarizes the result for batch logging.
func (r *Result) String() string {
	switch r.Status {
	case StatusSkipped:
		return fmt.Sprintf("%s [%s]: skipped (%s)", r.Ticker, r.Variant.Name, r.SkipReason)
	case StatusFailed:
		return fmt.Sprintf("%s [%s]: failed (%v)", r.Ticker, r.Variant.Name, r.Err)
	default:
		return fmt.Sprintf("%s [%s]: %d legs, %d straddles", r.Ticker, r.Variant.Name, len(r.Legs), len(r.Trades))
	}
}
