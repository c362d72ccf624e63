package domain

import "time"

// TradeLeg is one finalized entry for one option side of an earnings
// trade, with the exit quote joined in when one exists. Exit fields are
// nil when no quote matches the exit date (missing match, not an error).
type TradeLeg struct {
	Ticker string
	Side   OptionSide

	TradingDate    time.Time // observation date the entry quote was taken on
	EnterTradeDate time.Time // canonical entry date derived from the earnings event
	ExitTradeDate  time.Time // trading date the exit quote is looked up on
	EarnDate       time.Time
	EarnTime       Timing
	ExpiryDate     time.Time
	Strike         float64

	EnterPrice      float64
	EnterIV         float64
	EnterDelta      float64
	EnterVega       float64
	EnterUnderlying float64

	ExitPrice      *float64
	ExitIV         *float64
	ExitUnderlying *float64

	PnL *float64 // exit - enter, directionless at the leg level
}

// StraddleTrade is the wide pivot of a call leg and a put leg sharing
// the same (trading date, entry date, event, expiry, ticker, strike).
// Both sides are always present; pairs missing a side never pivot.
type StraddleTrade struct {
	Ticker         string
	TradingDate    time.Time
	EnterTradeDate time.Time
	EarnDate       time.Time
	EarnTime       Timing
	ExpiryDate     time.Time
	Strike         float64

	EnterPriceCall      float64
	EnterIVCall         float64
	EnterDeltaCall      float64
	EnterVegaCall       float64
	EnterUnderlyingCall float64
	ExitPriceCall       *float64
	ExitIVCall          *float64
	ExitUnderlyingCall  *float64
	PnLCall             *float64

	EnterPricePut      float64
	EnterIVPut         float64
	EnterDeltaPut      float64
	EnterVegaPut       float64
	EnterUnderlyingPut float64
	ExitPricePut       *float64
	ExitIVPut          *float64
	ExitUnderlyingPut  *float64
	PnLPut             *float64

	StraddlePnL  *float64 // sign * (pnl_call + pnl_put); nil if either leg has no exit
	StraddleVega float64  // enter_vega_call + enter_vega_put

	// PosSign is empty in per-ticker artifacts and set to Long/Short
	// when variants are merged for aggregation.
	PosSign string
}

// DailyPnL is one point of the aggregated portfolio series: total
// straddle PnL across all tickers sharing a (date, position sign) key.
type DailyPnL struct {
	TradingDate time.Time
	PosSign     string
	DailyPnL    float64
}
