package domain

import "time"

// OptionSide distinguishes the two legs of a straddle.
type OptionSide string

// Option side values as stored in the quote catalog.
const (
	SideCall OptionSide = "Call"
	SidePut  OptionSide = "Put"
)

// Sides lists both option sides in deterministic order.
var Sides = []OptionSide{SideCall, SidePut}

// QuoteRecord is one end-of-day option observation. It is the source of
// truth for both entry and exit prices: an exit is a later QuoteRecord
// sharing the same (ticker, expiry_date, strike, side) key.
// Corresponds to the option_quotes table in ClickHouse.
type QuoteRecord struct {
	Ticker          string
	TradingDate     time.Time // observation date
	ExpiryDate      time.Time
	Strike          float64
	Side            OptionSide
	Price           float64 // straddle-leg quote price
	IV              float64 // implied volatility
	Delta           float64
	Vega            float64
	UnderlyingClose float64
}

// OptionVolumePoint is one day of aggregate option volume for a ticker,
// used only for liquidity-based universe selection.
// Corresponds to the option_volume table in ClickHouse.
type OptionVolumePoint struct {
	Date   time.Time
	Ticker string
	Volume float64
}
