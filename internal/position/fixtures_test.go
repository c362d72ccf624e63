package position

import (
	"time"

	"earnings-straddle-lab/internal/domain"
)

// quote builds a minimal quote record for selection tests.
func quote(trading, expiry time.Time, strike, uClose float64, side domain.OptionSide) *domain.QuoteRecord {
	return &domain.QuoteRecord{
		Ticker:          "AAPL",
		TradingDate:     trading,
		ExpiryDate:      expiry,
		Strike:          strike,
		Side:            side,
		Price:           1.0,
		IV:              0.4,
		Delta:           0.5,
		Vega:            0.05,
		UnderlyingClose: uClose,
	}
}

// bothSides builds a call and a put sharing the same key fields.
func bothSides(trading, expiry time.Time, strike, uClose float64) []*domain.QuoteRecord {
	return []*domain.QuoteRecord{
		quote(trading, expiry, strike, uClose, domain.SideCall),
		quote(trading, expiry, strike, uClose, domain.SidePut),
	}
}
