// Package universe selects the tickers eligible for the earnings
// straddle pipeline from option-volume liquidity.
package universe

import (
	"context"
	"sort"

	"earnings-straddle-lab/internal/domain"
	"earnings-straddle-lab/internal/storage"
)

// Selection thresholds: a ticker qualifies when the mean option volume
// over some trailing 20-calendar-day window clears the floor.
const (
	rollingWindowDays = 20
	volumeFloor       = 10_000
)

// sectorIndexes are broad-market and sector symbols excluded from the
// universe; they have no single-name earnings event to trade.
var sectorIndexes = map[string]bool{
	"XLB": true, "XLC": true, "XLE": true, "XLF": true,
	"XLI": true, "XLK": true, "XLP": true, "XLRE": true,
	"XLU": true, "XLV": true, "XLY": true, "XOM": true,
	"IWM": true, "RSP": true, "QQQ": true, "DOW": true,
	"SPY": true,
}

// Builder derives the eligible ticker set from daily option volume.
type Builder struct {
	volumes storage.OptionVolumeStore
}

// NewBuilder creates a universe builder.
func NewBuilder(volumes storage.OptionVolumeStore) *Builder {
	return &Builder{volumes: volumes}
}

// Tickers returns the liquidity-filtered universe, unique and sorted.
func (b *Builder) Tickers(ctx context.Context) ([]string, error) {
	points, err := b.volumes.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	byTicker := make(map[string][]*domain.OptionVolumePoint)
	for _, p := range points {
		byTicker[p.Ticker] = append(byTicker[p.Ticker], p)
	}

	var out []string
	for ticker, pts := range byTicker {
		if sectorIndexes[ticker] {
			continue
		}
		if qualifies(pts) {
			out = append(out, ticker)
		}
	}
	sort.Strings(out)
	return out, nil
}

// qualifies checks every trailing 20-calendar-day window anchored at an
// observation date. Points arrive date-sorted per ticker from the store.
func qualifies(pts []*domain.OptionVolumePoint) bool {
	for end := range pts {
		sum, count := 0.0, 0
		for i := end; i >= 0; i-- {
			if domain.DaysBetween(pts[i].Date, pts[end].Date) >= rollingWindowDays {
				break
			}
			sum += pts[i].Volume
			count++
		}
		if count > 0 && sum/float64(count) > volumeFloor {
			return true
		}
	}
	return false
}
