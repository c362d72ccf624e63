package csvdir

import (
	"fmt"
	"strconv"
	"time"

	"earnings-straddle-lab/internal/domain"
)

const dateLayout = "2006-01-02"

var tradeHeader = []string{
	"trading_date", "enter_trade_date", "earn_date", "earn_time",
	"expiry_date", "ticker", "strike",
	"enter_sprc_call", "enter_iv_call", "enter_de_call", "enter_ve_call", "enter_uprc_call",
	"exit_sprc_call", "exit_iv_call", "exit_uprc_call", "pnl_call",
	"enter_sprc_put", "enter_iv_put", "enter_de_put", "enter_ve_put", "enter_uprc_put",
	"exit_sprc_put", "exit_iv_put", "exit_uprc_put", "pnl_put",
	"straddle_pnl", "straddle_ve",
}

var legHeader = []string{
	"ticker", "side", "trading_date", "enter_trade_date", "exit_trade_date",
	"earn_date", "earn_time", "expiry_date", "strike",
	"enter_sprc", "enter_iv", "enter_de", "enter_ve", "enter_uprc",
	"exit_sprc", "exit_iv", "exit_uprc", "pnl",
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// fmtOpt encodes a nullable value; the empty cell is null.
func fmtOpt(v *float64) string {
	if v == nil {
		return ""
	}
	return fmtFloat(*v)
}

func fmtDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

func parseOpt(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}

func encodeTrade(t *domain.StraddleTrade) []string {
	return []string{
		fmtDate(t.TradingDate), fmtDate(t.EnterTradeDate), fmtDate(t.EarnDate), string(t.EarnTime),
		fmtDate(t.ExpiryDate), t.Ticker, fmtFloat(t.Strike),
		fmtFloat(t.EnterPriceCall), fmtFloat(t.EnterIVCall), fmtFloat(t.EnterDeltaCall),
		fmtFloat(t.EnterVegaCall), fmtFloat(t.EnterUnderlyingCall),
		fmtOpt(t.ExitPriceCall), fmtOpt(t.ExitIVCall), fmtOpt(t.ExitUnderlyingCall), fmtOpt(t.PnLCall),
		fmtFloat(t.EnterPricePut), fmtFloat(t.EnterIVPut), fmtFloat(t.EnterDeltaPut),
		fmtFloat(t.EnterVegaPut), fmtFloat(t.EnterUnderlyingPut),
		fmtOpt(t.ExitPricePut), fmtOpt(t.ExitIVPut), fmtOpt(t.ExitUnderlyingPut), fmtOpt(t.PnLPut),
		fmtOpt(t.StraddlePnL), fmtFloat(t.StraddleVega),
	}
}

func decodeTrade(rec []string) (*domain.StraddleTrade, error) {
	if len(rec) != len(tradeHeader) {
		return nil, fmt.Errorf("expected %d fields, got %d", len(tradeHeader), len(rec))
	}

	t := &domain.StraddleTrade{
		EarnTime: domain.Timing(rec[3]),
		Ticker:   rec[5],
	}

	var err error
	if t.TradingDate, err = parseDate(rec[0]); err != nil {
		return nil, fmt.Errorf("trading_date: %w", err)
	}
	if t.EnterTradeDate, err = parseDate(rec[1]); err != nil {
		return nil, fmt.Errorf("enter_trade_date: %w", err)
	}
	if t.EarnDate, err = parseDate(rec[2]); err != nil {
		return nil, fmt.Errorf("earn_date: %w", err)
	}
	if t.ExpiryDate, err = parseDate(rec[4]); err != nil {
		return nil, fmt.Errorf("expiry_date: %w", err)
	}
	if t.Strike, err = parseFloat(rec[6]); err != nil {
		return nil, fmt.Errorf("strike: %w", err)
	}

	required := []struct {
		dst  *float64
		name string
		idx  int
	}{
		{&t.EnterPriceCall, "enter_sprc_call", 7},
		{&t.EnterIVCall, "enter_iv_call", 8},
		{&t.EnterDeltaCall, "enter_de_call", 9},
		{&t.EnterVegaCall, "enter_ve_call", 10},
		{&t.EnterUnderlyingCall, "enter_uprc_call", 11},
		{&t.EnterPricePut, "enter_sprc_put", 16},
		{&t.EnterIVPut, "enter_iv_put", 17},
		{&t.EnterDeltaPut, "enter_de_put", 18},
		{&t.EnterVegaPut, "enter_ve_put", 19},
		{&t.EnterUnderlyingPut, "enter_uprc_put", 20},
		{&t.StraddleVega, "straddle_ve", 26},
	}
	for _, f := range required {
		if *f.dst, err = parseFloat(rec[f.idx]); err != nil {
			return nil, fmt.Errorf("%s: %w", f.name, err)
		}
	}

	optional := []struct {
		dst  **float64
		name string
		idx  int
	}{
		{&t.ExitPriceCall, "exit_sprc_call", 12},
		{&t.ExitIVCall, "exit_iv_call", 13},
		{&t.ExitUnderlyingCall, "exit_uprc_call", 14},
		{&t.PnLCall, "pnl_call", 15},
		{&t.ExitPricePut, "exit_sprc_put", 21},
		{&t.ExitIVPut, "exit_iv_put", 22},
		{&t.ExitUnderlyingPut, "exit_uprc_put", 23},
		{&t.PnLPut, "pnl_put", 24},
		{&t.StraddlePnL, "straddle_pnl", 25},
	}
	for _, f := range optional {
		if *f.dst, err = parseOpt(rec[f.idx]); err != nil {
			return nil, fmt.Errorf("%s: %w", f.name, err)
		}
	}

	return t, nil
}

func encodeLeg(l *domain.TradeLeg) []string {
	return []string{
		l.Ticker, string(l.Side), fmtDate(l.TradingDate), fmtDate(l.EnterTradeDate),
		fmtDate(l.ExitTradeDate), fmtDate(l.EarnDate), string(l.EarnTime),
		fmtDate(l.ExpiryDate), fmtFloat(l.Strike),
		fmtFloat(l.EnterPrice), fmtFloat(l.EnterIV), fmtFloat(l.EnterDelta),
		fmtFloat(l.EnterVega), fmtFloat(l.EnterUnderlying),
		fmtOpt(l.ExitPrice), fmtOpt(l.ExitIV), fmtOpt(l.ExitUnderlying), fmtOpt(l.PnL),
	}
}
