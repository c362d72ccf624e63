package backtest

import (
	"context"
	"testing"
	"time"

	"earnings-straddle-lab/internal/domain"
	"earnings-straddle-lab/internal/storage/memory"
)

func ptr(v float64) *float64 { return &v }

// goodTrade passes every quality-gate bound.
func goodTrade(trading time.Time, pnl float64) *domain.StraddleTrade {
	return &domain.StraddleTrade{
		Ticker:         "AAPL",
		TradingDate:    trading,
		EnterTradeDate: trading,
		EarnDate:       trading,
		EarnTime:       domain.TimingAMC,
		ExpiryDate:     trading.AddDate(0, 0, 18),
		Strike:         120,

		EnterPriceCall: 1.2,
		EnterIVCall:    0.45,
		EnterDeltaCall: 0.05,
		EnterVegaCall:  0.06,

		EnterPricePut: 1.1,
		EnterIVPut:    0.44,
		EnterDeltaPut: -0.04,
		EnterVegaPut:  0.05,

		StraddlePnL:  ptr(pnl),
		StraddleVega: 0.11,
	}
}

func TestMergeResults_TagsPosSign(t *testing.T) {
	ctx := context.Background()
	tables := memory.NewTradeTableStore()

	d := domain.Day(2021, time.March, 1)
	if err := tables.SaveTicker(ctx, "long", "AAPL", []*domain.StraddleTrade{goodTrade(d, 1)}); err != nil {
		t.Fatalf("SaveTicker failed: %v", err)
	}
	if err := tables.SaveTicker(ctx, "short", "AAPL", []*domain.StraddleTrade{goodTrade(d, -1)}); err != nil {
		t.Fatalf("SaveTicker failed: %v", err)
	}

	agg := NewAggregator(tables, Options{}, nil)
	merged, err := agg.MergeResults(ctx, domain.IncludeBoth)
	if err != nil {
		t.Fatalf("MergeResults failed: %v", err)
	}
	if len(merged) != 2 {
		t.Fatalf("expected 2 trades, got %d", len(merged))
	}

	signs := map[string]int{}
	for _, tr := range merged {
		signs[tr.PosSign]++
	}
	if signs[domain.PosSignLong] != 1 || signs[domain.PosSignShort] != 1 {
		t.Errorf("unexpected sign tags: %v", signs)
	}
}

func TestMergeResults_MissingVariantSkipped(t *testing.T) {
	ctx := context.Background()
	tables := memory.NewTradeTableStore()

	d := domain.Day(2021, time.March, 1)
	if err := tables.SaveTicker(ctx, "long", "AAPL", []*domain.StraddleTrade{goodTrade(d, 1)}); err != nil {
		t.Fatalf("SaveTicker failed: %v", err)
	}

	agg := NewAggregator(tables, Options{}, nil)
	merged, err := agg.MergeResults(ctx, domain.IncludeBoth)
	if err != nil {
		t.Fatalf("expected missing short tables to be non-fatal, got %v", err)
	}
	if len(merged) != 1 {
		t.Errorf("expected 1 trade, got %d", len(merged))
	}
}

func TestAggregateDaily_GroupsByDateAndSign(t *testing.T) {
	d1 := domain.Day(2021, time.March, 1)
	d2 := domain.Day(2021, time.March, 2)

	t1 := goodTrade(d1, 10)
	t1.PosSign = domain.PosSignLong
	t2 := goodTrade(d1, 5)
	t2.PosSign = domain.PosSignLong
	t3 := goodTrade(d1, 3)
	t3.PosSign = domain.PosSignShort
	t4 := goodTrade(d2, 7)
	t4.PosSign = domain.PosSignLong

	agg := NewAggregator(memory.NewTradeTableStore(), Options{}, nil)
	daily := agg.AggregateDaily([]*domain.StraddleTrade{t1, t2, t3, t4})

	if len(daily) != 3 {
		t.Fatalf("expected 3 daily records, got %d", len(daily))
	}
	// Sorted by date then sign
	if !daily[0].TradingDate.Equal(d1) || daily[0].PosSign != domain.PosSignLong || daily[0].DailyPnL != 15 {
		t.Errorf("unexpected first record: %+v", daily[0])
	}
	if daily[1].PosSign != domain.PosSignShort || daily[1].DailyPnL != 3 {
		t.Errorf("unexpected second record: %+v", daily[1])
	}
	if !daily[2].TradingDate.Equal(d2) || daily[2].DailyPnL != 7 {
		t.Errorf("unexpected third record: %+v", daily[2])
	}
}

func TestAggregateDaily_QualityGate(t *testing.T) {
	d := domain.Day(2021, time.March, 1)

	bad := []*domain.StraddleTrade{}

	overpriced := goodTrade(d, 1)
	overpriced.EnterPriceCall = 15 // stale quote, unit error
	bad = append(bad, overpriced)

	unbalanced := goodTrade(d, 1)
	unbalanced.EnterDeltaCall = 0.4
	unbalanced.EnterDeltaPut = -0.1
	bad = append(bad, unbalanced)

	lowIV := goodTrade(d, 1)
	lowIV.EnterIVPut = 0.05
	bad = append(bad, lowIV)

	ancient := goodTrade(domain.Day(2016, time.December, 30), 1)
	bad = append(bad, ancient)

	keep := goodTrade(d, 42)
	keep.PosSign = domain.PosSignLong
	for _, b := range bad {
		b.PosSign = domain.PosSignLong
	}

	agg := NewAggregator(memory.NewTradeTableStore(), Options{}, nil)
	daily := agg.AggregateDaily(append(bad, keep))

	if len(daily) != 1 {
		t.Fatalf("expected only the clean trade to survive, got %d records", len(daily))
	}
	if daily[0].DailyPnL != 42 {
		t.Errorf("expected pnl 42, got %v", daily[0].DailyPnL)
	}
}

func TestAggregateDaily_VegaSizing(t *testing.T) {
	d := domain.Day(2021, time.March, 1)

	tr := goodTrade(d, 2)
	tr.StraddleVega = 0.1
	tr.PosSign = domain.PosSignLong

	degenerate := goodTrade(d, 5)
	degenerate.StraddleVega = 0 // infinite size, dropped
	degenerate.PosSign = domain.PosSignLong

	agg := NewAggregator(memory.NewTradeTableStore(), Options{VegaPerTrade: 100}, nil)
	daily := agg.AggregateDaily([]*domain.StraddleTrade{tr, degenerate})

	if len(daily) != 1 {
		t.Fatalf("expected 1 daily record, got %d", len(daily))
	}
	// size = 100 / 0.1 = 1000, pnl = 1000 * 2
	if daily[0].DailyPnL != 2000 {
		t.Errorf("expected sized pnl 2000, got %v", daily[0].DailyPnL)
	}
}

func TestAggregateDaily_ShortSignCompat(t *testing.T) {
	d := domain.Day(2021, time.March, 1)

	short := goodTrade(d, 4)
	short.PosSign = domain.PosSignShort
	long := goodTrade(d, 4)
	long.PosSign = domain.PosSignLong

	agg := NewAggregator(memory.NewTradeTableStore(), Options{ShortSignCompat: true}, nil)
	daily := agg.AggregateDaily([]*domain.StraddleTrade{short, long})

	if len(daily) != 2 {
		t.Fatalf("expected 2 daily records, got %d", len(daily))
	}
	// Long first in sign order; untouched
	if daily[0].DailyPnL != 4 {
		t.Errorf("long pnl should be untouched, got %v", daily[0].DailyPnL)
	}
	if daily[1].DailyPnL != -4 {
		t.Errorf("short pnl should be re-negated, got %v", daily[1].DailyPnL)
	}
}

func TestAggregateDaily_NilPnLEmitsZeroRow(t *testing.T) {
	d := domain.Day(2021, time.March, 1)

	open := goodTrade(d, 0)
	open.StraddlePnL = nil // exit never matched
	open.PosSign = domain.PosSignLong

	agg := NewAggregator(memory.NewTradeTableStore(), Options{}, nil)
	daily := agg.AggregateDaily([]*domain.StraddleTrade{open})

	// The day traded even though nothing realized: a zero row, not a gap.
	if len(daily) != 1 {
		t.Fatalf("expected 1 daily record, got %d", len(daily))
	}
	if daily[0].DailyPnL != 0 || daily[0].PosSign != domain.PosSignLong {
		t.Errorf("unexpected record: %+v", daily[0])
	}
}

func TestAggregateDaily_NilPnLDroppedUnderSizing(t *testing.T) {
	d := domain.Day(2021, time.March, 1)

	open := goodTrade(d, 0)
	open.StraddlePnL = nil
	open.PosSign = domain.PosSignLong

	agg := NewAggregator(memory.NewTradeTableStore(), Options{VegaPerTrade: 100}, nil)
	daily := agg.AggregateDaily([]*domain.StraddleTrade{open})

	// Sizing has no PnL to scale; the trade drops before grouping.
	if len(daily) != 0 {
		t.Errorf("expected no daily records, got %d", len(daily))
	}
}

func TestAggregateDaily_AssociativeOverTickers(t *testing.T) {
	d1 := domain.Day(2021, time.March, 1)
	d2 := domain.Day(2021, time.March, 2)

	ticker := func(name string, trades ...*domain.StraddleTrade) []*domain.StraddleTrade {
		for _, tr := range trades {
			tr.Ticker = name
		}
		return trades
	}
	long := func(tr *domain.StraddleTrade) *domain.StraddleTrade {
		tr.PosSign = domain.PosSignLong
		return tr
	}
	short := func(tr *domain.StraddleTrade) *domain.StraddleTrade {
		tr.PosSign = domain.PosSignShort
		return tr
	}

	a := ticker("AAPL", long(goodTrade(d1, 10)), short(goodTrade(d1, -2)), long(goodTrade(d2, 4)))
	b := ticker("MSFT", long(goodTrade(d1, 6)), long(goodTrade(d2, -1)))
	c := ticker("NVDA", short(goodTrade(d1, 3)), long(goodTrade(d2, 8)))

	agg := NewAggregator(memory.NewTradeTableStore(), Options{VegaPerTrade: 100}, nil)

	// Aggregate {AAPL, MSFT} and {NVDA} separately, then sum per key.
	type key struct {
		date int64
		sign string
	}
	partial := make(map[key]float64)
	for _, subset := range [][]*domain.StraddleTrade{append(append([]*domain.StraddleTrade{}, a...), b...), c} {
		for _, rec := range agg.AggregateDaily(subset) {
			partial[key{rec.TradingDate.Unix(), rec.PosSign}] += rec.DailyPnL
		}
	}

	// One-shot aggregation over all three tickers.
	all := append(append(append([]*domain.StraddleTrade{}, a...), b...), c...)
	whole := agg.AggregateDaily(all)

	if len(whole) != len(partial) {
		t.Fatalf("expected %d keys, got %d", len(partial), len(whole))
	}
	for _, rec := range whole {
		k := key{rec.TradingDate.Unix(), rec.PosSign}
		got, ok := partial[k]
		if !ok {
			t.Errorf("key (%v, %s) missing from summed subsets", rec.TradingDate, rec.PosSign)
			continue
		}
		if got != rec.DailyPnL {
			t.Errorf("key (%v, %s): subsets sum to %v, whole run has %v",
				rec.TradingDate, rec.PosSign, got, rec.DailyPnL)
		}
	}
}
