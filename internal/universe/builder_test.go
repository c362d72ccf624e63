package universe

import (
	"context"
	"testing"
	"time"

	"earnings-straddle-lab/internal/domain"
	"earnings-straddle-lab/internal/storage/memory"
)

func seedVolumes(t *testing.T, points []*domain.OptionVolumePoint) *memory.OptionVolumeStore {
	t.Helper()
	store := memory.NewOptionVolumeStore()
	if err := store.InsertBulk(context.Background(), points); err != nil {
		t.Fatalf("seeding volumes failed: %v", err)
	}
	return store
}

func point(ticker string, day int, volume float64) *domain.OptionVolumePoint {
	return &domain.OptionVolumePoint{
		Ticker: ticker,
		Date:   domain.Day(2021, time.March, day),
		Volume: volume,
	}
}

func TestTickers_VolumeFloor(t *testing.T) {
	store := seedVolumes(t, []*domain.OptionVolumePoint{
		// AAPL window mean clears the floor
		point("AAPL", 1, 9_000),
		point("AAPL", 2, 15_000),
		point("AAPL", 3, 12_000),
		// THIN never does
		point("THIN", 1, 2_000),
		point("THIN", 2, 3_000),
		point("THIN", 3, 1_000),
	})

	tickers, err := NewBuilder(store).Tickers(context.Background())
	if err != nil {
		t.Fatalf("Tickers failed: %v", err)
	}
	if len(tickers) != 1 || tickers[0] != "AAPL" {
		t.Errorf("expected [AAPL], got %v", tickers)
	}
}

func TestTickers_MeanAtFloorExcluded(t *testing.T) {
	store := seedVolumes(t, []*domain.OptionVolumePoint{
		point("EDGE", 1, 10_000),
		point("EDGE", 2, 10_000),
	})

	tickers, err := NewBuilder(store).Tickers(context.Background())
	if err != nil {
		t.Fatalf("Tickers failed: %v", err)
	}
	if len(tickers) != 0 {
		t.Errorf("mean exactly at the floor should not qualify, got %v", tickers)
	}
}

func TestTickers_SingleHotWindowQualifies(t *testing.T) {
	// A long quiet stretch, then one 20-day window that clears the floor.
	var points []*domain.OptionVolumePoint
	for day := 1; day <= 20; day++ {
		points = append(points, point("BURST", day, 100))
	}
	points = append(points, &domain.OptionVolumePoint{
		Ticker: "BURST",
		Date:   domain.Day(2021, time.June, 1),
		Volume: 50_000,
	})
	store := seedVolumes(t, points)

	tickers, err := NewBuilder(store).Tickers(context.Background())
	if err != nil {
		t.Fatalf("Tickers failed: %v", err)
	}
	if len(tickers) != 1 || tickers[0] != "BURST" {
		t.Errorf("expected [BURST], got %v", tickers)
	}
}

func TestTickers_WindowIsTrailing(t *testing.T) {
	// The hot print is outside every trailing 20-day window anchored at
	// the later quiet observations, and its own window holds only itself
	// plus quiet prints.
	store := seedVolumes(t, []*domain.OptionVolumePoint{
		point("LAG", 1, 15_000),
		{Ticker: "LAG", Date: domain.Day(2021, time.June, 1), Volume: 100},
		{Ticker: "LAG", Date: domain.Day(2021, time.June, 2), Volume: 100},
	})

	tickers, err := NewBuilder(store).Tickers(context.Background())
	if err != nil {
		t.Fatalf("Tickers failed: %v", err)
	}
	// The March 1 observation anchors a window containing only itself.
	if len(tickers) != 1 || tickers[0] != "LAG" {
		t.Errorf("expected [LAG] via its own anchor window, got %v", tickers)
	}
}

func TestTickers_SectorIndexesExcluded(t *testing.T) {
	store := seedVolumes(t, []*domain.OptionVolumePoint{
		point("SPY", 1, 1_000_000),
		point("QQQ", 1, 800_000),
		point("XLF", 1, 500_000),
		point("NVDA", 1, 40_000),
	})

	tickers, err := NewBuilder(store).Tickers(context.Background())
	if err != nil {
		t.Fatalf("Tickers failed: %v", err)
	}
	if len(tickers) != 1 || tickers[0] != "NVDA" {
		t.Errorf("expected [NVDA], got %v", tickers)
	}
}

func TestTickers_SortedUnique(t *testing.T) {
	store := seedVolumes(t, []*domain.OptionVolumePoint{
		point("MSFT", 1, 40_000),
		point("AAPL", 1, 40_000),
		point("GOOG", 1, 40_000),
	})

	tickers, err := NewBuilder(store).Tickers(context.Background())
	if err != nil {
		t.Fatalf("Tickers failed: %v", err)
	}
	want := []string{"AAPL", "GOOG", "MSFT"}
	if len(tickers) != len(want) {
		t.Fatalf("expected %v, got %v", want, tickers)
	}
	for i := range want {
		if tickers[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], tickers[i])
		}
	}
}

func TestTickers_EmptyStore(t *testing.T) {
	tickers, err := NewBuilder(memory.NewOptionVolumeStore()).Tickers(context.Background())
	if err != nil {
		t.Fatalf("Tickers failed: %v", err)
	}
	if len(tickers) != 0 {
		t.Errorf("expected empty universe, got %v", tickers)
	}
}
