package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"earnings-straddle-lab/internal/domain"
	"earnings-straddle-lab/internal/storage/memory"
)

type stubQuoteSource struct {
	quotes []*domain.QuoteRecord
	err    error
}

func (s *stubQuoteSource) Fetch(context.Context) ([]*domain.QuoteRecord, error) {
	return s.quotes, s.err
}

type stubEarningsSource struct {
	events []*domain.EarningsEvent
	err    error
}

func (s *stubEarningsSource) Fetch(context.Context) ([]*domain.EarningsEvent, error) {
	return s.events, s.err
}

type stubVolumeSource struct {
	points []*domain.OptionVolumePoint
}

func (s *stubVolumeSource) Fetch(context.Context) ([]*domain.OptionVolumePoint, error) {
	return s.points, nil
}

func quoteRec(ticker string, day int, side domain.OptionSide) *domain.QuoteRecord {
	return &domain.QuoteRecord{
		Ticker:          ticker,
		TradingDate:     domain.Day(2021, time.March, day),
		ExpiryDate:      domain.Day(2021, time.March, 19),
		Strike:          120,
		Side:            side,
		Price:           1.5,
		IV:              0.4,
		Delta:           0.5,
		Vega:            0.05,
		UnderlyingClose: 119,
	}
}

func TestIngestQuotes_SortsBeforeInsert(t *testing.T) {
	store := memory.NewQuoteStore()
	m := NewManager(ManagerOptions{
		QuoteSource: &stubQuoteSource{quotes: []*domain.QuoteRecord{
			quoteRec("AAPL", 15, domain.SidePut),
			quoteRec("AAPL", 1, domain.SideCall),
			quoteRec("AAPL", 15, domain.SideCall),
		}},
		QuoteStore: store,
	})

	n, err := m.IngestQuotes(context.Background())
	if err != nil {
		t.Fatalf("IngestQuotes failed: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 ingested, got %d", n)
	}

	quotes, err := store.GetByTicker(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("GetByTicker failed: %v", err)
	}
	if len(quotes) != 3 {
		t.Fatalf("expected 3 stored quotes, got %d", len(quotes))
	}
}

func TestIngestQuotes_SourceError(t *testing.T) {
	wantErr := errors.New("feed unavailable")
	m := NewManager(ManagerOptions{
		QuoteSource: &stubQuoteSource{err: wantErr},
		QuoteStore:  memory.NewQuoteStore(),
	})

	if _, err := m.IngestQuotes(context.Background()); !errors.Is(err, wantErr) {
		t.Errorf("expected source error, got %v", err)
	}
}

func TestIngestQuotes_NilSource(t *testing.T) {
	m := NewManager(ManagerOptions{QuoteStore: memory.NewQuoteStore()})
	n, err := m.IngestQuotes(context.Background())
	if err != nil || n != 0 {
		t.Errorf("expected (0, nil) with no source, got (%d, %v)", n, err)
	}
}

func TestIngestEarnings(t *testing.T) {
	store := memory.NewEarningsCalendarStore()
	m := NewManager(ManagerOptions{
		EarningsSource: &stubEarningsSource{events: []*domain.EarningsEvent{
			{Ticker: "AAPL", EarnDate: domain.Day(2021, time.May, 3), EarnTime: domain.TimingAMC},
			{Ticker: "AAPL", EarnDate: domain.Day(2021, time.February, 1), EarnTime: domain.TimingBMO},
		}},
		EarningsStore: store,
	})

	n, err := m.IngestEarnings(context.Background())
	if err != nil {
		t.Fatalf("IngestEarnings failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 ingested, got %d", n)
	}

	events, err := store.GetByTicker(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("GetByTicker failed: %v", err)
	}
	if len(events) != 2 || !events[0].EarnDate.Before(events[1].EarnDate) {
		t.Errorf("expected 2 date-ordered events, got %+v", events)
	}
}

func TestIngestEarnings_EmptyFetch(t *testing.T) {
	m := NewManager(ManagerOptions{
		EarningsSource: &stubEarningsSource{},
		EarningsStore:  memory.NewEarningsCalendarStore(),
	})
	n, err := m.IngestEarnings(context.Background())
	if err != nil || n != 0 {
		t.Errorf("expected (0, nil) on empty fetch, got (%d, %v)", n, err)
	}
}

func TestIngestOptionVolume(t *testing.T) {
	store := memory.NewOptionVolumeStore()
	m := NewManager(ManagerOptions{
		VolumeSource: &stubVolumeSource{points: []*domain.OptionVolumePoint{
			{Ticker: "MSFT", Date: domain.Day(2021, time.March, 2), Volume: 5000},
			{Ticker: "AAPL", Date: domain.Day(2021, time.March, 1), Volume: 20000},
		}},
		VolumeStore: store,
	})

	n, err := m.IngestOptionVolume(context.Background())
	if err != nil {
		t.Fatalf("IngestOptionVolume failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 ingested, got %d", n)
	}

	points, err := store.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(points) != 2 || points[0].Ticker != "AAPL" {
		t.Errorf("unexpected stored points: %+v", points)
	}
}
