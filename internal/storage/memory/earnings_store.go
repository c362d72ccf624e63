package memory

import (
	"context"
	"sort"
	"sync"

	"earnings-straddle-lab/internal/domain"
	"earnings-straddle-lab/internal/storage"
)

type eventKey struct {
	ticker   string
	earnDate int64
}

// EarningsCalendarStore is an in-memory implementation of
// storage.EarningsCalendarStore.
type EarningsCalendarStore struct {
	mu   sync.RWMutex
	data map[eventKey]*domain.EarningsEvent
}

// NewEarningsCalendarStore creates a new in-memory earnings calendar store.
func NewEarningsCalendarStore() *EarningsCalendarStore {
	return &EarningsCalendarStore{data: make(map[eventKey]*domain.EarningsEvent)}
}

// Compile-time interface check.
var _ storage.EarningsCalendarStore = (*EarningsCalendarStore)(nil)

// InsertBulk adds multiple events. Fails the entire batch on any duplicate
// (ticker, earn_date) key.
func (s *EarningsCalendarStore) InsertBulk(_ context.Context, events []*domain.EarningsEvent) error {
	if len(events) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batchKeys := make(map[eventKey]struct{}, len(events))
	for _, e := range events {
		if e == nil || e.Ticker == "" {
			return storage.ErrInvalidInput
		}
		k := eventKey{e.Ticker, e.EarnDate.Unix()}
		if _, exists := s.data[k]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[k]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[k] = struct{}{}
	}

	for _, e := range events {
		copy := *e
		s.data[eventKey{e.Ticker, e.EarnDate.Unix()}] = &copy
	}
	return nil
}

// GetByTicker retrieves the AMC/BMO events for a ticker, earn_date ASC.
// Events carrying any other timing tag are filtered out.
func (s *EarningsCalendarStore) GetByTicker(_ context.Context, ticker string) ([]*domain.EarningsEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.EarningsEvent
	for _, e := range s.data {
		if e.Ticker != ticker {
			continue
		}
		if e.EarnTime != domain.TimingAMC && e.EarnTime != domain.TimingBMO {
			continue
		}
		copy := *e
		out = append(out, &copy)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].EarnDate.Before(out[j].EarnDate)
	})
	return out, nil
}
