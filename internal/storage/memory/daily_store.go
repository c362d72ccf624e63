package memory

import (
	"context"
	"sync"

	"earnings-straddle-lab/internal/domain"
	"earnings-straddle-lab/internal/storage"
)

// DailyPnLStore is an in-memory implementation of storage.DailyPnLStore.
type DailyPnLStore struct {
	mu     sync.RWMutex
	series map[domain.Include][]*domain.DailyPnL
	merged map[domain.Include][]*domain.StraddleTrade
}

// NewDailyPnLStore creates a new in-memory daily PnL store.
func NewDailyPnLStore() *DailyPnLStore {
	return &DailyPnLStore{
		series: make(map[domain.Include][]*domain.DailyPnL),
		merged: make(map[domain.Include][]*domain.StraddleTrade),
	}
}

// Compile-time interface check.
var _ storage.DailyPnLStore = (*DailyPnLStore)(nil)

// SaveSeries overwrites the daily PnL series for a variant selection.
func (s *DailyPnLStore) SaveSeries(_ context.Context, include domain.Include, records []*domain.DailyPnL) error {
	if !include.Valid() {
		return storage.ErrInvalidInput
	}

	copied := make([]*domain.DailyPnL, len(records))
	for i, r := range records {
		c := *r
		copied[i] = &c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.series[include] = copied
	return nil
}

// SaveMerged overwrites the merged pre-aggregation trade table.
func (s *DailyPnLStore) SaveMerged(_ context.Context, include domain.Include, trades []*domain.StraddleTrade) error {
	if !include.Valid() {
		return storage.ErrInvalidInput
	}

	copied := make([]*domain.StraddleTrade, len(trades))
	for i, t := range trades {
		c := *t
		copied[i] = &c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.merged[include] = copied
	return nil
}

// Series returns the stored series for a selection (test helper).
func (s *DailyPnLStore) Series(include domain.Include) []*domain.DailyPnL {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.series[include]
}

// Merged returns the stored merged trade table for a selection (test helper).
func (s *DailyPnLStore) Merged(include domain.Include) []*domain.StraddleTrade {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.merged[include]
}
