package memory

import (
	"context"
	"sort"
	"sync"

	"earnings-straddle-lab/internal/domain"
	"earnings-straddle-lab/internal/storage"
)

type tableKey struct {
	variant string
	ticker  string
}

// TradeTableStore is an in-memory implementation of storage.TradeTableStore.
type TradeTableStore struct {
	mu     sync.RWMutex
	tables map[tableKey][]*domain.StraddleTrade
	legs   map[tableKey][]*domain.TradeLeg
}

// NewTradeTableStore creates a new in-memory trade table store.
func NewTradeTableStore() *TradeTableStore {
	return &TradeTableStore{
		tables: make(map[tableKey][]*domain.StraddleTrade),
		legs:   make(map[tableKey][]*domain.TradeLeg),
	}
}

// Compile-time interface check.
var _ storage.TradeTableStore = (*TradeTableStore)(nil)

// SaveTicker overwrites the pivoted straddle table for one ticker.
func (s *TradeTableStore) SaveTicker(_ context.Context, variant, ticker string, trades []*domain.StraddleTrade) error {
	if variant == "" || ticker == "" {
		return storage.ErrInvalidInput
	}

	copied := make([]*domain.StraddleTrade, len(trades))
	for i, t := range trades {
		c := *t
		copied[i] = &c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[tableKey{variant, ticker}] = copied
	return nil
}

// SaveTickerLegs overwrites the raw per-leg table for one ticker.
func (s *TradeTableStore) SaveTickerLegs(_ context.Context, variant, ticker string, legs []*domain.TradeLeg) error {
	if variant == "" || ticker == "" {
		return storage.ErrInvalidInput
	}

	copied := make([]*domain.TradeLeg, len(legs))
	for i, l := range legs {
		c := *l
		copied[i] = &c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.legs[tableKey{variant, ticker}] = copied
	return nil
}

// Legs returns the stored leg table for one ticker (test helper).
func (s *TradeTableStore) Legs(variant, ticker string) []*domain.TradeLeg {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.legs[tableKey{variant, ticker}]
}

// LoadVariant loads every persisted straddle table for a variant, tickers
// in lexical order. Returns ErrNotFound when the variant has no tables.
func (s *TradeTableStore) LoadVariant(_ context.Context, variant string) ([]*domain.StraddleTrade, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var tickers []string
	for k := range s.tables {
		if k.variant == variant {
			tickers = append(tickers, k.ticker)
		}
	}
	if len(tickers) == 0 {
		return nil, storage.ErrNotFound
	}
	sort.Strings(tickers)

	var out []*domain.StraddleTrade
	for _, tk := range tickers {
		for _, t := range s.tables[tableKey{variant, tk}] {
			copy := *t
			out = append(out, &copy)
		}
	}
	return out, nil
}
