package memory

import (
	"context"
	"sort"
	"sync"

	"earnings-straddle-lab/internal/domain"
	"earnings-straddle-lab/internal/storage"
)

type quoteKey struct {
	ticker      string
	tradingDate int64
	expiryDate  int64
	strike      float64
	side        domain.OptionSide
}

// QuoteStore is an in-memory implementation of storage.QuoteStore.
type QuoteStore struct {
	mu   sync.RWMutex
	data map[quoteKey]*domain.QuoteRecord
}

// NewQuoteStore creates a new in-memory quote store.
func NewQuoteStore() *QuoteStore {
	return &QuoteStore{data: make(map[quoteKey]*domain.QuoteRecord)}
}

// Compile-time interface check.
var _ storage.QuoteStore = (*QuoteStore)(nil)

func keyOf(q *domain.QuoteRecord) quoteKey {
	return quoteKey{
		ticker:      q.Ticker,
		tradingDate: q.TradingDate.Unix(),
		expiryDate:  q.ExpiryDate.Unix(),
		strike:      q.Strike,
		side:        q.Side,
	}
}

// InsertBulk adds multiple quotes. Fails the entire batch on any duplicate.
func (s *QuoteStore) InsertBulk(_ context.Context, quotes []*domain.QuoteRecord) error {
	if len(quotes) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batchKeys := make(map[quoteKey]struct{}, len(quotes))
	for _, q := range quotes {
		if q == nil || q.Ticker == "" {
			return storage.ErrInvalidInput
		}
		k := keyOf(q)
		if _, exists := s.data[k]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[k]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[k] = struct{}{}
	}

	for _, q := range quotes {
		copy := *q
		s.data[keyOf(q)] = &copy
	}
	return nil
}

// GetByTicker retrieves all quotes for a ticker, ordered by trading_date,
// side, expiry_date, strike.
func (s *QuoteStore) GetByTicker(_ context.Context, ticker string) ([]*domain.QuoteRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.QuoteRecord
	for _, q := range s.data {
		if q.Ticker == ticker {
			copy := *q
			out = append(out, &copy)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.TradingDate.Equal(b.TradingDate) {
			return a.TradingDate.Before(b.TradingDate)
		}
		if a.Side != b.Side {
			return a.Side < b.Side
		}
		if !a.ExpiryDate.Equal(b.ExpiryDate) {
			return a.ExpiryDate.Before(b.ExpiryDate)
		}
		return a.Strike < b.Strike
	})
	return out, nil
}
