package memory

import (
	"context"
	"sort"
	"sync"

	"earnings-straddle-lab/internal/domain"
	"earnings-straddle-lab/internal/storage"
)

type volumeKey struct {
	ticker string
	date   int64
}

// OptionVolumeStore is an in-memory implementation of
// storage.OptionVolumeStore.
type OptionVolumeStore struct {
	mu   sync.RWMutex
	data map[volumeKey]*domain.OptionVolumePoint
}

// NewOptionVolumeStore creates a new in-memory option volume store.
func NewOptionVolumeStore() *OptionVolumeStore {
	return &OptionVolumeStore{data: make(map[volumeKey]*domain.OptionVolumePoint)}
}

// Compile-time interface check.
var _ storage.OptionVolumeStore = (*OptionVolumeStore)(nil)

// InsertBulk adds multiple points. Fails the entire batch on any duplicate.
func (s *OptionVolumeStore) InsertBulk(_ context.Context, points []*domain.OptionVolumePoint) error {
	if len(points) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batchKeys := make(map[volumeKey]struct{}, len(points))
	for _, p := range points {
		if p == nil || p.Ticker == "" {
			return storage.ErrInvalidInput
		}
		k := volumeKey{p.Ticker, p.Date.Unix()}
		if _, exists := s.data[k]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[k]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[k] = struct{}{}
	}

	for _, p := range points {
		copy := *p
		s.data[volumeKey{p.Ticker, p.Date.Unix()}] = &copy
	}
	return nil
}

// GetAll retrieves every point, ordered by ticker ASC, date ASC.
func (s *OptionVolumeStore) GetAll(_ context.Context) ([]*domain.OptionVolumePoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.OptionVolumePoint, 0, len(s.data))
	for _, p := range s.data {
		copy := *p
		out = append(out, &copy)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Ticker != out[j].Ticker {
			return out[i].Ticker < out[j].Ticker
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}
