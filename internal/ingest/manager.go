// Package ingest loads market data from external sources into storage.
package ingest

import (
	"context"

	"earnings-straddle-lab/internal/storage"
)

// Manager orchestrates ingestion from sources to storage.
// It enforces deterministic ordering and relies on the storage layer for
// duplicate rejection.
type Manager struct {
	quoteSource    QuoteSource
	earningsSource EarningsSource
	volumeSource   OptionVolumeSource

	quoteStore    storage.QuoteStore
	earningsStore storage.EarningsCalendarStore
	volumeStore   storage.OptionVolumeStore
}

// ManagerOptions contains configuration for creating a Manager.
type ManagerOptions struct {
	QuoteSource    QuoteSource
	EarningsSource EarningsSource
	VolumeSource   OptionVolumeSource

	QuoteStore    storage.QuoteStore
	EarningsStore storage.EarningsCalendarStore
	VolumeStore   storage.OptionVolumeStore
}

// NewManager creates a new ingestion manager with the provided sources and stores.
func NewManager(opts ManagerOptions) *Manager {
	return &Manager{
		quoteSource:    opts.QuoteSource,
		earningsSource: opts.EarningsSource,
		volumeSource:   opts.VolumeSource,
		quoteStore:     opts.QuoteStore,
		earningsStore:  opts.EarningsStore,
		volumeStore:    opts.VolumeStore,
	}
}

// IngestQuotes fetches quote records from source and stores them.
// Returns count of ingested records. Duplicates are rejected by the
// storage layer (ErrDuplicateKey).
func (m *Manager) IngestQuotes(ctx context.Context) (int, error) {
	if m.quoteSource == nil || m.quoteStore == nil {
		return 0, nil
	}

	quotes, err := m.quoteSource.Fetch(ctx)
	if err != nil {
		return 0, err
	}
	if len(quotes) == 0 {
		return 0, nil
	}

	SortQuotes(quotes)

	if err := m.quoteStore.InsertBulk(ctx, quotes); err != nil {
		return 0, err
	}
	return len(quotes), nil
}

// IngestEarnings fetches earnings events from source and stores them.
func (m *Manager) IngestEarnings(ctx context.Context) (int, error) {
	if m.earningsSource == nil || m.earningsStore == nil {
		return 0, nil
	}

	events, err := m.earningsSource.Fetch(ctx)
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}

	SortEvents(events)

	if err := m.earningsStore.InsertBulk(ctx, events); err != nil {
		return 0, err
	}
	return len(events), nil
}

// IngestOptionVolume fetches daily option volume from source and stores it.
func (m *Manager) IngestOptionVolume(ctx context.Context) (int, error) {
	if m.volumeSource == nil || m.volumeStore == nil {
		return 0, nil
	}

	points, err := m.volumeSource.Fetch(ctx)
	if err != nil {
		return 0, err
	}
	if len(points) == 0 {
		return 0, nil
	}

	SortVolumePoints(points)

	if err := m.volumeStore.InsertBulk(ctx, points); err != nil {
		return 0, err
	}
	return len(points), nil
}
