package ingest

import (
	"context"

	"earnings-straddle-lab/internal/domain"
)

// QuoteSource provides raw option quote observations from external data.
type QuoteSource interface {
	// Fetch returns all quote records from the source. Records may be
	// unordered; Manager enforces deterministic ordering.
	Fetch(ctx context.Context) ([]*domain.QuoteRecord, error)
}

// EarningsSource provides raw earnings calendar rows from external data.
type EarningsSource interface {
	// Fetch returns all earnings events from the source, any timing value
	// included. Filtering to material timings happens at read time.
	Fetch(ctx context.Context) ([]*domain.EarningsEvent, error)
}

// OptionVolumeSource provides raw daily option volume from external data.
type OptionVolumeSource interface {
	Fetch(ctx context.Context) ([]*domain.OptionVolumePoint, error)
}
