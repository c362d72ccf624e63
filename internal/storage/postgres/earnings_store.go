package postgres

import (
	"context"
	"fmt"

	"earnings-straddle-lab/internal/domain"
	"earnings-straddle-lab/internal/storage"
)

// EarningsCalendarStore implements storage.EarningsCalendarStore using PostgreSQL.
type EarningsCalendarStore struct {
	pool *Pool
}

// NewEarningsCalendarStore creates a new EarningsCalendarStore.
func NewEarningsCalendarStore(pool *Pool) *EarningsCalendarStore {
	return &EarningsCalendarStore{pool: pool}
}

// Compile-time interface check.
var _ storage.EarningsCalendarStore = (*EarningsCalendarStore)(nil)

// InsertBulk adds multiple earnings events atomically. Fails entire batch on
// a duplicate (ticker, earn_date).
func (s *EarningsCalendarStore) InsertBulk(ctx context.Context, events []*domain.EarningsEvent) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO earnings_calendar (ticker, earn_date, earn_time)
		VALUES ($1, $2, $3)
	`

	for _, e := range events {
		_, err := tx.Exec(ctx, query, e.Ticker, e.EarnDate, string(e.EarnTime))
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert earnings event: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// GetByTicker retrieves the AMC/BMO events for a ticker ordered by earn_date.
// Unconfirmed timings are filtered at the query level.
func (s *EarningsCalendarStore) GetByTicker(ctx context.Context, ticker string) ([]*domain.EarningsEvent, error) {
	query := `
		SELECT ticker, earn_date, earn_time
		FROM earnings_calendar
		WHERE ticker = $1 AND earn_time IN ($2, $3)
		ORDER BY earn_date ASC
	`

	rows, err := s.pool.Query(ctx, query, ticker,
		string(domain.TimingAMC), string(domain.TimingBMO))
	if err != nil {
		return nil, fmt.Errorf("get earnings by ticker: %w", err)
	}
	defer rows.Close()

	var events []*domain.EarningsEvent
	for rows.Next() {
		var e domain.EarningsEvent
		var timing string

		if err := rows.Scan(&e.Ticker, &e.EarnDate, &timing); err != nil {
			return nil, fmt.Errorf("scan earnings row: %w", err)
		}

		e.EarnDate = domain.Midnight(e.EarnDate.UTC())
		e.EarnTime = domain.Timing(timing)
		events = append(events, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate earnings rows: %w", err)
	}

	return events, nil
}
