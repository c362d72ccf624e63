package clickhouse

import (
	"context"
	"fmt"
	"time"

	"earnings-straddle-lab/internal/domain"
	"earnings-straddle-lab/internal/storage"
)

// OptionVolumeStore implements storage.OptionVolumeStore using ClickHouse.
type OptionVolumeStore struct {
	conn *Conn
}

// NewOptionVolumeStore creates a new OptionVolumeStore.
func NewOptionVolumeStore(conn *Conn) *OptionVolumeStore {
	return &OptionVolumeStore{conn: conn}
}

// Compile-time interface check.
var _ storage.OptionVolumeStore = (*OptionVolumeStore)(nil)

// InsertBulk adds multiple points. Fails entire batch on duplicate (ticker, date).
func (s *OptionVolumeStore) InsertBulk(ctx context.Context, points []*domain.OptionVolumePoint) error {
	if len(points) == 0 {
		return nil
	}

	// Check for intra-batch duplicates
	type key struct {
		ticker string
		date   time.Time
	}
	seen := make(map[key]struct{}, len(points))
	for _, p := range points {
		k := key{p.Ticker, p.Date}
		if _, exists := seen[k]; exists {
			return storage.ErrDuplicateKey
		}
		seen[k] = struct{}{}
	}

	// Check for duplicates against existing DB rows
	for _, p := range points {
		exists, err := s.exists(ctx, p.Ticker, p.Date)
		if err != nil {
			return fmt.Errorf("check exists: %w", err)
		}
		if exists {
			return storage.ErrDuplicateKey
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO option_volume (ticker, date, volume)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, p := range points {
		if err := batch.Append(p.Ticker, p.Date, p.Volume); err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetAll retrieves every point, ordered by ticker ASC, date ASC.
func (s *OptionVolumeStore) GetAll(ctx context.Context) ([]*domain.OptionVolumePoint, error) {
	query := `
		SELECT ticker, date, volume
		FROM option_volume
		ORDER BY ticker ASC, date ASC
	`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query option volume: %w", err)
	}
	defer rows.Close()

	var points []*domain.OptionVolumePoint
	for rows.Next() {
		var p domain.OptionVolumePoint

		if err := rows.Scan(&p.Ticker, &p.Date, &p.Volume); err != nil {
			return nil, fmt.Errorf("scan option volume row: %w", err)
		}

		p.Date = domain.Midnight(p.Date.UTC())
		points = append(points, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate option volume rows: %w", err)
	}

	return points, nil
}

// exists checks if a point with the given key exists.
func (s *OptionVolumeStore) exists(ctx context.Context, ticker string, date time.Time) (bool, error) {
	query := `
		SELECT count(*) FROM option_volume
		WHERE ticker = ? AND date = ?
	`

	var count uint64
	err := s.conn.QueryRow(ctx, query, ticker, date).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
