package clickhouse

import (
	"context"
	"fmt"
	"time"

	"earnings-straddle-lab/internal/domain"
	"earnings-straddle-lab/internal/storage"
)

// QuoteStore implements storage.QuoteStore using ClickHouse.
type QuoteStore struct {
	conn *Conn
}

// NewQuoteStore creates a new QuoteStore.
func NewQuoteStore(conn *Conn) *QuoteStore {
	return &QuoteStore{conn: conn}
}

// Compile-time interface check.
var _ storage.QuoteStore = (*QuoteStore)(nil)

// InsertBulk adds multiple quotes. Fails entire batch on a duplicate
// (ticker, trading_date, expiry_date, strike, side).
func (s *QuoteStore) InsertBulk(ctx context.Context, quotes []*domain.QuoteRecord) error {
	if len(quotes) == 0 {
		return nil
	}

	// Check for intra-batch duplicates
	type key struct {
		ticker      string
		tradingDate time.Time
		expiryDate  time.Time
		strike      float64
		side        domain.OptionSide
	}
	seen := make(map[key]struct{}, len(quotes))
	for _, q := range quotes {
		k := key{q.Ticker, q.TradingDate, q.ExpiryDate, q.Strike, q.Side}
		if _, exists := seen[k]; exists {
			return storage.ErrDuplicateKey
		}
		seen[k] = struct{}{}
	}

	// Check for duplicates against existing DB rows
	for _, q := range quotes {
		exists, err := s.exists(ctx, q)
		if err != nil {
			return fmt.Errorf("check exists: %w", err)
		}
		if exists {
			return storage.ErrDuplicateKey
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO option_quotes (
			ticker, trading_date, expiry_date, strike, side,
			price, iv, delta, vega, underlying_close
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, q := range quotes {
		err = batch.Append(
			q.Ticker, q.TradingDate, q.ExpiryDate, q.Strike, string(q.Side),
			q.Price, q.IV, q.Delta, q.Vega, q.UnderlyingClose,
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByTicker retrieves all quotes for a ticker, ordered by trading_date,
// side, expiry_date, strike. Downstream reduction relies on this ordering.
func (s *QuoteStore) GetByTicker(ctx context.Context, ticker string) ([]*domain.QuoteRecord, error) {
	query := `
		SELECT ticker, trading_date, expiry_date, strike, side,
		       price, iv, delta, vega, underlying_close
		FROM option_quotes
		WHERE ticker = ?
		ORDER BY trading_date ASC, side ASC, expiry_date ASC, strike ASC
	`

	rows, err := s.conn.Query(ctx, query, ticker)
	if err != nil {
		return nil, fmt.Errorf("query quotes by ticker: %w", err)
	}
	defer rows.Close()

	return scanQuotes(rows)
}

// exists checks if a quote with the given key exists.
func (s *QuoteStore) exists(ctx context.Context, q *domain.QuoteRecord) (bool, error) {
	query := `
		SELECT count(*) FROM option_quotes
		WHERE ticker = ? AND trading_date = ? AND expiry_date = ?
		  AND strike = ? AND side = ?
	`

	var count uint64
	err := s.conn.QueryRow(ctx, query,
		q.Ticker, q.TradingDate, q.ExpiryDate, q.Strike, string(q.Side),
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// scanQuotes scans multiple rows.
func scanQuotes(rows chRows) ([]*domain.QuoteRecord, error) {
	var quotes []*domain.QuoteRecord

	for rows.Next() {
		var q domain.QuoteRecord
		var side string

		err := rows.Scan(
			&q.Ticker, &q.TradingDate, &q.ExpiryDate, &q.Strike, &side,
			&q.Price, &q.IV, &q.Delta, &q.Vega, &q.UnderlyingClose,
		)
		if err != nil {
			return nil, fmt.Errorf("scan quote row: %w", err)
		}

		q.TradingDate = domain.Midnight(q.TradingDate.UTC())
		q.ExpiryDate = domain.Midnight(q.ExpiryDate.UTC())
		q.Side = domain.OptionSide(side)
		quotes = append(quotes, &q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quote rows: %w", err)
	}

	return quotes, nil
}
