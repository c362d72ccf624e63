// Package csvdir persists backtest artifacts as CSV files under a base
// directory, one subdirectory per variant and one file per ticker.
package csvdir

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"earnings-straddle-lab/internal/domain"
	"earnings-straddle-lab/internal/storage"
)

// TradeTableStore writes trade tables to <base>/<variant>/<ticker>.csv.
// Saves replace the whole file, so partial reruns stay consistent.
type TradeTableStore struct {
	base string
}

var _ storage.TradeTableStore = (*TradeTableStore)(nil)

func NewTradeTableStore(base string) *TradeTableStore {
	return &TradeTableStore{base: base}
}

func (s *TradeTableStore) SaveTicker(ctx context.Context, variant, ticker string, trades []*domain.StraddleTrade) error {
	rows := make([][]string, 0, len(trades)+1)
	rows = append(rows, tradeHeader)
	for _, t := range trades {
		rows = append(rows, encodeTrade(t))
	}
	return s.writeFile(variant, ticker, rows)
}

func (s *TradeTableStore) SaveTickerLegs(ctx context.Context, variant, ticker string, legs []*domain.TradeLeg) error {
	rows := make([][]string, 0, len(legs)+1)
	rows = append(rows, legHeader)
	for _, l := range legs {
		rows = append(rows, encodeLeg(l))
	}
	return s.writeFile(variant, ticker, rows)
}

func (s *TradeTableStore) LoadVariant(ctx context.Context, variant string) ([]*domain.StraddleTrade, error) {
	dir := filepath.Join(s.base, variant)

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read variant dir %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".csv") {
			continue
		}
		names = append(names, e.Name())
	}
	if len(names) == 0 {
		return nil, storage.ErrNotFound
	}
	sort.Strings(names)

	var trades []*domain.StraddleTrade
	for _, name := range names {
		tt, err := s.readTickerFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		trades = append(trades, tt...)
	}
	return trades, nil
}

func (s *TradeTableStore) readTickerFile(path string) ([]*domain.StraddleTrade, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	trades := make([]*domain.StraddleTrade, 0, len(records)-1)
	for i, rec := range records[1:] {
		t, err := decodeTrade(rec)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		trades = append(trades, t)
	}
	return trades, nil
}

func (s *TradeTableStore) writeFile(variant, ticker string, rows [][]string) error {
	dir := filepath.Join(s.base, variant)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create variant dir %s: %w", dir, err)
	}
	return writeCSV(filepath.Join(dir, ticker+".csv"), rows)
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
