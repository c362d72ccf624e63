package csvdir

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"earnings-straddle-lab/internal/domain"
	"earnings-straddle-lab/internal/storage"
)

var dailyHeader = []string{"trading_date", "pos_sign", "daily_pnl"}

// DailyPnLStore writes aggregation artifacts at the base directory root,
// one file per include selection.
type DailyPnLStore struct {
	base string
}

var _ storage.DailyPnLStore = (*DailyPnLStore)(nil)

func NewDailyPnLStore(base string) *DailyPnLStore {
	return &DailyPnLStore{base: base}
}

func (s *DailyPnLStore) SaveSeries(ctx context.Context, include domain.Include, records []*domain.DailyPnL) error {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, dailyHeader)
	for _, r := range records {
		rows = append(rows, []string{fmtDate(r.TradingDate), r.PosSign, fmtFloat(r.DailyPnL)})
	}
	return s.write(fmt.Sprintf("backtest_daily_%s.csv", include), rows)
}

func (s *DailyPnLStore) SaveMerged(ctx context.Context, include domain.Include, trades []*domain.StraddleTrade) error {
	header := append(append([]string{}, tradeHeader...), "pos_sign")
	rows := make([][]string, 0, len(trades)+1)
	rows = append(rows, header)
	for _, t := range trades {
		rows = append(rows, append(encodeTrade(t), t.PosSign))
	}
	return s.write(fmt.Sprintf("merged_trades_%s.csv", include), rows)
}

func (s *DailyPnLStore) write(name string, rows [][]string) error {
	if err := os.MkdirAll(s.base, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", s.base, err)
	}
	return writeCSV(filepath.Join(s.base, name), rows)
}
