package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"earnings-straddle-lab/internal/domain"
)

const csvDateLayout = "2006-01-02"

// CSVQuoteSource reads quote records from a CSV file with header
// ticker,trading_date,expiry_date,strike,side,price,iv,delta,vega,underlying_close.
type CSVQuoteSource struct {
	Path string
}

var _ QuoteSource = (*CSVQuoteSource)(nil)

func (s *CSVQuoteSource) Fetch(ctx context.Context) ([]*domain.QuoteRecord, error) {
	rows, err := readCSV(s.Path, 10)
	if err != nil {
		return nil, err
	}

	quotes := make([]*domain.QuoteRecord, 0, len(rows))
	for i, rec := range rows {
		q := &domain.QuoteRecord{
			Ticker: rec[0],
			Side:   domain.OptionSide(rec[4]),
		}
		if q.TradingDate, err = parseCSVDate(rec[1]); err != nil {
			return nil, rowErr(s.Path, i, "trading_date", err)
		}
		if q.ExpiryDate, err = parseCSVDate(rec[2]); err != nil {
			return nil, rowErr(s.Path, i, "expiry_date", err)
		}
		if q.Side != domain.SideCall && q.Side != domain.SidePut {
			return nil, rowErr(s.Path, i, "side", fmt.Errorf("unknown side %q", rec[4]))
		}
		fields := []struct {
			dst  *float64
			name string
			idx  int
		}{
			{&q.Strike, "strike", 3},
			{&q.Price, "price", 5},
			{&q.IV, "iv", 6},
			{&q.Delta, "delta", 7},
			{&q.Vega, "vega", 8},
			{&q.UnderlyingClose, "underlying_close", 9},
		}
		for _, f := range fields {
			if *f.dst, err = strconv.ParseFloat(rec[f.idx], 64); err != nil {
				return nil, rowErr(s.Path, i, f.name, err)
			}
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

// CSVEarningsSource reads earnings events from a CSV file with header
// ticker,earn_date,earn_time.
type CSVEarningsSource struct {
	Path string
}

var _ EarningsSource = (*CSVEarningsSource)(nil)

func (s *CSVEarningsSource) Fetch(ctx context.Context) ([]*domain.EarningsEvent, error) {
	rows, err := readCSV(s.Path, 3)
	if err != nil {
		return nil, err
	}

	events := make([]*domain.EarningsEvent, 0, len(rows))
	for i, rec := range rows {
		e := &domain.EarningsEvent{
			Ticker:   rec[0],
			EarnTime: domain.Timing(rec[2]),
		}
		if e.EarnDate, err = parseCSVDate(rec[1]); err != nil {
			return nil, rowErr(s.Path, i, "earn_date", err)
		}
		events = append(events, e)
	}
	return events, nil
}

// CSVOptionVolumeSource reads daily option volume from a CSV file with
// header ticker,date,volume.
type CSVOptionVolumeSource struct {
	Path string
}

var _ OptionVolumeSource = (*CSVOptionVolumeSource)(nil)

func (s *CSVOptionVolumeSource) Fetch(ctx context.Context) ([]*domain.OptionVolumePoint, error) {
	rows, err := readCSV(s.Path, 3)
	if err != nil {
		return nil, err
	}

	points := make([]*domain.OptionVolumePoint, 0, len(rows))
	for i, rec := range rows {
		p := &domain.OptionVolumePoint{Ticker: rec[0]}
		if p.Date, err = parseCSVDate(rec[1]); err != nil {
			return nil, rowErr(s.Path, i, "date", err)
		}
		if p.Volume, err = strconv.ParseFloat(rec[2], 64); err != nil {
			return nil, rowErr(s.Path, i, "volume", err)
		}
		points = append(points, p)
	}
	return points, nil
}

// readCSV reads all data rows from path, skipping the header row and
// enforcing a fixed field count.
func readCSV(path string, fields int) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = fields

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[1:], nil
}

func parseCSVDate(s string) (time.Time, error) {
	t, err := time.Parse(csvDateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return domain.Midnight(t), nil
}

func rowErr(path string, row int, field string, err error) error {
	return fmt.Errorf("%s row %d field %s: %w", path, row+2, field, err)
}
