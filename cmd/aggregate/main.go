package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"earnings-straddle-lab/internal/backtest"
	"earnings-straddle-lab/internal/config"
	"earnings-straddle-lab/internal/domain"
	"earnings-straddle-lab/internal/reporting"
	"earnings-straddle-lab/internal/storage"
	"earnings-straddle-lab/internal/storage/csvdir"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "", "Path to config file (optional)")
	includeFlag := flag.String("include", "both", "Variant selection: long, short, both")
	outputBase := flag.String("output", "", "Artifact directory overriding config output_base")
	reportPath := flag.String("report", "", "Write Markdown report to file instead of stdout")
	statsCSV := flag.String("stats-csv", "", "Write summary statistics CSV to file")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stderr, "[aggregate] ", log.LstdFlags)

	include := domain.Include(*includeFlag)
	if !include.Valid() {
		logger.Fatalf("Invalid include: %s. Must be long, short, or both", *includeFlag)
	}

	cfg, err := config.Load(*configPath, logger)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if *outputBase != "" {
		cfg.OutputBase = *outputBase
	}

	ctx := context.Background()

	tables := csvdir.NewTradeTableStore(cfg.OutputBase)
	agg := backtest.NewAggregator(tables, backtest.Options{
		VegaPerTrade:    cfg.VegaPerTrade,
		ShortSignCompat: cfg.ShortSignCompat,
	}, logger)

	trades, daily, err := agg.Run(ctx, include)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			logger.Fatalf("no trade tables under %s; run runstrategy first", cfg.OutputBase)
		}
		logger.Fatalf("aggregate: %v", err)
	}
	logger.Printf("merged %d trades into %d daily rows", len(trades), len(daily))

	// Persist aggregation artifacts
	if cfg.SaveResults {
		dailyStore := csvdir.NewDailyPnLStore(cfg.OutputBase)
		if err := dailyStore.SaveMerged(ctx, include, trades); err != nil {
			logger.Fatalf("save merged trades: %v", err)
		}
		if err := dailyStore.SaveSeries(ctx, include, daily); err != nil {
			logger.Fatalf("save daily series: %v", err)
		}
	}

	// An empty series is a data condition here (every trade gated out),
	// not a usage error.
	if len(daily) == 0 {
		logger.Printf("no daily PnL rows; skipping analysis")
		return
	}

	analysis, err := backtest.NewAnalysis(daily, backtest.DefaultAnalysisOptions())
	if err != nil {
		logger.Fatalf("analyze daily series: %v", err)
	}
	stats := analysis.Statistics()

	report := &reporting.Report{
		GeneratedAt: time.Now().UTC(),
		Include:     string(include),
		TradeCount:  len(trades),
		DayCount:    len(daily),
		Stats:       stats,
	}

	markdown := reporting.RenderMarkdown(report)
	if *reportPath != "" {
		if err := os.WriteFile(*reportPath, []byte(markdown), 0o644); err != nil {
			logger.Fatalf("write report: %v", err)
		}
		logger.Printf("report written to %s", *reportPath)
	} else {
		fmt.Print(markdown)
	}

	if *statsCSV != "" {
		if err := os.WriteFile(*statsCSV, []byte(reporting.RenderCSV(stats)), 0o644); err != nil {
			logger.Fatalf("write stats csv: %v", err)
		}
		logger.Printf("statistics written to %s", *statsCSV)
	}
}
