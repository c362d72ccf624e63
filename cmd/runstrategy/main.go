package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"earnings-straddle-lab/internal/config"
	"earnings-straddle-lab/internal/runner"
	"earnings-straddle-lab/internal/storage"
	chstore "earnings-straddle-lab/internal/storage/clickhouse"
	"earnings-straddle-lab/internal/storage/csvdir"
	"earnings-straddle-lab/internal/storage/memory"
	pgstore "earnings-straddle-lab/internal/storage/postgres"
	"earnings-straddle-lab/internal/universe"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "", "Path to config file (optional)")
	tickersFlag := flag.String("tickers", "", "Comma-separated ticker list overriding universe selection")
	outputBase := flag.String("output", "", "Output directory overriding config output_base")

	// Storage
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", "", "ClickHouse connection string")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage (smoke runs only)")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stderr, "[runstrategy] ", log.LstdFlags)

	cfg, err := config.Load(*configPath, logger)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if *outputBase != "" {
		cfg.OutputBase = *outputBase
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, shutting down...", sig)
		cancel()
	}()

	// Create stores
	var quoteStore storage.QuoteStore = memory.NewQuoteStore()
	var earningsStore storage.EarningsCalendarStore = memory.NewEarningsCalendarStore()
	var volumeStore storage.OptionVolumeStore = memory.NewOptionVolumeStore()

	if !*useMemory {
		if *postgresDSN == "" {
			logger.Fatal("--postgres-dsn is required when not using --use-memory (earnings calendar)")
		}
		if *clickhouseDSN == "" {
			logger.Fatal("--clickhouse-dsn is required when not using --use-memory (quotes and option volume)")
		}

		pool, err := pgstore.NewPool(ctx, *postgresDSN)
		if err != nil {
			logger.Fatalf("connect to postgres: %v", err)
		}
		defer pool.Close()
		earningsStore = pgstore.NewEarningsCalendarStore(pool)

		conn, err := chstore.NewConn(ctx, *clickhouseDSN)
		if err != nil {
			logger.Fatalf("connect to clickhouse: %v", err)
		}
		defer conn.Close()
		quoteStore = chstore.NewQuoteStore(conn)
		volumeStore = chstore.NewOptionVolumeStore(conn)
	}

	// Resolve the ticker universe
	var tickers []string
	if *tickersFlag != "" {
		for _, t := range strings.Split(*tickersFlag, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tickers = append(tickers, t)
			}
		}
	} else {
		tickers, err = universe.NewBuilder(volumeStore).Tickers(ctx)
		if err != nil {
			logger.Fatalf("build universe: %v", err)
		}
	}
	if len(tickers) == 0 {
		logger.Fatal("empty ticker universe")
	}
	logger.Printf("running %d tickers (parallel=%v workers=%d pivot=%v)",
		len(tickers), cfg.UseParallel, cfg.MaxWorkers, cfg.Pivot)

	r := runner.NewRunner(runner.Options{
		Quotes:   quoteStore,
		Calendar: earningsStore,
		Tables:   csvdir.NewTradeTableStore(cfg.OutputBase),
		Config:   cfg,
		Logger:   logger,
	})

	summary, err := r.Run(ctx, tickers)
	if err != nil {
		logger.Fatalf("batch run: %v", err)
	}

	logger.Printf("completed=%d skipped=%d failed=%d",
		summary.Completed, summary.Skipped, summary.Failed)
	if summary.Failed > 0 {
		os.Exit(1)
	}
}
