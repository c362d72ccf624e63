package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"earnings-straddle-lab/internal/ingest"
	"earnings-straddle-lab/internal/storage"
	chstore "earnings-straddle-lab/internal/storage/clickhouse"
	"earnings-straddle-lab/internal/storage/memory"
	"earnings-straddle-lab/internal/storage/migrations"
	pgstore "earnings-straddle-lab/internal/storage/postgres"
)

func main() {
	// Parse flags
	quotesCSV := flag.String("quotes-csv", "", "Path to option quotes CSV")
	earningsCSV := flag.String("earnings-csv", "", "Path to earnings calendar CSV")
	volumeCSV := flag.String("volume-csv", "", "Path to daily option volume CSV")

	// Storage
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", "", "ClickHouse connection string")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage (smoke runs only)")
	migrate := flag.Bool("migrate", true, "Apply schema migrations before ingesting")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stderr, "[ingest] ", log.LstdFlags)

	if *quotesCSV == "" && *earningsCSV == "" && *volumeCSV == "" {
		logger.Fatal("nothing to ingest: provide --quotes-csv, --earnings-csv, or --volume-csv")
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

		// PostgreSQL for the earnings calendar
		pool, err := pgstore.NewPool(ctx, *postgresDSN)
		if err != nil {
			logger.Fatalf("connect to postgres: %v", err)
		}
		defer pool.Close()

		if *migrate {
			if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
				logger.Fatalf("postgres migrations: %v", err)
			}
		}
		earningsStore = pgstore.NewEarningsCalendarStore(pool)

		// ClickHouse for quotes and option volume
		var conn *chstore.Conn
		if *migrate {
			conn, err = migrations.RunClickhouseMigrations(ctx, *clickhouseDSN)
		} else {
			conn, err = chstore.NewConn(ctx, *clickhouseDSN)
		}
		if err != nil {
			logger.Fatalf("connect to clickhouse: %v", err)
		}
		defer conn.Close()

		quoteStore = chstore.NewQuoteStore(conn)
		volumeStore = chstore.NewOptionVolumeStore(conn)
	}

	// Wire CSV sources for the files provided
	opts := ingest.ManagerOptions{
		QuoteStore:    quoteStore,
		EarningsStore: earningsStore,
		VolumeStore:   volumeStore,
	}
	if *quotesCSV != "" {
		opts.QuoteSource = &ingest.CSVQuoteSource{Path: *quotesCSV}
	}
	if *earningsCSV != "" {
		opts.EarningsSource = &ingest.CSVEarningsSource{Path: *earningsCSV}
	}
	if *volumeCSV != "" {
		opts.VolumeSource = &ingest.CSVOptionVolumeSource{Path: *volumeCSV}
	}
	manager := ingest.NewManager(opts)

	n, err := manager.IngestQuotes(ctx)
	if err != nil {
		logger.Fatalf("ingest quotes: %v", err)
	}
	if n > 0 {
		logger.Printf("ingested %d quote records", n)
	}

	n, err = manager.IngestEarnings(ctx)
	if err != nil {
		logger.Fatalf("ingest earnings calendar: %v", err)
	}
	if n > 0 {
		logger.Printf("ingested %d earnings events", n)
	}

	n, err = manager.IngestOptionVolume(ctx)
	if err != nil {
		logger.Fatalf("ingest option volume: %v", err)
	}
	if n > 0 {
		logger.Printf("ingested %d option volume points", n)
	}

	logger.Println("done")
}
