// Package main is the batch ingest tool. It cleans the raw trip feed into
// the cleaned CSV artifact and loads that artifact into Postgres, replacing
// whatever was stored before.
//
//	ingest -stage=all   -input train/train.csv -output database/cleaned_trips.csv
//	ingest -stage=clean -input train/train.csv -output database/cleaned_trips.csv -limit 100
//	ingest -stage=load  -input database/cleaned_trips.csv
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pkordes/nyc-taxi/internal/config"
	"github.com/pkordes/nyc-taxi/internal/metrics"
	"github.com/pkordes/nyc-taxi/internal/repo"
	"github.com/pkordes/nyc-taxi/internal/service"
	"github.com/pkordes/nyc-taxi/migrations"
)

const (
	stageAll   = "all"
	stageClean = "clean"
	stageLoad  = "load"
)

type options struct {
	stage       string
	input       string
	output      string
	limit       int
	metricsFile string
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	var opts options
	flag.StringVar(&opts.stage, "stage", stageAll, "stage to run: all, clean or load")
	flag.StringVar(&opts.input, "input", "", "input csv path (raw feed, or cleaned artifact for -stage=load)")
	flag.StringVar(&opts.output, "output", cfg.CleanedTripsPath, "cleaned csv output path")
	flag.IntVar(&opts.limit, "limit", cfg.IngestLimit, "keep only the first N raw records (0 = all)")
	flag.StringVar(&opts.metricsFile, "metrics-file", "", "write ingest metrics in Prometheus text format to this path")
	flag.Parse()

	if opts.input == "" {
		opts.input = cfg.RawTripsPath
		if opts.stage == stageLoad {
			opts.input = cfg.CleanedTripsPath
		}
	}

	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, opts, logger); err != nil {
		logger.Error("ingest failed", "stage", opts.stage, "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, opts options, logger *slog.Logger) error {
	switch opts.stage {
	case stageAll, stageClean, stageLoad:
	default:
		return fmt.Errorf("unknown stage %q (want all, clean or load)", opts.stage)
	}
	if opts.limit < 0 {
		return fmt.Errorf("-limit must not be negative, got %d", opts.limit)
	}

	reg := prometheus.NewRegistry()
	m := metrics.NewIngest(reg)

	var trips repo.TripRepo
	if opts.stage != stageClean {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("create database pool: %w", err)
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}

		sqlDB := stdlib.OpenDBFromPool(pool)
		applied, err := migrations.Up(ctx, sqlDB)
		_ = sqlDB.Close()
		if err != nil {
			return err
		}
		logger.InfoContext(ctx, "migrations applied", "count", applied)

		trips = repo.NewTripRepo(pool)
	}

	svc := service.NewIngestService(trips, m, logger)

	loadPath := opts.input
	if opts.stage != stageLoad {
		if err := cleanFile(ctx, svc, opts.input, opts.output, opts.limit); err != nil {
			return err
		}
		logger.InfoContext(ctx, "cleaned artifact written", "path", opts.output)
		loadPath = opts.output
	}

	if opts.stage != stageClean {
		if err := loadFile(ctx, svc, loadPath); err != nil {
			return err
		}
	}

	if opts.metricsFile != "" {
		if err := prometheus.WriteToTextfile(opts.metricsFile, reg); err != nil {
			return fmt.Errorf("write metrics file: %w", err)
		}
	}
	return nil
}

func cleanFile(ctx context.Context, svc *service.IngestService, inPath, outPath string, limit int) (err error) {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()

	_, err = svc.Clean(ctx, in, out, limit)
	return err
}

func loadFile(ctx context.Context, svc *service.IngestService, path string) error {
	in, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open cleaned artifact: %w", err)
	}
	defer in.Close()

	_, err = svc.Load(ctx, in)
	return err
}
