package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/nyc-taxi/internal/domain"
	"github.com/pkordes/nyc-taxi/internal/metrics"
	"github.com/pkordes/nyc-taxi/internal/pipeline"
	"github.com/pkordes/nyc-taxi/internal/repo"
	"github.com/pkordes/nyc-taxi/internal/tripcsv"
)

// IngestService runs the two batch stages: Clean turns the raw feed into the
// cleaned CSV artifact, Load replaces the stored trips with that artifact.
type IngestService struct {
	trips   repo.TripRepo
	metrics *metrics.Ingest
	log     *slog.Logger
}

// NewIngestService constructs an IngestService.
func NewIngestService(trips repo.TripRepo, m *metrics.Ingest, log *slog.Logger) *IngestService {
	return &IngestService{trips: trips, metrics: m, log: log}
}

// Clean reads the raw feed from raw, runs the cleaning pipeline, and writes
// the cleaned artifact to out. limit > 0 keeps only the first limit raw
// records. Dropped records are reported, not returned as errors.
func (s *IngestService) Clean(ctx context.Context, raw io.Reader, out io.Writer, limit int) (domain.CleanReport, error) {
	if err := ctx.Err(); err != nil {
		return domain.CleanReport{}, fmt.Errorf("service.IngestService.Clean: %w", err)
	}

	raws, err := tripcsv.ReadRaw(raw, limit)
	if err != nil {
		return domain.CleanReport{}, fmt.Errorf("service.IngestService.Clean: %w", err)
	}

	trips, report := pipeline.Clean(raws)

	if err := tripcsv.WriteCleaned(out, trips); err != nil {
		return domain.CleanReport{}, fmt.Errorf("service.IngestService.Clean: %w", err)
	}

	s.metrics.Records.WithLabelValues(metrics.OutcomeKept).Add(float64(report.Kept))
	s.metrics.Records.WithLabelValues(metrics.OutcomeMissing).Add(float64(report.Missing))
	s.metrics.Records.WithLabelValues(metrics.OutcomeDuplicate).Add(float64(report.Duplicate))
	s.metrics.Records.WithLabelValues(metrics.OutcomeInvalid).Add(float64(report.Invalid))

	s.log.InfoContext(ctx, "cleaned trips",
		"input", report.Input,
		"kept", report.Kept,
		"excluded", report.Excluded(),
		"missing", report.Missing,
		"duplicate", report.Duplicate,
		"invalid", report.Invalid,
	)
	return report, nil
}

// Load reads a cleaned artifact and replaces every stored trip with it.
// A malformed artifact is rejected before storage is touched.
func (s *IngestService) Load(ctx context.Context, cleaned io.Reader) (domain.IngestRun, error) {
	trips, err := tripcsv.ReadCleaned(cleaned)
	if err != nil {
		return domain.IngestRun{}, fmt.Errorf("service.IngestService.Load: %w", err)
	}

	run, err := s.trips.ReplaceAll(ctx, uuid.New(), trips)
	if err != nil {
		return domain.IngestRun{}, fmt.Errorf("service.IngestService.Load: %w", err)
	}

	s.metrics.Loaded.Add(float64(run.TripCount))
	s.metrics.LastLoadRun.Set(float64(run.LoadedAt.Unix()))

	s.log.InfoContext(ctx, "loaded trips",
		"run_id", run.ID.String(),
		"trips", run.TripCount,
		"loaded_at", run.LoadedAt.Format(time.RFC3339),
	)
	return run, nil
}
