// Package service contains the business logic for the NYC taxi trips service.
// Services orchestrate repo calls and the pure pipeline/anomaly packages.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"

	"github.com/pkordes/nyc-taxi/internal/anomaly"
	"github.com/pkordes/nyc-taxi/internal/domain"
	"github.com/pkordes/nyc-taxi/internal/repo"
)

// TripService implements the read operations on stored trips.
type TripService struct {
	repo repo.TripRepo
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo) *TripService {
	return &TripService{repo: r}
}

// List returns the trips matching f. The result is never nil.
func (s *TripService) List(ctx context.Context, f domain.TripFilter) ([]domain.Trip, error) {
	if f.Limit < 1 {
		return nil, fmt.Errorf("service.TripService.List: %w: limit must be at least 1", domain.ErrValidation)
	}
	trips, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, nil
}

// Stats returns aggregates over every stored trip.
func (s *TripService) Stats(ctx context.Context) (domain.StatsSummary, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return domain.StatsSummary{}, fmt.Errorf("service.TripService.Stats: %w", err)
	}
	return stats, nil
}

// Anomalies returns the storage-order positions of trips whose duration is
// an IQR outlier across the whole table.
func (s *TripService) Anomalies(ctx context.Context) ([]int, error) {
	durations, err := s.repo.Durations(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.Anomalies: %w", err)
	}
	return anomaly.Detect(durations), nil
}
