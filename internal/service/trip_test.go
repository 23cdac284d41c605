package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/nyc-taxi/internal/domain"
	"github.com/pkordes/nyc-taxi/internal/repo"
	"github.com/pkordes/nyc-taxi/internal/service"
)

// mockTripRepo is a hand-written test double for repo.TripRepo.
// Each method is a function field; set only the ones your test needs.
type mockTripRepo struct {
	replaceAll func(ctx context.Context, runID uuid.UUID, trips []domain.Trip) (domain.IngestRun, error)
	list       func(ctx context.Context, f domain.TripFilter) ([]domain.Trip, error)
	stats      func(ctx context.Context) (domain.StatsSummary, error)
	durations  func(ctx context.Context) ([]float64, error)
}

func (m *mockTripRepo) ReplaceAll(ctx context.Context, runID uuid.UUID, trips []domain.Trip) (domain.IngestRun, error) {
	return m.replaceAll(ctx, runID, trips)
}
func (m *mockTripRepo) List(ctx context.Context, f domain.TripFilter) ([]domain.Trip, error) {
	return m.list(ctx, f)
}
func (m *mockTripRepo) Stats(ctx context.Context) (domain.StatsSummary, error) {
	return m.stats(ctx)
}
func (m *mockTripRepo) Durations(ctx context.Context) ([]float64, error) {
	return m.durations(ctx)
}

// compile-time check: mockTripRepo must satisfy repo.TripRepo.
var _ repo.TripRepo = (*mockTripRepo)(nil)

// ---- helpers ---------------------------------------------------------------

func tripFixture(id string) domain.Trip {
	pickup := time.Date(2016, 3, 14, 17, 24, 55, 0, time.UTC)
	return domain.Trip{
		ID:              id,
		VendorID:        2,
		PickupDatetime:  pickup,
		DropoffDatetime: pickup.Add(10 * time.Minute),
		PassengerCount:  1,
		TripDuration:    600,
		EstimatedFare:   9.67,
	}
}

// ---- List tests ------------------------------------------------------------

func TestTripService_List_PassesFilterThrough(t *testing.T) {
	vendor := 1
	want := domain.TripFilter{VendorID: &vendor, Limit: 5}

	var got domain.TripFilter
	r := &mockTripRepo{
		list: func(_ context.Context, f domain.TripFilter) ([]domain.Trip, error) {
			got = f
			return []domain.Trip{tripFixture("a")}, nil
		},
	}
	svc := service.NewTripService(r)

	trips, err := svc.List(context.Background(), want)

	require.NoError(t, err)
	assert.Len(t, trips, 1)
	assert.Equal(t, want, got)
}

func TestTripService_List_Empty(t *testing.T) {
	r := &mockTripRepo{
		list: func(_ context.Context, _ domain.TripFilter) ([]domain.Trip, error) { return nil, nil },
	}
	svc := service.NewTripService(r)

	got, err := svc.List(context.Background(), domain.TripFilter{Limit: domain.DefaultTripLimit})

	require.NoError(t, err)
	// Should return an empty slice, not nil: it encodes as [] rather than null.
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTripService_List_ZeroLimit(t *testing.T) {
	svc := service.NewTripService(&mockTripRepo{})

	_, err := svc.List(context.Background(), domain.TripFilter{})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_List_RepoError(t *testing.T) {
	repoErr := errors.New("db exploded")
	r := &mockTripRepo{
		list: func(_ context.Context, _ domain.TripFilter) ([]domain.Trip, error) { return nil, repoErr },
	}
	svc := service.NewTripService(r)

	_, err := svc.List(context.Background(), domain.TripFilter{Limit: 1})

	// The service should propagate repo errors unchanged.
	assert.ErrorIs(t, err, repoErr)
}

// ---- Stats tests -----------------------------------------------------------

func TestTripService_Stats(t *testing.T) {
	want := domain.StatsSummary{TotalTrips: 3, AvgFare: 20, TotalFare: 60}
	r := &mockTripRepo{
		stats: func(_ context.Context) (domain.StatsSummary, error) { return want, nil },
	}
	svc := service.NewTripService(r)

	got, err := svc.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestTripService_Stats_RepoError(t *testing.T) {
	repoErr := errors.New("connection refused")
	r := &mockTripRepo{
		stats: func(_ context.Context) (domain.StatsSummary, error) { return domain.StatsSummary{}, repoErr },
	}
	svc := service.NewTripService(r)

	_, err := svc.Stats(context.Background())

	assert.ErrorIs(t, err, repoErr)
}

// ---- Anomalies tests -------------------------------------------------------

func TestTripService_Anomalies(t *testing.T) {
	r := &mockTripRepo{
		durations: func(_ context.Context) ([]float64, error) {
			return []float64{1, 2, 3, 4, 5, 100}, nil
		},
	}
	svc := service.NewTripService(r)

	got, err := svc.Anomalies(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []int{5}, got)
}

func TestTripService_Anomalies_EmptyTable(t *testing.T) {
	r := &mockTripRepo{
		durations: func(_ context.Context) ([]float64, error) { return []float64{}, nil },
	}
	svc := service.NewTripService(r)

	got, err := svc.Anomalies(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTripService_Anomalies_RepoError(t *testing.T) {
	repoErr := errors.New("relation \"trips\" does not exist")
	r := &mockTripRepo{
		durations: func(_ context.Context) ([]float64, error) { return nil, repoErr },
	}
	svc := service.NewTripService(r)

	_, err := svc.Anomalies(context.Background())

	assert.ErrorIs(t, err, repoErr)
}
