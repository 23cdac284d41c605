// Package repo contains all database access logic for the NYC taxi trips service.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/nyc-taxi/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, *pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup. Begin on a pgx.Tx opens a
// savepoint, so ReplaceAll stays atomic in both cases.
//
// A *pgxpool.Pool borrows a connection for the duration of each call and
// returns it to the pool before the call returns.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres implementation,
// which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// ReplaceAll deletes every stored trip and bulk-loads trips in their
	// slice order, recording the load as ingest run runID. Either the whole
	// replacement commits or nothing changes.
	ReplaceAll(ctx context.Context, runID uuid.UUID, trips []domain.Trip) (domain.IngestRun, error)

	// List returns the trips matching f in storage order, at most f.Limit rows.
	List(ctx context.Context, f domain.TripFilter) ([]domain.Trip, error)

	// Stats aggregates the whole table. Averages are zero when it is empty.
	Stats(ctx context.Context) (domain.StatsSummary, error)

	// Durations returns every trip duration in storage order.
	Durations(ctx context.Context) ([]float64, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// tripColumns is the column order shared by CopyFrom and scanTrip.
var tripColumns = []string{
	"id", "vendor_id", "pickup_datetime", "dropoff_datetime", "passenger_count",
	"pickup_longitude", "pickup_latitude", "dropoff_longitude", "dropoff_latitude",
	"store_and_fwd_flag", "trip_duration", "distance_km", "speed_kmh", "estimated_fare",
}

// ReplaceAll overwrites the trips table inside a single transaction.
// Rows are streamed with the COPY protocol; load_seq records slice order.
func (r *pgTripRepo) ReplaceAll(ctx context.Context, runID uuid.UUID, trips []domain.Trip) (domain.IngestRun, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.IngestRun{}, fmt.Errorf("repo.TripRepo.ReplaceAll: begin: %w", err)
	}
	// Rollback after a successful Commit is a no-op.
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM trips`); err != nil {
		return domain.IngestRun{}, fmt.Errorf("repo.TripRepo.ReplaceAll: delete: %w", err)
	}

	columns := append([]string{"load_seq"}, tripColumns...)
	copied, err := tx.CopyFrom(ctx, pgx.Identifier{"trips"}, columns,
		pgx.CopyFromSlice(len(trips), func(i int) ([]any, error) {
			t := trips[i]
			return []any{
				int64(i),
				t.ID, t.VendorID, t.PickupDatetime, t.DropoffDatetime, t.PassengerCount,
				t.PickupLongitude, t.PickupLatitude, t.DropoffLongitude, t.DropoffLatitude,
				t.StoreAndFwdFlag, t.TripDuration, t.DistanceKm, t.SpeedKmh, t.EstimatedFare,
			}, nil
		}))
	if err != nil {
		return domain.IngestRun{}, fmt.Errorf("repo.TripRepo.ReplaceAll: copy: %w", err)
	}

	const q = `
		INSERT INTO ingest_runs (id, trip_count)
		VALUES (@id, @trip_count)
		RETURNING id, trip_count, loaded_at`

	var (
		run domain.IngestRun
		id  pgtype.UUID
	)
	err = tx.QueryRow(ctx, q, pgx.NamedArgs{"id": runID, "trip_count": copied}).
		Scan(&id, &run.TripCount, &run.LoadedAt)
	if err != nil {
		return domain.IngestRun{}, fmt.Errorf("repo.TripRepo.ReplaceAll: record run: %w", err)
	}
	run.ID = uuid.UUID(id.Bytes)

	if err := tx.Commit(ctx); err != nil {
		return domain.IngestRun{}, fmt.Errorf("repo.TripRepo.ReplaceAll: commit: %w", err)
	}
	return run, nil
}

// List builds the WHERE clause from the filters that are set.
// Unset filters add nothing to the query.
func (r *pgTripRepo) List(ctx context.Context, f domain.TripFilter) ([]domain.Trip, error) {
	var (
		where []string
		args  = pgx.NamedArgs{"limit": f.Limit}
	)
	if f.PickupFrom != nil {
		where = append(where, "pickup_datetime >= @pickup_from")
		args["pickup_from"] = *f.PickupFrom
	}
	if f.PickupTo != nil {
		where = append(where, "pickup_datetime <= @pickup_to")
		args["pickup_to"] = *f.PickupTo
	}
	if f.VendorID != nil {
		where = append(where, "vendor_id = @vendor_id")
		args["vendor_id"] = *f.VendorID
	}
	if f.PassengerCount != nil {
		where = append(where, "passenger_count = @passenger_count")
		args["passenger_count"] = *f.PassengerCount
	}

	q := "SELECT " + strings.Join(tripColumns, ", ") + " FROM trips"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY load_seq LIMIT @limit"

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.List: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: rows: %w", err)
	}
	return trips, nil
}

// Stats computes all aggregates in one pass over the table.
func (r *pgTripRepo) Stats(ctx context.Context) (domain.StatsSummary, error) {
	const q = `
		SELECT
			COUNT(*),
			COALESCE(AVG(trip_duration), 0)::float8,
			COALESCE(AVG(distance_km), 0)::float8,
			COALESCE(AVG(speed_kmh), 0)::float8,
			COALESCE(AVG(estimated_fare), 0)::float8,
			COALESCE(SUM(estimated_fare), 0)::float8
		FROM trips`

	var s domain.StatsSummary
	err := r.db.QueryRow(ctx, q).Scan(
		&s.TotalTrips, &s.AvgDuration, &s.AvgDistance, &s.AvgSpeed, &s.AvgFare, &s.TotalFare,
	)
	if err != nil {
		return domain.StatsSummary{}, fmt.Errorf("repo.TripRepo.Stats: %w", err)
	}
	return s, nil
}

// Durations returns trip_duration for every row ordered by load_seq.
func (r *pgTripRepo) Durations(ctx context.Context) ([]float64, error) {
	rows, err := r.db.Query(ctx, `SELECT trip_duration FROM trips ORDER BY load_seq`)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.Durations: %w", err)
	}
	defer rows.Close()

	durations := []float64{}
	for rows.Next() {
		var d int32
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("repo.TripRepo.Durations: scan: %w", err)
		}
		durations = append(durations, float64(d))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.Durations: rows: %w", err)
	}
	return durations, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanTrip to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a row selected with tripColumns into a domain.Trip.
// Timestamps come back in the session zone and are normalised to UTC.
func scanTrip(s scanner) (domain.Trip, error) {
	var t domain.Trip
	err := s.Scan(
		&t.ID, &t.VendorID, &t.PickupDatetime, &t.DropoffDatetime, &t.PassengerCount,
		&t.PickupLongitude, &t.PickupLatitude, &t.DropoffLongitude, &t.DropoffLatitude,
		&t.StoreAndFwdFlag, &t.TripDuration, &t.DistanceKm, &t.SpeedKmh, &t.EstimatedFare,
	)
	if err != nil {
		return domain.Trip{}, err
	}
	t.PickupDatetime = t.PickupDatetime.UTC()
	t.DropoffDatetime = t.DropoffDatetime.UTC()
	return t, nil
}
