package handler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pkordes/nyc-taxi/internal/domain"
	"github.com/pkordes/nyc-taxi/internal/handler/gen"
)

// dateOnly is the bare-date form accepted by start_date and end_date.
const dateOnly = "2006-01-02"

// ListTrips handles GET /trips.
// Supports ?start_date=, ?end_date=, ?vendor_id=, ?passenger_count= and ?limit=
// (default 100). Results are in storage order.
func (s *Server) ListTrips(ctx context.Context, req gen.ListTripsRequestObject) (gen.ListTripsResponseObject, error) {
	p := req.Params

	from, err := parseDateParam("start_date", p.StartDate, false)
	if err != nil {
		return gen.ListTrips400JSONResponse(requestBody(err.Error())), nil
	}
	to, err := parseDateParam("end_date", p.EndDate, true)
	if err != nil {
		return gen.ListTrips400JSONResponse(requestBody(err.Error())), nil
	}

	filter, err := domain.NewTripFilter(from, to, p.VendorId, p.PassengerCount, p.Limit)
	if err != nil {
		return gen.ListTrips400JSONResponse(validationBody(err)), nil
	}

	trips, err := s.trips.List(ctx, filter)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return gen.ListTrips400JSONResponse(validationBody(err)), nil
		}
		return nil, err
	}

	resp := make(gen.ListTrips200JSONResponse, len(trips))
	for i, t := range trips {
		resp[i] = tripToResponse(t)
	}
	return resp, nil
}

// GetStats handles GET /stats.
func (s *Server) GetStats(ctx context.Context, _ gen.GetStatsRequestObject) (gen.GetStatsResponseObject, error) {
	stats, err := s.trips.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return gen.GetStats200JSONResponse{
		TotalTrips:  stats.TotalTrips,
		AvgDuration: stats.AvgDuration,
		AvgDistance: stats.AvgDistance,
		AvgSpeed:    stats.AvgSpeed,
		AvgFare:     stats.AvgFare,
		TotalFare:   stats.TotalFare,
	}, nil
}

// GetAnomalies handles GET /anomalies.
// The body is the list of storage-order positions of outlier trips.
func (s *Server) GetAnomalies(ctx context.Context, _ gen.GetAnomaliesRequestObject) (gen.GetAnomaliesResponseObject, error) {
	idx, err := s.trips.Anomalies(ctx)
	if err != nil {
		return nil, err
	}
	if idx == nil {
		idx = []int{}
	}
	return gen.GetAnomalies200JSONResponse(idx), nil
}

// --- mapping helpers --------------------------------------------------------

// parseDateParam parses an optional date query parameter. A bare date used
// as an upper bound is widened to the last instant of that day.
func parseDateParam(name string, v *string, endOfDay bool) (*time.Time, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	if t, err := time.ParseInLocation(dateOnly, *v, time.UTC); err == nil {
		if endOfDay {
			t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		return &t, nil
	}
	if t, err := time.ParseInLocation(domain.PickupLayout, *v, time.UTC); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, *v); err == nil {
		t = t.UTC()
		return &t, nil
	}
	return nil, fmt.Errorf("%s: expected YYYY-MM-DD, \"YYYY-MM-DD HH:MM:SS\" or RFC 3339, got %q", name, *v)
}

// tripToResponse converts a domain.Trip into the generated gen.Trip type.
func tripToResponse(t domain.Trip) gen.Trip {
	return gen.Trip{
		Id:               t.ID,
		VendorId:         t.VendorID,
		PickupDatetime:   t.PickupDatetime,
		DropoffDatetime:  t.DropoffDatetime,
		PassengerCount:   t.PassengerCount,
		PickupLongitude:  t.PickupLongitude,
		PickupLatitude:   t.PickupLatitude,
		DropoffLongitude: t.DropoffLongitude,
		DropoffLatitude:  t.DropoffLatitude,
		StoreAndFwdFlag:  t.StoreAndFwdFlag,
		TripDuration:     t.TripDuration,
		DistanceKm:       t.DistanceKm,
		SpeedKmh:         t.SpeedKmh,
		EstimatedFare:    t.EstimatedFare,
	}
}
