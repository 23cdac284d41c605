// Package handler implements the HTTP handlers for the NYC taxi trips API.
// All handlers are methods on Server, which implements gen.StrictServerInterface.
// Methods are split into domain-specific files (health.go, trip.go, etc.) but
// all share the same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/pkordes/nyc-taxi/internal/domain"
	"github.com/pkordes/nyc-taxi/internal/handler/gen"
)

// TripServicer defines the read operations the trip handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type TripServicer interface {
	List(ctx context.Context, f domain.TripFilter) ([]domain.Trip, error)
	Stats(ctx context.Context) (domain.StatsSummary, error)
	Anomalies(ctx context.Context) ([]int, error)
}

// VendorServicer defines the operations the vendor handler depends on.
type VendorServicer interface {
	List(ctx context.Context) ([]domain.Vendor, error)
}

// Server implements gen.StrictServerInterface for all API endpoints.
// Wire it in main.go via Server.Routes.
type Server struct {
	trips   TripServicer
	vendors VendorServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, vendors VendorServicer) *Server {
	return &Server{trips: trips, vendors: vendors}
}


// Routes adapts the Server to the generated chi router. Parameter binding
// errors and handler errors are rendered as JSON ErrorResponse bodies.
func (s *Server) Routes(log *slog.Logger) http.Handler {
	strict := gen.NewStrictHandlerWithOptions(s, nil, StrictOptions(log))
	return gen.HandlerWithOptions(strict, gen.ChiServerOptions{
		ErrorHandlerFunc: RequestErrorHandler(log),
	})
}
