// Package pipeline turns raw trip records into cleaned, enriched trips.
//
// The stages run in a fixed order: parse (records with missing or malformed
// fields are dropped), de-duplicate, filter with Valid, then Derive. Every
// function here is pure; the same input always gives the same output.
package pipeline

import "github.com/pkordes/nyc-taxi/internal/domain"

// Bounding box for pickup and dropoff coordinates, inclusive on both ends.
const (
	MinLongitude = -74.3
	MaxLongitude = -73.7
	MinLatitude  = 40.5
	MaxLatitude  = 40.9
)

// MaxTripDuration is the exclusive upper bound on trip duration, in seconds.
const MaxTripDuration = 86400

// Valid reports whether a parsed trip passes every validity predicate:
// at least one passenger, a duration strictly between 0 and 24 hours, and
// all four coordinates inside the bounding box.
func Valid(t domain.Trip) bool {
	return t.PassengerCount > 0 &&
		t.TripDuration > 0 &&
		t.TripDuration < MaxTripDuration &&
		between(t.PickupLongitude, MinLongitude, MaxLongitude) &&
		between(t.PickupLatitude, MinLatitude, MaxLatitude) &&
		between(t.DropoffLongitude, MinLongitude, MaxLongitude) &&
		between(t.DropoffLatitude, MinLatitude, MaxLatitude)
}

// between is inclusive; NaN is never between anything.
func between(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}
