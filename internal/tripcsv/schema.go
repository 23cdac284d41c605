// Package tripcsv reads and writes trip records as CSV.
//
// Two layouts exist. The raw layout is the upstream trip feed. The cleaned
// layout is the hand-off artifact between the clean and load stages: the raw
// columns followed by the derived columns. Both stages use the headers
// defined here, so a column rename breaks loudly at the boundary instead of
// silently loading the wrong values.
package tripcsv

import (
	"errors"
	"slices"
)

// ErrSchemaMismatch is returned when a file's header does not match the
// expected layout.
var ErrSchemaMismatch = errors.New("csv schema mismatch")

// ErrInvalidRecord is returned when a row of the cleaned artifact fails to
// parse or violates the cleaned-trip invariants.
var ErrInvalidRecord = errors.New("invalid cleaned record")

// RawHeader lists the columns of the raw trip feed.
var RawHeader = []string{
	"id", "vendor_id", "pickup_datetime", "dropoff_datetime", "passenger_count",
	"pickup_longitude", "pickup_latitude", "dropoff_longitude", "dropoff_latitude",
	"store_and_fwd_flag", "trip_duration",
}

// DerivedHeader lists the columns added by feature derivation.
var DerivedHeader = []string{"distance_km", "speed_kmh", "estimated_fare"}

// CleanedHeader is the exact header of the cleaned artifact.
var CleanedHeader = slices.Concat(RawHeader, DerivedHeader)
