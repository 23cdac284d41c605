// Package domain contains the core data types for the NYC taxi trips service.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (pipeline, repo, service, handler).
package domain

import "time"

// PickupLayout is the timestamp layout used by the raw trip feed and the
// cleaned CSV artifact. Timestamps carry no zone and are read as UTC.
const PickupLayout = "2006-01-02 15:04:05"

// ArtifactLayout writes timestamps into the cleaned CSV artifact. It adds an
// optional fraction to PickupLayout so sub-second times survive the hand-off;
// whole seconds render exactly as PickupLayout does.
const ArtifactLayout = PickupLayout + ".999999999"

// RawTrip is one record of the raw trip feed, exactly as read from the input.
// Every field is kept as text so that missing and malformed values can be
// detected by the cleaning pipeline instead of failing the whole read.
type RawTrip struct {
	ID               string
	VendorID         string
	PickupDatetime   string
	DropoffDatetime  string
	PassengerCount   string
	PickupLongitude  string
	PickupLatitude   string
	DropoffLongitude string
	DropoffLatitude  string
	StoreAndFwdFlag  string
	TripDuration     string
}

// Trip is a single taxi ride. The base fields come from the raw feed; the
// derived fields (DistanceKm, SpeedKmh, EstimatedFare) are filled in by the
// cleaning pipeline. A persisted Trip is never mutated.
type Trip struct {
	ID               string    `json:"id"`
	VendorID         int       `json:"vendor_id"`
	PickupDatetime   time.Time `json:"pickup_datetime"`
	DropoffDatetime  time.Time `json:"dropoff_datetime"`
	PassengerCount   int       `json:"passenger_count"`
	PickupLongitude  float64   `json:"pickup_longitude"`
	PickupLatitude   float64   `json:"pickup_latitude"`
	DropoffLongitude float64   `json:"dropoff_longitude"`
	DropoffLatitude  float64   `json:"dropoff_latitude"`
	StoreAndFwdFlag  string    `json:"store_and_fwd_flag"`
	TripDuration     int       `json:"trip_duration"` // seconds

	DistanceKm    float64 `json:"distance_km"`
	SpeedKmh      float64 `json:"speed_kmh"`
	EstimatedFare float64 `json:"estimated_fare"`
}
