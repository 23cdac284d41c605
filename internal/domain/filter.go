package domain

import (
	"fmt"
	"time"
)

// DefaultTripLimit is the number of trips returned when no limit is given.
const DefaultTripLimit = 100

// TripFilter carries the optional list-trips filters from the HTTP layer to
// the repo layer. Nil fields are not applied. PickupTo is inclusive.
type TripFilter struct {
	PickupFrom     *time.Time
	PickupTo       *time.Time
	VendorID       *int
	PassengerCount *int
	Limit          int
}

// NewTripFilter builds a TripFilter with the limit defaulted when limit is nil.
// A non-nil limit below 1 is a validation error.
func NewTripFilter(from, to *time.Time, vendorID, passengerCount, limit *int) (TripFilter, error) {
	f := TripFilter{
		PickupFrom:     from,
		PickupTo:       to,
		VendorID:       vendorID,
		PassengerCount: passengerCount,
		Limit:          DefaultTripLimit,
	}
	if limit != nil {
		if *limit < 1 {
			return TripFilter{}, fmt.Errorf("%w: limit must be at least 1", ErrValidation)
		}
		f.Limit = *limit
	}
	if from != nil && to != nil && to.Before(*from) {
		return TripFilter{}, fmt.Errorf("%w: end_date is before start_date", ErrValidation)
	}
	return f, nil
}
