package pipeline

import (
	"fmt"

	"github.com/pkordes/nyc-taxi/internal/domain"
	"github.com/pkordes/nyc-taxi/internal/geo"
)

// Fare model: a flat base, a charge per fifth of a mile, and a charge per minute.
const (
	BaseFare       = 2.5
	KmToMiles      = 0.621371
	FareUnitMiles  = 0.2
	FarePerUnit    = 0.5
	FarePerMinute  = 0.5
	secondsPerHour = 3600.0
)

// Derive fills in DistanceKm, SpeedKmh and EstimatedFare.
// The trip must have a positive duration; Valid guarantees that for
// anything coming out of Clean.
func Derive(t domain.Trip) (domain.Trip, error) {
	if t.TripDuration <= 0 {
		return domain.Trip{}, fmt.Errorf("%w: trip %s has non-positive duration %d",
			domain.ErrValidation, t.ID, t.TripDuration)
	}

	duration := float64(t.TripDuration)
	t.DistanceKm = geo.Haversine(t.PickupLatitude, t.PickupLongitude, t.DropoffLatitude, t.DropoffLongitude)
	t.SpeedKmh = t.DistanceKm / (duration / secondsPerHour)
	t.EstimatedFare = EstimateFare(t.DistanceKm, t.TripDuration)
	return t, nil
}

// EstimateFare prices a trip of distanceKm kilometres lasting durationSec seconds.
func EstimateFare(distanceKm float64, durationSec int) float64 {
	miles := distanceKm * KmToMiles
	minutes := float64(durationSec) / 60
	return BaseFare + (miles/FareUnitMiles)*FarePerUnit + minutes*FarePerMinute
}
