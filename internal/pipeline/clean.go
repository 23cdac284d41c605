package pipeline

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkordes/nyc-taxi/internal/domain"
)

// errMissing marks a raw record with at least one empty field or a NaN/Inf
// number.
var errMissing = errors.New("missing field")

// Clean runs the full pipeline over a batch of raw records and returns the
// surviving trips in input order together with a report of what was dropped.
func Clean(raws []domain.RawTrip) ([]domain.Trip, domain.CleanReport) {
	report := domain.CleanReport{Input: len(raws)}
	trips := make([]domain.Trip, 0, len(raws))
	seen := make(map[domain.Trip]struct{}, len(raws))

	for _, raw := range raws {
		t, err := Parse(raw)
		if err != nil {
			report.Missing++
			continue
		}
		if _, dup := seen[t]; dup {
			report.Duplicate++
			continue
		}
		seen[t] = struct{}{}

		if !Valid(t) {
			report.Invalid++
			continue
		}
		enriched, err := Derive(t)
		if err != nil {
			// Valid rules out non-positive durations.
			report.Invalid++
			continue
		}
		trips = append(trips, enriched)
	}

	report.Kept = len(trips)
	return trips, report
}

// Parse converts a raw record into a Trip with only the base fields set.
// Any empty or unparseable field is an error.
func Parse(raw domain.RawTrip) (domain.Trip, error) {
	fields := []struct{ name, value string }{
		{"id", raw.ID},
		{"vendor_id", raw.VendorID},
		{"pickup_datetime", raw.PickupDatetime},
		{"dropoff_datetime", raw.DropoffDatetime},
		{"passenger_count", raw.PassengerCount},
		{"pickup_longitude", raw.PickupLongitude},
		{"pickup_latitude", raw.PickupLatitude},
		{"dropoff_longitude", raw.DropoffLongitude},
		{"dropoff_latitude", raw.DropoffLatitude},
		{"store_and_fwd_flag", raw.StoreAndFwdFlag},
		{"trip_duration", raw.TripDuration},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return domain.Trip{}, fmt.Errorf("pipeline.Parse: %s: %w", f.name, errMissing)
		}
	}

	p := parser{}
	t := domain.Trip{
		ID:               strings.TrimSpace(raw.ID),
		VendorID:         p.atoi("vendor_id", raw.VendorID),
		PickupDatetime:   p.parseTime("pickup_datetime", raw.PickupDatetime),
		DropoffDatetime:  p.parseTime("dropoff_datetime", raw.DropoffDatetime),
		PassengerCount:   p.atoi("passenger_count", raw.PassengerCount),
		PickupLongitude:  p.parseFloat("pickup_longitude", raw.PickupLongitude),
		PickupLatitude:   p.parseFloat("pickup_latitude", raw.PickupLatitude),
		DropoffLongitude: p.parseFloat("dropoff_longitude", raw.DropoffLongitude),
		DropoffLatitude:  p.parseFloat("dropoff_latitude", raw.DropoffLatitude),
		StoreAndFwdFlag:  strings.TrimSpace(raw.StoreAndFwdFlag),
		TripDuration:     p.atoi("trip_duration", raw.TripDuration),
	}
	if p.err != nil {
		return domain.Trip{}, fmt.Errorf("pipeline.Parse: %w", p.err)
	}
	return t, nil
}

// ToRaw renders a trip back into raw text form. Parse(ToRaw(t)) yields the
// base fields of t unchanged.
func ToRaw(t domain.Trip) domain.RawTrip {
	return domain.RawTrip{
		ID:               t.ID,
		VendorID:         strconv.Itoa(t.VendorID),
		PickupDatetime:   t.PickupDatetime.UTC().Format(domain.ArtifactLayout),
		DropoffDatetime:  t.DropoffDatetime.UTC().Format(domain.ArtifactLayout),
		PassengerCount:   strconv.Itoa(t.PassengerCount),
		PickupLongitude:  FormatFloat(t.PickupLongitude),
		PickupLatitude:   FormatFloat(t.PickupLatitude),
		DropoffLongitude: FormatFloat(t.DropoffLongitude),
		DropoffLatitude:  FormatFloat(t.DropoffLatitude),
		StoreAndFwdFlag:  t.StoreAndFwdFlag,
		TripDuration:     strconv.Itoa(t.TripDuration),
	}
}

// FormatFloat renders f with the fewest digits that parse back to exactly f.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// parser keeps the first conversion error so Parse can convert every field
// without an if after each one.
type parser struct {
	err error
}

func (p *parser) atoi(name, s string) int {
	if p.err != nil {
		return 0
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		p.err = fmt.Errorf("%s: %w", name, err)
	}
	return v
}

func (p *parser) parseFloat(name, s string) float64 {
	if p.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	switch {
	case err != nil:
		p.err = fmt.Errorf("%s: %w", name, err)
	case math.IsNaN(v) || math.IsInf(v, 0):
		p.err = fmt.Errorf("%s: %w", name, errMissing)
	}
	return v
}

func (p *parser) parseTime(name, s string) time.Time {
	if p.err != nil {
		return time.Time{}
	}
	s = strings.TrimSpace(s)
	// A fraction after the seconds is accepted even though the layout has none.
	v, err := time.ParseInLocation(domain.PickupLayout, s, time.UTC)
	if err != nil {
		v, err = time.Parse(time.RFC3339, s)
		if err == nil {
			v = v.UTC()
		}
	}
	if err != nil {
		p.err = fmt.Errorf("%s: %w", name, err)
	}
	return v
}
