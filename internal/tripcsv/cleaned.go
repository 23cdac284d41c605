package tripcsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/pkordes/nyc-taxi/internal/domain"
	"github.com/pkordes/nyc-taxi/internal/pipeline"
)

// WriteCleaned writes trips to w in the cleaned layout, header first.
func WriteCleaned(w io.Writer, trips []domain.Trip) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CleanedHeader); err != nil {
		return fmt.Errorf("tripcsv.WriteCleaned: header: %w", err)
	}
	for _, t := range trips {
		if err := cw.Write(cleanedRecord(t)); err != nil {
			return fmt.Errorf("tripcsv.WriteCleaned: trip %s: %w", t.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("tripcsv.WriteCleaned: flush: %w", err)
	}
	return nil
}

// ReadCleaned reads a cleaned artifact written by WriteCleaned.
// The header must equal CleanedHeader exactly. Every row must parse and
// satisfy pipeline.Valid; the first bad row fails the whole read.
func ReadCleaned(r io.Reader) ([]domain.Trip, error) {
	cr := csv.NewReader(r)
	// The header may have any width; a wrong one is a schema mismatch, not a
	// csv.ErrFieldCount.
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("tripcsv.ReadCleaned: empty input: %w", ErrSchemaMismatch)
		}
		return nil, fmt.Errorf("tripcsv.ReadCleaned: header: %w", err)
	}
	if !slices.Equal(header, CleanedHeader) {
		return nil, fmt.Errorf("tripcsv.ReadCleaned: %w: got %v", ErrSchemaMismatch, header)
	}
	cr.FieldsPerRecord = len(CleanedHeader)

	trips := []domain.Trip{}
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("tripcsv.ReadCleaned: %w", err)
		}
		t, err := parseCleaned(record)
		if err != nil {
			return nil, fmt.Errorf("tripcsv.ReadCleaned: line %d: %w", line, err)
		}
		trips = append(trips, t)
	}
	return trips, nil
}

func cleanedRecord(t domain.Trip) []string {
	raw := pipeline.ToRaw(t)
	return []string{
		raw.ID, raw.VendorID, raw.PickupDatetime, raw.DropoffDatetime, raw.PassengerCount,
		raw.PickupLongitude, raw.PickupLatitude, raw.DropoffLongitude, raw.DropoffLatitude,
		raw.StoreAndFwdFlag, raw.TripDuration,
		pipeline.FormatFloat(t.DistanceKm),
		pipeline.FormatFloat(t.SpeedKmh),
		pipeline.FormatFloat(t.EstimatedFare),
	}
}

func parseCleaned(record []string) (domain.Trip, error) {
	raw := domain.RawTrip{
		ID:               record[0],
		VendorID:         record[1],
		PickupDatetime:   record[2],
		DropoffDatetime:  record[3],
		PassengerCount:   record[4],
		PickupLongitude:  record[5],
		PickupLatitude:   record[6],
		DropoffLongitude: record[7],
		DropoffLatitude:  record[8],
		StoreAndFwdFlag:  record[9],
		TripDuration:     record[10],
	}
	t, err := pipeline.Parse(raw)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	if !pipeline.Valid(t) {
		return domain.Trip{}, fmt.Errorf("%w: trip %s fails validity checks", ErrInvalidRecord, t.ID)
	}

	derived := make([]float64, len(DerivedHeader))
	for i, name := range DerivedHeader {
		v, err := strconv.ParseFloat(record[len(RawHeader)+i], 64)
		if err != nil {
			return domain.Trip{}, fmt.Errorf("%w: %s: %w", ErrInvalidRecord, name, err)
		}
		derived[i] = v
	}
	t.DistanceKm, t.SpeedKmh, t.EstimatedFare = derived[0], derived[1], derived[2]
	return t, nil
}
