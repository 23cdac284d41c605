package tripcsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pkordes/nyc-taxi/internal/domain"
)

// ReadRaw reads the raw trip feed from r. Columns are matched by header name,
// so their order and any extra columns do not matter, but every column in
// RawHeader must be present. Short rows yield empty fields, which the
// cleaning pipeline counts as missing.
//
// limit > 0 stops after that many records; 0 reads everything.
func ReadRaw(r io.Reader, limit int) ([]domain.RawTrip, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("tripcsv.ReadRaw: empty input: %w", ErrSchemaMismatch)
		}
		return nil, fmt.Errorf("tripcsv.ReadRaw: header: %w", err)
	}
	cols, err := columnIndex(header, RawHeader)
	if err != nil {
		return nil, fmt.Errorf("tripcsv.ReadRaw: %w", err)
	}

	var trips []domain.RawTrip
	for limit <= 0 || len(trips) < limit {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("tripcsv.ReadRaw: %w", err)
		}
		field := func(name string) string {
			i := cols[name]
			if i >= len(record) {
				return ""
			}
			return record[i]
		}
		trips = append(trips, domain.RawTrip{
			ID:               field("id"),
			VendorID:         field("vendor_id"),
			PickupDatetime:   field("pickup_datetime"),
			DropoffDatetime:  field("dropoff_datetime"),
			PassengerCount:   field("passenger_count"),
			PickupLongitude:  field("pickup_longitude"),
			PickupLatitude:   field("pickup_latitude"),
			DropoffLongitude: field("dropoff_longitude"),
			DropoffLatitude:  field("dropoff_latitude"),
			StoreAndFwdFlag:  field("store_and_fwd_flag"),
			TripDuration:     field("trip_duration"),
		})
	}
	return trips, nil
}

// columnIndex maps each wanted column to its position in header.
func columnIndex(header, want []string) (map[string]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		// Some exporters prefix the first column with a UTF-8 BOM.
		h = strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}

	var missing []string
	cols := make(map[string]int, len(want))
	for _, w := range want {
		i, ok := pos[w]
		if !ok {
			missing = append(missing, w)
			continue
		}
		cols[w] = i
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", ErrSchemaMismatch, strings.Join(missing, ", "))
	}
	return cols, nil
}
