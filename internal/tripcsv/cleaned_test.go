package tripcsv_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/nyc-taxi/internal/pipeline"
	"github.com/pkordes/nyc-taxi/internal/tripcsv"
)

func TestCleaned_RoundTrip(t *testing.T) {
	raws, err := tripcsv.ReadRaw(strings.NewReader(rawFeed), 0)
	require.NoError(t, err)
	trips, report := pipeline.Clean(raws)
	require.Equal(t, 3, report.Kept)

	var buf bytes.Buffer
	require.NoError(t, tripcsv.WriteCleaned(&buf, trips))

	got, err := tripcsv.ReadCleaned(&buf)

	require.NoError(t, err)
	assert.Equal(t, trips, got)
}

func TestWriteCleaned_Header(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, tripcsv.WriteCleaned(&buf, nil))

	assert.Equal(t, strings.Join(tripcsv.CleanedHeader, ",")+"\n", buf.String())
}

func TestReadCleaned_EmptyArtifact(t *testing.T) {
	got, err := tripcsv.ReadCleaned(strings.NewReader(strings.Join(tripcsv.CleanedHeader, ",") + "\n"))

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestReadCleaned_HeaderMismatch(t *testing.T) {
	// The raw feed lacks the derived columns.
	_, err := tripcsv.ReadCleaned(strings.NewReader(rawFeed))

	assert.ErrorIs(t, err, tripcsv.ErrSchemaMismatch)
}

func TestReadCleaned_ExtraColumns(t *testing.T) {
	// The pandas export carried two extra unit-converted columns.
	header := append(append([]string(nil), tripcsv.CleanedHeader...), "distance_miles", "duration_minutes")

	_, err := tripcsv.ReadCleaned(strings.NewReader(strings.Join(header, ",") + "\n"))

	assert.ErrorIs(t, err, tripcsv.ErrSchemaMismatch)
}

func TestReadCleaned_ShortRowAfterHeader(t *testing.T) {
	body := strings.Join(tripcsv.CleanedHeader, ",") + "\nid1,2,3\n"

	_, err := tripcsv.ReadCleaned(strings.NewReader(body))

	require.Error(t, err)
	assert.NotErrorIs(t, err, tripcsv.ErrSchemaMismatch)
	assert.ErrorIs(t, err, csv.ErrFieldCount)
}

func TestReadCleaned_RenamedColumn(t *testing.T) {
	header := append([]string(nil), tripcsv.CleanedHeader...)
	header[len(header)-1] = "fare"

	_, err := tripcsv.ReadCleaned(strings.NewReader(strings.Join(header, ",") + "\n"))

	assert.ErrorIs(t, err, tripcsv.ErrSchemaMismatch)
}

func TestReadCleaned_InvalidRow(t *testing.T) {
	header := strings.Join(tripcsv.CleanedHeader, ",")
	tests := []struct {
		name string
		row  string
	}{
		{"zero passengers", "id1,2,2016-03-14 17:24:55,2016-03-14 17:32:30,0,-73.98,40.76,-73.96,40.76,N,455,1.5,11.8,9.1"},
		{"bad fare", "id1,2,2016-03-14 17:24:55,2016-03-14 17:32:30,1,-73.98,40.76,-73.96,40.76,N,455,1.5,11.8,cheap"},
		{"missing flag", "id1,2,2016-03-14 17:24:55,2016-03-14 17:32:30,1,-73.98,40.76,-73.96,40.76,,455,1.5,11.8,9.1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tripcsv.ReadCleaned(strings.NewReader(header + "\n" + tc.row + "\n"))

			require.ErrorIs(t, err, tripcsv.ErrInvalidRecord)
			assert.ErrorContains(t, err, "line 2")
		})
	}
}
