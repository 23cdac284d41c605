package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/nyc-taxi/internal/config"
	"github.com/pkordes/nyc-taxi/internal/tripcsv"
)

const rawFeed = `id,vendor_id,pickup_datetime,dropoff_datetime,passenger_count,pickup_longitude,pickup_latitude,dropoff_longitude,dropoff_latitude,store_and_fwd_flag,trip_duration
id1,2,2016-03-14 17:24:55,2016-03-14 17:34:55,1,-73.98,40.75,-73.97,40.76,N,600
id2,1,2016-03-14 18:00:00,2016-03-14 18:05:00,,-73.98,40.75,-73.97,40.76,N,300
id4,1,2016-03-14 20:00:00,2016-03-14 20:12:00,2,-73.99,40.73,-73.95,40.78,Y,720
`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestRun_cleanStage verifies that the clean stage runs without a database,
// writes the cleaned artifact and dumps the ingest metrics.
func TestRun_cleanStage(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "train.csv")
	require.NoError(t, os.WriteFile(in, []byte(rawFeed), 0o600))

	opts := options{
		stage:       stageClean,
		input:       in,
		output:      filepath.Join(dir, "cleaned.csv"),
		metricsFile: filepath.Join(dir, "ingest.prom"),
	}

	require.NoError(t, run(context.Background(), config.Config{}, opts, discardLogger()))

	f, err := os.Open(opts.output)
	require.NoError(t, err)
	defer f.Close()
	trips, err := tripcsv.ReadCleaned(f)
	require.NoError(t, err)
	require.Len(t, trips, 2)
	assert.Equal(t, "id1", trips[0].ID)
	assert.Equal(t, "id4", trips[1].ID)

	prom, err := os.ReadFile(opts.metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `nyctaxi_ingest_records_total{outcome="kept"} 2`)
	assert.Contains(t, string(prom), `nyctaxi_ingest_records_total{outcome="missing"} 1`)
}

// TestRun_cleanStageLimit verifies that -limit truncates the raw feed.
func TestRun_cleanStageLimit(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "train.csv")
	require.NoError(t, os.WriteFile(in, []byte(rawFeed), 0o600))

	opts := options{stage: stageClean, input: in, output: filepath.Join(dir, "cleaned.csv"), limit: 1}

	require.NoError(t, run(context.Background(), config.Config{}, opts, discardLogger()))

	b, err := os.ReadFile(opts.output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "id1,"))
}

func TestRun_rejectsBadOptions(t *testing.T) {
	cases := map[string]options{
		"unknown stage":  {stage: "transform"},
		"negative limit": {stage: stageClean, limit: -1},
	}
	for name, opts := range cases {
		t.Run(name, func(t *testing.T) {
			err := run(context.Background(), config.Config{}, opts, discardLogger())
			require.Error(t, err)
		})
	}
}

func TestRun_missingInput(t *testing.T) {
	dir := t.TempDir()
	opts := options{stage: stageClean, input: filepath.Join(dir, "nope.csv"), output: filepath.Join(dir, "out.csv")}

	err := run(context.Background(), config.Config{}, opts, discardLogger())

	require.ErrorContains(t, err, "open input")
}
