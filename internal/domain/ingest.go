package domain

import (
	"time"

	"github.com/google/uuid"
)

// CleanReport summarises one pass of the cleaning pipeline.
// Exclusions are informational: a dropped record is never an error.
type CleanReport struct {
	Input     int
	Kept      int
	Missing   int // empty or unparseable fields
	Duplicate int // exact repeats of an earlier record in the batch
	Invalid   int // rejected by the validity predicate
}

// Excluded returns the total number of records dropped by the pipeline.
func (r CleanReport) Excluded() int {
	return r.Input - r.Kept
}

// IngestRun records one load of the cleaned dataset into storage.
type IngestRun struct {
	ID        uuid.UUID
	TripCount int64
	LoadedAt  time.Time
}
