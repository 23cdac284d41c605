package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/nyc-taxi/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func TestNewTripFilter_defaults(t *testing.T) {
	f, err := domain.NewTripFilter(nil, nil, nil, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, domain.TripFilter{Limit: domain.DefaultTripLimit}, f)
}

func TestNewTripFilter_keepsValues(t *testing.T) {
	from := time.Date(2016, 3, 14, 0, 0, 0, 0, time.UTC)
	to := time.Date(2016, 3, 15, 0, 0, 0, 0, time.UTC)

	f, err := domain.NewTripFilter(&from, &to, ptr(2), ptr(1), ptr(5))

	require.NoError(t, err)
	assert.Equal(t, &from, f.PickupFrom)
	assert.Equal(t, &to, f.PickupTo)
	assert.Equal(t, 2, *f.VendorID)
	assert.Equal(t, 1, *f.PassengerCount)
	assert.Equal(t, 5, f.Limit)
}

func TestNewTripFilter_sameInstantIsAllowed(t *testing.T) {
	at := time.Date(2016, 3, 14, 12, 0, 0, 0, time.UTC)

	_, err := domain.NewTripFilter(&at, &at, nil, nil, nil)

	require.NoError(t, err)
}

func TestNewTripFilter_invalid(t *testing.T) {
	from := time.Date(2016, 3, 15, 0, 0, 0, 0, time.UTC)
	to := time.Date(2016, 3, 14, 0, 0, 0, 0, time.UTC)

	cases := map[string]struct {
		from, to *time.Time
		limit    *int
	}{
		"zero limit":       {limit: ptr(0)},
		"negative limit":   {limit: ptr(-1)},
		"end before start": {from: &from, to: &to},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := domain.NewTripFilter(tc.from, tc.to, nil, nil, tc.limit)
			require.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}
