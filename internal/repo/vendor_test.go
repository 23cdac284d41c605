package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/nyc-taxi/internal/domain"
	"github.com/pkordes/nyc-taxi/internal/repo"
	"github.com/pkordes/nyc-taxi/testutil"
)

func TestVendorRepo_List_Seeded(t *testing.T) {
	r := repo.NewVendorRepo(testutil.NewPool(t))

	got, err := r.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []domain.Vendor{{ID: 1, Name: "Vendor A"}, {ID: 2, Name: "Vendor B"}}, got)
}
