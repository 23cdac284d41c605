package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/nyc-taxi/internal/domain"
	"github.com/pkordes/nyc-taxi/internal/handler"
	"github.com/pkordes/nyc-taxi/internal/handler/gen"
)

type mockVendorServicer struct {
	list func(ctx context.Context) ([]domain.Vendor, error)
}

func (m *mockVendorServicer) List(ctx context.Context) ([]domain.Vendor, error) {
	return m.list(ctx)
}

var _ handler.VendorServicer = (*mockVendorServicer)(nil)

func TestListVendors_200(t *testing.T) {
	svc := &mockVendorServicer{
		list: func(_ context.Context) ([]domain.Vendor, error) {
			return []domain.Vendor{{ID: 1, Name: "Vendor A"}, {ID: 2, Name: "Vendor B"}}, nil
		},
	}

	rec := get(t, newHTTPHandler(nil, svc), "/vendors")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp []gen.Vendor
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, []gen.Vendor{
		{VendorId: 1, VendorName: "Vendor A"},
		{VendorId: 2, VendorName: "Vendor B"},
	}, resp)
}

func TestListVendors_500(t *testing.T) {
	svc := &mockVendorServicer{
		list: func(_ context.Context) ([]domain.Vendor, error) {
			return nil, errors.New("boom")
		},
	}

	rec := get(t, newHTTPHandler(nil, svc), "/vendors")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
