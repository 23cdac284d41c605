package handler

import (
	"context"

	"github.com/pkordes/nyc-taxi/internal/handler/gen"
)

// ListVendors handles GET /vendors.
func (s *Server) ListVendors(ctx context.Context, _ gen.ListVendorsRequestObject) (gen.ListVendorsResponseObject, error) {
	vendors, err := s.vendors.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make(gen.ListVendors200JSONResponse, len(vendors))
	for i, v := range vendors {
		resp[i] = gen.Vendor{VendorId: v.ID, VendorName: v.Name}
	}
	return resp, nil
}
