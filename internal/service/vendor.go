package service

import (
	"context"
	"fmt"

	"github.com/pkordes/nyc-taxi/internal/domain"
	"github.com/pkordes/nyc-taxi/internal/repo"
)

// VendorService exposes the vendor reference data.
type VendorService struct {
	repo repo.VendorRepo
}

// NewVendorService constructs a VendorService backed by the provided VendorRepo.
func NewVendorService(r repo.VendorRepo) *VendorService {
	return &VendorService{repo: r}
}

// List returns every vendor.
func (s *VendorService) List(ctx context.Context) ([]domain.Vendor, error) {
	vendors, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.VendorService.List: %w", err)
	}
	if vendors == nil {
		vendors = []domain.Vendor{}
	}
	return vendors, nil
}
