package repo

import (
	"context"
	"fmt"

	"github.com/pkordes/nyc-taxi/internal/domain"
)

// VendorRepo reads the static vendor reference table.
type VendorRepo interface {
	// List returns every vendor ordered by id.
	List(ctx context.Context) ([]domain.Vendor, error)
}

// pgVendorRepo is the Postgres implementation of VendorRepo.
type pgVendorRepo struct {
	db db
}

// NewVendorRepo constructs a VendorRepo backed by the provided db connection.
func NewVendorRepo(db db) VendorRepo {
	return &pgVendorRepo{db: db}
}

// List returns all vendors.
func (r *pgVendorRepo) List(ctx context.Context) ([]domain.Vendor, error) {
	rows, err := r.db.Query(ctx, `SELECT vendor_id, vendor_name FROM vendors ORDER BY vendor_id`)
	if err != nil {
		return nil, fmt.Errorf("repo.VendorRepo.List: %w", err)
	}
	defer rows.Close()

	vendors := []domain.Vendor{}
	for rows.Next() {
		var v domain.Vendor
		if err := rows.Scan(&v.ID, &v.Name); err != nil {
			return nil, fmt.Errorf("repo.VendorRepo.List: scan: %w", err)
		}
		vendors = append(vendors, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.VendorRepo.List: rows: %w", err)
	}
	return vendors, nil
}
