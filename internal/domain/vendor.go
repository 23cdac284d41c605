package domain

// Vendor is the taxi operator that reported a trip.
// Vendors are static reference data seeded by migration.
type Vendor struct {
	ID   int    `json:"vendor_id"`
	Name string `json:"vendor_name"`
}
