package port

import (
	"context"

	"upkeep/internal/domain"
)

// VendorCreator is the single write operation the importer needs.
type VendorCreator interface {
	CreateVendor(ctx context.Context, record *domain.ParsedVendorRecord) error
}

// VendorRepository is the vendor store behind the importer.
type VendorRepository interface {
	VendorCreator
	List(ctx context.Context, offset, limit int) ([]domain.Vendor, int, error)
	Ping(ctx context.Context) error
}
