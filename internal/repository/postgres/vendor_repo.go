package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"upkeep/internal/domain"
	"upkeep/internal/port"
)

const uniqueViolation = "23505"

type vendorRepo struct {
	db *sqlx.DB
}

// NewVendorRepo creates a new PostgreSQL-backed VendorRepository.
func NewVendorRepo(db *sqlx.DB) port.VendorRepository {
	return &vendorRepo{db: db}
}

func (r *vendorRepo) CreateVendor(ctx context.Context, record *domain.ParsedVendorRecord) error {
	v := domain.VendorFromRecord(record)

	query := `INSERT INTO vendors (id, name, email, phone, contact_person, contact_title,
			vendor_type, status, address, city, state, zip_code, website, description,
			rating, created_at, updated_at)
		VALUES (:id, :name, :email, :phone, :contact_person, :contact_title,
			:vendor_type, :status, :address, :city, :state, :zip_code, :website, :description,
			:rating, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, v); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %q", domain.ErrDuplicateVendor, v.Name)
		}
		return fmt.Errorf("vendorRepo.CreateVendor: %w", err)
	}
	return nil
}

func (r *vendorRepo) List(ctx context.Context, offset, limit int) ([]domain.Vendor, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM vendors"); err != nil {
		return nil, 0, fmt.Errorf("vendorRepo.List count: %w", err)
	}

	var vendors []domain.Vendor
	err := r.db.SelectContext(ctx, &vendors,
		"SELECT * FROM vendors ORDER BY created_at DESC, name LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("vendorRepo.List: %w", err)
	}
	return vendors, total, nil
}

func (r *vendorRepo) Ping(ctx context.Context) error {
	return ping(ctx, r.db)
}
