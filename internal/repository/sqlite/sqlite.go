// Package sqlite is a single-file vendor store for the command-line importer.
package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"upkeep/internal/domain"
	"upkeep/internal/port"
)

const schema = `
CREATE TABLE IF NOT EXISTS vendors (
	id             TEXT PRIMARY KEY,
	name           TEXT NOT NULL,
	email          TEXT NOT NULL DEFAULT '',
	phone          TEXT NOT NULL DEFAULT '',
	contact_person TEXT NOT NULL DEFAULT '',
	contact_title  TEXT NOT NULL DEFAULT '',
	vendor_type    TEXT NOT NULL DEFAULT 'service',
	status         TEXT NOT NULL DEFAULT 'active',
	address        TEXT NOT NULL DEFAULT '',
	city           TEXT NOT NULL DEFAULT '',
	state          TEXT NOT NULL DEFAULT '',
	zip_code       TEXT NOT NULL DEFAULT '',
	website        TEXT NOT NULL DEFAULT '',
	description    TEXT NOT NULL DEFAULT '',
	rating         INTEGER,
	created_at     DATETIME NOT NULL,
	updated_at     DATETIME NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_vendors_name_lower ON vendors (lower(name));
`

// Open opens (creating when missing) the database at path and applies the
// vendors schema. Use ":memory:" for a throwaway store.
func Open(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite %s: %w", path, err)
	}
	// One writer; also keeps :memory: databases on a single connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("applying sqlite schema: %w", err)
	}
	return db, nil
}

type vendorRepo struct {
	db *sqlx.DB
}

// NewVendorRepo creates a new SQLite-backed VendorRepository.
func NewVendorRepo(db *sqlx.DB) port.VendorRepository {
	return &vendorRepo{db: db}
}

func (r *vendorRepo) CreateVendor(ctx context.Context, record *domain.ParsedVendorRecord) error {
	v := domain.VendorFromRecord(record)

	query := `INSERT INTO vendors (id, name, email, phone, contact_person, contact_title,
			vendor_type, status, address, city, state, zip_code, website, description,
			rating, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		v.ID.String(), v.Name, v.Email, v.Phone, v.ContactPerson, v.ContactTitle,
		string(v.VendorType), string(v.Status), v.Address, v.City, v.State, v.ZipCode, v.Website, v.Description,
		v.Rating, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: %q", domain.ErrDuplicateVendor, v.Name)
		}
		return fmt.Errorf("sqlite.vendorRepo.CreateVendor: %w", err)
	}
	return nil
}

func (r *vendorRepo) List(ctx context.Context, offset, limit int) ([]domain.Vendor, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM vendors"); err != nil {
		return nil, 0, fmt.Errorf("sqlite.vendorRepo.List count: %w", err)
	}

	var vendors []domain.Vendor
	err := r.db.SelectContext(ctx, &vendors,
		"SELECT * FROM vendors ORDER BY created_at DESC, name LIMIT ? OFFSET ?", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("sqlite.vendorRepo.List: %w", err)
	}
	return vendors, total, nil
}

func (r *vendorRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
