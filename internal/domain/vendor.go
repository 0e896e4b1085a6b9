package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ParsedVendorRecord is one vendor recovered from an import file. It only
// lives until the importer converts it into a Vendor row.
type ParsedVendorRecord struct {
	Name          string       `json:"name"`
	Email         string       `json:"email"`
	Phone         string       `json:"phone"`
	ContactPerson string       `json:"contact_person"`
	ContactTitle  string       `json:"contact_title"`
	VendorType    VendorType   `json:"vendor_type"`
	Status        VendorStatus `json:"status"`
	Address       string       `json:"address"`
	City          string       `json:"city"`
	State         string       `json:"state"`
	ZipCode       string       `json:"zip_code"`
	Website       string       `json:"website"`
	Description   string       `json:"description"`
	Rating        *int         `json:"rating"`

	// Low-confidence marker set by AI extraction. Flagged records never reach the writer.
	ErrorFlag    bool   `json:"error_flag,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
	Source       string `json:"source,omitempty"`
}

// NewParsedVendorRecord returns a record carrying the default enum values.
func NewParsedVendorRecord(name string) ParsedVendorRecord {
	r := ParsedVendorRecord{Name: name}
	r.Normalize()
	return r
}

// Normalize trims every string field and applies defaults so the writer
// always receives a fully populated record.
func (r *ParsedVendorRecord) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.ContactPerson = strings.TrimSpace(r.ContactPerson)
	r.ContactTitle = strings.TrimSpace(r.ContactTitle)
	r.Address = strings.TrimSpace(r.Address)
	r.City = strings.TrimSpace(r.City)
	r.State = strings.TrimSpace(r.State)
	r.ZipCode = strings.TrimSpace(r.ZipCode)
	r.Website = strings.TrimSpace(r.Website)
	r.Description = strings.TrimSpace(r.Description)

	r.VendorType = VendorType(strings.ToLower(strings.TrimSpace(string(r.VendorType))))
	if !r.VendorType.Valid() {
		r.VendorType = VendorTypeService
	}
	r.Status = VendorStatus(strings.ToLower(strings.TrimSpace(string(r.Status))))
	if !r.Status.Valid() {
		r.Status = VendorStatusActive
	}
	if r.Rating != nil && (*r.Rating < 1 || *r.Rating > 5) {
		r.Rating = nil
	}
}

// Flag marks the record as low-confidence.
func (r *ParsedVendorRecord) Flag(msg string) {
	r.ErrorFlag = true
	r.ErrorMessage = msg
}

// DedupeKey is the case-insensitive (name, email) identity used to collapse
// vendors that were extracted more than once.
func (r *ParsedVendorRecord) DedupeKey() string {
	return strings.ToLower(strings.TrimSpace(r.Name)) + "\x00" + strings.ToLower(strings.TrimSpace(r.Email))
}

// Vendor is a persisted vendor row.
type Vendor struct {
	ID            uuid.UUID    `db:"id" json:"id"`
	Name          string       `db:"name" json:"name"`
	Email         string       `db:"email" json:"email"`
	Phone         string       `db:"phone" json:"phone"`
	ContactPerson string       `db:"contact_person" json:"contact_person"`
	ContactTitle  string       `db:"contact_title" json:"contact_title"`
	VendorType    VendorType   `db:"vendor_type" json:"vendor_type"`
	Status        VendorStatus `db:"status" json:"status"`
	Address       string       `db:"address" json:"address"`
	City          string       `db:"city" json:"city"`
	State         string       `db:"state" json:"state"`
	ZipCode       string       `db:"zip_code" json:"zip_code"`
	Website       string       `db:"website" json:"website"`
	Description   string       `db:"description" json:"description"`
	Rating        *int         `db:"rating" json:"rating"`
	CreatedAt     time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time    `db:"updated_at" json:"updated_at"`
}

// VendorFromRecord builds a new vendor row from a normalized record.
func VendorFromRecord(r *ParsedVendorRecord) *Vendor {
	now := time.Now().UTC()
	return &Vendor{
		ID:            uuid.New(),
		Name:          r.Name,
		Email:         r.Email,
		Phone:         r.Phone,
		ContactPerson: r.ContactPerson,
		ContactTitle:  r.ContactTitle,
		VendorType:    r.VendorType,
		Status:        r.Status,
		Address:       r.Address,
		City:          r.City,
		State:         r.State,
		ZipCode:       r.ZipCode,
		Website:       r.Website,
		Description:   r.Description,
		Rating:        r.Rating,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// ImportFailure describes one record the writer could not create.
type ImportFailure struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Error string `json:"error"`
}

// ImportResult summarises a bulk write. Successful + Failed always equals Total.
type ImportResult struct {
	Successful int             `json:"successful"`
	Failed     int             `json:"failed"`
	Total      int             `json:"total"`
	Failures   []ImportFailure `json:"failures,omitempty"`
}

// Status reports how the UI should present the result.
func (r ImportResult) Status() ImportStatus {
	switch {
	case r.Failed == 0:
		return ImportStatusSuccess
	case r.Successful > 0:
		return ImportStatusWarning
	default:
		return ImportStatusError
	}
}
