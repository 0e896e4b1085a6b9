package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"upkeep/internal/csvimport"
	"upkeep/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// exampleRow is the sample vendor written under the template header.
var exampleRow = []string{
	"Acme Plumbing Supply",
	"orders@acmeplumbing.example",
	"555-123-4567",
	"Jane Doe",
	"Account Manager",
	string(domain.VendorTypeSupplier),
	string(domain.VendorStatusActive),
	"123 Main Street",
	"Springfield",
	"IL",
	"62701",
	"https://acmeplumbing.example",
	"Pipes, fittings and water heaters",
	"5",
}

// Writer wraps csv.Writer for exporting vendors in the import template layout.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the template header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(csvimport.Columns)
}

// WriteVendors writes one row per record in template column order.
func (w *Writer) WriteVendors(records []domain.ParsedVendorRecord) error {
	for i := range records {
		if err := w.csv.Write(vendorToRow(&records[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// WriteTemplate writes the downloadable import template: BOM, header and a
// single example row.
func WriteTemplate(out io.Writer) error {
	if _, err := out.Write(BOM); err != nil {
		return err
	}
	w := NewWriter(out)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.csv.Write(exampleRow); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// WriteVendors writes a BOM-prefixed CSV of records that can be re-imported.
func WriteVendors(out io.Writer, records []domain.ParsedVendorRecord) error {
	if _, err := out.Write(BOM); err != nil {
		return err
	}
	w := NewWriter(out)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteVendors(records); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func vendorToRow(r *domain.ParsedVendorRecord) []string {
	rating := ""
	if r.Rating != nil {
		rating = strconv.Itoa(*r.Rating)
	}
	return []string{
		r.Name,
		r.Email,
		r.Phone,
		r.ContactPerson,
		r.ContactTitle,
		string(r.VendorType),
		string(r.Status),
		r.Address,
		r.City,
		r.State,
		r.ZipCode,
		r.Website,
		r.Description,
		rating,
	}
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns {sanitized_name}_{YYYY-MM-DD}.csv.
func BuildFilename(name string) string {
	return fmt.Sprintf("%s_%s.csv", SanitizeFilename(name), time.Now().Format("2006-01-02"))
}
