// Package csvimport maps vendor CSV files straight onto ParsedVendorRecord
// without any AI involvement.
package csvimport

import (
	"bytes"
	"strconv"
	"strings"

	"upkeep/internal/domain"
)

// Columns is the template column order. Headerless or unrecognised files are
// mapped positionally in this order.
var Columns = []string{
	"name",
	"email",
	"phone",
	"contact_person",
	"contact_title",
	"vendor_type",
	"status",
	"address",
	"city",
	"state",
	"zip_code",
	"website",
	"description",
	"rating",
}

// HeaderAliases maps a normalised header (lower case, underscores and
// hyphens as spaces) to its template column.
var HeaderAliases = map[string]string{
	"name":           "name",
	"vendor name":    "name",
	"vendor":         "name",
	"company":        "name",
	"company name":   "name",
	"business name":  "name",
	"email":          "email",
	"email address":  "email",
	"e mail":         "email",
	"phone":          "phone",
	"phone number":   "phone",
	"telephone":      "phone",
	"tel":            "phone",
	"contact person": "contact_person",
	"contact":        "contact_person",
	"contact name":   "contact_person",
	"contact title":  "contact_title",
	"title":          "contact_title",
	"vendor type":    "vendor_type",
	"type":           "vendor_type",
	"category":       "vendor_type",
	"status":         "status",
	"address":        "address",
	"street":         "address",
	"street address": "address",
	"city":           "city",
	"state":          "state",
	"province":       "state",
	"zip code":       "zip_code",
	"zip":            "zip_code",
	"zipcode":        "zip_code",
	"postal code":    "zip_code",
	"postcode":       "zip_code",
	"website":        "website",
	"web site":       "website",
	"url":            "website",
	"description":    "description",
	"notes":          "description",
	"services":       "description",
	"rating":         "rating",
}

var setters = map[string]func(r *domain.ParsedVendorRecord, v string){
	"name":           func(r *domain.ParsedVendorRecord, v string) { r.Name = v },
	"email":          func(r *domain.ParsedVendorRecord, v string) { r.Email = v },
	"phone":          func(r *domain.ParsedVendorRecord, v string) { r.Phone = v },
	"contact_person": func(r *domain.ParsedVendorRecord, v string) { r.ContactPerson = v },
	"contact_title":  func(r *domain.ParsedVendorRecord, v string) { r.ContactTitle = v },
	"vendor_type":    func(r *domain.ParsedVendorRecord, v string) { r.VendorType = domain.VendorType(v) },
	"status":         func(r *domain.ParsedVendorRecord, v string) { r.Status = domain.VendorStatus(v) },
	"address":        func(r *domain.ParsedVendorRecord, v string) { r.Address = v },
	"city":           func(r *domain.ParsedVendorRecord, v string) { r.City = v },
	"state":          func(r *domain.ParsedVendorRecord, v string) { r.State = v },
	"zip_code":       func(r *domain.ParsedVendorRecord, v string) { r.ZipCode = v },
	"website":        func(r *domain.ParsedVendorRecord, v string) { r.Website = v },
	"description":    func(r *domain.ParsedVendorRecord, v string) { r.Description = v },
	"rating":         func(r *domain.ParsedVendorRecord, v string) { r.Rating = parseRating(v) },
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// SplitLine splits one CSV line on commas that sit outside double quotes.
// Quotes only toggle the in-quote state and are dropped, so a doubled quote
// inside a quoted span is not an escape: "a""b" yields ab.
func SplitLine(line string) []string {
	var (
		cells   []string
		cur     strings.Builder
		inQuote bool
	)
	for _, ch := range line {
		switch {
		case ch == '"':
			inQuote = !inQuote
		case ch == ',' && !inQuote:
			cells = append(cells, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(ch)
		}
	}
	return append(cells, cur.String())
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.NewReplacer("_", " ", "-", " ").Replace(h)
	return strings.Join(strings.Fields(h), " ")
}

// columnIndex resolves the header row once. A nil result means no header
// cell matched and rows map positionally.
func columnIndex(header []string) []string {
	index := make([]string, len(header))
	matched := false
	for i, h := range header {
		if col, ok := HeaderAliases[normalizeHeader(h)]; ok {
			index[i] = col
			matched = true
		}
	}
	if !matched {
		return nil
	}
	return index
}

// Parse reads a vendor CSV. The first non-blank line is always the header.
// Rows whose first cell is empty are skipped; missing cells leave fields
// empty. Parse never flags records.
func Parse(data []byte) []domain.ParsedVendorRecord {
	data = bytes.TrimPrefix(data, utf8BOM)
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")

	var (
		records  []domain.ParsedVendorRecord
		index    []string
		seenHead bool
	)
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells := SplitLine(line)
		if !seenHead {
			index = columnIndex(cells)
			seenHead = true
			continue
		}
		if strings.TrimSpace(cells[0]) == "" {
			continue
		}

		var rec domain.ParsedVendorRecord
		for i, cell := range cells {
			col := columnAt(index, i)
			if col == "" {
				continue
			}
			setters[col](&rec, cell)
		}
		rec.Normalize()
		rec.Source = "csv"
		records = append(records, rec)
	}
	return records
}

func columnAt(index []string, i int) string {
	if index == nil {
		if i < len(Columns) {
			return Columns[i]
		}
		return ""
	}
	if i < len(index) {
		return index[i]
	}
	return ""
}

func parseRating(v string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 || n > 5 {
		return nil
	}
	return &n
}
