package csvexport

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"upkeep/internal/csvimport"
	"upkeep/internal/domain"
)

func TestWriteTemplate(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTemplate(&buf))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), BOM))

	rows, err := csv.NewReader(bytes.NewReader(buf.Bytes()[len(BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, csvimport.Columns, rows[0])
	assert.Len(t, rows[1], len(csvimport.Columns))
}

func TestWriteTemplate_RoundTripsThroughImporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTemplate(&buf))

	records := csvimport.Parse(buf.Bytes())

	require.Len(t, records, 1)
	assert.Equal(t, "Acme Plumbing Supply", records[0].Name)
	assert.Equal(t, domain.VendorTypeSupplier, records[0].VendorType)
	require.NotNil(t, records[0].Rating)
	assert.Equal(t, 5, *records[0].Rating)
}

func TestWriteVendors(t *testing.T) {
	rating := 3
	records := []domain.ParsedVendorRecord{
		{Name: "Acme, Inc.", Email: "a@acme.com", VendorType: domain.VendorTypeService, Status: domain.VendorStatusActive, Rating: &rating},
		{Name: "Bolt", VendorType: domain.VendorTypeContractor, Status: domain.VendorStatusSuspended},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteVendors(&buf, records))

	rows, err := csv.NewReader(bytes.NewReader(buf.Bytes()[len(BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Acme, Inc.", rows[1][0])
	assert.Equal(t, "3", rows[1][13])
	assert.Equal(t, "contractor", rows[2][5])
	assert.Equal(t, "", rows[2][13])
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "vendors", "vendors"},
		{"spaces", "My Vendors", "My_Vendors"},
		{"special chars", "vendors@2025!", "vendors_2025"},
		{"leading trailing", "  hello  ", "hello"},
		{"long", strings.Repeat("a", 150), strings.Repeat("a", 100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestBuildFilename(t *testing.T) {
	got := BuildFilename("vendor import template")

	assert.Equal(t, "vendor_import_template_"+time.Now().Format("2006-01-02")+".csv", got)
}
