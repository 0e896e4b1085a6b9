package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"upkeep/internal/domain"
)

func TestRenderResult(t *testing.T) {
	out := renderResult(domain.ImportResult{Successful: 3, Total: 3})
	assert.Contains(t, out, "Imported 3 vendors")

	out = renderResult(domain.ImportResult{
		Successful: 3, Failed: 2, Total: 5,
		Failures: []domain.ImportFailure{{Index: 1, Name: "Bolt", Error: "duplicate"}},
	})
	assert.Contains(t, out, "Imported 3 of 5 vendors; 2 failed")
	assert.Contains(t, out, "#2 Bolt: duplicate")

	out = renderResult(domain.ImportResult{Failed: 2, Total: 2})
	assert.Contains(t, out, "No vendors imported")
}

func TestRenderPreview_TruncatesLongLists(t *testing.T) {
	var records []domain.ParsedVendorRecord
	for i := 0; i < maxPreviewRows+5; i++ {
		records = append(records, domain.NewParsedVendorRecord("Vendor"))
	}

	out := renderPreview("vendors.csv", records, 2)

	assert.Contains(t, out, "25 vendors found in vendors.csv")
	assert.Contains(t, out, "... and 5 more")
	assert.Contains(t, out, "2 low-confidence entries were skipped")
	assert.Equal(t, maxPreviewRows, strings.Count(out, "Vendor "))
}

func TestRenderError(t *testing.T) {
	assert.Contains(t, renderError(errors.New("boom")), "Error: boom")
}
