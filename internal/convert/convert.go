// Package convert turns uploaded vendor files into either raw text or one or
// more images ready for vision extraction.
package convert

import (
	"fmt"
	"log"
	"strings"

	"upkeep/internal/canvas"
	"upkeep/internal/domain"
	"upkeep/internal/port"
)

// Converter holds the per-format adapters. It carries no mutable state; each
// conversion allocates its own canvas.
type Converter struct {
	widthPx     int
	maxHeightPx int
	maxPages    int
	docx        TextExtractor
}

// New creates a Converter rendering text at widthPx on pages no taller than
// maxHeightPx, keeping at most maxPages pages (0 keeps all), and scraping DOCX
// files with docx.
func New(widthPx, maxHeightPx, maxPages int, docx TextExtractor) *Converter {
	if widthPx <= 0 {
		widthPx = canvas.DefaultWidthPx
	}
	if maxHeightPx <= 0 {
		maxHeightPx = canvas.DefaultMaxHeightPx
	}
	return &Converter{widthPx: widthPx, maxHeightPx: maxHeightPx, maxPages: maxPages, docx: docx}
}

// DocxText scrapes the readable text out of a DOCX file.
func (c *Converter) DocxText(data []byte) (string, error) {
	text, err := c.docx.ExtractText(data)
	if err != nil {
		return "", fmt.Errorf("%w: docx: %v", domain.ErrExtractionFailed, err)
	}
	return text, nil
}

// DocxToImages renders the scraped DOCX text as PNG pages.
func (c *Converter) DocxToImages(data []byte) ([]port.ImageInput, error) {
	text, err := c.DocxText(data)
	if err != nil {
		return nil, err
	}
	return c.TextToImages("docx", text)
}

// TextToImages renders plain text on as many canvas pages as it needs.
// Text with nothing printable is rejected so no blank page reaches a model.
func (c *Converter) TextToImages(ext, text string) ([]port.ImageInput, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: .%s contains no text", domain.ErrExtractionFailed, ext)
	}
	pages, err := canvas.RenderPages(text, c.widthPx, c.maxHeightPx, c.maxPages)
	if err != nil {
		return nil, err
	}
	images := make([]port.ImageInput, len(pages))
	for i, png := range pages {
		images[i] = port.ImageInput{Bytes: png, ContentType: "image/png"}
	}
	log.Printf("convert.TextToImages: .%s rendered as %d page(s)", ext, len(images))
	return images, nil
}

// DocumentText extracts the text of a non-PDF document: txt as is,
// spreadsheets through excelize and legacy office formats through docconv.
func (c *Converter) DocumentText(format domain.Format, ext string, data []byte) (string, error) {
	var (
		text string
		err  error
	)
	switch format {
	case domain.FormatText:
		text = string(data)
	case domain.FormatSpreadsheet:
		text, err = SpreadsheetToText(data)
	case domain.FormatOffice:
		text, err = OfficeToText(ext, data)
	default:
		return "", fmt.Errorf("no text converter for format %q", format)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrExtractionFailed, ext, err)
	}
	log.Printf("convert.DocumentText: .%s yielded %d chars", ext, len(text))
	return text, nil
}

// DocumentToImages renders a non-PDF document as page images.
func (c *Converter) DocumentToImages(format domain.Format, ext string, data []byte) ([]port.ImageInput, error) {
	text, err := c.DocumentText(format, ext, data)
	if err != nil {
		return nil, err
	}
	return c.TextToImages(ext, text)
}
