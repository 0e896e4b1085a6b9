// Package raster renders PDF pages to PNG with MuPDF after a pdfcpu
// structural check.
package raster

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// baseDPI is the PDF user-space resolution; zoom multiplies it.
const baseDPI = 72.0

// FitzRasterizer implements port.Rasterizer.
type FitzRasterizer struct{}

// New creates a FitzRasterizer.
func New() *FitzRasterizer {
	return &FitzRasterizer{}
}

func pdfcpuConfig() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// PageCount validates the PDF structure and returns its page count.
func (r *FitzRasterizer) PageCount(_ context.Context, pdf []byte) (int, error) {
	n, err := api.PageCount(bytes.NewReader(pdf), pdfcpuConfig())
	if err != nil {
		return 0, fmt.Errorf("pdf preflight: %w", err)
	}
	return n, nil
}

// Rasterize renders up to maxPages pages (all when maxPages <= 0) at
// 72*zoom DPI. Pages come back in document order.
func (r *FitzRasterizer) Rasterize(ctx context.Context, pdf []byte, zoom float64, maxPages int) ([][]byte, error) {
	total, err := r.PageCount(ctx, pdf)
	if err != nil {
		return nil, err
	}
	if zoom <= 0 {
		zoom = 1
	}
	pages := total
	if maxPages > 0 && pages > maxPages {
		log.Printf("raster.Rasterize: rendering first %d of %d pages", maxPages, total)
		pages = maxPages
	}

	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", err)
	}
	defer func() { _ = doc.Close() }()

	if n := doc.NumPage(); n < pages {
		pages = n
	}

	out := make([][]byte, 0, pages)
	for i := 0; i < pages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		png, err := doc.ImagePNG(i, baseDPI*zoom)
		if err != nil {
			return nil, fmt.Errorf("rendering page %d: %w", i+1, err)
		}
		out = append(out, png)
	}
	return out, nil
}
