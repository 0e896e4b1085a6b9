package port

import "context"

// Rasterizer renders PDF pages to PNG images. zoom scales the 72 DPI page
// size; maxPages <= 0 renders every page.
type Rasterizer interface {
	PageCount(ctx context.Context, pdf []byte) (int, error)
	Rasterize(ctx context.Context, pdf []byte, zoom float64, maxPages int) ([][]byte, error)
}
