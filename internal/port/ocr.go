package port

import "context"

// OCREngine recognizes text in a single raster image.
type OCREngine interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}
