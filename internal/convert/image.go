package convert

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"

	"upkeep/internal/domain"
	"upkeep/internal/port"
)

// NormalizeImage prepares an uploaded image for a vision model. Formats every
// provider accepts pass through untouched; bmp and webp are re-encoded as PNG.
func NormalizeImage(ext string, data []byte) (port.ImageInput, error) {
	var (
		img image.Image
		err error
	)
	switch ext {
	case "bmp":
		img, err = bmp.Decode(bytes.NewReader(data))
	case "webp":
		img, err = webp.Decode(bytes.NewReader(data))
	default:
		ct, ok := domain.ImageContentTypes[ext]
		if !ok {
			return port.ImageInput{}, fmt.Errorf("%w: .%s", domain.ErrUnsupportedFileType, ext)
		}
		return port.ImageInput{Bytes: data, ContentType: ct}, nil
	}
	if err != nil {
		return port.ImageInput{}, fmt.Errorf("%w: decoding %s: %v", domain.ErrExtractionFailed, ext, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return port.ImageInput{}, fmt.Errorf("re-encoding %s as png: %w", ext, err)
	}
	return port.ImageInput{Bytes: buf.Bytes(), ContentType: "image/png"}, nil
}
