// Package ocr recognizes text in raster images with Tesseract.
package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// TesseractEngine implements port.OCREngine. A fresh Tesseract client is
// created per call; gosseract clients are not safe for concurrent use.
type TesseractEngine struct {
	language string
}

// NewTesseractEngine creates an engine for the given Tesseract language code.
func NewTesseractEngine(language string) *TesseractEngine {
	if language == "" {
		language = "eng"
	}
	return &TesseractEngine{language: language}
}

func (e *TesseractEngine) Recognize(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer func() { _ = client.Close() }()

	if err := client.SetLanguage(e.language); err != nil {
		return "", fmt.Errorf("tesseract language %q: %w", e.language, err)
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("tesseract image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("tesseract recognize: %w", err)
	}
	return text, nil
}
