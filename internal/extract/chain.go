// Package extract recovers raw text from PDFs through an ordered
// fallback chain: embedded text, then a vision model, then on-device OCR.
package extract

import (
	"context"
	"fmt"
	"log"
	"strings"

	"upkeep/internal/domain"
	"upkeep/internal/port"
)

// State names one step of the chain.
type State string

const (
	StateEmbeddedText State = "embedded_text"
	StateVision       State = "vision"
	StateOCR          State = "ocr"
)

// pageSeparator puts a blank-line pair between pages so that page breaks
// also split vendor blocks.
const pageSeparator = "\n\n\n"

// Attempt records the outcome of one step.
type Attempt struct {
	State   State
	Skipped bool
	Err     error
	Chars   int
}

// Step is one state of the chain. Ready reports whether the step can run on
// this input at all; Accept decides whether its output is good enough to stop.
type Step struct {
	State  State
	Ready  func(doc *Document) bool
	Run    func(ctx context.Context, doc *Document) (string, error)
	Accept func(text string) bool
}

// Options tunes the chain.
type Options struct {
	MinTextChars int
	Zoom         float64
	MaxPages     int
}

// DefaultOptions returns the stock chain settings.
func DefaultOptions() Options {
	return Options{MinTextChars: 100, Zoom: 2.0, MaxPages: 20}
}

// Chain runs its steps strictly in order and stops at the first accepted result.
type Chain struct {
	steps      []Step
	rasterizer port.Rasterizer
	opts       Options
}

// NewChain builds a chain from explicit steps.
func NewChain(rasterizer port.Rasterizer, opts Options, steps ...Step) *Chain {
	return &Chain{steps: steps, rasterizer: rasterizer, opts: opts}
}

// NewPDFChain wires the standard EmbeddedText, Vision, OCR sequence.
func NewPDFChain(opts Options, client port.AIClient, rasterizer port.Rasterizer, engine port.OCREngine) *Chain {
	return NewChain(rasterizer, opts,
		EmbeddedTextStep(opts.MinTextChars),
		VisionStep(client),
		OCRStep(engine),
	)
}

// RunPDF extracts text from a PDF, returning the text together with the
// trace of every step it tried.
func (c *Chain) RunPDF(ctx context.Context, pdf []byte) (string, []Attempt, error) {
	doc := &Document{
		Data:       pdf,
		rasterizer: c.rasterizer,
		zoom:       c.opts.Zoom,
		maxPages:   c.opts.MaxPages,
	}
	var (
		trace   []Attempt
		lastErr error
	)
	for _, step := range c.steps {
		if err := ctx.Err(); err != nil {
			return "", trace, err
		}
		if !step.Ready(doc) {
			trace = append(trace, Attempt{State: step.State, Skipped: true})
			continue
		}

		text, err := step.Run(ctx, doc)
		if err == nil && !step.Accept(text) {
			err = fmt.Errorf("%w: %s produced %d chars", domain.ErrInsufficientText, step.State, len(strings.TrimSpace(text)))
		}
		trace = append(trace, Attempt{State: step.State, Err: err, Chars: len(strings.TrimSpace(text))})
		if err == nil {
			log.Printf("extract.Chain: %s succeeded with %d chars", step.State, len(text))
			return text, trace, nil
		}

		log.Printf("extract.Chain: %s failed: %v", step.State, err)
		lastErr = err
		if ctx.Err() != nil {
			return "", trace, ctx.Err()
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("%w: no extraction step could run", domain.ErrExtractionFailed)
	}
	return "", trace, lastErr
}

// Document is the chain input. Page images are rendered at most once per run
// and shared by the vision and OCR steps.
type Document struct {
	Data []byte

	rasterizer port.Rasterizer
	zoom       float64
	maxPages   int

	rendered bool
	pages    []port.ImageInput
	pagesErr error
}

// Pages returns the rasterized PDF pages as PNG images.
func (d *Document) Pages(ctx context.Context) ([]port.ImageInput, error) {
	if d.rendered {
		return d.pages, d.pagesErr
	}
	d.rendered = true

	if d.rasterizer == nil {
		d.pagesErr = fmt.Errorf("no rasterizer configured")
		return nil, d.pagesErr
	}
	raw, err := d.rasterizer.Rasterize(ctx, d.Data, d.zoom, d.maxPages)
	if err != nil {
		d.pagesErr = fmt.Errorf("rasterizing pdf: %w", err)
		return nil, d.pagesErr
	}
	for _, png := range raw {
		d.pages = append(d.pages, port.ImageInput{Bytes: png, ContentType: "image/png"})
	}
	return d.pages, nil
}
