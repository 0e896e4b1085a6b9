package extract

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/ledongthuc/pdf"

	"upkeep/internal/ai"
	"upkeep/internal/port"
)

// EmbeddedTextStep reads the PDF's own text layer. It succeeds when more
// than minChars characters come out.
func EmbeddedTextStep(minChars int) Step {
	return Step{
		State: StateEmbeddedText,
		Ready: func(*Document) bool { return true },
		Run: func(_ context.Context, doc *Document) (string, error) {
			return EmbeddedText(doc.Data)
		},
		Accept: func(text string) bool { return len(strings.TrimSpace(text)) > minChars },
	}
}

// VisionStep asks a vision model to transcribe every page verbatim. It only
// runs when the client reports it is available.
func VisionStep(client port.AIClient) Step {
	return Step{
		State: StateVision,
		Ready: func(*Document) bool { return client != nil && client.IsAvailable() },
		Run: func(ctx context.Context, doc *Document) (string, error) {
			pages, err := doc.Pages(ctx)
			if err != nil {
				return "", err
			}
			texts := make([]string, 0, len(pages))
			for i, page := range pages {
				resp, err := client.Complete(ctx, port.CompletionRequest{
					Prompt: ai.BuildVerbatimTextPrompt(),
					Images: []port.ImageInput{page},
				})
				if err != nil {
					return "", fmt.Errorf("transcribing page %d: %w", i+1, err)
				}
				texts = append(texts, strings.TrimSpace(resp.Text))
			}
			return strings.Join(texts, pageSeparator), nil
		},
		Accept: nonEmpty,
	}
}

// OCRStep runs on-device OCR over every page.
func OCRStep(engine port.OCREngine) Step {
	return Step{
		State: StateOCR,
		Ready: func(*Document) bool { return engine != nil },
		Run: func(ctx context.Context, doc *Document) (string, error) {
			pages, err := doc.Pages(ctx)
			if err != nil {
				return "", err
			}
			texts := make([]string, 0, len(pages))
			for i, page := range pages {
				text, err := engine.Recognize(ctx, page.Bytes)
				if err != nil {
					return "", fmt.Errorf("ocr page %d: %w", i+1, err)
				}
				texts = append(texts, strings.TrimSpace(text))
			}
			return strings.Join(texts, pageSeparator), nil
		},
		Accept: nonEmpty,
	}
}

func nonEmpty(text string) bool {
	return strings.TrimSpace(text) != ""
}

// EmbeddedText concatenates the text rows of every page. Runs on a row are
// ordered by X and separated by a space when there is a visible gap.
func EmbeddedText(data []byte) (text string, err error) {
	// ledongthuc/pdf panics on some malformed content streams.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reading pdf text: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}

		var lines []string
		for _, row := range rows {
			lines = append(lines, joinRow(row.Content))
		}
		if pageText := strings.TrimSpace(strings.Join(lines, "\n")); pageText != "" {
			pages = append(pages, pageText)
		}
	}
	return strings.Join(pages, pageSeparator), nil
}

func joinRow(runs []pdf.Text) string {
	var b strings.Builder
	for i, t := range runs {
		if i > 0 {
			prev := runs[i-1]
			gap := t.X - (prev.X + prev.W)
			if gap > math.Max(prev.FontSize*0.15, 0.5) && !strings.HasSuffix(prev.S, " ") && !strings.HasPrefix(t.S, " ") {
				b.WriteByte(' ')
			}
		}
		b.WriteString(t.S)
	}
	return strings.TrimRight(b.String(), " ")
}
