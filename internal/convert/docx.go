package convert

import (
	"archive/zip"
	"bytes"
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"
)

// TextExtractor pulls readable text out of a DOCX file.
type TextExtractor interface {
	ExtractText(docx []byte) (string, error)
}

const documentPart = "word/document.xml"

var (
	// runOrParagraphEnd matches a text run or the end of a paragraph. The
	// attribute group keeps <w:tab/> and <w:tbl> out of the match.
	runOrParagraphEnd = regexp.MustCompile(`<w:t(?:\s[^>]*)?>([^<]*)</w:t>|</w:p>`)
	anyTag            = regexp.MustCompile(`<[^>]+>`)

	emailSignal    = regexp.MustCompile(`\S+@\S+\.\S+`)
	phoneSignal    = regexp.MustCompile(`\+?\(?\d[\d\s().-]{6,}\d`)
	businessSignal = regexp.MustCompile(`\b[A-Z][A-Za-z&'.-]+(?:\s+(?:&\s+)?[A-Z][A-Za-z&'.-]+)+`)
	addressSignal  = regexp.MustCompile(`(?i)\b\d+\s+\w+.*\b(st|street|ave|avenue|rd|road|blvd|boulevard|dr|drive|ln|lane|way|ct|court|suite|ste|hwy|highway|pkwy)\b`)
)

// DocxTextExtractor scrapes text runs from word/document.xml with a regular
// expression instead of a full XML parse. When fewer than MinChars characters
// come out, it falls back to keeping only lines that look like vendor details.
type DocxTextExtractor struct {
	MinChars int
}

// NewDocxTextExtractor returns an extractor with the given fallback threshold.
func NewDocxTextExtractor(minChars int) *DocxTextExtractor {
	return &DocxTextExtractor{MinChars: minChars}
}

func (e *DocxTextExtractor) ExtractText(docx []byte) (string, error) {
	raw, err := readDocumentPart(docx)
	if err != nil {
		return "", err
	}

	text := scrapeRuns(raw)
	if len(strings.TrimSpace(text)) >= e.MinChars {
		return text, nil
	}

	if signals := signalLines(raw); signals != "" {
		return signals, nil
	}
	return text, nil
}

func readDocumentPart(docx []byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(docx), int64(len(docx)))
	if err != nil {
		return nil, fmt.Errorf("opening docx archive: %w", err)
	}
	for _, f := range zr.File {
		if f.Name != documentPart {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", documentPart, err)
		}
		defer func() { _ = rc.Close() }()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", documentPart, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("docx archive has no %s", documentPart)
}

func scrapeRuns(raw []byte) string {
	var b strings.Builder
	for _, m := range runOrParagraphEnd.FindAllSubmatch(raw, -1) {
		if m[1] == nil {
			b.WriteByte('\n')
			continue
		}
		b.WriteString(html.UnescapeString(string(m[1])))
	}
	return b.String()
}

// signalLines strips all markup and keeps lines carrying an email, a phone
// number, a capitalised multi-word name or a street address.
func signalLines(raw []byte) string {
	plain := html.UnescapeString(anyTag.ReplaceAllString(string(raw), "\n"))

	var kept []string
	for _, line := range strings.Split(plain, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 3 {
			continue
		}
		if hasSignal(line) {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

func hasSignal(line string) bool {
	return strings.Contains(line, "@") && emailSignal.MatchString(line) ||
		phoneSignal.MatchString(line) ||
		businessSignal.MatchString(line) ||
		addressSignal.MatchString(line)
}
