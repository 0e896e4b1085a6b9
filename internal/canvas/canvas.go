// Package canvas renders plain text onto a white bitmap and encodes it as PNG
// so that text-only documents can go through the vision extraction path.
package canvas

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	DefaultWidthPx     = 1200
	DefaultMaxHeightPx = 1600
	margin             = 24
	lineHeight         = 16
	tabWidth           = 4
)

var face = basicfont.Face7x13

// glyphWidth is the advance of every glyph in the fixed-width face.
var glyphWidth = face.Advance

// Columns returns how many characters fit on one line of a canvas widthPx wide.
func Columns(widthPx int) int {
	cols := (widthPx - 2*margin) / glyphWidth
	if cols < 1 {
		return 1
	}
	return cols
}

// Wrap breaks text into lines no longer than cols characters, wrapping at
// word boundaries and hard-splitting words longer than a line. Existing line
// breaks are kept; blank lines survive as empty strings.
func Wrap(text string, cols int) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\t", strings.Repeat(" ", tabWidth))

	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \r")
		if line == "" {
			out = append(out, "")
			continue
		}

		var cur strings.Builder
		for _, word := range strings.Fields(line) {
			for len([]rune(word)) > cols {
				if cur.Len() > 0 {
					out = append(out, cur.String())
					cur.Reset()
				}
				r := []rune(word)
				out = append(out, string(r[:cols]))
				word = string(r[cols:])
			}
			if cur.Len() == 0 {
				cur.WriteString(word)
				continue
			}
			if len([]rune(cur.String()))+1+len([]rune(word)) > cols {
				out = append(out, cur.String())
				cur.Reset()
				cur.WriteString(word)
				continue
			}
			cur.WriteByte(' ')
			cur.WriteString(word)
		}
		if cur.Len() > 0 {
			out = append(out, cur.String())
		}
	}
	return out
}

// RenderPages word-wraps text at widthPx and draws it black on white, one
// PNG per page. A page holds as many lines as fit in maxHeightPx; longer text
// continues on the next page. Blank trailing lines and pages with nothing
// drawn on them are dropped, but at least one page is always returned.
// Rendering stops after maxPages pages when maxPages > 0. Non-positive sizes
// fall back to DefaultWidthPx and DefaultMaxHeightPx.
func RenderPages(text string, widthPx, maxHeightPx, maxPages int) ([][]byte, error) {
	if widthPx <= 0 {
		widthPx = DefaultWidthPx
	}
	if maxHeightPx <= 0 {
		maxHeightPx = DefaultMaxHeightPx
	}
	if widthPx <= 2*margin+glyphWidth {
		return nil, fmt.Errorf("canvas width %dpx too small", widthPx)
	}
	perPage := LinesPerPage(maxHeightPx)
	if perPage < 1 {
		return nil, fmt.Errorf("canvas height %dpx too small", maxHeightPx)
	}

	lines := Wrap(text, Columns(widthPx))
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	var pages [][]byte
	for start := 0; start < len(lines); start += perPage {
		end := min(start+perPage, len(lines))
		if blank(lines[start:end]) {
			continue
		}
		if maxPages > 0 && len(pages) == maxPages {
			break
		}
		page, err := renderPage(lines[start:end], widthPx)
		if err != nil {
			return nil, fmt.Errorf("rendering page %d: %w", len(pages)+1, err)
		}
		pages = append(pages, page)
	}
	if len(pages) == 0 {
		page, err := renderPage([]string{""}, widthPx)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, nil
}

// LinesPerPage returns how many text lines fit on a page maxHeightPx tall.
func LinesPerPage(maxHeightPx int) int {
	return (maxHeightPx - 2*margin) / lineHeight
}

func blank(lines []string) bool {
	for _, l := range lines {
		if l != "" {
			return false
		}
	}
	return true
}

func renderPage(lines []string, widthPx int) ([]byte, error) {
	height := 2*margin + len(lines)*lineHeight

	img := image.NewRGBA(image.Rect(0, 0, widthPx, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: face,
	}
	for i, line := range lines {
		d.Dot = fixed.P(margin, margin+face.Ascent+i*lineHeight)
		d.DrawString(line)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding canvas png: %w", err)
	}
	return buf.Bytes(), nil
}
