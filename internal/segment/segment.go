// Package segment splits free text into per-vendor blocks separated by runs
// of blank lines.
package segment

import (
	"strings"
)

// Options controls block boundaries.
type Options struct {
	// BlankLineRun is how many consecutive blank lines close a block.
	BlankLineRun int
	// MinBlockChars drops blocks whose joined text is this short or shorter.
	MinBlockChars int
}

// DefaultOptions returns the stock thresholds.
func DefaultOptions() Options {
	return Options{BlankLineRun: 2, MinBlockChars: 10}
}

// Block is an ordered run of non-blank lines.
type Block struct {
	Lines []string
}

// Text joins the block's lines with newlines.
func (b Block) Text() string {
	return strings.Join(b.Lines, "\n")
}

// Split segments text and discards blocks at or below opts.MinBlockChars.
func Split(text string, opts Options) []Block {
	all := SplitAll(text, opts)
	out := all[:0]
	for _, b := range all {
		if len(b.Text()) > opts.MinBlockChars {
			out = append(out, b)
		}
	}
	return out
}

// SplitAll segments text without applying the minimum-content filter.
// A single blank line inside a block is dropped without splitting it.
func SplitAll(text string, opts Options) []Block {
	run := opts.BlankLineRun
	if run < 1 {
		run = 1
	}

	var (
		blocks []Block
		cur    []string
		blanks int
	)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			blanks++
			if blanks >= run && len(cur) > 0 {
				blocks = append(blocks, Block{Lines: cur})
				cur = nil
			}
			continue
		}
		blanks = 0
		cur = append(cur, line)
	}
	if len(cur) > 0 {
		blocks = append(blocks, Block{Lines: cur})
	}
	return blocks
}

// Texts returns the joined text of every block.
func Texts(blocks []Block) []string {
	out := make([]string, len(blocks))
	for i, b := range blocks {
		out[i] = b.Text()
	}
	return out
}
