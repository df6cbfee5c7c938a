// Package table lays out rows of text in aligned columns.
package table

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

const gutter = "  "

// Format pads every cell to the widest entry of its column. Columns beyond
// the first row's width are dropped and a left-aligned last column is never
// padded, so lines carry no trailing blanks.
func Format(rows [][]string, alignments []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for c := 0; c < len(row) && c < len(widths); c++ {
			widths[c] = max(widths[c], cellWidth(row[c]))
		}
	}
	last := len(widths) - 1
	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for c := 0; c < len(row) && c <= last; c++ {
			if c > 0 {
				b.WriteString(gutter)
			}
			pad := strings.Repeat(" ", max(widths[c]-cellWidth(row[c]), 0))
			switch {
			case c < len(alignments) && alignments[c] == AlignRight:
				b.WriteString(pad)
				b.WriteString(row[c])
			case c == last:
				b.WriteString(row[c])
			default:
				b.WriteString(row[c])
				b.WriteString(pad)
			}
		}
		out[i] = b.String()
	}
	return out
}

// cellWidth measures terminal columns, so wide glyphs such as emoji status
// markers keep the columns aligned.
func cellWidth(text string) int {
	return runewidth.StringWidth(text)
}
