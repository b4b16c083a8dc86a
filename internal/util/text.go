// Package util holds small shared helpers.
package util

import (
	"github.com/mattn/go-runewidth"
)

// TruncateLabel fits a label into width terminal cells, appending an
// ellipsis when it does not fit. Annotation labels are frequently CJK, so
// widths are measured in cells, not runes.
func TruncateLabel(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return runewidth.Truncate(s, width-1, "") + "…"
}

// PadLabel pads a label with spaces to exactly width cells, truncating
// first when needed.
func PadLabel(s string, width int) string {
	s = TruncateLabel(s, width)
	return s + spaces(width-runewidth.StringWidth(s))
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
