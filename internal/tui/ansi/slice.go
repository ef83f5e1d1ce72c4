package ansi

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// SliceHorizontal returns the cells of s in [start, start+width), keeping
// escape sequences intact.
func SliceHorizontal(s string, start, width int) string {
	if width <= 0 {
		return ""
	}
	if start <= 0 {
		return ansi.Truncate(s, width, "")
	}
	return ansi.TruncateLeft(ansi.Truncate(s, start+width, ""), start, "")
}

// PadExact clips or pads s with spaces to exactly w cells.
func PadExact(s string, w int) string {
	if w <= 0 {
		return ""
	}
	vw := Width(s)
	if vw > w {
		s = ansi.Truncate(s, w, "")
		vw = Width(s)
	}
	if vw >= w {
		return s
	}
	return s + strings.Repeat(" ", w-vw)
}

// Truncate shortens s to width cells, ending in an ellipsis when cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}
