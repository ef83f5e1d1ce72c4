package ansi

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Wrap breaks s at word boundaries so no line exceeds width cells.
func Wrap(s string, width int) []string {
	if width <= 0 {
		return []string{""}
	}
	return strings.Split(ansi.Wrap(s, width, ""), "\n")
}
