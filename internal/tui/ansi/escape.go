// Package ansi holds the cell-width helpers shared by the panes. All widths
// are terminal cells, so wide runes count twice and escape sequences count
// zero.
package ansi

import "github.com/charmbracelet/x/ansi"

// Strip removes escape sequences from s.
func Strip(s string) string {
	return ansi.Strip(s)
}

// Width returns the number of cells s occupies once printed.
func Width(s string) int {
	return ansi.StringWidth(s)
}
