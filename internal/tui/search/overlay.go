package search

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/interpretive-systems/vig/internal/tui/ansi"
)

// View renders the prompt line while it is open, or the match counter for
// the active query.
func (e *Engine) View(width int, accent lipgloss.Color) string {
	if width <= 0 {
		return ""
	}
	if e.active {
		return ansi.PadExact(e.input.View(), width)
	}
	if e.query == "" {
		return ""
	}
	var status string
	if len(e.matches) == 0 {
		status = "Pattern not found: " + e.query
	} else {
		status = fmt.Sprintf("/%s  [%d/%d]", e.query, e.index+1, len(e.matches))
	}
	return ansi.PadExact(lipgloss.NewStyle().Foreground(accent).Render(status), width)
}
