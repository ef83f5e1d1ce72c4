// Package wizards holds the modal overlays that take over the keyboard
// until they are dismissed.
package wizards

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/interpretive-systems/vig/internal/theme"
)

// Action represents what the wizard wants the parent to do.
type Action int

const (
	ActionContinue Action = iota // Continue processing in wizard
	ActionClose                  // Close the wizard
)

// Wizard is the interface all wizards implement.
type Wizard interface {
	// HandleKey processes keyboard input.
	// Returns the action to take and any commands.
	HandleKey(msg tea.KeyMsg) (Action, tea.Cmd)

	// Update processes tea messages (for async results).
	Update(msg tea.Msg) (Action, tea.Cmd)

	// RenderOverlay returns the wizard UI lines.
	RenderOverlay(width int, th theme.Theme) []string
}
