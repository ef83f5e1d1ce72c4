package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/interpretive-systems/vig/internal/theme"
	"github.com/interpretive-systems/vig/internal/tui/ansi"
)

type binding struct {
	keys string
	desc string
}

var helpSections = []struct {
	title    string
	bindings []binding
}{
	{"Global", []binding{
		{"tab / shift+tab", "Next / previous pane"},
		{"/", "Search the focused pane"},
		{"n / N", "Next / previous match"},
		{"e", "Open file in $EDITOR"},
		{"r", "Refresh diff and branches"},
		{"?", "Toggle help"},
		{"q / ctrl+c", "Quit"},
	}},
	{"Lists", []binding{
		{"j / k", "Next / previous item (counts: 5j)"},
		{"g / G", "Top / bottom"},
		{"enter / space", "Open file, fold directory"},
	}},
	{"Diff: scroll mode", []binding{
		{"j / k", "Scroll down / up"},
		{"ctrl+d / ctrl+u", "Half page down / up"},
		{"h / l", "Scroll left / right"},
		{"g / G", "Top / bottom"},
		{"ctrl+w h / l", "Left / right side"},
		{"i", "Normal mode (cursor)"},
		{"esc", "Back to file tree"},
	}},
	{"Diff: normal mode", []binding{
		{"h j k l", "Move (counts: 3j)"},
		{"w b e", "Word motions"},
		{"0 $", "Line start / end"},
		{"gg G 12G", "Top / bottom / line"},
		{"v / V", "Visual / visual line"},
		{"yy yw y$ yi( ya\"", "Yank line, motion, object"},
		{"esc", "Back to scroll mode"},
	}},
	{"Diff: visual mode", []binding{
		{"iw aw i( a[ i\" ...", "Select text object"},
		{"y", "Yank selection"},
		{"esc", "Back to normal mode"},
	}},
	{"Branches", []binding{
		{"enter", "Set diff base (HEAD resets)"},
		{"b", "Branch actions"},
	}},
}

// Help is the scrollable key binding overlay.
type Help struct {
	vp    viewport.Model
	width int
}

// NewHelp creates the overlay.
func NewHelp() *Help {
	return &Help{vp: viewport.New(0, 0)}
}

// SetSize fits the overlay into a width x height screen area.
func (h *Help) SetSize(width, height int, th theme.Theme) {
	w := min(64, width-4)
	ht := max(height-4, 3)
	h.width = max(w, 10)
	h.vp.Width = h.width - 2
	h.vp.Height = ht - 2
	h.vp.SetContent(strings.Join(helpLines(h.vp.Width, th), "\n"))
}

// Update scrolls the overlay.
func (h *Help) Update(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	h.vp, cmd = h.vp.Update(msg)
	return cmd
}

// GotoTop scrolls back to the first line.
func (h *Help) GotoTop() {
	h.vp.GotoTop()
}

// View renders the overlay box.
func (h *Help) View(th theme.Theme) string {
	return th.Style().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.AccentColor).
		Render(h.vp.View())
}

func helpLines(width int, th theme.Theme) []string {
	const keyW = 20
	var out []string
	out = append(out, th.AccentText("Keybindings"), "")
	for _, sec := range helpSections {
		out = append(out, th.MetaText("── "+sec.title+" ──"))
		for _, b := range sec.bindings {
			key := th.AccentText(fmt.Sprintf("  %-*s", keyW, b.keys))
			descW := width - keyW - 2
			if descW < 8 {
				out = append(out, key)
				for _, l := range ansi.Wrap(b.desc, max(width-4, 1)) {
					out = append(out, "    "+l)
				}
				continue
			}
			wrapped := ansi.Wrap(b.desc, descW)
			out = append(out, key+wrapped[0])
			for _, l := range wrapped[1:] {
				out = append(out, strings.Repeat(" ", keyW+2)+l)
			}
		}
		out = append(out, "")
	}
	return out
}
