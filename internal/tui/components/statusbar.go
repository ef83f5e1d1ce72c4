package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/interpretive-systems/vig/internal/cursor"
	"github.com/interpretive-systems/vig/internal/diffview"
	"github.com/interpretive-systems/vig/internal/theme"
	"github.com/interpretive-systems/vig/internal/tui/ansi"
)

// StatusBar manages the bottom status bar.
type StatusBar struct {
	message     string
	files       int
	stats       diffview.Stats
	lastRefresh time.Time
	lastCommit  string
	keyBuffer   string
}

// NewStatusBar creates a new status bar.
func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// SetMessage shows msg instead of the diff summary until it is cleared.
func (s *StatusBar) SetMessage(msg string) {
	s.message = msg
}

// Message returns the current status message.
func (s *StatusBar) Message() string {
	return s.message
}

// SetDiff updates the summary of the loaded diff.
func (s *StatusBar) SetDiff(files int, stats diffview.Stats) {
	s.files = files
	s.stats = stats
}

// SetLastRefresh updates the refresh timestamp.
func (s *StatusBar) SetLastRefresh(t time.Time) {
	s.lastRefresh = t
}

// SetLastCommit updates the last commit summary.
func (s *StatusBar) SetLastCommit(msg string) {
	s.lastCommit = msg
}

// SetKeyBuffer updates the pending count display.
func (s *StatusBar) SetKeyBuffer(buf string) {
	s.keyBuffer = buf
}

// Render renders the status bar.
func (s *StatusBar) Render(width int, th theme.Theme) string {
	var left string
	switch {
	case s.message != "":
		left = th.Style().Foreground(th.StatusColor).Render(" " + s.message)
	case s.files == 0:
		left = th.AddText(" Working tree clean")
	default:
		plural := "s"
		if s.files == 1 {
			plural = ""
		}
		left = fmt.Sprintf(" %d file%s  %s %s", s.files, plural,
			th.AddText(fmt.Sprintf("+%d", s.stats.Additions)),
			th.DelText(fmt.Sprintf("-%d", s.stats.Deletions)))
	}
	if s.keyBuffer != "" {
		left += "  " + th.MutedText(s.keyBuffer)
	}

	rightText := ""
	if s.lastCommit != "" {
		rightText = "last: " + s.lastCommit + "  "
	}
	if !s.lastRefresh.IsZero() {
		rightText += "refreshed: " + s.lastRefresh.Format("15:04:05")
	}
	return spread(left, th.MutedText(rightText), width)
}

// Header is the top line: program badge, branch and diff base.
type Header struct {
	Branch string
	Base   string
}

// Render draws the header in exactly width cells.
func (h Header) Render(width int, th theme.Theme) string {
	base := h.Base
	if base == "" {
		base = "HEAD"
	}
	left := th.Badge(" vig ", th.AccentColor) + " " +
		th.Badge(" "+h.Branch+" ", th.BranchColor) + " " +
		th.Badge(" vs "+base+" ", th.BaseColor)
	return spread(left, th.MutedText("? help"), width)
}

// DiffStatus is the line under the diff pane.
type DiffStatus struct {
	Mode     cursor.Mode
	FileType string
	Side     diffview.Side
	ShowCmd  string
	Row      int
	Col      int
	Percent  string
}

// Render draws the status line in exactly width cells.
func (d DiffStatus) Render(width int, th theme.Theme) string {
	badgeColor := th.AccentColor
	switch d.Mode {
	case cursor.ModeNormal:
		badgeColor = th.AddColor
	case cursor.ModeVisual, cursor.ModeVisualLine:
		badgeColor = th.BranchColor
	}
	left := th.Badge(" "+d.Mode.String()+" ", badgeColor)
	if d.FileType != "" {
		left += " " + th.MutedText(d.FileType)
	}
	left += " " + th.MetaText(d.Side.String())

	pos := d.Percent
	if d.Mode != cursor.ModeScroll {
		pos = fmt.Sprintf("%d:%d", d.Row+1, d.Col+1)
	}
	right := d.ShowCmd
	if right != "" {
		right += "  "
	}
	right += pos + " "
	return spread(left, right, width)
}

// spread places left and right at the two ends of a width-cell line. The
// right part wins when both do not fit.
func spread(left, right string, width int) string {
	if width <= 0 {
		return ""
	}
	rightW := ansi.Width(right)
	if rightW >= width {
		return ansi.Truncate(right, width)
	}
	avail := width - rightW - 1
	if ansi.Width(left) > avail {
		left = ansi.Truncate(left, avail)
	}
	gap := width - ansi.Width(left) - rightW
	return left + strings.Repeat(" ", gap) + right
}
