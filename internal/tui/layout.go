package tui

import (
	"strings"

	"github.com/interpretive-systems/vig/internal/theme"
	"github.com/interpretive-systems/vig/internal/tui/ansi"
)

const (
	minLeftWidth  = 16
	minRightWidth = 20
)

// Layout manages screen layout calculations.
type Layout struct {
	width     int
	height    int
	leftWidth int
}

// NewLayout creates a new layout manager.
func NewLayout(leftWidth int) *Layout {
	return &Layout{leftWidth: leftWidth}
}

// SetSize updates the layout dimensions.
func (l *Layout) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// Width returns the total width.
func (l *Layout) Width() int {
	return l.width
}

// Height returns the total height.
func (l *Layout) Height() int {
	return l.height
}

// LeftWidth returns the left column width.
func (l *Layout) LeftWidth() int {
	w := max(l.leftWidth, minLeftWidth)
	if maxLeft := l.width - minRightWidth - 1; maxLeft >= minLeftWidth && w > maxLeft {
		w = maxLeft
	}
	return w
}

// RightWidth returns the main pane width.
func (l *Layout) RightWidth() int {
	return max(l.width-l.LeftWidth()-1, 1)
}

// ContentHeight returns the height available for the columns.
func (l *Layout) ContentHeight(overlayHeight int) int {
	// header + top rule + bottom rule + status bar + overlays
	return max(l.height-4-overlayHeight, 1)
}

// AdjustLeftWidth adjusts the left width by delta.
func (l *Layout) AdjustLeftWidth(delta int) {
	l.leftWidth = max(l.LeftWidth()+delta, minLeftWidth)
	l.leftWidth = l.LeftWidth()
}

// LeftSections splits the left column into the file tree, branch list and
// reflog heights.
func (l *Layout) LeftSections(height int) (files, branches, reflog int) {
	if height < 6 {
		return height, 0, 0
	}
	files = max(height/2, 3)
	branches = max((height-files)/2, 2)
	reflog = height - files - branches
	return files, branches, reflog
}

// RenderFrame renders the main frame with header, rules and columns.
func (l *Layout) RenderFrame(
	header string,
	leftLines, rightLines []string,
	overlayLines []string,
	bottomBar string,
	th theme.Theme,
) string {
	var b strings.Builder

	b.WriteString(ansi.PadExact(header, l.width))
	b.WriteByte('\n')
	b.WriteString(th.DividerText(strings.Repeat("─", l.width)))
	b.WriteByte('\n')

	leftW := l.LeftWidth()
	rightW := l.RightWidth()
	sep := th.DividerText("│")

	contentHeight := max(len(leftLines), len(rightLines))
	for i := 0; i < contentHeight; i++ {
		var left, right string
		if i < len(leftLines) {
			left = leftLines[i]
		}
		if i < len(rightLines) {
			right = rightLines[i]
		}
		b.WriteString(ansi.PadExact(left, leftW))
		b.WriteString(sep)
		b.WriteString(ansi.PadExact(right, rightW))
		if i < contentHeight-1 {
			b.WriteByte('\n')
		}
	}

	for _, line := range overlayLines {
		b.WriteByte('\n')
		b.WriteString(ansi.PadExact(line, l.width))
	}

	b.WriteByte('\n')
	b.WriteString(th.DividerText(strings.Repeat("─", l.width)))
	b.WriteByte('\n')
	b.WriteString(ansi.PadExact(bottomBar, l.width))

	return b.String()
}
