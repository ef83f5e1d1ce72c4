package components

import (
	"strings"

	"github.com/interpretive-systems/vig/internal/theme"
	"github.com/interpretive-systems/vig/internal/tui/ansi"
)

// Marker reports whether list item i matches the active search and whether
// it is the current match.
type Marker func(i int) (match, current bool)

func noMarks(int) (bool, bool) { return false, false }

// ListState tracks the selection and scroll offset of a list pane.
type ListState struct {
	n        int
	selected int
	offset   int
}

// SetLen updates the item count, clamping the selection.
func (l *ListState) SetLen(n int) {
	l.n = n
	if l.selected >= n {
		l.selected = n - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
}

// Len returns the item count.
func (l *ListState) Len() int {
	return l.n
}

// Selected returns the selected index.
func (l *ListState) Selected() int {
	return l.selected
}

// Select moves the selection to i, clamped into the list.
func (l *ListState) Select(i int) {
	l.selected = i
	l.SetLen(l.n)
}

// Move moves the selection by delta and reports whether it changed.
func (l *ListState) Move(delta int) bool {
	if l.n == 0 {
		return false
	}
	sel := min(max(l.selected+delta, 0), l.n-1)
	changed := sel != l.selected
	l.selected = sel
	return changed
}

// Top moves the selection to the first item.
func (l *ListState) Top() bool {
	if l.n == 0 || l.selected == 0 {
		return false
	}
	l.selected = 0
	return true
}

// Bottom moves the selection to the last item.
func (l *ListState) Bottom() bool {
	if l.n == 0 || l.selected == l.n-1 {
		return false
	}
	l.selected = l.n - 1
	return true
}

// EnsureVisible scrolls so the selected item is inside a window of
// visibleCount rows.
func (l *ListState) EnsureVisible(visibleCount int) {
	if l.n == 0 || visibleCount <= 0 {
		l.offset = 0
		return
	}
	maxStart := max(l.n-visibleCount, 0)
	l.offset = min(max(l.offset, 0), maxStart)
	if l.selected < l.offset {
		l.offset = l.selected
	} else if l.selected >= l.offset+visibleCount {
		l.offset = l.selected - visibleCount + 1
	}
}

// Window returns the visible item range [start, end) for height rows.
func (l *ListState) Window(height int) (start, end int) {
	l.EnsureVisible(height)
	return l.offset, min(l.offset+height, l.n)
}

// listItem is one row of a list pane. Prefix is drawn as is; Text carries
// the selection and search highlights.
type listItem struct {
	Prefix string
	Text   string
}

// renderList draws a titled list pane of exactly height rows.
func renderList(title string, items []listItem, state *ListState, width, height int, focused bool, th theme.Theme, mark Marker, empty string) []string {
	if height <= 0 {
		return nil
	}
	if mark == nil {
		mark = noMarks
	}
	lines := make([]string, 0, height)
	lines = append(lines, paneTitle(title, width, focused, th))

	body := height - 1
	if len(items) == 0 {
		if body > 0 {
			lines = append(lines, ansi.PadExact(th.MutedText("  "+empty), width))
		}
	} else {
		start, end := state.Window(body)
		for i := start; i < end; i++ {
			lines = append(lines, renderListItem(items[i], i == state.Selected(), focused, width, th, mark, i))
		}
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return lines
}

func renderListItem(it listItem, selected, focused bool, width int, th theme.Theme, mark Marker, i int) string {
	match, current := mark(i)
	st := th.Style()
	switch {
	case current:
		st = st.Background(th.SearchCurrentBg).Foreground(th.SearchCurrentFg)
	case match:
		st = st.Background(th.SearchMatchBg)
	case selected && focused:
		st = st.Background(th.SelectionBg).Bold(true)
	case selected:
		st = st.Bold(true)
	}
	marker := "  "
	if selected {
		marker = "> "
	}
	avail := width - ansi.Width(marker) - ansi.Width(it.Prefix)
	text := ansi.Truncate(it.Text, max(avail, 0))
	return ansi.PadExact(marker+it.Prefix+st.Render(text), width)
}

func paneTitle(title string, width int, focused bool, th theme.Theme) string {
	label := " " + title + " "
	if focused {
		label = th.AccentText(label)
	} else {
		label = th.MutedText(label)
	}
	fill := width - ansi.Width(label) - 1
	if fill < 0 {
		return ansi.PadExact(label, width)
	}
	return th.DividerText("─") + label + th.DividerText(strings.Repeat("─", fill))
}
