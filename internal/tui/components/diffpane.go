package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/interpretive-systems/vig/internal/cursor"
	"github.com/interpretive-systems/vig/internal/diffview"
	"github.com/interpretive-systems/vig/internal/highlight"
	"github.com/interpretive-systems/vig/internal/theme"
	"github.com/interpretive-systems/vig/internal/tui/ansi"
	"github.com/interpretive-systems/vig/internal/tui/search"
)

// gutterWidth is the line-number column in front of each side.
const gutterWidth = 5

// DiffFrame is everything the diff pane reads to draw one frame.
type DiffFrame struct {
	File    *diffview.FileEntry
	Left    diffview.Content
	Right   diffview.Content
	Colors  *highlight.Cache
	Engine  *cursor.Engine
	Search  *search.Engine
	Focused bool
}

// flatRow is one flattened line with the row it came from.
type flatRow struct {
	header bool
	row    diffview.Row
}

// DiffPane draws the side-by-side diff of the selected file.
type DiffPane struct {
	path string
	rows []flatRow
}

// NewDiffPane creates an empty diff pane.
func NewDiffPane() *DiffPane {
	return &DiffPane{}
}

// SetFile indexes the rows of file. It must be called whenever the
// selected file or its content changes.
func (d *DiffPane) SetFile(file *diffview.FileEntry) {
	d.rows = d.rows[:0]
	d.path = ""
	if file == nil {
		return
	}
	d.path = file.Path
	for _, h := range file.Hunks {
		d.rows = append(d.rows, flatRow{header: true})
		for _, r := range h.Rows {
			d.rows = append(d.rows, flatRow{row: r})
		}
	}
}

// Path returns the file the pane is showing.
func (d *DiffPane) Path() string {
	return d.path
}

// ColumnWidths splits the pane width into the two sides and the divider.
func ColumnWidths(width int) (left, right int) {
	left = max((width-1)/2, 0)
	right = max(width-1-left, 0)
	return left, right
}

// BodyWidth returns how many text cells one side shows.
func BodyWidth(width int) int {
	left, _ := ColumnWidths(width)
	return max(left-gutterWidth, 1)
}

// Render draws exactly height rows of the diff.
func (d *DiffPane) Render(f DiffFrame, width, height int, th theme.Theme) []string {
	if height <= 0 {
		return nil
	}
	lines := make([]string, 0, height)
	switch {
	case f.File == nil:
		lines = append(lines, th.MutedText(" No file selected"))
	case f.File.IsBinary:
		lines = append(lines, th.MutedText(" (Binary file; no text diff)"))
	case len(f.File.Hunks) == 0:
		lines = append(lines, th.MutedText(" (No content changes)"))
	default:
		lw, rw := ColumnWidths(width)
		mid := th.DividerText("│")
		top := f.Engine.ScrollY()
		for i := 0; i < height; i++ {
			row := top + i
			if row >= len(d.rows) {
				break
			}
			l := d.renderCell(f, diffview.SideLeft, row, lw, th)
			r := d.renderCell(f, diffview.SideRight, row, rw, th)
			lines = append(lines, l+mid+r)
		}
	}
	for i := range lines {
		lines[i] = ansi.PadExact(lines[i], width)
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return lines
}

// cellStyle is the drawing attributes of one text cell.
type cellStyle struct {
	fg      lipgloss.Color
	bg      lipgloss.Color
	reverse bool
	bold    bool
}

func (c cellStyle) render(th theme.Theme, s string) string {
	if c == (cellStyle{}) {
		return s
	}
	st := th.Style()
	if c.fg != "" {
		st = st.Foreground(c.fg)
	}
	if c.bg != "" {
		st = st.Background(c.bg)
	}
	return st.Reverse(c.reverse).Bold(c.bold).Render(s)
}

func (d *DiffPane) renderCell(f DiffFrame, side diffview.Side, row, width int, th theme.Theme) string {
	if width <= 0 {
		return ""
	}
	fr := d.rows[row]
	content := f.Left
	if side == diffview.SideRight {
		content = f.Right
	}
	text := ""
	if row < len(content.Lines) {
		text = content.Lines[row]
	}

	base := cellStyle{}
	gutter := strings.Repeat(" ", gutterWidth)
	if fr.header {
		base.fg = th.MetaColor
	} else if lt := fr.row.Line(side); lt != nil {
		gutter = fmt.Sprintf("%4d ", lt.Number)
		switch {
		case side == diffview.SideLeft && fr.row.Kind == diffview.RowDeleted:
			base.bg = th.DelBgColor
		case side == diffview.SideRight && fr.row.Kind != diffview.RowContext:
			base.bg = th.AddBgColor
		}
	}
	bodyW := width - gutterWidth
	if bodyW <= 0 {
		return ansi.PadExact(th.MutedText(gutter), width)
	}

	var colors []highlight.Color
	if f.Colors != nil && !fr.header {
		colors = f.Colors.Colors(side, row)
	}
	if colors == nil && !fr.header && base.bg != "" {
		if side == diffview.SideLeft {
			base.fg = th.DelColor
		} else {
			base.fg = th.AddColor
		}
	}

	active := f.Focused && f.Engine.Side() == side
	mode := f.Engine.Mode()
	cur := f.Engine.Cursor()
	showCursor := active && mode != cursor.ModeScroll && cur.Row == row
	sel, hasSel := f.Engine.Selection()
	hasSel = hasSel && active
	var marks []search.Highlight
	if f.Search != nil && f.Search.Origin() == search.OriginDiff {
		marks = f.Search.LineHighlights(side, row)
	}

	styleAt := func(col int) cellStyle {
		c := base
		if col < len(colors) && colors[col] != "" {
			c.fg = lipgloss.Color(colors[col])
		}
		if hasSel && sel.Contains(row, col) {
			c.bg = th.SelectionBg
		}
		for _, m := range marks {
			if col >= m.Start && col < m.End {
				if m.Current {
					c.bg = th.SearchCurrentBg
					c.fg = th.SearchCurrentFg
				} else if !(hasSel && sel.Contains(row, col)) {
					c.bg = th.SearchMatchBg
				}
			}
		}
		if showCursor && col == cur.Col {
			c.reverse = true
		}
		return c
	}

	var b strings.Builder
	var run strings.Builder
	var runStyle cellStyle
	flush := func() {
		if run.Len() > 0 {
			b.WriteString(runStyle.render(th, run.String()))
			run.Reset()
		}
	}
	put := func(s string, c cellStyle) {
		if c != runStyle {
			flush()
			runStyle = c
		}
		run.WriteString(s)
	}

	scrollX := f.Engine.ScrollX()
	x, used := 0, 0
	runes := []rune(text)
	for col, r := range runes {
		w := cellWidth(r)
		if x+w <= scrollX {
			x += w
			continue
		}
		if used+w > bodyW {
			break
		}
		glyph := string(r)
		if r == '\t' || runewidth.RuneWidth(r) == 0 {
			glyph = " "
		} else if x < scrollX {
			glyph, w = " ", x+w-scrollX
		}
		put(glyph, styleAt(col))
		x += w
		used += w
	}
	if showCursor && cur.Col >= len(runes) && used < bodyW {
		put(" ", styleAt(cur.Col))
		used++
	}
	if used < bodyW {
		pad := base
		pad.fg = ""
		if hasSel && sel.Linewise && sel.Contains(row, 0) {
			pad.bg = th.SelectionBg
		}
		put(strings.Repeat(" ", bodyW-used), pad)
	}
	flush()
	return th.MutedText(gutter) + b.String()
}

func cellWidth(r rune) int {
	if w := runewidth.RuneWidth(r); w > 0 && r != '\t' {
		return w
	}
	return 1
}
