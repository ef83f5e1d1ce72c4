// Package cursor implements vim-style modal navigation over the two sides
// of a flattened file diff: scrolling, a text cursor, charwise and linewise
// selection, text objects and yanking.
package cursor

import "github.com/interpretive-systems/vig/internal/diffview"

// Mode is the interaction mode of the diff pane.
type Mode int

const (
	ModeScroll Mode = iota
	ModeNormal
	ModeVisual
	ModeVisualLine
)

// String returns the badge shown in the status line.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeVisual:
		return "VISUAL"
	case ModeVisualLine:
		return "V-LINE"
	default:
		return "SCROLL"
	}
}

// IsVisual reports whether m has an active selection.
func (m Mode) IsVisual() bool {
	return m == ModeVisual || m == ModeVisualLine
}

// Signal tells the caller what became of a key.
type Signal int

const (
	// SignalConsumed means the engine handled the key.
	SignalConsumed Signal = iota
	// SignalUnhandled means the key has no meaning in the current mode.
	SignalUnhandled
	// SignalQuit asks the application to exit.
	SignalQuit
	// SignalOpenEditor asks the application to open the file in an editor.
	SignalOpenEditor
)

// Pos is a position in the flattened line space. Col counts runes.
type Pos struct {
	Row  int
	Col  int
	Side diffview.Side
}

// Before reports whether p sorts before q by row, then column.
func (p Pos) Before(q Pos) bool {
	if p.Row != q.Row {
		return p.Row < q.Row
	}
	return p.Col < q.Col
}

// Selection is a normalized visual selection: Start never sorts after End.
// End is inclusive. A linewise selection covers whole rows.
type Selection struct {
	Start    Pos
	End      Pos
	Linewise bool
}

// Contains reports whether (row, col) lies inside the selection.
func (s Selection) Contains(row, col int) bool {
	if row < s.Start.Row || row > s.End.Row {
		return false
	}
	if s.Linewise {
		return true
	}
	if row == s.Start.Row && col < s.Start.Col {
		return false
	}
	if row == s.End.Row && col > s.End.Col {
		return false
	}
	return true
}

// Clipboard receives yanked text.
type Clipboard interface {
	SetText(text string) error
}
