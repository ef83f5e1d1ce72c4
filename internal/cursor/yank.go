package cursor

import (
	"fmt"
	"unicode/utf8"
)

// yankSelection copies the visual selection and returns to Normal mode at
// the start of the selection.
func (e *Engine) yankSelection() {
	sel, ok := e.Selection()
	if !ok {
		return
	}
	b := e.buf()
	if sel.Linewise {
		e.copy(b.lines(sel.Start.Row, sel.End.Row), true, sel.End.Row-sel.Start.Row+1)
	} else {
		end := sel.End
		end.Col++
		e.copy(b.text(sel.Start, end), false, 0)
	}
	e.mode = ModeNormal
	e.count = 0
	e.cursor = e.clampPos(sel.Start)
	e.want = e.cursor.Col
	e.follow()
}

// yankMotion handles the key after "y": "yy" copies whole lines, any other
// motion copies the text between the cursor and the motion's target.
func (e *Engine) yankMotion(key string) {
	if e.Rows() == 0 {
		e.count = 0
		e.status = "nothing to yank"
		return
	}
	if key == "g" {
		e.pending = "yg"
		return
	}
	count := e.takeCount()
	b := e.buf()
	if key == "y" {
		from := e.cursor.Row
		to := min(from+max(count, 1)-1, e.Rows()-1)
		e.copy(b.lines(from, to), true, to-from+1)
		return
	}

	m, ok := e.resolveMotion(key, count)
	if !ok {
		return
	}
	start, end := e.cursor, m.to
	if end.Before(start) {
		start, end = end, start
	}
	switch m.kind {
	case motionLinewise:
		e.copy(b.lines(start.Row, end.Row), true, end.Row-start.Row+1)
		start.Col = e.cursor.Col
	case motionInclusive:
		end.Col++
		e.copy(b.text(start, end), false, 0)
	default:
		// "yw" on the last word of a line stops at the end of that line.
		if key == "w" && end.Row > start.Row {
			end = Pos{Row: start.Row, Col: len(b.runes(start.Row)), Side: start.Side}
		}
		if start == end {
			return
		}
		e.copy(b.text(start, end), false, 0)
	}
	e.cursor = e.clampPos(start)
	e.want = e.cursor.Col
	e.follow()
}

func (e *Engine) copy(text string, linewise bool, rows int) {
	if e.clipboard == nil {
		e.status = "clipboard unavailable"
		return
	}
	if err := e.clipboard.SetText(text); err != nil {
		e.status = fmt.Sprintf("clipboard unavailable: %v", err)
		return
	}
	switch {
	case linewise && rows == 1:
		e.status = "1 line yanked"
	case linewise:
		e.status = fmt.Sprintf("%d lines yanked", rows)
	default:
		e.status = fmt.Sprintf("%d characters yanked", utf8.RuneCountInString(text))
	}
}
