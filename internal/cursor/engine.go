package cursor

import (
	"strconv"

	"github.com/interpretive-systems/vig/internal/diffview"
)

const (
	horizontalStep = 4
	maxCount       = 99999
	// stickyEnd keeps the cursor on the last column across vertical moves.
	stickyEnd = int(^uint(0) >> 1)
)

// Engine owns the interaction state of the diff pane. It is driven one key
// at a time from the UI loop and never touches the terminal itself.
type Engine struct {
	mode    Mode
	cursor  Pos
	anchor  Pos
	want    int
	count   int
	pending string

	scrollY int
	scrollX int
	height  int
	width   int
	// longest is the widest line of either side, in cells.
	longest int

	lines     [2][]string
	clipboard Clipboard
	status    string
}

// New creates an engine in Scroll mode with the cursor on the right side.
func New(clipboard Clipboard) *Engine {
	return &Engine{
		cursor:    Pos{Side: diffview.SideRight},
		clipboard: clipboard,
		height:    1,
	}
}

// SetLines replaces both sides' content and clamps all positions into it.
func (e *Engine) SetLines(left, right []string) {
	e.lines[0] = left
	e.lines[1] = right
	e.longest = 0
	for _, side := range e.lines {
		for _, l := range side {
			e.longest = max(e.longest, cellsTo([]rune(l), -1))
		}
	}
	e.cursor = e.clampPos(e.cursor)
	e.anchor = e.clampPos(e.anchor)
	e.scrollY = min(e.scrollY, e.maxScroll())
	e.scrollX = min(e.scrollX, e.maxScrollX())
}

// SetViewHeight sets how many rows the pane shows.
func (e *Engine) SetViewHeight(h int) {
	e.height = max(h, 1)
	e.scrollY = min(e.scrollY, e.maxScroll())
	if e.mode != ModeScroll {
		e.follow()
	}
}

// SetViewWidth sets how many text cells one side shows. 0 turns horizontal
// following off.
func (e *Engine) SetViewWidth(w int) {
	e.width = max(w, 0)
	e.scrollX = min(e.scrollX, e.maxScrollX())
	if e.mode != ModeScroll {
		e.follow()
	}
}

// Reset returns to Scroll mode at the top of the content, keeping the side.
func (e *Engine) Reset() {
	side := e.cursor.Side
	e.mode = ModeScroll
	e.cursor = Pos{Side: side}
	e.anchor = e.cursor
	e.want = 0
	e.count = 0
	e.pending = ""
	e.scrollY = 0
	e.scrollX = 0
}

// Mode returns the current mode.
func (e *Engine) Mode() Mode { return e.mode }

// Cursor returns the cursor position. In Scroll mode it only carries the
// active side.
func (e *Engine) Cursor() Pos { return e.cursor }

// Anchor returns the fixed end of a visual selection.
func (e *Engine) Anchor() Pos { return e.anchor }

// Side returns the active side.
func (e *Engine) Side() diffview.Side { return e.cursor.Side }

// ScrollY returns the first visible row.
func (e *Engine) ScrollY() int { return e.scrollY }

// ScrollX returns the horizontal scroll offset in columns.
func (e *Engine) ScrollX() int { return e.scrollX }

// Count returns the pending count prefix, 0 when none.
func (e *Engine) Count() int { return e.count }

// Pending returns the pending prefix key, "" when none.
func (e *Engine) Pending() string { return e.pending }

// Status returns the message produced by the last key, if any.
func (e *Engine) Status() string { return e.status }

// Rows returns the number of lines in the flattened content.
func (e *Engine) Rows() int {
	return max(len(e.lines[0]), len(e.lines[1]))
}

// Selection returns the normalized selection in the visual modes.
func (e *Engine) Selection() (Selection, bool) {
	if !e.mode.IsVisual() {
		return Selection{}, false
	}
	start, end := e.anchor, e.cursor
	if end.Before(start) {
		start, end = end, start
	}
	return Selection{Start: start, End: end, Linewise: e.mode == ModeVisualLine}, true
}

// ScrollPercent describes the scroll position the way vim's ruler does.
func (e *Engine) ScrollPercent() string {
	n := e.Rows()
	switch {
	case n <= e.height:
		return "All"
	case e.scrollY == 0:
		return "Top"
	case e.scrollY >= e.maxScroll():
		return "Bot"
	default:
		return strconv.Itoa(e.scrollY*100/e.maxScroll()) + "%"
	}
}

// MoveTo places the cursor at p, switching sides as needed. In Scroll mode
// only the view moves.
func (e *Engine) MoveTo(p Pos) {
	if e.mode.IsVisual() && p.Side != e.anchor.Side {
		e.mode = ModeNormal
	}
	e.cursor.Side = p.Side
	if e.mode == ModeScroll {
		e.ensureVisible(p.Row)
		return
	}
	e.cursor = e.clampPos(p)
	e.want = e.cursor.Col
	e.follow()
}

// ensureVisible scrolls the least amount needed to show row.
func (e *Engine) ensureVisible(row int) {
	if row < e.scrollY {
		e.scrollY = row
	} else if row >= e.scrollY+e.height {
		e.scrollY = row - e.height + 1
	}
	e.scrollY = min(max(e.scrollY, 0), e.maxScroll())
}

func (e *Engine) maxScroll() int {
	return max(e.Rows()-e.height, 0)
}

// follow scrolls both ways until the cursor is on screen.
func (e *Engine) follow() {
	e.ensureVisible(e.cursor.Row)
	if e.width == 0 {
		return
	}
	line := e.buf().runes(e.cursor.Row)
	x := cellsTo(line, e.cursor.Col)
	w := 1
	if e.cursor.Col < len(line) {
		w = cellWidth(line[e.cursor.Col])
	}
	if x < e.scrollX {
		e.scrollX = x
	} else if x+w > e.scrollX+e.width {
		e.scrollX = x + w - e.width
	}
	e.scrollX = min(max(e.scrollX, 0), e.maxScrollX())
}

// maxScrollX stops horizontal scrolling once the widest line is fully in
// view.
func (e *Engine) maxScrollX() int {
	if e.width == 0 {
		return e.longest
	}
	return max(e.longest-e.width, 0)
}

func (e *Engine) buf() buffer {
	return buffer(e.lines[sideIndex(e.cursor.Side)])
}

func (e *Engine) clampPos(p Pos) Pos {
	n := e.Rows()
	if n == 0 {
		return Pos{Side: p.Side}
	}
	p.Row = min(max(p.Row, 0), n-1)
	b := buffer(e.lines[sideIndex(p.Side)])
	p.Col = min(max(p.Col, 0), b.lastCol(p.Row))
	return p
}

// HandleKey interprets one key, named the way bubbletea names keys.
func (e *Engine) HandleKey(key string) Signal {
	e.status = ""
	switch e.mode {
	case ModeScroll:
		return e.handleScroll(key)
	case ModeNormal:
		return e.handleNormal(key)
	default:
		return e.handleVisual(key)
	}
}

func (e *Engine) handleScroll(key string) Signal {
	if e.pending == "ctrl+w" {
		e.pending = ""
		e.switchSide(key)
		return SignalConsumed
	}
	half := max(e.height/2, 1)
	switch key {
	case "j", "down", "ctrl+e":
		e.scrollBy(1)
	case "k", "up", "ctrl+y":
		e.scrollBy(-1)
	case "ctrl+d":
		e.scrollBy(half)
	case "ctrl+u":
		e.scrollBy(-half)
	case "ctrl+f", "pgdown", " ":
		e.scrollBy(max(e.height-1, 1))
	case "ctrl+b", "pgup":
		e.scrollBy(-max(e.height-1, 1))
	case "g", "home":
		e.scrollY = 0
	case "G", "end":
		e.scrollY = e.maxScroll()
	case "h", "left":
		e.scrollX = max(e.scrollX-horizontalStep, 0)
	case "l", "right":
		e.scrollX = min(e.scrollX+horizontalStep, e.maxScrollX())
	case "ctrl+w":
		e.pending = key
	case "i":
		e.enterNormal()
	case "q":
		return SignalQuit
	case "e":
		return SignalOpenEditor
	default:
		return SignalUnhandled
	}
	return SignalConsumed
}

func (e *Engine) scrollBy(delta int) {
	e.scrollY = min(max(e.scrollY+delta, 0), e.maxScroll())
}

// enterNormal seeds the cursor at the top-left of the visible area.
func (e *Engine) enterNormal() {
	e.mode = ModeNormal
	col := colAt(e.buf().runes(e.scrollY), e.scrollX)
	e.cursor = e.clampPos(Pos{Row: e.scrollY, Col: col, Side: e.cursor.Side})
	e.want = e.cursor.Col
	e.count = 0
	e.pending = ""
	e.follow()
}

func (e *Engine) switchSide(key string) {
	switch key {
	case "h", "left", "ctrl+h":
		e.cursor.Side = diffview.SideLeft
	case "l", "right", "ctrl+l":
		e.cursor.Side = diffview.SideRight
	case "w", "ctrl+w":
		e.cursor.Side = e.cursor.Side.Other()
	default:
		return
	}
	e.cursor = e.clampPos(e.cursor)
	e.want = e.cursor.Col
}

// acceptCount folds a digit into the count prefix. A leading "0" is a
// motion, not a count.
func (e *Engine) acceptCount(key string) bool {
	if len(key) != 1 || key[0] < '0' || key[0] > '9' {
		return false
	}
	if key == "0" && e.count == 0 {
		return false
	}
	e.count = min(e.count*10+int(key[0]-'0'), maxCount)
	return true
}

// takeCount returns the count prefix, 0 when none was typed, and clears it.
func (e *Engine) takeCount() int {
	n := e.count
	e.count = 0
	return n
}

func (e *Engine) handleNormal(key string) Signal {
	if e.pending != "" {
		return e.resolvePending(key)
	}
	if e.acceptCount(key) {
		return SignalConsumed
	}
	switch key {
	case "esc":
		e.mode = ModeScroll
		e.count = 0
		e.follow()
	case "v":
		e.startVisual(ModeVisual)
	case "V":
		e.startVisual(ModeVisualLine)
	case "g", "y", "ctrl+w":
		e.pending = key
	default:
		count := e.takeCount()
		m, ok := e.resolveMotion(key, count)
		if !ok {
			return SignalUnhandled
		}
		e.moveCursor(m)
	}
	return SignalConsumed
}

func (e *Engine) startVisual(m Mode) {
	e.mode = m
	e.anchor = e.cursor
	e.count = 0
}

func (e *Engine) handleVisual(key string) Signal {
	if e.pending != "" {
		return e.resolvePending(key)
	}
	if e.acceptCount(key) {
		return SignalConsumed
	}
	switch key {
	case "esc":
		e.mode = ModeNormal
		e.count = 0
	case "v":
		e.toggleVisual(ModeVisual)
	case "V":
		e.toggleVisual(ModeVisualLine)
	case "o":
		e.cursor, e.anchor = e.anchor, e.cursor
		e.want = e.cursor.Col
		e.follow()
	case "y":
		e.yankSelection()
	case "g", "i", "a":
		e.pending = key
	default:
		count := e.takeCount()
		m, ok := e.resolveMotion(key, count)
		if !ok {
			return SignalUnhandled
		}
		e.moveCursor(m)
	}
	return SignalConsumed
}

func (e *Engine) toggleVisual(m Mode) {
	e.count = 0
	if e.mode == m {
		e.mode = ModeNormal
		return
	}
	e.mode = m
}

func (e *Engine) resolvePending(key string) Signal {
	prefix := e.pending
	e.pending = ""
	if key == "esc" {
		e.count = 0
		return SignalConsumed
	}
	switch prefix {
	case "g":
		if key == "g" {
			e.moveCursor(e.gotoLine(e.takeCount(), 0))
		} else {
			e.count = 0
		}
	case "ctrl+w":
		e.count = 0
		e.switchSide(key)
	case "y":
		if e.acceptCount(key) {
			e.pending = prefix
			return SignalConsumed
		}
		e.yankMotion(key)
	case "yg":
		if key == "g" {
			e.yankMotion("gg")
		} else {
			e.count = 0
		}
	case "i", "a":
		e.count = 0
		e.selectObject(prefix == "a", key)
	}
	return SignalConsumed
}

func (e *Engine) selectObject(around bool, key string) {
	start, end, ok := e.buf().textObject(e.cursor, around, key)
	if !ok {
		return
	}
	e.mode = ModeVisual
	e.anchor = start
	e.cursor = end
	e.want = end.Col
	e.follow()
}

// motionKind says how a motion's range is measured when yanking.
type motionKind int

const (
	motionExclusive motionKind = iota
	motionInclusive
	motionLinewise
)

type motion struct {
	to   Pos
	kind motionKind
	// want is the column to remember for vertical moves, -1 to keep the
	// current one.
	want int
}

// resolveMotion resolves a movement key against the cursor. count is 0 when
// no count was typed.
func (e *Engine) resolveMotion(key string, count int) (motion, bool) {
	n := max(count, 1)
	b := e.buf()
	p := e.cursor
	switch key {
	case "h", "left", "backspace":
		p.Col = max(p.Col-n, 0)
		return motion{to: p, kind: motionExclusive, want: p.Col}, true
	case "l", "right":
		p.Col = min(p.Col+n, b.lastCol(p.Row))
		return motion{to: p, kind: motionExclusive, want: p.Col}, true
	case "j", "down", "ctrl+n", "enter":
		p.Row = min(p.Row+n, max(e.Rows()-1, 0))
		return motion{to: e.columnFor(p), kind: motionLinewise, want: -1}, true
	case "k", "up", "ctrl+p":
		p.Row = max(p.Row-n, 0)
		return motion{to: e.columnFor(p), kind: motionLinewise, want: -1}, true
	case "0", "home":
		p.Col = 0
		return motion{to: p, kind: motionExclusive, want: 0}, true
	case "$", "end":
		p.Col = b.lastCol(p.Row)
		return motion{to: p, kind: motionInclusive, want: stickyEnd}, true
	case "w":
		for i := 0; i < n; i++ {
			next, ok := b.nextWordStart(p)
			if !ok {
				// No later word: stop past the end of the line.
				p.Col = len(b.runes(p.Row))
				break
			}
			p = next
		}
		return motion{to: p, kind: motionExclusive, want: min(p.Col, b.lastCol(p.Row))}, true
	case "b":
		for i := 0; i < n; i++ {
			prev, ok := b.prevWordStart(p)
			if !ok {
				break
			}
			p = prev
		}
		return motion{to: p, kind: motionExclusive, want: p.Col}, true
	case "e":
		for i := 0; i < n; i++ {
			end, ok := b.wordEnd(p)
			if !ok {
				break
			}
			p = end
		}
		return motion{to: p, kind: motionInclusive, want: p.Col}, true
	case "G":
		if count == 0 {
			return e.gotoLine(e.Rows(), 0), true
		}
		return e.gotoLine(count, 0), true
	case "gg":
		return e.gotoLine(max(count, 1), 0), true
	}
	return motion{}, false
}

// gotoLine targets 1-based line number n, clamped to the content.
func (e *Engine) gotoLine(n, col int) motion {
	p := e.clampPos(Pos{Row: max(n, 1) - 1, Col: col, Side: e.cursor.Side})
	return motion{to: p, kind: motionLinewise, want: p.Col}
}

// columnFor applies the remembered column to a row reached vertically.
func (e *Engine) columnFor(p Pos) Pos {
	p.Col = e.want
	return e.clampPos(p)
}

func (e *Engine) moveCursor(m motion) {
	e.cursor = e.clampPos(m.to)
	if m.want >= 0 {
		e.want = m.want
	}
	e.follow()
}
