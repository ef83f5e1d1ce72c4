package cursor

import (
	"unicode"

	"github.com/mattn/go-runewidth"

	"github.com/interpretive-systems/vig/internal/diffview"
)

// buffer is a read-only view over one side's lines.
type buffer []string

func (b buffer) len() int { return len(b) }

func (b buffer) runes(row int) []rune {
	if row < 0 || row >= len(b) {
		return nil
	}
	return []rune(b[row])
}

// lastCol is the highest column the cursor may occupy on row.
func (b buffer) lastCol(row int) int {
	return max(len(b.runes(row)), 1) - 1
}

// cellWidth is how many terminal cells r takes in the diff pane. Tabs and
// zero-width runes are drawn as one blank.
func cellWidth(r rune) int {
	if w := runewidth.RuneWidth(r); w > 0 && r != '\t' {
		return w
	}
	return 1
}

// cellsTo returns the cell offset of column col, or the width of the whole
// line when col is negative.
func cellsTo(line []rune, col int) int {
	if col < 0 || col > len(line) {
		col = len(line)
	}
	x := 0
	for _, r := range line[:col] {
		x += cellWidth(r)
	}
	return x
}

// colAt returns the first column starting at or after cell x.
func colAt(line []rune, x int) int {
	cells := 0
	for col, r := range line {
		if cells >= x {
			return col
		}
		cells += cellWidth(r)
	}
	return len(line)
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r)
}

// next returns the position after p, moving onto following rows and
// skipping empty ones.
func (b buffer) next(p Pos) (Pos, bool) {
	line := b.runes(p.Row)
	if p.Col+1 < len(line) {
		p.Col++
		return p, true
	}
	for row := p.Row + 1; row < b.len(); row++ {
		if len(b.runes(row)) > 0 {
			return Pos{Row: row, Col: 0, Side: p.Side}, true
		}
	}
	return p, false
}

// prev returns the position before p, moving onto earlier rows and skipping
// empty ones.
func (b buffer) prev(p Pos) (Pos, bool) {
	if p.Col > 0 {
		p.Col--
		return p, true
	}
	for row := p.Row - 1; row >= 0; row-- {
		if n := len(b.runes(row)); n > 0 {
			return Pos{Row: row, Col: n - 1, Side: p.Side}, true
		}
	}
	return p, false
}

func (b buffer) at(p Pos) (rune, bool) {
	line := b.runes(p.Row)
	if p.Col < 0 || p.Col >= len(line) {
		return 0, false
	}
	return line[p.Col], true
}

// nextWordStart finds the start of the next whitespace-delimited word.
func (b buffer) nextWordStart(p Pos) (Pos, bool) {
	row, col := p.Row, p.Col
	line := b.runes(row)
	for col < len(line) && !isSpace(line[col]) {
		col++
	}
	for {
		for col < len(line) && isSpace(line[col]) {
			col++
		}
		if col < len(line) {
			return Pos{Row: row, Col: col, Side: p.Side}, true
		}
		row++
		if row >= b.len() {
			return p, false
		}
		line = b.runes(row)
		col = 0
	}
}

// prevWordStart finds the start of the word before p.
func (b buffer) prevWordStart(p Pos) (Pos, bool) {
	row, col := p.Row, p.Col-1
	for {
		line := b.runes(row)
		if col >= len(line) {
			col = len(line) - 1
		}
		for col >= 0 && isSpace(line[col]) {
			col--
		}
		if col >= 0 {
			for col > 0 && !isSpace(line[col-1]) {
				col--
			}
			return Pos{Row: row, Col: col, Side: p.Side}, true
		}
		row--
		if row < 0 {
			return p, false
		}
		col = len(b.runes(row)) - 1
	}
}

// wordEnd finds the last character of the current or next word.
func (b buffer) wordEnd(p Pos) (Pos, bool) {
	row, col := p.Row, p.Col+1
	for {
		line := b.runes(row)
		for col < len(line) && isSpace(line[col]) {
			col++
		}
		if col < len(line) {
			for col+1 < len(line) && !isSpace(line[col+1]) {
				col++
			}
			return Pos{Row: row, Col: col, Side: p.Side}, true
		}
		row++
		if row >= b.len() {
			return p, false
		}
		col = 0
	}
}

// text returns the characters in the half-open range [start, end), joining
// rows with newlines.
func (b buffer) text(start, end Pos) string {
	if end.Before(start) {
		start, end = end, start
	}
	if start.Row == end.Row {
		line := b.runes(start.Row)
		from := min(max(start.Col, 0), len(line))
		to := min(max(end.Col, from), len(line))
		return string(line[from:to])
	}
	out := make([]rune, 0, 64)
	first := b.runes(start.Row)
	out = append(out, first[min(max(start.Col, 0), len(first)):]...)
	for row := start.Row + 1; row < end.Row; row++ {
		out = append(out, '\n')
		out = append(out, b.runes(row)...)
	}
	out = append(out, '\n')
	last := b.runes(end.Row)
	out = append(out, last[:min(max(end.Col, 0), len(last))]...)
	return string(out)
}

// lines joins whole rows from..to inclusive.
func (b buffer) lines(from, to int) string {
	if to < from {
		from, to = to, from
	}
	out := make([]rune, 0, 64)
	for row := from; row <= to && row < b.len(); row++ {
		if row > from {
			out = append(out, '\n')
		}
		out = append(out, b.runes(row)...)
	}
	return string(out)
}

func sideIndex(s diffview.Side) int {
	if s == diffview.SideLeft {
		return 0
	}
	return 1
}
