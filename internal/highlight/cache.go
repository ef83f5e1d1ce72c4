package highlight

import (
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"

	"github.com/interpretive-systems/vig/internal/diffview"
)

// Cache holds syntax colours for one file. Rows are produced strictly in
// order and never change once produced, so the cache only grows.
type Cache struct {
	h          *Highlighter
	path       string
	lexer      chroma.Lexer
	left       []string
	right      []string
	hunkStarts []int
	rows       int

	leftColors  [][]Color
	rightColors [][]Color
	leftState   sideState
	rightState  sideState
	processed   int
}

// Create prepares an empty cache for a file. It returns nil when no grammar
// matches the file.
func (h *Highlighter) Create(path string, left, right diffview.Content) *Cache {
	lexer := h.Lexer(path, sample(right, 8))
	if lexer == nil {
		lexer = h.Lexer(path, sample(left, 8))
	}
	if lexer == nil {
		return nil
	}
	starts := append([]int(nil), right.HunkStarts...)
	if len(starts) == 0 {
		starts = append(starts, left.HunkStarts...)
	}
	sort.Ints(starts)
	rows := max(len(left.Lines), len(right.Lines))
	return &Cache{
		h:           h,
		path:        path,
		lexer:       lexer,
		left:        left.Lines,
		right:       right.Lines,
		hunkStarts:  starts,
		rows:        rows,
		leftColors:  make([][]Color, 0, rows),
		rightColors: make([][]Color, 0, rows),
	}
}

// FromResult wraps a fully computed background result in a cache.
func FromResult(r Result) *Cache {
	return &Cache{
		path:        r.Path,
		rows:        len(r.Left),
		leftColors:  r.Left,
		rightColors: r.Right,
		processed:   len(r.Left),
	}
}

// Extend highlights rows up to, but excluding, upTo. Bounds at or below
// Processed are no-ops.
func (c *Cache) Extend(upTo int) {
	if upTo > c.rows {
		upTo = c.rows
	}
	for row := c.processed; row < upTo; row++ {
		c.leftColors = append(c.leftColors, c.rowColors(&c.leftState, c.left, row))
		c.rightColors = append(c.rightColors, c.rowColors(&c.rightState, c.right, row))
		c.processed = row + 1
	}
}

// Path returns the file the cache belongs to.
func (c *Cache) Path() string { return c.path }

// Processed returns how many rows have colours.
func (c *Cache) Processed() int { return c.processed }

// Len returns the total number of rows of the file.
func (c *Cache) Len() int { return c.rows }

// Colors returns the colours of row on side, or nil when the row has not
// been processed yet.
func (c *Cache) Colors(side diffview.Side, row int) []Color {
	if row < 0 || row >= c.processed {
		return nil
	}
	if side == diffview.SideLeft {
		return c.leftColors[row]
	}
	return c.rightColors[row]
}

// Left returns the colours of a left-side row.
func (c *Cache) Left(row int) []Color { return c.Colors(diffview.SideLeft, row) }

// Right returns the colours of a right-side row.
func (c *Cache) Right(row int) []Color { return c.Colors(diffview.SideRight, row) }

func (c *Cache) isHunkStart(row int) bool {
	i := sort.SearchInts(c.hunkStarts, row)
	return i < len(c.hunkStarts) && c.hunkStarts[i] == row
}

// segmentEnd returns the first hunk start after row, or the row count.
func (c *Cache) segmentEnd(row int) int {
	i := sort.SearchInts(c.hunkStarts, row+1)
	if i < len(c.hunkStarts) {
		return c.hunkStarts[i]
	}
	return c.rows
}

func (c *Cache) rowColors(st *sideState, lines []string, row int) []Color {
	if c.isHunkStart(row) {
		st.open(c.lexer, lines, row+1, c.segmentEnd(row))
		return []Color{}
	}
	if !st.opened {
		st.open(c.lexer, lines, row, c.segmentEnd(row))
	}
	return st.line(c.h)
}

// sideState is the resumable tokenizer position for one side: a lazy token
// stream over the current hunk plus the part of a token that ran past the
// previous line break.
type sideState struct {
	opened  bool
	failed  bool
	next    chroma.Iterator
	pending *chroma.Token
}

// open restarts tokenization at the top of a hunk spanning lines[start:end].
func (st *sideState) open(lexer chroma.Lexer, lines []string, start, end int) {
	*st = sideState{opened: true}
	if start >= end || start >= len(lines) {
		return
	}
	end = min(end, len(lines))
	text := strings.Join(lines[start:end], "\n") + "\n"

	defer func() {
		if r := recover(); r != nil {
			st.fail()
		}
	}()
	it, err := lexer.Tokenise(nil, text)
	if err != nil {
		st.fail()
		return
	}
	st.next = it
}

func (st *sideState) fail() {
	st.failed = true
	st.next = nil
	st.pending = nil
}

// line consumes tokens up to the next line break and returns one colour per
// character of that line.
func (st *sideState) line(h *Highlighter) (out []Color) {
	if st.failed || (st.next == nil && st.pending == nil) {
		return []Color{}
	}
	defer func() {
		if r := recover(); r != nil {
			st.fail()
			out = []Color{}
		}
	}()

	out = make([]Color, 0, 80)
	for {
		var tok chroma.Token
		if st.pending != nil {
			tok = *st.pending
			st.pending = nil
		} else {
			if st.next == nil {
				return out
			}
			tok = st.next()
			if tok == chroma.EOF {
				st.next = nil
				return out
			}
		}

		col := h.colorOf(tok.Type)
		if i := strings.IndexByte(tok.Value, '\n'); i >= 0 {
			for range tok.Value[:i] {
				out = append(out, col)
			}
			if rest := tok.Value[i+1:]; rest != "" {
				st.pending = &chroma.Token{Type: tok.Type, Value: rest}
			}
			return out
		}
		for range tok.Value {
			out = append(out, col)
		}
	}
}

// HighlightAll computes every row of a file in one pass. It is the eager
// counterpart of Create followed by Extend over the whole file.
func (h *Highlighter) HighlightAll(path string, left, right diffview.Content) (Result, bool) {
	c := h.Create(path, left, right)
	if c == nil {
		return Result{}, false
	}
	c.Extend(c.Len())
	return Result{Path: path, Left: c.leftColors, Right: c.rightColors}, true
}
