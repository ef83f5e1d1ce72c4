package diffview

// Content is one side of a file flattened into display lines. Each hunk
// contributes its header line, recorded in HunkStarts, followed by one entry
// per row; an absent side projects to "".
type Content struct {
	Lines      []string
	HunkStarts []int
}

// IsHunkStart reports whether row is a hunk header.
func (c Content) IsHunkStart(row int) bool {
	for _, s := range c.HunkStarts {
		if s == row {
			return true
		}
		if s > row {
			return false
		}
	}
	return false
}

// Project flattens one side of a file into display lines.
func Project(file FileEntry, side Side) Content {
	c := Content{
		Lines:      make([]string, 0, file.RowCount()),
		HunkStarts: make([]int, 0, len(file.Hunks)),
	}
	for _, h := range file.Hunks {
		c.HunkStarts = append(c.HunkStarts, len(c.Lines))
		c.Lines = append(c.Lines, h.Header)
		for _, r := range h.Rows {
			if lt := r.Line(side); lt != nil {
				c.Lines = append(c.Lines, lt.Content)
			} else {
				c.Lines = append(c.Lines, "")
			}
		}
	}
	return c
}

// RowRef locates a flattened line back in the hunk model. Row is -1 for a
// hunk header.
type RowRef struct {
	Hunk int
	Row  int
}

// Locate maps a flattened line index to its hunk and row.
func Locate(file FileEntry, index int) (RowRef, bool) {
	if index < 0 {
		return RowRef{}, false
	}
	for hi, h := range file.Hunks {
		if index == 0 {
			return RowRef{Hunk: hi, Row: -1}, true
		}
		index--
		if index < len(h.Rows) {
			return RowRef{Hunk: hi, Row: index}, true
		}
		index -= len(h.Rows)
	}
	return RowRef{}, false
}

type projectionKey struct {
	path string
	side Side
}

// Projector memoizes projections by file path and side. The caller
// invalidates it whenever the selected file changes or the diff is
// refreshed.
type Projector struct {
	cache map[projectionKey]Content
}

// NewProjector creates an empty projector.
func NewProjector() *Projector {
	return &Projector{cache: make(map[projectionKey]Content)}
}

// Get returns the projection of file for side, computing it on a miss.
func (p *Projector) Get(file FileEntry, side Side) Content {
	key := projectionKey{path: file.Path, side: side}
	if c, ok := p.cache[key]; ok {
		return c
	}
	c := Project(file, side)
	p.cache[key] = c
	return c
}

// Both returns the left and right projections of file.
func (p *Projector) Both(file FileEntry) (left, right Content) {
	return p.Get(file, SideLeft), p.Get(file, SideRight)
}

// Invalidate drops every memoized projection.
func (p *Projector) Invalidate() {
	clear(p.cache)
}

// Len returns the number of memoized projections.
func (p *Projector) Len() int {
	return len(p.cache)
}
