// Package diffview holds the side-by-side row model for a working-tree diff
// and the projection of that model into per-side display lines.
package diffview

// RowKind represents the semantic type of a side-by-side row.
type RowKind int

const (
	RowContext RowKind = iota
	RowAdded
	RowDeleted
)

func (k RowKind) String() string {
	switch k {
	case RowAdded:
		return "added"
	case RowDeleted:
		return "deleted"
	default:
		return "context"
	}
}

// Side selects the old (left) or new (right) half of a row.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// Other returns the opposite side.
func (s Side) Other() Side {
	if s == SideLeft {
		return SideRight
	}
	return SideLeft
}

func (s Side) String() string {
	if s == SideLeft {
		return "LEFT"
	}
	return "RIGHT"
}

// LineText is one line of file content with its 1-based line number.
type LineText struct {
	Number  int
	Content string
}

// Row is a single visual row. At least one side is set; a row with only a
// right side is always RowAdded, and a row carrying both sides with
// RowDeleted is a changed line shown next to its replacement.
type Row struct {
	Left  *LineText
	Right *LineText
	Kind  RowKind
}

// Line returns the text for the given side, or nil when the side is absent.
func (r Row) Line(side Side) *LineText {
	if side == SideLeft {
		return r.Left
	}
	return r.Right
}

// Hunk is one "@@" section of a file diff.
type Hunk struct {
	Header string
	Rows   []Row
}

// FileStatus is the change type of a file relative to the base.
type FileStatus int

const (
	StatusModified FileStatus = iota
	StatusAdded
	StatusDeleted
	StatusRenamed
	StatusUntracked
)

// Icon returns the one-letter marker shown in the file tree.
func (s FileStatus) Icon() string {
	switch s {
	case StatusAdded:
		return "A"
	case StatusDeleted:
		return "D"
	case StatusRenamed:
		return "R"
	case StatusUntracked:
		return "?"
	default:
		return "M"
	}
}

// FileEntry is one changed file. Entries are rebuilt on every refresh.
type FileEntry struct {
	Path     string
	OldPath  string
	Status   FileStatus
	Hunks    []Hunk
	IsBinary bool
}

// RowCount returns the number of flattened lines the file projects to,
// one per hunk header plus one per row.
func (f FileEntry) RowCount() int {
	n := 0
	for _, h := range f.Hunks {
		n += 1 + len(h.Rows)
	}
	return n
}

// Stats counts added and deleted lines across a set of files.
type Stats struct {
	Additions int
	Deletions int
}

// ComputeStats totals the rows of every file. A paired row counts as one
// addition and one deletion.
func ComputeStats(files []FileEntry) Stats {
	var s Stats
	for _, f := range files {
		for _, h := range f.Hunks {
			for _, r := range h.Rows {
				switch r.Kind {
				case RowAdded:
					s.Additions++
				case RowDeleted:
					s.Deletions++
					if r.Right != nil {
						s.Additions++
					}
				}
			}
		}
	}
	return s
}
