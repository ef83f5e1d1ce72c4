package diffview

import "strings"

// Origin marks a raw diff line as context, deletion or addition.
type Origin int

const (
	OriginContext Origin = iota
	OriginDelete
	OriginAdd
)

// RawLine is one line of a hunk as produced by git, before alignment.
// OldNumber is set for context and deletions, NewNumber for context and
// additions.
type RawLine struct {
	Origin    Origin
	OldNumber int
	NewNumber int
	Content   string
}

// Align turns the raw lines of one hunk into side-by-side rows.
//
// A run of deletions followed by a run of additions is paired by position:
// the i-th deletion sits next to the i-th addition. Pairs and unmatched
// deletions are RowDeleted; unmatched additions are right-only RowAdded.
func Align(header string, lines []RawLine) Hunk {
	rows := make([]Row, 0, len(lines))
	pendingDel := make([]RawLine, 0)
	pendingAdd := make([]RawLine, 0)

	flushPending := func() {
		n := len(pendingDel)
		if len(pendingAdd) > n {
			n = len(pendingAdd)
		}
		for i := 0; i < n; i++ {
			var r Row
			if i < len(pendingDel) {
				d := pendingDel[i]
				r.Left = &LineText{Number: d.OldNumber, Content: trimEOL(d.Content)}
			}
			if i < len(pendingAdd) {
				a := pendingAdd[i]
				r.Right = &LineText{Number: a.NewNumber, Content: trimEOL(a.Content)}
			}
			if r.Left != nil {
				r.Kind = RowDeleted
			} else {
				r.Kind = RowAdded
			}
			rows = append(rows, r)
		}
		pendingDel = pendingDel[:0]
		pendingAdd = pendingAdd[:0]
	}

	for _, l := range lines {
		switch l.Origin {
		case OriginContext:
			flushPending()
			content := trimEOL(l.Content)
			rows = append(rows, Row{
				Left:  &LineText{Number: l.OldNumber, Content: content},
				Right: &LineText{Number: l.NewNumber, Content: content},
				Kind:  RowContext,
			})
		case OriginDelete:
			// A deletion after additions starts a new run.
			if len(pendingAdd) > 0 {
				flushPending()
			}
			pendingDel = append(pendingDel, l)
		case OriginAdd:
			pendingAdd = append(pendingAdd, l)
		default:
			// Unknown origin; skip
		}
	}
	flushPending()
	return Hunk{Header: header, Rows: rows}
}

func trimEOL(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
