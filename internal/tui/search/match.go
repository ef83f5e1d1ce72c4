package search

import (
	"unicode"

	"github.com/interpretive-systems/vig/internal/diffview"
)

// Origin names the pane a match was found in.
type Origin int

const (
	OriginDiff Origin = iota
	OriginTree
	OriginCommit
	OriginBranch
	OriginReflog
)

func (o Origin) String() string {
	switch o {
	case OriginTree:
		return "files"
	case OriginCommit:
		return "commits"
	case OriginBranch:
		return "branches"
	case OriginReflog:
		return "reflog"
	default:
		return "diff"
	}
}

// Match is one occurrence of the query. Index is the row in the flattened
// diff or the item in a list pane. Side and the rune columns [ColStart,
// ColEnd) are only meaningful for diff matches.
type Match struct {
	Origin   Origin
	Index    int
	Side     diffview.Side
	ColStart int
	ColEnd   int
}

// Corpus is something the engine can search.
type Corpus interface {
	Origin() Origin
	Find(query string) []Match
}

// DiffCorpus searches both sides of a flattened file diff, row by row, the
// left side before the right.
type DiffCorpus struct {
	Left  []string
	Right []string
}

func (DiffCorpus) Origin() Origin { return OriginDiff }

func (c DiffCorpus) Find(query string) []Match {
	q := fold(query)
	if len(q) == 0 {
		return nil
	}
	var out []Match
	rows := max(len(c.Left), len(c.Right))
	for row := 0; row < rows; row++ {
		for _, side := range []diffview.Side{diffview.SideLeft, diffview.SideRight} {
			lines := c.Left
			if side == diffview.SideRight {
				lines = c.Right
			}
			if row >= len(lines) {
				continue
			}
			for _, r := range findRanges(lines[row], q) {
				out = append(out, Match{
					Origin:   OriginDiff,
					Index:    row,
					Side:     side,
					ColStart: r.Start,
					ColEnd:   r.End,
				})
			}
		}
	}
	return out
}

// ListCorpus searches the labels of a list pane; each matching item is one
// match.
type ListCorpus struct {
	Kind  Origin
	Items []string
}

func (c ListCorpus) Origin() Origin { return c.Kind }

func (c ListCorpus) Find(query string) []Match {
	q := fold(query)
	if len(q) == 0 {
		return nil
	}
	var out []Match
	for i, item := range c.Items {
		if len(findRanges(item, q)) > 0 {
			out = append(out, Match{Origin: c.Kind, Index: i})
		}
	}
	return out
}

// Range is a half-open rune range within a line.
type Range struct {
	Start int
	End   int
}

// findRanges returns the non-overlapping occurrences of the folded query q
// in line, left to right.
func findRanges(line string, q []rune) []Range {
	text := fold(line)
	if len(q) == 0 || len(q) > len(text) {
		return nil
	}
	var out []Range
	for i := 0; i <= len(text)-len(q); {
		if equalAt(text, i, q) {
			out = append(out, Range{Start: i, End: i + len(q)})
			i += len(q)
			continue
		}
		i++
	}
	return out
}

func equalAt(text []rune, i int, q []rune) bool {
	for j, r := range q {
		if text[i+j] != r {
			return false
		}
	}
	return true
}

// fold lowercases rune by rune so columns stay aligned with the original.
func fold(s string) []rune {
	rs := []rune(s)
	for i, r := range rs {
		rs[i] = unicode.ToLower(r)
	}
	return rs
}
