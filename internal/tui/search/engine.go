// Package search implements the "/" prompt and match navigation for the
// diff pane and the list panes.
package search

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/interpretive-systems/vig/internal/diffview"
)

// Action reports what a prompt key did.
type Action int

const (
	ActionNone Action = iota
	ActionSubmit
	ActionCancel
)

type lineKey struct {
	side diffview.Side
	row  int
}

// Engine holds the active query, its matches and the prompt.
type Engine struct {
	query   string
	last    string
	origin  Origin
	matches []Match
	index   int
	byLine  map[lineKey][]int

	history History
	input   textinput.Model
	active  bool
	target  Origin
}

// New creates an engine with an empty history.
func New() *Engine {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "search"
	ti.CharLimit = 256
	return &Engine{input: ti}
}

// Open shows the prompt for a search in origin. The active query keeps its
// own origin until a new query is executed.
func (e *Engine) Open(origin Origin) tea.Cmd {
	e.active = true
	e.target = origin
	e.input.SetValue("")
	e.history.Reset()
	return e.input.Focus()
}

// Close hides the prompt without touching the active query.
func (e *Engine) Close() {
	e.active = false
	e.input.Blur()
	e.history.Reset()
}

// IsActive reports whether the prompt is open.
func (e *Engine) IsActive() bool { return e.active }

// Target returns the pane the prompt was opened for.
func (e *Engine) Target() Origin { return e.target }

// Input returns the prompt text.
func (e *Engine) Input() string { return e.input.Value() }

// HandleKey edits the prompt. On ActionSubmit the prompt is closed and the
// query is recorded in the history; the caller runs Execute.
func (e *Engine) HandleKey(msg tea.KeyMsg) (Action, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		e.Close()
		return ActionCancel, nil
	case "enter":
		e.history.Add(e.input.Value())
		e.Close()
		return ActionSubmit, nil
	case "up", "ctrl+p":
		if q, ok := e.history.Prev(e.input.Value()); ok {
			e.input.SetValue(q)
			e.input.CursorEnd()
		}
		return ActionNone, nil
	case "down", "ctrl+n":
		if q, ok := e.history.Next(); ok {
			e.input.SetValue(q)
			e.input.CursorEnd()
		}
		return ActionNone, nil
	}
	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	return ActionNone, cmd
}

// Execute runs query against corpus, replacing all previous matches, and
// makes the first match current. An empty query clears the search.
func (e *Engine) Execute(query string, corpus Corpus) int {
	if query == "" {
		e.Clear()
		return 0
	}
	e.query = query
	e.last = query
	e.origin = corpus.Origin()
	e.setMatches(corpus.Find(query))
	return len(e.matches)
}

func (e *Engine) setMatches(ms []Match) {
	e.matches = ms
	e.index = 0
	e.byLine = nil
	if e.origin != OriginDiff || len(ms) == 0 {
		return
	}
	e.byLine = make(map[lineKey][]int)
	for i, m := range ms {
		k := lineKey{side: m.Side, row: m.Index}
		e.byLine[k] = append(e.byLine[k], i)
	}
}

// Jump moves to the next or previous match, wrapping around. With no active
// query the last one is run again first, landing on the first match going
// forward and the last going backward.
func (e *Engine) Jump(forward bool, corpus Corpus) (Match, bool) {
	if e.query == "" {
		if e.last == "" || e.Execute(e.last, corpus) == 0 {
			return Match{}, false
		}
		if !forward {
			e.index = len(e.matches) - 1
		}
		return e.matches[e.index], true
	}
	n := len(e.matches)
	if n == 0 {
		return Match{}, false
	}
	if forward {
		e.index = (e.index + 1) % n
	} else {
		e.index = (e.index - 1 + n) % n
	}
	return e.matches[e.index], true
}

// Clear drops the active query and its highlights. The query is still
// remembered for Jump.
func (e *Engine) Clear() {
	e.query = ""
	e.matches = nil
	e.byLine = nil
	e.index = 0
}

// Refresh runs the active query again when corpus is what it was run
// against, as after selecting another file.
func (e *Engine) Refresh(corpus Corpus) {
	if e.query == "" || corpus.Origin() != e.origin {
		return
	}
	e.setMatches(corpus.Find(e.query))
}

// Query returns the active query, "" when none.
func (e *Engine) Query() string { return e.query }

// LastQuery returns the most recent query, even after Clear.
func (e *Engine) LastQuery() string { return e.last }

// Origin returns the pane the active query was run against.
func (e *Engine) Origin() Origin { return e.origin }

// Matches returns the matches in source order.
func (e *Engine) Matches() []Match { return e.matches }

// Count returns the number of matches.
func (e *Engine) Count() int { return len(e.matches) }

// Index returns the 0-based index of the current match.
func (e *Engine) Index() int { return e.index }

// Current returns the current match.
func (e *Engine) Current() (Match, bool) {
	if len(e.matches) == 0 {
		return Match{}, false
	}
	return e.matches[e.index], true
}

// Highlight is a diff match on one line, ready to draw.
type Highlight struct {
	Range
	Current bool
}

// LineHighlights returns the diff matches on one line of one side.
func (e *Engine) LineHighlights(side diffview.Side, row int) []Highlight {
	idx := e.byLine[lineKey{side: side, row: row}]
	if len(idx) == 0 {
		return nil
	}
	out := make([]Highlight, len(idx))
	for i, mi := range idx {
		m := e.matches[mi]
		out[i] = Highlight{
			Range:   Range{Start: m.ColStart, End: m.ColEnd},
			Current: mi == e.index,
		}
	}
	return out
}

// IsMatch reports whether list item i of origin matches the active query.
func (e *Engine) IsMatch(origin Origin, i int) bool {
	if e.query == "" || origin != e.origin {
		return false
	}
	for _, m := range e.matches {
		if m.Index == i {
			return true
		}
	}
	return false
}
