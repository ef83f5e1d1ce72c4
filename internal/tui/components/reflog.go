package components

import (
	"github.com/interpretive-systems/vig/internal/gitx"
	"github.com/interpretive-systems/vig/internal/theme"
)

// ReflogList manages the reflog pane.
type ReflogList struct {
	entries []gitx.ReflogEntry
	state   ListState
}

// NewReflogList creates an empty reflog pane.
func NewReflogList() *ReflogList {
	return &ReflogList{}
}

// SetEntries replaces the reflog.
func (r *ReflogList) SetEntries(entries []gitx.ReflogEntry) {
	r.entries = entries
	r.state.SetLen(len(entries))
}

// State exposes the selection for movement.
func (r *ReflogList) State() *ListState {
	return &r.state
}

// Selected returns the selected entry.
func (r *ReflogList) Selected() (gitx.ReflogEntry, bool) {
	i := r.state.Selected()
	if i < 0 || i >= len(r.entries) {
		return gitx.ReflogEntry{}, false
	}
	return r.entries[i], true
}

// Labels returns the searchable text of every entry.
func (r *ReflogList) Labels() []string {
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.ShortHash + " " + e.Action + ": " + e.Message
	}
	return out
}

// Render draws the pane in exactly height rows.
func (r *ReflogList) Render(width, height int, focused bool, th theme.Theme, mark Marker) []string {
	items := make([]listItem, len(r.entries))
	for i, e := range r.entries {
		prefix := th.Style().Foreground(th.BaseColor).Render(e.ShortHash) + " " +
			th.Style().Foreground(th.MetaColor).Render(e.Action) + " "
		items[i] = listItem{Prefix: prefix, Text: e.Message}
	}
	return renderList("Reflog", items, &r.state, width, height, focused, th, mark, "Empty reflog")
}
