package components

import (
	"github.com/interpretive-systems/vig/internal/gitx"
	"github.com/interpretive-systems/vig/internal/theme"
)

// CommitLog manages the commit log pane.
type CommitLog struct {
	ref     string
	commits []gitx.CommitInfo
	state   ListState
}

// NewCommitLog creates an empty commit log.
func NewCommitLog() *CommitLog {
	return &CommitLog{}
}

// SetCommits replaces the log shown for ref. The selection resets when the
// ref changes.
func (c *CommitLog) SetCommits(ref string, commits []gitx.CommitInfo) {
	if ref != c.ref {
		c.state = ListState{}
	}
	c.ref = ref
	c.commits = commits
	c.state.SetLen(len(commits))
}

// Ref returns the ref the log belongs to.
func (c *CommitLog) Ref() string {
	return c.ref
}

// State exposes the selection for movement.
func (c *CommitLog) State() *ListState {
	return &c.state
}

// Labels returns the searchable text of every commit.
func (c *CommitLog) Labels() []string {
	out := make([]string, len(c.commits))
	for i, ci := range c.commits {
		out[i] = ci.ShortHash + " " + ci.Message + " " + ci.Author
	}
	return out
}

// Render draws the log in exactly height rows.
func (c *CommitLog) Render(width, height int, focused bool, th theme.Theme, mark Marker) []string {
	items := make([]listItem, len(c.commits))
	for i, ci := range c.commits {
		prefix := th.Style().Foreground(th.BaseColor).Render(ci.ShortHash) + " " +
			th.MutedText(ci.Date) + " "
		items[i] = listItem{Prefix: prefix, Text: ci.Message + " (" + ci.Author + ")"}
	}
	title := "Log"
	if c.ref != "" {
		title = "Log: " + c.ref
	}
	return renderList(title, items, &c.state, width, height, focused, th, mark, "No commits")
}
