package components

import (
	"github.com/interpretive-systems/vig/internal/gitx"
	"github.com/interpretive-systems/vig/internal/theme"
)

// BranchList manages the branch pane.
type BranchList struct {
	branches []gitx.BranchInfo
	base     string
	state    ListState
}

// NewBranchList creates an empty branch list.
func NewBranchList() *BranchList {
	return &BranchList{}
}

// SetBranches replaces the branches, keeping the selection on the same
// name when possible.
func (b *BranchList) SetBranches(branches []gitx.BranchInfo) {
	prev, _ := b.Selected()
	b.branches = branches
	b.state.SetLen(len(branches))
	for i, br := range branches {
		if br.Name == prev.Name {
			b.state.Select(i)
			break
		}
	}
}

// SetBase marks the branch currently used as the diff base.
func (b *BranchList) SetBase(base string) {
	b.base = base
}

// Branches returns the listed branches.
func (b *BranchList) Branches() []gitx.BranchInfo {
	return b.branches
}

// State exposes the selection for movement.
func (b *BranchList) State() *ListState {
	return &b.state
}

// Selected returns the selected branch.
func (b *BranchList) Selected() (gitx.BranchInfo, bool) {
	i := b.state.Selected()
	if i < 0 || i >= len(b.branches) {
		return gitx.BranchInfo{}, false
	}
	return b.branches[i], true
}

// Labels returns the searchable branch names.
func (b *BranchList) Labels() []string {
	out := make([]string, len(b.branches))
	for i, br := range b.branches {
		out[i] = br.Name
	}
	return out
}

// Render draws the pane in exactly height rows.
func (b *BranchList) Render(width, height int, focused bool, th theme.Theme, mark Marker) []string {
	items := make([]listItem, len(b.branches))
	for i, br := range b.branches {
		prefix := "  "
		switch {
		case br.IsHead:
			prefix = th.AddText("* ")
		case br.Name == b.base:
			prefix = th.Style().Foreground(th.BaseColor).Render("◆ ")
		}
		items[i] = listItem{Prefix: prefix, Text: br.Name}
	}
	return renderList("Branches", items, &b.state, width, height, focused, th, mark, "No branches")
}
