package components

import (
	"path"
	"strings"

	"github.com/interpretive-systems/vig/internal/diffview"
	"github.com/interpretive-systems/vig/internal/theme"
)

// TreeEntry is one visible row of the file tree: a directory, or a file
// referenced by its index in the diff.
type TreeEntry struct {
	Dir       string
	File      int
	Depth     int
	Collapsed bool
}

// IsDir reports whether the entry is a directory.
func (e TreeEntry) IsDir() bool {
	return e.File < 0
}

// FileTree manages the file tree pane.
type FileTree struct {
	files     []diffview.FileEntry
	entries   []TreeEntry
	collapsed map[string]bool
	state     ListState
}

// NewFileTree creates an empty file tree.
func NewFileTree() *FileTree {
	return &FileTree{collapsed: make(map[string]bool)}
}

// SetFiles replaces the files, keeping the selection on the same path when
// it still exists.
func (f *FileTree) SetFiles(files []diffview.FileEntry) {
	key := f.selectionKey()
	f.files = files
	f.rebuild()
	if key != "" {
		f.selectKey(key)
	}
}

// Files returns the files shown in the tree.
func (f *FileTree) Files() []diffview.FileEntry {
	return f.files
}

// Entries returns the visible rows.
func (f *FileTree) Entries() []TreeEntry {
	return f.entries
}

// State exposes the selection for movement.
func (f *FileTree) State() *ListState {
	return &f.state
}

// Selected returns the selected row.
func (f *FileTree) Selected() (TreeEntry, bool) {
	i := f.state.Selected()
	if i < 0 || i >= len(f.entries) {
		return TreeEntry{}, false
	}
	return f.entries[i], true
}

// SelectedFile returns the file under the selection, nil on a directory.
func (f *FileTree) SelectedFile() *diffview.FileEntry {
	e, ok := f.Selected()
	if !ok || e.IsDir() {
		return nil
	}
	return &f.files[e.File]
}

// SelectFile moves the selection to the file at path.
func (f *FileTree) SelectFile(p string) bool {
	return f.selectKey("f:" + p)
}

// Toggle collapses or expands the selected directory.
func (f *FileTree) Toggle() bool {
	e, ok := f.Selected()
	if !ok || !e.IsDir() {
		return false
	}
	if f.collapsed[e.Dir] {
		delete(f.collapsed, e.Dir)
	} else {
		f.collapsed[e.Dir] = true
	}
	f.rebuild()
	f.selectKey("d:" + e.Dir)
	return true
}

// Labels returns the searchable text of every visible row.
func (f *FileTree) Labels() []string {
	out := make([]string, len(f.entries))
	for i, e := range f.entries {
		out[i] = f.label(e)
	}
	return out
}

func (f *FileTree) label(e TreeEntry) string {
	if e.IsDir() {
		return path.Base(e.Dir) + "/"
	}
	p := f.files[e.File].Path
	if e.Depth > 0 {
		return path.Base(p)
	}
	return p
}

func (f *FileTree) selectionKey() string {
	e, ok := f.Selected()
	if !ok {
		return ""
	}
	if e.IsDir() {
		return "d:" + e.Dir
	}
	return "f:" + f.files[e.File].Path
}

func (f *FileTree) selectKey(key string) bool {
	for i, e := range f.entries {
		var k string
		if e.IsDir() {
			k = "d:" + e.Dir
		} else {
			k = "f:" + f.files[e.File].Path
		}
		if k == key {
			f.state.Select(i)
			return true
		}
	}
	return false
}

func (f *FileTree) rebuild() {
	f.entries = buildTree(f.files, f.collapsed)
	f.state.SetLen(len(f.entries))
}

// buildTree lays out files, which must be sorted by path, as a directory
// tree. A directory holding a single changed file is not shown; the file
// is listed with its full path instead.
func buildTree(files []diffview.FileEntry, collapsed map[string]bool) []TreeEntry {
	counts := make(map[string]int)
	for _, file := range files {
		dir := path.Dir(file.Path)
		if dir == "." {
			continue
		}
		parts := strings.Split(dir, "/")
		for i := range parts {
			counts[strings.Join(parts[:i+1], "/")]++
		}
	}

	var entries []TreeEntry
	var prev []string
	for i, file := range files {
		dir := path.Dir(file.Path)
		if dir == "." || counts[dir] == 1 {
			entries = append(entries, TreeEntry{File: i})
			prev = nil
			continue
		}
		parts := strings.Split(dir, "/")
		common := 0
		for common < len(prev) && common < len(parts) && prev[common] == parts[common] {
			common++
		}
		hidden := false
		for d := 0; d < common; d++ {
			if collapsed[strings.Join(parts[:d+1], "/")] {
				hidden = true
			}
		}
		for d := common; d < len(parts); d++ {
			p := strings.Join(parts[:d+1], "/")
			if !hidden {
				entries = append(entries, TreeEntry{Dir: p, File: -1, Depth: d, Collapsed: collapsed[p]})
			}
			if collapsed[p] {
				hidden = true
			}
		}
		if !hidden {
			entries = append(entries, TreeEntry{File: i, Depth: len(parts)})
		}
		prev = parts
	}
	return entries
}

// Render draws the pane in exactly height rows.
func (f *FileTree) Render(width, height int, focused bool, th theme.Theme, mark Marker) []string {
	items := make([]listItem, len(f.entries))
	for i, e := range f.entries {
		indent := strings.Repeat("  ", e.Depth)
		if e.IsDir() {
			icon := "▼ "
			if e.Collapsed {
				icon = "▶ "
			}
			items[i] = listItem{Prefix: indent + th.MutedText(icon), Text: f.label(e)}
			continue
		}
		st := f.files[e.File].Status
		items[i] = listItem{Prefix: indent + statusText(st, th) + " ", Text: f.label(e)}
	}
	return renderList("Files", items, &f.state, width, height, focused, th, mark, "Working tree clean")
}

func statusText(s diffview.FileStatus, th theme.Theme) string {
	st := th.Style().Bold(true)
	switch s {
	case diffview.StatusAdded:
		st = st.Foreground(th.AddColor)
	case diffview.StatusDeleted:
		st = st.Foreground(th.DelColor)
	case diffview.StatusRenamed:
		st = st.Foreground(th.MetaColor)
	case diffview.StatusUntracked:
		st = st.Foreground(th.MutedColor)
	default:
		st = st.Foreground(th.BaseColor)
	}
	return st.Render(s.Icon())
}
