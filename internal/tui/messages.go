package tui

import (
	"time"

	"github.com/interpretive-systems/vig/internal/diffview"
	"github.com/interpretive-systems/vig/internal/gitx"
	"github.com/interpretive-systems/vig/internal/highlight"
)

// tickMsg triggers a polling refresh when no watcher runs.
type tickMsg struct{}

// watchMsg reports a debounced change in the working tree.
type watchMsg struct{}

// diffMsg contains a loaded diff for one refresh epoch. base is the ref
// actually diffed against; fellBack is set when the requested base could
// not be resolved and HEAD was used instead. sum fingerprints files.
type diffMsg struct {
	epoch     uint64
	files     []diffview.FileEntry
	sum       gitx.Sum
	base      string
	requested string
	fellBack  bool
	elapsed   time.Duration
	err       error
}

// sidebarMsg contains the branch, log and reflog data.
type sidebarMsg struct {
	logRef  string
	sidebar gitx.Sidebar
	err     error
}

// logMsg contains the commit log for a ref.
type logMsg struct {
	ref     string
	commits []gitx.CommitInfo
	err     error
}

// highlightMsg delivers one background highlight result. The channel is
// read again for the next one.
type highlightMsg struct {
	result highlight.Result
	ch     <-chan highlight.Result
}

// highlightDoneMsg reports that the worker of an epoch finished.
type highlightDoneMsg struct {
	epoch uint64
}

// editorFinishedMsg is sent when the external editor exits.
type editorFinishedMsg struct {
	path string
	err  error
}
