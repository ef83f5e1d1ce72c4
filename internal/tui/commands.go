package tui

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/interpretive-systems/vig/internal/gitx"
	"github.com/interpretive-systems/vig/internal/highlight"
)

// loadDiff loads the working-tree diff against base. An unresolvable base
// falls back to HEAD.
func loadDiff(ctx context.Context, repoRoot, base string, epoch uint64) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		snap, err := gitx.Load(ctx, repoRoot, base)
		if err != nil && base != "" && errors.Is(err, gitx.ErrUnresolvedRef) {
			snap, err = gitx.Load(ctx, repoRoot, "")
			return diffMsg{epoch: epoch, files: snap.Files, sum: snap.Sum, requested: base, fellBack: true, elapsed: time.Since(start), err: err}
		}
		return diffMsg{epoch: epoch, files: snap.Files, sum: snap.Sum, base: base, requested: base, elapsed: time.Since(start), err: err}
	}
}

// loadSidebar loads branches, the log of logRef and the reflog.
func loadSidebar(ctx context.Context, repoRoot, logRef string, limit int) tea.Cmd {
	return func() tea.Msg {
		sb, err := gitx.LoadSidebar(ctx, repoRoot, logRef, limit)
		return sidebarMsg{logRef: logRef, sidebar: sb, err: err}
	}
}

// loadLog loads the commit log of ref.
func loadLog(ctx context.Context, repoRoot, ref string, limit int) tea.Cmd {
	return func() tea.Msg {
		commits, err := gitx.Log(ctx, repoRoot, ref, limit)
		return logMsg{ref: ref, commits: commits, err: err}
	}
}

// waitHighlight receives the next background highlight result.
func waitHighlight(epoch uint64, ch <-chan highlight.Result) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return highlightDoneMsg{epoch: epoch}
		}
		return highlightMsg{result: r, ch: ch}
	}
}

// waitWatch blocks until the watcher reports a change. A closed channel
// ends the subscription.
func waitWatch(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return watchMsg{}
	}
}

// tickOnce schedules a single polling tick.
func tickOnce(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// openEditor suspends the UI and runs editor on path. The editor setting
// may carry arguments, as in "code --wait".
func openEditor(editor, repoRoot, path string) tea.Cmd {
	args := strings.Fields(editor)
	if len(args) == 0 {
		args = []string{"vi"}
	}
	full := filepath.Join(repoRoot, path)
	c := exec.Command(args[0], append(args[1:], full)...)
	c.Dir = repoRoot
	return tea.ExecProcess(c, func(err error) tea.Msg {
		return editorFinishedMsg{path: path, err: err}
	})
}
