package wizards

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/interpretive-systems/vig/internal/gitx"
	"github.com/interpretive-systems/vig/internal/theme"
)

// BranchOp is an action offered by the branch menu.
type BranchOp int

const (
	OpSwitch BranchOp = iota
	OpDelete
	OpSetBase
)

func (o BranchOp) key() string {
	switch o {
	case OpDelete:
		return "d"
	case OpSetBase:
		return "b"
	default:
		return "s"
	}
}

func (o BranchOp) label() string {
	switch o {
	case OpDelete:
		return "Delete"
	case OpSetBase:
		return "Set as diff base"
	default:
		return "Switch"
	}
}

var branchOps = []BranchOp{OpSwitch, OpDelete, OpSetBase}

// BranchResultMsg is sent when a git branch operation completes.
type BranchResultMsg struct {
	Op     BranchOp
	Branch string
	Err    error
}

// BaseSelectedMsg asks the parent to diff against Branch.
type BaseSelectedMsg struct {
	Branch gitx.BranchInfo
}

type branchStep int

const (
	stepMenu branchStep = iota
	stepConfirmDelete
	stepRunning
)

// BranchWizard is the action menu for one branch.
type BranchWizard struct {
	ctx      context.Context
	repoRoot string
	branch   gitx.BranchInfo
	step     branchStep
	index    int
	err      string
}

// NewBranchWizard opens the menu for branch.
func NewBranchWizard(ctx context.Context, repoRoot string, branch gitx.BranchInfo) *BranchWizard {
	return &BranchWizard{ctx: ctx, repoRoot: repoRoot, branch: branch}
}

// Branch returns the branch the menu acts on.
func (w *BranchWizard) Branch() gitx.BranchInfo {
	return w.branch
}

// HandleKey processes keyboard input.
func (w *BranchWizard) HandleKey(msg tea.KeyMsg) (Action, tea.Cmd) {
	switch w.step {
	case stepMenu:
		return w.handleMenu(msg)
	case stepConfirmDelete:
		return w.handleConfirm(msg)
	}
	return ActionContinue, nil
}

func (w *BranchWizard) handleMenu(msg tea.KeyMsg) (Action, tea.Cmd) {
	switch key := msg.String(); key {
	case "esc", "q":
		return ActionClose, nil
	case "j", "down":
		if w.index < len(branchOps)-1 {
			w.index++
		}
	case "k", "up":
		if w.index > 0 {
			w.index--
		}
	case "enter":
		return w.choose(branchOps[w.index])
	default:
		for i, op := range branchOps {
			if op.key() == key {
				w.index = i
				return w.choose(op)
			}
		}
	}
	return ActionContinue, nil
}

func (w *BranchWizard) choose(op BranchOp) (Action, tea.Cmd) {
	w.err = ""
	switch op {
	case OpSwitch:
		if w.branch.IsHead {
			w.err = "already on " + w.branch.Name
			return ActionContinue, nil
		}
		w.step = stepRunning
		return ActionContinue, w.run(op, gitx.SwitchBranch)
	case OpDelete:
		if w.branch.IsHead {
			w.err = "cannot delete the checked out branch"
			return ActionContinue, nil
		}
		w.step = stepConfirmDelete
		return ActionContinue, nil
	default:
		b := w.branch
		return ActionClose, func() tea.Msg { return BaseSelectedMsg{Branch: b} }
	}
}

func (w *BranchWizard) handleConfirm(msg tea.KeyMsg) (Action, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		w.step = stepRunning
		return ActionContinue, w.run(OpDelete, gitx.DeleteBranch)
	case "n", "esc":
		w.step = stepMenu
	}
	return ActionContinue, nil
}

// Update processes messages. A finished operation closes the menu; the
// parent reports the result.
func (w *BranchWizard) Update(msg tea.Msg) (Action, tea.Cmd) {
	if _, ok := msg.(BranchResultMsg); ok && w.step == stepRunning {
		return ActionClose, nil
	}
	return ActionContinue, nil
}

func (w *BranchWizard) run(op BranchOp, fn func(context.Context, string, string) error) tea.Cmd {
	ctx, root, name := w.ctx, w.repoRoot, w.branch.Name
	return func() tea.Msg {
		return BranchResultMsg{Op: op, Branch: name, Err: fn(ctx, root, name)}
	}
}

// RenderOverlay renders the menu.
func (w *BranchWizard) RenderOverlay(width int, th theme.Theme) []string {
	lines := []string{th.DividerText(strings.Repeat("─", width))}
	name := th.Style().Bold(true).Render(w.branch.Name)
	if w.branch.IsHead {
		name = th.Style().Bold(true).Foreground(th.AddColor).Render(w.branch.Name + " (HEAD)")
	}

	switch w.step {
	case stepMenu:
		lines = append(lines, "Branch "+name+th.MutedText("  (enter: run, esc: close)"))
		for i, op := range branchOps {
			cur := "  "
			label := op.label()
			if i == w.index {
				cur = "> "
				label = th.Style().Bold(true).Background(th.SelectionBg).Render(label)
			}
			lines = append(lines, cur+th.AccentText(op.key())+"  "+label)
		}
	case stepConfirmDelete:
		lines = append(lines, fmt.Sprintf("Delete branch %s? %s", name, th.MutedText("(y: delete, n: back)")))
	case stepRunning:
		lines = append(lines, th.MetaText("Running git on "+w.branch.Name+"…"))
	}
	if w.err != "" {
		lines = append(lines, th.DelText("Error: ")+w.err)
	}
	return lines
}
