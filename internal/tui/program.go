// Package tui is vig's terminal interface: a bubbletea program that wires
// the diff engine, the side panes and the background loaders together.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/interpretive-systems/vig/internal/cursor"
	"github.com/interpretive-systems/vig/internal/diffview"
	"github.com/interpretive-systems/vig/internal/highlight"
	"github.com/interpretive-systems/vig/internal/tui/ansi"
	"github.com/interpretive-systems/vig/internal/tui/components"
	"github.com/interpretive-systems/vig/internal/tui/search"
	"github.com/interpretive-systems/vig/internal/tui/wizards"
)

// Program is the bubbletea model.
type Program struct {
	state      *State
	layout     *Layout
	keyHandler *KeyHandler
}

// New creates the program for a repository.
func New(ctx context.Context, opts Options) Program {
	return Program{
		state:      NewState(ctx, opts),
		layout:     NewLayout(opts.Prefs.LeftWidth),
		keyHandler: NewKeyHandler(),
	}
}

// Run starts the program on the alternate screen and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := New(ctx, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	m.state.stopHighlight()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

// State exposes the program state.
func (m Program) State() *State {
	return m.state
}

func (m Program) Init() tea.Cmd {
	s := m.state
	cmds := []tea.Cmd{
		loadDiff(s.Ctx, s.RepoRoot, s.Base, s.Epoch),
		loadSidebar(s.Ctx, s.RepoRoot, s.LogRef, s.Prefs.LogLimit),
	}
	if s.Watcher != nil {
		cmds = append(cmds, waitWatch(s.Watcher.Changes()))
	} else {
		cmds = append(cmds, tickOnce(s.Prefs.Poll.Duration))
	}
	return tea.Batch(cmds...)
}

func (m Program) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.relayout()
	return m, cmd
}

func (m Program) update(msg tea.Msg) tea.Cmd {
	s := m.state
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.Width = msg.Width
		s.Height = msg.Height
		return nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case diffMsg:
		return m.applyDiff(msg)

	case sidebarMsg:
		m.applySidebar(msg)
		return nil

	case logMsg:
		if msg.err != nil {
			s.Logger.Warn("log failed", zap.String("ref", msg.ref), zap.Error(msg.err))
			s.StatusBar.SetMessage("Log error: " + msg.err.Error())
			return nil
		}
		if msg.ref == s.LogRef {
			s.Commits.SetCommits(msg.ref, msg.commits)
			m.refreshListSearch()
		}
		return nil

	case highlightMsg:
		m.adoptHighlight(msg.result)
		return waitHighlight(msg.result.Epoch, msg.ch)

	case highlightDoneMsg:
		s.Logger.Debug("highlight worker drained",
			zap.Uint64("epoch", msg.epoch),
			zap.Int("stored", s.HighlightStore.Len()))
		return nil

	case watchMsg:
		s.Logger.Debug("working tree changed")
		return tea.Batch(m.refresh(), waitWatch(s.Watcher.Changes()))

	case tickMsg:
		return tea.Batch(m.refresh(), tickOnce(s.Prefs.Poll.Duration))

	case editorFinishedMsg:
		if msg.err != nil {
			s.Logger.Warn("editor failed", zap.String("path", msg.path), zap.Error(msg.err))
			var exitErr interface{ ExitCode() int }
			if errors.As(msg.err, &exitErr) {
				s.StatusBar.SetMessage("Editor exited with: " + msg.err.Error())
			} else {
				s.StatusBar.SetMessage("Failed to open editor: " + msg.err.Error())
			}
			return nil
		}
		s.Logger.Info("editor closed", zap.String("path", msg.path))
		return m.refresh()

	case wizards.BranchResultMsg:
		return m.applyBranchResult(msg)

	case wizards.BaseSelectedMsg:
		return m.setBase(msg.Branch.Name, msg.Branch.IsHead)
	}
	return nil
}

// refresh reloads the diff and the side panes under a new epoch. Results
// of older epochs are dropped on arrival.
func (m Program) refresh() tea.Cmd {
	s := m.state
	s.Epoch++
	return tea.Batch(
		loadDiff(s.Ctx, s.RepoRoot, s.Base, s.Epoch),
		loadSidebar(s.Ctx, s.RepoRoot, s.LogRef, s.Prefs.LogLimit),
	)
}

func (m Program) applyDiff(msg diffMsg) tea.Cmd {
	s := m.state
	if msg.epoch != s.Epoch {
		return nil
	}
	if msg.err != nil {
		s.Logger.Error("refresh failed", zap.String("base", msg.requested), zap.Error(msg.err))
		s.StatusBar.SetMessage("Refresh error: " + msg.err.Error())
		return nil
	}
	s.LastRefresh = time.Now()
	s.StatusBar.SetLastRefresh(s.LastRefresh)
	if msg.fellBack {
		s.Logger.Warn("diff base not found, using HEAD", zap.String("base", msg.requested))
		s.StatusBar.SetMessage(fmt.Sprintf("Base %q not found; comparing against HEAD", msg.requested))
		s.Base = ""
		s.Branches.SetBase("")
	}
	if msg.files == nil {
		msg.files = []diffview.FileEntry{}
	}
	if s.Files != nil && msg.sum == s.DiffSum {
		return nil
	}
	s.Logger.Info("diff refreshed",
		zap.Uint64("epoch", msg.epoch),
		zap.Int("files", len(msg.files)),
		zap.Duration("elapsed", msg.elapsed))

	s.Files = msg.files
	s.DiffSum = msg.sum
	s.Stats = diffview.ComputeStats(msg.files)
	s.StatusBar.SetDiff(len(msg.files), s.Stats)
	s.FileTree.SetFiles(msg.files)
	s.Projector.Invalidate()
	s.HighlightStore.Purge()
	s.Highlight = nil

	if s.SelectedFile() != nil {
		s.FileTree.SelectFile(s.CurrentPath)
	} else {
		s.CurrentPath = ""
		if f := s.FileTree.SelectedFile(); f != nil {
			s.CurrentPath = f.Path
		} else if len(msg.files) > 0 {
			s.FileTree.SelectFile(msg.files[0].Path)
			s.CurrentPath = msg.files[0].Path
		}
		s.Cursor.Reset()
	}
	m.loadSelected()
	if s.Search.Origin() == search.OriginTree {
		s.Search.Refresh(m.corpus(search.OriginTree))
	}
	return m.startHighlight()
}

// startHighlight replaces the background worker with one for the current
// epoch. The worker keeps its epoch across refreshes that change nothing.
func (m Program) startHighlight() tea.Cmd {
	s := m.state
	s.stopHighlight()
	ctx, cancel := context.WithCancel(s.Ctx)
	s.cancelHighlight = cancel
	s.HighlightEpoch = s.Epoch
	return waitHighlight(s.Epoch, s.Highlighter.Precompute(ctx, s.Epoch, s.Files))
}

func (s *State) stopHighlight() {
	if s.cancelHighlight != nil {
		s.cancelHighlight()
		s.cancelHighlight = nil
	}
}

// adoptHighlight keeps a background result for later selection. A result
// for the file on screen is dropped once an on-demand cache exists.
func (m Program) adoptHighlight(r highlight.Result) {
	s := m.state
	if r.Epoch != s.HighlightEpoch {
		return
	}
	if r.Path != s.CurrentPath {
		s.HighlightStore.Put(r)
		return
	}
	if s.Highlight == nil {
		s.Highlight = highlight.FromResult(r)
	}
}

// loadSelected projects the selected file into the diff pane and the
// cursor engine.
func (m Program) loadSelected() {
	s := m.state
	f := s.SelectedFile()
	s.DiffPane.SetFile(f)
	if f == nil {
		s.Left, s.Right = diffview.Content{}, diffview.Content{}
		s.Cursor.SetLines(nil, nil)
		s.Highlight = nil
		s.FileType = ""
		return
	}
	s.Left, s.Right = s.Projector.Both(*f)
	s.Cursor.SetLines(s.Left.Lines, s.Right.Lines)
	s.FileType = s.Highlighter.FileType(f.Path, s.Right.Lines)
	if s.Highlight == nil || s.Highlight.Path() != f.Path {
		switch r, ok := s.HighlightStore.Take(f.Path); {
		case ok:
			s.Highlight = highlight.FromResult(r)
		case f.IsBinary:
			s.Highlight = nil
		default:
			s.Highlight = s.Highlighter.Create(f.Path, s.Left, s.Right)
		}
	}
	s.Search.Refresh(m.corpus(search.OriginDiff))
}

// selectFile switches the diff pane to the file under the tree selection.
func (m Program) selectFile() {
	s := m.state
	f := s.FileTree.SelectedFile()
	if f == nil || f.Path == s.CurrentPath {
		return
	}
	s.CurrentPath = f.Path
	s.Projector.Invalidate()
	s.Highlight = nil
	s.Cursor.Reset()
	m.loadSelected()
}

// extendHighlight colours everything on screen plus one page ahead.
func (m Program) extendHighlight() {
	s := m.state
	if s.Highlight == nil {
		return
	}
	s.Highlight.Extend(s.Cursor.ScrollY() + 2*m.diffHeight())
}

func (m Program) applySidebar(msg sidebarMsg) {
	s := m.state
	if msg.err != nil {
		s.Logger.Warn("sidebar refresh failed", zap.Error(msg.err))
		s.StatusBar.SetMessage("Refresh error: " + msg.err.Error())
		return
	}
	sb := msg.sidebar
	s.Branch = sb.Branch
	s.LastCommit = sb.LastCommit
	s.StatusBar.SetLastCommit(sb.LastCommit)
	s.Branches.SetBranches(sb.Branches)
	s.Reflog.SetEntries(sb.Reflog)
	if msg.logRef == s.LogRef {
		s.Commits.SetCommits(msg.logRef, sb.Commits)
	}
	m.refreshListSearch()
}

// refreshListSearch reruns an active list search after its pane reloaded.
func (m Program) refreshListSearch() {
	s := m.state
	switch o := s.Search.Origin(); o {
	case search.OriginBranch, search.OriginCommit, search.OriginReflog:
		s.Search.Refresh(m.corpus(o))
	}
}

func (m Program) applyBranchResult(msg wizards.BranchResultMsg) tea.Cmd {
	s := m.state
	if s.Wizard != nil {
		if action, _ := s.Wizard.Update(msg); action == wizards.ActionClose {
			s.Wizard = nil
		}
	}
	if msg.Err != nil {
		s.Logger.Warn("branch operation failed", zap.String("branch", msg.Branch), zap.Error(msg.Err))
		s.ErrDialog = msg.Err.Error()
		return nil
	}
	switch msg.Op {
	case wizards.OpSwitch:
		s.Logger.Info("switched branch", zap.String("branch", msg.Branch))
		s.StatusBar.SetMessage("Switched to " + msg.Branch)
	case wizards.OpDelete:
		s.Logger.Info("deleted branch", zap.String("branch", msg.Branch))
		s.StatusBar.SetMessage("Deleted branch " + msg.Branch)
		if s.Base == msg.Branch {
			s.Base = ""
			s.Branches.SetBase("")
		}
	}
	return m.refresh()
}

// setBase diffs against name from now on. The checked out branch resets
// the base to HEAD.
func (m Program) setBase(name string, isHead bool) tea.Cmd {
	s := m.state
	if isHead {
		name = ""
	}
	s.Base = name
	s.Branches.SetBase(name)
	label := name
	if label == "" {
		label = "HEAD"
	}
	s.StatusBar.SetMessage("Diff base: " + label)
	s.Logger.Info("diff base changed", zap.String("base", label))
	return m.refresh()
}

// setLogRef shows the history of ref in the main pane.
func (m Program) setLogRef(ref string) tea.Cmd {
	s := m.state
	if ref == s.LogRef {
		return nil
	}
	s.LogRef = ref
	return loadLog(s.Ctx, s.RepoRoot, ref, s.Prefs.LogLimit)
}

// followFocus points the log at the selected branch or reflog entry.
func (m Program) followFocus() tea.Cmd {
	s := m.state
	switch s.Focus {
	case PaneBranches:
		if b, ok := s.Branches.Selected(); ok {
			return m.setLogRef(b.Name)
		}
	case PaneReflog:
		if e, ok := s.Reflog.Selected(); ok {
			return m.setLogRef(e.FullHash)
		}
	}
	return nil
}

func (m Program) corpus(origin search.Origin) search.Corpus {
	s := m.state
	switch origin {
	case search.OriginDiff:
		return search.DiffCorpus{Left: s.Left.Lines, Right: s.Right.Lines}
	case search.OriginBranch:
		return search.ListCorpus{Kind: origin, Items: s.Branches.Labels()}
	case search.OriginCommit:
		return search.ListCorpus{Kind: origin, Items: s.Commits.Labels()}
	case search.OriginReflog:
		return search.ListCorpus{Kind: origin, Items: s.Reflog.Labels()}
	default:
		return search.ListCorpus{Kind: search.OriginTree, Items: s.FileTree.Labels()}
	}
}

// runSearch executes a submitted query in the pane the prompt was opened
// from and moves to the first match.
func (m Program) runSearch(query string) tea.Cmd {
	s := m.state
	if s.Search.Execute(query, m.corpus(s.Search.Target())) == 0 {
		if query != "" {
			s.StatusBar.SetMessage("Pattern not found: " + query)
		}
		return nil
	}
	mt, _ := s.Search.Current()
	return m.gotoMatch(mt)
}

// gotoMatch moves the pane a match belongs to onto it.
func (m Program) gotoMatch(mt search.Match) tea.Cmd {
	s := m.state
	switch mt.Origin {
	case search.OriginDiff:
		s.Focus = PaneDiff
		s.Cursor.MoveTo(cursor.Pos{Row: mt.Index, Col: mt.ColStart, Side: mt.Side})
	case search.OriginTree:
		s.Focus = PaneFiles
		s.FileTree.State().Select(mt.Index)
		m.selectFile()
	case search.OriginBranch:
		s.Focus = PaneBranches
		s.Branches.State().Select(mt.Index)
		return m.followFocus()
	case search.OriginCommit:
		s.Focus = PaneLog
		s.Commits.State().Select(mt.Index)
	case search.OriginReflog:
		s.Focus = PaneReflog
		s.Reflog.State().Select(mt.Index)
		return m.followFocus()
	}
	return nil
}

func (m Program) handleKey(msg tea.KeyMsg) tea.Cmd {
	s := m.state
	key := msg.String()
	if key == "ctrl+c" {
		return m.quit()
	}
	s.StatusBar.SetMessage("")

	if s.ErrDialog != "" {
		s.ErrDialog = ""
		return nil
	}
	if s.ShowHelp {
		switch key {
		case "j", "k", "up", "down", "pgup", "pgdown", "ctrl+d", "ctrl+u":
			return s.Help.Update(msg)
		}
		s.ShowHelp = false
		return nil
	}
	if s.Search.IsActive() {
		action, cmd := s.Search.HandleKey(msg)
		if action == search.ActionSubmit {
			return m.runSearch(s.Search.Input())
		}
		return cmd
	}
	if s.Wizard != nil {
		action, cmd := s.Wizard.HandleKey(msg)
		if action == wizards.ActionClose {
			s.Wizard = nil
		}
		return cmd
	}

	if s.Focus == PaneDiff {
		switch s.Cursor.HandleKey(key) {
		case cursor.SignalConsumed:
			m.keyHandler.ClearBuffer()
			if st := s.Cursor.Status(); st != "" {
				s.StatusBar.SetMessage(st)
			}
			return nil
		case cursor.SignalQuit:
			return m.quit()
		case cursor.SignalOpenEditor:
			return m.openEditor()
		}
		if key == "esc" && s.Search.Query() == "" {
			s.Focus = PaneFiles
			return nil
		}
	}

	action, count := m.keyHandler.Handle(msg)
	switch action {
	case ActionQuit:
		return m.quit()
	case ActionToggleHelp:
		s.ShowHelp = true
		s.Help.GotoTop()
		return nil
	case ActionOpenSearch:
		return s.Search.Open(s.Focus.searchOrigin())
	case ActionSearchNext, ActionSearchPrevious:
		return m.jump(action == ActionSearchNext)
	case ActionRefresh:
		s.StatusBar.SetMessage("Refreshing…")
		return m.refresh()
	case ActionOpenEditor:
		return m.openEditor()
	case ActionFocusNext, ActionFocusPrev:
		m.cycleFocus(action == ActionFocusNext)
		return m.followFocus()
	case ActionAdjustLeftNarrower:
		m.layout.AdjustLeftWidth(-2)
		return nil
	case ActionAdjustLeftWider:
		m.layout.AdjustLeftWidth(2)
		return nil
	case ActionBack:
		if s.Search.Query() != "" {
			s.Search.Clear()
			return nil
		}
		s.Focus = PaneFiles
		return nil
	}
	return m.handlePaneKey(action, count)
}

// jump moves to the next or previous match of the active query, or of the
// last query run in the focused pane.
func (m Program) jump(forward bool) tea.Cmd {
	s := m.state
	origin := s.Focus.searchOrigin()
	if s.Search.Query() != "" {
		origin = s.Search.Origin()
	}
	mt, ok := s.Search.Jump(forward, m.corpus(origin))
	if !ok {
		if q := s.Search.LastQuery(); q != "" {
			s.StatusBar.SetMessage("Pattern not found: " + q)
		}
		return nil
	}
	return m.gotoMatch(mt)
}

func (m Program) handlePaneKey(action KeyAction, count int) tea.Cmd {
	s := m.state
	var list *components.ListState
	switch s.Focus {
	case PaneFiles:
		list = s.FileTree.State()
	case PaneBranches:
		list = s.Branches.State()
	case PaneLog:
		list = s.Commits.State()
	case PaneReflog:
		list = s.Reflog.State()
	default:
		return nil
	}

	half := max(m.layout.ContentHeight(0)/4, 1)
	moved := false
	switch action {
	case ActionMoveDown:
		moved = list.Move(count)
	case ActionMoveUp:
		moved = list.Move(-count)
	case ActionHalfPageDown:
		moved = list.Move(half)
	case ActionHalfPageUp:
		moved = list.Move(-half)
	case ActionGoToTop:
		moved = list.Top()
	case ActionGoToBottom:
		moved = list.Bottom()
	case ActionSelect, ActionToggleFold:
		return m.selectItem(action)
	case ActionBranchMenu:
		if s.Focus == PaneBranches {
			if b, ok := s.Branches.Selected(); ok {
				s.Wizard = wizards.NewBranchWizard(s.Ctx, s.RepoRoot, b)
			}
		}
		return nil
	}
	if !moved {
		return nil
	}
	if s.Focus == PaneFiles {
		m.selectFile()
		return nil
	}
	return m.followFocus()
}

func (m Program) selectItem(action KeyAction) tea.Cmd {
	s := m.state
	switch s.Focus {
	case PaneFiles:
		e, ok := s.FileTree.Selected()
		if !ok {
			return nil
		}
		if e.IsDir() {
			s.FileTree.Toggle()
			m.selectFile()
			return nil
		}
		if action == ActionSelect {
			m.selectFile()
			s.Focus = PaneDiff
		}
	case PaneBranches:
		if action != ActionSelect {
			return nil
		}
		if b, ok := s.Branches.Selected(); ok {
			return m.setBase(b.Name, b.IsHead)
		}
	}
	return nil
}

func (m Program) cycleFocus(forward bool) {
	s := m.state
	i := 0
	for j, p := range paneOrder {
		if p == s.Focus {
			i = j
		}
	}
	n := len(paneOrder)
	if forward {
		i = (i + 1) % n
	} else {
		i = (i - 1 + n) % n
	}
	s.Focus = paneOrder[i]
}

func (m Program) openEditor() tea.Cmd {
	s := m.state
	f := s.SelectedFile()
	if f == nil {
		s.StatusBar.SetMessage("No file selected")
		return nil
	}
	if f.Status == diffview.StatusDeleted {
		s.StatusBar.SetMessage("File was deleted: " + f.Path)
		return nil
	}
	s.Logger.Info("opening editor", zap.String("editor", s.Prefs.Editor), zap.String("path", f.Path))
	return openEditor(s.Prefs.Editor, s.RepoRoot, f.Path)
}

func (m Program) quit() tea.Cmd {
	m.state.stopHighlight()
	return tea.Quit
}

// diffHeight is the number of diff rows on screen; the last content row
// holds the diff status line.
func (m Program) diffHeight() int {
	return max(m.layout.ContentHeight(len(m.overlayLines()))-1, 1)
}

// relayout pushes the current geometry into the components.
func (m Program) relayout() {
	s := m.state
	s.StatusBar.SetKeyBuffer(m.keyHandler.KeyBuffer())
	if s.Width == 0 || s.Height == 0 {
		return
	}
	m.layout.SetSize(s.Width, s.Height)
	s.Cursor.SetViewHeight(m.diffHeight())
	s.Cursor.SetViewWidth(components.BodyWidth(m.layout.RightWidth()))
	s.Help.SetSize(s.Width, m.layout.ContentHeight(0), s.Theme)
	m.extendHighlight()
}

func (m Program) overlayLines() []string {
	s := m.state
	w := s.Width
	th := s.Theme
	var lines []string
	if s.Wizard != nil {
		lines = append(lines, s.Wizard.RenderOverlay(w, th)...)
	}
	if s.ErrDialog != "" {
		lines = append(lines,
			th.DividerText(strings.Repeat("─", w)),
			th.Style().Bold(true).Foreground(th.DelColor).Render("Error")+th.MutedText("  (press any key)"))
		lines = append(lines, ansi.Wrap(s.ErrDialog, max(w-2, 1))...)
	}
	if s.Search.IsActive() || s.Search.Query() != "" {
		lines = append(lines, s.Search.View(w, th.AccentColor))
	}
	return lines
}

func (m Program) View() string {
	s := m.state
	if s.Width == 0 || s.Height == 0 {
		return "Loading..."
	}
	th := s.Theme
	header := components.Header{Branch: s.Branch, Base: s.Base}.Render(s.Width, th)
	bottom := s.StatusBar.Render(s.Width, th)

	if s.ShowHelp {
		body := lipgloss.Place(s.Width, m.layout.ContentHeight(0), lipgloss.Center, lipgloss.Center, s.Help.View(th))
		return m.layout.RenderFrame(header, nil, nil, strings.Split(body, "\n"), bottom, th)
	}

	overlay := m.overlayLines()
	height := m.layout.ContentHeight(len(overlay))
	left := m.leftColumn(m.layout.LeftWidth(), height)
	right := m.mainPane(m.layout.RightWidth(), height)
	return m.layout.RenderFrame(header, left, right, overlay, bottom, th)
}

func (m Program) marker(origin search.Origin) components.Marker {
	s := m.state
	return func(i int) (bool, bool) {
		if !s.Search.IsMatch(origin, i) {
			return false, false
		}
		cur, ok := s.Search.Current()
		return true, ok && cur.Index == i
	}
}

func (m Program) leftColumn(width, height int) []string {
	s := m.state
	th := s.Theme
	fh, bh, rh := m.layout.LeftSections(height)
	lines := s.FileTree.Render(width, fh, s.Focus == PaneFiles, th, m.marker(search.OriginTree))
	lines = append(lines, s.Branches.Render(width, bh, s.Focus == PaneBranches, th, m.marker(search.OriginBranch))...)
	return append(lines, s.Reflog.Render(width, rh, s.Focus == PaneReflog, th, m.marker(search.OriginReflog))...)
}

func (m Program) mainPane(width, height int) []string {
	s := m.state
	th := s.Theme
	if s.Focus.showsLog() {
		return s.Commits.Render(width, height, s.Focus == PaneLog, th, m.marker(search.OriginCommit))
	}
	frame := components.DiffFrame{
		File:    s.SelectedFile(),
		Left:    s.Left,
		Right:   s.Right,
		Colors:  s.Highlight,
		Engine:  s.Cursor,
		Search:  s.Search,
		Focused: s.Focus == PaneDiff,
	}
	lines := s.DiffPane.Render(frame, width, max(height-1, 0), th)
	showCmd := s.Cursor.Pending()
	if n := s.Cursor.Count(); n > 0 {
		showCmd = strconv.Itoa(n) + showCmd
	}
	cur := s.Cursor.Cursor()
	status := components.DiffStatus{
		Mode:     s.Cursor.Mode(),
		FileType: s.FileType,
		Side:     s.Cursor.Side(),
		ShowCmd:  showCmd,
		Row:      cur.Row,
		Col:      cur.Col,
		Percent:  s.Cursor.ScrollPercent(),
	}
	return append(lines, status.Render(width, th))
}
