package tui

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/interpretive-systems/vig/internal/clipboard"
	"github.com/interpretive-systems/vig/internal/cursor"
	"github.com/interpretive-systems/vig/internal/diffview"
	"github.com/interpretive-systems/vig/internal/gitx"
	"github.com/interpretive-systems/vig/internal/highlight"
	"github.com/interpretive-systems/vig/internal/prefs"
	"github.com/interpretive-systems/vig/internal/theme"
	"github.com/interpretive-systems/vig/internal/tui/components"
	"github.com/interpretive-systems/vig/internal/tui/search"
	"github.com/interpretive-systems/vig/internal/tui/wizards"
	"github.com/interpretive-systems/vig/internal/watch"
)

// Pane identifies the focused pane.
type Pane int

const (
	PaneFiles Pane = iota
	PaneDiff
	PaneBranches
	PaneLog
	PaneReflog
)

var paneOrder = []Pane{PaneFiles, PaneDiff, PaneBranches, PaneLog, PaneReflog}

func (p Pane) String() string {
	switch p {
	case PaneDiff:
		return "diff"
	case PaneBranches:
		return "branches"
	case PaneLog:
		return "log"
	case PaneReflog:
		return "reflog"
	default:
		return "files"
	}
}

// showsLog reports whether the main pane shows the commit log while p is
// focused.
func (p Pane) showsLog() bool {
	return p == PaneBranches || p == PaneLog || p == PaneReflog
}

// searchOrigin maps a pane to the corpus a search typed in it runs over.
func (p Pane) searchOrigin() search.Origin {
	switch p {
	case PaneDiff:
		return search.OriginDiff
	case PaneBranches:
		return search.OriginBranch
	case PaneLog:
		return search.OriginCommit
	case PaneReflog:
		return search.OriginReflog
	default:
		return search.OriginTree
	}
}

// State holds all application state.
type State struct {
	Ctx      context.Context
	RepoRoot string
	Prefs    prefs.Prefs
	Logger   *zap.Logger
	Theme    theme.Theme

	// Repository
	Base        string
	Branch      string
	LastCommit  string
	Files       []diffview.FileEntry
	DiffSum     gitx.Sum
	Stats       diffview.Stats
	Epoch       uint64
	LogRef      string
	LastRefresh time.Time

	// UI State
	Width     int
	Height    int
	Focus     Pane
	ShowHelp  bool
	ErrDialog string
	Wizard    wizards.Wizard

	// Components
	FileTree  *components.FileTree
	Branches  *components.BranchList
	Commits   *components.CommitLog
	Reflog    *components.ReflogList
	DiffPane  *components.DiffPane
	StatusBar *components.StatusBar
	Help      *components.Help

	// Diff engine
	Cursor         *cursor.Engine
	Search         *search.Engine
	Projector      *diffview.Projector
	Highlighter    *highlight.Highlighter
	HighlightStore *highlight.Store
	Highlight      *highlight.Cache
	CurrentPath    string
	FileType       string
	Left           diffview.Content
	Right          diffview.Content

	// Background work
	Watcher         *watch.Watcher
	HighlightEpoch  uint64
	cancelHighlight context.CancelFunc
}

// Options configure a Program.
type Options struct {
	RepoRoot  string
	Prefs     prefs.Prefs
	Logger    *zap.Logger
	Clipboard cursor.Clipboard
	Theme     *theme.Theme
	// Watcher reports working tree changes. Without one the diff is polled
	// every Prefs.Poll.
	Watcher *watch.Watcher
}

// NewState creates initial application state.
func NewState(ctx context.Context, opts Options) *State {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cb := opts.Clipboard
	if cb == nil {
		cb = clipboard.System{}
	}
	th := theme.FromPrefs(opts.Prefs)
	if opts.Theme != nil {
		th = *opts.Theme
	}
	branches := components.NewBranchList()
	branches.SetBase(opts.Prefs.Base)

	return &State{
		Ctx:            ctx,
		RepoRoot:       opts.RepoRoot,
		Prefs:          opts.Prefs,
		Logger:         logger,
		Theme:          th,
		Base:           opts.Prefs.Base,
		Epoch:          1,
		FileTree:       components.NewFileTree(),
		Branches:       branches,
		Commits:        components.NewCommitLog(),
		Reflog:         components.NewReflogList(),
		DiffPane:       components.NewDiffPane(),
		StatusBar:      components.NewStatusBar(),
		Help:           components.NewHelp(),
		Cursor:         cursor.New(cb),
		Search:         search.New(),
		Projector:      diffview.NewProjector(),
		Highlighter:    highlight.New(opts.Prefs.SyntaxStyle, logger),
		HighlightStore: highlight.NewStore(highlight.DefaultStoreSize),
		Watcher:        opts.Watcher,
	}
}

// SelectedFile returns the file shown in the diff pane.
func (s *State) SelectedFile() *diffview.FileEntry {
	for i := range s.Files {
		if s.Files[i].Path == s.CurrentPath {
			return &s.Files[i]
		}
	}
	return nil
}
