package gitx

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

// fieldSep separates fields in the formats passed to git.
const fieldSep = "\x1f"

// BranchInfo is a local branch.
type BranchInfo struct {
	Name   string
	IsHead bool
}

// CommitInfo is one entry of a commit log.
type CommitInfo struct {
	ShortHash string
	Author    string
	Date      string
	Message   string
}

// ReflogEntry is one movement of HEAD.
type ReflogEntry struct {
	ShortHash string
	FullHash  string
	Selector  string
	Action    string
	Message   string
}

// Branches lists local branches, the checked out one first, the rest by
// name.
func Branches(ctx context.Context, root string) ([]BranchInfo, error) {
	out, err := run(ctx, root, "for-each-ref", "--format=%(HEAD)"+fieldSep+"%(refname:short)", "refs/heads/")
	if err != nil {
		return nil, err
	}
	var branches []BranchInfo
	for _, l := range lines(out) {
		head, name, ok := strings.Cut(l, fieldSep)
		if !ok || name == "" {
			continue
		}
		branches = append(branches, BranchInfo{Name: name, IsHead: head == "*"})
	}
	sort.SliceStable(branches, func(i, j int) bool {
		if branches[i].IsHead != branches[j].IsHead {
			return branches[i].IsHead
		}
		return branches[i].Name < branches[j].Name
	})
	return branches, nil
}

// Log returns up to limit commits reachable from ref, newest first. A ref
// that does not resolve yields an empty log.
func Log(ctx context.Context, root, ref string, limit int) ([]CommitInfo, error) {
	if ref == "" {
		ref = "HEAD"
	}
	if _, err := resolve(ctx, root, ref); err != nil {
		return nil, nil
	}
	format := strings.Join([]string{"%h", "%an", "%ad", "%s"}, fieldSep)
	out, err := run(ctx, root, "log", "--date=short", "--format="+format, "-n", strconv.Itoa(limit), ref, "--")
	if err != nil {
		return nil, err
	}
	var commits []CommitInfo
	for _, l := range lines(out) {
		f := strings.SplitN(l, fieldSep, 4)
		if len(f) != 4 {
			continue
		}
		commits = append(commits, CommitInfo{ShortHash: f[0], Author: f[1], Date: f[2], Message: f[3]})
	}
	return commits, nil
}

// Reflog returns up to limit entries of HEAD's reflog, newest first. The
// subject "checkout: moving from a to b" splits into action and message.
func Reflog(ctx context.Context, root string, limit int) ([]ReflogEntry, error) {
	if _, err := resolve(ctx, root, "HEAD"); err != nil {
		return nil, nil
	}
	format := strings.Join([]string{"%H", "%gd", "%gs"}, fieldSep)
	out, err := run(ctx, root, "reflog", "show", "--format="+format, "-n", strconv.Itoa(limit), "HEAD", "--")
	if err != nil {
		return nil, err
	}
	var entries []ReflogEntry
	for _, l := range lines(out) {
		f := strings.SplitN(l, fieldSep, 3)
		if len(f) != 3 {
			continue
		}
		action, msg, ok := strings.Cut(f[2], ": ")
		if !ok {
			action, msg = f[2], f[2]
		}
		entries = append(entries, ReflogEntry{
			ShortHash: f[0][:min(7, len(f[0]))],
			FullHash:  f[0],
			Selector:  f[1],
			Action:    action,
			Message:   msg,
		})
	}
	return entries, nil
}

// Sidebar is everything the side panes show besides the file tree.
type Sidebar struct {
	Branch     string
	LastCommit string
	Branches   []BranchInfo
	Commits    []CommitInfo
	Reflog     []ReflogEntry
}

// LoadSidebar reads the branch list, the log of logRef and the reflog
// concurrently.
func LoadSidebar(ctx context.Context, root, logRef string, limit int) (Sidebar, error) {
	var s Sidebar
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.Branch = CurrentBranch(ctx, root)
		s.LastCommit, _ = LastCommitSummary(ctx, root)
		return nil
	})
	g.Go(func() error {
		var err error
		s.Branches, err = Branches(ctx, root)
		return err
	})
	g.Go(func() error {
		var err error
		s.Commits, err = Log(ctx, root, logRef, limit)
		return err
	})
	g.Go(func() error {
		var err error
		s.Reflog, err = Reflog(ctx, root, limit)
		return err
	})
	if err := g.Wait(); err != nil {
		return Sidebar{}, err
	}
	return s, nil
}
