package gitx

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sort"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
	"golang.org/x/sync/errgroup"

	"github.com/interpretive-systems/vig/internal/diffview"
)

// untrackedWorkers bounds the concurrent diffs of untracked files.
const untrackedWorkers = 8

var diffArgs = []string{"diff", "--no-color", "--no-ext-diff", "--src-prefix=a/", "--dst-prefix=b/"}

// Sum fingerprints the raw patches of a Snapshot.
type Sum [sha256.Size]byte

// Snapshot is the diff of the working tree at one point in time. Two
// snapshots with the same Sum have the same Files.
type Snapshot struct {
	Files []diffview.FileEntry
	Sum   Sum
}

// Diff compares the working tree, index included, against base and returns
// one entry per changed file, untracked files included, sorted by path. An
// empty base means HEAD, or the empty tree when there are no commits yet.
func Diff(ctx context.Context, root, base string) ([]diffview.FileEntry, error) {
	snap, err := Load(ctx, root, base)
	return snap.Files, err
}

// Load is Diff plus a fingerprint of the patches, so callers can skip
// reprocessing an unchanged tree without comparing entries.
func Load(ctx context.Context, root, base string) (Snapshot, error) {
	target, err := diffTarget(ctx, root, base)
	if err != nil {
		return Snapshot{}, err
	}
	out, err := run(ctx, root, append(diffArgs, "-M", target, "--")...)
	if err != nil {
		return Snapshot{}, err
	}
	files, err := ParsePatch(out, false)
	if err != nil {
		return Snapshot{}, err
	}

	h := sha256.New()
	h.Write(out)
	untracked, err := diffUntracked(ctx, root, h)
	if err != nil {
		return Snapshot{}, err
	}
	files = append(files, untracked...)
	sort.SliceStable(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	snap := Snapshot{Files: files}
	h.Sum(snap.Sum[:0])
	return snap, nil
}

func diffTarget(ctx context.Context, root, base string) (string, error) {
	if base == "" || base == "HEAD" {
		if id, err := resolve(ctx, root, "HEAD"); err == nil {
			return id, nil
		}
		if base == "" {
			return emptyTree, nil
		}
	}
	return resolve(ctx, root, base)
}

// diffUntracked diffs every untracked file and writes the patches to sum in
// path order.
func diffUntracked(ctx context.Context, root string, sum io.Writer) ([]diffview.FileEntry, error) {
	out, err := run(ctx, root, "ls-files", "-z", "--others", "--exclude-standard")
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, p := range strings.Split(string(out), "\x00") {
		if p != "" {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		return nil, nil
	}

	results := make([][]diffview.FileEntry, len(paths))
	patches := make([][]byte, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(untrackedWorkers)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			patch, err := noIndexDiff(ctx, root, p)
			if err != nil {
				return err
			}
			files, err := ParsePatch(patch, true)
			if err != nil {
				return fmt.Errorf("%s: %w", p, err)
			}
			results[i] = files
			patches[i] = patch
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var files []diffview.FileEntry
	for i, r := range results {
		sum.Write(patches[i])
		files = append(files, r...)
	}
	return files, nil
}

// noIndexDiff diffs an untracked file against /dev/null. git exits 1 when
// the inputs differ, which is always the case here.
func noIndexDiff(ctx context.Context, root, path string) ([]byte, error) {
	args := append([]string{"-C", root}, diffArgs...)
	args = append(args, "--no-index", "--", "/dev/null", path)
	cmd := exec.CommandContext(ctx, "git", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	var exit *exec.ExitError
	if err != nil && !(errors.As(err, &exit) && exit.ExitCode() == 1) {
		return nil, fmt.Errorf("git diff --no-index %s: %w: %s", path, err, strings.TrimSpace(stderr.String()))
	}
	return out, nil
}

// ParsePatch turns a git patch into file entries with aligned hunks.
// untracked marks every file as StatusUntracked.
func ParsePatch(patch []byte, untracked bool) ([]diffview.FileEntry, error) {
	files, _, err := gitdiff.Parse(bytes.NewReader(patch))
	if err != nil {
		return nil, fmt.Errorf("parse diff: %w", err)
	}
	out := make([]diffview.FileEntry, 0, len(files))
	for _, f := range files {
		out = append(out, fileEntry(f, untracked))
	}
	return out, nil
}

func fileEntry(f *gitdiff.File, untracked bool) diffview.FileEntry {
	e := diffview.FileEntry{Path: f.NewName, IsBinary: f.IsBinary}
	switch {
	case untracked:
		e.Status = diffview.StatusUntracked
	case f.IsNew:
		e.Status = diffview.StatusAdded
	case f.IsDelete:
		e.Status = diffview.StatusDeleted
		e.Path = f.OldName
	case f.IsRename:
		e.Status = diffview.StatusRenamed
		e.OldPath = f.OldName
	default:
		e.Status = diffview.StatusModified
	}
	if e.Path == "" {
		e.Path = f.OldName
	}
	for _, frag := range f.TextFragments {
		e.Hunks = append(e.Hunks, alignFragment(frag))
	}
	return e
}

func alignFragment(frag *gitdiff.TextFragment) diffview.Hunk {
	oldNo, newNo := int(frag.OldPosition), int(frag.NewPosition)
	raw := make([]diffview.RawLine, 0, len(frag.Lines))
	for _, l := range frag.Lines {
		switch l.Op {
		case gitdiff.OpContext:
			raw = append(raw, diffview.RawLine{Origin: diffview.OriginContext, OldNumber: oldNo, NewNumber: newNo, Content: l.Line})
			oldNo++
			newNo++
		case gitdiff.OpDelete:
			raw = append(raw, diffview.RawLine{Origin: diffview.OriginDelete, OldNumber: oldNo, Content: l.Line})
			oldNo++
		case gitdiff.OpAdd:
			raw = append(raw, diffview.RawLine{Origin: diffview.OriginAdd, NewNumber: newNo, Content: l.Line})
			newNo++
		}
	}
	return diffview.Align(strings.TrimSpace(frag.Header()), raw)
}
