// Package gitx reads what the diff view needs from a repository by running
// the git CLI.
package gitx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrUnresolvedRef is returned when a diff base does not name a commit.
var ErrUnresolvedRef = errors.New("unresolved ref")

// emptyTree is the id of the empty tree, the base of a repository without
// commits.
const emptyTree = "4b825dc642cb6eb9a060e54bf8d69288fbee4904"

// run executes git in root and returns its stdout. Errors carry git's
// stderr.
func run(ctx context.Context, root string, args ...string) ([]byte, error) {
	a := append([]string{"-C", root}, args...)
	cmd := exec.CommandContext(ctx, "git", a...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return out, fmt.Errorf("git %s: %w", args[0], err)
		}
		return out, fmt.Errorf("git %s: %w: %s", args[0], err, msg)
	}
	return out, nil
}

func lines(b []byte) []string {
	s := strings.TrimRight(string(b), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// RepoRoot resolves the repository root containing path, or the current
// directory when path is empty.
func RepoRoot(path string) (string, error) {
	if path == "" {
		path = "."
	}
	out, err := run(context.Background(), path, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("not a git repository: %w", err)
	}
	root := strings.TrimSpace(string(out))
	if root == "" {
		return "", errors.New("empty git root")
	}
	return root, nil
}

// CurrentBranch returns the checked out branch, the short hash when HEAD is
// detached, or "HEAD" in a repository without commits.
func CurrentBranch(ctx context.Context, root string) string {
	if out, err := run(ctx, root, "symbolic-ref", "--quiet", "--short", "HEAD"); err == nil {
		if b := strings.TrimSpace(string(out)); b != "" {
			return b
		}
	}
	if out, err := run(ctx, root, "rev-parse", "--short=7", "HEAD"); err == nil {
		return strings.TrimSpace(string(out))
	}
	return "HEAD"
}

// LastCommitSummary returns the short hash and subject of HEAD.
func LastCommitSummary(ctx context.Context, root string) (string, error) {
	out, err := run(ctx, root, "log", "-1", "--pretty=format:%h %s")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// resolve returns the full id of the commit ref names.
func resolve(ctx context.Context, root, ref string) (string, error) {
	out, err := run(ctx, root, "rev-parse", "--verify", "--quiet", ref+"^{commit}")
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnresolvedRef, ref)
	}
	return strings.TrimSpace(string(out)), nil
}

// SwitchBranch checks out an existing local branch.
func SwitchBranch(ctx context.Context, root, name string) error {
	_, err := run(ctx, root, "switch", name)
	return err
}

// DeleteBranch removes a local branch. Unmerged branches are refused.
func DeleteBranch(ctx context.Context, root, name string) error {
	_, err := run(ctx, root, "branch", "-d", name)
	return err
}
