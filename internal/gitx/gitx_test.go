package gitx

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interpretive-systems/vig/internal/diffview"
)

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	mustRun(t, dir, "git", "-c", "init.defaultBranch=main", "init", "-q")
	mustRun(t, dir, "git", "config", "user.email", "test@example.com")
	mustRun(t, dir, "git", "config", "user.name", "Test User")
	mustRun(t, dir, "git", "config", "commit.gpgsign", "false")
	return dir
}

func commitAll(t *testing.T, dir, msg string) {
	t.Helper()
	mustRun(t, dir, "git", "add", "-A")
	mustRun(t, dir, "git", "commit", "-q", "-m", msg)
}

func byPath(files []diffview.FileEntry) map[string]diffview.FileEntry {
	m := make(map[string]diffview.FileEntry, len(files))
	for _, f := range files {
		m[f.Path] = f
	}
	return m
}

func TestRepoRoot(t *testing.T) {
	dir := initRepo(t)
	sub := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	root, err := RepoRoot(sub)
	require.NoError(t, err)
	want, _ := filepath.EvalSymlinks(dir)
	got, _ := filepath.EvalSymlinks(root)
	assert.Equal(t, want, got)

	_, err = RepoRoot(t.TempDir())
	assert.Error(t, err)
}

func TestDiff_WorkingTree(t *testing.T) {
	ctx := context.Background()
	dir := initRepo(t)
	write(t, filepath.Join(dir, "f1.txt"), "one\nold line\nthree\n")
	write(t, filepath.Join(dir, "del.txt"), "to delete\n")
	write(t, filepath.Join(dir, "move.txt"), "a\nb\nc\nd\ne\nf\n")
	commitAll(t, dir, "init")

	write(t, filepath.Join(dir, "f1.txt"), "one\nnew line\nthree\n")
	write(t, filepath.Join(dir, "new.txt"), "brand new\n")
	require.NoError(t, os.Remove(filepath.Join(dir, "del.txt")))
	mustRun(t, dir, "git", "mv", "move.txt", "moved.txt")
	write(t, filepath.Join(dir, "staged.txt"), "staged\n")
	mustRun(t, dir, "git", "add", "staged.txt")

	files, err := Diff(ctx, dir, "")
	require.NoError(t, err)
	for i := 1; i < len(files); i++ {
		assert.Less(t, files[i-1].Path, files[i].Path)
	}
	m := byPath(files)

	f1 := m["f1.txt"]
	assert.Equal(t, diffview.StatusModified, f1.Status)
	require.Len(t, f1.Hunks, 1)
	var changed []diffview.Row
	for _, r := range f1.Hunks[0].Rows {
		if r.Kind != diffview.RowContext {
			changed = append(changed, r)
		}
	}
	require.Len(t, changed, 1)
	assert.Equal(t, diffview.RowDeleted, changed[0].Kind)
	assert.Equal(t, "old line", changed[0].Left.Content)
	assert.Equal(t, "new line", changed[0].Right.Content)
	assert.Equal(t, 2, changed[0].Right.Number)
	assert.True(t, strings.HasPrefix(f1.Hunks[0].Header, "@@ -1,3 +1,3 @@"))

	assert.Equal(t, diffview.StatusUntracked, m["new.txt"].Status)
	assert.Equal(t, diffview.StatusDeleted, m["del.txt"].Status)
	assert.Equal(t, diffview.StatusAdded, m["staged.txt"].Status)
	assert.Equal(t, diffview.StatusRenamed, m["moved.txt"].Status)
	assert.Equal(t, "move.txt", m["moved.txt"].OldPath)

	stats := diffview.ComputeStats(files)
	assert.Equal(t, 3, stats.Additions)
	assert.Equal(t, 2, stats.Deletions)

	commitAll(t, dir, "second")
	files, err = Diff(ctx, dir, "")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDiff_AgainstBranch(t *testing.T) {
	ctx := context.Background()
	dir := initRepo(t)
	write(t, filepath.Join(dir, "a.txt"), "v1\n")
	commitAll(t, dir, "one")
	mustRun(t, dir, "git", "branch", "base")
	write(t, filepath.Join(dir, "a.txt"), "v2\n")
	commitAll(t, dir, "two")

	files, err := Diff(ctx, dir, "")
	require.NoError(t, err)
	assert.Empty(t, files)

	files, err = Diff(ctx, dir, "base")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "a.txt", files[0].Path)

	_, err = Diff(ctx, dir, "no-such-branch")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnresolvedRef))
}

func TestLoad_SumTracksContent(t *testing.T) {
	ctx := context.Background()
	dir := initRepo(t)
	write(t, filepath.Join(dir, "a.txt"), "v1\n")
	commitAll(t, dir, "one")

	clean, err := Load(ctx, dir, "")
	require.NoError(t, err)

	write(t, filepath.Join(dir, "a.txt"), "v2\n")
	first, err := Load(ctx, dir, "")
	require.NoError(t, err)
	again, err := Load(ctx, dir, "")
	require.NoError(t, err)
	assert.Equal(t, first.Sum, again.Sum)
	assert.NotEqual(t, clean.Sum, first.Sum)
	assert.Equal(t, first.Files, again.Files)

	write(t, filepath.Join(dir, "new.txt"), "untracked\n")
	withUntracked, err := Load(ctx, dir, "")
	require.NoError(t, err)
	assert.NotEqual(t, first.Sum, withUntracked.Sum)

	write(t, filepath.Join(dir, "new.txt"), "edited\n")
	edited, err := Load(ctx, dir, "")
	require.NoError(t, err)
	assert.NotEqual(t, withUntracked.Sum, edited.Sum)
}

func TestDiff_NoCommits(t *testing.T) {
	ctx := context.Background()
	dir := initRepo(t)
	write(t, filepath.Join(dir, "added.txt"), "x\n")
	mustRun(t, dir, "git", "add", "added.txt")
	write(t, filepath.Join(dir, "sub", "loose.txt"), "y\n")

	files, err := Diff(ctx, dir, "")
	require.NoError(t, err)
	m := byPath(files)
	assert.Equal(t, diffview.StatusAdded, m["added.txt"].Status)
	assert.Equal(t, diffview.StatusUntracked, m["sub/loose.txt"].Status)
	require.Len(t, m["sub/loose.txt"].Hunks, 1)
	assert.Equal(t, "y", m["sub/loose.txt"].Hunks[0].Rows[0].Right.Content)

	assert.Equal(t, "main", CurrentBranch(ctx, dir))
}

func TestDiff_Binary(t *testing.T) {
	ctx := context.Background()
	dir := initRepo(t)
	write(t, filepath.Join(dir, "blob.bin"), "\x00\x01\x02")
	commitAll(t, dir, "init")
	write(t, filepath.Join(dir, "blob.bin"), "\x00\x03\x04\x05")

	files, err := Diff(ctx, dir, "")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.True(t, files[0].IsBinary)
	assert.Empty(t, files[0].Hunks)
}

func TestParsePatch(t *testing.T) {
	patch := `diff --git a/x.go b/x.go
index 1111111..2222222 100644
--- a/x.go
+++ b/x.go
@@ -10,4 +10,4 @@ func main() {
 	a := 1
-	b := 2
-	c := 3
+	b := 20
 	d := 4
+	e := 5
`
	files, err := ParsePatch([]byte(patch), false)
	require.NoError(t, err)
	require.Len(t, files, 1)
	h := files[0].Hunks[0]
	assert.Equal(t, "@@ -10,4 +10,4 @@ func main() {", h.Header)
	require.Len(t, h.Rows, 5)

	assert.Equal(t, diffview.RowContext, h.Rows[0].Kind)
	assert.Equal(t, 10, h.Rows[0].Left.Number)
	assert.Equal(t, diffview.RowDeleted, h.Rows[1].Kind)
	assert.Equal(t, "\tb := 20", h.Rows[1].Right.Content)
	assert.Equal(t, diffview.RowDeleted, h.Rows[2].Kind)
	assert.Nil(t, h.Rows[2].Right)
	assert.Equal(t, 12, h.Rows[2].Left.Number)
	assert.Equal(t, 12, h.Rows[3].Right.Number)
	assert.Equal(t, diffview.RowAdded, h.Rows[4].Kind)
	assert.Equal(t, 13, h.Rows[4].Right.Number)
}

func TestBranchesLogAndReflog(t *testing.T) {
	ctx := context.Background()
	dir := initRepo(t)

	branches, err := Branches(ctx, dir)
	require.NoError(t, err)
	assert.Empty(t, branches)
	commits, err := Log(ctx, dir, "HEAD", 10)
	require.NoError(t, err)
	assert.Empty(t, commits)

	write(t, filepath.Join(dir, "f.txt"), "1\n")
	commitAll(t, dir, "first commit")
	write(t, filepath.Join(dir, "f.txt"), "2\n")
	commitAll(t, dir, "second commit")
	mustRun(t, dir, "git", "branch", "zeta")
	mustRun(t, dir, "git", "branch", "alpha")

	branches, err = Branches(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, []BranchInfo{{Name: "main", IsHead: true}, {Name: "alpha"}, {Name: "zeta"}}, branches)

	commits, err = Log(ctx, dir, "HEAD", 1)
	require.NoError(t, err)
	require.Len(t, commits, 1)
	assert.Equal(t, "second commit", commits[0].Message)
	assert.Equal(t, "Test User", commits[0].Author)
	assert.Len(t, commits[0].Date, len("2006-01-02"))

	require.NoError(t, SwitchBranch(ctx, dir, "alpha"))
	assert.Equal(t, "alpha", CurrentBranch(ctx, dir))

	reflog, err := Reflog(ctx, dir, 10)
	require.NoError(t, err)
	require.Len(t, reflog, 3)
	assert.Equal(t, "HEAD@{0}", reflog[0].Selector)
	assert.Equal(t, "checkout", reflog[0].Action)
	assert.Equal(t, "moving from main to alpha", reflog[0].Message)
	assert.Equal(t, "commit", reflog[1].Action)
	assert.Equal(t, "second commit", reflog[1].Message)
	assert.Len(t, reflog[0].ShortHash, 7)
	assert.True(t, strings.HasPrefix(reflog[0].FullHash, reflog[0].ShortHash))

	require.NoError(t, DeleteBranch(ctx, dir, "zeta"))
	assert.Error(t, DeleteBranch(ctx, dir, "alpha"), "the checked out branch cannot be deleted")

	summary, err := LastCommitSummary(ctx, dir)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(summary, " second commit"))
}

func TestLoadSidebar(t *testing.T) {
	ctx := context.Background()
	dir := initRepo(t)
	write(t, filepath.Join(dir, "f.txt"), "1\n")
	commitAll(t, dir, "only commit")

	s, err := LoadSidebar(ctx, dir, "main", 50)
	require.NoError(t, err)
	assert.Equal(t, "main", s.Branch)
	assert.Contains(t, s.LastCommit, "only commit")
	assert.Len(t, s.Branches, 1)
	assert.Len(t, s.Commits, 1)
	assert.Len(t, s.Reflog, 1)
}

func mustRun(t *testing.T, dir string, name string, args ...string) {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("command %s %v failed: %v\n%s", name, args, err, out)
	}
}

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
