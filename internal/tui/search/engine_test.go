package search

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interpretive-systems/vig/internal/diffview"
)

func diffCorpus() DiffCorpus {
	return DiffCorpus{
		Left:  []string{"@@ -1,2 +1,2 @@", "Foo foo", "bar"},
		Right: []string{"@@ -1,2 +1,2 @@", "fOO", "bar foo"},
	}
}

func TestDiffCorpus_OrderAndColumns(t *testing.T) {
	got := diffCorpus().Find("foo")
	want := []Match{
		{Origin: OriginDiff, Index: 1, Side: diffview.SideLeft, ColStart: 0, ColEnd: 3},
		{Origin: OriginDiff, Index: 1, Side: diffview.SideLeft, ColStart: 4, ColEnd: 7},
		{Origin: OriginDiff, Index: 1, Side: diffview.SideRight, ColStart: 0, ColEnd: 3},
		{Origin: OriginDiff, Index: 2, Side: diffview.SideRight, ColStart: 4, ColEnd: 7},
	}
	assert.Equal(t, want, got)
}

func TestFindRanges_NonOverlapping(t *testing.T) {
	assert.Equal(t, []Range{{0, 2}, {2, 4}}, findRanges("aaaaa", fold("aa")))
	assert.Equal(t, []Range{{2, 4}}, findRanges("GRÖSSE", fold("öS")))
	assert.Nil(t, findRanges("ab", fold("abc")))
	assert.Nil(t, findRanges("abc", nil))
}

func TestListCorpus(t *testing.T) {
	c := ListCorpus{Kind: OriginBranch, Items: []string{"main", "feature/Login", "fix-login"}}
	got := c.Find("LOGIN")
	require.Len(t, got, 2)
	assert.Equal(t, Match{Origin: OriginBranch, Index: 1}, got[0])
	assert.Equal(t, 2, got[1].Index)
	assert.Empty(t, c.Find(""))
}

func TestJumpIsCyclic(t *testing.T) {
	e := New()
	c := diffCorpus()
	n := e.Execute("foo", c)
	require.Equal(t, 4, n)

	start := e.Index()
	for i := 0; i < n; i++ {
		_, ok := e.Jump(true, c)
		require.True(t, ok)
	}
	assert.Equal(t, start, e.Index())

	e.Jump(true, c)
	e.Jump(false, c)
	assert.Equal(t, start, e.Index())

	m, ok := e.Jump(false, c)
	require.True(t, ok)
	assert.Equal(t, 3, e.Index(), "backward from the first wraps to the last")
	assert.Equal(t, 2, m.Index)
}

func TestJumpRerunsLastQuery(t *testing.T) {
	e := New()
	c := diffCorpus()
	_, ok := e.Jump(true, c)
	assert.False(t, ok, "nothing to repeat yet")

	e.Execute("bar", c)
	e.Clear()
	assert.Empty(t, e.Query())
	assert.Zero(t, e.Count())
	assert.Equal(t, "bar", e.LastQuery())

	m, ok := e.Jump(true, c)
	require.True(t, ok)
	assert.Equal(t, "bar", e.Query())
	assert.Equal(t, Match{Origin: OriginDiff, Index: 2, Side: diffview.SideLeft, ColStart: 0, ColEnd: 3}, m)

	e.Clear()
	m, ok = e.Jump(false, c)
	require.True(t, ok)
	assert.Equal(t, diffview.SideRight, m.Side)
	assert.Equal(t, 1, e.Index())
}

func TestExecuteRebuildsFromScratch(t *testing.T) {
	e := New()
	c := diffCorpus()
	e.Execute("foo", c)
	e.Jump(true, c)
	e.Jump(true, c)

	assert.Equal(t, 2, e.Execute("bar", c))
	assert.Zero(t, e.Index())
	for _, m := range e.Matches() {
		assert.Equal(t, 3, m.ColEnd-m.ColStart)
	}

	assert.Zero(t, e.Execute("", c))
	assert.Empty(t, e.Query())
	assert.Equal(t, "bar", e.LastQuery())
}

func TestRefreshFollowsSelectedFile(t *testing.T) {
	e := New()
	e.Execute("foo", diffCorpus())

	other := DiffCorpus{Left: []string{"@@ @@"}, Right: []string{"@@ @@", "no match here", "FOO!"}}
	e.Refresh(other)
	require.Equal(t, 1, e.Count())
	assert.Equal(t, 2, e.Matches()[0].Index)

	e.Refresh(ListCorpus{Kind: OriginTree, Items: []string{"foo.go"}})
	assert.Equal(t, 1, e.Count(), "a different pane leaves the diff query alone")
	assert.Equal(t, OriginDiff, e.Origin())

	e.Clear()
	e.Refresh(diffCorpus())
	assert.Zero(t, e.Count())
}

func TestLineHighlights(t *testing.T) {
	e := New()
	c := diffCorpus()
	e.Execute("foo", c)
	e.Jump(true, c)

	hs := e.LineHighlights(diffview.SideLeft, 1)
	require.Len(t, hs, 2)
	assert.False(t, hs[0].Current)
	assert.True(t, hs[1].Current)
	assert.Equal(t, Range{Start: 4, End: 7}, hs[1].Range)

	assert.Nil(t, e.LineHighlights(diffview.SideLeft, 2))
}

func TestIsMatch(t *testing.T) {
	e := New()
	e.Execute("log", ListCorpus{Kind: OriginCommit, Items: []string{"add log", "fix", "Logging"}})
	assert.True(t, e.IsMatch(OriginCommit, 0))
	assert.False(t, e.IsMatch(OriginCommit, 1))
	assert.True(t, e.IsMatch(OriginCommit, 2))
	assert.False(t, e.IsMatch(OriginBranch, 0))
}

func TestHistory(t *testing.T) {
	var h History
	h.Add("one")
	h.Add("two")
	h.Add("two")
	h.Add("")
	assert.Equal(t, []string{"one", "two"}, h.Entries())

	q, ok := h.Prev("dra")
	require.True(t, ok)
	assert.Equal(t, "two", q)
	q, _ = h.Prev("two")
	assert.Equal(t, "one", q)
	_, ok = h.Prev("one")
	assert.False(t, ok)

	q, _ = h.Next()
	assert.Equal(t, "two", q)
	q, ok = h.Next()
	require.True(t, ok)
	assert.Equal(t, "dra", q, "the unsubmitted draft comes back")
	_, ok = h.Next()
	assert.False(t, ok)

	h.Add("one")
	assert.Equal(t, []string{"one", "two", "one"}, h.Entries())
}

func typeText(e *Engine, s string) {
	for _, r := range s {
		e.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestPrompt(t *testing.T) {
	e := New()
	e.Open(OriginDiff)
	require.True(t, e.IsActive())

	typeText(e, "foo")
	assert.Equal(t, "foo", e.Input())
	a, _ := e.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ActionSubmit, a)
	assert.False(t, e.IsActive())

	e.Open(OriginDiff)
	typeText(e, "ba")
	e.HandleKey(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "foo", e.Input())
	e.HandleKey(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "ba", e.Input())

	a, _ = e.HandleKey(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ActionCancel, a)
	assert.Equal(t, []string{"foo"}, e.history.Entries())
}

func TestPromptCancelKeepsActiveQuery(t *testing.T) {
	e := New()
	c := diffCorpus()
	require.Equal(t, 4, e.Execute("foo", c))

	e.Open(OriginTree)
	assert.Equal(t, OriginTree, e.Target())
	a, _ := e.HandleKey(tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, ActionCancel, a)

	assert.Equal(t, "foo", e.Query())
	assert.Equal(t, OriginDiff, e.Origin())
	assert.Equal(t, 4, e.Count())
	assert.False(t, e.IsMatch(OriginTree, 1))
	assert.NotEmpty(t, e.LineHighlights(diffview.SideLeft, 1))

	other := DiffCorpus{Left: []string{"@@ @@"}, Right: []string{"@@ @@", "nothing"}}
	e.Refresh(other)
	assert.Zero(t, e.Count(), "the diff query follows the next file")
}

func TestView(t *testing.T) {
	e := New()
	assert.Empty(t, e.View(40, "#ffffff"))

	e.Execute("foo", diffCorpus())
	assert.Contains(t, e.View(40, "#ffffff"), "/foo  [1/4]")

	e.Execute("zzz", diffCorpus())
	assert.Contains(t, e.View(40, "#ffffff"), "Pattern not found: zzz")
}
