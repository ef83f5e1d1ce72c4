package cursor

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interpretive-systems/vig/internal/diffview"
)

type fakeClipboard struct {
	text  string
	err   error
	calls int
}

func (f *fakeClipboard) SetText(s string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.text = s
	return nil
}

func newEngine(right ...string) (*Engine, *fakeClipboard) {
	clip := &fakeClipboard{}
	e := New(clip)
	left := make([]string, len(right))
	copy(left, right)
	e.SetLines(left, right)
	e.SetViewHeight(10)
	return e, clip
}

func press(t *testing.T, e *Engine, keys ...string) Signal {
	t.Helper()
	var sig Signal
	for _, k := range keys {
		sig = e.HandleKey(k)
	}
	return sig
}

func at(row, col int) Pos {
	return Pos{Row: row, Col: col, Side: diffview.SideRight}
}

func TestModeTransitions(t *testing.T) {
	e, _ := newEngine("one", "two", "three")
	require.Equal(t, ModeScroll, e.Mode())

	assert.Equal(t, SignalConsumed, press(t, e, "i"))
	assert.Equal(t, ModeNormal, e.Mode())

	press(t, e, "v")
	assert.Equal(t, ModeVisual, e.Mode())
	press(t, e, "V")
	assert.Equal(t, ModeVisualLine, e.Mode())
	press(t, e, "v")
	assert.Equal(t, ModeVisual, e.Mode())
	press(t, e, "v")
	assert.Equal(t, ModeNormal, e.Mode())

	press(t, e, "V", "V")
	assert.Equal(t, ModeNormal, e.Mode())

	press(t, e, "v", "esc")
	assert.Equal(t, ModeNormal, e.Mode())
	press(t, e, "esc")
	assert.Equal(t, ModeScroll, e.Mode())

	assert.Equal(t, SignalQuit, press(t, e, "q"))
	assert.Equal(t, SignalOpenEditor, press(t, e, "e"))
	assert.Equal(t, SignalUnhandled, press(t, e, "/"))

	press(t, e, "i")
	assert.Equal(t, SignalUnhandled, press(t, e, "q"))
	assert.Equal(t, ModeNormal, e.Mode())
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "SCROLL", ModeScroll.String())
	assert.Equal(t, "NORMAL", ModeNormal.String())
	assert.Equal(t, "VISUAL", ModeVisual.String())
	assert.Equal(t, "V-LINE", ModeVisualLine.String())
}

func TestYankLine_ChangedLine(t *testing.T) {
	clip := &fakeClipboard{}
	e := New(clip)
	e.SetLines([]string{"@@ -1 +1 @@", "old line"}, []string{"@@ -1 +1 @@", "new line"})
	e.SetViewHeight(10)

	press(t, e, "i", "j")
	require.Equal(t, at(1, 0), e.Cursor())

	press(t, e, "y", "y")
	assert.Equal(t, "new line", clip.text)
	assert.Equal(t, "1 line yanked", e.Status())
	assert.Equal(t, ModeNormal, e.Mode())
}

func TestCounts(t *testing.T) {
	e, _ := newEngine("0123456789abc", "x", "y", "z", "w")
	press(t, e, "i")

	press(t, e, "1", "0", "l")
	assert.Equal(t, at(0, 10), e.Cursor())
	assert.Zero(t, e.Count())

	press(t, e, "0")
	assert.Equal(t, at(0, 0), e.Cursor(), "a lone 0 goes to line start")

	press(t, e, "9", "9", "l")
	assert.Equal(t, at(0, 12), e.Cursor(), "count clamps to the line")

	press(t, e, "3", "j")
	assert.Equal(t, 3, e.Cursor().Row)
	assert.Equal(t, 0, e.Cursor().Col)

	press(t, e, "5", "0", "k")
	assert.Equal(t, 0, e.Cursor().Row)
	assert.Equal(t, 12, e.Cursor().Col, "remembered column comes back on a long line")

	press(t, e, "2")
	assert.Equal(t, 2, e.Count())
	press(t, e, "esc")
	assert.Zero(t, e.Count())
}

func TestWordMotions(t *testing.T) {
	e, _ := newEngine("foo bar", "", "  baz qux")
	press(t, e, "i")

	steps := []struct {
		key  string
		want Pos
	}{
		{"w", at(0, 4)},
		{"w", at(2, 2)},
		{"w", at(2, 6)},
		{"w", at(2, 8)},
		{"b", at(2, 6)},
		{"b", at(2, 2)},
		{"b", at(0, 4)},
		{"b", at(0, 0)},
		{"b", at(0, 0)},
		{"e", at(0, 2)},
		{"e", at(0, 6)},
		{"e", at(2, 4)},
		{"$", at(2, 8)},
		{"0", at(2, 0)},
	}
	for i, s := range steps {
		press(t, e, s.key)
		assert.Equal(t, s.want, e.Cursor(), "step %d (%s)", i, s.key)
	}

	press(t, e, "g", "g", "2", "w")
	assert.Equal(t, at(2, 2), e.Cursor())
}

func TestVerticalMotionKeepsColumn(t *testing.T) {
	e, _ := newEngine("abcdef", "a", "abcdef", "abc", "abcdefgh")
	press(t, e, "i", "4", "l", "j")
	assert.Equal(t, at(1, 0), e.Cursor())
	press(t, e, "j")
	assert.Equal(t, at(2, 4), e.Cursor())

	press(t, e, "$", "j")
	assert.Equal(t, at(3, 2), e.Cursor())
	press(t, e, "j")
	assert.Equal(t, at(4, 7), e.Cursor(), "$ sticks to the end of line")
}

func TestGotoLine(t *testing.T) {
	lines := make([]string, 50)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	e, _ := newEngine(lines...)
	press(t, e, "i")

	press(t, e, "G")
	assert.Equal(t, 49, e.Cursor().Row)
	assert.Equal(t, 40, e.ScrollY())

	press(t, e, "g", "g")
	assert.Equal(t, 0, e.Cursor().Row)
	assert.Equal(t, 0, e.ScrollY())

	press(t, e, "2", "0", "G")
	assert.Equal(t, 19, e.Cursor().Row)

	press(t, e, "5", "g", "g")
	assert.Equal(t, 4, e.Cursor().Row)

	press(t, e, "g", "x")
	assert.Equal(t, 4, e.Cursor().Row, "an unknown key after g is dropped")
	assert.Empty(t, e.Pending())
}

func TestSwitchSide(t *testing.T) {
	e := New(&fakeClipboard{})
	e.SetLines([]string{"ab", ""}, []string{"abcdef", "xyz"})
	e.SetViewHeight(5)
	press(t, e, "i", "$")
	require.Equal(t, at(0, 5), e.Cursor())

	press(t, e, "ctrl+w")
	assert.Equal(t, "ctrl+w", e.Pending())
	press(t, e, "h")
	assert.Equal(t, Pos{Row: 0, Col: 1, Side: diffview.SideLeft}, e.Cursor())

	press(t, e, "ctrl+w", "l")
	assert.Equal(t, diffview.SideRight, e.Side())

	press(t, e, "esc", "ctrl+w", "h")
	assert.Equal(t, ModeScroll, e.Mode())
	assert.Equal(t, diffview.SideLeft, e.Side())
}

func TestVisualSelectionNormalized(t *testing.T) {
	forward, clipA := newEngine("alpha beta", "gamma delta", "epsilon")
	press(t, forward, "i")
	forward.MoveTo(at(0, 6))
	press(t, forward, "v")
	forward.MoveTo(at(1, 4))
	sel, ok := forward.Selection()
	require.True(t, ok)
	press(t, forward, "y")

	backward, clipB := newEngine("alpha beta", "gamma delta", "epsilon")
	press(t, backward, "i")
	backward.MoveTo(at(1, 4))
	press(t, backward, "v")
	backward.MoveTo(at(0, 6))
	selB, ok := backward.Selection()
	require.True(t, ok)
	press(t, backward, "y")

	assert.Equal(t, sel, selB)
	assert.Equal(t, at(0, 6), sel.Start)
	assert.Equal(t, "beta\ngamma", clipA.text)
	assert.Equal(t, clipA.text, clipB.text)
	assert.Equal(t, ModeNormal, backward.Mode())
	assert.Equal(t, at(0, 6), backward.Cursor(), "yank returns to the selection start")
}

func TestVisualLineYank(t *testing.T) {
	e, clip := newEngine("alpha beta", "gamma delta", "epsilon")
	press(t, e, "i", "j", "V", "k")
	sel, ok := e.Selection()
	require.True(t, ok)
	assert.True(t, sel.Linewise)
	assert.True(t, sel.Contains(1, 100))

	press(t, e, "y")
	assert.Equal(t, "alpha beta\ngamma delta", clip.text)
	assert.Equal(t, "2 lines yanked", e.Status())
	assert.Equal(t, 0, e.Cursor().Row)
}

func TestYankMotions(t *testing.T) {
	cases := []struct {
		keys []string
		want string
	}{
		{[]string{"y", "w"}, "foo "},
		{[]string{"y", "e"}, "foo"},
		{[]string{"y", "$"}, "foo bar"},
		{[]string{"w", "y", "w"}, "bar"},
		{[]string{"w", "y", "0"}, "foo "},
		{[]string{"y", "j"}, "foo bar\nbaz"},
		{[]string{"2", "y", "y"}, "foo bar\nbaz"},
		{[]string{"y", "2", "j"}, "foo bar\nbaz\nqux"},
		{[]string{"G", "y", "g", "g"}, "foo bar\nbaz\nqux"},
	}
	for _, c := range cases {
		t.Run(fmt.Sprint(c.keys), func(t *testing.T) {
			e, clip := newEngine("foo bar", "baz", "qux")
			press(t, e, "i")
			press(t, e, c.keys...)
			assert.Equal(t, c.want, clip.text)
			assert.Empty(t, e.Pending())
		})
	}
}

func TestYankWordAtEndOfContent(t *testing.T) {
	for _, lines := range [][]string{
		{"foo bar"},
		{"foo bar", "", ""},
	} {
		t.Run(fmt.Sprint(len(lines)), func(t *testing.T) {
			e, clip := newEngine(lines...)
			press(t, e, "i", "w", "y", "w")
			assert.Equal(t, "bar", clip.text)
			assert.Equal(t, 1, clip.calls)
			assert.Equal(t, "3 characters yanked", e.Status())
			assert.Equal(t, at(0, 4), e.Cursor())

			press(t, e, "w")
			assert.Equal(t, at(0, 6), e.Cursor(), "w with no later word stops on the last column")
		})
	}
}

func TestTextObjects(t *testing.T) {
	line := `call(foo, "bar baz")`
	cases := []struct {
		keys []string
		want string
	}{
		{[]string{"v", "i", `"`}, "bar baz"},
		{[]string{"v", "a", `"`}, ` "bar baz"`},
		{[]string{"v", "i", "("}, `foo, "bar baz"`},
		{[]string{"v", "a", "b"}, `(foo, "bar baz")`},
		{[]string{"v", "i", "w"}, "bar"},
		{[]string{"v", "a", "w"}, "bar "},
		{[]string{"v", "i", "["}, "a"},
	}
	for _, c := range cases {
		t.Run(fmt.Sprint(c.keys), func(t *testing.T) {
			e, clip := newEngine(line)
			press(t, e, "i")
			e.MoveTo(at(0, 12))
			press(t, e, c.keys...)
			assert.Equal(t, ModeVisual, e.Mode())
			press(t, e, "y")
			assert.Equal(t, c.want, clip.text)
		})
	}
}

func TestTextObjects_AcrossLines(t *testing.T) {
	e, clip := newEngine("func f() {", "\treturn (1)", "}")
	press(t, e, "i")
	e.MoveTo(at(1, 2))

	press(t, e, "v", "i", "{", "y")
	assert.Equal(t, "\treturn (1)", clip.text)

	e.MoveTo(at(1, 2))
	press(t, e, "v", "a", "}", "y")
	assert.Equal(t, "{\n\treturn (1)\n}", clip.text)

	e.MoveTo(at(1, 9))
	press(t, e, "v", "a", "{", "y")
	assert.Equal(t, "{\n\treturn (1)\n}", clip.text, "parens inside the braces are ignored")

	e.MoveTo(at(1, 0))
	press(t, e, "v", "i", "(", "y")
	assert.Equal(t, "\t", clip.text, "no enclosing parens leaves the selection alone")
}

func TestClipboardFailure(t *testing.T) {
	e, clip := newEngine("some text")
	clip.err = errors.New("no display")

	press(t, e, "i", "v", "e", "y")
	assert.Equal(t, "clipboard unavailable: no display", e.Status())
	assert.Equal(t, ModeNormal, e.Mode())
	assert.Equal(t, 1, clip.calls)

	press(t, e, "l")
	assert.Empty(t, e.Status(), "status clears on the next key")

	noClip := New(nil)
	noClip.SetLines([]string{"x"}, []string{"x"})
	press(t, noClip, "i", "y", "y")
	assert.Equal(t, "clipboard unavailable", noClip.Status())
}

func TestScrollMode(t *testing.T) {
	lines := make([]string, 100)
	for i := range lines {
		lines[i] = fmt.Sprintf("%03d", i)
	}
	lines[0] = strings.Repeat("x", 40)
	e, _ := newEngine(lines...)

	assert.Equal(t, "Top", e.ScrollPercent())
	press(t, e, "ctrl+d")
	assert.Equal(t, 5, e.ScrollY())
	press(t, e, "ctrl+u", "ctrl+u")
	assert.Equal(t, 0, e.ScrollY())

	press(t, e, "G")
	assert.Equal(t, 90, e.ScrollY())
	assert.Equal(t, "Bot", e.ScrollPercent())
	press(t, e, "j")
	assert.Equal(t, 90, e.ScrollY())

	press(t, e, "g")
	for i := 0; i < 45; i++ {
		press(t, e, "j")
	}
	assert.Equal(t, "50%", e.ScrollPercent())

	press(t, e, "l", "l")
	assert.Equal(t, 8, e.ScrollX())
	press(t, e, "h", "h", "h")
	assert.Equal(t, 0, e.ScrollX())

	press(t, e, "i")
	assert.Equal(t, at(45, 0), e.Cursor())

	short, _ := newEngine("a", "b")
	assert.Equal(t, "All", short.ScrollPercent())
}

func TestHorizontalScrollFollowsCursor(t *testing.T) {
	long := strings.Repeat("a", 30) + " tail"
	e, _ := newEngine(long, "short")
	e.SetViewWidth(10)

	for i := 0; i < 20; i++ {
		press(t, e, "l")
	}
	assert.Equal(t, len(long)-10, e.ScrollX(), "scroll stops at the widest line")
	press(t, e, "h", "h", "h", "h", "h", "h", "h", "h", "h")
	assert.Equal(t, 0, e.ScrollX())

	press(t, e, "i", "$")
	assert.Equal(t, at(0, len(long)-1), e.Cursor())
	assert.Equal(t, len(long)-10, e.ScrollX())

	press(t, e, "0")
	assert.Equal(t, 0, e.ScrollX())

	press(t, e, "$", "j")
	assert.Equal(t, at(1, 4), e.Cursor())
	assert.Equal(t, 4, e.ScrollX(), "the view scrolls back just far enough")
}

func TestEnterNormalUsesCellOffset(t *testing.T) {
	e, _ := newEngine("日本語のテキストです")
	e.SetViewWidth(6)
	press(t, e, "l")
	require.Equal(t, 4, e.ScrollX())

	press(t, e, "i")
	assert.Equal(t, at(0, 2), e.Cursor(), "cell 4 is the third wide rune")
	assert.Equal(t, 4, e.ScrollX())
}

func TestMoveTo(t *testing.T) {
	lines := make([]string, 40)
	for i := range lines {
		lines[i] = "text"
	}
	e, _ := newEngine(lines...)

	e.MoveTo(Pos{Row: 30, Col: 2, Side: diffview.SideLeft})
	assert.Equal(t, ModeScroll, e.Mode())
	assert.Equal(t, 21, e.ScrollY())
	assert.Equal(t, diffview.SideLeft, e.Side())

	press(t, e, "i")
	e.MoveTo(Pos{Row: 5, Col: 99, Side: diffview.SideRight})
	assert.Equal(t, at(5, 3), e.Cursor())
	assert.Equal(t, 5, e.ScrollY())
}

func TestEmptyContent(t *testing.T) {
	e := New(&fakeClipboard{})
	e.SetLines(nil, nil)
	keys := []string{"j", "G", "i", "j", "w", "b", "e", "$", "0", "y", "y", "v", "i", "(", "y", "V", "y", "ctrl+w", "h", "esc", "esc"}
	for _, k := range keys {
		assert.NotPanics(t, func() { e.HandleKey(k) }, "key %q", k)
	}
	assert.Equal(t, Pos{Side: diffview.SideLeft}, e.Cursor())
}

func TestSetLinesClamps(t *testing.T) {
	e, _ := newEngine("a long line of text", "second", "third")
	press(t, e, "i", "G", "$")
	require.Equal(t, at(2, 4), e.Cursor())

	e.SetLines([]string{"ab"}, []string{"ab"})
	assert.Equal(t, at(0, 1), e.Cursor())
}

func TestCursorStaysInBounds(t *testing.T) {
	buffers := [][]string{
		{},
		{""},
		{"x"},
		{"foo bar", "", "  (baz) \"q\"", "\t{", "}", "über straße"},
		{"@@ -1,3 +1,3 @@", "func main() {", "", "}"},
	}
	keys := []string{
		"h", "j", "k", "l", "w", "b", "e", "0", "$", "g", "G", "v", "V", "o",
		"y", "i", "a", "(", ")", "{", "\"", "esc", "ctrl+w", "3", "7",
		"ctrl+d", "ctrl+u", "ctrl+f", "ctrl+b", "left", "right", "up", "down", "x",
	}

	r := rand.New(rand.NewSource(42))
	for _, right := range buffers {
		left := make([]string, len(right))
		for i := range right {
			left[i] = right[len(right)-1-i]
		}
		e := New(&fakeClipboard{})
		e.SetLines(left, right)
		e.SetViewHeight(1 + r.Intn(4))

		for step := 0; step < 2000; step++ {
			e.HandleKey(keys[r.Intn(len(keys))])
			assertInBounds(t, e, e.Cursor())
			if e.Mode().IsVisual() {
				assertInBounds(t, e, e.Anchor())
			}
			require.GreaterOrEqual(t, e.ScrollY(), 0)
			require.LessOrEqual(t, e.ScrollY(), max(e.Rows()-e.height, 0))
		}
	}
}

func assertInBounds(t *testing.T, e *Engine, p Pos) {
	t.Helper()
	if e.Rows() == 0 {
		require.Zero(t, p.Row)
		require.Zero(t, p.Col)
		return
	}
	require.GreaterOrEqual(t, p.Row, 0)
	require.Less(t, p.Row, e.Rows())
	b := buffer(e.lines[sideIndex(p.Side)])
	require.GreaterOrEqual(t, p.Col, 0)
	require.LessOrEqual(t, p.Col, b.lastCol(p.Row))
}
