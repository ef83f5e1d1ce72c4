// Package highlight produces per-character syntax colours for the two sides
// of a file diff, incrementally or eagerly.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"go.uber.org/zap"

	"github.com/interpretive-systems/vig/internal/diffview"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "monokai"

// Color is a "#rrggbb" foreground colour. Empty means the style leaves the
// token uncoloured and the renderer should use its own default.
type Color string

// Highlighter resolves grammars and colours. It is safe for concurrent use.
type Highlighter struct {
	style  *chroma.Style
	logger *zap.Logger
}

// New creates a highlighter for the named chroma style. Unknown names fall
// back to chroma's default style.
func New(styleName string, logger *zap.Logger) *Highlighter {
	if styleName == "" {
		styleName = DefaultStyle
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Highlighter{style: styles.Get(styleName), logger: logger}
}

// StyleName returns the name of the active chroma style.
func (h *Highlighter) StyleName() string {
	return h.style.Name
}

// Lexer finds a grammar for path, first by file name and then by sniffing
// the first non-empty line of lines. It returns nil when nothing better than
// plain text matches.
func (h *Highlighter) Lexer(path string, lines []string) chroma.Lexer {
	if l := lexers.Match(path); usable(l) {
		return l
	}
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if l := lexers.Analyse(line); usable(l) {
			return l
		}
		break
	}
	return nil
}

// FileType returns the display name of the grammar for path, or "" when the
// file has none.
func (h *Highlighter) FileType(path string, lines []string) string {
	l := h.Lexer(path, lines)
	if l == nil {
		return ""
	}
	return strings.ToLower(l.Config().Name)
}

func usable(l chroma.Lexer) bool {
	if l == nil || l == lexers.Fallback {
		return false
	}
	name := strings.ToLower(l.Config().Name)
	return name != "plaintext" && name != "fallback"
}

func (h *Highlighter) colorOf(t chroma.TokenType) Color {
	e := h.style.Get(t)
	if !e.Colour.IsSet() {
		return ""
	}
	return Color(e.Colour.String())
}

// sample returns the content rows of c, skipping hunk headers.
func sample(c diffview.Content, limit int) []string {
	out := make([]string, 0, limit)
	for i, line := range c.Lines {
		if c.IsHunkStart(i) {
			continue
		}
		out = append(out, line)
		if len(out) >= limit {
			break
		}
	}
	return out
}
