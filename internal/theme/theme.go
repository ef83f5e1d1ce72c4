// Package theme holds the colours used to draw vig.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/interpretive-systems/vig/internal/prefs"
)

// Theme defines customizable colors for rendering.
type Theme struct {
	Name string

	AddColor     lipgloss.Color
	DelColor     lipgloss.Color
	AddBgColor   lipgloss.Color
	DelBgColor   lipgloss.Color
	MetaColor    lipgloss.Color
	DividerColor lipgloss.Color
	MutedColor   lipgloss.Color
	AccentColor  lipgloss.Color
	BranchColor  lipgloss.Color
	BaseColor    lipgloss.Color
	StatusColor  lipgloss.Color

	SelectionBg     lipgloss.Color
	SearchMatchBg   lipgloss.Color
	SearchCurrentBg lipgloss.Color
	SearchCurrentFg lipgloss.Color

	renderer *lipgloss.Renderer
}

func darkTheme() Theme {
	return Theme{
		Name:            "dark",
		AddColor:        "#5fd75f",
		DelColor:        "#ff5f5f",
		AddBgColor:      "#12301a",
		DelBgColor:      "#3a1618",
		MetaColor:       "#5f87ff",
		DividerColor:    "240",
		MutedColor:      "244",
		AccentColor:     "#00d7d7",
		BranchColor:     "#d75fd7",
		BaseColor:       "#d7d75f",
		StatusColor:     "#d7d75f",
		SelectionBg:     "#3a3a5a",
		SearchMatchBg:   "#3c3c00",
		SearchCurrentBg: "#c87800",
		SearchCurrentFg: "#000000",
	}
}

func lightTheme() Theme {
	return Theme{
		Name:            "light",
		AddColor:        "#005f00",
		DelColor:        "#af0000",
		AddBgColor:      "#dcf5dc",
		DelBgColor:      "#f7dcdc",
		MetaColor:       "#005fd7",
		DividerColor:    "248",
		MutedColor:      "242",
		AccentColor:     "#008787",
		BranchColor:     "#870087",
		BaseColor:       "#875f00",
		StatusColor:     "#875f00",
		SelectionBg:     "#d0d0f0",
		SearchMatchBg:   "#f0f0a0",
		SearchCurrentBg: "#c87800",
		SearchCurrentFg: "#000000",
	}
}

// Default returns the dark theme.
func Default() Theme {
	return darkTheme()
}

// Named returns the requested base theme. Anything but "light" is dark.
func Named(name string) Theme {
	if name == "light" {
		return lightTheme()
	}
	return darkTheme()
}

// FromPrefs builds the configured theme: the named base with single colours
// overridden from the config file.
func FromPrefs(p prefs.Prefs) Theme {
	t := Named(p.Theme)
	c := p.Colors
	override(&t.AddColor, c.Add)
	override(&t.DelColor, c.Delete)
	override(&t.AddBgColor, c.AddBg)
	override(&t.DelBgColor, c.DeleteBg)
	override(&t.MetaColor, c.Meta)
	override(&t.DividerColor, c.Divider)
	override(&t.AccentColor, c.Accent)
	override(&t.SelectionBg, c.Selection)
	override(&t.SearchMatchBg, c.SearchMatch)
	override(&t.SearchCurrentBg, c.SearchCurrent)
	return t
}

func override(dst *lipgloss.Color, v string) {
	if v != "" {
		*dst = lipgloss.Color(v)
	}
}

// WithRenderer returns a copy of t whose styles are bound to r instead of
// the default renderer, e.g. to force a colour profile in tests.
func (t Theme) WithRenderer(r *lipgloss.Renderer) Theme {
	t.renderer = r
	return t
}

// Style returns an empty style from the theme's renderer.
func (t Theme) Style() lipgloss.Style {
	if t.renderer != nil {
		return t.renderer.NewStyle()
	}
	return lipgloss.NewStyle()
}

func (t Theme) AddText(s string) string {
	return t.Style().Foreground(t.AddColor).Render(s)
}

func (t Theme) DelText(s string) string {
	return t.Style().Foreground(t.DelColor).Render(s)
}

func (t Theme) MetaText(s string) string {
	return t.Style().Foreground(t.MetaColor).Render(s)
}

func (t Theme) DividerText(s string) string {
	return t.Style().Foreground(t.DividerColor).Render(s)
}

func (t Theme) MutedText(s string) string {
	return t.Style().Foreground(t.MutedColor).Render(s)
}

func (t Theme) AccentText(s string) string {
	return t.Style().Foreground(t.AccentColor).Bold(true).Render(s)
}

// Badge renders s as a solid block of colour bg with black text.
func (t Theme) Badge(s string, bg lipgloss.Color) string {
	return t.Style().Foreground(lipgloss.Color("#000000")).Background(bg).Bold(true).Render(s)
}
