// Package prefs resolves vig's settings. Later layers override earlier
// ones: built-in defaults, the TOML config file, environment variables,
// the repository's git config, then command-line flags. Nothing is ever
// written back.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Prefs holds every user-tunable setting.
type Prefs struct {
	// Base is the ref the working tree is compared against. Empty means
	// HEAD.
	Base        string   `toml:"base"`
	LeftWidth   int      `toml:"left_width"`
	Theme       string   `toml:"theme"`
	SyntaxStyle string   `toml:"syntax_style"`
	Watch       bool     `toml:"watch"`
	Poll        Duration `toml:"poll_interval"`
	Editor      string   `toml:"editor"`
	LogLimit    int      `toml:"log_limit"`
	LogLevel    string   `toml:"log_level"`
	Colors      Colors   `toml:"colors"`
}

// Colors overrides single theme colours. Empty fields keep the theme's.
type Colors struct {
	Add           string `toml:"add"`
	Delete        string `toml:"delete"`
	AddBg         string `toml:"add_bg"`
	DeleteBg      string `toml:"delete_bg"`
	Meta          string `toml:"meta"`
	Divider       string `toml:"divider"`
	Accent        string `toml:"accent"`
	Selection     string `toml:"selection"`
	SearchMatch   string `toml:"search_match"`
	SearchCurrent string `toml:"search_current"`
}

// Duration is a time.Duration written as "500ms" or "2s" in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in settings.
func Default() Prefs {
	return Prefs{
		LeftWidth:   32,
		Theme:       "dark",
		SyntaxStyle: "monokai",
		Watch:       true,
		Poll:        Duration{2 * time.Second},
		LogLimit:    200,
		LogLevel:    "info",
	}
}

// Overrides are command-line values; zero fields leave the setting alone.
type Overrides struct {
	Base     string
	LogLevel string
	NoWatch  bool
	Watch    bool
}

// ConfigPath returns the default config file location,
// $XDG_CONFIG_HOME/vig/config.toml.
func ConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not determine config directory: %w", err)
	}
	return filepath.Join(dir, "vig", "config.toml"), nil
}

// Load resolves the settings for the repository at repoRoot. configPath
// names the TOML file; empty means ConfigPath, where a missing file is not
// an error.
func Load(repoRoot, configPath string, o Overrides) (Prefs, error) {
	p := Default()

	explicit := configPath != ""
	if !explicit {
		if path, err := ConfigPath(); err == nil {
			configPath = path
		}
	}
	if configPath != "" {
		if err := p.LoadTOML(configPath); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return Default(), err
			}
		}
	}

	p.ApplyEnv()
	p.ApplyGitConfig(repoRoot)
	p.Apply(o)
	p.normalize()
	return p, nil
}

// LoadTOML decodes path over p. Keys absent from the file keep their
// current values.
func (p *Prefs) LoadTOML(path string) error {
	md, err := toml.DecodeFile(path, p)
	if err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	return nil
}

// ApplyEnv reads VIG_BASE and VIG_THEME, and the editor from $EDITOR or
// $VISUAL when the config names none.
func (p *Prefs) ApplyEnv() {
	if v := os.Getenv("VIG_BASE"); v != "" {
		p.Base = v
	}
	if v := os.Getenv("VIG_THEME"); v != "" {
		p.Theme = v
	}
	if p.Editor == "" {
		p.Editor = os.Getenv("EDITOR")
	}
	if p.Editor == "" {
		p.Editor = os.Getenv("VISUAL")
	}
}

const (
	keyBase        = "vig.base"
	keyLeftWidth   = "vig.leftWidth"
	keyTheme       = "vig.theme"
	keySyntaxStyle = "vig.syntaxStyle"
	keyWatch       = "vig.watch"
)

// ApplyGitConfig reads the vig.* keys visible from repoRoot.
func (p *Prefs) ApplyGitConfig(repoRoot string) {
	if repoRoot == "" {
		return
	}
	if s, ok := get(repoRoot, keyBase); ok {
		p.Base = s
	}
	if s, ok := get(repoRoot, keyLeftWidth); ok {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			p.LeftWidth = n
		}
	}
	if s, ok := get(repoRoot, keyTheme); ok {
		p.Theme = s
	}
	if s, ok := get(repoRoot, keySyntaxStyle); ok {
		p.SyntaxStyle = s
	}
	if s, ok := get(repoRoot, keyWatch); ok {
		p.Watch = parseBool(s)
	}
}

// Apply layers command-line overrides on top.
func (p *Prefs) Apply(o Overrides) {
	if o.Base != "" {
		p.Base = o.Base
	}
	if o.LogLevel != "" {
		p.LogLevel = o.LogLevel
	}
	if o.NoWatch {
		p.Watch = false
	}
	if o.Watch {
		p.Watch = true
	}
}

func (p *Prefs) normalize() {
	d := Default()
	if p.LeftWidth < 16 {
		p.LeftWidth = 16
	}
	if p.Poll.Duration < 250*time.Millisecond {
		p.Poll = d.Poll
	}
	if p.LogLimit <= 0 {
		p.LogLimit = d.LogLimit
	}
	if p.Editor == "" {
		p.Editor = "vi"
	}
}

func get(repoRoot, key string) (string, bool) {
	cmd := exec.CommandContext(context.Background(), "git", "-C", repoRoot, "config", "--get", key)
	b, err := cmd.Output()
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(b)), true
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
