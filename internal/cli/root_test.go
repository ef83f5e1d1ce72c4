package cli

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interpretive-systems/vig/internal/prefs"
)

func initRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	cmd := exec.Command("git", "init", "-q")
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))
	return dir
}

func runConfig(t *testing.T, args ...string) (prefs.Prefs, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"config"}, args...))
	if err := root.Execute(); err != nil {
		return prefs.Prefs{}, err
	}
	var p prefs.Prefs
	_, err := toml.Decode(out.String(), &p)
	require.NoError(t, err, out.String())
	return p, nil
}

func TestConfigCommand_LayersFileAndFlags(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	repo := initRepo(t)
	cfg := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("theme = \"light\"\npoll_interval = \"5s\"\nbase = \"develop\"\n"), 0o644))

	p, err := runConfig(t, "--repo", repo, "--config", cfg, "--base", "main", "--no-watch")
	require.NoError(t, err)
	assert.Equal(t, "light", p.Theme)
	assert.Equal(t, "5s", p.Poll.String())
	assert.Equal(t, "main", p.Base)
	assert.False(t, p.Watch)
}

func TestConfigCommand_Errors(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := runConfig(t, "--repo", t.TempDir())
	assert.ErrorContains(t, err, "not a git repo")

	repo := initRepo(t)
	_, err = runConfig(t, "--repo", repo, "--config", filepath.Join(repo, "missing.toml"))
	assert.ErrorContains(t, err, "load config")
}

func TestRootCmd_Flags(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"repo", "base", "config", "log-level", "no-watch"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(name), name)
	}
	assert.Equal(t, "r", root.PersistentFlags().Lookup("repo").Shorthand)
	assert.Equal(t, "b", root.PersistentFlags().Lookup("base").Shorthand)

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"watch", "config"})
}
