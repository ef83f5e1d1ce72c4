// Package cli is vig's command line: it resolves the repository and the
// settings, then starts the UI.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/interpretive-systems/vig/internal/gitx"
	"github.com/interpretive-systems/vig/internal/logging"
	"github.com/interpretive-systems/vig/internal/prefs"
	"github.com/interpretive-systems/vig/internal/tui"
	"github.com/interpretive-systems/vig/internal/watch"
)

// Execute runs the vig command.
func Execute() error {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		return fmt.Errorf("execute: %w", err)
	}
	return nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "vig",
		Short: "Review working tree changes side by side with vim motions",
		Long: "vig shows the diff of a git working tree against a base ref in a " +
			"side-by-side terminal view, with syntax colours, vim-style cursor " +
			"movement, visual selection, yanking and search.",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd, false)
		},
	}

	flags := root.PersistentFlags()
	flags.StringP("repo", "r", ".", "Path inside the repository (default: current dir)")
	flags.StringP("base", "b", "", "Ref to compare the working tree against (default: HEAD)")
	flags.String("config", "", "Config file (default: $XDG_CONFIG_HOME/vig/config.toml)")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.Bool("no-watch", false, "Poll for changes instead of watching the file system")

	root.AddCommand(newWatchCmd(), newConfigCmd())
	return root
}

// session is everything resolved from the flags before the UI starts.
type session struct {
	root  string
	prefs prefs.Prefs
}

func resolve(cmd *cobra.Command, forceWatch bool) (session, error) {
	flags := cmd.Flags()
	repoPath := mustGetStringFlag(cmd, "repo")
	root, err := gitx.RepoRoot(repoPath)
	if err != nil {
		return session{}, fmt.Errorf("not a git repo: %w", err)
	}
	noWatch, _ := flags.GetBool("no-watch")
	p, err := prefs.Load(root, mustGetStringFlag(cmd, "config"), prefs.Overrides{
		Base:     mustGetStringFlag(cmd, "base"),
		LogLevel: mustGetStringFlag(cmd, "log-level"),
		NoWatch:  noWatch && !forceWatch,
		Watch:    forceWatch,
	})
	if err != nil {
		return session{}, fmt.Errorf("load config: %w", err)
	}
	return session{root: root, prefs: p}, nil
}

func runUI(cmd *cobra.Command, forceWatch bool) error {
	s, err := resolve(cmd, forceWatch)
	if err != nil {
		return err
	}

	logger := openLogger(cmd, s.prefs.LogLevel)
	defer func() { _ = logger.Sync() }()
	logger.Info("starting",
		zap.String("repo", s.root),
		zap.String("base", s.prefs.Base),
		zap.Bool("watch", s.prefs.Watch))

	opts := tui.Options{RepoRoot: s.root, Prefs: s.prefs, Logger: logger}
	if s.prefs.Watch {
		w, err := watch.New(s.root, watch.DefaultDebounce, logger)
		if err != nil {
			logger.Warn("file watcher unavailable, polling instead", zap.Error(err))
		} else {
			defer w.Close()
			opts.Watcher = w
		}
	}

	if err := tui.Run(cmd.Context(), opts); err != nil {
		logger.Error("ui failed", zap.Error(err))
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// openLogger returns the file logger, or a no-op one when it cannot be
// created.
func openLogger(cmd *cobra.Command, level string) *zap.Logger {
	path, err := logging.DefaultPath()
	if err == nil {
		var logger *zap.Logger
		if logger, err = logging.New(level, path); err == nil {
			return logger
		}
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "logging disabled:", err)
	return logging.Nop()
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective settings as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolve(cmd, false)
			if err != nil {
				return err
			}
			if err := toml.NewEncoder(cmd.OutOrStdout()).Encode(s.prefs); err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			return nil
		},
	}
}

func mustGetStringFlag(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, "flag error:", err)
		os.Exit(2)
	}
	return v
}
