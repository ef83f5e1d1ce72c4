package cli

import (
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Open the UI and refresh on every file system change",
		Long: "watch is the default command with the file watcher forced on, " +
			"whatever the config file or --no-watch say.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd, true)
		},
	}
	return cmd
}
