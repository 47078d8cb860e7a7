// internal/cli/browse.go
package mteb

import (
	"context"

	"github.com/mwiater/mteb/cli"
	"github.com/mwiater/mteb/internal/logging"
	"github.com/mwiater/mteb/internal/tasks"
	"github.com/spf13/cobra"
)

// browseCmd implements 'browse', an interactive list of tasks with a detail
// pane. Selecting a task loads it and shows its split sizes.
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the task catalogue interactively",
	Long:  `Open a terminal UI listing every registered task. The side pane shows the highlighted task's metadata; enter loads the task through the configured source and shows its splits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		// The alternate screen owns stdout; log to the file only.
		if err := logging.InitTo(nil, cfg.LogFilePath()); err != nil {
			return err
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return cli.StartBrowser(ctx, cfg, tasks.Default.All())
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
