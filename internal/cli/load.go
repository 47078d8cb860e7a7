// internal/cli/load.go
package mteb

import (
	"github.com/mwiater/mteb/internal/sourcefactory"
	"github.com/mwiater/mteb/internal/tasks"
	"github.com/spf13/cobra"
)

// loadCmd implements 'load <name>', which fetches a task's data through the
// configured source, applies its transforms and prints a summary.
var loadCmd = &cobra.Command{
	Use:   "load <name>",
	Short: "Load and transform a task's dataset",
	Long:  `Load a registered task's dataset through the configured source (local JSONL or the hub datasets-server), apply the task's transforms and print the resulting split sizes. --export and --exportMarkdown also write the summary to files.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		src, err := sourcefactory.NewSource(cfg)
		if err != nil {
			return err
		}
		return runLoad(cmd.Context(), cmd.OutOrStdout(), tasks.Default, src, args[0], loadOptions{
			Seed:               cfg.Seed,
			JSONMode:           cfg.JSONMode,
			ExportPath:         cfg.ExportPath,
			ExportMarkdownPath: cfg.ExportMarkdownPath,
		})
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
}
