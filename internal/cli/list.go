// internal/cli/list.go
package mteb

import "github.com/spf13/cobra"

// listCmd represents the 'list' command group.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Group commands for listing tasks and commands",
	Long:  `The 'list' command groups subcommands that list registered tasks or the available commands.`,
}

func init() {
	rootCmd.AddCommand(listCmd)
}
