// internal/cli/validate.go
package mteb

import (
	"github.com/mwiater/mteb/internal/tasks"
	"github.com/spf13/cobra"
)

var validateFiles []string

// validateCmd implements 'validate [name...]'.
var validateCmd = &cobra.Command{
	Use:   "validate [name...]",
	Short: "Validate task metadata",
	Long:  `Validate the metadata of the named registered tasks, or all of them when no name is given. Metadata files (JSON or YAML) passed with --file are validated as well. The command exits non-zero when any task fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd.OutOrStdout(), tasks.Default, args, validateFiles)
	},
}

func init() {
	validateCmd.Flags().StringSliceVarP(&validateFiles, "file", "f", nil, "metadata file to validate (repeatable)")
	rootCmd.AddCommand(validateCmd)
}
