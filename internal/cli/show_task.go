// internal/cli/show_task.go
package mteb

import (
	"fmt"
	"io"

	"github.com/k0kubun/pp"
	"github.com/mwiater/mteb/internal/report"
	"github.com/mwiater/mteb/internal/tasks"
	"github.com/spf13/cobra"
)

var showTaskRaw bool

// showTaskCmd implements 'show task <name>'.
var showTaskCmd = &cobra.Command{
	Use:   "task <name>",
	Short: "Show the metadata of one task",
	Long:  `Show the full metadata of a registered task as YAML, as JSON in JSON mode, or as the raw Go value with --raw.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShowTask(cmd.OutOrStdout(), tasks.Default, args[0], showTaskRaw, GetConfig().JSONMode)
	},
}

func init() {
	showTaskCmd.Flags().BoolVar(&showTaskRaw, "raw", false, "pretty-print the Go value instead of YAML")
	showCmd.AddCommand(showTaskCmd)
}

func runShowTask(out io.Writer, reg *tasks.Registry, name string, raw, jsonMode bool) error {
	task, err := reg.Get(name)
	if err != nil {
		return err
	}
	meta := task.Metadata()
	switch {
	case raw:
		_, err = pp.Fprintln(out, meta)
		return err
	case jsonMode:
		return report.WriteJSON(out, meta)
	}
	if meta.IsSuperseded() {
		fmt.Fprintf(out, "# superseded by %s\n", meta.SupersededBy)
	}
	return report.WriteYAML(out, meta)
}
