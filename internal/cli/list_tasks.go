// internal/cli/list_tasks.go
package mteb

import (
	"github.com/mwiater/mteb/internal/tasks"
	"github.com/spf13/cobra"
)

var (
	listTypeFilter  string
	listLangFilter  string
	listNameFilter  string
	listCurrentOnly bool
)

// tasksCmd implements 'list tasks', which prints the registered tasks as a
// table, or as JSON in JSON mode.
var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List registered benchmark tasks",
	Long:  `The 'tasks' subcommand lists every registered task with its type, category, main score, languages and evaluation splits. Filters narrow the list by task type, language code (eng-Latn or eng) or name substring.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := buildFilter(listTypeFilter, listLangFilter, listNameFilter, listCurrentOnly)
		if err != nil {
			return err
		}
		return runListTasks(cmd.OutOrStdout(), tasks.Default, f, GetConfig().JSONMode)
	},
}

func init() {
	tasksCmd.Flags().StringVar(&listTypeFilter, "type", "", "only tasks of this type (Classification, Clustering, Reranking, Retrieval)")
	tasksCmd.Flags().StringVar(&listLangFilter, "lang", "", "only tasks covering this language (eng-Latn or eng)")
	tasksCmd.Flags().StringVar(&listNameFilter, "name", "", "only tasks whose name contains this text")
	tasksCmd.Flags().BoolVar(&listCurrentOnly, "current", false, "hide tasks superseded by a newer version")
	listCmd.AddCommand(tasksCmd)
}
