// internal/cli/list_tasks_entry.go
package mteb

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mwiater/mteb/internal/report"
	"github.com/mwiater/mteb/internal/taskmeta"
	"github.com/mwiater/mteb/internal/tasks"
)

var (
	headerStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Padding(0, 1)
	cellStyle       = lipgloss.NewStyle().Padding(0, 1)
	supersededStyle = cellStyle.Foreground(lipgloss.Color("244"))
)

// taskRow is one line of 'list tasks' output.
type taskRow struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Category     string   `json:"category"`
	MainScore    string   `json:"main_score"`
	Languages    []string `json:"languages"`
	EvalSplits   []string `json:"eval_splits"`
	SupersededBy string   `json:"superseded_by,omitempty"`
}

// parseTaskType matches a task type case-insensitively.
func parseTaskType(s string) (taskmeta.TaskType, error) {
	for _, t := range taskmeta.TaskTypes {
		if strings.EqualFold(string(t), s) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown task type %q", s)
}

func buildFilter(typ, lang, name string, currentOnly bool) (tasks.Filter, error) {
	f := tasks.Filter{Language: strings.TrimSpace(lang), Name: strings.TrimSpace(name), ExcludeSuperseded: currentOnly}
	if typ = strings.TrimSpace(typ); typ != "" {
		t, err := parseTaskType(typ)
		if err != nil {
			return tasks.Filter{}, err
		}
		f.Type = t
	}
	return f, nil
}

func taskRows(ts []tasks.Task) []taskRow {
	rows := make([]taskRow, 0, len(ts))
	for _, t := range ts {
		meta := t.Metadata()
		rows = append(rows, taskRow{
			Name:         meta.Name,
			Type:         string(meta.Type),
			Category:     string(meta.Category),
			MainScore:    meta.MainScore,
			Languages:    meta.Languages(),
			EvalSplits:   meta.EvalSplits,
			SupersededBy: meta.SupersededBy,
		})
	}
	return rows
}

// runListTasks prints the tasks matching f.
func runListTasks(out io.Writer, reg *tasks.Registry, f tasks.Filter, jsonMode bool) error {
	rows := taskRows(reg.Filter(f))
	if jsonMode {
		return report.WriteJSON(out, rows)
	}
	if len(rows) == 0 {
		fmt.Fprintln(out, "No tasks match the given filters.")
		return nil
	}
	fmt.Fprintln(out, renderTaskTable(rows))
	fmt.Fprintf(out, "%d task(s)\n", len(rows))
	return nil
}

func renderTaskTable(rows []taskRow) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("Task", "Type", "Category", "Main score", "Languages", "Splits")
	for _, r := range rows {
		t.Row(r.Name, r.Type, r.Category, r.MainScore, languageCell(r.Languages), strings.Join(r.EvalSplits, ","))
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		if row >= 0 && row < len(rows) && rows[row].SupersededBy != "" {
			return supersededStyle
		}
		return cellStyle
	})
	return t.String()
}

// languageCell shows up to three codes and a count of the rest.
func languageCell(langs []string) string {
	if len(langs) <= 3 {
		return strings.Join(langs, ",")
	}
	return fmt.Sprintf("%s +%d", strings.Join(langs[:3], ","), len(langs)-3)
}
