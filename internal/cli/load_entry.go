// internal/cli/load_entry.go
package mteb

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mwiater/mteb/internal/datasets"
	"github.com/mwiater/mteb/internal/logging"
	"github.com/mwiater/mteb/internal/report"
	"github.com/mwiater/mteb/internal/tasks"
)

type loadOptions struct {
	Seed               int64
	JSONMode           bool
	ExportPath         string
	ExportMarkdownPath string
}

// runLoad loads one task and reports its shape.
func runLoad(ctx context.Context, out io.Writer, reg *tasks.Registry, src datasets.Source, name string, opts loadOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	task, err := reg.Get(name)
	if err != nil {
		return err
	}
	task.SetSeed(opts.Seed)

	start := time.Now()
	if err := task.LoadData(ctx, src); err != nil {
		return err
	}
	logging.LogDebug("%s loaded in %s", name, time.Since(start))

	sum, err := report.Summarize(task)
	if err != nil {
		return err
	}

	if opts.JSONMode {
		if err := report.WriteJSON(out, sum); err != nil {
			return err
		}
	} else {
		printSummary(out, sum)
	}

	if opts.ExportPath != "" {
		if err := report.ExportSummary(opts.ExportPath, sum); err != nil {
			return fmt.Errorf("export summary: %w", err)
		}
		logging.LogEvent("summary written to %s", opts.ExportPath)
	}
	if opts.ExportMarkdownPath != "" {
		if err := report.ExportSummaryAs(opts.ExportMarkdownPath, sum, report.FormatMarkdown); err != nil {
			return fmt.Errorf("export markdown summary: %w", err)
		}
		logging.LogEvent("markdown summary written to %s", opts.ExportMarkdownPath)
	}
	return nil
}

func printSummary(out io.Writer, sum *report.TaskSummary) {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	fmt.Fprintln(out, title.Render(sum.Task))
	fmt.Fprintf(out, "  Type:       %s\n", sum.Type)
	fmt.Fprintf(out, "  Main score: %s\n", sum.MainScore)
	fmt.Fprintf(out, "  Dataset:    %s@%s\n", sum.Dataset, sum.Revision)
	fmt.Fprintf(out, "  Languages:  %s\n\n", languageCell(sum.Languages))

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("Scope", "Split", "Rows", "Sentences", "Labels", "Queries", "Documents", "Judgments").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, sp := range sum.Splits {
		scope := sp.Scope
		if scope == "" {
			scope = "-"
		}
		t.Row(scope, sp.Split, count(sp.Rows), count(sp.Sentences), count(len(sp.Labels)),
			count(sp.Queries), count(sp.Documents), count(sp.Judgments))
	}
	fmt.Fprintln(out, t.String())

	totals := sum.Totals()
	fmt.Fprintf(out, "%d split(s): %s\n", len(sum.Splits), strings.Join([]string{
		"rows=" + strconv.Itoa(totals.Rows),
		"queries=" + strconv.Itoa(totals.Queries),
		"documents=" + strconv.Itoa(totals.Documents),
	}, " "))
}

// count renders zero as "-".
func count(n int) string {
	if n == 0 {
		return "-"
	}
	return strconv.Itoa(n)
}
