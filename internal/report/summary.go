// internal/report/summary.go
// Package report renders loaded-task summaries and the task catalogue as
// JSON, YAML, Markdown or HTML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/mwiater/mteb/internal/tasks"
	"github.com/mwiater/mteb/internal/taskmeta"
	"github.com/mwiater/mteb/internal/util"
)

// SplitSummary is the shape of one split within one language scope.
type SplitSummary struct {
	Scope            string `json:"scope,omitempty" yaml:"scope,omitempty"`
	Split            string `json:"split" yaml:"split"`
	tasks.SplitStats `yaml:",inline"`
}

// TaskSummary is the printable description of a loaded task.
type TaskSummary struct {
	Task      string            `json:"task" yaml:"task"`
	Type      taskmeta.TaskType `json:"type" yaml:"type"`
	MainScore string            `json:"main_score" yaml:"main_score"`
	Dataset   string            `json:"dataset" yaml:"dataset"`
	Revision  string            `json:"revision" yaml:"revision"`
	Languages []string          `json:"languages" yaml:"languages"`
	Splits    []SplitSummary    `json:"splits" yaml:"splits"`
}

// Summarize builds a TaskSummary from a loaded task. Splits are ordered by scope, then split.
func Summarize(task tasks.Task) (*TaskSummary, error) {
	sum, err := task.Summary()
	if err != nil {
		return nil, err
	}
	meta := task.Metadata()
	out := &TaskSummary{
		Task:      meta.Name,
		Type:      meta.Type,
		MainScore: meta.MainScore,
		Dataset:   meta.Dataset.Path,
		Revision:  meta.Dataset.Revision,
		Languages: meta.Languages(),
	}
	for _, scope := range sum.ScopeNames() {
		splits := make([]string, 0, len(sum.Scopes[scope]))
		for split := range sum.Scopes[scope] {
			splits = append(splits, split)
		}
		sort.Strings(splits)
		for _, split := range splits {
			out.Splits = append(out.Splits, SplitSummary{Scope: scope, Split: split, SplitStats: sum.Scopes[scope][split]})
		}
	}
	return out, nil
}

// Totals adds up the rows, queries and documents of every split.
func (s *TaskSummary) Totals() tasks.SplitStats {
	var t tasks.SplitStats
	for _, sp := range s.Splits {
		t.Rows += sp.Rows
		t.Sentences += sp.Sentences
		t.Queries += sp.Queries
		t.Documents += sp.Documents
		t.Judgments += sp.Judgments
	}
	return t
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteYAML writes v as YAML.
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// WriteMarkdown renders a summary as a heading, a metadata list and a split table.
func WriteMarkdown(w io.Writer, s *TaskSummary) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", s.Task)
	fmt.Fprintf(&b, "- **Type:** %s\n", s.Type)
	fmt.Fprintf(&b, "- **Main score:** %s\n", s.MainScore)
	fmt.Fprintf(&b, "- **Dataset:** %s@%s\n", s.Dataset, s.Revision)
	fmt.Fprintf(&b, "- **Languages:** %s\n\n", strings.Join(s.Languages, ", "))

	b.WriteString("| Scope | Split | Rows | Sentences | Labels | Queries | Documents | Judgments |\n")
	b.WriteString("|---|---|---:|---:|---:|---:|---:|---:|\n")
	for _, sp := range s.Splits {
		scope := sp.Scope
		if scope == "" {
			scope = "-"
		}
		fmt.Fprintf(&b, "| %s | %s | %d | %d | %d | %d | %d | %d |\n",
			scope, sp.Split, sp.Rows, sp.Sentences, len(sp.Labels), sp.Queries, sp.Documents, sp.Judgments)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Format names an output encoding.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// FormatFromPath picks a format from a file extension; unknown extensions mean JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".md", ".markdown":
		return FormatMarkdown
	case ".html", ".htm":
		return FormatHTML
	default:
		return FormatJSON
	}
}

// ParseFormat accepts json, yaml/yml, markdown/md and html.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("unknown format %q (want json, yaml, markdown or html)", s)
}

// ExportSummary writes s to path in the format implied by its extension.
func ExportSummary(path string, s *TaskSummary) error {
	return ExportSummaryAs(path, s, FormatFromPath(path))
}

// ExportSummaryAs writes s to path in the given format.
func ExportSummaryAs(path string, s *TaskSummary, format Format) error {
	var b strings.Builder
	var err error
	switch format {
	case FormatYAML:
		err = WriteYAML(&b, s)
	case FormatMarkdown:
		err = WriteMarkdown(&b, s)
	case FormatHTML:
		err = WriteHTMLSummary(&b, s)
	default:
		err = WriteJSON(&b, s)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return util.WriteFile(path, []byte(b.String()))
}
