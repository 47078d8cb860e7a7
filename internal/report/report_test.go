package report

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/mwiater/mteb/internal/datasets"
	"github.com/mwiater/mteb/internal/tasks"
)

func loadedMLQA(t *testing.T) tasks.Task {
	t.Helper()
	task, err := tasks.Get("MLQARetrieval")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	src := datasets.SourceFunc(func(_ context.Context, req datasets.Request) (*datasets.Table, error) {
		return datasets.FromRows([]datasets.Row{
			{"question": "q1", "context": "c1"},
			{"question": "q2", "context": "c1"},
		}), nil
	})
	if err := task.LoadData(context.Background(), src); err != nil {
		t.Fatalf("LoadData: %v", err)
	}
	return task
}

func TestSummarizeOrdersSplits(t *testing.T) {
	sum, err := Summarize(loadedMLQA(t))
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if len(sum.Splits) != 98 {
		t.Fatalf("expected 98 split entries, got %d", len(sum.Splits))
	}
	first := sum.Splits[0]
	if first.Scope != "ara-ara" || first.Split != "test" {
		t.Fatalf("unexpected first entry %+v", first)
	}
	if first.Queries != 2 || first.Documents != 1 || first.Judgments != 2 {
		t.Fatalf("unexpected counts %+v", first)
	}
	if tot := sum.Totals(); tot.Queries != 196 {
		t.Fatalf("unexpected totals %+v", tot)
	}
}

func TestSummarizeRequiresLoad(t *testing.T) {
	task, _ := tasks.Get("MLQARetrieval")
	if _, err := Summarize(task); err == nil {
		t.Fatal("expected error for unloaded task")
	}
}

func TestWriteMarkdown(t *testing.T) {
	sum := &TaskSummary{
		Task:      "Demo",
		Type:      "Classification",
		MainScore: "accuracy",
		Dataset:   "org/demo",
		Revision:  "abc",
		Languages: []string{"eng-Latn"},
		Splits: []SplitSummary{{Split: "test", SplitStats: tasks.SplitStats{
			Rows: 10, Labels: map[string]int{"a": 5, "b": 5},
		}}},
	}
	var buf bytes.Buffer
	if err := WriteMarkdown(&buf, sum); err != nil {
		t.Fatalf("WriteMarkdown: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"# Demo", "org/demo@abc", "| - | test | 10 | 0 | 2 |"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
}

func TestSplitSummaryJSONIsFlat(t *testing.T) {
	sp := SplitSummary{Split: "dev", SplitStats: tasks.SplitStats{Rows: 3}}
	data, err := json.Marshal(sp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]any
	_ = json.Unmarshal(data, &raw)
	if raw["rows"] != float64(3) || raw["split"] != "dev" {
		t.Fatalf("expected flat object, got %s", data)
	}

	var buf bytes.Buffer
	if err := WriteYAML(&buf, sp); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	var back map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if back["rows"] != 3 {
		t.Fatalf("expected inline yaml, got:\n%s", buf.String())
	}
}

func TestExportCatalogue(t *testing.T) {
	all := tasks.Default.All()

	var jsonBuf bytes.Buffer
	if err := ExportCatalogue(&jsonBuf, all, FormatJSON); err != nil {
		t.Fatalf("json: %v", err)
	}
	var cat Catalogue
	if err := json.Unmarshal(jsonBuf.Bytes(), &cat); err != nil {
		t.Fatalf("decode catalogue: %v", err)
	}
	if len(cat.Tasks) != len(all) {
		t.Fatalf("expected %d tasks, got %d", len(all), len(cat.Tasks))
	}
	for _, m := range cat.Tasks {
		if err := m.Validate(); err != nil {
			t.Errorf("round-tripped %s is invalid: %v", m.Name, err)
		}
	}

	var yamlBuf bytes.Buffer
	if err := ExportCatalogue(&yamlBuf, all, FormatYAML); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !strings.Contains(yamlBuf.String(), "superseded_by: CLSClusteringP2P.v2") {
		t.Fatalf("expected superseded_by in yaml output")
	}

	var htmlBuf bytes.Buffer
	if err := ExportCatalogue(&htmlBuf, all, FormatHTML); err != nil {
		t.Fatalf("html: %v", err)
	}
	if !strings.Contains(htmlBuf.String(), "<td>MIRACLReranking</td>") {
		t.Fatalf("expected task row in html output")
	}

	if err := ExportCatalogue(&bytes.Buffer{}, all, Format("xml")); err == nil {
		t.Fatal("expected unsupported format error")
	}
}

func TestExportSummaryByExtension(t *testing.T) {
	sum, err := Summarize(loadedMLQA(t))
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	dir := t.TempDir()
	for _, name := range []string{"out.json", "out.yaml", "out.md", "out.html"} {
		path := filepath.Join(dir, "reports", name)
		if err := ExportSummary(path, sum); err != nil {
			t.Fatalf("ExportSummary(%s): %v", name, err)
		}
		data, err := os.ReadFile(path)
		if err != nil || len(data) == 0 {
			t.Fatalf("expected %s to be written: %v", name, err)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{"json": FormatJSON, "YML": FormatYAML, "md": FormatMarkdown, "html": FormatHTML, "": FormatJSON}
	for in, want := range tests {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("csv"); err == nil {
		t.Fatal("expected error for csv")
	}
}

func TestExportSummaryAsOverridesExtension(t *testing.T) {
	sum, err := Summarize(loadedMLQA(t))
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	path := filepath.Join(t.TempDir(), "summary.txt")
	if err := ExportSummaryAs(path, sum, FormatMarkdown); err != nil {
		t.Fatalf("ExportSummaryAs: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasPrefix(string(data), "# MLQARetrieval") {
		t.Fatalf("expected markdown heading, got %q", string(data))
	}
}
