// cli/browse_test.go
package cli

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mwiater/mteb/internal/datasets"
	"github.com/mwiater/mteb/internal/report"
	"github.com/mwiater/mteb/internal/taskmeta"
	"github.com/mwiater/mteb/internal/tasks"
)

type fakeTask struct {
	meta    taskmeta.TaskMetadata
	loadErr error
	loaded  bool
	seed    int64
}

func (f *fakeTask) Metadata() *taskmeta.TaskMetadata { return &f.meta }

func (f *fakeTask) LoadData(_ context.Context, _ datasets.Source) error {
	if f.loadErr != nil {
		return f.loadErr
	}
	f.loaded = true
	return nil
}

func (f *fakeTask) IsLoaded() bool { return f.loaded }

func (f *fakeTask) SetSeed(seed int64) { f.seed = seed }

func (f *fakeTask) Summary() (*tasks.Summary, error) {
	return &tasks.Summary{
		Task: f.meta.Name,
		Type: f.meta.Type,
		Scopes: map[string]map[string]tasks.SplitStats{
			"": {"test": {Rows: 5, Labels: map[string]int{"a": 2, "b": 3}}},
		},
	}, nil
}

func newFakeTask(name string, err error) *fakeTask {
	return &fakeTask{
		meta: taskmeta.TaskMetadata{
			Name:        name,
			Description: "A fake classification task used by the browser tests.",
			Dataset:     taskmeta.DatasetRef{Path: "org/" + name, Revision: "0123456789abcdef"},
			Type:        taskmeta.TypeClassification,
			Category:    taskmeta.CategoryS2S,
			EvalSplits:  []string{"test"},
			EvalLangs:   taskmeta.Langs("eng-Latn"),
			MainScore:   "accuracy",
		},
		loadErr: err,
	}
}

func TestBrowse_StateTransitions_And_View(t *testing.T) {
	ctx := context.Background()
	good := newFakeTask("GoodTask", nil)
	bad := newFakeTask("BadTask", errors.New("boom"))
	m := newModel(ctx, []tasks.Task{good, bad}, nil, 7)

	if got := m.View(); got != "Initializing..." {
		t.Fatalf("expected initializing view before sizing, got %q", got)
	}

	_, _ = m.Update(tea.WindowSizeMsg{Width: 160, Height: 40})
	out := m.View()
	if !strings.Contains(out, "GoodTask") || !strings.Contains(out, "Main score:") {
		t.Fatalf("expected task list and detail pane; got: %s", out)
	}

	m2, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = m2.(*model)
	if m.state != viewLoading || cmd == nil {
		t.Fatalf("expected loading state with a command; state=%v", m.state)
	}
	if good.seed != 7 {
		t.Fatalf("expected seed 7 to be applied, got %d", good.seed)
	}
	if !strings.Contains(m.View(), "Loading GoodTask") {
		t.Fatalf("expected loading view, got: %s", m.View())
	}

	m2, _ = m.Update(loadTaskCmd(ctx, good, nil)())
	m = m2.(*model)
	if m.state != viewSummary || m.summary == nil {
		t.Fatalf("expected summary view; state=%v", m.state)
	}
	if out := m.View(); !strings.Contains(out, "rows=5") || !strings.Contains(out, "labels=2") {
		t.Fatalf("expected split details in summary view; got: %s", out)
	}

	m2, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = m2.(*model)
	if m.state != viewTaskList {
		t.Fatalf("expected esc to return to the list; state=%v", m.state)
	}

	m2, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = m2.(*model)
	m2, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = m2.(*model)
	if m.selected != tasks.Task(bad) {
		t.Fatalf("expected second task to be selected")
	}
	m2, _ = m.Update(loadTaskCmd(ctx, bad, nil)())
	m = m2.(*model)
	if m.err == nil || !strings.Contains(m.View(), "Error: boom") {
		t.Fatalf("expected error view; got: %s", m.View())
	}
	m2, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = m2.(*model)
	if m.err != nil {
		t.Fatalf("expected esc to clear the error")
	}
}

func TestBrowse_Quit(t *testing.T) {
	m := newModel(context.Background(), []tasks.Task{newFakeTask("T", nil)}, nil, 0)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg on ctrl+c")
	}
}

func TestItemDescriptionMarksSuperseded(t *testing.T) {
	task := newFakeTask("Old", nil)
	task.meta.SupersededBy = "Old.v2"
	it := item{task: task}
	if !strings.Contains(it.Description(), "superseded") {
		t.Fatalf("expected superseded marker, got %q", it.Description())
	}
	if it.FilterValue() != "Old" || it.Title() != "Old" {
		t.Fatalf("unexpected title/filter value")
	}
}

func TestSummaryTextRetrievalSplit(t *testing.T) {
	s := summaryText(&report.TaskSummary{
		Task: "MLQARetrieval",
		Splits: []report.SplitSummary{
			{Scope: "eng-deu", Split: "test", SplitStats: tasks.SplitStats{Queries: 2, Documents: 1, Judgments: 2}},
		},
	})
	if !strings.Contains(s, "eng-deu/test") || !strings.Contains(s, "queries=2") {
		t.Fatalf("unexpected summary text: %s", s)
	}
}
