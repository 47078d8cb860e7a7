package transform

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/mwiater/mteb/internal/datasets"
)

func TestRenameColumnPolarityToLabel(t *testing.T) {
	dd := datasets.DatasetDict{
		"train": datasets.FromRows([]datasets.Row{
			{"text": "a", "polarity": int64(0)},
			{"text": "b", "polarity": int64(1)},
			{"text": "c", "polarity": int64(1)},
		}),
	}
	out, err := RenameColumn(dd, "polarity", LabelColumn)
	if err != nil {
		t.Fatalf("RenameColumn: %v", err)
	}
	got, err := out["train"].Column(LabelColumn)
	if err != nil {
		t.Fatalf("Column(label): %v", err)
	}
	if want := []any{int64(0), int64(1), int64(1)}; !reflect.DeepEqual(got, want) {
		t.Fatalf("labels = %v, want %v", got, want)
	}

	if _, err := RenameColumn(out, "polarity", LabelColumn); !errors.Is(err, datasets.ErrColumnNotFound) {
		t.Fatalf("expected second rename to fail with ErrColumnNotFound, got %v", err)
	}
}

func nested(rows ...[2][]any) *datasets.Table {
	var out []datasets.Row
	for _, r := range rows {
		out = append(out, datasets.Row{SentencesColumn: r[0], LabelsColumn: r[1]})
	}
	return datasets.FromRows(out)
}

func TestFlattenClusteringPreservesCorrespondence(t *testing.T) {
	tbl := nested(
		[2][]any{{"s1", "s2", "s3"}, {"a", "b", "a"}},
		[2][]any{{}, {}},
		[2][]any{{"s4", "s5"}, {"c", "b"}},
	)
	flat, err := FlattenClustering(tbl, SentencesColumn, LabelsColumn)
	if err != nil {
		t.Fatalf("FlattenClustering: %v", err)
	}
	if flat.Len() != 5 {
		t.Fatalf("expected 5 rows (sum of list lengths), got %d", flat.Len())
	}
	sentences, _ := flat.Column(SentencesColumn)
	labels, _ := flat.Column(LabelsColumn)
	wantS := []any{"s1", "s2", "s3", "s4", "s5"}
	wantL := []any{"a", "b", "a", "c", "b"}
	if !reflect.DeepEqual(sentences, wantS) || !reflect.DeepEqual(labels, wantL) {
		t.Fatalf("flattened = %v / %v, want %v / %v", sentences, labels, wantS, wantL)
	}
}

func TestFlattenClusteringErrors(t *testing.T) {
	mismatch := nested([2][]any{{"s1", "s2"}, {"a"}})
	if _, err := FlattenClustering(mismatch, SentencesColumn, LabelsColumn); err == nil {
		t.Fatal("expected length mismatch error")
	}

	notList := datasets.FromRows([]datasets.Row{{SentencesColumn: "s1", LabelsColumn: []any{"a"}}})
	if _, err := FlattenClustering(notList, SentencesColumn, LabelsColumn); err == nil {
		t.Fatal("expected non-list error")
	}

	missing := datasets.FromRows([]datasets.Row{{SentencesColumn: []any{"s1"}}})
	if _, err := FlattenClustering(missing, SentencesColumn, LabelsColumn); !errors.Is(err, datasets.ErrColumnNotFound) {
		t.Fatalf("expected ErrColumnNotFound, got %v", err)
	}
}

func TestCheckLabelDistribution(t *testing.T) {
	if err := CheckLabelDistribution([]any{"a", "a", "b", "b"}); err != nil {
		t.Fatalf("expected balanced labels to pass, got %v", err)
	}
	err := CheckLabelDistribution([]any{"a", "a", "b"})
	var insufficient *InsufficientLabelError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientLabelError, got %v", err)
	}
	if insufficient.Counts["b"] != 1 {
		t.Fatalf("expected b=1 in counts, got %v", insufficient.Counts)
	}
	if err := CheckLabelDistribution([]any{[]any{"nested"}}); err == nil {
		t.Fatal("expected unsupported label type error")
	}
}

func TestLabelHistogram(t *testing.T) {
	hist, err := LabelHistogram([]any{int64(1), int64(0), int64(1)})
	if err != nil {
		t.Fatalf("LabelHistogram: %v", err)
	}
	if hist["1"] != 2 || hist["0"] != 1 {
		t.Fatalf("unexpected histogram %v", hist)
	}
}

func labeledSplit(counts map[string]int, order []string) *datasets.Table {
	var rows []datasets.Row
	i := 0
	for _, label := range order {
		for j := 0; j < counts[label]; j++ {
			rows = append(rows, datasets.Row{"text": fmt.Sprintf("t%d", i), LabelColumn: label})
			i++
		}
	}
	return datasets.FromRows(rows)
}

func TestStratifiedSubsamplePreservesDistribution(t *testing.T) {
	tbl := labeledSplit(map[string]int{"a": 600, "b": 300, "c": 100}, []string{"a", "b", "c"})
	dd := datasets.DatasetDict{"train": tbl, "test": labeledSplit(map[string]int{"a": 5}, []string{"a"})}

	out, err := StratifiedSubsample(dd, 42, []string{"train"}, LabelColumn, 100)
	if err != nil {
		t.Fatalf("StratifiedSubsample: %v", err)
	}
	if out["train"].Len() != 100 {
		t.Fatalf("expected 100 rows, got %d", out["train"].Len())
	}
	labels, _ := out["train"].Column(LabelColumn)
	hist, _ := LabelHistogram(labels)
	if hist["a"] != 60 || hist["b"] != 30 || hist["c"] != 10 {
		t.Fatalf("expected 60/30/10, got %v", hist)
	}
	if out["test"].Len() != 5 {
		t.Fatalf("expected untouched test split, got %d rows", out["test"].Len())
	}

	texts, _ := out["train"].StringColumn("text")
	original, _ := tbl.StringColumn("text")
	pos := make(map[string]int, len(original))
	for i, s := range original {
		pos[s] = i
	}
	for i := 1; i < len(texts); i++ {
		if pos[texts[i-1]] >= pos[texts[i]] {
			t.Fatalf("expected original relative order, %s before %s", texts[i-1], texts[i])
		}
	}
}

func TestStratifiedSubsampleDeterministic(t *testing.T) {
	tbl := labeledSplit(map[string]int{"x": 37, "y": 21, "z": 9}, []string{"x", "y", "z"})
	dd := datasets.DatasetDict{"test": tbl}

	first, err := StratifiedSubsample(dd, 7, []string{"test"}, LabelColumn, 20)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := StratifiedSubsample(dd, 7, []string{"test"}, LabelColumn, 20)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	a, _ := first["test"].StringColumn("text")
	b, _ := second["test"].StringColumn("text")
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("expected identical output for identical seed:\n%v\n%v", a, b)
	}
	if len(a) != 20 {
		t.Fatalf("expected 20 rows, got %d", len(a))
	}

	other, err := StratifiedSubsample(dd, 8, []string{"test"}, LabelColumn, 20)
	if err != nil {
		t.Fatalf("other seed: %v", err)
	}
	c, _ := other["test"].StringColumn("text")
	if reflect.DeepEqual(a, c) {
		t.Fatalf("expected a different seed to pick a different sample")
	}
}

func TestStratifiedSubsampleFailsOnSingletonClass(t *testing.T) {
	tbl := labeledSplit(map[string]int{"a": 10, "b": 1}, []string{"a", "b"})
	_, err := StratifiedSubsample(datasets.DatasetDict{"train": tbl}, 42, []string{"train"}, LabelColumn, 5)
	var insufficient *InsufficientLabelError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientLabelError, got %v", err)
	}
	if insufficient.Split != "train" {
		t.Fatalf("expected split name in error, got %q", insufficient.Split)
	}
}

func TestStratifiedSubsampleErrors(t *testing.T) {
	tbl := labeledSplit(map[string]int{"a": 4, "b": 4, "c": 4}, []string{"a", "b", "c"})
	dd := datasets.DatasetDict{"train": tbl}

	if _, err := StratifiedSubsample(dd, 1, []string{"train"}, LabelColumn, 2); err == nil {
		t.Fatal("expected error when sample size is below class count")
	}
	if _, err := StratifiedSubsample(dd, 1, []string{"dev"}, LabelColumn, 2); !errors.Is(err, datasets.ErrSplitNotFound) {
		t.Fatalf("expected ErrSplitNotFound, got %v", err)
	}
	if _, err := StratifiedSubsample(dd, 1, []string{"train"}, "missing", 2); !errors.Is(err, datasets.ErrColumnNotFound) {
		t.Fatalf("expected ErrColumnNotFound, got %v", err)
	}
	if _, err := StratifiedSubsample(dd, 1, []string{"train"}, LabelColumn, 0); err == nil {
		t.Fatal("expected error for non-positive sample size")
	}
}

func TestStratifiedSubsampleNilSplit(t *testing.T) {
	dd := datasets.DatasetDict{
		"train": labeledSplit(map[string]int{"a": 4, "b": 4}, []string{"a", "b"}),
		"dev":   nil,
	}
	if _, err := StratifiedSubsample(dd, 1, []string{"train"}, LabelColumn, 4); !errors.Is(err, datasets.ErrSplitNotFound) {
		t.Fatalf("expected ErrSplitNotFound for a nil split, got %v", err)
	}
}

func TestStratifiedSubsampleSmallSplitUntouched(t *testing.T) {
	tbl := labeledSplit(map[string]int{"a": 1, "b": 2}, []string{"a", "b"})
	out, err := StratifiedSubsample(datasets.DatasetDict{"train": tbl}, 1, []string{"train"}, LabelColumn, 10)
	if err != nil {
		t.Fatalf("expected small split to be left alone, got %v", err)
	}
	if out["train"].Len() != 3 {
		t.Fatalf("expected 3 rows, got %d", out["train"].Len())
	}
}

func TestAllocateQuotas(t *testing.T) {
	tests := []struct {
		name  string
		sizes []int
		n     int
		want  []int
	}{
		{"exact", []int{50, 30, 20}, 10, []int{5, 3, 2}},
		{"remainder to largest fraction", []int{5, 3, 2}, 5, []int{3, 1, 1}},
		{"tie goes to first seen", []int{2, 2}, 3, []int{2, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := 0
			for _, s := range tt.sizes {
				total += s
			}
			got := allocateQuotas(tt.sizes, total, tt.n)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("allocateQuotas(%v, %d) = %v, want %v", tt.sizes, tt.n, got, tt.want)
			}
		})
	}
}
