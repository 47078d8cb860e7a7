// internal/transform/transform.go
// Package transform reshapes raw datasets into the layouts task evaluators expect.
package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mwiater/mteb/internal/datasets"
)

const (
	// SentencesColumn and LabelsColumn are the clustering column names.
	SentencesColumn = "sentences"
	LabelsColumn    = "labels"
	// LabelColumn is the classification label column name.
	LabelColumn = "label"

	minClassMembers = 2
)

// InsufficientLabelError reports label classes too small to stratify.
type InsufficientLabelError struct {
	Split  string
	Counts map[string]int
	Min    int
}

func (e *InsufficientLabelError) Error() string {
	parts := make([]string, 0, len(e.Counts))
	for label, n := range e.Counts {
		parts = append(parts, fmt.Sprintf("%s=%d", label, n))
	}
	sort.Strings(parts)
	where := ""
	if e.Split != "" {
		where = " in split " + e.Split
	}
	return fmt.Sprintf("label classes%s have fewer than %d members, cannot stratify: %s", where, e.Min, strings.Join(parts, ", "))
}

// RenameColumn copies the values of from into a column named to, across every split.
func RenameColumn(dd datasets.DatasetDict, from, to string) (datasets.DatasetDict, error) {
	out, err := dd.RenameColumn(from, to)
	if err != nil {
		return nil, fmt.Errorf("rename column: %w", err)
	}
	return out, nil
}

// FlattenClustering turns rows of parallel sentence/label lists into one row per
// sentence. Order is preserved and every sentence keeps its label.
func FlattenClustering(tbl *datasets.Table, sentencesCol, labelsCol string) (*datasets.Table, error) {
	sentenceLists, err := tbl.Column(sentencesCol)
	if err != nil {
		return nil, err
	}
	labelLists, err := tbl.Column(labelsCol)
	if err != nil {
		return nil, err
	}

	sentences := make([]any, 0)
	labels := make([]any, 0)
	for i := range sentenceLists {
		s, ok := sentenceLists[i].([]any)
		if !ok {
			return nil, fmt.Errorf("row %d: column %q is %T, want a list", i, sentencesCol, sentenceLists[i])
		}
		l, ok := labelLists[i].([]any)
		if !ok {
			return nil, fmt.Errorf("row %d: column %q is %T, want a list", i, labelsCol, labelLists[i])
		}
		if len(s) != len(l) {
			return nil, fmt.Errorf("row %d: %d sentences but %d labels", i, len(s), len(l))
		}
		sentences = append(sentences, s...)
		labels = append(labels, l...)
	}

	out := datasets.NewTable()
	if err := out.AddColumn(LabelsColumn, labels); err != nil {
		return nil, err
	}
	if err := out.AddColumn(SentencesColumn, sentences); err != nil {
		return nil, err
	}
	return out, nil
}

// CheckLabelDistribution fails when any label appears fewer than twice.
func CheckLabelDistribution(labels []any) error {
	groups, err := groupByLabel(labels)
	if err != nil {
		return err
	}
	return checkGroups(groups, "")
}

// LabelHistogram counts labels by their display form.
func LabelHistogram(labels []any) (map[string]int, error) {
	groups, err := groupByLabel(labels)
	if err != nil {
		return nil, err
	}
	hist := make(map[string]int, len(groups))
	for _, g := range groups {
		hist[g.display] += len(g.indices)
	}
	return hist, nil
}

// LabelKey returns a comparable key for a scalar label value.
func LabelKey(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return "s:" + val, nil
	case int64:
		return fmt.Sprintf("i:%d", val), nil
	case int:
		return fmt.Sprintf("i:%d", val), nil
	case float64:
		return fmt.Sprintf("f:%g", val), nil
	case bool:
		return fmt.Sprintf("b:%t", val), nil
	default:
		return "", fmt.Errorf("label %v has unsupported type %T", v, v)
	}
}

// labelGroup is one label class and the rows that carry it.
type labelGroup struct {
	display string
	indices []int
}

// groupByLabel groups row indices by label, classes in first-seen order.
func groupByLabel(labels []any) ([]labelGroup, error) {
	pos := make(map[string]int)
	var groups []labelGroup
	for i, v := range labels {
		key, err := LabelKey(v)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		idx, ok := pos[key]
		if !ok {
			idx = len(groups)
			pos[key] = idx
			groups = append(groups, labelGroup{display: fmt.Sprint(v)})
		}
		groups[idx].indices = append(groups[idx].indices, i)
	}
	return groups, nil
}

func checkGroups(groups []labelGroup, split string) error {
	small := make(map[string]int)
	for _, g := range groups {
		if len(g.indices) < minClassMembers {
			small[g.display] = len(g.indices)
		}
	}
	if len(small) > 0 {
		return &InsufficientLabelError{Split: split, Counts: small, Min: minClassMembers}
	}
	return nil
}
