// internal/tasks/clustering.go
package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/mwiater/mteb/internal/datasets"
	"github.com/mwiater/mteb/internal/transform"
)

// ClusteringSet is one row of a legacy clustering split: parallel sentence and label lists.
type ClusteringSet struct {
	Sentences []string `json:"sentences" yaml:"sentences"`
	Labels    []string `json:"labels" yaml:"labels"`
}

// ClusteringTask is the legacy clustering kind. Each row is a whole set of
// sentences to cluster.
type ClusteringTask struct {
	AbsTask
	Dataset map[string]datasets.DatasetDict
}

func (t *ClusteringTask) LoadData(ctx context.Context, src datasets.Source) error {
	if t.loaded {
		return nil
	}
	out := make(map[string]datasets.DatasetDict)
	for _, subset := range t.meta.HFSubsets() {
		dd, err := t.loadSplits(ctx, src, subset)
		if err != nil {
			return err
		}
		out[subset] = dd
	}
	t.Dataset = out
	t.markLoaded()
	return nil
}

// Sets decodes every row of one split into a ClusteringSet.
func (t *ClusteringTask) Sets(subset, split string) ([]ClusteringSet, error) {
	if !t.loaded {
		return nil, ErrNotLoaded
	}
	tbl, err := t.Dataset[subset].Split(split)
	if err != nil {
		return nil, err
	}
	sentences, err := tbl.Column(transform.SentencesColumn)
	if err != nil {
		return nil, err
	}
	labels, err := tbl.Column(transform.LabelsColumn)
	if err != nil {
		return nil, err
	}
	sets := make([]ClusteringSet, 0, len(sentences))
	for i := range sentences {
		s, err := stringList(sentences[i])
		if err != nil {
			return nil, fmt.Errorf("row %d sentences: %w", i, err)
		}
		l, err := labelList(labels[i])
		if err != nil {
			return nil, fmt.Errorf("row %d labels: %w", i, err)
		}
		if len(s) != len(l) {
			return nil, fmt.Errorf("row %d: %d sentences but %d labels", i, len(s), len(l))
		}
		sets = append(sets, ClusteringSet{Sentences: s, Labels: l})
	}
	return sets, nil
}

func (t *ClusteringTask) Summary() (*Summary, error) {
	if !t.loaded {
		return nil, ErrNotLoaded
	}
	sum := newSummary(&t.meta)
	for subset, dd := range t.Dataset {
		for split := range dd {
			sets, err := t.Sets(subset, split)
			if err != nil {
				return nil, err
			}
			st := SplitStats{Rows: len(sets), Labels: make(map[string]int)}
			for _, set := range sets {
				st.Sentences += len(set.Sentences)
				for _, l := range set.Labels {
					st.Labels[l]++
				}
			}
			sum.set(subset, split, st)
		}
	}
	return sum, nil
}

// FastClusteringTask flattens the legacy set layout into one sentence per row
// and caps each eval split at MaxDocumentsToEmbed by stratified subsampling.
type FastClusteringTask struct {
	AbsTask
	MaxDocumentsToEmbed int
	Dataset             map[string]datasets.DatasetDict
}

func (t *FastClusteringTask) LoadData(ctx context.Context, src datasets.Source) error {
	if t.loaded {
		return nil
	}
	out := make(map[string]datasets.DatasetDict)
	for _, subset := range t.meta.HFSubsets() {
		dd, err := t.loadSplits(ctx, src, subset)
		if err != nil {
			return err
		}
		if dd, err = t.flattenAndSubsample(dd); err != nil {
			return wrapTransform(t.meta.Name, err)
		}
		out[subset] = dd
	}
	t.Dataset = out
	t.markLoaded()
	return nil
}

func (t *FastClusteringTask) flattenAndSubsample(dd datasets.DatasetDict) (datasets.DatasetDict, error) {
	flat := make(datasets.DatasetDict, len(t.meta.EvalSplits))
	for _, split := range t.meta.EvalSplits {
		tbl, err := dd.Split(split)
		if err != nil {
			return nil, err
		}
		f, err := transform.FlattenClustering(tbl, transform.SentencesColumn, transform.LabelsColumn)
		if err != nil {
			return nil, fmt.Errorf("split %s: %w", split, err)
		}
		labels, err := f.Column(transform.LabelsColumn)
		if err != nil {
			return nil, err
		}
		if err := transform.CheckLabelDistribution(labels); err != nil {
			var insufficient *transform.InsufficientLabelError
			if errors.As(err, &insufficient) {
				insufficient.Split = split
			}
			return nil, err
		}
		flat[split] = f
	}
	n := t.MaxDocumentsToEmbed
	if n <= 0 {
		n = transform.DefaultSampleSize
	}
	return transform.StratifiedSubsample(flat, t.Seed, t.meta.EvalSplits, transform.LabelsColumn, n)
}

func (t *FastClusteringTask) Summary() (*Summary, error) {
	if !t.loaded {
		return nil, ErrNotLoaded
	}
	sum := newSummary(&t.meta)
	for subset, dd := range t.Dataset {
		for split, tbl := range dd {
			labels, err := tbl.Column(transform.LabelsColumn)
			if err != nil {
				return nil, err
			}
			hist, err := transform.LabelHistogram(labels)
			if err != nil {
				return nil, err
			}
			sum.set(subset, split, SplitStats{Rows: tbl.Len(), Sentences: tbl.Len(), Labels: hist})
		}
	}
	return sum, nil
}
