// internal/tasks/classification.go
package tasks

import (
	"context"

	"github.com/mwiater/mteb/internal/datasets"
	"github.com/mwiater/mteb/internal/transform"
)

// DatasetTransform reshapes a freshly loaded subset before it is stored.
type DatasetTransform func(seed int64, dd datasets.DatasetDict) (datasets.DatasetDict, error)

// ClassificationTask holds labelled texts per subset and split.
type ClassificationTask struct {
	AbsTask
	Transform DatasetTransform
	// Dataset maps hf subset ("" for monolingual tasks) to its splits.
	Dataset map[string]datasets.DatasetDict
}

func (t *ClassificationTask) LoadData(ctx context.Context, src datasets.Source) error {
	if t.loaded {
		return nil
	}
	out := make(map[string]datasets.DatasetDict)
	for _, subset := range t.meta.HFSubsets() {
		dd, err := t.loadSplits(ctx, src, subset)
		if err != nil {
			return err
		}
		if t.Transform != nil {
			if dd, err = t.Transform(t.Seed, dd); err != nil {
				return wrapTransform(t.meta.Name, err)
			}
		}
		out[subset] = dd
	}
	t.Dataset = out
	t.markLoaded()
	return nil
}

func (t *ClassificationTask) Summary() (*Summary, error) {
	if !t.loaded {
		return nil, ErrNotLoaded
	}
	sum := newSummary(&t.meta)
	for subset, dd := range t.Dataset {
		for split, tbl := range dd {
			st := SplitStats{Rows: tbl.Len()}
			if labels, err := tbl.Column(transform.LabelColumn); err == nil {
				if st.Labels, err = transform.LabelHistogram(labels); err != nil {
					return nil, err
				}
			}
			sum.set(subset, split, st)
		}
	}
	return sum, nil
}

// renameAndSubsample renames the label column and subsamples the given splits.
func renameAndSubsample(from string, splits ...string) DatasetTransform {
	return func(seed int64, dd datasets.DatasetDict) (datasets.DatasetDict, error) {
		renamed, err := transform.RenameColumn(dd, from, transform.LabelColumn)
		if err != nil {
			return nil, err
		}
		return transform.StratifiedSubsample(renamed, seed, splits, transform.LabelColumn, transform.DefaultSampleSize)
	}
}
