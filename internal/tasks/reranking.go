// internal/tasks/reranking.go
package tasks

import (
	"context"
	"fmt"

	"github.com/mwiater/mteb/internal/datasets"
)

// RerankingSample is one query with its judged candidate passages.
type RerankingSample struct {
	Query      string   `json:"query" yaml:"query"`
	Positive   []string `json:"positive" yaml:"positive"`
	Negative   []string `json:"negative" yaml:"negative"`
	Candidates []string `json:"candidates,omitempty" yaml:"candidates,omitempty"`
}

// RerankingTask holds reranking samples per subset and split.
type RerankingTask struct {
	AbsTask
	// EvaluatorType selects the scoring variant, e.g. "miracl". Empty means the default.
	EvaluatorType string
	Samples       map[string]map[string][]RerankingSample
}

func (t *RerankingTask) LoadData(ctx context.Context, src datasets.Source) error {
	if t.loaded {
		return nil
	}
	out := make(map[string]map[string][]RerankingSample)
	for _, subset := range t.meta.HFSubsets() {
		dd, err := t.loadSplits(ctx, src, subset)
		if err != nil {
			return err
		}
		out[subset] = make(map[string][]RerankingSample, len(dd))
		for split, tbl := range dd {
			samples, err := rerankingSamples(tbl)
			if err != nil {
				return fmt.Errorf("%s: subset %q split %s: %w", t.meta.Name, subset, split, err)
			}
			out[subset][split] = samples
		}
	}
	t.Samples = out
	t.markLoaded()
	return nil
}

func rerankingSamples(tbl *datasets.Table) ([]RerankingSample, error) {
	queries, err := tbl.StringColumn("query")
	if err != nil {
		return nil, err
	}
	positives, err := tbl.Column("positive")
	if err != nil {
		return nil, err
	}
	negatives, err := tbl.Column("negative")
	if err != nil {
		return nil, err
	}
	var candidates []any
	if tbl.HasColumn("candidates") {
		candidates, _ = tbl.Column("candidates")
	}

	samples := make([]RerankingSample, len(queries))
	for i, q := range queries {
		s := RerankingSample{Query: q}
		if s.Positive, err = stringList(positives[i]); err != nil {
			return nil, fmt.Errorf("row %d positive: %w", i, err)
		}
		if s.Negative, err = stringList(negatives[i]); err != nil {
			return nil, fmt.Errorf("row %d negative: %w", i, err)
		}
		if candidates != nil {
			if s.Candidates, err = stringList(candidates[i]); err != nil {
				return nil, fmt.Errorf("row %d candidates: %w", i, err)
			}
		}
		samples[i] = s
	}
	return samples, nil
}

func (t *RerankingTask) Summary() (*Summary, error) {
	if !t.loaded {
		return nil, ErrNotLoaded
	}
	sum := newSummary(&t.meta)
	for subset, splits := range t.Samples {
		for split, samples := range splits {
			st := SplitStats{Rows: len(samples), Queries: len(samples)}
			for _, s := range samples {
				st.Judgments += len(s.Positive)
				st.Documents += len(s.Positive) + len(s.Negative)
			}
			if st.Queries > 0 {
				st.AvgRelevantPerQuery = float64(st.Judgments) / float64(st.Queries)
			}
			sum.set(subset, split, st)
		}
	}
	return sum, nil
}
