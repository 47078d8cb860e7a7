// internal/tasks/task.go
// Package tasks implements the benchmark task kinds, the concrete task
// catalogue and the hand-off to an external evaluator.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/mwiater/mteb/internal/datasets"
	"github.com/mwiater/mteb/internal/logging"
	"github.com/mwiater/mteb/internal/taskmeta"
)

// DefaultSeed seeds every random choice a task makes unless overridden.
const DefaultSeed int64 = 42

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrDuplicateTask    = errors.New("task already registered")
	ErrMainScoreMissing = errors.New("main score missing from evaluator scores")
	ErrNotLoaded        = errors.New("task data not loaded")
)

// Task is the behaviour shared by every task kind.
type Task interface {
	Metadata() *taskmeta.TaskMetadata
	// LoadData fetches and transforms the task's data. Calling it again after a
	// successful load does nothing.
	LoadData(ctx context.Context, src datasets.Source) error
	IsLoaded() bool
	SetSeed(seed int64)
	Summary() (*Summary, error)
}

// AbsTask carries what every task kind needs: metadata, seed and load state.
type AbsTask struct {
	meta   taskmeta.TaskMetadata
	Seed   int64
	loaded bool
}

func newAbsTask(meta taskmeta.TaskMetadata) AbsTask {
	return AbsTask{meta: meta, Seed: DefaultSeed}
}

func (a *AbsTask) Metadata() *taskmeta.TaskMetadata { return &a.meta }

func (a *AbsTask) IsLoaded() bool { return a.loaded }

// SetSeed overrides the seed; zero keeps DefaultSeed.
func (a *AbsTask) SetSeed(seed int64) {
	if seed == 0 {
		seed = DefaultSeed
	}
	a.Seed = seed
}

func (a *AbsTask) request(subset, split string) datasets.Request {
	return datasets.Request{
		Path:     a.meta.Dataset.Path,
		Revision: a.meta.Dataset.Revision,
		Subset:   subset,
		Split:    split,
	}
}

// loadSplits loads every eval split of one subset.
func (a *AbsTask) loadSplits(ctx context.Context, src datasets.Source, subset string) (datasets.DatasetDict, error) {
	dd := make(datasets.DatasetDict, len(a.meta.EvalSplits))
	for _, split := range a.meta.EvalSplits {
		req := a.request(subset, split)
		tbl, err := src.Load(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("%s: load %s: %w", a.meta.Name, req, err)
		}
		dd[split] = tbl
	}
	return dd, nil
}

func (a *AbsTask) markLoaded() {
	a.loaded = true
	logging.LogEvent("task %s loaded (seed=%d)", a.meta.Name, a.Seed)
}

// SplitStats describes the shape of one loaded split.
type SplitStats struct {
	Rows                int            `json:"rows" yaml:"rows"`
	Sentences           int            `json:"sentences,omitempty" yaml:"sentences,omitempty"`
	Labels              map[string]int `json:"labels,omitempty" yaml:"labels,omitempty"`
	Queries             int            `json:"queries,omitempty" yaml:"queries,omitempty"`
	Documents           int            `json:"documents,omitempty" yaml:"documents,omitempty"`
	Judgments           int            `json:"judgments,omitempty" yaml:"judgments,omitempty"`
	AvgRelevantPerQuery float64        `json:"avg_relevant_per_query,omitempty" yaml:"avg_relevant_per_query,omitempty"`
}

// Summary is the per-scope, per-split shape of a loaded task. Monolingual
// tasks use the scope "".
type Summary struct {
	Task   string                           `json:"task" yaml:"task"`
	Type   taskmeta.TaskType                `json:"type" yaml:"type"`
	Scopes map[string]map[string]SplitStats `json:"scopes" yaml:"scopes"`
}

func newSummary(meta *taskmeta.TaskMetadata) *Summary {
	return &Summary{Task: meta.Name, Type: meta.Type, Scopes: make(map[string]map[string]SplitStats)}
}

func (s *Summary) set(scope, split string, st SplitStats) {
	if s.Scopes[scope] == nil {
		s.Scopes[scope] = make(map[string]SplitStats)
	}
	s.Scopes[scope][split] = st
}

// ScopeNames returns the scopes in sorted order.
func (s *Summary) ScopeNames() []string {
	return sortedKeys(s.Scopes)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func wrapTransform(task string, err error) error {
	return fmt.Errorf("%s: dataset transform: %w", task, err)
}
