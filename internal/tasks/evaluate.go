// internal/tasks/evaluate.go
package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mwiater/mteb/internal/datasets"
	"github.com/mwiater/mteb/internal/logging"
	"github.com/mwiater/mteb/internal/taskmeta"
)

// MainScoreKey is where AddMainScore copies the task's headline metric.
const MainScoreKey = "main_score"

// Scores holds the metrics an evaluator produced for one split and scope.
type Scores map[string]float64

// Evaluator computes scores for a loaded task. Results are keyed by split, then scope.
type Evaluator interface {
	Evaluate(ctx context.Context, task Task) (map[string]map[string]Scores, error)
}

// EvaluatorFunc adapts a function to Evaluator.
type EvaluatorFunc func(ctx context.Context, task Task) (map[string]map[string]Scores, error)

func (f EvaluatorFunc) Evaluate(ctx context.Context, task Task) (map[string]map[string]Scores, error) {
	return f(ctx, task)
}

// AddMainScore copies scores[meta.MainScore] to scores["main_score"].
func AddMainScore(meta *taskmeta.TaskMetadata, scores Scores) error {
	v, ok := scores[meta.MainScore]
	if !ok {
		return fmt.Errorf("%w: %s needs %q", ErrMainScoreMissing, meta.Name, meta.MainScore)
	}
	scores[MainScoreKey] = v
	return nil
}

// TaskResult is the outcome of one evaluation run.
type TaskResult struct {
	RunID      string                       `json:"run_id" yaml:"run_id"`
	Task       string                       `json:"task" yaml:"task"`
	Revision   string                       `json:"dataset_revision" yaml:"dataset_revision"`
	MainScore  string                       `json:"main_score" yaml:"main_score"`
	Scores     map[string]map[string]Scores `json:"scores" yaml:"scores"`
	StartedAt  time.Time                    `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time                    `json:"finished_at" yaml:"finished_at"`
}

// Duration is the wall time of the run.
func (r *TaskResult) Duration() time.Duration { return r.FinishedAt.Sub(r.StartedAt) }

// Evaluate loads the task, hands it to ev and annotates every score set with main_score.
func Evaluate(ctx context.Context, task Task, src datasets.Source, ev Evaluator) (*TaskResult, error) {
	meta := task.Metadata()
	res := &TaskResult{
		RunID:     uuid.NewString(),
		Task:      meta.Name,
		Revision:  meta.Dataset.Revision,
		MainScore: meta.MainScore,
		StartedAt: time.Now().UTC(),
	}
	logging.LogEvent("run %s: evaluating %s", res.RunID, meta.Name)

	if err := task.LoadData(ctx, src); err != nil {
		return nil, err
	}
	scores, err := ev.Evaluate(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", meta.Name, err)
	}
	for _, split := range sortedKeys(scores) {
		for _, scope := range sortedKeys(scores[split]) {
			if err := AddMainScore(meta, scores[split][scope]); err != nil {
				return nil, fmt.Errorf("split %s scope %q: %w", split, scope, err)
			}
		}
	}
	res.Scores = scores
	res.FinishedAt = time.Now().UTC()
	logging.LogEvent("run %s: %s finished in %s", res.RunID, meta.Name, res.Duration())
	return res, nil
}
