// internal/tasks/registry.go
package tasks

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/mwiater/mteb/internal/taskmeta"
)

// Factory returns a fresh, unloaded task.
type Factory func() Task

// Registry maps task names to factories. Get always returns a new instance so
// callers never share loaded data.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register validates the task's metadata and adds it under its name.
func (r *Registry) Register(f Factory) error {
	meta := f().Metadata()
	if err := meta.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[meta.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateTask, meta.Name)
	}
	r.factories[meta.Name] = f
	return nil
}

// MustRegister is Register for package initialisation.
func (r *Registry) MustRegister(fs ...Factory) {
	for _, f := range fs {
		if err := r.Register(f); err != nil {
			panic(err)
		}
	}
}

// Get returns a new instance of the named task.
func (r *Registry) Get(name string) (Task, error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, name)
	}
	return f(), nil
}

// Names returns every registered name, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.factories)
}

// All returns a new instance of every task, sorted by name.
func (r *Registry) All() []Task {
	names := r.Names()
	out := make([]Task, 0, len(names))
	for _, name := range names {
		t, _ := r.Get(name)
		out = append(out, t)
	}
	return out
}

// Filter selects tasks. Empty fields match everything.
type Filter struct {
	Type     taskmeta.TaskType
	Language string
	// Name matches case-insensitively anywhere in the task name.
	Name string
	// ExcludeSuperseded drops tasks that have a newer version.
	ExcludeSuperseded bool
}

func (f Filter) matches(meta *taskmeta.TaskMetadata) bool {
	if f.Type != "" && meta.Type != f.Type {
		return false
	}
	if f.Language != "" && !matchesLanguage(meta.Languages(), f.Language) {
		return false
	}
	if f.Name != "" && !strings.Contains(strings.ToLower(meta.Name), strings.ToLower(f.Name)) {
		return false
	}
	if f.ExcludeSuperseded && meta.IsSuperseded() {
		return false
	}
	return true
}

// matchesLanguage accepts a full code (eng-Latn) or a bare language (eng).
func matchesLanguage(codes []string, want string) bool {
	return slices.ContainsFunc(codes, func(code string) bool {
		if code == want {
			return true
		}
		lang, _, _ := strings.Cut(code, "-")
		return lang == want
	})
}

// Filter returns the matching tasks, sorted by name.
func (r *Registry) Filter(f Filter) []Task {
	var out []Task
	for _, t := range r.All() {
		if f.matches(t.Metadata()) {
			out = append(out, t)
		}
	}
	return out
}

// Default holds the built-in task catalogue.
var Default = NewRegistry()

func init() {
	Default.MustRegister(
		func() Task { return NewRestaurantReviewSentimentClassification() },
		func() Task { return NewCLSClusteringS2S() },
		func() Task { return NewCLSClusteringP2P() },
		func() Task { return NewThuNewsClusteringS2S() },
		func() Task { return NewThuNewsClusteringP2P() },
		func() Task { return NewCLSClusteringFastS2S() },
		func() Task { return NewCLSClusteringFastP2P() },
		func() Task { return NewThuNewsClusteringFastS2S() },
		func() Task { return NewThuNewsClusteringFastP2P() },
		func() Task { return NewMIRACLReranking() },
		func() Task { return NewMLQARetrieval() },
		func() Task { return NewStatcanDialogueDatasetRetrieval() },
	)
}

// Get looks a task up in the default registry.
func Get(name string) (Task, error) { return Default.Get(name) }
