// internal/taskmeta/validate.go
package taskmeta

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed task_metadata.schema.json
var schemaJSON []byte

var (
	schemaOnce     sync.Once
	compiledSchema *gojsonschema.Schema
	schemaErr      error
)

func metadataSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	})
	return compiledSchema, schemaErr
}

// ValidationError collects every problem found in one metadata record.
type ValidationError struct {
	Task     string
	Problems []string
}

func (e *ValidationError) Error() string {
	name := e.Task
	if name == "" {
		name = "<unnamed>"
	}
	return fmt.Sprintf("invalid metadata for task %s: %s", name, strings.Join(e.Problems, "; "))
}

const dateLayout = "2006-01-02"

// Validate checks the record and returns a *ValidationError listing every problem.
func (m *TaskMetadata) Validate() error {
	problems := m.structuralProblems()

	schemaProblems, err := m.schemaProblems()
	if err != nil {
		return fmt.Errorf("validate %s: %w", m.Name, err)
	}
	problems = append(problems, schemaProblems...)

	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Task: m.Name, Problems: problems}
}

func (m *TaskMetadata) structuralProblems() []string {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if m.Name == "" {
		add("name is empty")
	}
	if m.Dataset.Path == "" {
		add("dataset path is empty")
	}
	if m.Dataset.Revision == "" {
		add("dataset revision is empty")
	}
	if len(m.EvalSplits) == 0 {
		add("eval_splits is empty")
	}
	if m.EvalLangs.Len() == 0 {
		add("eval_langs is empty")
	}
	if !IsKnownType(m.Type) {
		add("unknown task type %q", m.Type)
	} else if !IsRecognizedMainScore(m.Type, m.MainScore) {
		add("main_score %q is not produced by %s evaluators", m.MainScore, m.Type)
	}
	if !IsKnownCategory(m.Category) {
		add("unknown category %q", m.Category)
	}

	for _, code := range m.Languages() {
		if err := ValidateLanguageCode(code); err != nil {
			add("%v", err)
		}
	}
	if m.IsMultilingual() {
		for _, key := range m.EvalLangs.SubsetNames() {
			if codes, _ := m.EvalLangs.Subset(key); len(codes) == 0 {
				add("eval_langs subset %q has no languages", key)
			}
		}
	}

	if m.Date != nil {
		start, errStart := time.Parse(dateLayout, m.Date.Start)
		end, errEnd := time.Parse(dateLayout, m.Date.End)
		switch {
		case errStart != nil:
			add("date start %q is not YYYY-MM-DD", m.Date.Start)
		case errEnd != nil:
			add("date end %q is not YYYY-MM-DD", m.Date.End)
		case end.Before(start):
			add("date range %s..%s ends before it starts", m.Date.Start, m.Date.End)
		}
	}
	return problems
}

func (m *TaskMetadata) schemaProblems() ([]string, error) {
	schema, err := metadataSchema()
	if err != nil {
		return nil, fmt.Errorf("load metadata schema: %w", err)
	}
	doc, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return nil, err
	}
	if result.Valid() {
		return nil, nil
	}
	out := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		out = append(out, "schema: "+e.String())
	}
	return out, nil
}
