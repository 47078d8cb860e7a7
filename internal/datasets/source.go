// internal/datasets/source.go
package datasets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultSubset is the config name used when a dataset has no named subsets.
const DefaultSubset = "default"

// Request identifies one split of one dataset subset.
type Request struct {
	Path     string
	Revision string
	Subset   string
	Split    string
}

func (r Request) String() string {
	subset := r.Subset
	if subset == "" {
		subset = DefaultSubset
	}
	rev := r.Revision
	if rev == "" {
		rev = "main"
	}
	return fmt.Sprintf("%s@%s[%s/%s]", r.Path, rev, subset, r.Split)
}

func (r Request) subsetName() string {
	if s := strings.TrimSpace(r.Subset); s != "" {
		return s
	}
	return DefaultSubset
}

func (r Request) validate() error {
	if strings.TrimSpace(r.Path) == "" {
		return fmt.Errorf("dataset request: path is required")
	}
	if strings.TrimSpace(r.Split) == "" {
		return fmt.Errorf("dataset request %s: split is required", r.Path)
	}
	return nil
}

// Source loads a single dataset split into a Table.
type Source interface {
	Load(ctx context.Context, req Request) (*Table, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, req Request) (*Table, error)

func (f SourceFunc) Load(ctx context.Context, req Request) (*Table, error) {
	return f(ctx, req)
}

// decodeRow decodes one JSON object, keeping integers as int64.
func decodeRow(data []byte) (Row, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	row := make(Row, len(raw))
	for k, v := range raw {
		row[k] = normalizeValue(v)
	}
	return row, nil
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalizeValue(item)
		}
		return out
	default:
		return v
	}
}
