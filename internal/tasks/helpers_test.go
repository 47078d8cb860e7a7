package tasks

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mwiater/mteb/internal/datasets"
)

// writeSplit writes rows as <root>/<path>/<subset>/<split>.jsonl.
func writeSplit(t *testing.T, root, path, subset, split string, rows []map[string]any) {
	t.Helper()
	if subset == "" {
		subset = datasets.DefaultSubset
	}
	dir := filepath.Join(root, filepath.FromSlash(path), subset)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	f, err := os.Create(filepath.Join(dir, split+".jsonl"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
}

// recordingSource serves tables from fn and remembers every request.
type recordingSource struct {
	fn       func(req datasets.Request) (*datasets.Table, error)
	requests []datasets.Request
}

func (s *recordingSource) Load(_ context.Context, req datasets.Request) (*datasets.Table, error) {
	s.requests = append(s.requests, req)
	return s.fn(req)
}
