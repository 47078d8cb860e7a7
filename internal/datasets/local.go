// internal/datasets/local.go
package datasets

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mwiater/mteb/internal/logging"
)

const maxLineBytes = 16 << 20

// LocalSource reads splits from JSONL files laid out as
// <Root>/<dataset path>/<subset>/<split>.jsonl.
type LocalSource struct {
	Root string
}

// NewLocalSource returns a LocalSource rooted at root.
func NewLocalSource(root string) *LocalSource {
	return &LocalSource{Root: root}
}

// SplitPath returns the file a request resolves to.
func (s *LocalSource) SplitPath(req Request) string {
	return filepath.Join(s.Root, filepath.FromSlash(req.Path), req.subsetName(), req.Split+".jsonl")
}

func (s *LocalSource) Load(ctx context.Context, req Request) (*Table, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := s.SplitPath(req)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", req, err)
	}
	defer f.Close()

	rows, err := readJSONL(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	logging.LogDataset("read", "local", req.Path, req.Subset, req.Split, map[string]int{"rows": len(rows)})
	return FromRows(rows), nil
}

// readJSONL decodes one JSON object per line. Blank lines are skipped; a
// malformed line is an error.
func readJSONL(r io.Reader) ([]Row, error) {
	var rows []Row
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1<<20), maxLineBytes)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		row, err := decodeRow([]byte(text))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}
