// internal/cli/validate_entry.go
package mteb

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"go.yaml.in/yaml/v3"

	"github.com/mwiater/mteb/internal/taskmeta"
	"github.com/mwiater/mteb/internal/tasks"
)

var (
	passResult = color.New(color.FgGreen, color.Bold).SprintFunc()
	failResult = color.New(color.FgRed, color.Bold).SprintFunc()
)

// ErrValidationFailed is returned when at least one metadata record is invalid.
var ErrValidationFailed = errors.New("metadata validation failed")

// runValidate checks registered tasks by name (all when names is empty) and
// any metadata files, printing one PASS or FAIL line per record.
func runValidate(out io.Writer, reg *tasks.Registry, names, files []string) error {
	var metas []*taskmeta.TaskMetadata
	var failed int

	if len(names) == 0 && len(files) == 0 {
		names = reg.Names()
	}
	for _, name := range names {
		task, err := reg.Get(name)
		if err != nil {
			fmt.Fprintf(out, "%s %s: %v\n", failResult("FAIL"), name, err)
			failed++
			continue
		}
		metas = append(metas, task.Metadata())
	}
	for _, path := range files {
		meta, err := readMetadataFile(path)
		if err != nil {
			fmt.Fprintf(out, "%s %s: %v\n", failResult("FAIL"), path, err)
			failed++
			continue
		}
		metas = append(metas, meta)
	}

	for _, meta := range metas {
		err := meta.Validate()
		if err == nil {
			fmt.Fprintf(out, "%s %s\n", passResult("PASS"), meta.Name)
			continue
		}
		failed++
		fmt.Fprintf(out, "%s %s\n", failResult("FAIL"), meta.Name)
		var verr *taskmeta.ValidationError
		if errors.As(err, &verr) {
			for _, p := range verr.Problems {
				fmt.Fprintf(out, "    - %s\n", p)
			}
		} else {
			fmt.Fprintf(out, "    - %v\n", err)
		}
	}

	checked := len(names) + len(files)
	fmt.Fprintf(out, "\n%d checked, %d failed\n", checked, failed)
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrValidationFailed, failed, checked)
	}
	return nil
}

// readMetadataFile decodes one TaskMetadata from a .json, .yaml or .yml file.
func readMetadataFile(path string) (*taskmeta.TaskMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var meta taskmeta.TaskMetadata
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &meta)
	default:
		err = json.Unmarshal(data, &meta)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &meta, nil
}
