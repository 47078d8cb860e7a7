// internal/report/catalogue.go
package report

import (
	"fmt"
	"io"

	"github.com/mwiater/mteb/internal/tasks"
	"github.com/mwiater/mteb/internal/taskmeta"
)

// Catalogue is the exported list of task metadata.
type Catalogue struct {
	Tasks []taskmeta.TaskMetadata `json:"tasks" yaml:"tasks"`
}

// NewCatalogue copies the metadata of every task, keeping the given order.
func NewCatalogue(ts []tasks.Task) Catalogue {
	c := Catalogue{Tasks: make([]taskmeta.TaskMetadata, 0, len(ts))}
	for _, t := range ts {
		c.Tasks = append(c.Tasks, *t.Metadata())
	}
	return c
}

// ExportCatalogue writes the metadata of ts in the requested format.
func ExportCatalogue(w io.Writer, ts []tasks.Task, format Format) error {
	c := NewCatalogue(ts)
	switch format {
	case FormatJSON:
		return WriteJSON(w, c)
	case FormatYAML:
		return WriteYAML(w, c)
	case FormatHTML:
		return WriteHTMLCatalogue(w, c)
	case FormatMarkdown:
		return writeCatalogueMarkdown(w, c)
	}
	return fmt.Errorf("unsupported catalogue format %q", format)
}

func writeCatalogueMarkdown(w io.Writer, c Catalogue) error {
	if _, err := io.WriteString(w, "| Task | Type | Category | Main score | Languages | Splits |\n|---|---|---|---|---:|---|\n"); err != nil {
		return err
	}
	for _, m := range c.Tasks {
		name := m.Name
		if m.IsSuperseded() {
			name += " (superseded by " + m.SupersededBy + ")"
		}
		if _, err := fmt.Fprintf(w, "| %s | %s | %s | %s | %d | %v |\n",
			name, m.Type, m.Category, m.MainScore, len(m.Languages()), m.EvalSplits); err != nil {
			return err
		}
	}
	return nil
}
