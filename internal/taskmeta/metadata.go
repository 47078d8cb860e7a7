// internal/taskmeta/metadata.go
// Package taskmeta describes benchmark tasks: where their data lives, which
// languages and splits they cover, how they are scored and where they come from.
package taskmeta

import (
	"encoding/json"
	"fmt"

	"go.yaml.in/yaml/v3"
)

// TaskType is the evaluation protocol a task uses.
type TaskType string

const (
	TypeClassification TaskType = "Classification"
	TypeClustering     TaskType = "Clustering"
	TypeReranking      TaskType = "Reranking"
	TypeRetrieval      TaskType = "Retrieval"
)

// TaskTypes lists every supported task type.
var TaskTypes = []TaskType{TypeClassification, TypeClustering, TypeReranking, TypeRetrieval}

// Category describes the granularity of the compared texts: sentence or paragraph.
type Category string

const (
	CategoryS2S Category = "s2s"
	CategoryS2P Category = "s2p"
	CategoryP2P Category = "p2p"
)

// DatasetRef pins a dataset on the hub.
type DatasetRef struct {
	Path            string `json:"path" yaml:"path"`
	Revision        string `json:"revision" yaml:"revision"`
	TrustRemoteCode bool   `json:"trust_remote_code,omitempty" yaml:"trust_remote_code,omitempty"`
}

// DateRange is the inclusive period the texts were written in, as YYYY-MM-DD.
type DateRange struct {
	Start string
	End   string
}

func (d DateRange) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{d.Start, d.End})
}

func (d *DateRange) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("date range needs exactly two dates, got %d", len(pair))
	}
	d.Start, d.End = pair[0], pair[1]
	return nil
}

func (d DateRange) MarshalYAML() (any, error) {
	return []string{d.Start, d.End}, nil
}

func (d *DateRange) UnmarshalYAML(node *yaml.Node) error {
	var pair []string
	if err := node.Decode(&pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("date range needs exactly two dates, got %d", len(pair))
	}
	d.Start, d.End = pair[0], pair[1]
	return nil
}

// Prompt is either a single instruction or one instruction per role ("query", "passage").
type Prompt struct {
	Instruction string
	ByRole      map[string]string
}

// TextPrompt returns a single-instruction prompt.
func TextPrompt(s string) *Prompt { return &Prompt{Instruction: s} }

// RolePrompt returns a per-role prompt.
func RolePrompt(byRole map[string]string) *Prompt { return &Prompt{ByRole: byRole} }

// For returns the instruction for role, falling back to the single instruction.
func (p *Prompt) For(role string) string {
	if p == nil {
		return ""
	}
	if p.ByRole != nil {
		return p.ByRole[role]
	}
	return p.Instruction
}

func (p Prompt) MarshalJSON() ([]byte, error) {
	if p.ByRole != nil {
		return json.Marshal(p.ByRole)
	}
	return json.Marshal(p.Instruction)
}

func (p *Prompt) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		p.Instruction, p.ByRole = s, nil
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("prompt must be a string or an object of strings: %w", err)
	}
	p.Instruction, p.ByRole = "", m
	return nil
}

func (p Prompt) MarshalYAML() (any, error) {
	if p.ByRole != nil {
		return p.ByRole, nil
	}
	return p.Instruction, nil
}

func (p *Prompt) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		p.ByRole = nil
		return node.Decode(&p.Instruction)
	}
	p.Instruction = ""
	return node.Decode(&p.ByRole)
}

// TaskMetadata is the static descriptor of one benchmark task.
type TaskMetadata struct {
	Name                string     `json:"name" yaml:"name"`
	Description         string     `json:"description" yaml:"description"`
	Reference           string     `json:"reference,omitempty" yaml:"reference,omitempty"`
	Dataset             DatasetRef `json:"dataset" yaml:"dataset"`
	Type                TaskType   `json:"type" yaml:"type"`
	Category            Category   `json:"category" yaml:"category"`
	Modalities          []string   `json:"modalities" yaml:"modalities"`
	EvalSplits          []string   `json:"eval_splits" yaml:"eval_splits"`
	EvalLangs           EvalLangs  `json:"eval_langs" yaml:"eval_langs"`
	MainScore           string     `json:"main_score" yaml:"main_score"`
	Date                *DateRange `json:"date,omitempty" yaml:"date,omitempty"`
	Domains             []string   `json:"domains,omitempty" yaml:"domains,omitempty"`
	TaskSubtypes        []string   `json:"task_subtypes,omitempty" yaml:"task_subtypes,omitempty"`
	License             string     `json:"license,omitempty" yaml:"license,omitempty"`
	AnnotationsCreators string     `json:"annotations_creators,omitempty" yaml:"annotations_creators,omitempty"`
	Dialect             []string   `json:"dialect,omitempty" yaml:"dialect,omitempty"`
	SampleCreation      string     `json:"sample_creation,omitempty" yaml:"sample_creation,omitempty"`
	BibtexCitation      string     `json:"bibtex_citation,omitempty" yaml:"bibtex_citation,omitempty"`
	Prompt              *Prompt    `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	AdaptedFrom         []string   `json:"adapted_from,omitempty" yaml:"adapted_from,omitempty"`
	SupersededBy        string     `json:"superseded_by,omitempty" yaml:"superseded_by,omitempty"`
}

// IsMultilingual reports whether the task is split into language subsets.
func (m *TaskMetadata) IsMultilingual() bool { return m.EvalLangs.IsMultilingual() }

// Languages returns every language code the task covers, sorted and de-duplicated.
func (m *TaskMetadata) Languages() []string { return m.EvalLangs.Languages() }

// HFSubsets returns the subset keys to load, or [""] for monolingual tasks.
func (m *TaskMetadata) HFSubsets() []string {
	if !m.IsMultilingual() {
		return []string{""}
	}
	return m.EvalLangs.SubsetNames()
}

// IsSuperseded reports whether a newer version of the task exists.
func (m *TaskMetadata) IsSuperseded() bool { return m.SupersededBy != "" }
