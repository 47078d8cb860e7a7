// internal/retrieval/retrieval.go
// Package retrieval builds the query, corpus and relevance-judgment mappings
// that retrieval and reranking evaluators consume.
package retrieval

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mwiater/mteb/internal/datasets"
)

// ErrDanglingJudgment marks a relevance judgment that names an unknown query or document.
var ErrDanglingJudgment = errors.New("relevance judgment references unknown id")

// Document is a single corpus entry.
type Document struct {
	Title string `json:"title" yaml:"title"`
	Text  string `json:"text" yaml:"text"`
}

// Queries maps query id to query text.
type Queries map[string]string

// Corpus maps document id to document.
type Corpus map[string]Document

// RelevantDocs maps query id to document id to relevance grade.
type RelevantDocs map[string]map[string]int

// Add records a judgment for (queryID, docID).
func (r RelevantDocs) Add(queryID, docID string, score int) {
	if r[queryID] == nil {
		r[queryID] = make(map[string]int)
	}
	r[queryID][docID] = score
}

// SplitData holds the three mappings for one split of one language scope.
type SplitData struct {
	Queries      Queries      `json:"queries" yaml:"queries"`
	Corpus       Corpus       `json:"corpus" yaml:"corpus"`
	RelevantDocs RelevantDocs `json:"relevant_docs" yaml:"relevant_docs"`
}

// NewSplitData returns empty, non-nil mappings.
func NewSplitData() *SplitData {
	return &SplitData{
		Queries:      make(Queries),
		Corpus:       make(Corpus),
		RelevantDocs: make(RelevantDocs),
	}
}

// Validate checks that every judgment points at a known query and document.
func (s *SplitData) Validate() error {
	var problems []string
	for _, qid := range sortedKeys(s.RelevantDocs) {
		if _, ok := s.Queries[qid]; !ok {
			problems = append(problems, "query "+qid)
		}
		for _, did := range sortedKeys(s.RelevantDocs[qid]) {
			if _, ok := s.Corpus[did]; !ok {
				problems = append(problems, fmt.Sprintf("document %s (query %s)", did, qid))
			}
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrDanglingJudgment, strings.Join(problems, ", "))
	}
	return nil
}

// Stats summarises the size of a split.
type Stats struct {
	Queries             int     `json:"queries" yaml:"queries"`
	Documents           int     `json:"documents" yaml:"documents"`
	Judgments           int     `json:"judgments" yaml:"judgments"`
	AvgRelevantPerQuery float64 `json:"avg_relevant_per_query" yaml:"avg_relevant_per_query"`
}

// Stats counts queries, documents and judgments.
func (s *SplitData) Stats() Stats {
	st := Stats{Queries: len(s.Queries), Documents: len(s.Corpus)}
	for _, docs := range s.RelevantDocs {
		st.Judgments += len(docs)
	}
	if len(s.RelevantDocs) > 0 {
		st.AvgRelevantPerQuery = float64(st.Judgments) / float64(len(s.RelevantDocs))
	}
	return st
}

// Data maps a language scope ("" for monolingual tasks) to split name to split data.
type Data map[string]map[string]*SplitData

// Split returns the split data for scope and split, creating it when absent.
func (d Data) Split(scope, split string) *SplitData {
	if d[scope] == nil {
		d[scope] = make(map[string]*SplitData)
	}
	if d[scope][split] == nil {
		d[scope][split] = NewSplitData()
	}
	return d[scope][split]
}

// Scopes returns the scope keys in sorted order.
func (d Data) Scopes() []string {
	return sortedKeys(d)
}

// Validate runs SplitData.Validate over every scope and split.
func (d Data) Validate() error {
	for _, scope := range d.Scopes() {
		for _, split := range sortedKeys(d[scope]) {
			if err := d[scope][split].Validate(); err != nil {
				return fmt.Errorf("scope %q split %s: %w", scope, split, err)
			}
		}
	}
	return nil
}

// IDAssigner hands out <prefix><i> ids, one per distinct text, in first-seen order.
type IDAssigner struct {
	prefix string
	ids    map[string]string
}

// NewIDAssigner returns an assigner producing ids like Q0, Q1, ...
func NewIDAssigner(prefix string) *IDAssigner {
	return &IDAssigner{prefix: prefix, ids: make(map[string]string)}
}

// Assign returns the id for text, allocating the next one if text is new.
func (a *IDAssigner) Assign(text string) string {
	if id, ok := a.ids[text]; ok {
		return id
	}
	id := a.prefix + strconv.Itoa(len(a.ids))
	a.ids[text] = id
	return id
}

// Len returns the number of distinct texts seen.
func (a *IDAssigner) Len() int { return len(a.ids) }

// BuildFromPairs scans (query, document) rows once. Each distinct query and
// document text gets an id scoped to this call, and every observed pair is
// judged relevant with weight 1.
func BuildFromPairs(tbl *datasets.Table, queryCol, docCol string) (*SplitData, error) {
	queries, err := tbl.StringColumn(queryCol)
	if err != nil {
		return nil, err
	}
	docs, err := tbl.StringColumn(docCol)
	if err != nil {
		return nil, err
	}

	out := NewSplitData()
	queryIDs := NewIDAssigner("Q")
	docIDs := NewIDAssigner("C")
	for i := range queries {
		qid := queryIDs.Assign(queries[i])
		did := docIDs.Assign(docs[i])
		out.Queries[qid] = queries[i]
		out.Corpus[did] = Document{Title: "", Text: docs[i]}
		out.RelevantDocs.Add(qid, did, 1)
	}
	return out, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
