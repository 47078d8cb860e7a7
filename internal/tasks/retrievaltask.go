// internal/tasks/retrievaltask.go
package tasks

import (
	"context"
	"fmt"

	"github.com/mwiater/mteb/internal/datasets"
	"github.com/mwiater/mteb/internal/logging"
	"github.com/mwiater/mteb/internal/retrieval"
)

// RetrievalLoader builds the retrieval mappings for every scope and split of a task.
type RetrievalLoader func(ctx context.Context, t *RetrievalTask, src datasets.Source) (retrieval.Data, error)

// RetrievalTask holds queries, corpus and relevance judgments per scope and split.
// Loader defaults to LoadBEIR.
type RetrievalTask struct {
	AbsTask
	Loader RetrievalLoader
	Data   retrieval.Data
}

func (t *RetrievalTask) LoadData(ctx context.Context, src datasets.Source) error {
	if t.loaded {
		return nil
	}
	loader := t.Loader
	if loader == nil {
		loader = LoadBEIR
	}
	data, err := loader(ctx, t, src)
	if err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return fmt.Errorf("%s: %w", t.meta.Name, err)
	}
	t.Data = data
	t.markLoaded()
	return nil
}

func (t *RetrievalTask) Summary() (*Summary, error) {
	if !t.loaded {
		return nil, ErrNotLoaded
	}
	sum := newSummary(&t.meta)
	for scope, splits := range t.Data {
		for split, sd := range splits {
			st := sd.Stats()
			sum.set(scope, split, SplitStats{
				Rows:                st.Judgments,
				Queries:             st.Queries,
				Documents:           st.Documents,
				Judgments:           st.Judgments,
				AvgRelevantPerQuery: st.AvgRelevantPerQuery,
			})
		}
	}
	return sum, nil
}

// BEIR config names. Multilingual datasets prefix them with "<subset>-".
const (
	beirCorpus  = "corpus"
	beirQueries = "queries"
	beirQrels   = "default"
)

func beirConfig(subset, name string) string {
	if subset == "" {
		return name
	}
	if name == beirQrels {
		return subset
	}
	return subset + "-" + name
}

// LoadBEIR reads the BEIR layout: a corpus config (_id, title, text), a
// queries config (_id, text) and a qrels config (query-id, corpus-id, score)
// with one split per eval split. Queries without judgments in a split are dropped.
func LoadBEIR(ctx context.Context, t *RetrievalTask, src datasets.Source) (retrieval.Data, error) {
	meta := t.Metadata()
	data := make(retrieval.Data)
	for _, subset := range meta.HFSubsets() {
		corpusTbl, err := src.Load(ctx, t.request(beirConfig(subset, beirCorpus), beirCorpus))
		if err != nil {
			return nil, fmt.Errorf("%s: load corpus: %w", meta.Name, err)
		}
		corpus, err := beirCorpusFrom(corpusTbl)
		if err != nil {
			return nil, fmt.Errorf("%s: corpus: %w", meta.Name, err)
		}
		queriesTbl, err := src.Load(ctx, t.request(beirConfig(subset, beirQueries), beirQueries))
		if err != nil {
			return nil, fmt.Errorf("%s: load queries: %w", meta.Name, err)
		}
		queries, err := beirQueriesFrom(queriesTbl)
		if err != nil {
			return nil, fmt.Errorf("%s: queries: %w", meta.Name, err)
		}

		for _, split := range meta.EvalSplits {
			qrelsTbl, err := src.Load(ctx, t.request(beirConfig(subset, beirQrels), split))
			if err != nil {
				return nil, fmt.Errorf("%s: load qrels %s: %w", meta.Name, split, err)
			}
			sd := data.Split(subset, split)
			if err := fillBEIRSplit(sd, qrelsTbl, queries, corpus); err != nil {
				return nil, fmt.Errorf("%s: qrels %s: %w", meta.Name, split, err)
			}
			logging.LogDebug("%s scope=%q split=%s queries=%d docs=%d", meta.Name, subset, split, len(sd.Queries), len(sd.Corpus))
		}
	}
	return data, nil
}

func beirCorpusFrom(tbl *datasets.Table) (retrieval.Corpus, error) {
	corpus := make(retrieval.Corpus, tbl.Len())
	for i, row := range tbl.Rows() {
		id, err := idString(row["_id"])
		if err != nil {
			return nil, fmt.Errorf("row %d _id: %w", i, err)
		}
		title, err := textCell(row["title"])
		if err != nil {
			return nil, fmt.Errorf("row %d title: %w", i, err)
		}
		text, err := textCell(row["text"])
		if err != nil {
			return nil, fmt.Errorf("row %d text: %w", i, err)
		}
		corpus[id] = retrieval.Document{Title: title, Text: text}
	}
	return corpus, nil
}

func beirQueriesFrom(tbl *datasets.Table) (retrieval.Queries, error) {
	queries := make(retrieval.Queries, tbl.Len())
	for i, row := range tbl.Rows() {
		id, err := idString(row["_id"])
		if err != nil {
			return nil, fmt.Errorf("row %d _id: %w", i, err)
		}
		text, err := textCell(row["text"])
		if err != nil {
			return nil, fmt.Errorf("row %d text: %w", i, err)
		}
		queries[id] = text
	}
	return queries, nil
}

func fillBEIRSplit(sd *retrieval.SplitData, qrels *datasets.Table, queries retrieval.Queries, corpus retrieval.Corpus) error {
	for i, row := range qrels.Rows() {
		qid, err := idString(row["query-id"])
		if err != nil {
			return fmt.Errorf("row %d query-id: %w", i, err)
		}
		did, err := idString(row["corpus-id"])
		if err != nil {
			return fmt.Errorf("row %d corpus-id: %w", i, err)
		}
		score, err := intCell(row["score"])
		if err != nil {
			return fmt.Errorf("row %d score: %w", i, err)
		}
		sd.RelevantDocs.Add(qid, did, score)
		if q, ok := queries[qid]; ok {
			sd.Queries[qid] = q
		}
	}
	for id, doc := range corpus {
		sd.Corpus[id] = doc
	}
	return nil
}
