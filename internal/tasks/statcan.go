// internal/tasks/statcan.go
package tasks

import (
	"context"
	"fmt"

	"github.com/mwiater/mteb/internal/datasets"
	"github.com/mwiater/mteb/internal/retrieval"
	"github.com/mwiater/mteb/internal/taskmeta"
)

// NewStatcanDialogueDatasetRetrieval returns the English/French conversational
// table retrieval task.
func NewStatcanDialogueDatasetRetrieval() *RetrievalTask {
	return &RetrievalTask{
		AbsTask: newAbsTask(taskmeta.TaskMetadata{
			Name:        "StatcanDialogueDatasetRetrieval",
			Description: "A Dataset for Retrieving Data Tables through Conversations with Genuine Intents, available in English and French.",
			Reference:   "https://mcgill-nlp.github.io/statcan-dialogue-dataset/",
			Dataset: taskmeta.DatasetRef{
				Path:     "McGill-NLP/statcan-dialogue-dataset-retrieval",
				Revision: "7a26938c93e99e0759a1df416896bb72527e2f33",
			},
			Type:       taskmeta.TypeRetrieval,
			Category:   taskmeta.CategoryS2P,
			Modalities: []string{"text"},
			EvalSplits: []string{"dev", "test"},
			EvalLangs: taskmeta.Subsets(map[string][]string{
				"english": {"eng-Latn"},
				"french":  {"fra-Latn"},
			}),
			MainScore:           "recall_at_10",
			Date:                &taskmeta.DateRange{Start: "2020-01-01", End: "2020-04-15"},
			Domains:             []string{"Government", "Web", "Written"},
			TaskSubtypes:        []string{"Conversational retrieval"},
			License:             "https://huggingface.co/datasets/McGill-NLP/statcan-dialogue-dataset-retrieval/blob/main/LICENSE.md",
			AnnotationsCreators: "derived",
			SampleCreation:      "found",
			BibtexCitation: `@inproceedings{lu-etal-2023-statcan,
  address = {Dubrovnik, Croatia},
  author = {Lu, Xing Han  and
Reddy, Siva  and
de Vries, Harm},
  booktitle = {Proceedings of the 17th Conference of the European Chapter of the Association for Computational Linguistics},
  month = may,
  pages = {2799--2829},
  publisher = {Association for Computational Linguistics},
  title = {The {S}tat{C}an Dialogue Dataset: Retrieving Data Tables through Conversations with Genuine Intents},
  url = {https://arxiv.org/abs/2304.01412},
  year = {2023},
}`,
		}),
		Loader: loadStatcan,
	}
}

// loadStatcan reads queries from the queries_<lang> config (one split per eval
// split) and the shared corpus from the corpus config, whose splits are the
// languages. The corpus is attached to every eval split of its language.
func loadStatcan(ctx context.Context, t *RetrievalTask, src datasets.Source) (retrieval.Data, error) {
	meta := t.Metadata()
	data := make(retrieval.Data)
	for _, lang := range meta.HFSubsets() {
		corpusReq := t.request("corpus", lang)
		corpusTbl, err := src.Load(ctx, corpusReq)
		if err != nil {
			return nil, fmt.Errorf("%s: load %s: %w", meta.Name, corpusReq, err)
		}
		corpus, err := statcanCorpus(corpusTbl)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", meta.Name, corpusReq, err)
		}

		for _, split := range meta.EvalSplits {
			req := t.request("queries_"+lang, split)
			tbl, err := src.Load(ctx, req)
			if err != nil {
				return nil, fmt.Errorf("%s: load %s: %w", meta.Name, req, err)
			}
			sd := data.Split(lang, split)
			if err := fillStatcanQueries(sd, tbl); err != nil {
				return nil, fmt.Errorf("%s: %s: %w", meta.Name, req, err)
			}
			for id, doc := range corpus {
				sd.Corpus[id] = doc
			}
		}
	}
	return data, nil
}

func statcanCorpus(tbl *datasets.Table) (retrieval.Corpus, error) {
	corpus := make(retrieval.Corpus, tbl.Len())
	for i, row := range tbl.Rows() {
		id, err := idString(row["doc_id"])
		if err != nil {
			return nil, fmt.Errorf("row %d doc_id: %w", i, err)
		}
		text, err := textCell(row["doc"])
		if err != nil {
			return nil, fmt.Errorf("row %d doc: %w", i, err)
		}
		corpus[id] = retrieval.Document{Text: text}
	}
	return corpus, nil
}

func fillStatcanQueries(sd *retrieval.SplitData, tbl *datasets.Table) error {
	for i, row := range tbl.Rows() {
		raw, err := textCell(row["query"])
		if err != nil {
			return fmt.Errorf("row %d query: %w", i, err)
		}
		query, err := flattenDialogue(raw)
		if err != nil {
			return fmt.Errorf("row %d query: %w", i, err)
		}
		qid, err := idString(row["query_id"])
		if err != nil {
			return fmt.Errorf("row %d query_id: %w", i, err)
		}
		did, err := idString(row["doc_id"])
		if err != nil {
			return fmt.Errorf("row %d doc_id: %w", i, err)
		}
		sd.Queries[qid] = query
		sd.RelevantDocs.Add(qid, did, 1)
	}
	return nil
}
