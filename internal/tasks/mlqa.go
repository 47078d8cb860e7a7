// internal/tasks/mlqa.go
package tasks

import (
	"context"
	"fmt"

	"github.com/mwiater/mteb/internal/datasets"
	"github.com/mwiater/mteb/internal/logging"
	"github.com/mwiater/mteb/internal/retrieval"
	"github.com/mwiater/mteb/internal/taskmeta"
)

var mlqaLanguageCodes = map[string]string{
	"ar": "ara-Arab",
	"de": "deu-Latn",
	"en": "eng-Latn",
	"es": "spa-Latn",
	"hi": "hin-Deva",
	"vi": "vie-Latn",
	"zh": "zho-Hans",
}

var mlqaLanguageOrder = []string{"ar", "de", "en", "es", "hi", "vi", "zh"}

// mlqaSubsets maps every mlqa.<context>.<question> config to its two language codes.
func mlqaSubsets() map[string][]string {
	out := make(map[string][]string, len(mlqaLanguageOrder)*len(mlqaLanguageOrder))
	for _, a := range mlqaLanguageOrder {
		for _, b := range mlqaLanguageOrder {
			out[fmt.Sprintf("mlqa.%s.%s", a, b)] = []string{mlqaLanguageCodes[a], mlqaLanguageCodes[b]}
		}
	}
	return out
}

// mlqaEvalLangs re-keys the subsets by language pair, e.g. mlqa.en.de -> eng-deu.
func mlqaEvalLangs() map[string][]string {
	out := make(map[string][]string)
	for _, langs := range mlqaSubsets() {
		out[taskmeta.LangPairKey(langs[0], langs[1])] = langs
	}
	return out
}

// NewMLQARetrieval returns the cross-lingual MLQA retrieval task. Each
// distinct question becomes a query and each distinct context a document.
func NewMLQARetrieval() *RetrievalTask {
	return &RetrievalTask{
		AbsTask: newAbsTask(taskmeta.TaskMetadata{
			Name: "MLQARetrieval",
			Description: "MLQA (MultiLingual Question Answering) is a benchmark dataset for evaluating cross-lingual question answering performance. " +
				"MLQA consists of over 5K extractive QA instances (12K in English) in SQuAD format in seven languages - English, Arabic, " +
				"German, Spanish, Hindi, Vietnamese and Simplified Chinese. MLQA is highly parallel, with QA instances parallel between " +
				"4 different languages on average.",
			Reference: "https://huggingface.co/datasets/mlqa",
			Dataset: taskmeta.DatasetRef{
				Path:            "facebook/mlqa",
				Revision:        "397ed406c1a7902140303e7faf60fff35b58d285",
				TrustRemoteCode: true,
			},
			Type:                taskmeta.TypeRetrieval,
			Category:            taskmeta.CategoryS2P,
			Modalities:          []string{"text"},
			EvalSplits:          []string{"validation", "test"},
			EvalLangs:           taskmeta.Subsets(mlqaEvalLangs()),
			MainScore:           "ndcg_at_10",
			Date:                &taskmeta.DateRange{Start: "2019-01-01", End: "2020-12-31"},
			Domains:             []string{"Encyclopaedic", "Written"},
			TaskSubtypes:        []string{"Question answering"},
			License:             "cc-by-sa-3.0",
			AnnotationsCreators: "human-annotated",
			SampleCreation:      "found",
			BibtexCitation: `@article{lewis2019mlqa,
  author = {Lewis, Patrick and Oguz, Barlas and Rinott, Ruty and Riedel, Sebastian and Schwenk, Holger},
  eid = {arXiv: 1910.07475},
  journal = {arXiv preprint arXiv:1910.07475},
  title = {MLQA: Evaluating Cross-lingual Extractive Question Answering},
  year = {2019},
}`,
		}),
		Loader: loadMLQA,
	}
}

// loadMLQA reads each mlqa.xx.yy config and stores it under its language-pair key.
func loadMLQA(ctx context.Context, t *RetrievalTask, src datasets.Source) (retrieval.Data, error) {
	meta := t.Metadata()
	subsets := mlqaSubsets()
	data := make(retrieval.Data)
	for _, subset := range sortedKeys(subsets) {
		langs := subsets[subset]
		scope := taskmeta.LangPairKey(langs[0], langs[1])
		for _, split := range meta.EvalSplits {
			req := t.request(subset, split)
			tbl, err := src.Load(ctx, req)
			if err != nil {
				return nil, fmt.Errorf("%s: load %s: %w", meta.Name, req, err)
			}
			sd, err := retrieval.BuildFromPairs(tbl, "question", "context")
			if err != nil {
				return nil, fmt.Errorf("%s: %s: %w", meta.Name, req, err)
			}
			if data[scope] == nil {
				data[scope] = make(map[string]*retrieval.SplitData)
			}
			data[scope][split] = sd
			logging.LogDebug("%s scope=%s split=%s queries=%d docs=%d", meta.Name, scope, split, len(sd.Queries), len(sd.Corpus))
		}
	}
	return data, nil
}
