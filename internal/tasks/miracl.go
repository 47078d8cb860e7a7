// internal/tasks/miracl.go
package tasks

import "github.com/mwiater/mteb/internal/taskmeta"

var miraclLanguages = map[string][]string{
	"ar": {"ara-Arab"},
	"bn": {"ben-Beng"},
	"de": {"deu-Latn"},
	"en": {"eng-Latn"},
	"es": {"spa-Latn"},
	"fa": {"fas-Arab"},
	"fi": {"fin-Latn"},
	"fr": {"fra-Latn"},
	"hi": {"hin-Deva"},
	"id": {"ind-Latn"},
	"ja": {"jpn-Jpan"},
	"ko": {"kor-Kore"},
	"ru": {"rus-Cyrl"},
	"sw": {"swa-Latn"},
	"te": {"tel-Telu"},
	"th": {"tha-Thai"},
	"yo": {"yor-Latn"},
	"zh": {"zho-Hans"},
}

const miraclCitation = `@article{10.1162/tacl_a_00595,
  author = {Zhang, Xinyu and Thakur, Nandan and Ogundepo, Odunayo and Kamalloo, Ehsan and Alfonso-Hermelo, David and Li, Xiaoguang and Liu, Qun and Rezagholizadeh, Mehdi and Lin, Jimmy},
  doi = {10.1162/tacl_a_00595},
  issn = {2307-387X},
  journal = {Transactions of the Association for Computational Linguistics},
  month = {09},
  pages = {1114-1131},
  title = {{MIRACL: A Multilingual Retrieval Dataset Covering 18 Diverse Languages}},
  volume = {11},
  year = {2023},
}`

// NewMIRACLReranking returns the 18-language MIRACL reranking task.
func NewMIRACLReranking() *RerankingTask {
	return &RerankingTask{
		AbsTask: newAbsTask(taskmeta.TaskMetadata{
			Name:        "MIRACLReranking",
			Description: "MIRACL (Multilingual Information Retrieval Across a Continuum of Languages) is a multilingual retrieval dataset that focuses on search across 18 different languages.",
			Reference:   "https://project-miracl.github.io/",
			Dataset: taskmeta.DatasetRef{
				Path:            "miracl/mmteb-miracl-reranking",
				Revision:        "6d1962c527217f8927fca80f890f14f36b2802af",
				TrustRemoteCode: true,
			},
			Type:                taskmeta.TypeReranking,
			Category:            taskmeta.CategoryS2S,
			Modalities:          []string{"text"},
			EvalSplits:          []string{"dev"},
			EvalLangs:           taskmeta.Subsets(miraclLanguages),
			MainScore:           "NDCG@10(MIRACL)",
			Date:                &taskmeta.DateRange{Start: "2022-06-01", End: "2023-01-30"},
			Domains:             []string{"Encyclopaedic", "Written"},
			License:             "cc-by-sa-4.0",
			AnnotationsCreators: "expert-annotated",
			SampleCreation:      "created",
			BibtexCitation:      miraclCitation,
			Prompt: taskmeta.RolePrompt(map[string]string{
				"query": "Given a question, retrieve Wikipedia passages that answer the question",
			}),
			AdaptedFrom: []string{"MIRACLRetrieval"},
		}),
		EvaluatorType: "miracl",
	}
}
