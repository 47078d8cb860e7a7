// internal/tasks/cmteb_clustering.go
package tasks

import "github.com/mwiater/mteb/internal/taskmeta"

// fastClusteringSamples caps the documents embedded per split by the .v2 tasks.
const fastClusteringSamples = 2048

const (
	clsS2SRevision     = "e458b3f5414b62b7f9f83499ac1f5497ae2e869f"
	clsP2PRevision     = "4b6227591c6c1a73bc76b1055f3b7f3588e72476"
	thuNewsS2SRevision = "8a8b2caeda43f39e13c4bc5bea0f8a667896e10d"
	thuNewsP2PRevision = "5798586b105c0434e4f0fe5e767abe619442cf93"

	clsPromptS2S     = "Identify the main category of scholar papers based on the titles"
	clsPromptP2P     = "Identify the main category of scholar papers based on the titles and abstracts"
	thuNewsPromptS2S = "Identify the topic or theme of the given news articles based on the titles"
	thuNewsPromptP2P = "Identify the topic or theme of the given news articles based on the titles and contents"
)

const cslCitation = `@misc{li2022csl,
  archiveprefix = {arXiv},
  author = {Yudong Li and Yuqing Zhang and Zhe Zhao and Linlin Shen and Weijie Liu and Weiquan Mao and Hui Zhang},
  eprint = {2209.05034},
  primaryclass = {cs.CL},
  title = {CSL: A Large-scale Chinese Scientific Literature Dataset},
  year = {2022},
}`

const cslLegacyCitation = `@article{li2022csl,
  author = {Li, Yudong and Zhang, Yuqing and Zhao, Zhe and Shen, Linlin and Liu, Weijie and Mao, Weiquan and Zhang, Hui},
  journal = {arXiv preprint arXiv:2209.05034},
  title = {CSL: A large-scale Chinese scientific literature dataset},
  year = {2022},
}`

const thuctcCitation = `@software{THUCTC,
  author = {Sun, M. and Li, J. and Guo, Z. and Yu, Z. and Zheng, Y. and Si, X. and Liu, Z.},
  note = {THU Chinese Text Classification Toolkit},
  publisher = {THU Natural Language Processing Lab},
  title = {THUCTC: An Efficient Chinese Text Classifier},
  url = {https://github.com/thunlp/THUCTC},
  year = {2016},
}`

const thuNewsLegacyCitation = `@inproceedings{eisner2007proceedings,
  author = {Eisner, Jason},
  booktitle = {Proceedings of the 2007 Joint Conference on Empirical Methods in Natural Language Processing and Computational Natural Language Learning (EMNLP-CoNLL)},
  title = {Proceedings of the 2007 joint conference on empirical methods in natural language processing and computational natural language learning (EMNLP-CoNLL)},
  year = {2007},
}

@inproceedings{li2006comparison,
  author = {Li, Jingyang and Sun, Maosong and Zhang, Xian},
  booktitle = {proceedings of the 21st international conference on computational linguistics and 44th annual meeting of the association for computational linguistics},
  pages = {545--552},
  title = {A comparison and semi-quantitative analysis of words and character-bigrams as features in chinese text categorization},
  year = {2006},
}`

// clusteringBase fills the fields every Chinese clustering task shares.
func clusteringBase(name, path, revision, description, reference string, category taskmeta.Category, prompt string) taskmeta.TaskMetadata {
	return taskmeta.TaskMetadata{
		Name:        name,
		Description: description,
		Reference:   reference,
		Dataset:     taskmeta.DatasetRef{Path: path, Revision: revision},
		Type:        taskmeta.TypeClustering,
		Category:    category,
		Modalities:  []string{"text"},
		EvalSplits:  []string{"test"},
		EvalLangs:   taskmeta.Langs("cmn-Hans"),
		MainScore:   "v_measure",
		Prompt:      taskmeta.TextPrompt(prompt),
	}
}

func newFastClustering(meta taskmeta.TaskMetadata, legacy string) *FastClusteringTask {
	meta.Name = legacy + ".v2"
	meta.AdaptedFrom = []string{legacy}
	meta.AnnotationsCreators = "derived"
	meta.SampleCreation = "found"
	meta.TaskSubtypes = []string{"Thematic clustering", "Topic classification"}
	return &FastClusteringTask{AbsTask: newAbsTask(meta), MaxDocumentsToEmbed: fastClusteringSamples}
}

func newLegacyClustering(meta taskmeta.TaskMetadata, citation string) *ClusteringTask {
	meta.SupersededBy = meta.Name + ".v2"
	meta.BibtexCitation = citation
	return &ClusteringTask{AbsTask: newAbsTask(meta)}
}

const (
	clsS2SDescription     = "Clustering of titles from CLS dataset. Clustering of 13 sets on the main category."
	clsP2PDescription     = "Clustering of titles + abstract from CLS dataset. Clustering of 13 sets on the main category."
	thuNewsS2SDescription = "Clustering of titles from the THUCNews dataset"
	thuNewsP2PDescription = "Clustering of titles + abstracts from the THUCNews dataset"
	clsReference          = "https://arxiv.org/abs/2209.05034"
	thuNewsReference      = "http://thuctc.thunlp.org/"
)

func clsS2S() taskmeta.TaskMetadata {
	return clusteringBase("CLSClusteringS2S", "C-MTEB/CLSClusteringS2S", clsS2SRevision, clsS2SDescription, clsReference, taskmeta.CategoryS2S, clsPromptS2S)
}

func clsP2P() taskmeta.TaskMetadata {
	return clusteringBase("CLSClusteringP2P", "C-MTEB/CLSClusteringP2P", clsP2PRevision, clsP2PDescription, clsReference, taskmeta.CategoryP2P, clsPromptP2P)
}

func thuNewsS2S() taskmeta.TaskMetadata {
	return clusteringBase("ThuNewsClusteringS2S", "C-MTEB/ThuNewsClusteringS2S", thuNewsS2SRevision, thuNewsS2SDescription, thuNewsReference, taskmeta.CategoryS2S, thuNewsPromptS2S)
}

func thuNewsP2P() taskmeta.TaskMetadata {
	return clusteringBase("ThuNewsClusteringP2P", "C-MTEB/ThuNewsClusteringP2P", thuNewsP2PRevision, thuNewsP2PDescription, thuNewsReference, taskmeta.CategoryP2P, thuNewsPromptP2P)
}

func withCSL(meta taskmeta.TaskMetadata) taskmeta.TaskMetadata {
	meta.Date = &taskmeta.DateRange{Start: "2022-01-01", End: "2022-09-12"}
	meta.Domains = []string{"Academic", "Written"}
	meta.License = "apache-2.0"
	meta.BibtexCitation = cslCitation
	return meta
}

func withTHUCNews(meta taskmeta.TaskMetadata) taskmeta.TaskMetadata {
	meta.Date = &taskmeta.DateRange{Start: "2006-01-01", End: "2007-01-01"}
	meta.Domains = []string{"News", "Written"}
	meta.License = "not specified"
	meta.BibtexCitation = thuctcCitation
	return meta
}

func NewCLSClusteringS2S() *ClusteringTask { return newLegacyClustering(clsS2S(), cslLegacyCitation) }
func NewCLSClusteringP2P() *ClusteringTask { return newLegacyClustering(clsP2P(), cslLegacyCitation) }
func NewThuNewsClusteringS2S() *ClusteringTask {
	return newLegacyClustering(thuNewsS2S(), thuNewsLegacyCitation)
}
func NewThuNewsClusteringP2P() *ClusteringTask {
	return newLegacyClustering(thuNewsP2P(), thuNewsLegacyCitation)
}

func NewCLSClusteringFastS2S() *FastClusteringTask {
	return newFastClustering(withCSL(clsS2S()), "CLSClusteringS2S")
}
func NewCLSClusteringFastP2P() *FastClusteringTask {
	return newFastClustering(withCSL(clsP2P()), "CLSClusteringP2P")
}
func NewThuNewsClusteringFastS2S() *FastClusteringTask {
	return newFastClustering(withTHUCNews(thuNewsS2S()), "ThuNewsClusteringS2S")
}
func NewThuNewsClusteringFastP2P() *FastClusteringTask {
	return newFastClustering(withTHUCNews(thuNewsP2P()), "ThuNewsClusteringP2P")
}
