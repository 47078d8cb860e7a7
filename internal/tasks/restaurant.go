// internal/tasks/restaurant.go
package tasks

import "github.com/mwiater/mteb/internal/taskmeta"

// NewRestaurantReviewSentimentClassification returns the Arabic restaurant
// review sentiment task. Labels: 0 negative, 1 positive.
func NewRestaurantReviewSentimentClassification() *ClassificationTask {
	return &ClassificationTask{
		AbsTask: newAbsTask(taskmeta.TaskMetadata{
			Name: "RestaurantReviewSentimentClassification",
			Dataset: taskmeta.DatasetRef{
				Path:     "hadyelsahar/ar_res_reviews",
				Revision: "d51bf2435d030e0041344f576c5e8d7154828977",
			},
			Description:         "Dataset of 8364 restaurant reviews from qaym.com in Arabic for sentiment analysis",
			Reference:           "https://link.springer.com/chapter/10.1007/978-3-319-18117-2_2",
			Type:                taskmeta.TypeClassification,
			Category:            taskmeta.CategoryS2S,
			Modalities:          []string{"text"},
			EvalSplits:          []string{"train"},
			EvalLangs:           taskmeta.Langs("ara-Arab"),
			MainScore:           "accuracy",
			Date:                &taskmeta.DateRange{Start: "2014-01-01", End: "2015-01-01"},
			Domains:             []string{"Reviews", "Written"},
			TaskSubtypes:        []string{"Sentiment/Hate speech"},
			License:             "not specified",
			AnnotationsCreators: "derived",
			Dialect:             []string{"ara-arab-EG", "ara-arab-JO", "ara-arab-SA"},
			SampleCreation:      "found",
			BibtexCitation: `@inproceedings{elsahar2015building,
  author = {ElSahar, Hady and El-Beltagy, Samhaa R},
  booktitle = {International conference on intelligent text processing and computational linguistics},
  organization = {Springer},
  pages = {23--34},
  title = {Building large arabic multi-domain resources for sentiment analysis},
  year = {2015},
}`,
		}),
		Transform: renameAndSubsample("polarity", "train"),
	}
}
