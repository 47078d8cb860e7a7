// internal/taskmeta/scores.go
package taskmeta

import "strconv"

var retrievalCutoffs = []int{1, 3, 5, 10, 20, 100, 1000}

var rankingMetrics = []string{"ndcg", "map", "mrr", "recall", "precision"}

var mainScores = func() map[TaskType]map[string]struct{} {
	set := func(names ...string) map[string]struct{} {
		m := make(map[string]struct{}, len(names))
		for _, n := range names {
			m[n] = struct{}{}
		}
		return m
	}
	var atK []string
	for _, metric := range rankingMetrics {
		for _, k := range retrievalCutoffs {
			atK = append(atK, metric+"_at_"+strconv.Itoa(k))
		}
	}
	return map[TaskType]map[string]struct{}{
		TypeClassification: set("accuracy", "f1", "f1_weighted", "precision", "recall", "ap", "ap_weighted"),
		TypeClustering:     set("v_measure"),
		TypeReranking:      set(append([]string{"map", "mrr", "NDCG@10(MIRACL)"}, atK...)...),
		TypeRetrieval:      set(atK...),
	}
}()

// IsRecognizedMainScore reports whether score is a metric evaluators of type t produce.
func IsRecognizedMainScore(t TaskType, score string) bool {
	_, ok := mainScores[t][score]
	return ok
}

// IsKnownType reports whether t is one of TaskTypes.
func IsKnownType(t TaskType) bool {
	_, ok := mainScores[t]
	return ok
}

// IsKnownCategory reports whether c is s2s, s2p or p2p.
func IsKnownCategory(c Category) bool {
	switch c {
	case CategoryS2S, CategoryS2P, CategoryP2P:
		return true
	}
	return false
}
