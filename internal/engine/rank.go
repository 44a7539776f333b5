package engine

import (
	"sort"

	"StockScout/internal/model"
)

// Rank filters out nil evaluations and returns the top N by score,
// descending. The sort is stable, so equal scores keep their input order;
// that is the documented tie-break.
func Rank(evaluations []*model.Evaluation, topN int) []*model.Evaluation {
	ranked := make([]*model.Evaluation, 0, len(evaluations))
	for _, ev := range evaluations {
		if ev != nil {
			ranked = append(ranked, ev)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if topN >= 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}
