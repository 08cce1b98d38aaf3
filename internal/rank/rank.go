// Package rank orders the final output collections. Sorts are stable:
// applying a rerank to its own output changes nothing.
package rank

import (
	"sort"

	"pulse-digest/internal/model"
)

// RerankScored returns scored items stable-sorted by final score descending.
// Ties keep their original relative order. The input slice is not modified.
func RerankScored(items []model.ScoredItem) []model.ScoredItem {
	out := make([]model.ScoredItem, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].FinalScore > out[j].FinalScore
	})
	return out
}

// RerankTopics returns topics stable-sorted by social impact score descending.
func RerankTopics(topics []model.Topic) []model.Topic {
	out := make([]model.Topic, len(topics))
	copy(out, topics)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SocialImpactScore > out[j].SocialImpactScore
	})
	return out
}

// Delta reports how far the id moved between two rankings: positive means it
// moved up. The second return is false when the id is missing from either
// list. Diagnostics only; no scoring decision reads this.
func Delta(before, after []string, id string) (int, bool) {
	ib, ia := -1, -1
	for i, v := range before {
		if v == id {
			ib = i
			break
		}
	}
	for i, v := range after {
		if v == id {
			ia = i
			break
		}
	}
	if ib < 0 || ia < 0 {
		return 0, false
	}
	return ib - ia, true
}

// ScoredIDs extracts the item ids in ranking order.
func ScoredIDs(items []model.ScoredItem) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		out = append(out, s.Item.ID)
	}
	return out
}
