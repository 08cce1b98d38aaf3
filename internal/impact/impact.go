// Package impact recombines matched social evidence into the per-topic
// social-impact score and the boosted final score.
package impact

import (
	"math"

	"pulse-digest/internal/model"
)

const (
	// boostPerMatch is the percentage uplift contributed by one keyword match.
	boostPerMatch = 5

	// MaxBoostPercentage caps the uplift regardless of match count.
	MaxBoostPercentage = 50
)

// SocialImpactScore averages the impact scores of the matched posts and tags.
// Both lists empty yields 0.
func SocialImpactScore(posts []model.SocialPost, tags []model.Tag) float64 {
	n := len(posts) + len(tags)
	if n == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range posts {
		sum += p.ImpactScore
	}
	for _, t := range tags {
		sum += t.ImpactScore
	}
	return math.Round(sum/float64(n)*100) / 100
}

// Boost derives the boost percentage from the match count and applies it to
// the item's base score. The percentage is clamped to [0, MaxBoostPercentage]
// for any match count.
func Boost(item model.TextItem, matchCount int) (boostPercentage, finalScore float64) {
	if matchCount > 0 {
		boostPercentage = float64(matchCount * boostPerMatch)
		if boostPercentage > MaxBoostPercentage {
			boostPercentage = MaxBoostPercentage
		}
	}
	finalScore = math.Round(item.BaseScore * (1 + boostPercentage/100))
	return boostPercentage, finalScore
}
