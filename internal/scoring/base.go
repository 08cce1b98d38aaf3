// Package scoring holds the two pure scoring primitives every call site
// depends on: base importance scoring for text items and engagement impact
// scoring for social posts and tags.
package scoring

import (
	"math"
	"strings"
	"time"

	"pulse-digest/internal/lexicon"
	"pulse-digest/internal/model"
)

const (
	// DefaultKeywordScore applies when no lexicon phrase matches the item.
	DefaultKeywordScore = 100

	// QualityMultiplier uplifts items from an allow-listed source.
	QualityMultiplier = 1.15
)

// BaseScorer computes an item's importance score from lexicon matches, a
// source-quality multiplier, and time decay.
type BaseScorer struct {
	lex     *lexicon.Lexicon
	quality []string
}

// NewBaseScorer builds a scorer for the given lexicon. The quality source
// list defaults to the lexicon's own.
func NewBaseScorer(lex *lexicon.Lexicon) *BaseScorer {
	return &BaseScorer{lex: lex, quality: lex.QualitySources()}
}

// Score returns the item's base score at the given time. It is a pure
// function of the item fields, the lexicon, and now.
func (s *BaseScorer) Score(item model.TextItem, now time.Time) float64 {
	haystack := strings.ToLower(item.Title + " " + item.Body)

	// Track the maximum matching weight, not the sum; a "gpt-5" story is not
	// twice as important because it also mentions "openai".
	keywordScore := float64(DefaultKeywordScore)
	matched := false
	for _, e := range s.lex.Entries() {
		if strings.Contains(haystack, e.Phrase) {
			if !matched || e.Weight > keywordScore {
				keywordScore = e.Weight
			}
			matched = true
		}
	}

	multiplier := 1.0
	if s.isQualitySource(item.SourceName) {
		multiplier = QualityMultiplier
	}

	return math.Round(keywordScore * multiplier * timeDecay(item.PublishedAt, now))
}

func (s *BaseScorer) isQualitySource(name string) bool {
	lower := strings.ToLower(name)
	for _, q := range s.quality {
		if q == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(q)) {
			return true
		}
	}
	return false
}

// timeDecay returns a non-increasing multiplier in (0,1] for the item age.
// A zero publishedAt counts as maximally stale, not as an error.
func timeDecay(published, now time.Time) float64 {
	if published.IsZero() {
		return 0.30
	}
	age := now.Sub(published)
	switch {
	case age <= time.Hour:
		return 1.0
	case age <= 6*time.Hour:
		return 0.95
	case age <= 24*time.Hour:
		return 0.85
	case age <= 72*time.Hour:
		return 0.70
	case age <= 168*time.Hour:
		return 0.50
	default:
		return 0.30
	}
}
