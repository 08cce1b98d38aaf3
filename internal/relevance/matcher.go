// Package relevance links arbitrary text to supporting social evidence via
// extracted-keyword overlap. The same matcher backs topic→post, topic→tag,
// and article→social-signal matching.
package relevance

import (
	"sort"
	"strings"

	"pulse-digest/internal/model"
	"pulse-digest/internal/textnorm"
)

// Candidate is one entry of the candidate pool, flattened to the fields the
// matcher needs. Index points back into the caller's source slice.
type Candidate struct {
	Index  int
	Key    string
	Text   string
	Impact float64
}

// Match is a candidate together with its keyword-overlap count.
type Match struct {
	Candidate
	Matches int
}

// Matcher ranks candidates by keyword overlap with a target text.
type Matcher struct {
	norm *textnorm.Normalizer
}

// NewMatcher builds a matcher using the given stop-word list (nil for the
// default).
func NewMatcher(stopWords []string) *Matcher {
	return &Matcher{norm: textnorm.New(stopWords)}
}

// FindRelevant extracts keywords from targetText and returns the candidates
// with the highest overlap, at most topN. Only candidates with at least one
// match are returned; the pool is never padded with zero-match filler.
// Ordering: matches descending, then candidate impact descending, then input
// order.
func (m *Matcher) FindRelevant(targetText string, pool []Candidate, topN int) []Match {
	if topN <= 0 || len(pool) == 0 {
		return nil
	}
	keys := m.norm.ExtractKeywords(targetText)
	if len(keys) == 0 {
		return nil
	}

	matches := make([]Match, 0, len(pool))
	for _, c := range pool {
		haystack := strings.ToLower(c.Text)
		n := 0
		for _, k := range keys {
			if strings.Contains(haystack, k) {
				n++
			}
		}
		if n > 0 {
			matches = append(matches, Match{Candidate: c, Matches: n})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Matches != matches[j].Matches {
			return matches[i].Matches > matches[j].Matches
		}
		return matches[i].Impact > matches[j].Impact
	})

	if len(matches) > topN {
		matches = matches[:topN]
	}
	return matches
}

// PostCandidates flattens posts into matcher candidates.
func PostCandidates(posts []model.SocialPost) []Candidate {
	out := make([]Candidate, 0, len(posts))
	for i, p := range posts {
		out = append(out, Candidate{Index: i, Key: p.ID, Text: p.Content, Impact: p.ImpactScore})
	}
	return out
}

// TagCandidates flattens tags into matcher candidates.
func TagCandidates(tags []model.Tag) []Candidate {
	out := make([]Candidate, 0, len(tags))
	for i, t := range tags {
		out = append(out, Candidate{Index: i, Key: t.Name, Text: t.Name, Impact: t.ImpactScore})
	}
	return out
}
