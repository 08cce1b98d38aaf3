package relevance

import (
	"testing"

	"pulse-digest/internal/model"
)

func pool(texts ...string) []Candidate {
	out := make([]Candidate, len(texts))
	for i, t := range texts {
		out[i] = Candidate{Index: i, Key: t, Text: t}
	}
	return out
}

func TestFindRelevantOrdersByMatchCount(t *testing.T) {
	m := NewMatcher(nil)
	candidates := pool(
		"quantum computing roadmap update",
		"quantum startups raise funding for computing hardware roadmap",
		"sports roundup weekend",
	)
	got := m.FindRelevant("quantum computing hardware roadmap", candidates, 5)
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	if got[0].Index != 1 {
		t.Errorf("expected richer candidate first, got index %d", got[0].Index)
	}
	if got[0].Matches <= got[1].Matches {
		t.Errorf("expected descending match counts: %d then %d", got[0].Matches, got[1].Matches)
	}
}

func TestFindRelevantExcludesZeroMatches(t *testing.T) {
	m := NewMatcher(nil)
	got := m.FindRelevant("quantum computing", pool("sports roundup", "weather report"), 5)
	if len(got) != 0 {
		t.Errorf("zero-match candidates must not pad the result, got %v", got)
	}
}

func TestFindRelevantTieBreaksByImpact(t *testing.T) {
	m := NewMatcher(nil)
	candidates := []Candidate{
		{Index: 0, Key: "low", Text: "quantum news", Impact: 5},
		{Index: 1, Key: "high", Text: "quantum update", Impact: 50},
	}
	got := m.FindRelevant("quantum breakthrough", candidates, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	if got[0].Key != "high" {
		t.Errorf("tie should break by impact descending, got %q first", got[0].Key)
	}
}

func TestFindRelevantStableBeyondTieBreak(t *testing.T) {
	m := NewMatcher(nil)
	candidates := []Candidate{
		{Index: 0, Key: "first", Text: "quantum alpha", Impact: 10},
		{Index: 1, Key: "second", Text: "quantum beta", Impact: 10},
	}
	got := m.FindRelevant("quantum", candidates, 2)
	if len(got) != 2 || got[0].Key != "first" || got[1].Key != "second" {
		t.Errorf("equal matches and impact must preserve input order, got %v", got)
	}
}

func TestFindRelevantCapsAtTopN(t *testing.T) {
	m := NewMatcher(nil)
	candidates := pool(
		"quantum one", "quantum two", "quantum three", "quantum four", "quantum five",
	)
	got := m.FindRelevant("quantum", candidates, 3)
	if len(got) != 3 {
		t.Errorf("expected topN cap of 3, got %d", len(got))
	}
}

func TestFindRelevantEmptyPool(t *testing.T) {
	m := NewMatcher(nil)
	if got := m.FindRelevant("quantum computing", nil, 3); len(got) != 0 {
		t.Errorf("empty pool must return empty result, got %v", got)
	}
}

func TestFindRelevantNoExtractableKeywords(t *testing.T) {
	m := NewMatcher(nil)
	if got := m.FindRelevant("the and for", pool("quantum"), 3); len(got) != 0 {
		t.Errorf("stop-word-only target must match nothing, got %v", got)
	}
}

func TestPostCandidatesCarryImpact(t *testing.T) {
	posts := []model.SocialPost{
		{ID: "a", Content: "quantum post", ImpactScore: 12.5},
	}
	got := PostCandidates(posts)
	if len(got) != 1 || got[0].Impact != 12.5 || got[0].Key != "a" {
		t.Errorf("unexpected candidates: %v", got)
	}
}

func TestTagCandidatesMatchOnName(t *testing.T) {
	m := NewMatcher(nil)
	tags := []model.Tag{{Name: "quantumcomputing", ImpactScore: 4}}
	got := m.FindRelevant("quantum computing breakthrough", TagCandidates(tags), 3)
	if len(got) != 1 {
		t.Fatalf("expected keyword substring to match tag name, got %v", got)
	}
	if got[0].Matches != 2 {
		t.Errorf("expected both keywords to hit the tag name, got %d", got[0].Matches)
	}
}
