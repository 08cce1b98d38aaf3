package textnorm

import (
	"strings"
	"testing"
)

func TestCleanStripsTagsAndDecodesEntities(t *testing.T) {
	in := "<p>AI &amp; robotics: &quot;breakthrough&quot;</p>\n\n<a href=\"x\">link</a>"
	got := Clean(in)
	want := `AI & robotics: "breakthrough" link`
	if got != want {
		t.Errorf("Clean() = %q, want %q", got, want)
	}
}

func TestCleanUnknownEntitiesPassThrough(t *testing.T) {
	got := Clean("caf&eacute; &#39;quoted&#39;")
	if !strings.Contains(got, "&eacute;") {
		t.Errorf("unknown entity should pass through, got %q", got)
	}
	if !strings.Contains(got, "'quoted'") {
		t.Errorf("&#39; should decode, got %q", got)
	}
}

func TestCleanEmptyInput(t *testing.T) {
	if got := Clean(""); got != "" {
		t.Errorf("Clean(\"\") = %q, want empty", got)
	}
}

func TestExtractKeywordsDropsStopWordsAndShortTokens(t *testing.T) {
	keys := ExtractKeywords("The robots and the drones will disrupt logistics")
	set := make(map[string]bool)
	for _, k := range keys {
		set[k] = true
	}
	for _, want := range []string{"robots", "drones", "disrupt", "logistics"} {
		if !set[want] {
			t.Errorf("missing keyword %q in %v", want, keys)
		}
	}
	for _, bad := range []string{"the", "and", "will"} {
		if set[bad] {
			t.Errorf("stop word %q leaked into %v", bad, keys)
		}
	}
}

func TestExtractKeywordsDeduplicates(t *testing.T) {
	keys := ExtractKeywords("robots robots ROBOTS")
	if len(keys) != 1 || keys[0] != "robots" {
		t.Errorf("expected single deduplicated token, got %v", keys)
	}
}

func TestExtractKeywordsStripsPunctuation(t *testing.T) {
	keys := ExtractKeywords("open-source, models! (2026)")
	set := make(map[string]bool)
	for _, k := range keys {
		set[k] = true
	}
	for _, want := range []string{"open", "source", "models", "2026"} {
		if !set[want] {
			t.Errorf("punctuation should split tokens, missing %q in %v", want, keys)
		}
	}
}

func TestExtractKeywordsEmptyInput(t *testing.T) {
	if keys := ExtractKeywords(""); len(keys) != 0 {
		t.Errorf("expected empty set, got %v", keys)
	}
}

// Re-normalizing already-normalized text must not introduce new tokens.
func TestExtractKeywordsIdempotent(t *testing.T) {
	first := ExtractKeywords("Quantum computing startups raise record funding; analysts remain skeptical")
	second := ExtractKeywords(strings.Join(first, " "))

	firstSet := make(map[string]bool)
	for _, k := range first {
		firstSet[k] = true
	}
	for _, k := range second {
		if !firstSet[k] {
			t.Errorf("re-extraction produced new token %q", k)
		}
	}
}
