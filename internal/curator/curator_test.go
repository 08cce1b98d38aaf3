package curator

import (
	"strings"
	"testing"

	"pulse-digest/internal/apperr"
	"pulse-digest/internal/model"
	"pulse-digest/internal/relevance"
)

func newCurator() *Curator {
	return New(relevance.NewMatcher(nil))
}

func TestCurateKeepsValidArticleCitations(t *testing.T) {
	topic := model.Topic{
		Title: "Quantum breakthrough",
		Citations: []model.Citation{
			{Title: "Quantum milestone reached", URL: "https://news.example-wire.io/quantum", Kind: model.CitationArticle},
		},
	}
	got, err := newCurator().Curate(topic, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Citations) != 1 || got.Citations[0].Kind != model.CitationArticle {
		t.Errorf("valid article citation should survive, got %v", got.Citations)
	}
}

func TestCurateDropsInvalidArticleCitations(t *testing.T) {
	topic := model.Topic{
		Title: "Quantum breakthrough",
		Citations: []model.Citation{
			{Title: "Broken link", URL: "/relative/path", Kind: model.CitationArticle},
			{Title: "Placeholder entry", URL: "https://example.com/a", Kind: model.CitationArticle},
			{Title: "Real coverage of quantum chips", URL: "https://quantumwire.io/chips", Kind: model.CitationArticle},
		},
	}
	got, err := newCurator().Curate(topic, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Citations) != 1 || got.Citations[0].URL != "https://quantumwire.io/chips" {
		t.Errorf("only the verifiable citation should survive, got %v", got.Citations)
	}
}

func TestCurateAttachesMatchedSocialPosts(t *testing.T) {
	topic := model.Topic{Title: "Quantum computing", Summary: "New hardware roadmap"}
	posts := []model.SocialPost{
		{
			ID:           "p1",
			Content:      "The quantum hardware roadmap finally looks credible",
			AuthorHandle: "chipwatcher",
			URL:          "https://social.network/p/1",
		},
		{
			ID:      "p2",
			Content: "Unrelated sports commentary",
			URL:     "https://social.network/p/2",
		},
	}
	got, err := newCurator().Curate(topic, posts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Citations) != 1 {
		t.Fatalf("expected one social citation, got %v", got.Citations)
	}
	cit := got.Citations[0]
	if cit.Kind != model.CitationSocialPost || cit.URL != "https://social.network/p/1" {
		t.Errorf("unexpected citation: %+v", cit)
	}
	if !strings.HasPrefix(cit.Title, "@chipwatcher: ") {
		t.Errorf("citation title should lead with the author handle, got %q", cit.Title)
	}
}

func TestCurateExcludesSyntheticPosts(t *testing.T) {
	topic := model.Topic{Title: "Quantum computing", Summary: "hardware roadmap"}
	posts := []model.SocialPost{
		{
			ID:           "grok-123",
			Content:      "quantum hardware roadmap thread",
			AuthorHandle: "real_handle",
			URL:          "https://social.network/p/3",
		},
		{
			ID:           "p4",
			Content:      "quantum roadmap take",
			AuthorHandle: "test_user",
			URL:          "https://social.network/p/4",
		},
		{
			ID:           "p5",
			Content:      "solid quantum hardware analysis",
			AuthorHandle: "chipwatcher",
			URL:          "https://social.network/p/5",
		},
	}
	got, err := newCurator().Curate(topic, posts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Citations) != 1 || got.Citations[0].URL != "https://social.network/p/5" {
		t.Errorf("fabricated posts must be excluded, got %v", got.Citations)
	}
}

func TestCurateAllEvidenceSynthetic(t *testing.T) {
	topic := model.Topic{Title: "Quantum computing"}
	posts := []model.SocialPost{
		{
			ID:      "p1",
			Content: "quantum computing chatter",
			URL:     "https://example.com/p/1",
		},
	}
	_, err := newCurator().Curate(topic, posts)
	if err == nil {
		t.Fatal("expected an error when every matched post is synthetic")
	}
	if !apperr.IsSynthetic(err) {
		t.Errorf("expected SyntheticDataError, got %v", err)
	}
}

func TestCurateDoesNotMutateInput(t *testing.T) {
	orig := []model.Citation{
		{Title: "Quantum coverage", URL: "https://quantumwire.io/a", Kind: model.CitationArticle},
	}
	topic := model.Topic{Title: "Quantum computing", Citations: orig}
	posts := []model.SocialPost{
		{ID: "p1", Content: "quantum computing note", AuthorHandle: "watcher", URL: "https://social.network/p/1"},
	}
	if _, err := newCurator().Curate(topic, posts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(topic.Citations) != 1 || &topic.Citations[0] != &orig[0] {
		t.Errorf("input topic citations were mutated: %v", topic.Citations)
	}
}

func TestCitationTitleTruncates(t *testing.T) {
	p := model.SocialPost{
		AuthorHandle: "longposter",
		Content:      strings.Repeat("quantum ", 30),
	}
	title := citationTitle(p)
	body := strings.TrimPrefix(title, "@longposter: ")
	if r := []rune(body); len(r) != 80 || !strings.HasSuffix(body, "...") {
		t.Errorf("expected 80-rune snippet ending in ellipsis, got %d runes: %q", len([]rune(body)), body)
	}
}
