// Package curator rebuilds a topic's citation list from verified,
// relevance-ranked evidence. Citations that fail validation are dropped, not
// substituted with placeholders.
package curator

import (
	"fmt"
	"strings"

	"pulse-digest/internal/apperr"
	"pulse-digest/internal/model"
	"pulse-digest/internal/relevance"
)

// MaxSocialCitations caps the social-post citations attached per topic.
const MaxSocialCitations = 5

// Curator replaces low-trust or unverifiable citations with citations drawn
// from the candidate pool.
type Curator struct {
	matcher *relevance.Matcher
}

// New builds a Curator sharing the engine's matcher.
func New(matcher *relevance.Matcher) *Curator {
	return &Curator{matcher: matcher}
}

// Curate returns a copy of topic with its citations recomputed: existing
// article citations that pass validation, plus up to MaxSocialCitations
// social-post citations matched from candidatePosts. The input topic is never
// mutated, so independent topics curate safely in parallel.
//
// If every candidate that matched was rejected as synthetic and nothing else
// survived, Curate reports a SyntheticDataError instead of emitting a topic
// with fabricated evidence quietly removed.
func (c *Curator) Curate(topic model.Topic, candidatePosts []model.SocialPost) (model.Topic, error) {
	out := topic
	out.Citations = nil

	for _, cit := range topic.Citations {
		if cit.Kind != model.CitationArticle {
			continue
		}
		if err := validateCitation(cit); err != nil {
			continue
		}
		out.Citations = append(out.Citations, cit)
	}

	target := topic.Title + " " + topic.Summary
	matches := c.matcher.FindRelevant(target, relevance.PostCandidates(candidatePosts), MaxSocialCitations)

	rejected := 0
	for _, m := range matches {
		post := candidatePosts[m.Index]
		if err := validatePost(post); err != nil {
			rejected++
			continue
		}
		out.Citations = append(out.Citations, model.Citation{
			Title: citationTitle(post),
			URL:   post.URL,
			Kind:  model.CitationSocialPost,
		})
	}

	if len(out.Citations) == 0 && rejected > 0 {
		return model.Topic{}, apperr.NewSynthetic(
			fmt.Sprintf("topic %q: all matched evidence is synthetic", topic.Title), "")
	}
	return out, nil
}

func validateCitation(cit model.Citation) error {
	if err := apperr.CheckURL(cit.URL); err != nil {
		return err
	}
	return apperr.CheckText(cit.Title)
}

func validatePost(p model.SocialPost) error {
	if strings.TrimSpace(p.Content) == "" {
		return apperr.NewValidation("post " + p.ID + " has empty content")
	}
	if err := apperr.CheckID(p.ID); err != nil {
		return err
	}
	if err := apperr.CheckText(p.AuthorHandle); err != nil {
		return err
	}
	if err := apperr.CheckText(p.Content); err != nil {
		return err
	}
	return apperr.CheckURL(p.URL)
}

// citationTitle derives a citation title from the post author and a content
// snippet.
func citationTitle(p model.SocialPost) string {
	snippet := strings.Join(strings.Fields(p.Content), " ")
	if r := []rune(snippet); len(r) > 80 {
		snippet = string(r[:77]) + "..."
	}
	if p.AuthorHandle != "" {
		return "@" + p.AuthorHandle + ": " + snippet
	}
	return snippet
}
