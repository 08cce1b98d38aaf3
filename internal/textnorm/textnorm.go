// Package textnorm turns raw source text into something the scorers and the
// matcher can work with: markup stripped, entities decoded, keywords
// extracted. Both operations are total; nil-ish input yields empty output.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"pulse-digest/internal/lexicon"
)

// minTokenLen drops tokens at or below this length during extraction.
const minTokenLen = 3

var (
	tagPattern = regexp.MustCompile(`<[^>]*>`)

	entityReplacer = strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
		"&#x2F;", "/",
	)
)

// Normalizer extracts keywords against a configurable stop-word set.
type Normalizer struct {
	stop map[string]struct{}
}

// New builds a Normalizer. Nil stopWords falls back to the default list.
func New(stopWords []string) *Normalizer {
	if len(stopWords) == 0 {
		stopWords = lexicon.DefaultStopWords()
	}
	stop := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		stop[strings.ToLower(w)] = struct{}{}
	}
	return &Normalizer{stop: stop}
}

// Clean strips tags delimited by < >, decodes the small fixed set of named
// entities, and collapses whitespace. Unknown entities pass through.
func Clean(text string) string {
	if text == "" {
		return ""
	}
	out := tagPattern.ReplaceAllString(text, " ")
	out = entityReplacer.Replace(out)
	return strings.Join(strings.Fields(out), " ")
}

// ExtractKeywords lowercases, strips punctuation to whitespace, and returns
// the deduplicated tokens longer than three characters that are not stop
// words. Order is first-seen, but callers must treat the result as a set.
func (n *Normalizer) ExtractKeywords(text string) []string {
	if text == "" {
		return nil
	}
	lowered := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, text)

	seen := make(map[string]struct{})
	var keys []string
	for _, tok := range strings.Fields(lowered) {
		if len(tok) <= minTokenLen {
			continue
		}
		if _, stop := n.stop[tok]; stop {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		keys = append(keys, tok)
	}
	return keys
}

var defaultNormalizer = New(nil)

// ExtractKeywords extracts keywords with the default stop-word list.
func ExtractKeywords(text string) []string {
	return defaultNormalizer.ExtractKeywords(text)
}
