package lexicon

import (
	"strings"
)

// Entry is one weighted phrase. Entries keep the order they were declared in.
type Entry struct {
	Phrase string  `yaml:"phrase"`
	Weight float64 `yaml:"weight"`
}

// Lexicon is the injectable scoring configuration: an ordered phrase→weight
// table, a stop-word set, and the allow-list of high-quality sources. It is
// passed into every scoring call; nothing in the engine reads ambient state.
type Lexicon struct {
	entries        []Entry
	stop           map[string]struct{}
	qualitySources []string
}

// New builds a Lexicon. A nil or empty stopWords slice falls back to
// DefaultStopWords.
func New(entries []Entry, stopWords []string, qualitySources []string) *Lexicon {
	if len(stopWords) == 0 {
		stopWords = DefaultStopWords()
	}
	stop := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		stop[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
	lowered := make([]Entry, 0, len(entries))
	for _, e := range entries {
		p := strings.ToLower(strings.TrimSpace(e.Phrase))
		if p == "" {
			continue
		}
		lowered = append(lowered, Entry{Phrase: p, Weight: e.Weight})
	}
	return &Lexicon{entries: lowered, stop: stop, qualitySources: qualitySources}
}

// Entries returns the weighted phrases in declaration order.
func (l *Lexicon) Entries() []Entry {
	return l.entries
}

// Len returns the number of weighted phrases.
func (l *Lexicon) Len() int {
	return len(l.entries)
}

// IsStopWord reports whether the lowercase token is in the stop-word set.
func (l *Lexicon) IsStopWord(token string) bool {
	_, ok := l.stop[token]
	return ok
}

// StopWords returns the stop-word set as a slice, order unspecified.
func (l *Lexicon) StopWords() []string {
	out := make([]string, 0, len(l.stop))
	for w := range l.stop {
		out = append(out, w)
	}
	return out
}

// QualitySources returns the configured high-quality source names.
func (l *Lexicon) QualitySources() []string {
	return l.qualitySources
}

// DefaultStopWords is the baseline stop-word list: articles, conjunctions,
// pronouns, common verbs, and URL scheme tokens.
func DefaultStopWords() []string {
	return []string{
		"the", "and", "that", "this", "with", "from", "have", "has", "had",
		"will", "would", "could", "should", "been", "being", "were", "was",
		"are", "is", "for", "but", "not", "you", "your", "they", "their",
		"them", "what", "when", "where", "which", "while", "about", "after",
		"before", "into", "over", "under", "more", "most", "than", "then",
		"there", "here", "http", "https",
	}
}
