package apperr

import (
	"net/url"
	"strings"
)

// placeholderMarkers are substrings that mark fabricated content. Matched
// case-insensitively against any emitted text, URL, handle, or id.
var placeholderMarkers = []string{
	"example.com",
	"placeholder",
	"sample",
	"test",
	"fake",
	"mock",
	"dummy",
	"localhost",
	"127.0.0.1",
}

// placeholderPrefixes mark generated ids.
var placeholderPrefixes = []string{
	"grok-",
	"mock-",
	"sample-",
	"test-",
	"fake-",
	"placeholder-",
}

// CheckText returns a SyntheticDataError if s contains a placeholder marker.
func CheckText(s string) error {
	lower := strings.ToLower(s)
	for _, m := range placeholderMarkers {
		if strings.Contains(lower, m) {
			return NewSynthetic("synthetic content", m)
		}
	}
	return nil
}

// CheckID returns a SyntheticDataError if id carries a placeholder prefix or
// marker.
func CheckID(id string) error {
	lower := strings.ToLower(id)
	for _, p := range placeholderPrefixes {
		if strings.HasPrefix(lower, p) {
			return NewSynthetic("synthetic id", p)
		}
	}
	return CheckText(id)
}

// CheckURL validates that raw is a well-formed absolute URL and does not
// point at a placeholder host. A malformed URL is a ValidationError; a
// placeholder one is a SyntheticDataError.
func CheckURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return NewValidationWrap("malformed url", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return NewValidation("url is not absolute: " + raw)
	}
	return CheckText(raw)
}
