package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationErrorWrapping(t *testing.T) {
	base := errors.New("parse failed")
	err := NewValidationWrap("bad input", base)

	if !IsValidation(err) {
		t.Error("direct ValidationError not recognized")
	}
	wrapped := fmt.Errorf("processing post p1: %w", err)
	if !IsValidation(wrapped) {
		t.Error("ValidationError not recognized through fmt.Errorf wrapping")
	}
	if !errors.Is(wrapped, base) {
		t.Error("underlying cause lost through Unwrap chain")
	}
	if IsSynthetic(wrapped) {
		t.Error("ValidationError must not satisfy IsSynthetic")
	}
}

func TestSyntheticErrorMessage(t *testing.T) {
	err := NewSynthetic("synthetic content", "example.com")
	want := "synthetic content: matched marker example.com"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
	if !IsSynthetic(fmt.Errorf("curating: %w", err)) {
		t.Error("SyntheticDataError not recognized through wrapping")
	}
}

func TestCheckText(t *testing.T) {
	cases := []struct {
		in        string
		synthetic bool
	}{
		{"Quantum computing hits new milestone", false},
		{"Visit https://Example.COM for details", true},
		{"this is placeholder copy", true},
		{"a SAMPLE reading", true},
		{"running the latest benchmark", true}, // "latest" contains "test"
		{"served from localhost", true},
		{"", false},
	}
	for _, c := range cases {
		err := CheckText(c.in)
		if c.synthetic && !IsSynthetic(err) {
			t.Errorf("CheckText(%q): expected synthetic marker, got %v", c.in, err)
		}
		if !c.synthetic && err != nil {
			t.Errorf("CheckText(%q): unexpected error %v", c.in, err)
		}
	}
}

func TestCheckID(t *testing.T) {
	for _, id := range []string{"grok-123", "Mock-9", "sample-x", "TEST-1", "fake-a", "placeholder-z"} {
		if !IsSynthetic(CheckID(id)) {
			t.Errorf("CheckID(%q): expected synthetic id rejection", id)
		}
	}
	if err := CheckID("a1b2c3"); err != nil {
		t.Errorf("CheckID(\"a1b2c3\"): unexpected error %v", err)
	}
	// Marker anywhere in the id counts, not just prefixes.
	if !IsSynthetic(CheckID("post-dummy-9")) {
		t.Error("CheckID should fall through to marker scan")
	}
}

func TestCheckURL(t *testing.T) {
	if err := CheckURL("https://quantumwire.io/chips"); err != nil {
		t.Errorf("valid absolute url rejected: %v", err)
	}
	if err := CheckURL("/relative/only"); !IsValidation(err) {
		t.Errorf("relative url should be a validation error, got %v", err)
	}
	if err := CheckURL("https://"); !IsValidation(err) {
		t.Errorf("hostless url should be a validation error, got %v", err)
	}
	if err := CheckURL("https://example.com/a"); !IsSynthetic(err) {
		t.Errorf("placeholder host should be a synthetic error, got %v", err)
	}
	if err := CheckURL("http://127.0.0.1:8080/x"); !IsSynthetic(err) {
		t.Errorf("loopback host should be a synthetic error, got %v", err)
	}
}
