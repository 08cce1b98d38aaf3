package apperr

import "errors"

// ValidationError reports input that violates a hard invariant: negative
// engagement counts, malformed URLs, empty required fields. It is fatal for
// the single item being processed, never downgraded to a default value.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// SyntheticDataError reports output that matches a placeholder marker. The
// engine must never present fabricated social evidence as real, so this is
// fatal for the item that produced it.
type SyntheticDataError struct {
	Message string
	Marker  string
}

func (e *SyntheticDataError) Error() string {
	if e.Marker != "" {
		return e.Message + ": matched marker " + e.Marker
	}
	return e.Message
}

func NewSynthetic(msg, marker string) *SyntheticDataError {
	return &SyntheticDataError{Message: msg, Marker: marker}
}

// IsValidation reports whether err wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsSynthetic reports whether err wraps a SyntheticDataError.
func IsSynthetic(err error) bool {
	var se *SyntheticDataError
	return errors.As(err, &se)
}
