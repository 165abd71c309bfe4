package fix

import (
	"errors"
	"fmt"
)

// ErrInvalidFix is wrapped by every fix validation failure.
var ErrInvalidFix = errors.New("invalid fix")

// ErrOutOfBounds indicates a replacement outside the text.
var ErrOutOfBounds = errors.New("replacement out of bounds")

// ValidationError describes an invalid replacement within a fix.
type ValidationError struct {
	Replacement Replacement
	Message     string
	cause       error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid replacement %s: %s", e.Replacement.Span, e.Message)
}

// Unwrap returns the sentinel errors this failure matches.
func (e *ValidationError) Unwrap() []error {
	if e.cause != nil {
		return []error{ErrInvalidFix, e.cause}
	}
	return []error{ErrInvalidFix}
}

// ConflictError describes two overlapping replacements inside one fix.
type ConflictError struct {
	First  Replacement
	Second Replacement
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping replacements: %s and %s", e.First.Span, e.Second.Span)
}

// Unwrap returns ErrInvalidFix.
func (e *ConflictError) Unwrap() error {
	return ErrInvalidFix
}

// Validate checks that every replacement lies within a text of textLen bytes
// and that no two replacements overlap. Two insertions at the same offset are
// allowed; they apply in the order given.
func (f *Fix) Validate(textLen int) error {
	if f.IsEmpty() {
		return &ValidationError{Message: "fix has no replacements"}
	}

	for _, r := range f.Replacements {
		switch {
		case r.Span.Start < 0:
			return &ValidationError{Replacement: r, Message: "start offset is negative", cause: ErrOutOfBounds}
		case r.Span.End < r.Span.Start:
			return &ValidationError{Replacement: r, Message: "end offset is before start offset"}
		case r.Span.End > textLen:
			return &ValidationError{
				Replacement: r,
				Message:     fmt.Sprintf("end offset %d exceeds text length %d", r.Span.End, textLen),
				cause:       ErrOutOfBounds,
			}
		}
	}

	for i := range f.Replacements {
		for j := i + 1; j < len(f.Replacements); j++ {
			if f.Replacements[i].Span.Overlaps(f.Replacements[j].Span) {
				return &ConflictError{First: f.Replacements[i], Second: f.Replacements[j]}
			}
		}
	}

	return nil
}
