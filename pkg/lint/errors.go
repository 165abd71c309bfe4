package lint

import (
	"errors"
	"fmt"
)

// Sentinel errors for categorization via errors.Is.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrParseFailure indicates the parser could not produce a tree.
	ErrParseFailure = errors.New("parse failure")

	// ErrWriteFailure indicates the fixed file could not be written.
	ErrWriteFailure = errors.New("write failure")
)

// RuleError is the cause recorded when a rule fails while running.
type RuleError struct {
	Rule  string
	Cause error

	// Panicked is true if the rule panicked rather than returning an error.
	Panicked bool
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %q failed: %v", e.Rule, e.Cause)
}

func (e *RuleError) Unwrap() error {
	return e.Cause
}

// IsPipelineError checks if an error is a known pipeline error type.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrParseFailure) ||
		errors.Is(err, ErrWriteFailure)
}
