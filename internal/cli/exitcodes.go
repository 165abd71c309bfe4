package cli

import (
	"errors"
	"fmt"

	"github.com/yaklabco/gotslint/pkg/runner"
)

// Process exit codes. 64 and 65 follow sysexits.h.
const (
	ExitSuccess = 0
	// ExitLintErrors means error-severity findings, files that could not be
	// processed, or a run that failed outright.
	ExitLintErrors = 1
	// ExitLintWarnings means warnings were found under --strict.
	ExitLintWarnings = 2
	ExitInvalidUsage = 64
	ExitConfigError  = 65
)

// ErrUsage marks errors caused by how the command was invoked.
var ErrUsage = errors.New("invalid usage")

func usageError(err error) error {
	return fmt.Errorf("%w: %w", ErrUsage, err)
}

// ExitCodeFromResult picks the exit code of a completed run.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	switch {
	case result == nil:
		return ExitSuccess
	case result.HasFailures():
		return ExitLintErrors
	case strict && result.Stats.Warnings > 0:
		return ExitLintWarnings
	default:
		return ExitSuccess
	}
}

// ExitError carries the exit code of a run that completed with findings.
// It matches ErrLintIssuesFound under errors.Is.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string { return ErrLintIssuesFound.Error() }

func (e *ExitError) Unwrap() error { return ErrLintIssuesFound }

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	var exitErr *ExitError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, ErrConfigInvalid):
		return ExitConfigError
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	default:
		return ExitLintErrors
	}
}
