// Package errors provides sentinel errors and exit handling for the cutter CLI.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for known conditions.
var (
	// ErrInvalidCombination indicates a forbidden combination of option values.
	ErrInvalidCombination = errors.New("invalid option combination")

	// ErrInvalidToken indicates an option token that cannot be interpreted.
	ErrInvalidToken = errors.New("invalid option token")

	// ErrRemoval indicates a targeted path could not be deleted.
	ErrRemoval = errors.New("removal failed")

	// ErrUnsafePath indicates a removal path that escapes the project root.
	ErrUnsafePath = errors.New("unsafe path")

	// ErrUnresolvedMarker indicates template markers left in generated output.
	ErrUnresolvedMarker = errors.New("unresolved template marker")

	// ErrAlreadyExists indicates a target file or directory already exists.
	ErrAlreadyExists = errors.New("already exists")
)

// Exit codes.
const (
	ExitSuccess      = 0
	ExitFailure      = 1
	ExitUsageFailure = 2
)

// DetailError carries a categorized message with an optional hint.
type DetailError struct {
	// Type is the error category.
	Type string

	// Message is the specific description.
	Message string

	// Location is the file path involved (optional).
	Location string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString(e.Type)
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Location != "" {
		b.WriteString(" (")
		b.WriteString(e.Location)
		b.WriteString(")")
	}
	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
	}

	return b.String()
}

func (e *DetailError) Unwrap() error {
	return e.Cause
}

// ExitError pairs an error with the process exit code it should produce.
type ExitError struct {
	Code int
	Err  error

	// Printed is set when the command layer already reported the error.
	Printed bool
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewTokenError reports a token that could not be parsed for the named option.
func NewTokenError(option, token, hint string) error {
	return &DetailError{
		Type:    "invalid token",
		Message: fmt.Sprintf("option %q has value %q", option, token),
		Hint:    hint,
		Cause:   ErrInvalidToken,
	}
}

// ExitCode maps an error to the exit status the CLI should use.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	if errors.Is(err, ErrInvalidToken) {
		return ExitUsageFailure
	}

	return ExitFailure
}
