// Package errs holds the error kinds surfaced by the probe core. Each kind
// wraps an underlying cause so callers can match sentinels with errors.Is and
// kinds with errors.As.
package errs

import (
	"fmt"
	"strings"
)

// ValidationError rejects input before any work starts.
type ValidationError struct {
	Field string
	// Value is the offending value, if any.
	Value string
	// Position is the 1-based offending character position, or 0.
	Position int
	Reason   string
	Err      error
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("invalid ")
	sb.WriteString(e.Field)
	sb.WriteString(": ")
	sb.WriteString(e.Reason)
	if e.Position > 0 {
		fmt.Fprintf(&sb, " at position %d", e.Position)
	}
	if e.Value != "" {
		fmt.Fprintf(&sb, " (%q)", e.Value)
	}
	return sb.String()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IOError aborts the active operation.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func NewIOError(op, path string, err error) *IOError {
	return &IOError{Op: op, Path: path, Err: err}
}

// VerificationError is an isolated failure of the hash comparison for one
// candidate. It is never returned from a session run.
type VerificationError struct {
	Candidate string
	Err       error
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("verify candidate %q: %v", e.Candidate, e.Err)
}

func (e *VerificationError) Unwrap() error {
	return e.Err
}
