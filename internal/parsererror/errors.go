// Package parsererror holds the typed errors surfaced by import, manual entry
// and command parsing.
package parsererror

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel causes of a rejected import.
var (
	ErrEmptyFile      = errors.New("file is empty or contains no data")
	ErrNoValidRows    = errors.New("no valid transaction data found")
	ErrNoValidRecords = errors.New("no valid transactions found in the file")
)

// ParseError represents a value that could not be parsed
type ParseError struct {
	Source string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Source, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MissingColumnsError lists the required fields no header could be mapped to.
type MissingColumnsError struct {
	Missing   []string
	Available []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("Missing required columns: %s", strings.Join(e.Missing, ", "))
}

// Lines returns the user-facing explanation, one sentence per line.
func (e *MissingColumnsError) Lines() []string {
	return []string{
		e.Error(),
		fmt.Sprintf("Available columns: %s", strings.Join(e.Available, ", ")),
		"Please ensure your CSV has columns for: date, description, and amount",
	}
}

// ImportError is a file-level import rejection. Messages are shown to the
// user verbatim, one per line. Err carries the first structured cause.
type ImportError struct {
	Messages []string
	Err      error
}

func (e *ImportError) Error() string {
	return strings.Join(e.Messages, "\n")
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// EntryError rejects a manual entry draft.
type EntryError struct {
	Field  string
	Reason string
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
