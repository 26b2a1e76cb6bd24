package parsererror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ParseError
		expected string
	}{
		{
			name: "amount flag",
			err: &ParseError{
				Source: "add",
				Field:  "amount",
				Value:  "abc",
				Err:    errors.New("invalid decimal"),
			},
			expected: "add: failed to parse amount='abc': invalid decimal",
		},
		{
			name: "empty value",
			err: &ParseError{
				Source: "filter",
				Field:  "from",
				Value:  "",
				Err:    errors.New("empty date"),
			},
			expected: "filter: failed to parse from='': empty date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestParseError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	parseErr := &ParseError{Source: "edit", Field: "id", Value: "x", Err: originalErr}

	assert.Equal(t, originalErr, parseErr.Unwrap())
	assert.True(t, errors.Is(parseErr, originalErr))
}

func TestMissingColumnsError(t *testing.T) {
	err := &MissingColumnsError{
		Missing:   []string{"date", "description", "amount"},
		Available: []string{"Foo", "Bar"},
	}

	assert.Equal(t, "Missing required columns: date, description, amount", err.Error())
	assert.Equal(t, []string{
		"Missing required columns: date, description, amount",
		"Available columns: Foo, Bar",
		"Please ensure your CSV has columns for: date, description, and amount",
	}, err.Lines())
}

func TestImportError(t *testing.T) {
	missing := &MissingColumnsError{Missing: []string{"amount"}, Available: []string{"Date", "Memo"}}
	importErr := &ImportError{Messages: missing.Lines(), Err: missing}

	wrapped := fmt.Errorf("import statement.csv: %w", importErr)

	var target *MissingColumnsError
	require.True(t, errors.As(wrapped, &target))
	assert.Equal(t, []string{"amount"}, target.Missing)

	var asImport *ImportError
	require.True(t, errors.As(wrapped, &asImport))
	assert.Contains(t, asImport.Error(), "\nAvailable columns: Date, Memo\n")
}

func TestImportError_Sentinel(t *testing.T) {
	err := &ImportError{Messages: []string{"File is empty or contains no data"}, Err: ErrEmptyFile}
	assert.True(t, errors.Is(err, ErrEmptyFile))
	assert.False(t, errors.Is(err, ErrNoValidRows))
}

func TestEntryError(t *testing.T) {
	err := &EntryError{Field: "amount", Reason: "must be greater than zero"}
	assert.Equal(t, "invalid amount: must be greater than zero", err.Error())

	var target *EntryError
	assert.True(t, errors.As(fmt.Errorf("add: %w", err), &target))
}
