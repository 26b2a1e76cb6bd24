package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"ISO", "2025-09-05", "2025-09-05", false},
		{"ISO without padding", "2025-9-5", "2025-09-05", false},
		{"US four-digit year", "12/15/2024", "2024-12-15", false},
		{"US two-digit year", "3/7/24", "2024-03-07", false},
		{"text month first", "December 15, 2024", "2024-12-15", false},
		{"text month without comma", "Sept 3 2025", "2025-09-03", false},
		{"day first text month", "15 Dec 2024", "2024-12-15", false},
		{"European dotted", "15.01.2023", "2023-01-15", false},
		{"timestamp", "2023-01-15 10:30:45", "2023-01-15", false},
		{"extra whitespace", "  2025-09-05  ", "2025-09-05", false},
		{"overflowing day", "2024-02-30", "", true},
		{"unknown month word", "15 Foo 2024", "", true},
		{"empty", "", "", true},
		{"garbage", "not a date", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ToISODate(got))
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestNormalizeDate_FallsBackToNow(t *testing.T) {
	now := time.Date(2025, 10, 1, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-10-01", NormalizeDate("yesterday-ish", now))
	assert.Equal(t, "2025-10-01", NormalizeDate("", now))
	assert.Equal(t, "2024-12-15", NormalizeDate("December 15, 2024", now))
}

func TestIsISODate(t *testing.T) {
	assert.True(t, IsISODate("2024-02-29"))
	assert.False(t, IsISODate("2023-02-29"))
	assert.False(t, IsISODate("2024-2-9"))
}

func TestMonthHelpers(t *testing.T) {
	d := time.Date(2024, 2, 17, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), StartOfMonth(d))
	assert.Equal(t, time.Date(2024, 2, 17, 0, 0, 0, 0, time.UTC), StartOfDay(d))
	assert.Equal(t, "Sep 25", MonthLabel("2025-09"))
	assert.Equal(t, "bogus", MonthLabel("bogus"))

	m, ok := MonthByName("SEP")
	assert.True(t, ok)
	assert.Equal(t, time.September, m)
}
