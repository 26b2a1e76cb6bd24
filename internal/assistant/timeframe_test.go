package assistant

import (
	"testing"
	"time"

	"fjacquet/smart-finance/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var asOf = time.Date(2025, 9, 15, 14, 30, 0, 0, time.UTC)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDetectTimeframe(t *testing.T) {
	tests := []struct {
		name      string
		question  string
		start     string
		end       string
		openEnded bool
	}{
		{"month day range", "how much did i spend sep 5 to 7?", "2025-09-05", "2025-09-07", false},
		{"month day range with year", "spending august 1 - 10 2024", "2024-08-01", "2024-08-10", false},
		{"between with day-only right side", "expenses between aug 3 and 9", "2025-08-03", "2025-08-09", false},
		{"from to with slashes", "expenses from 9/1/25 to 9/3/25", "2025-09-01", "2025-09-03", false},
		{"reversed bounds are ordered", "expenses from sep 9 to sep 2?", "2025-09-02", "2025-09-09", false},
		{"iso range", "spent from 2025-09-01 to 2025-09-03", "2025-09-01", "2025-09-03", false},
		{"on a date", "what did i buy on 9/8?", "2025-09-08", "2025-09-08", false},
		{"on a text date", "what did i buy on sept 8, 2024", "2024-09-08", "2024-09-08", false},
		{"last week", "spending last week", "2025-09-08", "2025-09-15", true},
		{"this month", "expenses this month", "2025-08-16", "2025-09-15", true},
		{"past year", "income over the past year", "2024-09-15", "2025-09-15", true},
		{"today", "what did i spend today", "2025-09-15", "2025-09-15", false},
		{"yesterday", "what did i spend yesterday", "2025-09-14", "2025-09-14", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tf, ok := DetectTimeframe(tt.question, asOf)
			require.True(t, ok)
			assert.Equal(t, day(tt.start), tf.Start)
			assert.Equal(t, day(tt.end), tf.End)
			assert.Equal(t, tt.openEnded, tf.OpenEnded)
		})
	}
}

func TestDetectTimeframe_None(t *testing.T) {
	for _, q := range []string{
		"how much did i spend on transportation?",
		"what is my biggest expense",
		"spent on feb 30",
	} {
		_, ok := DetectTimeframe(q, asOf)
		assert.False(t, ok, q)
	}
}

func TestTimeframe_Apply(t *testing.T) {
	txs := []models.Transaction{
		{ID: 1, Date: "2025-09-01"},
		{ID: 2, Date: "2025-09-05"},
		{ID: 3, Date: "2025-09-20"},
	}

	closed := Timeframe{Start: day("2025-09-01"), End: day("2025-09-05")}
	got := closed.Apply(txs)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 2, got[1].ID)

	open := Timeframe{Start: day("2025-09-05"), End: day("2025-09-15"), OpenEnded: true}
	got = open.Apply(txs)
	require.Len(t, got, 2)
	assert.Equal(t, 3, got[1].ID, "open ranges keep records after End")

	assert.Equal(t, "from 2025-09-01 to 2025-09-05", closed.String())
}
