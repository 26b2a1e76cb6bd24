package currencyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name      string
		amountStr string
		expected  string
		hasError  bool
	}{
		{"Simple decimal", "123.45", "123.45", false},
		{"Negative decimal", "-123.45", "-123.45", false},
		{"Peso symbol", "₱450", "450", false},
		{"Dollar with thousands", "$1,234.56", "1234.56", false},
		{"Multiple separators", "1,234,567.89", "1234567.89", false},
		{"Apostrophe separator", "1'234.56", "1234.56", false},
		{"Currency code", "PHP 99.99", "99.99", false},
		{"With spaces", "  123.45  ", "123.45", false},
		{"Empty string", "", "", true},
		{"Malformed decimal", "123.45.67", "", true},
		{"Non-numeric", "abc", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ParseAmount(tc.amountStr)
			if tc.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tc.expected).Equal(result),
				"Expected %s but got %s", tc.expected, result.String())
		})
	}
}

func TestParseMagnitude(t *testing.T) {
	amount, ok := ParseMagnitude("-50.25")
	assert.True(t, ok)
	assert.Equal(t, "50.25", amount.String())

	for _, raw := range []string{"0", "0.00", "", "n/a", "-0"} {
		_, ok := ParseMagnitude(raw)
		assert.False(t, ok, raw)
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount   string
		symbol   string
		expected string
	}{
		{"1234.5", "₱", "₱1,234.50"},
		{"0", "₱", "₱0.00"},
		{"5000", "$", "$5,000.00"},
		{"-85.456", "₱", "-₱85.46"},
		{"999999.999", "₱", "₱1,000,000.00"},
	}
	for _, tc := range tests {
		t.Run(tc.amount, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatAmount(decimal.RequireFromString(tc.amount), tc.symbol))
		})
	}
}

func TestFormatCompact(t *testing.T) {
	assert.Equal(t, "₱5,000", FormatCompact(decimal.NewFromInt(5000), "₱"))
	assert.Equal(t, "₱35.75", FormatCompact(decimal.RequireFromString("35.75"), "₱"))
	assert.Equal(t, "₱1,234.5", FormatCompact(decimal.RequireFromString("1234.50"), "₱"))
}
