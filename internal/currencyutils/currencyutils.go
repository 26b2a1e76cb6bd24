// Package currencyutils provides amount parsing and display formatting on
// top of shopspring/decimal.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultSymbol is the currency symbol used when none is configured.
const DefaultSymbol = "₱"

var (
	symbolRe = regexp.MustCompile(`[₱€$£¥₣₤₧₹₺₽₩฿₫₲₴₸₼₪\s]|CHF|PHP|USD|EUR`)
	printer  = message.NewPrinter(language.English)
)

// StandardizeAmount strips currency symbols, whitespace, comma thousands
// separators and apostrophes so the result can be handed to
// decimal.NewFromString. "₱1,234.50" becomes "1234.50".
func StandardizeAmount(amountStr string) string {
	s := symbolRe.ReplaceAllString(amountStr, "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "'", "")
	return s
}

// ParseAmount parses a raw amount. The sign is preserved; callers that store
// magnitudes take the absolute value themselves.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	standardized := StandardizeAmount(amountStr)
	if standardized == "" {
		return decimal.Zero, fmt.Errorf("empty amount '%s'", amountStr)
	}
	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// ParseMagnitude parses a raw amount and returns its absolute value. ok is
// false when the input is unparseable or the magnitude is zero.
func ParseMagnitude(amountStr string) (decimal.Decimal, bool) {
	amount, err := ParseAmount(amountStr)
	if err != nil {
		return decimal.Zero, false
	}
	amount = amount.Abs()
	if !amount.IsPositive() {
		return decimal.Zero, false
	}
	return amount, true
}

// FormatAmount renders amount with the symbol, locale grouping and exactly
// two fraction digits, e.g. "₱1,234.50". It is used for stat cards.
func FormatAmount(amount decimal.Decimal, symbol string) string {
	return format(amount, symbol, 2, 2)
}

// FormatCompact renders amount with grouping and at most two fraction digits,
// e.g. "₱1,234.5" or "₱5,000". It is used in prose answers.
func FormatCompact(amount decimal.Decimal, symbol string) string {
	return format(amount, symbol, 0, 2)
}

func format(amount decimal.Decimal, symbol string, minFrac, maxFrac int) string {
	rounded := amount.Round(int32(maxFrac))
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}
	n := number.Decimal(rounded.InexactFloat64(),
		number.MinFractionDigits(minFrac),
		number.MaxFractionDigits(maxFrac))
	return sign + symbol + printer.Sprint(n)
}
