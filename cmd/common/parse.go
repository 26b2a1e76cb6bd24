package common

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"fjacquet/smart-finance/internal/currencyutils"
	"fjacquet/smart-finance/internal/dateutils"
	"fjacquet/smart-finance/internal/ledger"
	"fjacquet/smart-finance/internal/models"
	"fjacquet/smart-finance/internal/parsererror"

	"github.com/shopspring/decimal"
)

// filterKeyRe finds the start of every key=value pair, so values may
// contain spaces ("category=Food & Dining").
var filterKeyRe = regexp.MustCompile(`(?i)\b(type|category|categories|from|to|min|max)=`)

var errNotISODate = errors.New("expected a YYYY-MM-DD date")

// ParseFilter reads a filter expression such as
//
//	type=expense category=Food & Dining,Shopping from=2025-09-01 max=500
//
// Keys may appear in any order; categories are comma separated. An empty
// expression yields an empty filter.
func ParseFilter(expr string) (models.FilterSpec, error) {
	var spec models.FilterSpec
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return spec, nil
	}

	matches := filterKeyRe.FindAllStringSubmatchIndex(expr, -1)
	if len(matches) == 0 || strings.TrimSpace(expr[:matches[0][0]]) != "" {
		return spec, fmt.Errorf("invalid filter %q: expected key=value pairs", expr)
	}

	for i, m := range matches {
		end := len(expr)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		key := strings.ToLower(expr[m[2]:m[3]])
		value := strings.TrimSpace(expr[m[1]:end])
		if value == "" {
			return spec, fmt.Errorf("filter %s has no value", key)
		}

		switch key {
		case "type":
			t, err := models.ParseTypeFilter(value)
			if err != nil {
				return spec, filterValueError(key, value, err)
			}
			spec.Type = t
		case "category", "categories":
			for _, c := range strings.Split(value, ",") {
				if c = strings.TrimSpace(c); c != "" {
					spec.Categories = append(spec.Categories, c)
				}
			}
		case "from", "to":
			if !dateutils.IsISODate(value) {
				return spec, filterValueError(key, value, errNotISODate)
			}
			if key == "from" {
				spec.DateFrom = value
			} else {
				spec.DateTo = value
			}
		case "min", "max":
			amount, err := currencyutils.ParseAmount(value)
			if err != nil {
				return spec, filterValueError(key, value, err)
			}
			if key == "min" {
				spec.MinAmount = &amount
			} else {
				spec.MaxAmount = &amount
			}
		}
	}
	return spec, nil
}

func filterValueError(key, value string, err error) error {
	return &parsererror.ParseError{Source: "filter", Field: key, Value: value, Err: err}
}

// ParseDraft reads a manual entry of the form
//
//	description | amount | category [| type [| date]]
//
// Type defaults to expense and date to today. Validation of the fields is
// left to the ledger.
func ParseDraft(line string) (ledger.Draft, error) {
	parts := strings.Split(line, "|")
	if len(parts) < 3 || len(parts) > 5 {
		return ledger.Draft{}, fmt.Errorf("expected: description | amount | category [| type [| date]]")
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	amount := decimal.Zero
	if parts[1] != "" {
		parsed, err := currencyutils.ParseAmount(parts[1])
		if err != nil {
			return ledger.Draft{}, &parsererror.EntryError{Field: "amount", Reason: err.Error()}
		}
		amount = parsed
	}

	d := ledger.Draft{
		Description: parts[0],
		Amount:      amount,
		Category:    parts[2],
	}
	if len(parts) > 3 {
		d.Type = parts[3]
	}
	if len(parts) > 4 {
		d.Date = parts[4]
	}
	return d, nil
}

// DescribeFilter renders a filter for the shell prompt; "none" when empty.
func DescribeFilter(spec models.FilterSpec) string {
	if spec.IsEmpty() {
		return "none"
	}
	var parts []string
	if spec.Type != "" && spec.Type != models.TypeFilterAll {
		parts = append(parts, "type="+string(spec.Type))
	}
	if len(spec.Categories) > 0 {
		parts = append(parts, "category="+strings.Join(spec.Categories, ","))
	}
	if spec.DateFrom != "" {
		parts = append(parts, "from="+spec.DateFrom)
	}
	if spec.DateTo != "" {
		parts = append(parts, "to="+spec.DateTo)
	}
	if spec.MinAmount != nil {
		parts = append(parts, "min="+spec.MinAmount.String())
	}
	if spec.MaxAmount != nil {
		parts = append(parts, "max="+spec.MaxAmount.String())
	}
	return strings.Join(parts, " ")
}
