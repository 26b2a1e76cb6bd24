package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Period is a rolling time window relative to evaluation time.
type Period string

const (
	Period7Days  Period = "7d"
	Period30Days Period = "30d"
	Period90Days Period = "90d"
	PeriodYear   Period = "1y"
	PeriodAll    Period = "all"
)

// Periods lists the selectable periods in display order.
var Periods = []Period{Period7Days, Period30Days, Period90Days, PeriodYear, PeriodAll}

// ParsePeriod parses a period name.
func ParsePeriod(s string) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Periods {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown period %q (want 7d, 30d, 90d, 1y or all)", s)
}

// Days returns the window length in days; zero means unbounded.
func (p Period) Days() int {
	switch p {
	case Period7Days:
		return 7
	case Period30Days:
		return 30
	case Period90Days:
		return 90
	case PeriodYear:
		return 365
	default:
		return 0
	}
}

// LowerBound returns the earliest instant kept by the period, or false when
// the period is unbounded.
func (p Period) LowerBound(now time.Time) (time.Time, bool) {
	days := p.Days()
	if days == 0 {
		return time.Time{}, false
	}
	return now.Add(-time.Duration(days) * 24 * time.Hour), true
}

// TypeFilter restricts a view to one transaction type.
type TypeFilter string

const (
	TypeFilterAll     TypeFilter = "all"
	TypeFilterIncome  TypeFilter = "income"
	TypeFilterExpense TypeFilter = "expense"
)

// ParseTypeFilter parses a type filter; the empty string means all.
func ParseTypeFilter(s string) (TypeFilter, error) {
	switch TypeFilter(strings.ToLower(strings.TrimSpace(s))) {
	case "", TypeFilterAll:
		return TypeFilterAll, nil
	case TypeFilterIncome:
		return TypeFilterIncome, nil
	case TypeFilterExpense:
		return TypeFilterExpense, nil
	}
	return "", fmt.Errorf("unknown type filter %q (want all, income or expense)", s)
}

// FilterSpec holds the secondary, combinable filters applied after the
// period. Zero values apply no constraint.
type FilterSpec struct {
	Type       TypeFilter
	Categories []string
	DateFrom   string
	DateTo     string
	MinAmount  *decimal.Decimal
	MaxAmount  *decimal.Decimal
}

// IsEmpty reports whether the filter constrains nothing.
func (f FilterSpec) IsEmpty() bool {
	return (f.Type == "" || f.Type == TypeFilterAll) &&
		len(f.Categories) == 0 &&
		f.DateFrom == "" && f.DateTo == "" &&
		f.MinAmount == nil && f.MaxAmount == nil
}

// Matches reports whether tx satisfies every predicate of the filter.
func (f FilterSpec) Matches(tx Transaction) bool {
	if f.Type != "" && f.Type != TypeFilterAll && string(tx.Type) != string(f.Type) {
		return false
	}
	if len(f.Categories) > 0 && !containsString(f.Categories, tx.Category) {
		return false
	}
	// ISO dates compare correctly as strings.
	if f.DateFrom != "" && tx.Date < f.DateFrom {
		return false
	}
	if f.DateTo != "" && tx.Date > f.DateTo {
		return false
	}
	if f.MinAmount != nil && tx.Amount.LessThan(*f.MinAmount) {
		return false
	}
	if f.MaxAmount != nil && tx.Amount.GreaterThan(*f.MaxAmount) {
		return false
	}
	return true
}

// Key returns a stable textual form of the filter, used for memoization.
func (f FilterSpec) Key() string {
	var b strings.Builder
	t := f.Type
	if t == "" {
		t = TypeFilterAll
	}
	b.WriteString(string(t))
	b.WriteByte('|')
	b.WriteString(strings.Join(f.Categories, "\x1f"))
	b.WriteByte('|')
	b.WriteString(f.DateFrom)
	b.WriteByte('|')
	b.WriteString(f.DateTo)
	b.WriteByte('|')
	if f.MinAmount != nil {
		b.WriteString(f.MinAmount.String())
	}
	b.WriteByte('|')
	if f.MaxAmount != nil {
		b.WriteString(f.MaxAmount.String())
	}
	return b.String()
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
