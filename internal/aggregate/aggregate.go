// Package aggregate derives dashboard views from a ledger snapshot.
package aggregate

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"fjacquet/smart-finance/internal/dateutils"
	"fjacquet/smart-finance/internal/models"

	"github.com/shopspring/decimal"
)

// SavingsRate is the share of a positive balance reported as estimated savings.
var SavingsRate = decimal.RequireFromString("0.20")

// TotalsScope selects the record set totals and the breakdown are computed over.
type TotalsScope string

const (
	// ScopeFiltered uses the period- and filter-matched records.
	ScopeFiltered TotalsScope = "filtered"
	// ScopeAll uses the whole ledger regardless of period and filter.
	ScopeAll TotalsScope = "all"
)

// ParseTotalsScope parses a scope name.
func ParseTotalsScope(s string) (TotalsScope, error) {
	switch TotalsScope(strings.ToLower(strings.TrimSpace(s))) {
	case ScopeFiltered:
		return ScopeFiltered, nil
	case ScopeAll:
		return ScopeAll, nil
	}
	return "", fmt.Errorf("unknown totals scope %q (want filtered or all)", s)
}

// Totals are the stat card figures.
type Totals struct {
	Income           decimal.Decimal
	Expenses         decimal.Decimal
	Balance          decimal.Decimal
	EstimatedSavings decimal.Decimal
}

// CategoryTotal is one slice of the expense breakdown.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// MonthPoint is one calendar month of the cash flow series.
type MonthPoint struct {
	Month          string // YYYY-MM
	Label          string // e.g. "Sep 25"
	Income         decimal.Decimal
	Expenses       decimal.Decimal
	Savings        decimal.Decimal
	Net            decimal.Decimal
	RunningBalance decimal.Decimal
}

// View is everything the dashboard shows for one period and filter.
type View struct {
	Filtered          []models.Transaction
	Totals            Totals
	CategoryBreakdown []CategoryTotal
	MonthlySeries     []MonthPoint
}

// Engine computes views. The zero value uses ScopeFiltered.
type Engine struct {
	Scope TotalsScope
}

// NewEngine creates an engine with the given totals scope.
func NewEngine(scope TotalsScope) *Engine {
	return &Engine{Scope: scope}
}

// ComputeView filters ledger by period then filter, sorts the result by date
// descending (equal dates keep ledger order), and derives totals, the
// expense breakdown and the monthly series. The ledger slice is not modified.
func (e *Engine) ComputeView(ledger []models.Transaction, period models.Period, spec models.FilterSpec, now time.Time) View {
	filtered := Filter(ledger, period, spec, now)
	SortByDateDesc(filtered)

	source := filtered
	if e.Scope == ScopeAll {
		source = models.CloneTransactions(ledger)
		SortByDateDesc(source)
	}

	return View{
		Filtered:          filtered,
		Totals:            ComputeTotals(source),
		CategoryBreakdown: Breakdown(source),
		MonthlySeries:     MonthlySeries(ledger),
	}
}

// Filter applies the period bound and then every filter predicate, keeping
// ledger order. It always returns a fresh slice.
func Filter(ledger []models.Transaction, period models.Period, spec models.FilterSpec, now time.Time) []models.Transaction {
	bound, bounded := period.LowerBound(now)
	out := make([]models.Transaction, 0, len(ledger))
	for _, tx := range ledger {
		if bounded && tx.Time().Before(bound) {
			continue
		}
		if !spec.Matches(tx) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// SortByDateDesc sorts in place, most recent first. The sort is stable.
func SortByDateDesc(txs []models.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Date > txs[j].Date })
}

// ComputeTotals sums income and expenses. Savings records count toward
// neither.
func ComputeTotals(txs []models.Transaction) Totals {
	income, expenses := decimal.Zero, decimal.Zero
	for _, tx := range txs {
		switch {
		case tx.IsIncome():
			income = income.Add(tx.Amount)
		case tx.IsExpense():
			expenses = expenses.Add(tx.Amount)
		}
	}
	balance := income.Sub(expenses)
	savings := balance.Mul(SavingsRate)
	if savings.IsNegative() {
		savings = decimal.Zero
	}
	return Totals{
		Income:           income,
		Expenses:         expenses,
		Balance:          balance,
		EstimatedSavings: savings,
	}
}

// Breakdown sums expense amounts per category, ordered by the first
// appearance of each category in txs.
func Breakdown(txs []models.Transaction) []CategoryTotal {
	index := make(map[string]int)
	out := []CategoryTotal{}
	for _, tx := range txs {
		if !tx.IsExpense() {
			continue
		}
		i, ok := index[tx.Category]
		if !ok {
			i = len(out)
			index[tx.Category] = i
			out = append(out, CategoryTotal{Category: tx.Category, Total: decimal.Zero})
		}
		out[i].Total = out[i].Total.Add(tx.Amount)
	}
	return out
}

// TopCategories returns the n largest entries of a breakdown, largest first.
// Equal totals keep breakdown order. n <= 0 returns every entry.
func TopCategories(breakdown []CategoryTotal, n int) []CategoryTotal {
	out := make([]CategoryTotal, len(breakdown))
	copy(out, breakdown)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total.GreaterThan(out[j].Total) })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// MonthlySeries buckets all records by calendar month in ascending date
// order. The running balance carries income minus expenses across months;
// savings records fill their own bucket and leave the balance alone.
func MonthlySeries(ledger []models.Transaction) []MonthPoint {
	ordered := models.CloneTransactions(ledger)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Date < ordered[j].Date })

	out := []MonthPoint{}
	running := decimal.Zero
	for _, tx := range ordered {
		key := tx.Month()
		if len(out) == 0 || out[len(out)-1].Month != key {
			out = append(out, MonthPoint{
				Month:    key,
				Label:    dateutils.MonthLabel(key),
				Income:   decimal.Zero,
				Expenses: decimal.Zero,
				Savings:  decimal.Zero,
			})
		}
		p := &out[len(out)-1]
		switch {
		case tx.IsIncome():
			p.Income = p.Income.Add(tx.Amount)
			running = running.Add(tx.Amount)
		case tx.IsExpense():
			p.Expenses = p.Expenses.Add(tx.Amount)
			running = running.Sub(tx.Amount)
		case tx.IsSavings():
			p.Savings = p.Savings.Add(tx.Amount)
		}
		p.Net = p.Income.Sub(p.Expenses)
		p.RunningBalance = running
	}
	return out
}
