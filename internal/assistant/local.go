package assistant

import (
	"context"
	"fmt"
	"strings"

	"fjacquet/smart-finance/internal/aggregate"
	"fjacquet/smart-finance/internal/currencyutils"
	"fjacquet/smart-finance/internal/models"

	"github.com/shopspring/decimal"
)

// LocalAnalyst answers from the snapshot alone with a handful of keyword
// rules. It never fails.
type LocalAnalyst struct {
	symbol string
}

// NewLocalAnalyst creates a LocalAnalyst rendering amounts with symbol.
func NewLocalAnalyst(symbol string) *LocalAnalyst {
	if symbol == "" {
		symbol = currencyutils.DefaultSymbol
	}
	return &LocalAnalyst{symbol: symbol}
}

// Answer implements Answerer. The error is always nil.
func (a *LocalAnalyst) Answer(_ context.Context, req Request) (Response, error) {
	return Response{Answer: a.Analyze(req.Question, req.Transactions)}, nil
}

// Analyze picks the first rule whose keywords appear in the question.
func (a *LocalAnalyst) Analyze(question string, txs []models.Transaction) string {
	q := strings.ToLower(question)

	var income, expenses, savings []models.Transaction
	for _, tx := range txs {
		switch {
		case tx.IsIncome():
			income = append(income, tx)
		case tx.IsExpense():
			expenses = append(expenses, tx)
		case tx.IsSavings():
			savings = append(savings, tx)
		}
	}
	totalIncome := sum(income)
	totalExpenses := sum(expenses)
	totalSavings := sum(savings)
	net := totalIncome.Sub(totalExpenses)

	switch {
	case containsAny(q, "total", "how much"):
		switch {
		case strings.Contains(q, "income"):
			return fmt.Sprintf("Your total income is %s", a.money(totalIncome))
		case containsAny(q, "expense", "spend"):
			return fmt.Sprintf("Your total expenses are %s", a.money(totalExpenses))
		case strings.Contains(q, "saving"):
			return fmt.Sprintf("Your total savings are %s", a.money(totalSavings))
		}
		return fmt.Sprintf("Your total income is %s, total expenses are %s, and total savings are %s. Your net balance is %s",
			a.money(totalIncome), a.money(totalExpenses), a.money(totalSavings), a.money(net))

	case containsAny(q, "most", "highest", "largest"):
		if len(expenses) == 0 {
			return "You don't have any expense transactions yet."
		}
		top := expenses[0]
		for _, tx := range expenses[1:] {
			if tx.Amount.GreaterThan(top.Amount) {
				top = tx
			}
		}
		return fmt.Sprintf("Your most expensive transaction was %s for \"%s\" in the %s category on %s",
			a.money(top.Amount), top.Description, top.Category, displayDate(top))

	case containsAny(q, "category", "categories"):
		top := aggregate.TopCategories(aggregate.Breakdown(expenses), 3)
		if len(top) == 0 {
			return "You don't have any expense categories yet."
		}
		parts := make([]string, 0, len(top))
		for _, c := range top {
			parts = append(parts, fmt.Sprintf("%s: %s", c.Category, a.money(c.Total)))
		}
		return fmt.Sprintf("Your top spending categories are: %s. Your highest spending category is %s with %s",
			strings.Join(parts, ", "), top[0].Category, a.money(top[0].Total))

	case containsAny(q, "average", "mean"):
		if len(expenses) == 0 {
			return "You don't have any expense transactions to calculate an average."
		}
		avg := totalExpenses.Div(decimal.NewFromInt(int64(len(expenses))))
		return fmt.Sprintf("Your average expense per transaction is %s", a.money(avg))
	}

	return fmt.Sprintf("Here's a summary of your finances: You have %d total transactions (%d income, %d expenses, %d savings). Total income: %s, Total expenses: %s, Total savings: %s, Net balance: %s",
		len(txs), len(income), len(expenses), len(savings),
		a.money(totalIncome), a.money(totalExpenses), a.money(totalSavings), a.money(net))
}

func (a *LocalAnalyst) money(d decimal.Decimal) string {
	return currencyutils.FormatCompact(d, a.symbol)
}

func sum(txs []models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(tx.Amount)
	}
	return total
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// displayDate renders M/D/YYYY, or the raw string when it is not a date.
func displayDate(tx models.Transaction) string {
	t := tx.Time()
	if t.IsZero() {
		return tx.Date
	}
	return t.Format("1/2/2006")
}
