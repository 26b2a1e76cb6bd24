// Package dashboard renders aggregate views as styled terminal text.
package dashboard

import (
	"fmt"
	"strings"

	"fjacquet/smart-finance/internal/aggregate"
	"fjacquet/smart-finance/internal/currencyutils"
	"fjacquet/smart-finance/internal/models"
	"fjacquet/smart-finance/internal/pagination"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"
)

const barWidth = 20

// Renderer turns views into strings. It holds no state between calls.
type Renderer struct {
	theme  Theme
	symbol string
}

// NewRenderer creates a Renderer with the default theme.
func NewRenderer(symbol string) *Renderer {
	if symbol == "" {
		symbol = currencyutils.DefaultSymbol
	}
	return &Renderer{theme: DefaultTheme, symbol: symbol}
}

// Render draws the full dashboard: stat cards, breakdown, cash flow and the
// current page of transactions.
func (r *Renderer) Render(view aggregate.View, page pagination.Page[models.Transaction], period models.Period) string {
	title := r.theme.Title.Render(fmt.Sprintf("Smart Finance  (%s, %d transactions)", periodLabel(period), len(view.Filtered)))

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		r.StatCards(view.Totals),
		"",
		r.Breakdown(view.CategoryBreakdown),
		"",
		r.MonthlySeries(view.MonthlySeries),
		"",
		r.Transactions(page),
	)
}

// StatCards renders the four summary figures side by side.
func (r *Renderer) StatCards(t aggregate.Totals) string {
	balanceStyle := r.theme.Income
	if t.Balance.IsNegative() {
		balanceStyle = r.theme.Expense
	}

	cards := []string{
		r.card("Total Income", r.money(t.Income), r.theme.Income),
		r.card("Total Expenses", r.money(t.Expenses), r.theme.Expense),
		r.card("Net Balance", r.money(t.Balance), balanceStyle),
		r.card("Est. Savings", r.money(t.EstimatedSavings), r.theme.Savings),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (r *Renderer) card(label, value string, valueStyle lipgloss.Style) string {
	return r.theme.Card.Render(lipgloss.JoinVertical(lipgloss.Left,
		r.theme.Muted.Render(label),
		valueStyle.Bold(true).Render(value),
	))
}

// Breakdown renders expense categories with proportional bars.
func (r *Renderer) Breakdown(items []aggregate.CategoryTotal) string {
	title := r.theme.Subtitle.Render("Spending by Category")
	if len(items) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, r.theme.Muted.Render("No expenses in this period."))
	}

	maxTotal := decimal.Zero
	for _, it := range items {
		if it.Total.GreaterThan(maxTotal) {
			maxTotal = it.Total
		}
	}

	lines := make([]string, 0, len(items))
	for _, it := range items {
		n := 0
		if maxTotal.IsPositive() {
			n = int(it.Total.Div(maxTotal).Mul(decimal.NewFromInt(barWidth)).Round(0).IntPart())
		}
		if n == 0 && it.Total.IsPositive() {
			n = 1
		}
		lines = append(lines, fmt.Sprintf("%-18s %s %s",
			truncate(it.Category, 18),
			r.theme.Bar.Render(strings.Repeat("█", n)+strings.Repeat(" ", barWidth-n)),
			r.money(it.Total),
		))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, r.theme.Normal.Render(strings.Join(lines, "\n")))
}

// MonthlySeries renders the cash flow table.
func (r *Renderer) MonthlySeries(points []aggregate.MonthPoint) string {
	title := r.theme.Subtitle.Render("Monthly Cash Flow")
	if len(points) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, r.theme.Muted.Render("No transactions yet."))
	}

	t := r.newTable("Month", "Income", "Expenses", "Savings", "Net", "Balance")
	for _, p := range points {
		t.Row(p.Label,
			r.money(p.Income),
			r.money(p.Expenses),
			r.money(p.Savings),
			r.money(p.Net),
			r.money(p.RunningBalance))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, t.Render())
}

// Transactions renders one page of the filtered list and its page window.
func (r *Renderer) Transactions(page pagination.Page[models.Transaction]) string {
	title := r.theme.Subtitle.Render("Transactions")
	if len(page.Items) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, r.theme.Muted.Render("No transactions match the current filters."))
	}

	t := r.newTable("ID", "Date", "Description", "Category", "Amount")
	for _, tx := range page.Items {
		t.Row(fmt.Sprintf("%d", tx.ID), tx.Date, truncate(tx.Description, 32), tx.Category, r.signed(tx))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, t.Render(), r.PageWindow(page.Window, page.CurrentPage))
}

// PageWindow renders the page links, marking the current page.
func (r *Renderer) PageWindow(window []pagination.PageLink, current int) string {
	if len(window) <= 1 {
		return ""
	}
	parts := make([]string, 0, len(window))
	for _, l := range window {
		switch {
		case l.Ellipsis:
			parts = append(parts, r.theme.Muted.Render(l.String()))
		case l.Number == current:
			parts = append(parts, r.theme.Current.Render("["+l.String()+"]"))
		default:
			parts = append(parts, l.String())
		}
	}
	return "Page " + strings.Join(parts, " ")
}

func (r *Renderer) newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(r.theme.Border)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.theme.Header
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

func (r *Renderer) signed(tx models.Transaction) string {
	switch {
	case tx.IsIncome():
		return r.theme.Income.Render("+" + r.money(tx.Amount))
	case tx.IsSavings():
		return r.theme.Savings.Render(r.money(tx.Amount))
	}
	return r.theme.Expense.Render("-" + r.money(tx.Amount))
}

func (r *Renderer) money(d decimal.Decimal) string {
	return currencyutils.FormatAmount(d, r.symbol)
}

func periodLabel(p models.Period) string {
	switch p {
	case models.Period7Days:
		return "last 7 days"
	case models.Period30Days:
		return "last 30 days"
	case models.Period90Days:
		return "last 90 days"
	case models.PeriodYear:
		return "last year"
	}
	return "all time"
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
