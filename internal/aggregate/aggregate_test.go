package aggregate

import (
	"math/rand"
	"testing"
	"time"

	"fjacquet/smart-finance/internal/ledger"
	"fjacquet/smart-finance/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var evalTime = time.Date(2025, 9, 15, 12, 0, 0, 0, time.UTC)

func tx(id int, date, amount, category string, t models.TransactionType) models.Transaction {
	return models.Transaction{
		ID: id, Date: date, Description: category, Amount: decimal.RequireFromString(amount),
		Category: category, Type: t,
	}
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputeView_PeriodExcludesOldRecord(t *testing.T) {
	old := evalTime.AddDate(0, 0, -40).Format("2006-01-02")
	records := []models.Transaction{tx(1, old, "10", "Other", models.TypeExpense)}
	e := NewEngine(ScopeFiltered)

	assert.Empty(t, e.ComputeView(records, models.Period30Days, models.FilterSpec{}, evalTime).Filtered)
	assert.Len(t, e.ComputeView(records, models.PeriodAll, models.FilterSpec{}, evalTime).Filtered, 1)
}

func TestComputeView_PeriodBoundaryIsRolling(t *testing.T) {
	records := []models.Transaction{
		tx(1, "2025-08-17", "1", "Other", models.TypeExpense),
		tx(2, "2025-08-16", "1", "Other", models.TypeExpense),
	}
	view := NewEngine(ScopeFiltered).ComputeView(records, models.Period30Days, models.FilterSpec{}, evalTime)
	require.Len(t, view.Filtered, 1)
	assert.Equal(t, 1, view.Filtered[0].ID)

	midnight := time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)
	view = NewEngine(ScopeFiltered).ComputeView(records, models.Period30Days, models.FilterSpec{}, midnight)
	assert.Len(t, view.Filtered, 2)
}

func TestComputeView_BreakdownMergesCategory(t *testing.T) {
	records := []models.Transaction{
		tx(1, "2025-09-10", "100", "Food", models.TypeExpense),
		tx(2, "2025-09-11", "50", "Food", models.TypeExpense),
	}
	view := NewEngine(ScopeFiltered).ComputeView(records, models.PeriodAll, models.FilterSpec{}, evalTime)

	require.Len(t, view.CategoryBreakdown, 1)
	assert.Equal(t, "Food", view.CategoryBreakdown[0].Category)
	assert.True(t, d("150").Equal(view.CategoryBreakdown[0].Total))
}

func TestComputeView_Seed(t *testing.T) {
	view := NewEngine(ScopeFiltered).ComputeView(ledger.Seed(), models.Period30Days, models.FilterSpec{}, evalTime)

	require.Len(t, view.Filtered, 15)
	assert.Equal(t, "2025-09-11", view.Filtered[0].Date)
	assert.Equal(t, "2025-09-01", view.Filtered[14].Date)

	assert.True(t, d("5800").Equal(view.Totals.Income), view.Totals.Income.String())
	assert.True(t, d("1989.38").Equal(view.Totals.Expenses), view.Totals.Expenses.String())
	assert.True(t, d("3810.62").Equal(view.Totals.Balance))
	assert.True(t, d("762.124").Equal(view.Totals.EstimatedSavings))

	// date-desc order puts Transportation (Sep 11) first
	cats := make([]string, len(view.CategoryBreakdown))
	for i, c := range view.CategoryBreakdown {
		cats[i] = c.Category
	}
	assert.Equal(t, []string{
		models.CategoryTransport, models.CategoryEntertainment, models.CategoryHealth,
		models.CategoryFoodDining, models.CategoryShopping, models.CategoryBills,
	}, cats)

	require.Len(t, view.MonthlySeries, 1)
	assert.Equal(t, "Sep 25", view.MonthlySeries[0].Label)
	assert.True(t, d("3810.62").Equal(view.MonthlySeries[0].RunningBalance))
}

func TestComputeView_SortTiesKeepLedgerOrder(t *testing.T) {
	records := []models.Transaction{
		tx(1, "2025-09-07", "1", "A", models.TypeExpense),
		tx(2, "2025-09-09", "1", "B", models.TypeExpense),
		tx(3, "2025-09-07", "1", "C", models.TypeExpense),
		tx(4, "2025-09-07", "1", "D", models.TypeExpense),
	}
	view := NewEngine(ScopeFiltered).ComputeView(records, models.PeriodAll, models.FilterSpec{}, evalTime)

	ids := []int{}
	for _, r := range view.Filtered {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []int{2, 1, 3, 4}, ids)
	assert.Equal(t, 1, records[0].ID, "ledger must not be reordered")
}

func TestComputeView_SortedForAnyPermutation(t *testing.T) {
	seed := ledger.Seed()
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := models.CloneTransactions(seed)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		view := NewEngine(ScopeFiltered).ComputeView(shuffled, models.PeriodAll, models.FilterSpec{}, evalTime)
		for j := 1; j < len(view.Filtered); j++ {
			assert.GreaterOrEqual(t, view.Filtered[j-1].Date, view.Filtered[j].Date)
		}
	}
}

func TestComputeView_TotalConsistency(t *testing.T) {
	minAmount := d("50")
	specs := []models.FilterSpec{
		{},
		{Type: models.TypeFilterIncome},
		{Type: models.TypeFilterExpense, Categories: []string{models.CategoryShopping}},
		{MinAmount: &minAmount},
		{DateFrom: "2030-01-01"},
	}
	for _, scope := range []TotalsScope{ScopeFiltered, ScopeAll} {
		for _, period := range models.Periods {
			for _, spec := range specs {
				view := NewEngine(scope).ComputeView(ledger.Seed(), period, spec, evalTime)
				tot := view.Totals
				assert.True(t, tot.Balance.Equal(tot.Income.Sub(tot.Expenses)))
				assert.False(t, tot.EstimatedSavings.IsNegative())
			}
		}
	}
}

func TestComputeView_Empty(t *testing.T) {
	view := NewEngine(ScopeFiltered).ComputeView(nil, models.PeriodAll, models.FilterSpec{}, evalTime)

	assert.Empty(t, view.Filtered)
	assert.True(t, view.Totals.Income.IsZero())
	assert.True(t, view.Totals.Balance.IsZero())
	assert.True(t, view.Totals.EstimatedSavings.IsZero())
	assert.Empty(t, view.CategoryBreakdown)
	assert.Empty(t, view.MonthlySeries)
}

func TestComputeView_ScopeAll(t *testing.T) {
	records := []models.Transaction{
		tx(1, "2025-09-10", "1000", "Income", models.TypeIncome),
		tx(2, "2025-09-11", "200", "Food", models.TypeExpense),
	}
	spec := models.FilterSpec{Type: models.TypeFilterExpense}

	filtered := NewEngine(ScopeFiltered).ComputeView(records, models.PeriodAll, spec, evalTime)
	all := NewEngine(ScopeAll).ComputeView(records, models.PeriodAll, spec, evalTime)

	assert.Equal(t, filtered.Filtered, all.Filtered)
	assert.True(t, filtered.Totals.Income.IsZero())
	assert.True(t, d("1000").Equal(all.Totals.Income))
	assert.True(t, d("160").Equal(all.Totals.EstimatedSavings))
}

func TestComputeTotals_NegativeBalanceClampsSavings(t *testing.T) {
	tot := ComputeTotals([]models.Transaction{
		tx(1, "2025-09-10", "100", "Income", models.TypeIncome),
		tx(2, "2025-09-11", "300", "Food", models.TypeExpense),
		tx(3, "2025-09-12", "999", "Savings", models.TypeSavings),
	})
	assert.True(t, d("-200").Equal(tot.Balance))
	assert.True(t, tot.EstimatedSavings.IsZero())
}

func TestMonthlySeries(t *testing.T) {
	records := []models.Transaction{
		tx(1, "2025-09-02", "100", "Food", models.TypeExpense),
		tx(2, "2025-08-01", "1000", "Income", models.TypeIncome),
		tx(3, "2025-08-20", "300", "Savings", models.TypeSavings),
		tx(4, "2025-08-15", "400", "Rent", models.TypeExpense),
		tx(5, "2025-09-01", "50", "Income", models.TypeIncome),
	}
	series := MonthlySeries(records)

	require.Len(t, series, 2)
	aug, sep := series[0], series[1]

	assert.Equal(t, "2025-08", aug.Month)
	assert.Equal(t, "Aug 25", aug.Label)
	assert.True(t, d("600").Equal(aug.Net))
	assert.True(t, d("300").Equal(aug.Savings))
	assert.True(t, d("600").Equal(aug.RunningBalance))

	assert.Equal(t, "2025-09", sep.Month)
	assert.True(t, d("-50").Equal(sep.Net))
	assert.True(t, d("550").Equal(sep.RunningBalance))
}

func TestMonthlySeries_IgnoresFilter(t *testing.T) {
	old := tx(1, "2024-01-05", "10", "Food", models.TypeExpense)
	view := NewEngine(ScopeFiltered).ComputeView([]models.Transaction{old}, models.Period7Days, models.FilterSpec{}, evalTime)

	assert.Empty(t, view.Filtered)
	require.Len(t, view.MonthlySeries, 1)
	assert.Equal(t, "2024-01", view.MonthlySeries[0].Month)
}

func TestParseTotalsScope(t *testing.T) {
	s, err := ParseTotalsScope("ALL")
	require.NoError(t, err)
	assert.Equal(t, ScopeAll, s)
	_, err = ParseTotalsScope("page")
	assert.Error(t, err)
}

func TestTopCategories(t *testing.T) {
	breakdown := []CategoryTotal{
		{Category: "Food", Total: d("20")},
		{Category: "Bills", Total: d("90")},
		{Category: "Fun", Total: d("20")},
		{Category: "Health", Total: d("5")},
	}

	top := TopCategories(breakdown, 3)
	require.Len(t, top, 3)
	assert.Equal(t, "Bills", top[0].Category)
	assert.Equal(t, "Food", top[1].Category)
	assert.Equal(t, "Fun", top[2].Category)
	assert.Equal(t, "Food", breakdown[0].Category, "input is not reordered")

	assert.Len(t, TopCategories(breakdown, 0), 4)
	assert.Empty(t, TopCategories(nil, 3))
}
