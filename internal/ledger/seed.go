package ledger

import (
	"fjacquet/smart-finance/internal/models"

	"github.com/shopspring/decimal"
)

// Seed returns the example records a fresh session starts with.
func Seed() []models.Transaction {
	rows := []struct {
		date, description, amount, category string
		txType                              models.TransactionType
	}{
		{"2025-09-05", "Starbucks Coffee", "450", models.CategoryFoodDining, models.TypeExpense},
		{"2025-09-06", "Uber Ride", "120", models.CategoryTransport, models.TypeExpense},
		{"2025-09-04", "Amazon Purchase", "320", models.CategoryShopping, models.TypeExpense},
		{"2025-09-03", "Internet Bill", "85", models.CategoryBills, models.TypeExpense},
		{"2025-09-01", "Monthly Salary", "5000", models.CategoryIncome, models.TypeIncome},
		{"2025-09-07", "Dinner at Restaurant", "35.75", models.CategoryFoodDining, models.TypeExpense},
		{"2025-09-08", "Gas Station Fill Up", "65", models.CategoryTransport, models.TypeExpense},
		{"2025-09-09", "Netflix Subscription", "15.99", models.CategoryEntertainment, models.TypeExpense},
		{"2025-09-07", "Freelance Project Payment", "800", models.CategoryIncome, models.TypeIncome},
		{"2025-09-08", "Pharmacy Medicine", "22.50", models.CategoryHealth, models.TypeExpense},
		{"2025-09-06", "Mall Purchase - Uniqlo", "89.99", models.CategoryShopping, models.TypeExpense},
		{"2025-09-05", "Electricity Bill", "125.40", models.CategoryBills, models.TypeExpense},
		{"2025-09-02", "Grocery Shopping", "285.75", models.CategoryFoodDining, models.TypeExpense},
		{"2025-09-07", "Movie Tickets", "24.00", models.CategoryEntertainment, models.TypeExpense},
		{"2025-09-11", "Car Maintenance", "350.00", models.CategoryTransport, models.TypeExpense},
	}

	out := make([]models.Transaction, len(rows))
	for i, r := range rows {
		out[i] = models.Transaction{
			ID:          i + 1,
			Date:        r.date,
			Description: r.description,
			Amount:      decimal.RequireFromString(r.amount),
			Category:    r.category,
			Type:        r.txType,
		}
	}
	return out
}
