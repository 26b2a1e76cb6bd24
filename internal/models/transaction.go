// Package models provides the data structures used throughout the application.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the canonical storage layout for transaction dates.
const DateLayout = "2006-01-02"

// TransactionType carries the direction of a transaction. Amounts are always
// stored as positive magnitudes; the sign lives here.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
	// TypeSavings is only produced by an explicit "savings" type, in a CSV
	// type column or a manual entry.
	TypeSavings TransactionType = "savings"
)

// ParseTransactionType parses a type name case-insensitively.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(strings.ToLower(strings.TrimSpace(s))) {
	case TypeIncome:
		return TypeIncome, nil
	case TypeExpense:
		return TypeExpense, nil
	case TypeSavings:
		return TypeSavings, nil
	}
	return "", fmt.Errorf("unknown transaction type %q (want income, expense or savings)", s)
}

// Transaction is a single ledger record.
type Transaction struct {
	ID          int             `csv:"-" json:"id" yaml:"id"`
	Date        string          `csv:"Date" json:"date" yaml:"date"`
	Description string          `csv:"Description" json:"description" yaml:"description"`
	Amount      decimal.Decimal `csv:"Amount" json:"amount" yaml:"amount"`
	Category    string          `csv:"Category" json:"category" yaml:"category"`
	Type        TransactionType `csv:"Type" json:"type" yaml:"type"`
}

// Time returns the transaction date as a UTC midnight time. A malformed date
// yields the zero time.
func (t Transaction) Time() time.Time {
	d, err := time.ParseInLocation(DateLayout, t.Date, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return d
}

// Month returns the YYYY-MM bucket key of the transaction date.
func (t Transaction) Month() string {
	if len(t.Date) < 7 {
		return ""
	}
	return t.Date[:7]
}

// IsIncome reports whether the transaction is income.
func (t Transaction) IsIncome() bool { return t.Type == TypeIncome }

// IsExpense reports whether the transaction is an expense.
func (t Transaction) IsExpense() bool { return t.Type == TypeExpense }

// IsSavings reports whether the transaction is a savings movement.
func (t Transaction) IsSavings() bool { return t.Type == TypeSavings }

// Validate checks the record invariants: positive amount, non-empty
// description and category, ISO calendar date and a known type.
func (t Transaction) Validate() error {
	if !t.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive, got %s", t.Amount.String())
	}
	if strings.TrimSpace(t.Description) == "" {
		return fmt.Errorf("description is required")
	}
	if strings.TrimSpace(t.Category) == "" {
		return fmt.Errorf("category is required")
	}
	if _, err := time.Parse(DateLayout, t.Date); err != nil {
		return fmt.Errorf("date %q is not a YYYY-MM-DD calendar date", t.Date)
	}
	if _, err := ParseTransactionType(string(t.Type)); err != nil {
		return err
	}
	return nil
}

// CloneTransactions returns a shallow copy of the slice. Transaction holds no
// reference fields, so the copy is independent of the source.
func CloneTransactions(in []Transaction) []Transaction {
	if in == nil {
		return nil
	}
	out := make([]Transaction, len(in))
	copy(out, in)
	return out
}
