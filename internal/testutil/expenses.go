package testutil

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GustavoCaso/expenselog/internal/expense"
)

// Timestamp is the creation time given to fixture expenses.
var Timestamp = time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

// NewExpense builds a valid expense without going through validation so tests
// control every field. The id is derived from the position-independent fields.
func NewExpense(t *testing.T, date, amount string, category expense.Category, description string) expense.Expense {
	t.Helper()

	value, err := decimal.NewFromString(amount)
	if err != nil {
		t.Fatalf("invalid fixture amount %q: %v", amount, err)
	}

	return expense.Expense{
		ID:          date + "|" + category.String() + "|" + description,
		Date:        date,
		Amount:      value,
		Category:    category,
		Description: description,
		CreatedAt:   Timestamp,
		UpdatedAt:   Timestamp,
	}
}

// SampleExpenses returns the expenses used by the concrete export scenario.
func SampleExpenses(t *testing.T) []expense.Expense {
	t.Helper()

	return []expense.Expense{
		NewExpense(t, "2024-01-15", "50", expense.Food, "Dinner"),
		NewExpense(t, "2024-02-01", "30", expense.Food, "Groceries"),
		NewExpense(t, "2024-02-10", "20", expense.Bills, "Phone bill"),
	}
}
