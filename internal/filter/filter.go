package filter

import (
	"cmp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/GustavoCaso/expenselog/internal/expense"
)

// ExpenseFilter holds filter criteria for listing expenses.
// All fields are pointers to distinguish "not set" from zero values.
type ExpenseFilter struct {
	Category  *expense.Category
	Query     *string          // case-insensitive match on description, amount or category
	AmountMin *decimal.Decimal // inclusive
	AmountMax *decimal.Decimal // inclusive
	DateFrom  *string          // YYYY-MM-DD, inclusive
	DateTo    *string          // YYYY-MM-DD, inclusive
}

// SortField represents a field that can be sorted on.
type SortField string

const (
	SortByDate   SortField = "date"
	SortByAmount SortField = "amount"
)

// SortDirection represents sort order.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortOptions holds sorting preferences.
type SortOptions struct {
	Field     SortField
	Direction SortDirection
}

// DefaultSortOptions returns the default sort (date descending, newest first).
func DefaultSortOptions() *SortOptions {
	return &SortOptions{
		Field:     SortByDate,
		Direction: SortDesc,
	}
}

// String returns the sort options as a string (e.g., "date:desc").
func (s *SortOptions) String() string {
	return string(s.Field) + ":" + string(s.Direction)
}

// Matches reports whether ex satisfies every criterion set on f.
func (f *ExpenseFilter) Matches(ex expense.Expense) bool {
	if f.Category != nil && ex.Category != *f.Category {
		return false
	}
	if f.DateFrom != nil && ex.Date < *f.DateFrom {
		return false
	}
	if f.DateTo != nil && ex.Date > *f.DateTo {
		return false
	}
	if f.AmountMin != nil && ex.Amount.LessThan(*f.AmountMin) {
		return false
	}
	if f.AmountMax != nil && ex.Amount.GreaterThan(*f.AmountMax) {
		return false
	}
	if f.Query != nil && !matchesQuery(ex, *f.Query) {
		return false
	}
	return true
}

func matchesQuery(ex expense.Expense, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}

	return strings.Contains(strings.ToLower(ex.Description), q) ||
		strings.Contains(ex.Amount.String(), q) ||
		strings.Contains(strings.ToLower(ex.Category.String()), q)
}

// Apply returns the matching expenses ordered by sort. Ties keep their
// stored order. A nil filter or sort is not applied.
func Apply(expenses []expense.Expense, f *ExpenseFilter, sort *SortOptions) []expense.Expense {
	result := make([]expense.Expense, 0, len(expenses))
	for _, ex := range expenses {
		if f == nil || f.Matches(ex) {
			result = append(result, ex)
		}
	}

	if sort == nil {
		return result
	}

	slices.SortStableFunc(result, func(a, b expense.Expense) int {
		var order int
		switch sort.Field {
		case SortByAmount:
			order = a.Amount.Cmp(b.Amount)
		case SortByDate:
			fallthrough
		default:
			order = cmp.Compare(a.Date, b.Date)
		}
		if sort.Direction == SortDesc {
			return -order
		}
		return order
	})

	return result
}
