package export

import (
	"github.com/shopspring/decimal"
	"golang.org/x/exp/constraints"

	"github.com/GustavoCaso/expenselog/internal/expense"
)

type DateRange struct {
	Earliest string `json:"earliest"`
	Latest   string `json:"latest"`
}

// Summary gives quick statistics about a filtered set before exporting it.
type Summary struct {
	RecordCount   int             `json:"recordCount"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	CategoryCount int             `json:"categoryCount"`
	// DateRange is nil when there are no records.
	DateRange *DateRange `json:"dateRange"`
}

func Preview(expenses []expense.Expense) Summary {
	summary := Summary{
		RecordCount: len(expenses),
		TotalAmount: expense.Total(expenses),
	}

	seen := map[expense.Category]struct{}{}
	for _, ex := range expenses {
		seen[ex.Category] = struct{}{}
	}
	summary.CategoryCount = len(seen)

	if len(expenses) == 0 {
		return summary
	}

	earliest, latest := expenses[0].Date, expenses[0].Date
	for _, ex := range expenses[1:] {
		earliest, latest = minOf(earliest, ex.Date), maxOf(latest, ex.Date)
	}
	summary.DateRange = &DateRange{Earliest: earliest, Latest: latest}

	return summary
}

func minOf[T constraints.Ordered](a, b T) T {
	if b < a {
		return b
	}
	return a
}

func maxOf[T constraints.Ordered](a, b T) T {
	if b > a {
		return b
	}
	return a
}
