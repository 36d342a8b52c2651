package expense

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/GustavoCaso/expenselog/internal/util"
)

// Summary aggregates a set of expenses. It is always recomputed, never stored.
type Summary struct {
	Total                   decimal.Decimal              `json:"total"`
	MonthlyTotal            decimal.Decimal              `json:"monthlyTotal"`
	CategoryTotals          map[Category]decimal.Decimal `json:"categoryTotals"`
	TopCategory             *Category                    `json:"topCategory"`
	TransactionCount        int                          `json:"transactionCount"`
	MonthlyTransactionCount int                          `json:"monthlyTransactionCount"`
}

// Summarize computes the Summary of expenses. The current month runs from the
// first day of now's calendar month up to and including now's calendar date,
// both taken in now's location.
func Summarize(expenses []Expense, now time.Time) Summary {
	monthStart, today := util.MonthToDate(now)

	summary := Summary{
		Total:          decimal.Zero,
		MonthlyTotal:   decimal.Zero,
		CategoryTotals: make(map[Category]decimal.Decimal, len(Categories)),
	}
	for _, c := range Categories {
		summary.CategoryTotals[c] = decimal.Zero
	}

	for _, ex := range expenses {
		summary.Total = summary.Total.Add(ex.Amount)
		summary.CategoryTotals[ex.Category] = summary.CategoryTotals[ex.Category].Add(ex.Amount)

		if ex.Date >= monthStart && ex.Date <= today {
			summary.MonthlyTotal = summary.MonthlyTotal.Add(ex.Amount)
			summary.MonthlyTransactionCount++
		}
	}

	summary.TransactionCount = len(expenses)
	summary.TopCategory = topCategory(summary.CategoryTotals)

	return summary
}

// topCategory returns the first category, in enumeration order, whose total is
// strictly above every total seen before it. A zero total never wins.
func topCategory(totals map[Category]decimal.Decimal) *Category {
	var top *Category
	highest := decimal.Zero

	for _, c := range Categories {
		if totals[c].GreaterThan(highest) {
			highest = totals[c]
			category := c
			top = &category
		}
	}

	return top
}
