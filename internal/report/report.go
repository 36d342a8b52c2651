package report

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GustavoCaso/expenselog/internal/expense"
	"github.com/GustavoCaso/expenselog/internal/util"
)

const (
	ruleWidth       = 80
	exportedAtStyle = "2006-01-02 15:04:05 MST"
)

type Category struct {
	Name     string
	Amount   decimal.Decimal
	Expenses []expense.Expense
}

type Report struct {
	Title       string
	ExportedAt  time.Time
	RecordCount int
	Total       decimal.Decimal
	// Categories holds only categories with at least one expense, in the order
	// they first appear in the input.
	Categories []Category
}

func Generate(expenses []expense.Expense, now time.Time) Report {
	report := Report{
		Title:       "EXPENSE REPORT",
		ExportedAt:  now,
		RecordCount: len(expenses),
		Total:       expense.Total(expenses),
	}

	index := map[expense.Category]int{}

	for _, ex := range expenses {
		report.Categories = addExpenseToCategory(report.Categories, index, ex)
	}

	return report
}

func addExpenseToCategory(categories []Category, index map[expense.Category]int, ex expense.Expense) []Category {
	i, ok := index[ex.Category]
	if ok {
		c := categories[i]
		c.Amount = c.Amount.Add(ex.Amount)
		c.Expenses = append(c.Expenses, ex)
		categories[i] = c
		return categories
	}

	index[ex.Category] = len(categories)

	return append(categories, Category{
		Name:   ex.Category.String(),
		Amount: ex.Amount,
		Expenses: []expense.Expense{
			ex,
		},
	})
}

// Text renders the report as a plain-text document.
func (r Report) Text() string {
	doubleRule := strings.Repeat("=", ruleWidth)
	singleRule := strings.Repeat("-", ruleWidth)

	lines := []string{
		r.Title,
		doubleRule,
		"",
		"Export Date: " + r.ExportedAt.Format(exportedAtStyle),
		"Total Records: " + strconv.Itoa(r.RecordCount),
		"Total Amount: " + util.FormatCurrency(r.Total),
		"",
		doubleRule,
		"",
	}

	for _, c := range r.Categories {
		lines = append(lines,
			"\n"+strings.ToUpper(c.Name),
			singleRule,
			"Total: "+util.FormatCurrency(c.Amount)+" ("+strconv.Itoa(len(c.Expenses))+" transactions)",
			"",
		)

		for _, ex := range c.Expenses {
			lines = append(lines,
				"  "+util.FormatDate(ex.Date)+" - "+util.FormatCurrency(ex.Amount),
				"  "+ex.Description,
				"",
			)
		}
	}

	lines = append(lines, doubleRule, "END OF REPORT")

	return strings.Join(lines, "\n")
}
