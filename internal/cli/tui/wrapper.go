package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"

	"github.com/GustavoCaso/expenselog/internal/expense"
	"github.com/GustavoCaso/expenselog/internal/export"
	"github.com/GustavoCaso/expenselog/internal/report"
	"github.com/GustavoCaso/expenselog/internal/util"
)

// wrapper is the report of one calendar month.
type wrapper struct {
	title  string
	report report.Report
}

// generateReports builds one report per month, newest first, from the latest
// of now and the newest expense back to the month of the oldest expense.
func generateReports(expenses []expense.Expense, now time.Time) []wrapper {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	last := first

	for _, ex := range expenses {
		date, err := time.ParseInLocation(expense.DateLayout, ex.Date, now.Location())
		if err != nil {
			continue
		}
		month := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, now.Location())
		if month.Before(first) {
			first = month
		}
		if month.After(last) {
			last = month
		}
	}

	reports := []wrapper{}
	for month := last; !month.Before(first); month = month.AddDate(0, -1, 0) {
		expenses := export.Filter(expenses, export.Options{
			StartDate:            util.Today(month),
			EndDate:              util.Today(month.AddDate(0, 1, -1)),
			IncludeAllCategories: true,
		})

		reports = append(reports, wrapper{
			title:  month.Format("January 2006"),
			report: report.Generate(expenses, now),
		})
	}

	return reports
}

func (w wrapper) ToRow() table.Row {
	top := "-"
	var highest report.Category
	for _, category := range w.report.Categories {
		if category.Amount.GreaterThan(highest.Amount) {
			highest = category
			top = category.Name
		}
	}

	return table.Row{
		w.title,
		fmt.Sprintf("%d", w.report.RecordCount),
		util.ColorOutput(util.FormatCurrency(w.report.Total), "red", "underline"),
		top,
	}
}

func (w wrapper) ToFocusRows() []table.Row {
	rows := make([]table.Row, len(w.report.Categories))

	for i, category := range w.report.Categories {
		rows[i] = table.Row{
			category.Name,
			util.ColorOutput(util.FormatCurrency(category.Amount), "red"),
		}
	}

	return rows
}

func (w wrapper) Categories() []report.Category {
	return w.report.Categories
}

func expenseItems(expenses []expense.Expense) []any {
	items := make([]any, 0, len(expenses))
	for _, ex := range expenses {
		items = append(items, fmt.Sprintf("%s | %s | %s",
			util.FormatDate(ex.Date), ex.Description, util.FormatCurrency(ex.Amount)))
	}
	return items
}
