package tui

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/list"

	"github.com/GustavoCaso/expenselog/internal/report"
)

// focusReport shows the categories of one month next to the expenses of the
// selected category.
type focusReport struct {
	table  table.Model
	report wrapper
}

func newFocusReport(report wrapper, width, height int) focusReport {
	t := table.New(
		table.WithColumns(createFocusColumns(width)),
		table.WithRows(report.ToFocusRows()),
		table.WithHeight(height),
	)

	return focusReport{
		table:  t,
		report: report,
	}
}

func (d focusReport) Update(msg tea.Msg) (focusReport, tea.Cmd) {
	var cmd tea.Cmd

	d.table.Focus()
	d.table, cmd = d.table.Update(msg)
	return d, cmd
}

func (d focusReport) UpdateDimensions(width, height int) focusReport {
	t := d.table
	t.SetColumns(createFocusColumns(width))
	t.SetWidth(width)
	t.SetHeight(height)

	return focusReport{
		table:  t,
		report: d.report,
	}
}

func (d focusReport) View() string {
	tableView := d.table.View()

	categories := d.Categories()
	if len(categories) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, d.report.title, "No expenses this month")
	}

	cursor := min(d.Cursor(), len(categories)-1)
	l := list.New(expenseItems(categories[cursor].Expenses)...)

	return lipgloss.JoinHorizontal(lipgloss.Top, tableView, l.String())
}

func (d focusReport) Cursor() int {
	return d.table.Cursor()
}

func (d focusReport) Categories() []report.Category {
	return d.report.Categories()
}

func createFocusColumns(width int) []table.Column {
	w := width / 2

	return []table.Column{
		{Title: "Category", Width: w},
		{Title: "Spending", Width: w},
	}
}
