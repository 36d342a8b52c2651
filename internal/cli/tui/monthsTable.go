package tui

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

const monthColumns = 4

// monthsTable lists one row per month, newest first.
type monthsTable struct {
	model table.Model
}

func newMonthsTable(reports []wrapper) monthsTable {
	rows := make([]table.Row, len(reports))
	for i, r := range reports {
		rows[i] = r.ToRow()
	}

	return monthsTable{
		model: table.New(table.WithRows(rows), table.WithFocused(true)),
	}
}

func (t monthsTable) Cursor() int {
	return t.model.Cursor()
}

func (t monthsTable) Update(msg tea.Msg) (monthsTable, tea.Cmd) {
	var cmd tea.Cmd
	t.model, cmd = t.model.Update(msg)
	return t, cmd
}

// Resize spreads the columns evenly over width.
func (t monthsTable) Resize(width, height int) monthsTable {
	column := width / monthColumns
	t.model.SetColumns([]table.Column{
		{Title: "Month", Width: column},
		{Title: "Records", Width: column},
		{Title: "Spending", Width: column},
		{Title: "Top category", Width: column},
	})
	t.model.SetWidth(width)
	t.model.SetHeight(height)
	return t
}

func (t monthsTable) View() string {
	return t.model.View()
}
