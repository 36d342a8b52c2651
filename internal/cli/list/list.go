package list

import (
	"context"
	"flag"
	"net/url"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/GustavoCaso/expenselog/internal/cli"
	"github.com/GustavoCaso/expenselog/internal/expense"
	"github.com/GustavoCaso/expenselog/internal/filter"
	"github.com/GustavoCaso/expenselog/internal/util"
)

const amountColumn = 3

var (
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	amountStyle = cellStyle.Align(lipgloss.Right)
)

type listCommand struct {
	category  string
	from      string
	to        string
	query     string
	amountMin string
	amountMax string
	sort      string
}

func NewCommand() cli.Command {
	return &listCommand{}
}

func (c *listCommand) Description() string {
	return "Lists expenses, optionally filtered and sorted"
}

func (c *listCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.category, "category", "", "only show this category")
	fs.StringVar(&c.from, "from", "", "only show expenses on or after this date (YYYY-MM-DD)")
	fs.StringVar(&c.to, "to", "", "only show expenses on or before this date (YYYY-MM-DD)")
	fs.StringVar(&c.query, "q", "", "search description, amount or category")
	fs.StringVar(&c.amountMin, "min", "", "minimum amount")
	fs.StringVar(&c.amountMax, "max", "", "maximum amount")
	fs.StringVar(&c.sort, "sort", "", "sort as field:direction, field is date or amount (default date:desc)")
}

func (c *listCommand) params() url.Values {
	params := url.Values{}
	set := func(key, value string) {
		if value != "" {
			params.Set(key, value)
		}
	}
	set("category", c.category)
	set("date_from", c.from)
	set("date_to", c.to)
	set("q", c.query)
	set("amount_min", c.amountMin)
	set("amount_max", c.amountMax)
	set("sort", c.sort)
	return params
}

func (c *listCommand) Run(ctx context.Context, env *cli.Env) error {
	f, sort, err := filter.ParseExpenseFilters(c.params())
	if err != nil {
		return err
	}

	expenses := filter.Apply(env.Store.Load(ctx), f, sort)
	if len(expenses) == 0 {
		env.Printf("No expenses found")
		return nil
	}

	env.Printf("%s", renderTable(expenses))
	env.Printf("%d expenses, total %s", len(expenses), util.FormatCurrency(expense.Total(expenses)))

	return nil
}

func renderTable(expenses []expense.Expense) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Date", "Category", "Amount", "Description").
		StyleFunc(func(_, col int) lipgloss.Style {
			if col == amountColumn {
				return amountStyle
			}
			return cellStyle
		})

	for _, ex := range expenses {
		t.Row(ex.ID, ex.Date, ex.Category.String(), util.FormatCurrency(ex.Amount), ex.Description)
	}

	return t.String()
}
