package add

import (
	"context"
	"flag"

	"github.com/GustavoCaso/expenselog/internal/cli"
	"github.com/GustavoCaso/expenselog/internal/expense"
	"github.com/GustavoCaso/expenselog/internal/util"
)

type addCommand struct {
	date        string
	amount      string
	category    string
	description string
}

func NewCommand() cli.Command {
	return &addCommand{}
}

func (c *addCommand) Description() string {
	return "Records a new expense"
}

func (c *addCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.date, "date", "", "expense date as YYYY-MM-DD (default today)")
	fs.StringVar(&c.amount, "amount", "", "expense amount, must be positive")
	fs.StringVar(&c.category, "category", expense.Other.String(), "one of Food, Transportation, Entertainment, Shopping, Bills, Other")
	fs.StringVar(&c.description, "description", "", "what the money was spent on")
}

func (c *addCommand) Run(ctx context.Context, env *cli.Env) error {
	now := env.Now()

	date := c.date
	if date == "" {
		date = util.Today(now)
	}

	ex, err := expense.New(expense.Input{
		Date:        date,
		Amount:      c.amount,
		Category:    c.category,
		Description: c.description,
	}, now)
	if err != nil {
		return err
	}

	env.Store.Add(ctx, ex)
	env.Logger.Debug("Expense added", "id", ex.ID)

	env.Printf("Added %s %s on %s (%s) id=%s",
		ex.Category, util.FormatCurrency(ex.Amount), ex.Date, ex.Description, ex.ID)

	return nil
}
