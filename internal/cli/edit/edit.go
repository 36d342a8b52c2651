package edit

import (
	"context"
	"errors"
	"flag"

	"github.com/GustavoCaso/expenselog/internal/cli"
	"github.com/GustavoCaso/expenselog/internal/expense"
	"github.com/GustavoCaso/expenselog/internal/util"
)

var errMissingID = errors.New("-id is required")

type editCommand struct {
	id          string
	date        string
	amount      string
	category    string
	description string
}

func NewCommand() cli.Command {
	return &editCommand{}
}

func (c *editCommand) Description() string {
	return "Changes an existing expense; omitted fields keep their value"
}

func (c *editCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.id, "id", "", "id of the expense to edit")
	fs.StringVar(&c.date, "date", "", "new date as YYYY-MM-DD")
	fs.StringVar(&c.amount, "amount", "", "new amount")
	fs.StringVar(&c.category, "category", "", "new category")
	fs.StringVar(&c.description, "description", "", "new description")
}

func (c *editCommand) Run(ctx context.Context, env *cli.Env) error {
	if c.id == "" {
		return errMissingID
	}

	existing, err := env.Store.Get(ctx, c.id)
	if err != nil {
		return err
	}

	in := existing.ToInput()
	if c.date != "" {
		in.Date = c.date
	}
	if c.amount != "" {
		in.Amount = c.amount
	}
	if c.category != "" {
		in.Category = c.category
	}
	if c.description != "" {
		in.Description = c.description
	}

	updated, err := expense.Edit(existing, in, env.Now())
	if err != nil {
		return err
	}

	if err = env.Store.Update(ctx, updated); err != nil {
		return err
	}

	env.Printf("Updated %s: %s %s on %s (%s)",
		updated.ID, updated.Category, util.FormatCurrency(updated.Amount), updated.Date, updated.Description)

	return nil
}
