package deletecmd

import (
	"context"
	"errors"
	"flag"

	"github.com/GustavoCaso/expenselog/internal/cli"
	"github.com/GustavoCaso/expenselog/internal/util"
)

var errMissingID = errors.New("-id is required")

type deleteCommand struct {
	id string
}

func NewCommand() cli.Command {
	return &deleteCommand{}
}

func (c *deleteCommand) Description() string {
	return "Deletes one expense"
}

func (c *deleteCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.id, "id", "", "id of the expense to delete")
}

func (c *deleteCommand) Run(ctx context.Context, env *cli.Env) error {
	if c.id == "" {
		return errMissingID
	}

	deleted, err := env.Store.Delete(ctx, c.id)
	if err != nil {
		return err
	}

	env.Printf("Deleted %s %s on %s (%s)",
		deleted.Category, util.FormatCurrency(deleted.Amount), deleted.Date, deleted.Description)

	return nil
}
