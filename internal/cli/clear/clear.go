package clearcmd

import (
	"context"
	"errors"
	"flag"

	"github.com/GustavoCaso/expenselog/internal/cli"
)

var errNotConfirmed = errors.New("refusing to delete every expense without -yes")

type clearCommand struct {
	yes bool
}

func NewCommand() cli.Command {
	return &clearCommand{}
}

func (c *clearCommand) Description() string {
	return "Deletes every stored expense"
}

func (c *clearCommand) SetFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.yes, "yes", false, "confirm deleting every expense")
}

func (c *clearCommand) Run(ctx context.Context, env *cli.Env) error {
	if !c.yes {
		return errNotConfirmed
	}

	removed := env.Store.Clear(ctx)
	env.Printf("Deleted %d expenses", removed)

	return nil
}
