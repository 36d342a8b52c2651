package historycmd

import (
	"context"
	"flag"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/GustavoCaso/expenselog/internal/cli"
	"github.com/GustavoCaso/expenselog/internal/history"
)

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

type historyCommand struct {
	clear bool
}

func NewCommand() cli.Command {
	return &historyCommand{}
}

func (c *historyCommand) Description() string {
	return "Shows the most recent exports"
}

func (c *historyCommand) SetFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.clear, "clear", false, "forget every recorded export")
}

func (c *historyCommand) Run(_ context.Context, env *cli.Env) error {
	if c.clear {
		if err := env.History.Clear(); err != nil {
			return err
		}
		env.Printf("Export history cleared")
		return nil
	}

	entries, err := env.History.Entries()
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		env.Printf("No exports yet")
		return nil
	}

	env.Printf("%s", renderTable(entries, env))

	return nil
}

func renderTable(entries []history.Entry, env *cli.Env) string {
	now := env.Now()
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("When", "Format", "Destination", "File", "Records", "Size", "Location").
		StyleFunc(func(_, _ int) lipgloss.Style {
			return cellStyle
		})

	for _, entry := range entries {
		t.Row(
			humanize.RelTime(entry.ExportedAt, now, "ago", "from now"),
			entry.Format,
			entry.Destination,
			entry.Filename,
			humanize.Comma(int64(entry.RecordCount)),
			entry.HumanSize(),
			entry.Location,
		)
	}

	return t.String()
}
