package exportcmd

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/GustavoCaso/expenselog/internal/cli"
	"github.com/GustavoCaso/expenselog/internal/destination"
	"github.com/GustavoCaso/expenselog/internal/expense"
	"github.com/GustavoCaso/expenselog/internal/export"
	"github.com/GustavoCaso/expenselog/internal/history"
	"github.com/GustavoCaso/expenselog/internal/util"
)

var errInvalidRange = errors.New("start date must not be after end date")

type exportCommand struct {
	format      string
	filename    string
	from        string
	to          string
	categories  string
	all         bool
	destination string
	target      string
	preview     bool
}

func NewCommand() cli.Command {
	return &exportCommand{}
}

func (c *exportCommand) Description() string {
	return "Exports expenses as CSV, JSON, a text report or a printable HTML report"
}

func (c *exportCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.format, "format", string(export.FormatCSV), "one of csv, json, report, html (pdf is an alias of html)")
	fs.StringVar(&c.filename, "filename", "", "base file name (default expenses-<today>)")
	fs.StringVar(&c.from, "from", "", "only export expenses on or after this date (YYYY-MM-DD)")
	fs.StringVar(&c.to, "to", "", "only export expenses on or before this date (YYYY-MM-DD)")
	fs.StringVar(&c.categories, "categories", "", "comma separated categories to export (default all)")
	fs.BoolVar(&c.all, "all", false, "export every category, ignoring -categories")
	fs.StringVar(&c.destination, "dest", destination.FileName, "where to deliver the export: file, email, google-sheets or amqp")
	fs.StringVar(&c.target, "target", "", "destination target: a directory (- for stdout), recipients, a sheet range or a routing key")
	fs.BoolVar(&c.preview, "preview", false, "only show what would be exported")
}

func (c *exportCommand) options() (export.Options, error) {
	format, err := export.ParseFormat(c.format)
	if err != nil {
		return export.Options{}, err
	}

	for _, date := range []string{c.from, c.to} {
		if date != "" && !expense.ValidDate(date) {
			return export.Options{}, fmt.Errorf("%w: %q", expense.ErrInvalidDate, date)
		}
	}
	if c.from != "" && c.to != "" && c.from > c.to {
		return export.Options{}, errInvalidRange
	}

	categories, err := expense.ParseCategories(c.categories)
	if err != nil {
		return export.Options{}, err
	}

	return export.Options{
		Format:               format,
		Filename:             c.filename,
		StartDate:            c.from,
		EndDate:              c.to,
		Categories:           categories,
		IncludeAllCategories: c.all || len(categories) == 0,
	}, nil
}

func (c *exportCommand) Run(ctx context.Context, env *cli.Env) error {
	options, err := c.options()
	if err != nil {
		return err
	}

	expenses := env.Store.Load(ctx)

	if c.preview {
		printPreview(env, export.Preview(export.Filter(expenses, options)))
		return nil
	}

	dest, err := env.Destinations.Get(c.destination)
	if err != nil {
		return err
	}

	now := env.Now()
	result, err := export.Export(expenses, options, now)
	if err != nil {
		return err
	}

	if result.Summary.RecordCount == 0 {
		env.Printf("Nothing to export")
		return nil
	}

	deliverCtx, cancel := context.WithTimeout(ctx, env.Conf.Export.Timeout)
	defer cancel()

	outcome, err := dest.Deliver(deliverCtx, destination.Content{
		Filename: result.Filename,
		MIMEType: result.MIMEType,
		Data:     result.Content,
		Expenses: result.Expenses,
	}, c.target)
	if err != nil {
		return fmt.Errorf("export to %s failed: %w", dest.Name(), err)
	}

	entry, err := env.History.Record(history.Entry{
		Format:      string(result.Format),
		Destination: outcome.Destination,
		Filename:    result.Filename,
		RecordCount: result.Summary.RecordCount,
		Size:        outcome.Bytes,
		Location:    outcome.Location,
		ExportedAt:  now,
	})
	if err != nil {
		// the export itself went through
		env.Logger.Warn("Failed to record export history", "error", err)
	} else {
		env.Logger.Debug("Export recorded", "id", entry.ID)
	}

	if c.target == destination.Stdout {
		return nil
	}

	env.Printf("Exported %d expenses (%s) to %s",
		result.Summary.RecordCount, util.FormatCurrency(result.Summary.TotalAmount), outcome.Location)

	return nil
}

func printPreview(env *cli.Env, summary export.Summary) {
	if summary.RecordCount == 0 {
		env.Printf("No expenses match the export filters")
		return
	}

	env.Printf("Records:    %d", summary.RecordCount)
	env.Printf("Total:      %s", util.FormatCurrency(summary.TotalAmount))
	env.Printf("Categories: %d", summary.CategoryCount)
	env.Printf("Dates:      %s - %s",
		util.FormatDate(summary.DateRange.Earliest), util.FormatDate(summary.DateRange.Latest))
}
