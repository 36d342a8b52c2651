package report

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/GustavoCaso/expenselog/internal/cli"
	"github.com/GustavoCaso/expenselog/internal/export"
	internalReport "github.com/GustavoCaso/expenselog/internal/report"
	"github.com/GustavoCaso/expenselog/internal/util"
)

var errInvalidPeriod = errors.New("use -month 1-12 with an optional -year, or -month 0 with -year for a yearly report")

type reportCommand struct {
	month   int
	year    int
	verbose bool
}

func NewCommand() cli.Command {
	return &reportCommand{}
}

func (c *reportCommand) Description() string {
	return "Displays the expenses information for selected date ranges"
}

func (c *reportCommand) SetFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.month, "month", -1, "what month to use for generating report (default previous month)")
	fs.IntVar(&c.year, "year", -1, "what year to use for generating report")
	fs.BoolVar(&c.verbose, "v", false, "show every expense of each category")
}

// period returns the inclusive YYYY-MM-DD bounds selected by the flags.
func (c *reportCommand) period(now time.Time) (string, string, string, error) {
	year := c.year
	if year == -1 {
		year = now.Year()
	}

	var start, end time.Time
	var label string

	switch {
	case c.month == -1 && c.year == -1:
		// previous month, which may belong to last year
		start = time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 1, -1)
		label = start.Format("January 2006")
	case c.month >= 1 && c.month <= 12:
		start = time.Date(year, time.Month(c.month), 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 1, -1)
		label = start.Format("January 2006")
	case c.month == 0 && c.year > 0:
		start = time.Date(year, time.January, 1, 0, 0, 0, 0, now.Location())
		end = time.Date(year, time.December, 31, 0, 0, 0, 0, now.Location())
		label = start.Format("2006")
	default:
		return "", "", "", errInvalidPeriod
	}

	return util.Today(start), util.Today(end), label, nil
}

func (c *reportCommand) Run(ctx context.Context, env *cli.Env) error {
	now := env.Now()

	from, to, label, err := c.period(now)
	if err != nil {
		return err
	}

	expenses := export.Filter(env.Store.Load(ctx), export.Options{
		StartDate:            from,
		EndDate:              to,
		IncludeAllCategories: true,
	})
	r := internalReport.Generate(expenses, now)

	if c.verbose {
		env.Printf("%s", r.Text())
		return nil
	}

	env.Printf("%s", util.ColorOutput(fmt.Sprintf("Report for %s", label), "bold", "underline"))
	env.Printf("%s - %s", util.FormatDate(from), util.FormatDate(to))
	env.Printf("")
	for _, category := range r.Categories {
		env.Printf("%-15s %12s  %d transactions",
			category.Name, util.FormatCurrency(category.Amount), len(category.Expenses))
	}
	if len(r.Categories) > 0 {
		env.Printf("")
	}
	env.Printf("Total: %s (%d transactions)", util.ColorOutput(util.FormatCurrency(r.Total), "bold"), r.RecordCount)

	return nil
}
