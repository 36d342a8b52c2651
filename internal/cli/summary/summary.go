package summary

import (
	"context"
	"embed"
	"flag"
	"io"
	"path"
	"strings"
	"text/template"

	"github.com/shopspring/decimal"

	"github.com/GustavoCaso/expenselog/internal/cli"
	"github.com/GustavoCaso/expenselog/internal/expense"
	"github.com/GustavoCaso/expenselog/internal/util"
)

// content holds our static content.
//
//go:embed templates/*
var content embed.FS

const labelWidth = 16

type summaryCommand struct {
}

func NewCommand() cli.Command {
	return summaryCommand{}
}

func (c summaryCommand) Description() string {
	return "Displays totals, the current month and the top category"
}

func (c summaryCommand) SetFlags(*flag.FlagSet) {
}

type categoryTotal struct {
	Name   string
	Amount decimal.Decimal
}

type view struct {
	Today      string
	Month      string
	Summary    expense.Summary
	Top        string
	Categories []categoryTotal
}

func (c summaryCommand) Run(ctx context.Context, env *cli.Env) error {
	now := env.Now()
	s := expense.Summarize(env.Store.Load(ctx), now)

	v := view{
		Today:   util.FormatDate(util.Today(now)),
		Month:   now.Format("January 2006"),
		Summary: s,
	}
	if s.TopCategory != nil {
		v.Top = s.TopCategory.String()
	}
	for _, category := range expense.Categories {
		v.Categories = append(v.Categories, categoryTotal{
			Name:   category.String(),
			Amount: s.CategoryTotals[category],
		})
	}

	return renderTemplate(env.Out, "summary.tmpl", v)
}

var templateFuncs = template.FuncMap{
	"formatCurrency": util.FormatCurrency,
	"colorOutput":    util.ColorOutput,
	"pad": func(label string) string {
		return strings.Repeat(" ", max(labelWidth-len(label)-1, 0))
	},
}

func renderTemplate(out io.Writer, templateName string, value interface{}) error {
	tmpl, err := content.ReadFile(path.Join("templates", templateName))
	if err != nil {
		return err
	}
	t := template.Must(template.New(templateName).Funcs(templateFuncs).Parse(string(tmpl)))
	err = t.Execute(out, value)
	if err != nil {
		return err
	}

	return nil
}
