package importcmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/GustavoCaso/expenselog/internal/cli"
	"github.com/GustavoCaso/expenselog/internal/expense"
	"github.com/GustavoCaso/expenselog/internal/export"
)

var (
	errMissingFile       = errors.New("you must provide a file to import")
	errUnsupportedFormat = errors.New("unsupported import format, use csv or json")
)

type importCommand struct {
	file   string
	format string
}

func NewCommand() cli.Command {
	return &importCommand{}
}

func (c *importCommand) Description() string {
	return "Imports expenses from a CSV or JSON export"
}

func (c *importCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.file, "f", "", "file to import")
	fs.StringVar(&c.format, "format", "", "csv or json (default detected from the file extension)")
}

func (c *importCommand) Run(ctx context.Context, env *cli.Env) error {
	if c.file == "" {
		return errMissingFile
	}

	format := strings.ToLower(c.format)
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(c.file)), ".")
	}

	file, err := os.Open(c.file)
	if err != nil {
		return err
	}
	defer file.Close()

	var imported []expense.Expense
	skipped := 0

	switch export.Format(format) {
	case export.FormatCSV:
		imported, err = export.DecodeCSV(file, env.Now())
	case export.FormatJSON:
		imported, skipped, err = c.decodeJSON(ctx, env, file)
	default:
		return fmt.Errorf("%w: %q", errUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("unable to import expenses due to error: %w", err)
	}

	if len(imported) == 0 {
		env.Printf("No expenses were imported")
	} else {
		env.Store.AddMany(ctx, imported)
		env.Printf("Total expenses imported: %d", len(imported))
	}
	if skipped > 0 {
		env.Printf("Skipped %d expenses that already exist", skipped)
	}

	return nil
}

// decodeJSON keeps the ids and timestamps of the document, so importing the
// same export twice skips what is already stored.
func (c *importCommand) decodeJSON(ctx context.Context, env *cli.Env, r io.Reader) ([]expense.Expense, int, error) {
	doc, err := export.DecodeJSON(r)
	if err != nil {
		return nil, 0, err
	}

	existing := map[string]struct{}{}
	for _, ex := range env.Store.Load(ctx) {
		existing[ex.ID] = struct{}{}
	}

	imported := make([]expense.Expense, 0, len(doc.Expenses))
	skipped := 0
	for i, ex := range doc.Expenses {
		if err = ex.ToInput().Validate(); err != nil {
			return nil, 0, fmt.Errorf("invalid expense at index %d: %w", i, err)
		}
		if ex.ID == "" {
			return nil, 0, fmt.Errorf("expense at index %d has no id", i)
		}
		if _, ok := existing[ex.ID]; ok {
			skipped++
			continue
		}
		existing[ex.ID] = struct{}{}
		imported = append(imported, ex)
	}

	return imported, skipped, nil
}
