package destination

import (
	"context"
	"fmt"
	"os"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"github.com/GustavoCaso/expenselog/internal/config"
	"github.com/GustavoCaso/expenselog/internal/expense"
)

const SheetsName = "google-sheets"

var sheetHeader = []any{"Date", "Category", "Amount", "Description", "ID"}

// Sheets appends the exported expenses as rows of a Google spreadsheet.
type Sheets struct {
	spreadsheetID string
	sheetName     string
	options       []goption.ClientOption
}

// NewSheets builds the destination from a service account. Extra options are
// appended after the credentials.
func NewSheets(conf config.Sheets, extra ...goption.ClientOption) (*Sheets, error) {
	if conf.SpreadsheetID == "" {
		return nil, fmt.Errorf("%w: sheets spreadsheet_id is required", ErrNotConfigured)
	}

	var options []goption.ClientOption
	switch {
	case conf.CredentialsJSON != "":
		options = append(options, goption.WithCredentialsJSON([]byte(conf.CredentialsJSON)))
	case conf.CredentialsFile != "":
		credentials, err := os.ReadFile(conf.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		options = append(options, goption.WithCredentialsJSON(credentials))
	case len(extra) == 0:
		return nil, fmt.Errorf("%w: sheets credentials_file or credentials_json is required", ErrNotConfigured)
	}
	options = append(options, goption.WithScopes(gsheet.SpreadsheetsScope))
	options = append(options, extra...)

	return &Sheets{
		spreadsheetID: conf.SpreadsheetID,
		sheetName:     conf.SheetName,
		options:       options,
	}, nil
}

func (s *Sheets) Name() string {
	return SheetsName
}

// Deliver appends one row per expense to the target sheet or the configured
// one. The header row is written only when the sheet is still empty.
func (s *Sheets) Deliver(ctx context.Context, content Content, target string) (Outcome, error) {
	sheetName := target
	if sheetName == "" {
		sheetName = s.sheetName
	}

	svc, err := gsheet.NewService(ctx, s.options...)
	if err != nil {
		return Outcome{}, fmt.Errorf("create sheets service: %w", err)
	}

	rng := fmt.Sprintf("%s!A1", sheetName)

	first, err := svc.Spreadsheets.Values.Get(s.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to read sheet %s: %w", sheetName, err)
	}

	vr := &gsheet.ValueRange{Values: sheetRows(content.Expenses, len(first.Values) == 0)}

	resp, err := svc.Spreadsheets.Values.Append(s.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to append rows to sheet %s: %w", sheetName, err)
	}

	location := fmt.Sprintf("%s/%s", s.spreadsheetID, sheetName)
	if resp.Updates != nil && resp.Updates.UpdatedRange != "" {
		location = fmt.Sprintf("%s/%s", s.spreadsheetID, resp.Updates.UpdatedRange)
	}

	return Outcome{Destination: SheetsName, Location: location, Bytes: len(content.Data)}, nil
}

func sheetRows(expenses []expense.Expense, withHeader bool) [][]any {
	rows := make([][]any, 0, len(expenses)+1)
	if withHeader {
		rows = append(rows, sheetHeader)
	}
	for _, ex := range expenses {
		rows = append(rows, []any{ex.Date, ex.Category.String(), ex.Amount.String(), ex.Description, ex.ID})
	}
	return rows
}
