package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/GustavoCaso/expenselog/internal/expense"
)

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

var csvHeader = []string{"Date", "Category", "Amount", "Description", "Created At", "Updated At"}

var ErrInvalidCSVHeader = errors.New("invalid CSV header")

// CSV writes one quoted row per expense after the header row. Every field is
// wrapped in double quotes and embedded quotes are doubled.
func CSV(writer io.Writer, expenses []expense.Expense) error {
	// Pre-allocate rows: header + all expense rows
	rows := make([]string, 0, len(expenses)+1)
	rows = append(rows, strings.Join(csvHeader, ","))

	for _, ex := range expenses {
		rows = append(rows, quoteRow(expenseToCSVRecord(ex)))
	}

	if _, err := io.WriteString(writer, strings.Join(rows, "\n")); err != nil {
		return fmt.Errorf("failed to write CSV records: %w", err)
	}

	return nil
}

func expenseToCSVRecord(ex expense.Expense) []string {
	return []string{
		ex.Date,
		ex.Category.String(),
		ex.Amount.String(),
		ex.Description,
		formatTimestamp(ex.CreatedAt),
		formatTimestamp(ex.UpdatedAt),
	}
}

func quoteRow(record []string) string {
	quoted := make([]string, len(record))
	for i, field := range record {
		quoted[i] = `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timestampLayout)
}

// DecodeCSV reads a CSV export back into expenses. Each row goes through the
// same validation as a newly added expense and receives a new id; timestamps
// present in the file are kept.
func DecodeCSV(reader io.Reader, now time.Time) ([]expense.Expense, error) {
	r := csv.NewReader(reader)
	r.FieldsPerRecord = len(csvHeader)

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty input", ErrInvalidCSVHeader)
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i, column := range csvHeader {
		if header[i] != column {
			return nil, fmt.Errorf("%w: column %d is %q, want %q", ErrInvalidCSVHeader, i+1, header[i], column)
		}
	}

	expenses := []expense.Expense{}
	for line := 2; ; line++ {
		record, readErr := r.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, readErr)
		}

		ex, exErr := expense.New(expense.Input{
			Date:        record[0],
			Category:    record[1],
			Amount:      record[2],
			Description: record[3],
		}, now)
		if exErr != nil {
			return nil, fmt.Errorf("invalid expense on line %d: %w", line, exErr)
		}

		if createdAt, parseErr := time.Parse(time.RFC3339Nano, record[4]); parseErr == nil {
			ex.CreatedAt = createdAt.UTC()
		}
		if updatedAt, parseErr := time.Parse(time.RFC3339Nano, record[5]); parseErr == nil {
			ex.UpdatedAt = updatedAt.UTC()
		}

		expenses = append(expenses, ex)
	}

	return expenses, nil
}
