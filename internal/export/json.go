package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GustavoCaso/expenselog/internal/expense"
)

// Document is the JSON export layout. Field order is part of the format.
type Document struct {
	ExportDate   time.Time         `json:"exportDate"`
	TotalRecords int               `json:"totalRecords"`
	TotalAmount  decimal.Decimal   `json:"totalAmount"`
	Expenses     []expense.Expense `json:"expenses"`
}

// JSON writes the expenses wrapped in a Document, indented with two spaces.
func JSON(writer io.Writer, expenses []expense.Expense, now time.Time) error {
	if expenses == nil {
		expenses = []expense.Expense{}
	}

	doc := Document{
		ExportDate:   now.UTC(),
		TotalRecords: len(expenses),
		TotalAmount:  expense.Total(expenses),
		Expenses:     expenses,
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode JSON export: %w", err)
	}

	return nil
}

// DecodeJSON reads a JSON export document.
func DecodeJSON(reader io.Reader) (Document, error) {
	var doc Document

	if err := json.NewDecoder(reader).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("failed to decode JSON export: %w", err)
	}
	if doc.Expenses == nil {
		doc.Expenses = []expense.Expense{}
	}

	return doc, nil
}
