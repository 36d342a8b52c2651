package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GustavoCaso/expenselog/internal/expense"
)

func newExpense(date, amount string, category expense.Category, description string) expense.Expense {
	return expense.Expense{
		ID:          date + description,
		Date:        date,
		Amount:      decimal.RequireFromString(amount),
		Category:    category,
		Description: description,
	}
}

func TestGenerate(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	expenses := []expense.Expense{
		newExpense("2024-02-10", "20", expense.Bills, "Phone"),
		newExpense("2024-02-01", "30", expense.Food, "Groceries"),
		newExpense("2024-02-12", "15.5", expense.Bills, "Internet"),
		newExpense("2024-02-13", "4.5", expense.Food, "Coffee"),
	}

	report := Generate(expenses, now)

	if report.RecordCount != 4 {
		t.Errorf("Report.RecordCount = %v, want 4", report.RecordCount)
	}
	if !report.Total.Equal(decimal.RequireFromString("70")) {
		t.Errorf("Report.Total = %v, want 70", report.Total)
	}
	if !report.ExportedAt.Equal(now) {
		t.Errorf("Report.ExportedAt = %v, want %v", report.ExportedAt, now)
	}

	if len(report.Categories) != 2 {
		t.Fatalf("len(Report.Categories) = %v, want 2", len(report.Categories))
	}

	bills := report.Categories[0]
	if bills.Name != "Bills" {
		t.Errorf("Categories[0].Name = %v, want Bills (first seen)", bills.Name)
	}
	if !bills.Amount.Equal(decimal.RequireFromString("35.5")) {
		t.Errorf("Bills amount = %v, want 35.5", bills.Amount)
	}
	if len(bills.Expenses) != 2 || bills.Expenses[0].Description != "Phone" || bills.Expenses[1].Description != "Internet" {
		t.Errorf("Bills expenses out of input order: %+v", bills.Expenses)
	}

	food := report.Categories[1]
	if food.Name != "Food" || !food.Amount.Equal(decimal.RequireFromString("34.5")) {
		t.Errorf("Categories[1] = %v %v, want Food 34.5", food.Name, food.Amount)
	}
}

func TestText(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	expenses := []expense.Expense{
		newExpense("2024-02-10", "1200", expense.Shopping, "Laptop"),
		newExpense("2024-02-11", "8", expense.Food, "Sandwich"),
	}

	text := Generate(expenses, now).Text()

	for _, want := range []string{
		"EXPENSE REPORT\n" + strings.Repeat("=", 80),
		"Export Date: 2024-03-01 09:30:00 UTC",
		"Total Records: 2",
		"Total Amount: $1,208.00",
		"\n\nSHOPPING\n" + strings.Repeat("-", 80),
		"Total: $1,200.00 (1 transactions)",
		"  Feb 10, 2024 - $1,200.00\n  Laptop\n",
		"FOOD",
		"  Feb 11, 2024 - $8.00\n  Sandwich\n",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Text() missing %q\n%s", want, text)
		}
	}

	if strings.Index(text, "SHOPPING") > strings.Index(text, "FOOD") {
		t.Error("Text() sections are not in first-seen order")
	}
	if !strings.HasSuffix(text, strings.Repeat("=", 80)+"\nEND OF REPORT") {
		t.Errorf("Text() does not end with the end marker:\n%s", text)
	}
}

func TestTextEmpty(t *testing.T) {
	text := Generate(nil, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)).Text()

	if !strings.Contains(text, "Total Records: 0") {
		t.Errorf("Text() missing zero record count:\n%s", text)
	}
	if !strings.Contains(text, "Total Amount: $0.00") {
		t.Errorf("Text() missing zero total:\n%s", text)
	}
	if !strings.HasSuffix(text, "END OF REPORT") {
		t.Errorf("Text() missing end marker:\n%s", text)
	}
	if strings.Contains(text, "transactions)") {
		t.Errorf("Text() has a category section for empty input:\n%s", text)
	}
}

func TestHTML(t *testing.T) {
	expenses := []expense.Expense{
		newExpense("2024-02-10", "3", expense.Other, "<b>tip</b>"),
	}

	var buf bytes.Buffer
	err := HTML(&buf, "march-report", Generate(expenses, time.Now()))
	if err != nil {
		t.Fatalf("HTML() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "<title>march-report</title>") {
		t.Errorf("HTML() missing title:\n%s", out)
	}
	if !strings.Contains(out, "&lt;b&gt;tip&lt;/b&gt;") {
		t.Errorf("HTML() did not escape the report body:\n%s", out)
	}
	if !strings.Contains(out, "window.print()") {
		t.Errorf("HTML() missing print trigger:\n%s", out)
	}
}
