package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GustavoCaso/expenselog/internal/expense"
)

const selectExpenses = `SELECT id, date, amount, category, description, created_at, updated_at
	FROM expenses ORDER BY position`

// Load returns the stored expenses in the order they were saved.
func (s *Storage) Load(ctx context.Context) ([]expense.Expense, error) {
	rows, err := s.db.QueryContext(ctx, selectExpenses)
	if err != nil {
		return []expense.Expense{}, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	expenses := []expense.Expense{}

	for rows.Next() {
		ex, expenseErr := expenseFromRow(rows.Scan)
		if expenseErr != nil {
			return []expense.Expense{}, expenseErr
		}
		expenses = append(expenses, ex)
	}

	if err = rows.Err(); err != nil {
		return []expense.Expense{}, err
	}

	return expenses, nil
}

// SaveAll replaces every stored expense inside a single transaction.
func (s *Storage) SaveAll(ctx context.Context, expenses []expense.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err = replaceExpenses(ctx, tx, expenses); err != nil {
		rErr := tx.Rollback()
		if rErr != nil {
			return rErr
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit expenses: %w", err)
	}

	return nil
}

func replaceExpenses(ctx context.Context, tx *sql.Tx, expenses []expense.Expense) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM expenses"); err != nil {
		return fmt.Errorf("failed to delete expenses: %w", err)
	}

	if len(expenses) == 0 {
		return nil
	}

	statement, err := tx.PrepareContext(ctx, `INSERT INTO expenses
		(id, position, date, amount, category, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer statement.Close()

	for position, ex := range expenses {
		_, err = statement.ExecContext(ctx,
			ex.ID,
			position,
			ex.Date,
			ex.Amount.String(),
			ex.Category.String(),
			ex.Description,
			ex.CreatedAt.UTC().Format(time.RFC3339Nano),
			ex.UpdatedAt.UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense %s: %w", ex.ID, err)
		}
	}

	return nil
}

func expenseFromRow(scan func(dest ...any) error) (expense.Expense, error) {
	var id, date, amount, category, description, createdAt, updatedAt string

	if err := scan(&id, &date, &amount, &category, &description, &createdAt, &updatedAt); err != nil {
		return expense.Expense{}, err
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return expense.Expense{}, fmt.Errorf("expense %s has an invalid amount %q: %w", id, amount, err)
	}

	c, err := expense.ParseCategory(category)
	if err != nil {
		return expense.Expense{}, fmt.Errorf("expense %s: %w", id, err)
	}

	created, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return expense.Expense{}, fmt.Errorf("expense %s has an invalid created_at: %w", id, err)
	}

	updated, err := time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return expense.Expense{}, fmt.Errorf("expense %s has an invalid updated_at: %w", id, err)
	}

	return expense.Expense{
		ID:          id,
		Date:        date,
		Amount:      value,
		Category:    c,
		Description: description,
		CreatedAt:   created,
		UpdatedAt:   updated,
	}, nil
}
