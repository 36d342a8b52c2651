package edit

import (
	"context"
	"errors"
	"testing"

	"github.com/GustavoCaso/expenselog/internal/cli/clitest"
	"github.com/GustavoCaso/expenselog/internal/expense"
	"github.com/GustavoCaso/expenselog/internal/storage"
	"github.com/GustavoCaso/expenselog/internal/testutil"
)

func TestRun(t *testing.T) {
	original := testutil.NewExpense(t, "2024-01-01", "5", expense.Food, "Coffee")
	other := testutil.NewExpense(t, "2024-01-02", "7", expense.Bills, "Water")
	env, _ := clitest.NewEnv(t, other, original)

	err := clitest.Run(t, NewCommand(), env, "-id", original.ID, "-amount", "6.40", "-category", "entertainment")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	updated, err := env.Store.Get(context.Background(), original.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if updated.Amount.String() != "6.4" || updated.Category != expense.Entertainment {
		t.Errorf("Expected amount and category to change, got %+v", updated)
	}
	if updated.Description != "Coffee" || updated.Date != "2024-01-01" {
		t.Errorf("Expected untouched fields to stay, got %+v", updated)
	}
	if !updated.CreatedAt.Equal(original.CreatedAt) || !updated.UpdatedAt.Equal(clitest.Now) {
		t.Errorf("Unexpected timestamps %v/%v", updated.CreatedAt, updated.UpdatedAt)
	}

	expenses := env.Store.Load(context.Background())
	if expenses[1].ID != original.ID {
		t.Errorf("Expected the edited expense to keep its position")
	}
}

func TestRunErrors(t *testing.T) {
	existing := testutil.NewExpense(t, "2024-01-01", "5", expense.Food, "Coffee")

	tests := []struct {
		name  string
		args  []string
		check func(error) bool
	}{
		{
			name:  "missing id",
			args:  []string{},
			check: func(err error) bool { return errors.Is(err, errMissingID) },
		},
		{
			name: "unknown id",
			args: []string{"-id", "nope"},
			check: func(err error) bool {
				var notFound *storage.NotFoundError
				return errors.As(err, &notFound)
			},
		},
		{
			name:  "invalid amount",
			args:  []string{"-id", existing.ID, "-amount", "-3"},
			check: func(err error) bool { return errors.Is(err, expense.ErrInvalidAmount) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, _ := clitest.NewEnv(t, existing)
			err := clitest.Run(t, NewCommand(), env, tt.args...)
			if !tt.check(err) {
				t.Errorf("Run() error = %v", err)
			}

			stored, _ := env.Store.Get(context.Background(), existing.ID)
			if !stored.Amount.Equal(existing.Amount) {
				t.Errorf("Expected the stored expense to be unchanged, got %+v", stored)
			}
		})
	}
}
