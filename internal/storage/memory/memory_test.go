package memory

import (
	"context"
	"testing"

	"github.com/GustavoCaso/expenselog/internal/expense"
	"github.com/GustavoCaso/expenselog/internal/testutil"
)

func TestStorage(t *testing.T) {
	ctx := context.Background()
	stor := New()

	loaded, err := stor.Load(ctx)
	if err != nil || loaded == nil || len(loaded) != 0 {
		t.Fatalf("Load() = %v, %v, want an empty list", loaded, err)
	}

	saved := []expense.Expense{testutil.NewExpense(t, "2024-01-01", "1", expense.Food, "a")}
	if err = stor.SaveAll(ctx, saved); err != nil {
		t.Fatalf("SaveAll() error = %v", err)
	}

	// The caller's slice is not shared with the store
	saved[0].Description = "changed"

	loaded, err = stor.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(loaded) != 1 || loaded[0].Description != "a" {
		t.Errorf("Load() = %+v, want the saved expense", loaded)
	}
}
