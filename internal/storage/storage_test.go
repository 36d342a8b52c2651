package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/GustavoCaso/expenselog/internal/config"
	"github.com/GustavoCaso/expenselog/internal/expense"
	"github.com/GustavoCaso/expenselog/internal/storage/file"
	"github.com/GustavoCaso/expenselog/internal/storage/memory"
	"github.com/GustavoCaso/expenselog/internal/storage/sqlite"
	"github.com/GustavoCaso/expenselog/internal/testutil"
)

type failingBackend struct {
	loadErr error
	saveErr error
	saved   [][]expense.Expense
	data    []expense.Expense
}

func (b *failingBackend) Load(_ context.Context) ([]expense.Expense, error) {
	if b.loadErr != nil {
		return nil, b.loadErr
	}
	return b.data, nil
}

func (b *failingBackend) SaveAll(_ context.Context, expenses []expense.Expense) error {
	b.saved = append(b.saved, expenses)
	if b.saveErr != nil {
		return b.saveErr
	}
	b.data = expenses
	return nil
}

func (b *failingBackend) Close() error {
	return nil
}

func TestStoreAddPrepends(t *testing.T) {
	ctx := context.Background()
	store := New(memory.New(), testutil.TestLogger(t))

	first := testutil.NewExpense(t, "2024-01-01", "10", expense.Food, "first")
	second := testutil.NewExpense(t, "2024-01-02", "20", expense.Bills, "second")

	store.Add(ctx, first)
	expenses := store.Add(ctx, second)

	if len(expenses) != 2 || expenses[0].ID != second.ID || expenses[1].ID != first.ID {
		t.Fatalf("Add() = %+v, want newest first", expenses)
	}

	loaded := store.Load(ctx)
	if len(loaded) != 2 || loaded[0].ID != second.ID {
		t.Errorf("Load() = %+v, want newest first", loaded)
	}
}

func TestStoreAddMany(t *testing.T) {
	ctx := context.Background()
	existing := testutil.NewExpense(t, "2024-01-01", "10", expense.Food, "existing")
	store := New(memory.New(existing), testutil.TestLogger(t))

	imported := []expense.Expense{
		testutil.NewExpense(t, "2024-02-01", "1", expense.Other, "a"),
		testutil.NewExpense(t, "2024-02-02", "2", expense.Other, "b"),
	}

	expenses := store.AddMany(ctx, imported)
	if len(expenses) != 3 || expenses[0].ID != imported[0].ID || expenses[2].ID != existing.ID {
		t.Errorf("AddMany() = %+v", expenses)
	}
}

func TestStoreUpdate(t *testing.T) {
	ctx := context.Background()
	a := testutil.NewExpense(t, "2024-01-01", "10", expense.Food, "a")
	b := testutil.NewExpense(t, "2024-01-02", "20", expense.Food, "b")
	store := New(memory.New(a, b), testutil.TestLogger(t))

	replacement := b
	replacement.Description = "b edited"
	if err := store.Update(ctx, replacement); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	loaded := store.Load(ctx)
	if loaded[1].Description != "b edited" || loaded[0].ID != a.ID {
		t.Errorf("Update() did not keep positions: %+v", loaded)
	}

	missing := replacement
	missing.ID = "nope"
	var notFound *NotFoundError
	if err := store.Update(ctx, missing); !errors.As(err, &notFound) {
		t.Errorf("Update() error = %v, want NotFoundError", err)
	}
}

func TestStoreGetAndDelete(t *testing.T) {
	ctx := context.Background()
	a := testutil.NewExpense(t, "2024-01-01", "10", expense.Food, "a")
	b := testutil.NewExpense(t, "2024-01-02", "20", expense.Food, "b")
	store := New(memory.New(a, b), testutil.TestLogger(t))

	got, err := store.Get(ctx, b.ID)
	if err != nil || got.Description != "b" {
		t.Fatalf("Get() = %+v, %v", got, err)
	}

	deleted, err := store.Delete(ctx, a.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if deleted.ID != a.ID {
		t.Errorf("Delete() returned %s, want %s", deleted.ID, a.ID)
	}

	loaded := store.Load(ctx)
	if len(loaded) != 1 || loaded[0].ID != b.ID {
		t.Errorf("Load() after delete = %+v", loaded)
	}

	var notFound *NotFoundError
	if _, err = store.Delete(ctx, a.ID); !errors.As(err, &notFound) {
		t.Errorf("Delete() error = %v, want NotFoundError", err)
	}
	if _, err = store.Get(ctx, a.ID); !errors.As(err, &notFound) {
		t.Errorf("Get() error = %v, want NotFoundError", err)
	}
}

func TestStoreClear(t *testing.T) {
	ctx := context.Background()
	store := New(memory.New(
		testutil.NewExpense(t, "2024-01-01", "10", expense.Food, "a"),
		testutil.NewExpense(t, "2024-01-02", "20", expense.Food, "b"),
	), testutil.TestLogger(t))

	if removed := store.Clear(ctx); removed != 2 {
		t.Errorf("Clear() = %d, want 2", removed)
	}
	if loaded := store.Load(ctx); len(loaded) != 0 {
		t.Errorf("Load() after clear = %+v", loaded)
	}
}

func TestStoreSwallowsFailures(t *testing.T) {
	ctx := context.Background()
	backend := &failingBackend{loadErr: errors.New("disk on fire")}
	store := New(backend, testutil.TestLogger(t))

	loaded := store.Load(ctx)
	if loaded == nil || len(loaded) != 0 {
		t.Errorf("Load() = %v, want an empty list on failure", loaded)
	}

	backend.loadErr = nil
	backend.saveErr = errors.New("read-only")

	ex := testutil.NewExpense(t, "2024-01-01", "10", expense.Food, "a")
	expenses := store.Add(ctx, ex)
	if len(expenses) != 1 {
		t.Errorf("Add() = %+v, want the in-memory result despite the failed save", expenses)
	}
	if len(backend.saved) != 1 {
		t.Errorf("Expected one save attempt, got %d", len(backend.saved))
	}
	if len(store.Load(ctx)) != 0 {
		t.Error("Expected nothing persisted after a failed save")
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name    string
		conf    config.Storage
		check   func(Backend) bool
		wantErr bool
	}{
		{
			name: "file",
			conf: config.Storage{Backend: config.BackendFile, Path: filepath.Join(dir, "expenses.json")},
			check: func(b Backend) bool {
				_, ok := b.(*file.Storage)
				return ok
			},
		},
		{
			name: "sqlite",
			conf: config.Storage{Backend: config.BackendSQLite, Path: filepath.Join(dir, "expenses.db")},
			check: func(b Backend) bool {
				_, ok := b.(*sqlite.Storage)
				return ok
			},
		},
		{
			name: "memory",
			conf: config.Storage{Backend: config.BackendMemory},
			check: func(b Backend) bool {
				_, ok := b.(*memory.Storage)
				return ok
			},
		},
		{
			name:    "unknown",
			conf:    config.Storage{Backend: "postgres"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend, err := Open(ctx, tt.conf, testutil.TestLogger(t))
			if tt.wantErr {
				if err == nil {
					t.Fatal("Open() expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			defer backend.Close()

			if !tt.check(backend) {
				t.Errorf("Open() returned %T", backend)
			}

			store := New(backend, testutil.TestLogger(t))
			store.Add(ctx, testutil.NewExpense(t, "2024-01-01", "10", expense.Food, "a"))
			if got := len(store.Load(ctx)); got != 1 {
				t.Errorf("Load() returned %d expenses, want 1", got)
			}
		})
	}
}
