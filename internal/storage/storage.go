package storage

import (
	"context"
	"fmt"

	"github.com/GustavoCaso/expenselog/internal/config"
	"github.com/GustavoCaso/expenselog/internal/expense"
	"github.com/GustavoCaso/expenselog/internal/logger"
	"github.com/GustavoCaso/expenselog/internal/storage/file"
	"github.com/GustavoCaso/expenselog/internal/storage/memory"
	"github.com/GustavoCaso/expenselog/internal/storage/sqlite"
)

type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("expense %q not found", e.ID)
}

// Backend persists the whole expense list at once. Load of a store that was
// never written returns an empty list and no error.
type Backend interface {
	Load(ctx context.Context) ([]expense.Expense, error)
	SaveAll(ctx context.Context, expenses []expense.Expense) error

	// Resource managment
	Close() error
}

// Open builds the backend selected in conf.
func Open(ctx context.Context, conf config.Storage, logger *logger.Logger) (Backend, error) {
	switch conf.Backend {
	case config.BackendFile:
		return file.New(conf.Path), nil
	case config.BackendSQLite:
		backend, err := sqlite.New(ctx, conf, logger)
		if err != nil {
			return nil, err
		}
		return backend, nil
	case config.BackendMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", conf.Backend)
	}
}

// Store is the record store used by the commands. Every flow reads the full
// list, computes the new list and writes it back; the last writer wins.
// Persistence failures never reach the caller: a failed load yields an empty
// list and a failed save is only logged.
type Store struct {
	backend Backend
	logger  *logger.Logger
}

func New(backend Backend, logger *logger.Logger) *Store {
	return &Store{
		backend: backend,
		logger:  logger.WithComponent("storage"),
	}
}

// Load returns every stored expense, newest first.
func (s *Store) Load(ctx context.Context) []expense.Expense {
	expenses, err := s.backend.Load(ctx)
	if err != nil {
		s.logger.Error("Failed to load expenses", "error", err.Error())
		return []expense.Expense{}
	}
	if expenses == nil {
		return []expense.Expense{}
	}
	return expenses
}

// SaveAll replaces the stored list with expenses.
func (s *Store) SaveAll(ctx context.Context, expenses []expense.Expense) {
	if err := s.backend.SaveAll(ctx, expenses); err != nil {
		s.logger.Error("Failed to save expenses", "error", err.Error(), "count", len(expenses))
		return
	}
	s.logger.Debug("Expenses saved", "count", len(expenses))
}

// Add stores ex in front of the existing expenses and returns the new list.
func (s *Store) Add(ctx context.Context, ex expense.Expense) []expense.Expense {
	current := s.Load(ctx)

	expenses := make([]expense.Expense, 0, len(current)+1)
	expenses = append(expenses, ex)
	expenses = append(expenses, current...)

	s.SaveAll(ctx, expenses)
	return expenses
}

// AddMany stores expenses, in the given order, in front of the existing ones.
func (s *Store) AddMany(ctx context.Context, added []expense.Expense) []expense.Expense {
	current := s.Load(ctx)

	expenses := make([]expense.Expense, 0, len(current)+len(added))
	expenses = append(expenses, added...)
	expenses = append(expenses, current...)

	s.SaveAll(ctx, expenses)
	return expenses
}

func (s *Store) Get(ctx context.Context, id string) (expense.Expense, error) {
	for _, ex := range s.Load(ctx) {
		if ex.ID == id {
			return ex, nil
		}
	}
	return expense.Expense{}, &NotFoundError{ID: id}
}

// Update replaces the expense with the same id, keeping its position.
func (s *Store) Update(ctx context.Context, replacement expense.Expense) error {
	expenses := s.Load(ctx)

	for i, ex := range expenses {
		if ex.ID == replacement.ID {
			expenses[i] = replacement
			s.SaveAll(ctx, expenses)
			return nil
		}
	}

	return &NotFoundError{ID: replacement.ID}
}

// Delete removes the expense with id and returns it.
func (s *Store) Delete(ctx context.Context, id string) (expense.Expense, error) {
	expenses := s.Load(ctx)

	for i, ex := range expenses {
		if ex.ID == id {
			remaining := make([]expense.Expense, 0, len(expenses)-1)
			remaining = append(remaining, expenses[:i]...)
			remaining = append(remaining, expenses[i+1:]...)
			s.SaveAll(ctx, remaining)
			return ex, nil
		}
	}

	return expense.Expense{}, &NotFoundError{ID: id}
}

// Clear removes every expense and returns how many were removed.
func (s *Store) Clear(ctx context.Context) int {
	count := len(s.Load(ctx))
	s.SaveAll(ctx, []expense.Expense{})
	return count
}

func (s *Store) Close() error {
	return s.backend.Close()
}
