// Package memory keeps expenses in process memory. Nothing survives a restart.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/GustavoCaso/expenselog/internal/expense"
)

type Storage struct {
	mu       sync.Mutex
	expenses []expense.Expense
}

func New(expenses ...expense.Expense) *Storage {
	return &Storage{expenses: slices.Clone(expenses)}
}

func (s *Storage) Load(_ context.Context) ([]expense.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.expenses == nil {
		return []expense.Expense{}, nil
	}
	return slices.Clone(s.expenses), nil
}

func (s *Storage) SaveAll(_ context.Context, expenses []expense.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expenses = slices.Clone(expenses)
	return nil
}

func (s *Storage) Close() error {
	return nil
}
