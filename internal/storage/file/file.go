// Package file stores expenses as a JSON array in a single file.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/GustavoCaso/expenselog/internal/expense"
)

type Storage struct {
	path string
}

func New(path string) *Storage {
	return &Storage{path: path}
}

// Load reads the expense list. A missing file is an empty list.
func (s *Storage) Load(_ context.Context) ([]expense.Expense, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []expense.Expense{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	expenses := []expense.Expense{}
	if err = json.Unmarshal(content, &expenses); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.path, err)
	}

	return expenses, nil
}

// SaveAll writes the list to a temporary file next to the target and renames
// it into place, so readers never see a partial write.
func (s *Storage) SaveAll(_ context.Context, expenses []expense.Expense) error {
	if expenses == nil {
		expenses = []expense.Expense{}
	}

	content, err := json.MarshalIndent(expenses, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode expenses: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp.Name(), err)
	}

	if err = os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}

	return nil
}

func (s *Storage) Close() error {
	return nil
}
