package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	// import sqlite driver.
	_ "github.com/mattn/go-sqlite3"

	"github.com/GustavoCaso/expenselog/internal/config"
	"github.com/GustavoCaso/expenselog/internal/logger"
)

type pragma struct {
	name  string
	value string
}

type Storage struct {
	db *sql.DB
}

// New opens the database at conf.Path, applies the connection settings and
// brings the schema up to date.
func New(ctx context.Context, conf config.Storage, logger *logger.Logger) (*Storage, error) {
	if dir := filepath.Dir(conf.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", conf.Path)
	if err != nil {
		return nil, err
	}

	// Apply connection pool settings
	if conf.SQLite.MaxOpenConns > 0 {
		db.SetMaxOpenConns(conf.SQLite.MaxOpenConns)
	}

	// Apply SQLite PRAGMA settings
	pragmas := []pragma{
		{name: "journal_mode", value: conf.SQLite.JournalMode},
		{name: "synchronous", value: conf.SQLite.Synchronous},
	}
	if conf.SQLite.BusyTimeout > 0 {
		pragmas = append(pragmas, pragma{name: "busy_timeout", value: strconv.Itoa(conf.SQLite.BusyTimeout)})
	}

	for _, p := range pragmas {
		if p.value == "" {
			continue
		}
		_, err = db.ExecContext(ctx, fmt.Sprintf("PRAGMA %s = %s", p.name, p.value))
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set %s: %w", p.name, err)
		}
	}

	s := &Storage{db: db}

	if err = s.ApplyMigrations(ctx, logger); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}
