// Package history keeps a log of the most recent exports.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/oklog/ulid/v2"
)

// Limit is the number of entries kept.
const Limit = 50

type Entry struct {
	ID          string    `json:"id"`
	Format      string    `json:"format"`
	Destination string    `json:"destination"`
	Filename    string    `json:"filename"`
	RecordCount int       `json:"recordCount"`
	Size        int       `json:"size"`
	Location    string    `json:"location"`
	ExportedAt  time.Time `json:"exportedAt"`
}

// HumanSize returns the size in IEC units, e.g. "1.5 KiB".
func (e Entry) HumanSize() string {
	return humanize.IBytes(uint64(e.Size))
}

// Log is the export history stored as JSON at a path, newest first.
type Log struct {
	path string
}

func New(path string) *Log {
	return &Log{path: path}
}

// Entries returns the stored entries, newest first. A missing file is an
// empty history.
func (l *Log) Entries() ([]Entry, error) {
	content, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("failed to read export history %s: %w", l.path, err)
	}

	entries := []Entry{}
	if err = json.Unmarshal(content, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode export history %s: %w", l.path, err)
	}

	return entries, nil
}

// Record assigns an id to entry, stores it in front of the history and drops
// whatever falls beyond Limit.
func (l *Log) Record(entry Entry) (Entry, error) {
	entries, err := l.Entries()
	if err != nil {
		return Entry{}, err
	}

	if entry.ExportedAt.IsZero() {
		entry.ExportedAt = time.Now()
	}
	entry.ExportedAt = entry.ExportedAt.UTC()
	entry.ID = ulid.MustNew(ulid.Timestamp(entry.ExportedAt), ulid.DefaultEntropy()).String()

	entries = append([]Entry{entry}, entries...)
	if len(entries) > Limit {
		entries = entries[:Limit]
	}

	if err = l.save(entries); err != nil {
		return Entry{}, err
	}

	return entry, nil
}

// Clear removes every entry.
func (l *Log) Clear() error {
	return l.save([]Entry{})
}

func (l *Log) save(entries []Entry) error {
	content, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode export history: %w", err)
	}

	if dir := filepath.Dir(l.path); dir != "." {
		if err = os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if err = os.WriteFile(l.path, content, 0o600); err != nil {
		return fmt.Errorf("failed to write export history %s: %w", l.path, err)
	}

	return nil
}
