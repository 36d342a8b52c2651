package destination

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const (
	FileName = "file"
	// Stdout is the file target that writes to standard output.
	Stdout = "-"
)

// File writes exports into a directory.
type File struct {
	dir    string
	stdout io.Writer
}

func NewFile(dir string, stdout io.Writer) *File {
	return &File{dir: dir, stdout: stdout}
}

func (f *File) Name() string {
	return FileName
}

// Deliver writes content into the target directory, or to stdout when the
// target is "-".
func (f *File) Deliver(_ context.Context, content Content, target string) (Outcome, error) {
	if target == Stdout {
		n, err := f.stdout.Write(content.Data)
		if err != nil {
			return Outcome{}, fmt.Errorf("failed to write export to stdout: %w", err)
		}
		return Outcome{Destination: FileName, Location: "stdout", Bytes: n}, nil
	}

	dir := target
	if dir == "" {
		dir = f.dir
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Outcome{}, fmt.Errorf("failed to create export directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, content.Filename)
	if err := os.WriteFile(path, content.Data, 0o600); err != nil {
		return Outcome{}, fmt.Errorf("failed to write export %s: %w", path, err)
	}

	return Outcome{Destination: FileName, Location: path, Bytes: len(content.Data)}, nil
}
