package destination

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileDeliver(t *testing.T) {
	defaultDir := filepath.Join(t.TempDir(), "exports")
	otherDir := filepath.Join(t.TempDir(), "other")
	content := Content{Filename: "expenses-2024-03-01.csv", MIMEType: "text/csv", Data: []byte("Date,Category")}

	tests := []struct {
		name     string
		target   string
		wantPath string
	}{
		{
			name:     "default directory",
			target:   "",
			wantPath: filepath.Join(defaultDir, content.Filename),
		},
		{
			name:     "target directory",
			target:   otherDir,
			wantPath: filepath.Join(otherDir, content.Filename),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout bytes.Buffer
			outcome, err := NewFile(defaultDir, &stdout).Deliver(context.Background(), content, tt.target)
			if err != nil {
				t.Fatalf("Deliver() error = %v", err)
			}

			if outcome.Location != tt.wantPath {
				t.Errorf("Location = %s, want %s", outcome.Location, tt.wantPath)
			}
			if outcome.Bytes != len(content.Data) {
				t.Errorf("Bytes = %d, want %d", outcome.Bytes, len(content.Data))
			}

			written, err := os.ReadFile(tt.wantPath)
			if err != nil {
				t.Fatalf("Failed to read export: %v", err)
			}
			if !bytes.Equal(written, content.Data) {
				t.Errorf("File content = %q, want %q", written, content.Data)
			}
			if stdout.Len() != 0 {
				t.Errorf("Expected nothing on stdout, got %q", stdout.String())
			}
		})
	}
}

func TestFileDeliverStdout(t *testing.T) {
	var stdout bytes.Buffer
	content := Content{Filename: "x.json", Data: []byte(`{"totalRecords": 0}`)}

	outcome, err := NewFile(t.TempDir(), &stdout).Deliver(context.Background(), content, Stdout)
	if err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}

	if stdout.String() != string(content.Data) {
		t.Errorf("stdout = %q, want %q", stdout.String(), content.Data)
	}
	if outcome.Location != "stdout" {
		t.Errorf("Location = %s, want stdout", outcome.Location)
	}
}
