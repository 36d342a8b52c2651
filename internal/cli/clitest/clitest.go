// Package clitest builds command environments for tests.
package clitest

import (
	"bytes"
	"context"
	"flag"
	"path/filepath"
	"testing"
	"time"

	"github.com/GustavoCaso/expenselog/internal/cli"
	"github.com/GustavoCaso/expenselog/internal/config"
	"github.com/GustavoCaso/expenselog/internal/destination"
	"github.com/GustavoCaso/expenselog/internal/expense"
	"github.com/GustavoCaso/expenselog/internal/history"
	"github.com/GustavoCaso/expenselog/internal/storage"
	"github.com/GustavoCaso/expenselog/internal/storage/memory"
	"github.com/GustavoCaso/expenselog/internal/testutil"
)

// Now is the fixed clock of test environments.
var Now = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

// NewEnv returns an environment backed by an in-memory store seeded with
// expenses. Command output is collected in the returned buffer.
func NewEnv(t *testing.T, expenses ...expense.Expense) (*cli.Env, *bytes.Buffer) {
	t.Helper()

	dir := t.TempDir()
	conf := &config.Config{
		Storage:  config.Storage{Backend: config.BackendMemory},
		Timezone: "UTC",
		NoColor:  true,
		Export: config.Export{
			Dir:         filepath.Join(dir, "exports"),
			Timeout:     5 * time.Second,
			HistoryPath: filepath.Join(dir, "history.json"),
		},
	}

	out := &bytes.Buffer{}
	log := testutil.TestLogger(t)

	return &cli.Env{
		Conf:         conf,
		Store:        storage.New(memory.New(expenses...), log),
		Destinations: destination.NewRegistry(destination.NewFile(conf.Export.Dir, out)),
		History:      history.New(conf.Export.HistoryPath),
		Logger:       log,
		Out:          out,
		Now:          func() time.Time { return Now },
	}, out
}

// Run parses args into the command flags and runs it against env.
func Run(t *testing.T, cmd cli.Command, env *cli.Env, args ...string) error {
	t.Helper()

	fset := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(fset)
	if err := fset.Parse(args); err != nil {
		t.Fatalf("Failed to parse flags %v: %v", args, err)
	}

	return cmd.Run(context.Background(), env)
}
