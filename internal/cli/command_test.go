package cli

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"testing"
	"time"
)

// mockCommand implements the Command interface for testing.
type mockCommand struct {
	description string
	runError    error
}

func (c mockCommand) SetFlags(fset *flag.FlagSet) {
	fset.String("test", "", "test flag")
}

func (c mockCommand) Description() string {
	return c.description
}

func (c mockCommand) Run(_ context.Context, env *Env) error {
	env.Printf("ran %s", c.description)
	return c.runError
}

func TestCommandInterface(t *testing.T) {
	var out bytes.Buffer
	env := &Env{Out: &out}

	// Test successful command
	var cmd Command = mockCommand{
		description: "Test command",
		runError:    nil,
	}

	// Test SetFlags
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(fs)
	if fs.Lookup("test") == nil {
		t.Error("SetFlags() did not register the test flag")
	}

	// Test Description
	desc := cmd.Description()
	if desc != "Test command" {
		t.Errorf("Description() = %v, want %v", desc, "Test command")
	}

	// Test Run
	err := cmd.Run(context.Background(), env)
	if err != nil {
		t.Errorf("Run() error = %v, want nil", err)
	}
	if out.String() != "ran Test command\n" {
		t.Errorf("Run() output = %q", out.String())
	}

	// Test command with error
	cmdWithError := mockCommand{
		description: "Error command",
		runError:    fmt.Errorf("test error"),
	}

	err = cmdWithError.Run(context.Background(), env)
	if err == nil {
		t.Fatal("Run() expected error, got nil")
	}
	if err.Error() != "test error" {
		t.Errorf("Run() error = %v, want %v", err, "test error")
	}
}

func TestNowIn(t *testing.T) {
	loc := time.FixedZone("TEST", 3*60*60)
	now := NowIn(loc)()

	if now.Location() != loc {
		t.Errorf("NowIn() location = %v, want %v", now.Location(), loc)
	}
}
