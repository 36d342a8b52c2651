package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/GustavoCaso/expenselog/internal/config"
	"github.com/GustavoCaso/expenselog/internal/destination"
	"github.com/GustavoCaso/expenselog/internal/history"
	"github.com/GustavoCaso/expenselog/internal/logger"
	"github.com/GustavoCaso/expenselog/internal/storage"
)

type Command interface {
	SetFlags(fset *flag.FlagSet)
	Description() string
	Run(ctx context.Context, env *Env) error
}

// Env holds what a command needs to run.
type Env struct {
	Conf         *config.Config
	Store        *storage.Store
	Destinations *destination.Registry
	History      *history.Log
	Logger       *logger.Logger
	Out          io.Writer
	// Now returns the current time in the configured time zone.
	Now func() time.Time
}

// Printf writes a line for the user to Out.
func (e *Env) Printf(format string, args ...any) {
	fmt.Fprintf(e.Out, format, args...)
	if !strings.HasSuffix(format, "\n") {
		fmt.Fprintln(e.Out)
	}
}

// NowIn returns a clock reporting the current time in loc.
func NowIn(loc *time.Location) func() time.Time {
	return func() time.Time {
		return time.Now().In(loc)
	}
}
