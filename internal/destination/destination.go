// Package destination delivers serialized exports to where the user wants
// them: a directory, stdout, an email inbox, a spreadsheet or a message broker.
package destination

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/GustavoCaso/expenselog/internal/config"
	"github.com/GustavoCaso/expenselog/internal/expense"
	"github.com/GustavoCaso/expenselog/internal/logger"
)

var (
	ErrUnknownDestination = errors.New("unknown export destination")
	ErrNotConfigured      = errors.New("export destination is not configured")
)

// Content is one serialized export.
type Content struct {
	Filename string
	MIMEType string
	Data     []byte
	// Expenses are the records serialized in Data, for destinations that
	// store rows instead of files.
	Expenses []expense.Expense
}

// Outcome describes a successful delivery.
type Outcome struct {
	Destination string
	Location    string
	Bytes       int
}

type Destination interface {
	Name() string
	// Deliver sends content to target. An empty target selects the
	// destination's configured default.
	Deliver(ctx context.Context, content Content, target string) (Outcome, error)
}

// Registry looks destinations up by name.
type Registry struct {
	destinations map[string]Destination
	// names that exist but were left out because they lack configuration
	unconfigured map[string]error
}

func NewRegistry(destinations ...Destination) *Registry {
	r := &Registry{
		destinations: map[string]Destination{},
		unconfigured: map[string]error{},
	}
	for _, d := range destinations {
		r.Register(d)
	}
	return r
}

func (r *Registry) Register(d Destination) {
	r.destinations[d.Name()] = d
	delete(r.unconfigured, d.Name())
}

// MarkUnconfigured records that name is known but could not be built.
func (r *Registry) MarkUnconfigured(name string, err error) {
	if _, ok := r.destinations[name]; ok {
		return
	}
	r.unconfigured[name] = err
}

func (r *Registry) Get(name string) (Destination, error) {
	if d, ok := r.destinations[name]; ok {
		return d, nil
	}
	if err, ok := r.unconfigured[name]; ok {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownDestination, name, r.Names())
}

// Names lists the usable destinations in alphabetical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.destinations))
	for name := range r.destinations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FromConfig registers the file destination plus every network destination
// that has enough configuration to be built.
func FromConfig(conf *config.Config, stdout io.Writer, logger *logger.Logger) *Registry {
	registry := NewRegistry(NewFile(conf.Export.Dir, stdout))

	if email, err := NewEmail(conf.Mailgun, logger); err != nil {
		registry.MarkUnconfigured(EmailName, err)
	} else {
		registry.Register(email)
	}

	if sheets, err := NewSheets(conf.Sheets); err != nil {
		registry.MarkUnconfigured(SheetsName, err)
	} else {
		registry.Register(sheets)
	}

	if amqp, err := NewAMQP(conf.AMQP, logger); err != nil {
		registry.MarkUnconfigured(AMQPName, err)
	} else {
		registry.Register(amqp)
	}

	logger.Debug("Export destinations ready", "destinations", registry.Names())

	return registry
}
