package export

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/GustavoCaso/expenselog/internal/expense"
	"github.com/GustavoCaso/expenselog/internal/report"
	"github.com/GustavoCaso/expenselog/internal/util"
)

type Format string

const (
	FormatCSV    Format = "csv"
	FormatJSON   Format = "json"
	FormatReport Format = "report"
	FormatHTML   Format = "html"
)

var ErrUnknownFormat = errors.New("unknown export format")

var formats = map[Format]struct {
	extension string
	mimeType  string
}{
	FormatCSV:    {extension: "csv", mimeType: "text/csv"},
	FormatJSON:   {extension: "json", mimeType: "application/json"},
	FormatReport: {extension: "txt", mimeType: "text/plain"},
	FormatHTML:   {extension: "html", mimeType: "text/html"},
}

// ParseFormat accepts the format names plus "pdf", which maps to the
// printable HTML report.
func ParseFormat(s string) (Format, error) {
	name := Format(strings.ToLower(strings.TrimSpace(s)))
	if name == "pdf" {
		return FormatHTML, nil
	}
	if _, ok := formats[name]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
	return name, nil
}

// Extension returns the file extension used for the format.
func (f Format) Extension() string {
	return formats[f].extension
}

// Result is a serialized export ready to be delivered.
type Result struct {
	Format   Format
	Filename string
	MIMEType string
	Content  []byte
	// Expenses are the records that matched the options.
	Expenses []expense.Expense
	Summary  Summary
}

// DefaultFilename is the base name used when the options carry none.
func DefaultFilename(now time.Time) string {
	return "expenses-" + util.Today(now)
}

// Export filters expenses with options and serializes the result. An empty
// match still produces a valid document.
func Export(expenses []expense.Expense, options Options, now time.Time) (Result, error) {
	fmtInfo, ok := formats[options.Format]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownFormat, options.Format)
	}

	filename := strings.TrimSpace(options.Filename)
	if filename == "" {
		filename = DefaultFilename(now)
	}
	filename = strings.TrimSuffix(filename, "."+fmtInfo.extension)

	filtered := Filter(expenses, options)

	var buf bytes.Buffer
	var err error

	switch options.Format {
	case FormatCSV:
		err = CSV(&buf, filtered)
	case FormatJSON:
		err = JSON(&buf, filtered, now)
	case FormatReport:
		_, err = buf.WriteString(report.Generate(filtered, now).Text())
	case FormatHTML:
		err = report.HTML(&buf, filename, report.Generate(filtered, now))
	}
	if err != nil {
		return Result{}, err
	}

	return Result{
		Format:   options.Format,
		Filename: filename + "." + fmtInfo.extension,
		MIMEType: fmtInfo.mimeType,
		Content:  buf.Bytes(),
		Expenses: filtered,
		Summary:  Preview(filtered),
	}, nil
}
