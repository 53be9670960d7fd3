package output

import (
	"context"
	"fmt"
	"io"
)

// Formatter renders the run summary in a specific format.
type Formatter interface {
	// Format renders the report to the given writer.
	Format(ctx context.Context, report *Report, w io.Writer) error

	// Name returns the format name (text, json).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Verbose adds run metadata to the statistics.
	Verbose bool

	// Quiet prints a one-line summary.
	Quiet bool
}

// NewFormatter returns the formatter for name.
func NewFormatter(name string, opts FormatOptions) (Formatter, error) {
	switch name {
	case "", "text":
		return NewTextFormatter(opts), nil
	case "json":
		return NewJSONFormatter(opts), nil
	default:
		return nil, fmt.Errorf("unknown summary format %q (want text or json)", name)
	}
}
