package formatter

import (
	"fmt"
	"io"

	"github.com/ephyslab/sweepscope/internal/core/model"
)

// Formatter renders a recording report in one output format.
type Formatter interface {
	Format(report *model.RecordingReport) error
}

// GetFormatter returns the formatter for a --format flag value.
func GetFormatter(format string, w io.Writer) (Formatter, error) {
	switch format {
	case "", "table":
		return NewTableFormatter(w), nil
	case "json":
		return NewJSONFormatter(w), nil
	case "csv":
		return NewCSVFormatter(w), nil
	case "summary":
		return NewSummaryFormatter(w), nil
	default:
		return nil, fmt.Errorf("unknown format %q (table, json, csv, summary)", format)
	}
}
