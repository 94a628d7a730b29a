package formatter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/ephyslab/sweepscope/internal/core/model"
)

type CSVFormatter struct {
	w io.Writer
}

func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{w: w}
}

func (f *CSVFormatter) Format(report *model.RecordingReport) error {
	w := csv.NewWriter(f.w)
	defer w.Flush()

	headers := []string{
		"channel", "min", "max", "mean", "std", "rms", "spike_count",
	}
	if err := w.Write(headers); err != nil {
		return err
	}

	for _, ch := range report.Channels {
		record := []string{
			strconv.Itoa(ch.Channel),
			fmt.Sprintf("%g", ch.Min),
			fmt.Sprintf("%g", ch.Max),
			fmt.Sprintf("%g", ch.Mean),
			fmt.Sprintf("%g", ch.Std),
			fmt.Sprintf("%g", ch.RMS),
			strconv.Itoa(ch.SpikeCount),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
