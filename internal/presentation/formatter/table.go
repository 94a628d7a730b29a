package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/ephyslab/sweepscope/internal/core/model"
	"github.com/ephyslab/sweepscope/internal/util"
)

type TableFormatter struct {
	w       io.Writer
	headers []string
}

func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{
		w: w,
		headers: []string{
			"Channel", "Min", "Max", "Mean", "Std", "RMS", "Spikes",
		},
	}
}

func (f *TableFormatter) Format(report *model.RecordingReport) error {
	fmt.Fprintf(f.w, "%s  %s  %d ch @ %s  %s  %s\n",
		report.Name,
		report.Format,
		report.TotalChannels,
		util.FormatHertz(report.SamplingRate),
		util.FormatSeconds(report.DurationSeconds),
		util.FormatBytes(report.SampleBytes))

	rows := make([][]string, 0, len(report.Channels))
	var totalSpikes int
	for _, ch := range report.Channels {
		rows = append(rows, []string{
			util.ChannelLabel(ch.Channel),
			formatValue(ch.Min),
			formatValue(ch.Max),
			formatValue(ch.Mean),
			formatValue(ch.Std),
			formatValue(ch.RMS),
			formatNumber(ch.SpikeCount),
		})
		totalSpikes += ch.SpikeCount
	}
	totalRow := []string{
		"Total", "", "", "", "", "", formatNumber(report.SpikeCount),
	}

	widths := f.calculateColumnWidths(rows, totalRow)

	f.printBorder(widths, "top")
	f.printRow(f.headers, widths)
	f.printBorder(widths, "middle")
	for _, row := range rows {
		f.printRow(row, widths)
	}
	f.printBorder(widths, "middle")
	f.printRow(totalRow, widths)
	f.printBorder(widths, "bottom")

	// Listed channels can be a sorted/limited subset; say so when their spike
	// counts do not add up to the recording total.
	if totalSpikes != report.SpikeCount && len(report.Channels) > 0 {
		fmt.Fprintf(f.w, "listed channels carry %s of %s spikes\n",
			formatNumber(totalSpikes), formatNumber(report.SpikeCount))
	}

	return nil
}

// calculateColumnWidths determines optimal width for each column based on content
func (f *TableFormatter) calculateColumnWidths(rows [][]string, totalRow []string) []int {
	widths := make([]int, len(f.headers))
	for i, header := range f.headers {
		widths[i] = len(header)
	}

	check := func(row []string) {
		for i, value := range row {
			if len(value) > widths[i] {
				widths[i] = len(value)
			}
		}
	}
	for _, row := range rows {
		check(row)
	}
	check(totalRow)

	return widths
}

// printBorder prints table borders (top, middle, bottom)
func (f *TableFormatter) printBorder(widths []int, borderType string) {
	var left, middle, right, separator string

	switch borderType {
	case "top":
		left, middle, right, separator = "┌", "┬", "┐", "─"
	case "middle":
		left, middle, right, separator = "├", "┼", "┤", "─"
	case "bottom":
		left, middle, right, separator = "└", "┴", "┘", "─"
	}

	fmt.Fprint(f.w, left)
	for i, width := range widths {
		fmt.Fprint(f.w, strings.Repeat(separator, width+2)) // +2 for padding spaces
		if i < len(widths)-1 {
			fmt.Fprint(f.w, middle)
		}
	}
	fmt.Fprintln(f.w, right)
}

// printRow prints a data row, channel column left-aligned, numerics right-aligned
func (f *TableFormatter) printRow(values []string, widths []int) {
	fmt.Fprint(f.w, "│")
	for i, value := range values {
		if i == 0 {
			fmt.Fprintf(f.w, " %-*s │", widths[i], value)
		} else {
			fmt.Fprintf(f.w, " %*s │", widths[i], value)
		}
	}
	fmt.Fprintln(f.w)
}

func formatNumber(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var result []byte
	for i, digit := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, digit)
	}

	return string(result)
}

func formatValue(v float64) string {
	return fmt.Sprintf("%.3f", v)
}
