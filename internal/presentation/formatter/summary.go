package formatter

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ephyslab/sweepscope/internal/core/model"
	"github.com/ephyslab/sweepscope/internal/util"
)

// SummaryFormatter is responsible for formatting the human-readable overview
// of a recording report.
type SummaryFormatter struct {
	w io.Writer
}

// NewSummaryFormatter creates a new instance of SummaryFormatter.
func NewSummaryFormatter(w io.Writer) *SummaryFormatter {
	return &SummaryFormatter{w: w}
}

// Format writes the summary report.
func (f *SummaryFormatter) Format(report *model.RecordingReport) error {
	fmt.Fprintln(f.w, strings.Repeat("=", 60))
	fmt.Fprintln(f.w, "Sweepscope Recording Report")
	fmt.Fprintln(f.w, strings.Repeat("=", 60))
	fmt.Fprintln(f.w)

	fmt.Fprintf(f.w, "Recording: %s\n", report.Name)
	if report.ID != "" {
		fmt.Fprintf(f.w, "ID:        %s\n", report.ID)
	}
	fmt.Fprintf(f.w, "Source:    %s (%s)\n", report.SampleFile, report.Format)
	fmt.Fprintln(f.w)

	fmt.Fprintln(f.w, "Signal:")
	fmt.Fprintf(f.w, "  Channels:       %d\n", report.TotalChannels)
	fmt.Fprintf(f.w, "  Sampling Rate:  %s\n", util.FormatHertz(report.SamplingRate))
	fmt.Fprintf(f.w, "  Samples/ch:     %s\n", formatNumber(report.SamplesPerChannel))
	fmt.Fprintf(f.w, "  Duration:       %s\n", util.FormatSeconds(report.DurationSeconds))
	fmt.Fprintf(f.w, "  Size:           %s\n", util.FormatBytes(report.SampleBytes))
	fmt.Fprintln(f.w)

	if report.SpikeCount > 0 {
		fmt.Fprintln(f.w, "Spikes:")
		fmt.Fprintf(f.w, "  Total:          %s\n", formatNumber(report.SpikeCount))
		for _, bucket := range report.Categories {
			fmt.Fprintf(f.w, "  %-15s %s\n", util.CategoryLabel(bucket.Category)+":", formatNumber(bucket.Count))
		}
		fmt.Fprintln(f.w)

		f.mostActive(report)
	} else {
		fmt.Fprintln(f.w, "Spikes: none recorded")
		fmt.Fprintln(f.w)
	}

	fmt.Fprintln(f.w, strings.Repeat("=", 60))

	return nil
}

// mostActive lists the busiest channels, most spikes first.
func (f *SummaryFormatter) mostActive(report *model.RecordingReport) {
	ranked := make([]model.ChannelStats, len(report.Channels))
	copy(ranked, report.Channels)
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].SpikeCount > ranked[j].SpikeCount
	})

	limit := 5
	if len(ranked) < limit {
		limit = len(ranked)
	}
	if limit == 0 || ranked[0].SpikeCount == 0 {
		return
	}

	fmt.Fprintln(f.w, "Most Active Channels:")
	for _, ch := range ranked[:limit] {
		if ch.SpikeCount == 0 {
			break
		}
		fmt.Fprintf(f.w, "  %s  %s spikes  (std %s)\n",
			util.ChannelLabel(ch.Channel), formatNumber(ch.SpikeCount), formatValue(ch.Std))
	}
	fmt.Fprintln(f.w)
}
