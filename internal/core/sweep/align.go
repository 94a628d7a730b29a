package sweep

import (
	"github.com/ephyslab/sweepscope/internal/core/store"
	"github.com/ephyslab/sweepscope/internal/core/timebase"
)

// Mark is one spike eligible to render this frame: its horizontal sweep
// fraction, the vertical baseline of its source channel, and its category for
// the palette.
type Mark struct {
	Channel  int
	Category int
	Time     float64
	Fraction float64
	Baseline float64
}

// EventAligner projects the spike arrays onto the sweeping window. The
// visible set is recomputed from scratch every frame; spike counts are small
// next to the per-frame trace work, so a full rescan stays cheaper than
// maintaining an index. If that ever changes, sort the spikes by time and
// advance a two-pointer window keyed to the overwrite horizon instead.
type EventAligner struct {
	spikes        *store.SpikeStore
	table         *timebase.SampleTimeTable
	sweepDuration float64
}

// NewEventAligner creates an aligner over loaded spike arrays.
func NewEventAligner(spikes *store.SpikeStore, table *timebase.SampleTimeTable, sweepDuration float64) *EventAligner {
	return &EventAligner{
		spikes:        spikes,
		table:         table,
		sweepDuration: sweepDuration,
	}
}

// Visible appends this frame's eligible marks to out and returns it. A spike
// at time e renders iff its channel is displayed, e <= currentTime (the
// cursor has swept over it), and e >= currentTime - sweepDuration (it has not
// been overwritten yet). The horizontal fraction is measured from the window
// start time, plus one full sweep when the window wrapped past the spike.
func (a *EventAligner) Visible(windowStart, cursor int, traces *TraceSet, out []Mark) []Mark {
	out = out[:0]
	if a.spikes.Len() == 0 {
		return out
	}

	currentTime := a.table.TimeAt(windowStart + cursor)
	startTime := a.table.TimeAt(windowStart)
	horizon := currentTime - a.sweepDuration

	for i := 0; i < a.spikes.Len(); i++ {
		ch := a.spikes.Channel(i)
		if !traces.Contains(ch) {
			continue
		}
		e := a.spikes.Time(i)
		if e > currentTime || e < horizon {
			continue
		}
		fraction := (e - startTime) / a.sweepDuration
		if fraction < 0 {
			fraction += 1.0
		}
		out = append(out, Mark{
			Channel:  ch,
			Category: a.spikes.Category(i),
			Time:     e,
			Fraction: fraction,
			Baseline: traces.Baseline(ch),
		})
	}
	return out
}

// CountBetween counts displayed-channel spikes with time in (from, to],
// calling observe for each. The activity tracker uses this to feed its
// sliding sketch with only the spikes newly swept this tick.
func (a *EventAligner) CountBetween(from, to float64, traces *TraceSet, observe func(channel int)) int {
	n := 0
	for i := 0; i < a.spikes.Len(); i++ {
		ch := a.spikes.Channel(i)
		if !traces.Contains(ch) {
			continue
		}
		e := a.spikes.Time(i)
		if e > from && e <= to {
			observe(ch)
			n++
		}
	}
	return n
}

// SweepDuration returns the visibility window in seconds.
func (a *EventAligner) SweepDuration() float64 { return a.sweepDuration }
