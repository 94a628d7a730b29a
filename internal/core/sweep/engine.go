package sweep

import (
	"fmt"
	"math"
	"time"

	"github.com/ephyslab/sweepscope/internal/core/store"
	"github.com/ephyslab/sweepscope/internal/core/timebase"
)

// Options are the engine tunables. Every field maps to a flag or manifest
// value; nothing here is hard-coded.
type Options struct {
	SamplingRate   float64 // recording sample rate, Hz
	SpeedFactor    float64 // recording seconds consumed per wall second
	SweepDuration  float64 // recording seconds shown per sweep
	AmplitudeScale float64 // fraction of the vertical extent per raw unit
	FirstChannel   int     // first displayed channel
	LastChannel    int     // last displayed channel, inclusive
}

// Validate checks the option invariants against a loaded sample store.
func (o Options) Validate(samples *store.SampleStore) error {
	if o.SamplingRate <= 0 {
		return fmt.Errorf("sampling rate must be positive, got %g", o.SamplingRate)
	}
	if o.SpeedFactor <= 0 {
		return fmt.Errorf("speed factor must be positive, got %g", o.SpeedFactor)
	}
	if o.SweepDuration <= 0 {
		return fmt.Errorf("sweep duration must be positive, got %g", o.SweepDuration)
	}
	if o.FirstChannel < 0 || o.LastChannel < o.FirstChannel {
		return fmt.Errorf("invalid displayed channel range [%d, %d]", o.FirstChannel, o.LastChannel)
	}
	if o.LastChannel >= samples.TotalChannels() {
		return fmt.Errorf("last displayed channel %d outside recording with %d channels",
			o.LastChannel, samples.TotalChannels())
	}
	return nil
}

// WindowLength returns the sweep length in whole samples.
func (o Options) WindowLength() int {
	return int(math.Round(o.SweepDuration * o.SamplingRate))
}

// Frame is the per-tick snapshot the presentation layer consumes. Traces is a
// borrowed view into the engine's buffers (single writer, read between
// ticks); Marks is reused across frames and valid until the next Tick.
type Frame struct {
	CursorFraction float64
	WindowStart    int
	StartTime      float64
	CurrentTime    float64
	Traces         *TraceSet
	Marks          []Mark
	Laps           uint64
	Wraps          uint64
	SlotsFilled    int
	TotalConsumed  uint64
}

// Engine is the sweep controller: it owns the clock, window, trace set, and
// event aligner, and every mutation funnels through Tick and Resize on the
// orchestrator's single goroutine.
type Engine struct {
	opts    Options
	samples *store.SampleStore
	table   *timebase.SampleTimeTable

	clock   *SweepClock
	window  *SweepWindow
	traces  *TraceSet
	aligner *EventAligner // nil when overlays are disabled

	marks    []Mark
	consumed uint64
}

// NewEngine builds an engine over fully loaded stores. spikes may be nil when
// overlays are disabled; table must always be present (synthetic if the
// bundle carries none).
func NewEngine(opts Options, samples *store.SampleStore, spikes *store.SpikeStore, table *timebase.SampleTimeTable) (*Engine, error) {
	if err := opts.Validate(samples); err != nil {
		return nil, err
	}

	length := opts.WindowLength()
	if length < 1 {
		return nil, fmt.Errorf("sweep of %gs at %g Hz spans no samples", opts.SweepDuration, opts.SamplingRate)
	}

	window, err := NewSweepWindow(length, samples.SamplesPerChannel())
	if err != nil {
		return nil, err
	}

	traces, err := NewTraceSet(opts.FirstChannel, opts.LastChannel, length, opts.AmplitudeScale)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		opts:    opts,
		samples: samples,
		table:   table,
		clock:   NewSweepClock(opts.SamplingRate, opts.SpeedFactor),
		window:  window,
		traces:  traces,
	}
	if spikes != nil {
		e.aligner = NewEventAligner(spikes, table, opts.SweepDuration)
	}
	return e, nil
}

// Resize rebuilds every channel buffer for a new vertical extent and restarts
// the current lap so the fresh baselines are swept over from slot 0. Called
// synchronously from the run loop, so a tick never observes a half-rebuilt
// set.
func (e *Engine) Resize(extent float64) {
	e.traces.Rebuild(extent)
	e.window.ResetCursor()
}

// Tick advances the sweep to now and returns the frame to render. Partial
// samples accumulate in the window; each whole sample fills exactly one slot
// across all displayed channels.
func (e *Engine) Tick(now time.Time) Frame {
	advance := e.clock.Advance(now)
	filled := e.window.Advance(advance, e.fillSlot)
	e.consumed += uint64(filled)
	return e.frame(filled)
}

func (e *Engine) fillSlot(slot int) {
	t := e.window.WindowStart() + slot
	for c := e.opts.FirstChannel; c <= e.opts.LastChannel; c++ {
		e.traces.SetSlot(c, slot, float64(e.samples.At(t, c)))
	}
}

func (e *Engine) frame(filled int) Frame {
	windowStart := e.window.WindowStart()
	cursor := e.window.Cursor()

	if e.aligner != nil {
		e.marks = e.aligner.Visible(windowStart, cursor, e.traces, e.marks)
	} else {
		e.marks = e.marks[:0]
	}

	return Frame{
		CursorFraction: float64(cursor) / float64(e.window.Length()),
		WindowStart:    windowStart,
		StartTime:      e.table.TimeAt(windowStart),
		CurrentTime:    e.table.TimeAt(windowStart + cursor),
		Traces:         e.traces,
		Marks:          e.marks,
		Laps:           e.window.Laps(),
		Wraps:          e.window.Wraps(),
		SlotsFilled:    filled,
		TotalConsumed:  e.consumed,
	}
}

// SetPaused freezes the clock. Window and traces stay exactly as drawn.
func (e *Engine) SetPaused(paused bool) { e.clock.SetPaused(paused) }

// Paused reports whether the engine is frozen.
func (e *Engine) Paused() bool { return e.clock.Paused() }

// SpeedFactor returns the current playback speed factor.
func (e *Engine) SpeedFactor() float64 { return e.clock.SpeedFactor() }

// SetSpeedFactor changes playback speed from the next tick.
func (e *Engine) SetSpeedFactor(f float64) { e.clock.SetSpeedFactor(f) }

// NudgeAmplitude multiplies the amplitude scale and rebuilds at the current
// extent. The drawn traces reset to baselines and are re-swept, same as a
// resize.
func (e *Engine) NudgeAmplitude(factor float64) {
	if factor <= 0 {
		return
	}
	e.traces.SetScaleFraction(e.traces.ScaleFraction() * factor)
	e.Resize(e.traces.Extent())
}

// Aligner exposes the event aligner, nil when overlays are disabled.
func (e *Engine) Aligner() *EventAligner { return e.aligner }

// Traces exposes the trace set for renderers that need geometry between ticks.
func (e *Engine) Traces() *TraceSet { return e.traces }

// WindowLength returns the sweep length in samples.
func (e *Engine) WindowLength() int { return e.window.Length() }
