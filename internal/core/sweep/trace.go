package sweep

import "fmt"

// TracePoint is one drawn sample: its horizontal position along the sweep
// axis as a 0..1 fraction, and its amplitude in display units (baseline plus
// scaled raw value).
type TracePoint struct {
	PositionFraction float64
	Amplitude        float64
}

// TraceSet holds one fixed-length trace per displayed channel. Slots are
// overwritten one at a time as the cursor passes; slots not yet visited this
// lap intentionally keep the previous lap's amplitudes, which is what makes
// the sweep visibly overwrite instead of blanking.
type TraceSet struct {
	firstChannel int
	lastChannel  int
	length       int

	// scaleFraction is the configured amplitude scale as a fraction of the
	// vertical extent per raw unit; the effective scale is scaleFraction *
	// extent and is recomputed on every rebuild.
	scaleFraction float64
	extent        float64

	traces [][]TracePoint
}

// NewTraceSet creates traces for the displayed channel range
// [firstChannel, lastChannel]. Call Rebuild before the first frame to set the
// display extent and baselines.
func NewTraceSet(firstChannel, lastChannel, length int, scaleFraction float64) (*TraceSet, error) {
	if firstChannel < 0 || lastChannel < firstChannel {
		return nil, fmt.Errorf("invalid displayed channel range [%d, %d]", firstChannel, lastChannel)
	}
	if length <= 0 {
		return nil, fmt.Errorf("trace length must be positive, got %d", length)
	}
	t := &TraceSet{
		firstChannel:  firstChannel,
		lastChannel:   lastChannel,
		length:        length,
		scaleFraction: scaleFraction,
	}
	t.traces = make([][]TracePoint, t.ChannelCount())
	for i := range t.traces {
		t.traces[i] = make([]TracePoint, length)
	}
	return t, nil
}

// Rebuild reinitializes every channel's buffer for a new vertical extent:
// fresh baselines, position fractions, and amplitude scale. Stale geometry is
// never reinterpolated — the whole set is recomputed from scratch, so calling
// Rebuild twice with the same extent is exactly idempotent.
func (t *TraceSet) Rebuild(extent float64) {
	t.extent = extent
	for i := range t.traces {
		baseline := t.baselineAt(i)
		for slot := range t.traces[i] {
			t.traces[i][slot] = TracePoint{
				PositionFraction: float64(slot) / float64(t.length),
				Amplitude:        baseline,
			}
		}
	}
}

// SetSlot writes one sample into a channel's trace:
// baseline(channel) + raw * amplitudeScale.
func (t *TraceSet) SetSlot(channel, slot int, raw float64) {
	t.traces[channel-t.firstChannel][slot].Amplitude = t.Baseline(channel) + raw*t.amplitudeScale()
}

// Baseline returns a channel's resting amplitude: displayed channels are
// spaced evenly across the extent, the first at 0, the last at the extent. A
// single displayed channel sits centered.
func (t *TraceSet) Baseline(channel int) float64 {
	return t.baselineAt(channel - t.firstChannel)
}

func (t *TraceSet) baselineAt(index int) float64 {
	span := t.lastChannel - t.firstChannel
	if span == 0 {
		return t.extent / 2
	}
	return float64(index) / float64(span) * t.extent
}

func (t *TraceSet) amplitudeScale() float64 {
	return t.scaleFraction * t.extent
}

// Channel returns the trace for one displayed channel. The slice is borrowed,
// not copied: there is exactly one writer (the tick loop), and the renderer
// reads it between ticks.
func (t *TraceSet) Channel(channel int) []TracePoint {
	return t.traces[channel-t.firstChannel]
}

// Contains reports whether a channel is in the displayed range. The event
// aligner uses this to filter corrupt spikes instead of indexing blindly.
func (t *TraceSet) Contains(channel int) bool {
	return channel >= t.firstChannel && channel <= t.lastChannel
}

// FirstChannel returns the first displayed channel.
func (t *TraceSet) FirstChannel() int { return t.firstChannel }

// LastChannel returns the last displayed channel.
func (t *TraceSet) LastChannel() int { return t.lastChannel }

// ChannelCount returns how many channels are displayed.
func (t *TraceSet) ChannelCount() int { return t.lastChannel - t.firstChannel + 1 }

// Length returns the slot count per channel.
func (t *TraceSet) Length() int { return t.length }

// Extent returns the vertical extent the set was last rebuilt for.
func (t *TraceSet) Extent() float64 { return t.extent }

// SetScaleFraction changes the amplitude scale. The caller must Rebuild for
// it to take effect, which also resets the drawn traces to baselines.
func (t *TraceSet) SetScaleFraction(f float64) {
	if f > 0 {
		t.scaleFraction = f
	}
}

// ScaleFraction returns the configured amplitude scale fraction.
func (t *TraceSet) ScaleFraction() float64 { return t.scaleFraction }
