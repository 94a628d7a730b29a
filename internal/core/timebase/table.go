package timebase

import "fmt"

// SampleTimeTable maps a sample index to an absolute recording time in
// seconds. It is monotonically non-decreasing and exactly samplesPerChannel
// long; the sweep window and the event aligner share it read-only for the
// life of a session.
type SampleTimeTable struct {
	times []float32
}

// New validates and wraps a loaded time table.
func New(times []float32, samplesPerChannel int) (*SampleTimeTable, error) {
	if len(times) != samplesPerChannel {
		return nil, fmt.Errorf("time table has %d entries, want %d (one per sample)", len(times), samplesPerChannel)
	}
	for i := 1; i < len(times); i++ {
		if times[i] < times[i-1] {
			return nil, fmt.Errorf("time table not monotonic at index %d: %g < %g", i, times[i], times[i-1])
		}
	}
	return &SampleTimeTable{times: times}, nil
}

// Synthetic builds a linear table for a recording without an on-disk one:
// sample i maps to i/samplingRate seconds.
func Synthetic(samplesPerChannel int, samplingRate float64) *SampleTimeTable {
	times := make([]float32, samplesPerChannel)
	for i := range times {
		times[i] = float32(float64(i) / samplingRate)
	}
	return &SampleTimeTable{times: times}
}

// TimeAt returns the absolute time of a sample index, clamping out-of-range
// indexes to the table's ends.
func (t *SampleTimeTable) TimeAt(sample int) float64 {
	if len(t.times) == 0 {
		return 0
	}
	if sample < 0 {
		sample = 0
	}
	if sample >= len(t.times) {
		sample = len(t.times) - 1
	}
	return float64(t.times[sample])
}

// Len returns the number of entries, which equals samplesPerChannel.
func (t *SampleTimeTable) Len() int { return len(t.times) }

// Duration returns the recording time span covered by the table.
func (t *SampleTimeTable) Duration() float64 {
	if len(t.times) == 0 {
		return 0
	}
	return float64(t.times[len(t.times)-1] - t.times[0])
}
