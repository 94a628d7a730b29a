package sweep

import "fmt"

// SweepWindow owns the position of the visible sample block within the
// recording: the window start, the cursor slot within the window, and the
// fractional-sample accumulator carried between frames.
//
// The cursor sweeps 0..length-1 filling one slot per whole sample. At the
// end of a lap the window jumps to the next non-overlapping block; if that
// block would run past the recording, the window wraps back to sample 0.
type SweepWindow struct {
	length            int
	samplesPerChannel int

	windowStart int
	cursor      int
	acc         float64

	laps  uint64
	wraps uint64
}

// NewSweepWindow creates a window of length samples over a recording of
// samplesPerChannel samples per channel.
func NewSweepWindow(length, samplesPerChannel int) (*SweepWindow, error) {
	if length <= 0 {
		return nil, fmt.Errorf("window length must be positive, got %d", length)
	}
	if length > samplesPerChannel {
		return nil, fmt.Errorf("window length %d exceeds recording length %d", length, samplesPerChannel)
	}
	return &SweepWindow{length: length, samplesPerChannel: samplesPerChannel}, nil
}

// Advance consumes a fractional sample count. For every whole sample it calls
// fill with the slot index being written, then moves the cursor. Partial
// samples accumulate and never write. Returns the number of slots filled.
func (w *SweepWindow) Advance(samples float64, fill func(slot int)) int {
	if samples > 0 {
		w.acc += samples
	}
	n := 0
	for w.acc >= 1 {
		w.acc--
		if fill != nil {
			fill(w.cursor)
		}
		w.cursor++
		n++
		if w.cursor == w.length {
			w.lap()
		}
	}
	return n
}

// lap jumps to the next block: cursor back to 0, windowStart forward one
// window length, wrapping to the start of the recording when the next block
// would not fit.
func (w *SweepWindow) lap() {
	w.cursor = 0
	w.windowStart += w.length
	w.laps++
	if w.windowStart+w.length > w.samplesPerChannel {
		w.windowStart = 0
		w.wraps++
	}
}

// ResetCursor restarts the current lap. Used after a resize rebuild so the
// fresh baselines are overwritten from slot 0.
func (w *SweepWindow) ResetCursor() {
	w.cursor = 0
	w.acc = 0
}

// WindowStart returns the first sample index of the current block.
func (w *SweepWindow) WindowStart() int { return w.windowStart }

// Cursor returns the next slot to be written, 0..length-1.
func (w *SweepWindow) Cursor() int { return w.cursor }

// Length returns the window length in samples.
func (w *SweepWindow) Length() int { return w.length }

// Laps returns how many times the cursor has completed a sweep.
func (w *SweepWindow) Laps() uint64 { return w.laps }

// Wraps returns how many times the window has wrapped to sample 0.
func (w *SweepWindow) Wraps() uint64 { return w.wraps }
