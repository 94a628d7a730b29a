package layout

import (
	"github.com/ephyslab/sweepscope/internal/core/activity"
)

// ScopeView is the per-frame snapshot a layout strategy renders around the
// braille canvas. The orchestrator assembles one per tick; strategies only
// read it.
type ScopeView struct {
	RecordingName string
	FirstChannel  int
	LastChannel   int
	TotalChannels int
	SamplingRate  float64

	SpeedFactor    float64
	SweepDuration  float64
	CurrentTime    float64
	Duration       float64
	CursorFraction float64 // sweep progress through the current lap, [0, 1)
	Laps           uint64
	Wraps          uint64

	Paused          bool
	ShowEvents      bool
	ColorByCategory bool
	VisibleMarks    int
	AudioChannel    int // -1 when audio monitoring is off

	// Canvas is the pre-rendered braille region: exactly the row count and
	// rune width the strategy asked for via CanvasRegion.
	Canvas string

	Leaders []activity.ChannelActivity
}
