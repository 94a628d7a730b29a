package scope

import (
	"github.com/ephyslab/sweepscope/internal/core/activity"
	"github.com/ephyslab/sweepscope/internal/core/model"
	"github.com/ephyslab/sweepscope/internal/core/sweep"
	"github.com/ephyslab/sweepscope/internal/data/loader"
	"github.com/ephyslab/sweepscope/internal/presentation/layout"
)

// buildScopeView assembles the per-frame snapshot the layout strategies
// render: recording metadata, engine counters, the pre-rendered canvas, and
// the activity leaderboard.
func buildScopeView(
	cfg *Config,
	bundle *loader.Bundle,
	frame sweep.Frame,
	state model.InteractionState,
	canvas string,
	leaders []activity.ChannelActivity,
	paused bool,
	speedFactor float64,
	audioChannel int,
) *layout.ScopeView {
	m := bundle.Manifest
	duration := float64(bundle.Samples.SamplesPerChannel()) / m.SamplingRate

	return &layout.ScopeView{
		RecordingName: m.Name,
		FirstChannel:  cfg.FirstChannel,
		LastChannel:   cfg.LastChannel,
		TotalChannels: m.TotalChannels,
		SamplingRate:  m.SamplingRate,

		SpeedFactor:    speedFactor,
		SweepDuration:  cfg.SweepDuration,
		CurrentTime:    frame.CurrentTime,
		Duration:       duration,
		CursorFraction: frame.CursorFraction,
		Laps:           frame.Laps,
		Wraps:          frame.Wraps,

		Paused:          paused,
		ShowEvents:      state.ShowEvents,
		ColorByCategory: state.ColorByCategory,
		VisibleMarks:    len(frame.Marks),
		AudioChannel:    audioChannel,

		Canvas:  canvas,
		Leaders: leaders,
	}
}
