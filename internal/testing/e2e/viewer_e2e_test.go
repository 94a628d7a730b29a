package e2e

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ephyslab/sweepscope/internal/core/model"
	"github.com/ephyslab/sweepscope/internal/core/sweep"
	"github.com/ephyslab/sweepscope/internal/data/loader"
	"github.com/ephyslab/sweepscope/internal/data/synth"
	"github.com/ephyslab/sweepscope/internal/presentation/layout"
	"github.com/ephyslab/sweepscope/internal/presentation/render"
)

// TestViewerPipelineDrawsAFrame runs the full viewing pipeline without a tty:
// synthesize a bundle, load it, sweep it, render the canvas, compose the full
// layout, and replay the frame onto a virtual screen.
func TestViewerPipelineDrawsAFrame(t *testing.T) {
	manifestPath, err := synth.Generate(t.TempDir(), synth.Params{
		Name:            "pipeline-check",
		Channels:        4,
		SamplingRate:    1000,
		DurationSeconds: 0.5,
		Format:          model.FormatInt16,
		SpikeRateHz:     40,
		Categories:      2,
		Seed:            17,
	})
	require.NoError(t, err)

	m, err := model.LoadManifest(manifestPath)
	require.NoError(t, err)

	bundle, err := loader.NewLoader(2).LoadBundle(m)
	require.NoError(t, err)

	engine, err := sweep.NewEngine(sweep.Options{
		SamplingRate:   m.SamplingRate,
		SpeedFactor:    1,
		SweepDuration:  0.05,
		AmplitudeScale: 0.0001,
		FirstChannel:   0,
		LastChannel:    3,
	}, bundle.Samples, bundle.Spikes, bundle.Table)
	require.NoError(t, err)

	param := model.LayoutParam{Width: 80, Height: 24}
	strategy := layout.GetLayoutStrategy(0)
	canvasWidth, canvasHeight := strategy.CanvasRegion(param)

	renderer := render.NewScopeRenderer(canvasWidth, canvasHeight, 1)
	engine.Resize(renderer.Extent())

	t0 := time.Now()
	engine.Tick(t0)
	frame := engine.Tick(t0.Add(100 * time.Millisecond))
	require.Positive(t, frame.SlotsFilled, "a 100ms tick at 1 kHz must fill slots")

	canvas := renderer.Render(frame, true, true)
	require.Len(t, strings.Split(canvas, "\n"), canvasHeight)

	view := &layout.ScopeView{
		RecordingName: m.Name,
		FirstChannel:  0,
		LastChannel:   3,
		TotalChannels: m.TotalChannels,
		SamplingRate:  m.SamplingRate,
		SpeedFactor:   1,
		SweepDuration: 0.05,
		CurrentTime:   frame.CurrentTime,
		Duration:      0.5,
		Laps:          frame.Laps,
		VisibleMarks:  len(frame.Marks),
		AudioChannel:  -1,
		ShowEvents:    true,
		Canvas:        canvas,
	}

	screen := NewScreen(param.Height, param.Width)
	screen.Write(strategy.Render(view, param))

	assert.True(t, screen.Contains("SWEEPSCOPE"), "header missing:\n%s", screen.Text())
	assert.True(t, screen.Contains("pipeline-check"))
	assert.True(t, screen.Contains("▶ live"))
	assert.True(t, strings.HasPrefix(screen.Line(0), "╭"))
	assert.NotEmpty(t, StripANSI(canvas))
}

func TestScreenReplaysCursorAndClears(t *testing.T) {
	screen := NewScreen(3, 10)
	screen.Write("aaaaaaaaa\nbbbbbbbbb\nccccccccc")
	screen.Write("\x1b[1;1H\x1b[K")
	assert.Equal(t, "", screen.Line(0))
	assert.Equal(t, "bbbbbbbbb", screen.Line(1))

	screen.Write("\x1b[2;3Hxy")
	assert.Equal(t, "bbxybbbbb", screen.Line(1))

	screen.Write("\x1b[2J")
	assert.Equal(t, "", screen.Text())
}

func TestStripANSIDropsOnlyColors(t *testing.T) {
	colored := "\x1b[31mch 001\x1b[0m ⣿"
	assert.Equal(t, "ch 001 ⣿", StripANSI(colored))
}
