package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ephyslab/sweepscope/internal/core/activity"
	"github.com/ephyslab/sweepscope/internal/core/model"
)

func viewFixture(canvasWidth, canvasHeight int) *ScopeView {
	row := strings.Repeat("⣿", canvasWidth)
	rows := make([]string, canvasHeight)
	for i := range rows {
		rows[i] = row
	}
	return &ScopeView{
		RecordingName:  "session-042",
		FirstChannel:   200,
		LastChannel:    300,
		TotalChannels:  385,
		SamplingRate:   30000,
		SpeedFactor:    0.02,
		SweepDuration:  0.05,
		CurrentTime:    1.5,
		Duration:       60,
		CursorFraction: 0.5,
		Laps:           3,
		AudioChannel:   -1,
		Canvas:         strings.Join(rows, "\n") + "\n",
	}
}

func TestGetLayoutStrategySelection(t *testing.T) {
	assert.Equal(t, "Full Scope", GetLayoutStrategy(0).GetName())
	assert.Equal(t, "Compact Scope", GetLayoutStrategy(1).GetName())
	assert.Equal(t, "Full Scope", GetLayoutStrategy(99).GetName(), "invalid style falls back to full")
}

func TestFullCanvasRegion(t *testing.T) {
	s := &FullLayoutStrategy{}

	w, h := s.CanvasRegion(model.LayoutParam{Width: 80, Height: 24})
	assert.Equal(t, 76, w)
	assert.Equal(t, 16, h)

	w, h = s.CanvasRegion(model.LayoutParam{Width: 3, Height: 5})
	assert.Equal(t, 1, w, "clamped to one cell")
	assert.Equal(t, 1, h)
}

func TestFullRenderGeometry(t *testing.T) {
	s := &FullLayoutStrategy{}
	param := model.LayoutParam{Width: 80, Height: 24}
	w, h := s.CanvasRegion(param)

	out := s.Render(viewFixture(w, h), param)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, h+fullChromeRows)

	assert.True(t, strings.HasPrefix(lines[0], "╭"))
	assert.True(t, strings.HasSuffix(lines[0], "╮"))
	assert.True(t, strings.HasPrefix(lines[len(lines)-1], "╰"))

	for i, line := range lines {
		assert.Equal(t, 80, getDisplayWidth(line), "row %d", i)
	}
}

func TestFullRenderHeaderAndStatus(t *testing.T) {
	s := &FullLayoutStrategy{}
	param := model.LayoutParam{Width: 100, Height: 24}
	w, h := s.CanvasRegion(param)
	view := viewFixture(w, h)

	out := s.Render(view, param)
	assert.Contains(t, out, "SWEEPSCOPE")
	assert.Contains(t, out, "session-042")
	assert.Contains(t, out, "ch 200-300 of 385")
	assert.Contains(t, out, "30kHz")
	assert.Contains(t, out, "1.500s / 60.000s")
	assert.Contains(t, out, "▶ live")
	assert.Contains(t, out, "lap 3")
	assert.Contains(t, out, "[████░░░░]", "half-swept progress bar")
	assert.NotContains(t, out, "♪", "no audio indicator while audio is off")
}

func TestFullRenderPausedState(t *testing.T) {
	s := &FullLayoutStrategy{}
	param := model.LayoutParam{Width: 100, Height: 24}
	w, h := s.CanvasRegion(param)
	view := viewFixture(w, h)
	view.Paused = true
	view.AudioChannel = 42

	out := s.Render(view, param)
	assert.Contains(t, out, "⏸ paused")
	assert.Contains(t, out, "♪ ch 042")
}

func TestFullRenderActivityLine(t *testing.T) {
	s := &FullLayoutStrategy{}
	param := model.LayoutParam{Width: 100, Height: 24}
	w, h := s.CanvasRegion(param)

	view := viewFixture(w, h)
	out := s.Render(view, param)
	assert.Contains(t, out, "spike overlay off")

	view.ShowEvents = true
	out = s.Render(view, param)
	assert.Contains(t, out, "no spikes in window")

	view.Leaders = []activity.ChannelActivity{
		{Channel: 42, Count: 17},
		{Channel: 13, Count: 9},
	}
	out = s.Render(view, param)
	assert.Contains(t, out, "ch 042 ×17")
	assert.Contains(t, out, "ch 013 ×9")
}

func TestCompactCanvasRegion(t *testing.T) {
	s := &CompactLayoutStrategy{}
	w, h := s.CanvasRegion(model.LayoutParam{Width: 60, Height: 20})
	assert.Equal(t, 60, w)
	assert.Equal(t, 18, h)
}

func TestCompactRenderSingleStatusLine(t *testing.T) {
	s := &CompactLayoutStrategy{}
	param := model.LayoutParam{Width: 120, Height: 20}
	w, h := s.CanvasRegion(param)

	out := s.Render(viewFixture(w, h), param)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, h+1)

	status := lines[0]
	assert.Contains(t, status, "session-042")
	assert.Contains(t, status, "▶")
	assert.Equal(t, 120, getDisplayWidth(status), "padded to terminal width")
}

func TestCompactRenderTruncatesNarrowTerminal(t *testing.T) {
	s := &CompactLayoutStrategy{}
	param := model.LayoutParam{Width: 30, Height: 10}
	w, h := s.CanvasRegion(param)

	out := s.Render(viewFixture(w, h), param)
	status := strings.Split(out, "\n")[0]
	assert.LessOrEqual(t, getDisplayWidth(status), 30)
	assert.Contains(t, status, "…")
}
