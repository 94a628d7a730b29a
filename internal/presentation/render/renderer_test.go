package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ephyslab/sweepscope/internal/core/sweep"
	"github.com/ephyslab/sweepscope/internal/util"
)

func frameFixture(t *testing.T, renderer *ScopeRenderer) sweep.Frame {
	t.Helper()
	traces, err := sweep.NewTraceSet(0, 3, 100, 0.001)
	require.NoError(t, err)
	traces.Rebuild(renderer.Extent())
	return sweep.Frame{
		CursorFraction: 0.5,
		Traces:         traces,
	}
}

func stripANSI(s string) string {
	var sb strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\033':
			inEscape = true
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func TestRenderDimensions(t *testing.T) {
	renderer := NewScopeRenderer(40, 10, 1)
	out := renderer.Render(frameFixture(t, renderer), false, false)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 10)
	for i, line := range lines {
		assert.Equal(t, 40, len([]rune(stripANSI(line))), "row %d", i)
	}
}

func TestRenderCursorColumn(t *testing.T) {
	renderer := NewScopeRenderer(40, 8, 1)
	frame := frameFixture(t, renderer)
	frame.CursorFraction = 0.5

	out := renderer.Render(frame, false, false)
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		runes := []rune(stripANSI(line))
		assert.Equal(t, '▏', runes[20], "cursor at half sweep")
	}
}

func TestRenderCursorAtFullFractionStaysOnScreen(t *testing.T) {
	renderer := NewScopeRenderer(40, 4, 1)
	frame := frameFixture(t, renderer)
	frame.CursorFraction = 1.0

	out := renderer.Render(frame, false, false)
	first := strings.Split(out, "\n")[0]
	runes := []rune(stripANSI(first))
	assert.Equal(t, '▏', runes[39])
}

func TestRenderMarksOnlyWhenShown(t *testing.T) {
	renderer := NewScopeRenderer(40, 8, 1)
	frame := frameFixture(t, renderer)
	frame.Marks = []sweep.Mark{
		{Channel: 0, Category: 1, Fraction: 0.25, Baseline: 0},
	}

	hidden := renderer.Render(frame, false, false)
	assert.NotContains(t, stripANSI(hidden), "●")

	shown := renderer.Render(frame, true, false)
	assert.Contains(t, stripANSI(shown), "●")
}

func TestRenderMarkPosition(t *testing.T) {
	renderer := NewScopeRenderer(40, 8, 1)
	frame := frameFixture(t, renderer)
	// Baseline 0 is the bottom row; fraction 0.25 is column 10.
	frame.Marks = []sweep.Mark{
		{Channel: 0, Category: 0, Fraction: 0.25, Baseline: 0},
	}

	out := renderer.Render(frame, true, false)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	bottom := []rune(stripANSI(lines[7]))
	assert.Equal(t, '●', bottom[10])
}

func TestRenderMarkOnLastChannelBaseline(t *testing.T) {
	renderer := NewScopeRenderer(40, 8, 1)
	frame := frameFixture(t, renderer)
	// The last channel's baseline equals the extent and must land on the top
	// row, not off the canvas.
	frame.Marks = []sweep.Mark{
		{Channel: 3, Category: 0, Fraction: 0.25, Baseline: frame.Traces.Baseline(3)},
	}

	out := renderer.Render(frame, true, false)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	top := []rune(stripANSI(lines[0]))
	assert.Equal(t, '●', top[10])
}

func TestRenderMarkColors(t *testing.T) {
	renderer := NewScopeRenderer(40, 8, 1)
	frame := frameFixture(t, renderer)
	frame.Marks = []sweep.Mark{
		{Channel: 0, Category: 3, Fraction: 0.25, Baseline: 0},
	}

	uniform := renderer.Render(frame, true, false)
	assert.Contains(t, uniform, util.ColorRed)

	categorized := renderer.Render(frame, true, true)
	assert.Contains(t, categorized, NewCategoryPalette().Color(3))
}

func TestRenderMarkSizeWidensMarks(t *testing.T) {
	renderer := NewScopeRenderer(40, 8, 3)
	frame := frameFixture(t, renderer)
	frame.Marks = []sweep.Mark{
		{Channel: 0, Category: 0, Fraction: 0.25, Baseline: 0},
	}

	out := renderer.Render(frame, true, false)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	bottom := []rune(stripANSI(lines[7]))
	assert.Equal(t, []rune("●●●"), bottom[10:13])
}

func TestResizeChangesExtent(t *testing.T) {
	renderer := NewScopeRenderer(40, 10, 1)
	assert.Equal(t, 40.0, renderer.Extent())

	renderer.Resize(80, 20)
	assert.Equal(t, 80.0, renderer.Extent())

	renderer.Resize(0, 0)
	assert.Equal(t, 4.0, renderer.Extent(), "clamped to one cell")
}

func TestPaletteStableAndDistinct(t *testing.T) {
	p := NewCategoryPalette()
	assert.Equal(t, p.Color(2), p.Color(2))
	assert.NotEqual(t, p.Color(0), p.Color(1))
}
