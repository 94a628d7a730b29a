package render

import (
	"strings"

	plot "github.com/chriskim06/drawille-go"

	"github.com/ephyslab/sweepscope/internal/core/sweep"
	"github.com/ephyslab/sweepscope/internal/util"
)

// dotRowsPerCell is the braille dot resolution per text row.
const dotRowsPerCell = 4

// ScopeRenderer draws a sweep frame as a braille canvas with spike marks and
// the cursor column composited over the traces.
type ScopeRenderer struct {
	width    int
	height   int
	canvas   plot.Canvas
	palette  *CategoryPalette
	data     [][]float64
	markSize int
}

// NewScopeRenderer creates a renderer for a terminal region of width x height
// cells.
func NewScopeRenderer(width, height, markSize int) *ScopeRenderer {
	if markSize < 1 {
		markSize = 1
	}
	r := &ScopeRenderer{
		palette:  NewCategoryPalette(),
		markSize: markSize,
	}
	r.Resize(width, height)
	return r
}

// Resize rebuilds the canvas for a new region. The engine must be resized to
// the matching extent so amplitudes land on the new dot grid.
func (r *ScopeRenderer) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	r.width = width
	r.height = height
	canvas := plot.NewCanvas(width, height)
	canvas.ShowAxis = false
	r.canvas = canvas
}

// Extent returns the vertical extent in braille dots. sweep.TraceSet
// amplitudes in [0, Extent] span the full canvas height.
func (r *ScopeRenderer) Extent() float64 {
	return float64(r.height * dotRowsPerCell)
}

// Render draws one frame. showEvents toggles the spike overlay;
// colorByCategory switches marks from uniform red to the category palette.
func (r *ScopeRenderer) Render(frame sweep.Frame, showEvents, colorByCategory bool) string {
	traces := frame.Traces
	points := traces.Length()
	if r.canvas.NumDataPoints != points {
		r.canvas.NumDataPoints = points
	}

	if len(r.data) != traces.ChannelCount() {
		r.data = make([][]float64, traces.ChannelCount())
	}
	for i := range r.data {
		trace := traces.Channel(traces.FirstChannel() + i)
		if len(r.data[i]) != len(trace) {
			r.data[i] = make([]float64, len(trace))
		}
		for slot, pt := range trace {
			r.data[i][slot] = pt.Amplitude
		}
	}
	r.canvas.Fill(r.data)

	lines := strings.Split(strings.TrimRight(r.canvas.String(), "\n"), "\n")
	overlays := r.buildOverlays(frame, showEvents, colorByCategory)

	var sb strings.Builder
	for row := 0; row < r.height; row++ {
		var line string
		if row < len(lines) {
			line = lines[row]
		}
		sb.WriteString(r.compositeRow(line, overlays[row]))
		sb.WriteByte('\n')
	}
	return sb.String()
}

type overlay struct {
	glyph rune
	color string
}

// buildOverlays places the cursor column and spike marks on the cell grid.
func (r *ScopeRenderer) buildOverlays(frame sweep.Frame, showEvents, colorByCategory bool) map[int]map[int]overlay {
	overlays := make(map[int]map[int]overlay)
	put := func(row, col int, o overlay) {
		if row < 0 || row >= r.height || col < 0 || col >= r.width {
			return
		}
		if overlays[row] == nil {
			overlays[row] = make(map[int]overlay)
		}
		overlays[row][col] = o
	}

	cursorCol := int(frame.CursorFraction * float64(r.width))
	if cursorCol >= r.width {
		cursorCol = r.width - 1
	}
	for row := 0; row < r.height; row++ {
		put(row, cursorCol, overlay{glyph: '▏', color: util.ColorGray})
	}

	if !showEvents {
		return overlays
	}

	extent := r.Extent()
	for _, mark := range frame.Marks {
		col := int(mark.Fraction * float64(r.width))
		// The last displayed channel's baseline sits exactly at the extent,
		// which truncates one past the top cell; keep its marks on row 0.
		row := r.height - 1 - int(mark.Baseline/extent*float64(r.height))
		if row < 0 {
			row = 0
		}
		color := util.ColorRed
		if colorByCategory {
			color = r.palette.Color(mark.Category)
		}
		for i := 0; i < r.markSize; i++ {
			put(row, col+i, overlay{glyph: '●', color: color})
		}
	}

	return overlays
}

// compositeRow rewrites one canvas line with its overlays, padding short lines
// to the full width.
func (r *ScopeRenderer) compositeRow(line string, cells map[int]overlay) string {
	runes := []rune(line)
	if len(cells) == 0 && len(runes) >= r.width {
		return string(runes[:r.width])
	}

	var sb strings.Builder
	for col := 0; col < r.width; col++ {
		if o, ok := cells[col]; ok {
			sb.WriteString(o.color)
			sb.WriteRune(o.glyph)
			sb.WriteString(util.ColorReset)
			continue
		}
		if col < len(runes) {
			sb.WriteRune(runes[col])
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}
