package layout

import (
	"fmt"

	"github.com/ephyslab/sweepscope/internal/core/model"
	"github.com/ephyslab/sweepscope/internal/util"
)

// CompactLayoutStrategy implements the compact scope layout: one status line
// and the canvas, no frame. Made for narrow terminals and tmux panes.
type CompactLayoutStrategy struct {
	BaseStrategy
}

func (s *CompactLayoutStrategy) GetName() string {
	return "Compact Scope"
}

func (s *CompactLayoutStrategy) CanvasRegion(param model.LayoutParam) (int, int) {
	width := param.Width
	height := param.Height - 2
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return width, height
}

func (s *CompactLayoutStrategy) Render(view *ScopeView, param model.LayoutParam) string {
	state := "▶"
	if view.Paused {
		state = "⏸"
	}

	line := fmt.Sprintf("%s | %s | %s | %s | %gx | %s",
		view.RecordingName,
		s.FormatChannelRange(view),
		util.FormatHertz(view.SamplingRate),
		s.FormatPosition(view),
		view.SpeedFactor,
		state)
	if view.AudioChannel >= 0 {
		line += fmt.Sprintf(" | ♪ %s", util.ChannelLabel(view.AudioChannel))
	}

	sizer := s.GetSizer()
	line = sizer.TruncateString(line, param.Width)
	line = sizer.PadString(line, param.Width, true)

	return line + "\n" + view.Canvas
}
