package layout

import (
	"fmt"
	"strings"

	"github.com/ephyslab/sweepscope/internal/core/model"
	"github.com/ephyslab/sweepscope/internal/util"
)

// fullChromeRows is what the frame border, header, status and activity rows
// cost vertically. One extra terminal row below the frame is left free for
// transient status messages.
const fullChromeRows = 7

// FullLayoutStrategy implements the full scope layout: a bordered frame with
// a header, the sweep canvas, a status row and the spike activity leaderboard.
type FullLayoutStrategy struct {
	BaseStrategy
}

func (s *FullLayoutStrategy) GetName() string {
	return "Full Scope"
}

func (s *FullLayoutStrategy) CanvasRegion(param model.LayoutParam) (int, int) {
	width := param.Width - 4
	height := param.Height - fullChromeRows - 1
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return width, height
}

func (s *FullLayoutStrategy) Render(view *ScopeView, param model.LayoutParam) string {
	maxWidth := param.Width

	var sb strings.Builder
	writeln := func(line string) {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	writeln(s.TopBorder(maxWidth))
	writeln(s.header(view, maxWidth))
	writeln(s.Separator(maxWidth))
	s.canvasRows(&sb, view, maxWidth)
	writeln(s.Separator(maxWidth))
	writeln(s.statusLine(view, maxWidth))
	writeln(s.activityLine(view, maxWidth))
	writeln(s.BottomBorder(maxWidth))

	return sb.String()
}

func (s *FullLayoutStrategy) header(view *ScopeView, maxWidth int) string {
	leftCol := fmt.Sprintf("⚡ SWEEPSCOPE  │  %s", view.RecordingName)
	rightCol := fmt.Sprintf("%s  │  %s", s.FormatChannelRange(view), util.FormatHertz(view.SamplingRate))
	return s.TwoColumnLine(leftCol, rightCol, maxWidth)
}

// canvasRows wraps each pre-rendered canvas row into the frame. The canvas
// carries color sequences, so padding is computed from the region width the
// strategy itself asked for rather than the row text.
func (s *FullLayoutStrategy) canvasRows(sb *strings.Builder, view *ScopeView, maxWidth int) {
	for _, row := range strings.Split(strings.TrimRight(view.Canvas, "\n"), "\n") {
		sb.WriteString("│ ")
		sb.WriteString(row)
		sb.WriteString(" │\n")
	}
}

func (s *FullLayoutStrategy) statusLine(view *ScopeView, maxWidth int) string {
	state := "▶ live"
	if view.Paused {
		state = "⏸ paused"
	}

	segments := []string{
		fmt.Sprintf("⏱ %s", s.FormatPosition(view)),
		util.CreateProgressBar(view.CursorFraction*100, 20),
		fmt.Sprintf("%gx", view.SpeedFactor),
		fmt.Sprintf("sweep %s", util.FormatSeconds(view.SweepDuration)),
		state,
		fmt.Sprintf("lap %d", view.Laps),
	}
	if view.ShowEvents {
		segments = append(segments, fmt.Sprintf("● %d", view.VisibleMarks))
	}
	if view.AudioChannel >= 0 {
		segments = append(segments, fmt.Sprintf("♪ %s", util.ChannelLabel(view.AudioChannel)))
	}

	line := s.GetSizer().TruncateString(strings.Join(segments, " │ "), maxWidth-4)
	return s.BoxLine(line, line, maxWidth)
}

func (s *FullLayoutStrategy) activityLine(view *ScopeView, maxWidth int) string {
	var line string
	switch {
	case !view.ShowEvents:
		line = "🏆 spike overlay off"
	case len(view.Leaders) == 0:
		line = "🏆 no spikes in window"
	default:
		parts := make([]string, 0, len(view.Leaders))
		for _, leader := range view.Leaders {
			parts = append(parts, fmt.Sprintf("%s ×%s", util.ChannelLabel(leader.Channel), util.FormatNumber(int(leader.Count))))
		}
		line = "🏆 " + strings.Join(parts, "   ")
	}

	line = s.GetSizer().TruncateString(line, maxWidth-4)
	return s.BoxLine(line, line, maxWidth)
}
