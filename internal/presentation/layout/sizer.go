package layout

import (
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/ephyslab/sweepscope/internal/core/model"
	"github.com/ephyslab/sweepscope/internal/util"
)

// Package-level singleton Sizer instance
var sharedSizer = &Sizer{}

type Sizer struct {
}

// displayWidth calculates the actual display width of a string containing
// wide Unicode characters
func (i Sizer) displayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// PadString pads a string to a specific display width, handling wide runes
// correctly
func (i Sizer) PadString(s string, width int, leftAlign bool) string {
	actualWidth := i.displayWidth(s)
	if actualWidth >= width {
		return s
	}

	padding := strings.Repeat(" ", width-actualWidth)
	if leftAlign {
		return s + padding
	}
	return padding + s
}

// TruncateString shortens a string to a display width, appending an ellipsis
// when anything was cut.
func (i Sizer) TruncateString(s string, width int) string {
	if i.displayWidth(s) <= width {
		return s
	}
	if width <= 1 {
		return strings.Repeat(".", width)
	}
	return runewidth.Truncate(s, width-1, "") + "…"
}

// GetTerminalSize returns the current terminal geometry with a fallback for
// pipes and dumb terminals.
func (i Sizer) GetTerminalSize() model.LayoutParam {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < 20 || height < 8 {
		width, height = 100, 30
	}

	util.LogDebugf("GetTerminalSize %dx%d", width, height)
	return model.LayoutParam{Width: width, Height: height}
}

// GetMaxWidth returns the usable frame width for the current terminal
func (i Sizer) GetMaxWidth() int {
	param := i.GetTerminalSize()

	maxWidth := param.Width - 2 // Leave some margin
	if maxWidth > 200 {
		maxWidth = 200
	}
	return maxWidth
}
