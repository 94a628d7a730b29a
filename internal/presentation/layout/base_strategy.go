package layout

import (
	"fmt"
	"strings"

	"github.com/ephyslab/sweepscope/internal/util"
)

// BaseStrategy provides common functionality for all layout strategies
type BaseStrategy struct {
}

// GetSizer returns the shared sizer instance
func (b *BaseStrategy) GetSizer() *Sizer {
	return sharedSizer
}

// TopBorder creates the opening frame border
func (b *BaseStrategy) TopBorder(maxWidth int) string {
	return "╭" + strings.Repeat("─", maxWidth-2) + "╮"
}

// Separator creates an interior frame divider
func (b *BaseStrategy) Separator(maxWidth int) string {
	return "├" + strings.Repeat("─", maxWidth-2) + "┤"
}

// BottomBorder creates the closing frame border
func (b *BaseStrategy) BottomBorder(maxWidth int) string {
	return "╰" + strings.Repeat("─", maxWidth-2) + "╯"
}

// BoxLine wraps content into a bordered row, padded to the frame width. The
// visible width is measured on the plain text so color sequences in the
// rendered text do not skew padding.
func (b *BaseStrategy) BoxLine(rendered, plain string, maxWidth int) string {
	padding := maxWidth - getDisplayWidth(plain) - 4
	if padding < 0 {
		padding = 0
	}
	return "│ " + rendered + strings.Repeat(" ", padding) + " │"
}

// TwoColumnLine lays out a bordered row with a centered divider.
// Format: "│ " + left + " │ " + right + " │"
// Total fixed chars: 2 (left border + space) + 3 (space + divider + space) +
// 2 (space + right border) = 7
func (b *BaseStrategy) TwoColumnLine(leftCol, rightCol string, maxWidth int) string {
	leftWidth := getDisplayWidth(leftCol)
	rightWidth := getDisplayWidth(rightCol)

	availableContentWidth := maxWidth - 7
	leftColumnWidth := availableContentWidth / 2
	rightColumnWidth := availableContentWidth - leftColumnWidth

	// Use the allocated widths, but ensure content fits
	if leftWidth > leftColumnWidth {
		leftColumnWidth = leftWidth
	}
	if rightWidth > rightColumnWidth {
		rightColumnWidth = rightWidth
	}

	return fmt.Sprintf("│ %s%s │ %s%s │",
		leftCol, strings.Repeat(" ", leftColumnWidth-leftWidth),
		rightCol, strings.Repeat(" ", rightColumnWidth-rightWidth))
}

// FormatPosition formats the playback position against the recording length
func (b *BaseStrategy) FormatPosition(view *ScopeView) string {
	return fmt.Sprintf("%s / %s", util.FormatSeconds(view.CurrentTime), util.FormatSeconds(view.Duration))
}

// FormatChannelRange formats the displayed slice of the recording's channels
func (b *BaseStrategy) FormatChannelRange(view *ScopeView) string {
	return fmt.Sprintf("%s of %d", util.ChannelRangeLabel(view.FirstChannel, view.LastChannel), view.TotalChannels)
}
