package layout

import (
	"github.com/ephyslab/sweepscope/internal/core/model"
)

// LayoutStrategy defines the interface for different viewer layout strategies
type LayoutStrategy interface {
	// Render composes the full frame, canvas included, as one string ready
	// for the display to write.
	Render(view *ScopeView, param model.LayoutParam) string
	// CanvasRegion reports the cell region the canvas must be rendered at
	// for this terminal geometry.
	CanvasRegion(param model.LayoutParam) (width, height int)
	GetName() string
}

// GetLayoutStrategy returns the appropriate layout strategy based on the style
func GetLayoutStrategy(layoutStyle int) LayoutStrategy {
	strategies := map[int]LayoutStrategy{
		0: &FullLayoutStrategy{},
		1: &CompactLayoutStrategy{},
	}

	if strategy, exists := strategies[layoutStyle]; exists {
		return strategy
	}

	// Default to the full scope layout if invalid style
	return &FullLayoutStrategy{}
}
