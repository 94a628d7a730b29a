package scope

import (
	"github.com/ephyslab/sweepscope/internal/core/model"
	"github.com/ephyslab/sweepscope/internal/data/loader"
	"github.com/ephyslab/sweepscope/internal/presentation/interaction"
)

// BundleSource loads recording bundles
type BundleSource interface {
	// Load reads the manifest and every referenced array from disk
	Load() (*loader.Bundle, error)
}

// DisplayController handles terminal display operations
type DisplayController interface {
	// EnterAlternateScreen switches to alternate terminal screen
	EnterAlternateScreen()
	// ExitAlternateScreen returns to normal terminal screen
	ExitAlternateScreen()
	// ClearScreen clears the terminal screen
	ClearScreen()
	// RenderFrame writes one composed frame with the given interaction state
	RenderFrame(frame string, state model.InteractionState)
}

// InputHandler processes keyboard events
type InputHandler interface {
	// Events returns a channel of keyboard events
	Events() <-chan interaction.KeyEvent
	// Close cleans up input handler resources
	Close() error
}

// FileMonitor watches for bundle file changes
type FileMonitor interface {
	// Events returns a channel of file change events
	Events() <-chan model.FileEvent
	// Close stops monitoring and cleans up resources
	Close() error
}
