package scope

import (
	"sync"
	"time"

	"github.com/ephyslab/sweepscope/internal/core/model"
)

// StateManager manages viewer state in a thread-safe manner. The run loop is
// the only writer in practice, but reload goroutines read the state to decide
// what to keep on screen.
type StateManager struct {
	mu sync.RWMutex

	interactionState model.InteractionState

	// Timestamp of last successful bundle load
	lastDataUpdate int64
}

// NewStateManager creates a new StateManager instance
func NewStateManager(layoutStyle int, showEvents, colorByCategory bool) *StateManager {
	return &StateManager{
		interactionState: model.InteractionState{
			LayoutStyle:     layoutStyle,
			ShowEvents:      showEvents,
			ColorByCategory: colorByCategory,
		},
	}
}

// GetInteractionState returns a copy of the current interaction state
func (sm *StateManager) GetInteractionState() model.InteractionState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.interactionState
}

// UpdateInteractionState updates specific fields of interaction state
func (sm *StateManager) UpdateInteractionState(updateFunc func(*model.InteractionState)) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	updateFunc(&sm.interactionState)
}

// SetLoadingState updates loading state and message
func (sm *StateManager) SetLoadingState(isLoading bool, message string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.interactionState.IsLoading = isLoading
	sm.interactionState.LoadingMessage = message
}

// SetStatusMessage sets the transient status line under the frame
func (sm *StateManager) SetStatusMessage(message string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.interactionState.StatusMessage = message
}

// MarkDataUpdated records a successful bundle load
func (sm *StateManager) MarkDataUpdated() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.lastDataUpdate = time.Now().Unix()
}

// GetLastDataUpdate returns timestamp of the last successful bundle load
func (sm *StateManager) GetLastDataUpdate() int64 {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.lastDataUpdate
}
