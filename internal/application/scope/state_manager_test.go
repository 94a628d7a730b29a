package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ephyslab/sweepscope/internal/core/model"
)

func TestStateManagerInitialState(t *testing.T) {
	sm := NewStateManager(1, true, false)
	state := sm.GetInteractionState()

	assert.Equal(t, 1, state.LayoutStyle)
	assert.True(t, state.ShowEvents)
	assert.False(t, state.ColorByCategory)
	assert.False(t, state.IsLoading)
}

func TestStateManagerUpdates(t *testing.T) {
	sm := NewStateManager(0, false, false)

	sm.UpdateInteractionState(func(s *model.InteractionState) {
		s.ShowHelp = true
		s.LayoutStyle = 1
	})
	sm.SetLoadingState(true, "Reloading bundle...")
	sm.SetStatusMessage("bundle reloaded")

	state := sm.GetInteractionState()
	assert.True(t, state.ShowHelp)
	assert.Equal(t, 1, state.LayoutStyle)
	assert.True(t, state.IsLoading)
	assert.Equal(t, "Reloading bundle...", state.LoadingMessage)
	assert.Equal(t, "bundle reloaded", state.StatusMessage)
}

func TestStateManagerMarksDataUpdates(t *testing.T) {
	sm := NewStateManager(0, false, false)
	assert.Zero(t, sm.GetLastDataUpdate())

	sm.MarkDataUpdated()
	assert.NotZero(t, sm.GetLastDataUpdate())
}
