package display

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ephyslab/sweepscope/internal/core/model"
)

func TestDetermineDisplayModePriority(t *testing.T) {
	td := NewTerminalDisplay()

	state := model.InteractionState{
		ConfirmDialog: &model.ConfirmDialog{Title: "Reload?"},
		ShowHelp:      true,
		IsLoading:     true,
	}
	assert.Equal(t, model.ModeConfirm, td.determineDisplayMode(state), "dialog wins over everything")

	state.ConfirmDialog = nil
	assert.Equal(t, model.ModeHelp, td.determineDisplayMode(state))

	state.ShowHelp = false
	assert.Equal(t, model.ModeLoading, td.determineDisplayMode(state))

	state.IsLoading = false
	assert.Equal(t, model.ModeNormal, td.determineDisplayMode(state))
}

func TestWrapText(t *testing.T) {
	assert.Empty(t, wrapText("", 10))
	assert.Equal(t, []string{"short"}, wrapText("short", 10))

	lines := wrapText("reload the bundle from disk now", 12)
	for _, line := range lines {
		assert.LessOrEqual(t, len(line), 12)
	}
	assert.Equal(t, []string{"reload the", "bundle from", "disk now"}, lines)
}
