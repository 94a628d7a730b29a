package scope

import (
	"context"
	"fmt"
	"time"

	"github.com/ephyslab/sweepscope/internal/audio"
	"github.com/ephyslab/sweepscope/internal/core/activity"
	"github.com/ephyslab/sweepscope/internal/core/constants"
	"github.com/ephyslab/sweepscope/internal/core/model"
	"github.com/ephyslab/sweepscope/internal/core/monitoring"
	"github.com/ephyslab/sweepscope/internal/core/sweep"
	"github.com/ephyslab/sweepscope/internal/data/cache"
	"github.com/ephyslab/sweepscope/internal/data/loader"
	"github.com/ephyslab/sweepscope/internal/presentation/display"
	"github.com/ephyslab/sweepscope/internal/presentation/interaction"
	"github.com/ephyslab/sweepscope/internal/presentation/layout"
	"github.com/ephyslab/sweepscope/internal/presentation/render"
	"github.com/ephyslab/sweepscope/internal/util"
)

// statusDuration is how long a transient status message stays on screen.
const statusDuration = 3 * time.Second

// Orchestrator coordinates all components of a live viewing session
type Orchestrator struct {
	config *Config

	// Core components
	dataLoader   *DataLoader
	stateManager *StateManager

	// Sweep components, rebuilt on every reload
	bundle  *loader.Bundle
	engine  *sweep.Engine
	tracker *activity.Tracker

	// UI components
	display  *display.TerminalDisplay
	keyboard *interaction.KeyboardReader
	renderer *render.ScopeRenderer
	sizer    *layout.Sizer

	// Monitoring
	watcher *monitoring.BundleWatcher
	monitor *audio.Monitor

	// Canvas geometry last handed to the renderer
	canvasWidth  int
	canvasHeight int

	// Spike time already counted into the activity tracker
	lastEventTime float64

	statusClearAt time.Time
}

// NewOrchestrator creates a new Orchestrator instance
func NewOrchestrator(config *Config) (*Orchestrator, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	layoutStyle, err := config.LayoutStyle()
	if err != nil {
		return nil, err
	}

	return &Orchestrator{
		config:       config,
		dataLoader:   NewDataLoader(config),
		stateManager: NewStateManager(layoutStyle, config.ShowEvents, config.ColorByCategory),
		display:      display.NewTerminalDisplay(),
		sizer:        &layout.Sizer{},
		canvasWidth:  -1,
		canvasHeight: -1,
	}, nil
}

// Run starts the orchestrator main loop
func (o *Orchestrator) Run(ctx context.Context) error {
	util.LogInfo("Starting Sweepscope viewer...")

	defer o.Close()

	// Phase 1: Initialize keyboard
	keyboard, err := interaction.NewKeyboardReader()
	if err != nil {
		return fmt.Errorf("failed to initialize keyboard: %w", err)
	}
	o.keyboard = keyboard
	defer o.keyboard.Close()

	// Enter alternate screen mode
	o.display.EnterAlternateScreen()
	defer o.display.ExitAlternateScreen()

	// Show initial loading screen
	o.stateManager.SetLoadingState(true, "Loading recording bundle...")
	o.display.RenderFrame("", o.stateManager.GetInteractionState())

	// Phase 2: Load the bundle and build the sweep pipeline
	bundle, err := o.dataLoader.Load()
	if err != nil {
		return fmt.Errorf("initial load failed: %w", err)
	}
	if err := o.installBundle(bundle); err != nil {
		return err
	}
	o.stateManager.SetLoadingState(false, "")
	o.stateManager.MarkDataUpdated()

	// Phase 3: Start file monitoring
	var watchEvents <-chan model.FileEvent
	if o.config.Watch {
		watcher, err := monitoring.NewBundleWatcher(o.dataLoader.WatchTargets(bundle))
		if err != nil {
			util.LogWarn(fmt.Sprintf("File watching disabled: %v", err))
		} else {
			o.watcher = watcher
			watchEvents = watcher.Events()
		}
	}

	// Phase 4: Main event loop
	frameTicker := time.NewTicker(time.Second / time.Duration(o.config.FrameRate))
	defer frameTicker.Stop()

	// Reload debounce timer, armed by watcher events
	reloadTimer := time.NewTimer(constants.ReloadDebounce)
	if !reloadTimer.Stop() {
		<-reloadTimer.C
	}
	defer reloadTimer.Stop()

	for {
		select {
		case <-ctx.Done():
			util.LogInfo("Shutting down Sweepscope viewer...")
			return nil

		case <-frameTicker.C:
			o.tick()

		case event := <-watchEvents:
			util.LogDebug(fmt.Sprintf("Bundle file changed: %s (%s)", event.Path, event.Operation))
			reloadTimer.Reset(constants.ReloadDebounce)

		case <-reloadTimer.C:
			o.reload()

		case keyEvent := <-o.keyboard.Events():
			if o.handleKeyboard(keyEvent) {
				return nil // Exit requested
			}
		}
	}
}

// installBundle builds the engine, renderer, activity tracker, and audio
// monitor over a freshly loaded bundle. Called on startup and after reloads.
func (o *Orchestrator) installBundle(bundle *loader.Bundle) error {
	opts := sweep.Options{
		SamplingRate:   bundle.Manifest.SamplingRate,
		SpeedFactor:    o.config.SpeedFactor,
		SweepDuration:  o.config.SweepDuration,
		AmplitudeScale: o.config.AmplitudeScale,
		FirstChannel:   o.config.FirstChannel,
		LastChannel:    o.config.LastChannel,
	}

	engine, err := sweep.NewEngine(opts, bundle.Samples, bundle.Spikes, bundle.Table)
	if err != nil {
		return fmt.Errorf("failed to build sweep engine: %w", err)
	}

	o.bundle = bundle
	o.engine = engine
	o.tracker = activity.NewTracker(constants.ActivityTopK, constants.ActivityWindowSeconds)
	o.lastEventTime = 0
	o.canvasWidth = -1 // force a renderer resize on the next tick
	o.canvasHeight = -1

	if o.monitor != nil {
		o.monitor.Close()
		o.monitor = nil
	}
	if o.config.ListenChannel >= 0 {
		monitor := audio.NewMonitor(bundle.Samples, o.config.ListenChannel, bundle.Manifest.SamplingRate)
		if err := monitor.Start(); err != nil {
			util.LogWarn(fmt.Sprintf("Audio monitoring disabled: %v", err))
		} else {
			o.monitor = monitor
		}
	}
	return nil
}

// tick advances the sweep one frame and redraws the terminal.
func (o *Orchestrator) tick() {
	now := time.Now()
	state := o.stateManager.GetInteractionState()

	param := o.sizer.GetTerminalSize()
	strategy := layout.GetLayoutStrategy(state.LayoutStyle)
	o.fitCanvas(strategy, param)

	frame := o.engine.Tick(now)
	o.observeSpikes(frame, state)
	o.tracker.Advance(now)

	if !o.statusClearAt.IsZero() && now.After(o.statusClearAt) {
		o.stateManager.SetStatusMessage("")
		o.statusClearAt = time.Time{}
		state = o.stateManager.GetInteractionState()
	}

	canvas := o.renderer.Render(frame, state.ShowEvents, state.ColorByCategory)
	view := buildScopeView(o.config, o.bundle, frame, state, canvas,
		o.tracker.Leaders(), o.engine.Paused(), o.engine.SpeedFactor(), o.audioChannel())

	o.display.RenderFrame(strategy.Render(view, param), state)
}

// fitCanvas resizes the renderer and the engine when the terminal geometry or
// the layout chrome changed since the last frame.
func (o *Orchestrator) fitCanvas(strategy layout.LayoutStrategy, param model.LayoutParam) {
	width, height := strategy.CanvasRegion(param)
	if width == o.canvasWidth && height == o.canvasHeight {
		return
	}

	util.LogDebug(fmt.Sprintf("Canvas region %dx%d (was %dx%d)", width, height, o.canvasWidth, o.canvasHeight))
	o.canvasWidth = width
	o.canvasHeight = height

	if o.renderer == nil {
		o.renderer = render.NewScopeRenderer(width, height, o.config.MarkSize)
	} else {
		o.renderer.Resize(width, height)
	}
	o.engine.Resize(o.renderer.Extent())
}

// observeSpikes feeds newly swept-over spikes into the activity tracker.
func (o *Orchestrator) observeSpikes(frame sweep.Frame, state model.InteractionState) {
	aligner := o.engine.Aligner()
	if aligner == nil || !state.ShowEvents {
		return
	}

	// The current time moves backwards when the recording wraps; restart
	// counting from the beginning of the recording.
	if frame.CurrentTime < o.lastEventTime {
		o.lastEventTime = 0
	}
	aligner.CountBetween(o.lastEventTime, frame.CurrentTime, frame.Traces, o.tracker.Observe)
	o.lastEventTime = frame.CurrentTime
}

func (o *Orchestrator) audioChannel() int {
	if o.monitor == nil {
		return -1
	}
	return o.monitor.Channel()
}

// setStatus shows a transient message under the frame.
func (o *Orchestrator) setStatus(message string) {
	o.stateManager.SetStatusMessage(message)
	o.statusClearAt = time.Now().Add(statusDuration)
}

// reload re-reads the bundle from disk, preserving pause state, playback
// speed, and the amplitude scale across the swap.
func (o *Orchestrator) reload() {
	util.LogInfo("Reloading recording bundle...")
	o.stateManager.SetLoadingState(true, "Reloading bundle...")
	o.display.RenderFrame("", o.stateManager.GetInteractionState())

	paused := o.engine.Paused()
	speed := o.engine.SpeedFactor()
	scale := o.engine.Traces().ScaleFraction()

	bundle, err := o.dataLoader.Load()
	if err != nil {
		util.LogError(fmt.Sprintf("Reload failed: %v", err))
		o.stateManager.SetLoadingState(false, "")
		o.setStatus(fmt.Sprintf("reload failed: %v", err))
		return
	}

	if err := o.installBundle(bundle); err != nil {
		util.LogError(fmt.Sprintf("Reload failed: %v", err))
		o.stateManager.SetLoadingState(false, "")
		o.setStatus(fmt.Sprintf("reload failed: %v", err))
		return
	}

	o.engine.SetPaused(paused)
	o.engine.SetSpeedFactor(speed)
	o.engine.Traces().SetScaleFraction(scale)

	if o.watcher != nil {
		// Watch the new source set; paths can change when the manifest did.
		if err := o.watcher.Close(); err != nil {
			util.LogWarn(fmt.Sprintf("Failed to close stale watcher: %v", err))
		}
		o.watcher = nil
		watcher, err := monitoring.NewBundleWatcher(o.dataLoader.WatchTargets(bundle))
		if err != nil {
			util.LogWarn(fmt.Sprintf("File watching disabled: %v", err))
		} else {
			o.watcher = watcher
		}
	}

	o.stateManager.SetLoadingState(false, "")
	o.stateManager.MarkDataUpdated()
	o.setStatus("bundle reloaded")
}

// handleKeyboard handles keyboard events. Returns true when the viewer should
// exit.
func (o *Orchestrator) handleKeyboard(event interaction.KeyEvent) bool {
	state := o.stateManager.GetInteractionState()

	// Handle confirm dialog inputs first
	if state.ConfirmDialog != nil {
		o.handleDialogKey(event, state.ConfirmDialog)
		return false
	}

	switch event.Type {
	case interaction.KeyChar:
		switch event.Key {
		case 'q', 'Q', 3: // 'q', 'Q', or Ctrl+C
			return true
		case ' ':
			o.engine.SetPaused(!o.engine.Paused())
		case 'h', 'H':
			o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
				s.ShowHelp = !s.ShowHelp
			})
		case 'e', 'E':
			if o.engine.Aligner() == nil {
				o.setStatus("no spike data loaded; start with --show-events")
				return false
			}
			o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
				s.ShowEvents = !s.ShowEvents
			})
		case 'c', 'C':
			o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
				s.ColorByCategory = !s.ColorByCategory
			})
		case 't', 'T':
			// Cycle through layout styles
			o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
				s.LayoutStyle = (s.LayoutStyle + 1) % 2
			})
		case 'r', 'R':
			o.reload()
		case 'x', 'X':
			o.confirmClearCache()
		case '+', '=':
			o.nudgeAmplitude(2)
		case '-', '_':
			o.nudgeAmplitude(0.5)
		}
	case interaction.KeyEscape:
		// If help is shown, close it; otherwise quit
		if state.ShowHelp {
			o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
				s.ShowHelp = false
			})
		} else {
			return true
		}
	case interaction.KeyUp:
		o.nudgeAmplitude(2)
	case interaction.KeyDown:
		o.nudgeAmplitude(0.5)
	case interaction.KeyRight:
		o.adjustSpeed(2)
	case interaction.KeyLeft:
		o.adjustSpeed(0.5)
	}

	return false
}

func (o *Orchestrator) nudgeAmplitude(factor float64) {
	o.engine.NudgeAmplitude(factor)
	o.setStatus(fmt.Sprintf("amplitude scale %.2g", o.engine.Traces().ScaleFraction()))
}

func (o *Orchestrator) adjustSpeed(factor float64) {
	o.engine.SetSpeedFactor(o.engine.SpeedFactor() * factor)
	o.setStatus(fmt.Sprintf("speed %gx", o.engine.SpeedFactor()))
}

// handleDialogKey routes keys while a confirm dialog is open. Anything other
// than yes/no/escape is ignored.
func (o *Orchestrator) handleDialogKey(event interaction.KeyEvent, dialog *model.ConfirmDialog) {
	confirm := func(cb func()) {
		if cb != nil {
			cb()
		}
		o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
			s.ConfirmDialog = nil
		})
		o.display.ClearScreen()
	}

	switch event.Type {
	case interaction.KeyChar:
		switch event.Key {
		case 'y', 'Y':
			confirm(dialog.OnConfirm)
		case 'n', 'N':
			confirm(dialog.OnCancel)
		}
	case interaction.KeyEscape:
		confirm(dialog.OnCancel)
	}
}

// confirmClearCache asks before dropping the cached channel report for every
// recording under the cache dir.
func (o *Orchestrator) confirmClearCache() {
	o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
		s.ConfirmDialog = &model.ConfirmDialog{
			Title:   "Clear Report Cache",
			Message: "This will delete every cached channel report. The next info run recomputes from disk. Continue?",
			OnConfirm: func() {
				reportCache, err := cache.NewReportCache(o.config.CacheDir)
				if err != nil {
					o.setStatus(fmt.Sprintf("cache unavailable: %v", err))
					return
				}
				if err := reportCache.Clear(); err != nil {
					o.setStatus(fmt.Sprintf("clear cache failed: %v", err))
					return
				}
				o.setStatus("report cache cleared")
			},
		}
	})
}

// Close cleans up all resources
func (o *Orchestrator) Close() error {
	if o.monitor != nil {
		o.monitor.Close()
		o.monitor = nil
	}
	if o.watcher != nil {
		if err := o.watcher.Close(); err != nil {
			return fmt.Errorf("failed to close file watcher: %w", err)
		}
		o.watcher = nil
	}
	return nil
}
