package constants

import "time"

const (
	// Engine defaults; every one of these is overridable by flag or manifest
	DefaultSamplingRate  = 30000.0 // Hz
	DefaultSpeedFactor   = 0.02    // recording seconds consumed per wall second, as a fraction of real time
	DefaultSweepDuration = 0.05    // seconds of recording shown per sweep

	// Display defaults
	DefaultAmplitudeScale = 0.00003 // fraction of the vertical extent per raw unit
	DefaultMarkSize       = 1       // event mark radius in cells
	DefaultFrameRate      = 30      // render ticks per second
	DefaultLayout         = "full"

	// Activity leaders sliding window
	ActivityWindowSeconds = 10
	ActivityTopK          = 5

	// Watcher debounce: bundle rewrites arrive as bursts of fs events
	ReloadDebounce = 500 * time.Millisecond

	// Loader concurrency cap for the per-file reads of one bundle
	MaxLoadConcurrency = 5
)

// AppDirName is the per-user state directory under $HOME
const AppDirName = ".sweepscope"
