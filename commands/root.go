package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ephyslab/sweepscope/internal/application/scope"
	"github.com/ephyslab/sweepscope/internal/core/constants"
	"github.com/ephyslab/sweepscope/internal/util"
)

var (
	// Logging related
	debug   bool
	logFile string

	// Bundle source (shared by view, info, export)
	source sourceFlags

	// Displayed channel range
	firstChannel int
	lastChannel  int

	// Engine tunables
	profileName    string
	speedFactor    float64
	sweepDuration  float64
	amplitudeScale float64

	// Presentation
	markSize        int
	frameRate       int
	layoutName      string
	showEvents      bool
	colorByCategory bool

	// Behavior
	listenChannel int
	noWatch       bool

	rootCmd = &cobra.Command{
		Use:   "sweepscope [flags]",
		Short: "Terminal oscilloscope for multichannel electrophysiology recordings",
		Long: `sweepscope streams a pre-recorded multichannel sample array through a
sweeping time window and draws the traces on a braille terminal canvas,
optionally overlaying sorted spike events on the same time axis.

Examples:
  sweepscope --recording session.json                    # View a recording bundle
  sweepscope --recording session.json --show-events      # Overlay spike marks
  sweepscope --recording session.json --first 32 --last 63
  sweepscope --samples raw.bin --format int16 --channels 64 --rate 30000
  sweepscope --recording session.json --profile fast --layout compact
  sweepscope --recording session.json --listen 12        # Audible channel monitor`,
		RunE: runView,
	}
)

const (
	defaultLogFile = "~/" + constants.AppDirName + "/logs/app.log"
	defaultCache   = "~/" + constants.AppDirName + "/cache"
)

// sourceFlags are the bundle-source flags shared by every command that reads
// a recording: a manifest path, or raw file flags describing the arrays.
type sourceFlags struct {
	recording       string
	samples         string
	format          string
	channels        int
	rate            float64
	spikeTimes      string
	spikeChannels   string
	spikeCategories string
	sampleTimes     string
	truncate        bool
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.recording, "recording", "",
		"Recording manifest path (JSON)")
	cmd.Flags().StringVar(&f.samples, "samples", "",
		"Raw channel-major sample file (alternative to --recording)")
	cmd.Flags().StringVar(&f.format, "format", "int16",
		"Sample format for --samples (int16, float32)")
	cmd.Flags().IntVar(&f.channels, "channels", 0,
		"Channel count for --samples")
	cmd.Flags().Float64Var(&f.rate, "rate", 0,
		"Sampling rate in Hz (overrides the manifest value)")
	cmd.Flags().StringVar(&f.spikeTimes, "spike-times", "",
		"Spike timestamp file (float32 seconds)")
	cmd.Flags().StringVar(&f.spikeChannels, "spike-channels", "",
		"Spike source channel file (uint16)")
	cmd.Flags().StringVar(&f.spikeCategories, "spike-categories", "",
		"Spike category file (uint16)")
	cmd.Flags().StringVar(&f.sampleTimes, "sample-times", "",
		"Per-sample timestamp file (float32 seconds)")
	cmd.Flags().BoolVar(&f.truncate, "truncate", false,
		"Drop a trailing partial time step instead of rejecting the sample file")
}

// apply copies the source flags into a viewer config.
func (f *sourceFlags) apply(cfg *scope.Config) {
	cfg.ManifestPath = expandExisting(f.recording)
	cfg.SamplesPath = expandExisting(f.samples)
	cfg.Format = f.format
	cfg.Channels = f.channels
	cfg.SamplingRate = f.rate
	cfg.SpikeTimesPath = expandExisting(f.spikeTimes)
	cfg.SpikeChannelsPath = expandExisting(f.spikeChannels)
	cfg.SpikeCategoriesPath = expandExisting(f.spikeCategories)
	cfg.SampleTimesPath = expandExisting(f.sampleTimes)
	cfg.Truncate = f.truncate
}

func init() {
	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode (mirrors the log to stderr)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", defaultLogFile,
		"Log file path")

	source.register(rootCmd)

	// Channel range
	rootCmd.Flags().IntVar(&firstChannel, "first", 0,
		"First displayed channel")
	rootCmd.Flags().IntVar(&lastChannel, "last", -1,
		"Last displayed channel, inclusive (-1 = through the end)")

	// Engine tunables
	rootCmd.Flags().StringVar(&profileName, "profile", "",
		"Tunable preset (default, fast, slow, dense)")
	rootCmd.Flags().Float64Var(&speedFactor, "speed", 0,
		"Recording seconds consumed per wall second")
	rootCmd.Flags().Float64Var(&sweepDuration, "sweep-duration", 0,
		"Recording seconds shown per sweep")
	rootCmd.Flags().Float64Var(&amplitudeScale, "amplitude-scale", 0,
		"Vertical extent fraction per raw sample unit")

	// Presentation
	rootCmd.Flags().IntVar(&markSize, "mark-size", 0,
		"Spike mark size in canvas cells")
	rootCmd.Flags().IntVar(&frameRate, "fps", 0,
		"Frames per second (1-120)")
	rootCmd.Flags().StringVar(&layoutName, "layout", "",
		"Layout style (full, compact)")
	rootCmd.Flags().BoolVar(&showEvents, "show-events", false,
		"Load and overlay spike events")
	rootCmd.Flags().BoolVar(&colorByCategory, "color-by-category", false,
		"Color spike marks by sorted category")

	// Behavior
	rootCmd.Flags().IntVar(&listenChannel, "listen", -1,
		"Play this channel through the speakers while viewing (-1 = off)")
	rootCmd.Flags().BoolVar(&noWatch, "no-watch", false,
		"Disable live reload on bundle file changes")
}

func runView(cmd *cobra.Command, args []string) error {
	initLogging()

	cacheDir := expandPath(defaultCache)
	if err := ensureDir(cacheDir); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	config := &scope.Config{
		FirstChannel:    firstChannel,
		LastChannel:     lastChannel,
		Profile:         profileName,
		SpeedFactor:     speedFactor,
		SweepDuration:   sweepDuration,
		AmplitudeScale:  amplitudeScale,
		MarkSize:        markSize,
		FrameRate:       frameRate,
		Layout:          layoutName,
		ShowEvents:      showEvents,
		ColorByCategory: colorByCategory,
		Watch:           !noWatch,
		ListenChannel:   listenChannel,
		CacheDir:        cacheDir,
	}
	source.apply(config)

	orchestrator, err := scope.NewOrchestrator(config)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	go func() {
		<-sigChan
		cancel()
	}()

	return orchestrator.Run(ctx)
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func initLogging() {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}
	path := expandPath(logFile)
	ensureDir(filepath.Dir(path))
	util.InitLogger(logLevel, path, debug)
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

// expandExisting expands only non-empty paths, so unset flags stay unset.
func expandExisting(path string) string {
	if path == "" {
		return ""
	}
	return expandPath(path)
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
