package scope

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ephyslab/sweepscope/internal/core/constants"
	"github.com/ephyslab/sweepscope/internal/core/model"
	"github.com/ephyslab/sweepscope/internal/core/profile"
	"github.com/ephyslab/sweepscope/internal/data/scanner"
)

// Config contains configuration for the viewer. Zero values mean "not set by
// flag" and are filled from the resolved profile preset, then from defaults.
type Config struct {
	// Bundle source: either a manifest or raw file flags
	ManifestPath        string
	SamplesPath         string
	Format              string
	Channels            int
	SamplingRate        float64
	SpikeTimesPath      string
	SpikeChannelsPath   string
	SpikeCategoriesPath string
	SampleTimesPath     string

	// Displayed channel range; LastChannel -1 means "through the end"
	FirstChannel int
	LastChannel  int

	// Engine tunables
	Profile        string
	SpeedFactor    float64
	SweepDuration  float64
	AmplitudeScale float64

	// Presentation
	MarkSize        int
	FrameRate       int
	Layout          string
	ShowEvents      bool
	ColorByCategory bool

	// Behavior
	Truncate      bool
	Watch         bool
	ListenChannel int // -1 disables audio monitoring

	// Paths and performance
	CacheDir    string
	Concurrency int
}

// Validate resolves the profile preset, fills defaults, and checks the
// invariants that do not need a loaded bundle.
func (c *Config) Validate() error {
	if c.ManifestPath == "" && c.SamplesPath == "" {
		return fmt.Errorf("either --recording or --samples is required")
	}
	if c.ManifestPath == "" {
		if c.Channels <= 0 {
			return fmt.Errorf("--channels must be positive with --samples, got %d", c.Channels)
		}
		if c.SamplingRate <= 0 && c.samplingRateRequired() {
			return fmt.Errorf("--rate must be positive with --samples, got %g", c.SamplingRate)
		}
		if !model.SampleFormat(c.Format).Valid() {
			return fmt.Errorf("unknown sample format %q (int16, float32)", c.Format)
		}
	}

	preset, err := profile.Resolve(c.Profile)
	if err != nil {
		return err
	}
	if c.SpeedFactor == 0 {
		c.SpeedFactor = preset.SpeedFactor
	}
	if c.SweepDuration == 0 {
		c.SweepDuration = preset.SweepDuration
	}
	if c.AmplitudeScale == 0 {
		c.AmplitudeScale = preset.AmplitudeScale
	}
	if c.FrameRate == 0 {
		c.FrameRate = preset.FrameRate
	}

	if c.SpeedFactor <= 0 {
		return fmt.Errorf("--speed must be positive, got %g", c.SpeedFactor)
	}
	if c.SweepDuration <= 0 {
		return fmt.Errorf("--sweep-duration must be positive, got %g", c.SweepDuration)
	}
	if c.AmplitudeScale <= 0 {
		return fmt.Errorf("--amplitude-scale must be positive, got %g", c.AmplitudeScale)
	}
	if c.FrameRate < 1 || c.FrameRate > 120 {
		return fmt.Errorf("--fps must be between 1 and 120, got %d", c.FrameRate)
	}

	if c.MarkSize == 0 {
		c.MarkSize = constants.DefaultMarkSize
	}
	if c.MarkSize < 1 {
		return fmt.Errorf("--mark-size must be at least 1, got %d", c.MarkSize)
	}

	if c.Layout == "" {
		c.Layout = constants.DefaultLayout
	}
	if _, err := c.LayoutStyle(); err != nil {
		return err
	}

	if c.FirstChannel < 0 {
		return fmt.Errorf("--first must not be negative, got %d", c.FirstChannel)
	}
	if c.LastChannel != -1 && c.LastChannel < c.FirstChannel {
		return fmt.Errorf("--last %d is before --first %d", c.LastChannel, c.FirstChannel)
	}

	if c.Concurrency == 0 {
		c.Concurrency = constants.MaxLoadConcurrency
	}
	return nil
}

// samplingRateRequired reports whether a rate must come from flags. A manifest
// always carries one.
func (c *Config) samplingRateRequired() bool {
	return c.ManifestPath == ""
}

// LayoutStyle maps the --layout flag to a strategy index.
func (c *Config) LayoutStyle() (int, error) {
	switch strings.ToLower(c.Layout) {
	case "full":
		return 0, nil
	case "compact":
		return 1, nil
	default:
		return 0, fmt.Errorf("unknown layout %q (full, compact)", c.Layout)
	}
}

// Manifest builds the recording manifest this run views: loaded from
// --recording when given, otherwise assembled from the raw file flags. A
// --recording directory is scanned for a single manifest. Flag values take
// precedence over manifest fields.
func (c *Config) Manifest() (*model.RecordingManifest, error) {
	if c.ManifestPath != "" {
		if info, err := os.Stat(c.ManifestPath); err == nil && info.IsDir() {
			resolved, err := resolveManifestDir(c.ManifestPath)
			if err != nil {
				return nil, err
			}
			c.ManifestPath = resolved
		}
		m, err := model.LoadManifest(c.ManifestPath)
		if err != nil {
			return nil, err
		}
		if c.SamplingRate > 0 {
			m.SamplingRate = c.SamplingRate
		}
		return m, nil
	}

	name := strings.TrimSuffix(filepath.Base(c.SamplesPath), filepath.Ext(c.SamplesPath))
	m := &model.RecordingManifest{
		Name:                name,
		SampleFile:          c.SamplesPath,
		Format:              model.SampleFormat(c.Format),
		TotalChannels:       c.Channels,
		SamplingRate:        c.SamplingRate,
		SpikeTimesFile:      c.SpikeTimesPath,
		SpikeChannelsFile:   c.SpikeChannelsPath,
		SpikeCategoriesFile: c.SpikeCategoriesPath,
		SampleTimesFile:     c.SampleTimesPath,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// resolveManifestDir scans a directory for recording manifests and returns
// the single match. Multiple recordings need an explicit manifest path.
func resolveManifestDir(dir string) (string, error) {
	bundles, err := scanner.NewBundleScanner(dir).Discover()
	if err != nil {
		return "", fmt.Errorf("scan %s: %w", dir, err)
	}
	switch len(bundles) {
	case 0:
		return "", fmt.Errorf("no recording manifest found under %s", dir)
	case 1:
		return bundles[0].Path, nil
	default:
		names := make([]string, len(bundles))
		for i, b := range bundles {
			names[i] = b.Manifest.Name
		}
		return "", fmt.Errorf("%d recordings under %s (%s), pass the manifest path directly",
			len(bundles), dir, strings.Join(names, ", "))
	}
}
