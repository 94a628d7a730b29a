package scope

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ephyslab/sweepscope/internal/core/constants"
	"github.com/ephyslab/sweepscope/internal/core/model"
	"github.com/ephyslab/sweepscope/internal/data/synth"
)

func bundleFixture(t *testing.T) string {
	t.Helper()
	path, err := synth.Generate(t.TempDir(), synth.Params{
		Name:            "scope-fixture",
		Channels:        4,
		SamplingRate:    1000,
		DurationSeconds: 0.5,
		Format:          model.FormatInt16,
		SpikeRateHz:     20,
		Categories:      2,
		Seed:            11,
	})
	require.NoError(t, err)
	return path
}

func validConfig(manifestPath string) *Config {
	return &Config{
		ManifestPath:  manifestPath,
		LastChannel:   -1,
		ListenChannel: -1,
	}
}

func TestValidateFillsDefaultsFromProfile(t *testing.T) {
	cfg := validConfig(bundleFixture(t))
	require.NoError(t, cfg.Validate())

	assert.Equal(t, constants.DefaultSpeedFactor, cfg.SpeedFactor)
	assert.Equal(t, constants.DefaultSweepDuration, cfg.SweepDuration)
	assert.Equal(t, constants.DefaultAmplitudeScale, cfg.AmplitudeScale)
	assert.Equal(t, constants.DefaultFrameRate, cfg.FrameRate)
	assert.Equal(t, constants.DefaultMarkSize, cfg.MarkSize)
	assert.Equal(t, constants.DefaultLayout, cfg.Layout)
	assert.Equal(t, constants.MaxLoadConcurrency, cfg.Concurrency)
}

func TestValidateKeepsExplicitTunables(t *testing.T) {
	cfg := validConfig(bundleFixture(t))
	cfg.Profile = "fast"
	cfg.SpeedFactor = 0.5
	require.NoError(t, cfg.Validate())

	// Explicit flag wins over the preset value.
	assert.Equal(t, 0.5, cfg.SpeedFactor)
}

func TestValidateRejectsBadInput(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no source", func(c *Config) { c.ManifestPath = "" }},
		{"negative speed", func(c *Config) { c.SpeedFactor = -1 }},
		{"fps out of range", func(c *Config) { c.FrameRate = 500 }},
		{"unknown layout", func(c *Config) { c.Layout = "spiral" }},
		{"unknown profile", func(c *Config) { c.Profile = "nonesuch" }},
		{"negative first", func(c *Config) { c.FirstChannel = -2 }},
		{"last before first", func(c *Config) { c.FirstChannel = 3; c.LastChannel = 1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig("recording.json")
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateRawFlagsRequireGeometry(t *testing.T) {
	cfg := &Config{SamplesPath: "samples.bin", LastChannel: -1, ListenChannel: -1}
	assert.Error(t, cfg.Validate(), "missing channels")

	cfg.Channels = 4
	assert.Error(t, cfg.Validate(), "missing rate")

	cfg.SamplingRate = 1000
	assert.Error(t, cfg.Validate(), "missing format")

	cfg.Format = "int16"
	assert.NoError(t, cfg.Validate())
}

func TestManifestFromRawFlags(t *testing.T) {
	cfg := &Config{
		SamplesPath:  "/data/session-042.bin",
		Format:       "float32",
		Channels:     8,
		SamplingRate: 30000,
		LastChannel:  -1,
	}
	require.NoError(t, cfg.Validate())

	m, err := cfg.Manifest()
	require.NoError(t, err)
	assert.Equal(t, "session-042", m.Name)
	assert.Equal(t, 8, m.TotalChannels)
	assert.Equal(t, model.FormatFloat32, m.Format)
	assert.False(t, m.HasSpikes())
}

func TestManifestRateOverride(t *testing.T) {
	cfg := validConfig(bundleFixture(t))
	cfg.SamplingRate = 2500
	require.NoError(t, cfg.Validate())

	m, err := cfg.Manifest()
	require.NoError(t, err)
	assert.Equal(t, 2500.0, m.SamplingRate)
}

func TestManifestFromDirectory(t *testing.T) {
	manifestPath := bundleFixture(t)
	cfg := validConfig(filepath.Dir(manifestPath))
	require.NoError(t, cfg.Validate())

	m, err := cfg.Manifest()
	require.NoError(t, err)
	assert.Equal(t, "scope-fixture", m.Name)
	assert.Equal(t, manifestPath, cfg.ManifestPath)
}

func TestManifestFromEmptyDirectoryFails(t *testing.T) {
	cfg := validConfig(t.TempDir())
	require.NoError(t, cfg.Validate())

	_, err := cfg.Manifest()
	assert.ErrorContains(t, err, "no recording manifest")
}

func TestLayoutStyle(t *testing.T) {
	cfg := &Config{Layout: "compact"}
	style, err := cfg.LayoutStyle()
	require.NoError(t, err)
	assert.Equal(t, 1, style)

	cfg.Layout = "FULL"
	style, err = cfg.LayoutStyle()
	require.NoError(t, err)
	assert.Equal(t, 0, style)
}
