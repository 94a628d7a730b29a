package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadStripsSpikesWithoutOverlay(t *testing.T) {
	cfg := validConfig(bundleFixture(t))
	require.NoError(t, cfg.Validate())

	bundle, err := NewDataLoader(cfg).Load()
	require.NoError(t, err)

	assert.Nil(t, bundle.Spikes, "spike arrays should not be loaded without the overlay")
	assert.NotNil(t, bundle.Samples)
}

func TestLoadKeepsSpikesWithOverlay(t *testing.T) {
	cfg := validConfig(bundleFixture(t))
	cfg.ShowEvents = true
	require.NoError(t, cfg.Validate())

	bundle, err := NewDataLoader(cfg).Load()
	require.NoError(t, err)

	require.NotNil(t, bundle.Spikes)
	assert.Greater(t, bundle.Spikes.Len(), 0)
}

func TestLoadResolvesOpenChannelRange(t *testing.T) {
	cfg := validConfig(bundleFixture(t))
	cfg.FirstChannel = 1
	require.NoError(t, cfg.Validate())

	_, err := NewDataLoader(cfg).Load()
	require.NoError(t, err)

	// The -1 sentinel resolves against the loaded recording.
	assert.Equal(t, 3, cfg.LastChannel)
}

func TestLoadRejectsRangeOutsideRecording(t *testing.T) {
	cfg := validConfig(bundleFixture(t))
	cfg.FirstChannel = 9
	require.NoError(t, cfg.Validate())

	_, err := NewDataLoader(cfg).Load()
	assert.ErrorContains(t, err, "--first 9")
}

func TestWatchTargetsIncludeManifest(t *testing.T) {
	cfg := validConfig(bundleFixture(t))
	cfg.ShowEvents = true
	require.NoError(t, cfg.Validate())

	dl := NewDataLoader(cfg)
	bundle, err := dl.Load()
	require.NoError(t, err)

	targets := dl.WatchTargets(bundle)
	assert.Contains(t, targets, cfg.ManifestPath)
	assert.Contains(t, targets, bundle.Manifest.SampleFile)
	assert.Contains(t, targets, bundle.Manifest.SpikeTimesFile)
}
