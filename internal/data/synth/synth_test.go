package synth

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ephyslab/sweepscope/internal/core/model"
	"github.com/ephyslab/sweepscope/internal/data/loader"
)

func TestGenerateLoadableBundle(t *testing.T) {
	dir := t.TempDir()
	manifestPath, err := Generate(dir, Params{
		Name:            "synthetic-test",
		Channels:        4,
		SamplingRate:    1000,
		DurationSeconds: 0.5,
		Format:          model.FormatInt16,
		SpikeRateHz:     20,
		Categories:      3,
		Seed:            42,
	})
	require.NoError(t, err)

	m, err := model.LoadManifest(manifestPath)
	require.NoError(t, err)
	assert.Equal(t, "synthetic-test", m.Name)
	assert.NotEmpty(t, m.ID)

	bundle, err := loader.NewLoader(4).LoadBundle(m)
	require.NoError(t, err)

	assert.Equal(t, 500, bundle.Samples.SamplesPerChannel())
	assert.Equal(t, 4, bundle.Samples.TotalChannels())
	assert.Greater(t, bundle.Spikes.Len(), 0)
	assert.Equal(t, 500, bundle.Table.Len())

	// Spikes are sorted, in range, and categorized within bounds.
	prev := 0.0
	for i := 0; i < bundle.Spikes.Len(); i++ {
		at := bundle.Spikes.Time(i)
		assert.GreaterOrEqual(t, at, prev)
		assert.Less(t, at, 0.5)
		assert.Less(t, bundle.Spikes.Channel(i), 4)
		assert.Less(t, bundle.Spikes.Category(i), 3)
		prev = at
	}

	// The waveform is a visible signal, not silence.
	data := bundle.Samples.ChannelData(0)
	var peak float64
	for _, v := range data {
		if v > peak {
			peak = v
		}
	}
	assert.Greater(t, peak, 500.0)
}

func TestGenerateDeterministic(t *testing.T) {
	p := Params{
		Channels:        2,
		SamplingRate:    1000,
		DurationSeconds: 0.1,
		Format:          model.FormatFloat32,
		SpikeRateHz:     10,
		Categories:      2,
		Seed:            7,
	}

	dirA, dirB := t.TempDir(), t.TempDir()
	_, err := Generate(dirA, p)
	require.NoError(t, err)
	_, err = Generate(dirB, p)
	require.NoError(t, err)

	for _, name := range []string{"samples.f32", "spike_times.f32", "spike_channels.u16"} {
		a, err := os.ReadFile(dirA + "/" + name)
		require.NoError(t, err)
		b, err := os.ReadFile(dirB + "/" + name)
		require.NoError(t, err)
		assert.Equal(t, a, b, "same seed must reproduce %s", name)
	}
}

func TestGenerateWithoutSpikes(t *testing.T) {
	dir := t.TempDir()
	manifestPath, err := Generate(dir, Params{
		Channels:        2,
		SamplingRate:    1000,
		DurationSeconds: 0.1,
		Format:          model.FormatFloat32,
		Seed:            1,
	})
	require.NoError(t, err)

	m, err := model.LoadManifest(manifestPath)
	require.NoError(t, err)
	assert.False(t, m.HasSpikes())

	bundle, err := loader.NewLoader(1).LoadBundle(m)
	require.NoError(t, err)
	assert.Nil(t, bundle.Spikes)
	assert.InDelta(t, 0.001, bundle.Table.TimeAt(1), 1e-9, "synthetic table at the manifest rate")
}

func TestGenerateValidation(t *testing.T) {
	_, err := Generate(t.TempDir(), Params{Channels: 0, SamplingRate: 1000, DurationSeconds: 1, Format: model.FormatInt16})
	assert.Error(t, err)

	_, err = Generate(t.TempDir(), Params{Channels: 1, SamplingRate: 1000, DurationSeconds: 1, Format: "float64"})
	assert.Error(t, err)
}
