package loader

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ephyslab/sweepscope/internal/core/model"
)

func writeFloat32(t *testing.T, dir, name string, values []float32) string {
	t.Helper()
	raw := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(raw[i*4:], math.Float32bits(v))
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, raw, 0644))
	return path
}

func writeInt16(t *testing.T, dir, name string, values []int16) string {
	t.Helper()
	raw := make([]byte, len(values)*2)
	for i, v := range values {
		binary.LittleEndian.PutUint16(raw[i*2:], uint16(v))
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, raw, 0644))
	return path
}

func writeUint16(t *testing.T, dir, name string, values []uint16) string {
	t.Helper()
	raw := make([]byte, len(values)*2)
	for i, v := range values {
		binary.LittleEndian.PutUint16(raw[i*2:], v)
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, raw, 0644))
	return path
}

func TestReadFloat32File(t *testing.T) {
	dir := t.TempDir()
	path := writeFloat32(t, dir, "v.f32", []float32{1.5, -2.25, 0})

	values, err := ReadFloat32File(path)
	require.NoError(t, err)
	assert.Equal(t, []float32{1.5, -2.25, 0}, values)
}

func TestReadInt16FileRejectsOddSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "odd.i16")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3}, 0644))

	_, err := ReadInt16File(path)
	assert.ErrorContains(t, err, "not a multiple")
}

func TestLoadBundleInt16(t *testing.T) {
	dir := t.TempDir()
	// 2 channels, 3 time steps, interleaved.
	writeInt16(t, dir, "samples.i16", []int16{10, 20, 11, 21, 12, 22})

	m := &model.RecordingManifest{
		Name:          "rec",
		SampleFile:    filepath.Join(dir, "samples.i16"),
		Format:        model.FormatInt16,
		TotalChannels: 2,
		SamplingRate:  1000,
	}

	bundle, err := NewLoader(2).LoadBundle(m)
	require.NoError(t, err)

	assert.Equal(t, 3, bundle.Samples.SamplesPerChannel())
	assert.Equal(t, float32(11), bundle.Samples.At(1, 0))
	assert.Equal(t, float32(22), bundle.Samples.At(2, 1))
	assert.Nil(t, bundle.Spikes)

	// Synthetic time table at the manifest rate.
	assert.InDelta(t, 0.002, bundle.Table.TimeAt(2), 1e-9)
}

func TestLoadBundleRejectsPartialTimeStep(t *testing.T) {
	dir := t.TempDir()
	writeInt16(t, dir, "samples.i16", []int16{1, 2, 3, 4, 5}) // 2.5 steps of 2 channels

	m := &model.RecordingManifest{
		Name:          "rec",
		SampleFile:    filepath.Join(dir, "samples.i16"),
		Format:        model.FormatInt16,
		TotalChannels: 2,
		SamplingRate:  1000,
	}

	_, err := NewLoader(1).LoadBundle(m)
	assert.ErrorContains(t, err, "not a multiple of 2 channels")

	l := NewLoader(1)
	l.Truncate = true
	bundle, err := l.LoadBundle(m)
	require.NoError(t, err)
	assert.Equal(t, 2, bundle.Samples.SamplesPerChannel())
}

func TestLoadBundleWithSpikes(t *testing.T) {
	dir := t.TempDir()
	writeFloat32(t, dir, "samples.f32", []float32{0, 0, 0, 0, 0, 0, 0, 0})
	writeFloat32(t, dir, "spike_times.f32", []float32{0.001, 0.003})
	writeUint16(t, dir, "spike_channels.u16", []uint16{0, 1})
	writeUint16(t, dir, "spike_categories.u16", []uint16{2, 0})
	writeFloat32(t, dir, "sample_times.f32", []float32{0, 0.001, 0.002, 0.003})

	m := &model.RecordingManifest{
		Name:                "rec",
		SampleFile:          filepath.Join(dir, "samples.f32"),
		Format:              model.FormatFloat32,
		TotalChannels:       2,
		SamplingRate:        1000,
		SpikeTimesFile:      filepath.Join(dir, "spike_times.f32"),
		SpikeChannelsFile:   filepath.Join(dir, "spike_channels.u16"),
		SpikeCategoriesFile: filepath.Join(dir, "spike_categories.u16"),
		SampleTimesFile:     filepath.Join(dir, "sample_times.f32"),
	}

	bundle, err := NewLoader(4).LoadBundle(m)
	require.NoError(t, err)

	require.Equal(t, 2, bundle.Spikes.Len())
	assert.Equal(t, 2, bundle.Spikes.Category(0))
	assert.InDelta(t, 0.003, bundle.Table.TimeAt(3), 1e-9)
	assert.Len(t, bundle.SourceFiles(), 5)
}

func TestLoadBundleCrossValidation(t *testing.T) {
	dir := t.TempDir()
	writeFloat32(t, dir, "samples.f32", []float32{0, 0, 0, 0})
	writeFloat32(t, dir, "spike_times.f32", []float32{0.001, 0.003})
	writeUint16(t, dir, "spike_channels.u16", []uint16{0}) // length mismatch
	writeFloat32(t, dir, "sample_times.f32", []float32{0, 0.001})

	m := &model.RecordingManifest{
		Name:              "rec",
		SampleFile:        filepath.Join(dir, "samples.f32"),
		Format:            model.FormatFloat32,
		TotalChannels:     2,
		SamplingRate:      1000,
		SpikeTimesFile:    filepath.Join(dir, "spike_times.f32"),
		SpikeChannelsFile: filepath.Join(dir, "spike_channels.u16"),
		SampleTimesFile:   filepath.Join(dir, "sample_times.f32"),
	}

	_, err := NewLoader(4).LoadBundle(m)
	assert.ErrorContains(t, err, "spike arrays disagree")
}

func TestLoadBundleTimeTableLengthMismatch(t *testing.T) {
	dir := t.TempDir()
	writeFloat32(t, dir, "samples.f32", []float32{0, 0, 0, 0})
	writeFloat32(t, dir, "sample_times.f32", []float32{0, 0.001, 0.002}) // 3 entries for 2 steps

	m := &model.RecordingManifest{
		Name:            "rec",
		SampleFile:      filepath.Join(dir, "samples.f32"),
		Format:          model.FormatFloat32,
		TotalChannels:   2,
		SamplingRate:    1000,
		SampleTimesFile: filepath.Join(dir, "sample_times.f32"),
	}

	_, err := NewLoader(4).LoadBundle(m)
	assert.ErrorContains(t, err, "want 2")
}
