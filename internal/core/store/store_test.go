package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSampleStore(t *testing.T) {
	_, err := NewSampleStore(make([]float32, 10), 3)
	assert.Error(t, err, "10 samples cannot split into 3 channels")

	_, err = NewSampleStore(make([]float32, 10), 0)
	assert.Error(t, err)

	s, err := NewSampleStore(make([]float32, 12), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, s.TotalChannels())
	assert.Equal(t, 4, s.SamplesPerChannel())
}

func TestSampleStoreInterleavedAddressing(t *testing.T) {
	// 2 channels, 3 time steps, channel-major interleaved:
	// t0c0 t0c1 t1c0 t1c1 t2c0 t2c1
	s, err := NewSampleStore([]float32{10, 20, 11, 21, 12, 22}, 2)
	require.NoError(t, err)

	assert.Equal(t, float32(10), s.At(0, 0))
	assert.Equal(t, float32(21), s.At(1, 1))
	assert.Equal(t, float32(12), s.At(2, 0))

	assert.Equal(t, []float64{20, 21, 22}, s.ChannelData(1))
	assert.Equal(t, []float64{11, 12}, s.ChannelRange(0, 1, 3))
	assert.Equal(t, []float64{11, 12}, s.ChannelRange(0, 1, 99), "range clamps to data")
	assert.Nil(t, s.ChannelRange(0, 3, 1))
}

func TestNewSpikeStore(t *testing.T) {
	_, err := NewSpikeStore([]float32{1, 2}, []uint16{0}, nil)
	assert.Error(t, err)

	_, err = NewSpikeStore([]float32{1, 2}, []uint16{0, 1}, []uint16{5})
	assert.Error(t, err)

	s, err := NewSpikeStore([]float32{0.5, 1.25}, []uint16{3, 7}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 1.25, s.Time(1))
	assert.Equal(t, 7, s.Channel(1))
	assert.Equal(t, 0, s.Category(1), "no category array means category 0")

	withCats, err := NewSpikeStore([]float32{0.5}, []uint16{3}, []uint16{9})
	require.NoError(t, err)
	assert.Equal(t, 9, withCats.Category(0))
}

func TestSpikeStoreNilLen(t *testing.T) {
	var s *SpikeStore
	assert.Equal(t, 0, s.Len())
}
