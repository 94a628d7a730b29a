package store

import "fmt"

// SampleStore holds one recording's raw samples as a channel-major-interleaved
// flat buffer: sample t of channel c lives at t*totalChannels + c. It is
// read-only after load; the sweep engine and the audio monitor share it
// without locking.
type SampleStore struct {
	samples           []float32
	totalChannels     int
	samplesPerChannel int
}

// NewSampleStore wraps a flat interleaved buffer. The buffer length must be
// an exact multiple of totalChannels; the loader enforces that before calling.
func NewSampleStore(samples []float32, totalChannels int) (*SampleStore, error) {
	if totalChannels <= 0 {
		return nil, fmt.Errorf("total channels must be positive, got %d", totalChannels)
	}
	if len(samples)%totalChannels != 0 {
		return nil, fmt.Errorf("sample count %d is not a multiple of %d channels", len(samples), totalChannels)
	}
	return &SampleStore{
		samples:           samples,
		totalChannels:     totalChannels,
		samplesPerChannel: len(samples) / totalChannels,
	}, nil
}

// At returns the sample at time step t for channel c. Out-of-range indexes
// are a programming error and panic via the slice bounds check.
func (s *SampleStore) At(t, c int) float32 {
	return s.samples[t*s.totalChannels+c]
}

// TotalChannels returns the recorded channel count.
func (s *SampleStore) TotalChannels() int { return s.totalChannels }

// SamplesPerChannel returns the number of time steps per channel.
func (s *SampleStore) SamplesPerChannel() int { return s.samplesPerChannel }

// ChannelData copies one channel out of the interleaved buffer. Used by the
// stats pipeline and the WAV exporter, not by the per-frame path.
func (s *SampleStore) ChannelData(c int) []float64 {
	out := make([]float64, s.samplesPerChannel)
	for t := 0; t < s.samplesPerChannel; t++ {
		out[t] = float64(s.samples[t*s.totalChannels+c])
	}
	return out
}

// ChannelRange copies samples [from, to) of one channel.
func (s *SampleStore) ChannelRange(c, from, to int) []float64 {
	if from < 0 {
		from = 0
	}
	if to > s.samplesPerChannel {
		to = s.samplesPerChannel
	}
	if to <= from {
		return nil
	}
	out := make([]float64, to-from)
	for t := from; t < to; t++ {
		out[t-from] = float64(s.samples[t*s.totalChannels+c])
	}
	return out
}

// SpikeStore holds the three parallel spike arrays: timestamps in seconds,
// source channels, and category ids. Read-only after load.
type SpikeStore struct {
	times      []float32
	channels   []uint16
	categories []uint16
}

// NewSpikeStore wraps the parallel arrays. Times and channels must be the
// same length; categories may be empty (category 0 for every spike) but when
// present must match too.
func NewSpikeStore(times []float32, channels []uint16, categories []uint16) (*SpikeStore, error) {
	if len(times) != len(channels) {
		return nil, fmt.Errorf("spike arrays disagree: %d times vs %d channels", len(times), len(channels))
	}
	if len(categories) > 0 && len(categories) != len(times) {
		return nil, fmt.Errorf("spike arrays disagree: %d times vs %d categories", len(times), len(categories))
	}
	return &SpikeStore{times: times, channels: channels, categories: categories}, nil
}

// Len returns the spike count.
func (s *SpikeStore) Len() int {
	if s == nil {
		return 0
	}
	return len(s.times)
}

// Time returns spike i's timestamp in recording seconds.
func (s *SpikeStore) Time(i int) float64 { return float64(s.times[i]) }

// Channel returns spike i's source channel.
func (s *SpikeStore) Channel(i int) int { return int(s.channels[i]) }

// Category returns spike i's category id, 0 when no category array was loaded.
func (s *SpikeStore) Category(i int) int {
	if len(s.categories) == 0 {
		return 0
	}
	return int(s.categories[i])
}
