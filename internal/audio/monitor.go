package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/ephyslab/sweepscope/internal/core/store"
	"github.com/ephyslab/sweepscope/internal/util"
)

const outputRate = beep.SampleRate(44100)

// ChannelStreamer streams one recording channel as mono audio, looping at the
// end of the recording. Samples are normalized by the channel peak so int16
// and float32 recordings both land in [-1, 1].
type ChannelStreamer struct {
	mu      sync.Mutex
	samples *store.SampleStore
	channel int
	pos     int
	gain    float64
}

// NewChannelStreamer creates a streamer over one channel.
func NewChannelStreamer(samples *store.SampleStore, channel int) *ChannelStreamer {
	s := &ChannelStreamer{samples: samples}
	s.setChannelLocked(channel)
	return s
}

// SetChannel switches the audible channel and restarts from the top. Safe to
// call while the speaker is pulling samples.
func (s *ChannelStreamer) SetChannel(channel int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setChannelLocked(channel)
}

func (s *ChannelStreamer) setChannelLocked(channel int) {
	if channel < 0 || channel >= s.samples.TotalChannels() {
		return
	}
	s.channel = channel
	s.pos = 0

	peak := 0.0
	for t := 0; t < s.samples.SamplesPerChannel(); t++ {
		if v := math.Abs(float64(s.samples.At(t, channel))); v > peak {
			peak = v
		}
	}
	if peak > 0 {
		s.gain = 1 / peak
	} else {
		s.gain = 0
	}
}

// Channel returns the channel currently streaming.
func (s *ChannelStreamer) Channel() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.channel
}

// Stream fills the buffer with the channel's samples, identical in both ears,
// wrapping to the start at the end of the recording.
func (s *ChannelStreamer) Stream(out [][2]float64) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.samples.SamplesPerChannel()
	if n == 0 {
		return 0, false
	}
	for i := range out {
		v := float64(s.samples.At(s.pos, s.channel)) * s.gain
		out[i][0] = v
		out[i][1] = v
		s.pos++
		if s.pos == n {
			s.pos = 0
		}
	}
	return len(out), true
}

// Err implements beep.Streamer; the streamer never fails.
func (s *ChannelStreamer) Err() error { return nil }

// Monitor plays one channel of a recording through the speakers. Audio is a
// convenience on top of the visual sweep; any failure to open the output
// device logs a warning and the viewer runs silent.
type Monitor struct {
	streamer *ChannelStreamer
	rate     float64
	started  bool
}

// NewMonitor creates a monitor for the given recording. Nothing plays until
// Start.
func NewMonitor(samples *store.SampleStore, channel int, samplingRate float64) *Monitor {
	return &Monitor{
		streamer: NewChannelStreamer(samples, channel),
		rate:     samplingRate,
	}
}

// Start opens the output device and begins playback, resampling from the
// recording rate to the device rate.
func (m *Monitor) Start() error {
	if m.started {
		return nil
	}
	if err := speaker.Init(outputRate, outputRate.N(100*time.Millisecond)); err != nil {
		util.LogWarn(fmt.Sprintf("Audio monitor disabled, speaker init failed: %v", err))
		return err
	}

	recRate := beep.SampleRate(int(math.Round(m.rate)))
	speaker.Play(beep.Resample(4, recRate, outputRate, m.streamer))
	m.started = true
	util.LogInfo(fmt.Sprintf("Audio monitor playing channel %d at %s",
		m.streamer.Channel(), util.FormatHertz(m.rate)))
	return nil
}

// SetChannel switches the audible channel.
func (m *Monitor) SetChannel(channel int) {
	m.streamer.SetChannel(channel)
}

// Channel returns the audible channel.
func (m *Monitor) Channel() int { return m.streamer.Channel() }

// Close stops playback and releases the device.
func (m *Monitor) Close() {
	if m.started {
		speaker.Close()
		m.started = false
	}
}
