package export

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ephyslab/sweepscope/internal/core/model"
	"github.com/ephyslab/sweepscope/internal/data/loader"
	"github.com/ephyslab/sweepscope/internal/util"
)

// WavOptions select what to export.
type WavOptions struct {
	FirstChannel int
	LastChannel  int     // inclusive
	FromSeconds  float64 // 0 means recording start
	ToSeconds    float64 // 0 means recording end
}

// WriteWav exports a channel range of a loaded bundle as 16-bit PCM, one WAV
// channel per recording channel. Int16 recordings pass through untouched;
// float32 recordings are normalized by the exported peak so quiet probes stay
// audible.
func WriteWav(bundle *loader.Bundle, path string, opts WavOptions) error {
	start := time.Now()
	m := bundle.Manifest
	samples := bundle.Samples

	if opts.FirstChannel < 0 || opts.LastChannel < opts.FirstChannel || opts.LastChannel >= m.TotalChannels {
		return fmt.Errorf("invalid export channel range [%d, %d] for %d channels",
			opts.FirstChannel, opts.LastChannel, m.TotalChannels)
	}

	from, to, err := sampleBounds(samples.SamplesPerChannel(), m.SamplingRate, opts)
	if err != nil {
		return err
	}

	nchannels := opts.LastChannel - opts.FirstChannel + 1
	nframes := to - from

	scale := 1.0
	if m.Format == model.FormatFloat32 {
		scale = normalizationScale(bundle, from, to, opts)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sr := int(math.Round(m.SamplingRate))
	enc := wav.NewEncoder(f, sr, 16, nchannels, 1)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: nchannels,
			SampleRate:  sr,
		},
		Data:           make([]int, nframes*nchannels),
		SourceBitDepth: 16,
	}
	for t := from; t < to; t++ {
		for c := 0; c < nchannels; c++ {
			v := float64(samples.At(t, opts.FirstChannel+c)) * scale
			buf.Data[(t-from)*nchannels+c] = clampInt16(v)
		}
	}

	if err := enc.Write(buf); err != nil {
		enc.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize %s: %w", path, err)
	}

	util.LogInfo(fmt.Sprintf("Exported %d channels, %s to %s in %v",
		nchannels, util.FormatSeconds(float64(nframes)/m.SamplingRate), path, time.Since(start)))
	return nil
}

func sampleBounds(samplesPerChannel int, samplingRate float64, opts WavOptions) (from, to int, err error) {
	from = int(math.Round(opts.FromSeconds * samplingRate))
	to = samplesPerChannel
	if opts.ToSeconds > 0 {
		to = int(math.Round(opts.ToSeconds * samplingRate))
	}
	if from < 0 {
		from = 0
	}
	if to > samplesPerChannel {
		to = samplesPerChannel
	}
	if to <= from {
		return 0, 0, fmt.Errorf("empty export range [%gs, %gs]", opts.FromSeconds, opts.ToSeconds)
	}
	return from, to, nil
}

// normalizationScale maps the exported peak amplitude to full scale. A silent
// range exports as silence instead of dividing by zero.
func normalizationScale(bundle *loader.Bundle, from, to int, opts WavOptions) float64 {
	peak := 0.0
	for c := opts.FirstChannel; c <= opts.LastChannel; c++ {
		for t := from; t < to; t++ {
			if v := math.Abs(float64(bundle.Samples.At(t, c))); v > peak {
				peak = v
			}
		}
	}
	if peak == 0 {
		return 0
	}
	return 32767.0 / peak
}

func clampInt16(v float64) int {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int(v)
}
