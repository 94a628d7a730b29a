package synth

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"

	"github.com/ephyslab/sweepscope/internal/core/model"
	"github.com/ephyslab/sweepscope/internal/util"
)

// Params control the generated recording. The same seed always produces
// byte-identical files, so bundles are reproducible across runs and usable as
// test fixtures.
type Params struct {
	Name            string
	Channels        int
	SamplingRate    float64
	DurationSeconds float64
	Format          model.SampleFormat
	SpikeRateHz     float64 // mean spikes per second per channel, 0 disables spikes
	Categories      int
	Seed            int64
}

// Validate checks the generator parameters.
func (p Params) Validate() error {
	if p.Channels <= 0 {
		return fmt.Errorf("channels must be positive, got %d", p.Channels)
	}
	if p.SamplingRate <= 0 {
		return fmt.Errorf("sampling rate must be positive, got %g", p.SamplingRate)
	}
	if p.DurationSeconds <= 0 {
		return fmt.Errorf("duration must be positive, got %g", p.DurationSeconds)
	}
	if !p.Format.Valid() {
		return fmt.Errorf("unknown sample format %q", p.Format)
	}
	if p.SpikeRateHz < 0 {
		return fmt.Errorf("spike rate must not be negative, got %g", p.SpikeRateHz)
	}
	return nil
}

// Generate writes a complete recording bundle into dir and returns the
// manifest path. Each channel carries a sine at a channel-dependent frequency
// plus white noise; spikes arrive as a per-channel Poisson process.
func Generate(dir string, p Params) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	rng := rand.New(rand.NewSource(p.Seed))
	samplesPerChannel := int(math.Round(p.DurationSeconds * p.SamplingRate))
	if samplesPerChannel < 1 {
		return "", fmt.Errorf("duration %gs at %g Hz spans no samples", p.DurationSeconds, p.SamplingRate)
	}

	name := p.Name
	if name == "" {
		name = "synthetic"
	}

	m := &model.RecordingManifest{
		ID:            uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%s-%d", name, p.Seed))).String(),
		Name:          name,
		SampleFile:    "samples." + extension(p.Format),
		Format:        p.Format,
		TotalChannels: p.Channels,
		SamplingRate:  p.SamplingRate,
		Notes:         fmt.Sprintf("synthetic recording, seed %d", p.Seed),
	}

	if err := writeSamples(filepath.Join(dir, m.SampleFile), p, samplesPerChannel, rng); err != nil {
		return "", err
	}

	if p.SpikeRateHz > 0 {
		m.SpikeTimesFile = "spike_times.f32"
		m.SpikeChannelsFile = "spike_channels.u16"
		m.SpikeCategoriesFile = "spike_categories.u16"
		m.SampleTimesFile = "sample_times.f32"
		if err := writeSpikes(dir, m, p, rng); err != nil {
			return "", err
		}
		if err := writeTimeTable(filepath.Join(dir, m.SampleTimesFile), samplesPerChannel, p.SamplingRate); err != nil {
			return "", err
		}
	}

	manifestPath := filepath.Join(dir, "manifest.json")
	if err := m.Save(manifestPath); err != nil {
		return "", err
	}

	util.LogInfo(fmt.Sprintf("Generated bundle %s: %d channels, %s for %s",
		name, p.Channels, util.FormatHertz(p.SamplingRate), util.FormatSeconds(p.DurationSeconds)))
	return manifestPath, nil
}

func extension(f model.SampleFormat) string {
	if f == model.FormatInt16 {
		return "i16"
	}
	return "f32"
}

// writeSamples emits the interleaved sample array. Amplitudes are sized so
// the default amplitude scale renders visible traces for either format.
func writeSamples(path string, p Params, samplesPerChannel int, rng *rand.Rand) error {
	const amplitude = 1000.0

	elem := p.Format.BytesPerSample()
	raw := make([]byte, samplesPerChannel*p.Channels*elem)

	freqs := make([]float64, p.Channels)
	phases := make([]float64, p.Channels)
	for c := range freqs {
		freqs[c] = 3 + 10*rng.Float64()
		phases[c] = 2 * math.Pi * rng.Float64()
	}

	for t := 0; t < samplesPerChannel; t++ {
		at := float64(t) / p.SamplingRate
		for c := 0; c < p.Channels; c++ {
			v := amplitude*math.Sin(2*math.Pi*freqs[c]*at+phases[c]) + amplitude*0.1*rng.NormFloat64()
			i := (t*p.Channels + c) * elem
			switch p.Format {
			case model.FormatInt16:
				binary.LittleEndian.PutUint16(raw[i:], uint16(int16(v)))
			case model.FormatFloat32:
				binary.LittleEndian.PutUint32(raw[i:], math.Float32bits(float32(v)))
			}
		}
	}

	return os.WriteFile(path, raw, 0644)
}

// writeSpikes emits the three parallel spike arrays sorted by time. Arrival
// times per channel are exponential inter-arrival draws.
func writeSpikes(dir string, m *model.RecordingManifest, p Params, rng *rand.Rand) error {
	type spike struct {
		time     float32
		channel  uint16
		category uint16
	}

	categories := p.Categories
	if categories < 1 {
		categories = 1
	}

	var spikes []spike
	for c := 0; c < p.Channels; c++ {
		at := rng.ExpFloat64() / p.SpikeRateHz
		for at < p.DurationSeconds {
			spikes = append(spikes, spike{
				time:     float32(at),
				channel:  uint16(c),
				category: uint16(rng.Intn(categories)),
			})
			at += rng.ExpFloat64() / p.SpikeRateHz
		}
	}
	sort.Slice(spikes, func(i, j int) bool { return spikes[i].time < spikes[j].time })

	times := make([]byte, len(spikes)*4)
	channels := make([]byte, len(spikes)*2)
	cats := make([]byte, len(spikes)*2)
	for i, s := range spikes {
		binary.LittleEndian.PutUint32(times[i*4:], math.Float32bits(s.time))
		binary.LittleEndian.PutUint16(channels[i*2:], s.channel)
		binary.LittleEndian.PutUint16(cats[i*2:], s.category)
	}

	if err := os.WriteFile(filepath.Join(dir, m.SpikeTimesFile), times, 0644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, m.SpikeChannelsFile), channels, 0644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, m.SpikeCategoriesFile), cats, 0644)
}

func writeTimeTable(path string, samplesPerChannel int, samplingRate float64) error {
	raw := make([]byte, samplesPerChannel*4)
	for i := 0; i < samplesPerChannel; i++ {
		binary.LittleEndian.PutUint32(raw[i*4:], math.Float32bits(float32(float64(i)/samplingRate)))
	}
	return os.WriteFile(path, raw, 0644)
}
