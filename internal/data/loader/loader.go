package loader

import (
	"fmt"
	"sync"
	"time"

	"github.com/ephyslab/sweepscope/internal/core/model"
	"github.com/ephyslab/sweepscope/internal/core/store"
	"github.com/ephyslab/sweepscope/internal/core/timebase"
	"github.com/ephyslab/sweepscope/internal/util"
)

// Loader reads a recording bundle's raw files into the in-memory stores. The
// independent files (samples, spike arrays, time table) load concurrently
// under a semaphore.
type Loader struct {
	concurrency int

	// Truncate drops a trailing partial time step instead of rejecting the
	// sample file. The dropped byte count is logged either way.
	Truncate bool
}

// Bundle is a fully loaded recording: stores ready for the sweep engine plus
// the manifest they came from.
type Bundle struct {
	Manifest *model.RecordingManifest
	Samples  *store.SampleStore
	Spikes   *store.SpikeStore // nil when the manifest declares no spike sources
	Table    *timebase.SampleTimeTable
}

// NewLoader creates a loader with the given file-read concurrency.
func NewLoader(concurrency int) *Loader {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Loader{concurrency: concurrency}
}

// SourceFiles lists every on-disk file the bundle depends on. The watcher
// subscribes to exactly this set.
func (b *Bundle) SourceFiles() []string {
	m := b.Manifest
	files := []string{m.SampleFile}
	for _, f := range []string{m.SpikeTimesFile, m.SpikeChannelsFile, m.SpikeCategoriesFile, m.SampleTimesFile} {
		if f != "" {
			files = append(files, f)
		}
	}
	return files
}

// LoadBundle reads every file the manifest references and cross-validates the
// results. All files load even if one fails; the first error wins.
func (l *Loader) LoadBundle(m *model.RecordingManifest) (*Bundle, error) {
	start := time.Now()
	util.LogDebug(fmt.Sprintf("Loading bundle %s (%d channels at %s)",
		m.Name, m.TotalChannels, util.FormatHertz(m.SamplingRate)))

	var (
		samples     []float32
		spikeTimes  []float32
		spikeChans  []uint16
		spikeCats   []uint16
		sampleTimes []float32
	)

	type task struct {
		name string
		run  func() error
	}
	tasks := []task{
		{"samples", func() (err error) { samples, err = l.readSamples(m); return }},
	}
	if m.HasSpikes() {
		tasks = append(tasks,
			task{"spike times", func() (err error) { spikeTimes, err = ReadFloat32File(m.SpikeTimesFile); return }},
			task{"spike channels", func() (err error) { spikeChans, err = ReadUint16File(m.SpikeChannelsFile); return }},
		)
		if m.SpikeCategoriesFile != "" {
			tasks = append(tasks,
				task{"spike categories", func() (err error) { spikeCats, err = ReadUint16File(m.SpikeCategoriesFile); return }})
		}
	}
	if m.SampleTimesFile != "" {
		tasks = append(tasks,
			task{"sample times", func() (err error) { sampleTimes, err = ReadFloat32File(m.SampleTimesFile); return }})
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, l.concurrency)
	errs := make(chan error, len(tasks))

	for _, t := range tasks {
		wg.Add(1)
		go func(t task) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			fileStart := time.Now()
			if err := t.run(); err != nil {
				errs <- fmt.Errorf("load %s: %w", t.name, err)
				return
			}
			util.LogDebug(fmt.Sprintf("Loaded %s in %v", t.name, time.Since(fileStart)))
		}(t)
	}
	wg.Wait()
	close(errs)
	if err := <-errs; err != nil {
		return nil, err
	}

	bundle, err := l.assemble(m, samples, spikeTimes, spikeChans, spikeCats, sampleTimes)
	if err != nil {
		return nil, err
	}

	util.LogInfo(fmt.Sprintf("Bundle %s loaded in %v: %d samples/channel, %d spikes",
		m.Name, time.Since(start), bundle.Samples.SamplesPerChannel(), bundle.Spikes.Len()))
	return bundle, nil
}

// readSamples decodes the raw sample file to float32 regardless of on-disk
// format and enforces whole-time-step alignment.
func (l *Loader) readSamples(m *model.RecordingManifest) ([]float32, error) {
	var samples []float32
	switch m.Format {
	case model.FormatFloat32:
		raw, err := ReadFloat32File(m.SampleFile)
		if err != nil {
			return nil, err
		}
		samples = raw
	case model.FormatInt16:
		raw, err := ReadInt16File(m.SampleFile)
		if err != nil {
			return nil, err
		}
		samples = make([]float32, len(raw))
		for i, v := range raw {
			samples[i] = float32(v)
		}
	default:
		return nil, fmt.Errorf("unknown sample format %q", m.Format)
	}

	if rem := len(samples) % m.TotalChannels; rem != 0 {
		dropped := rem * m.Format.BytesPerSample()
		if !l.Truncate {
			return nil, fmt.Errorf("%s: %d values is not a multiple of %d channels (%d trailing bytes); a partial write or wrong channel count",
				m.SampleFile, len(samples), m.TotalChannels, dropped)
		}
		util.LogWarn(fmt.Sprintf("Truncating %s: dropping %d trailing values (%d bytes) of a partial time step",
			m.SampleFile, rem, dropped))
		samples = samples[:len(samples)-rem]
	}
	return samples, nil
}

// assemble cross-validates the loaded arrays and builds the stores.
func (l *Loader) assemble(m *model.RecordingManifest, samples, spikeTimes []float32, spikeChans, spikeCats []uint16, sampleTimes []float32) (*Bundle, error) {
	sampleStore, err := store.NewSampleStore(samples, m.TotalChannels)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m.SampleFile, err)
	}
	samplesPerChannel := sampleStore.SamplesPerChannel()
	if samplesPerChannel == 0 {
		return nil, fmt.Errorf("%s: recording is empty", m.SampleFile)
	}

	var table *timebase.SampleTimeTable
	if sampleTimes != nil {
		table, err = timebase.New(sampleTimes, samplesPerChannel)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m.SampleTimesFile, err)
		}
	} else {
		table = timebase.Synthetic(samplesPerChannel, m.SamplingRate)
	}

	var spikes *store.SpikeStore
	if m.HasSpikes() {
		spikes, err = store.NewSpikeStore(spikeTimes, spikeChans, spikeCats)
		if err != nil {
			return nil, fmt.Errorf("spike files for %s: %w", m.Name, err)
		}
	}

	return &Bundle{
		Manifest: m,
		Samples:  sampleStore,
		Spikes:   spikes,
		Table:    table,
	}, nil
}
