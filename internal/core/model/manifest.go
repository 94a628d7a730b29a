package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
)

// SampleFormat identifies the on-disk scalar encoding of a raw sample file.
type SampleFormat string

const (
	FormatInt16   SampleFormat = "int16"
	FormatFloat32 SampleFormat = "float32"
)

// Valid reports whether the format is one the loader knows how to decode.
func (f SampleFormat) Valid() bool {
	return f == FormatInt16 || f == FormatFloat32
}

// BytesPerSample returns the width of one scalar in bytes.
func (f SampleFormat) BytesPerSample() int {
	switch f {
	case FormatInt16:
		return 2
	case FormatFloat32:
		return 4
	default:
		return 0
	}
}

// RecordingManifest describes a recording bundle on disk: the raw sample
// array plus the optional spike arrays and sample time table. File paths are
// stored relative to the manifest and resolved against its directory on load.
type RecordingManifest struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	SampleFile    string       `json:"sampleFile"`
	Format        SampleFormat `json:"format"`
	TotalChannels int          `json:"totalChannels"`
	SamplingRate  float64      `json:"samplingRate"`

	// Spike overlay sources, optional. All three plus the time table must be
	// present for overlays to load.
	SpikeTimesFile      string `json:"spikeTimesFile,omitempty"`
	SpikeChannelsFile   string `json:"spikeChannelsFile,omitempty"`
	SpikeCategoriesFile string `json:"spikeCategoriesFile,omitempty"`
	SampleTimesFile     string `json:"sampleTimesFile,omitempty"`

	Notes string `json:"notes,omitempty"`
}

// LoadManifest reads and validates a manifest file, resolving all referenced
// paths relative to the manifest's directory.
func LoadManifest(path string) (*RecordingManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}

	var m RecordingManifest
	if err := sonic.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	m.SampleFile = resolvePath(dir, m.SampleFile)
	m.SpikeTimesFile = resolvePath(dir, m.SpikeTimesFile)
	m.SpikeChannelsFile = resolvePath(dir, m.SpikeChannelsFile)
	m.SpikeCategoriesFile = resolvePath(dir, m.SpikeCategoriesFile)
	m.SampleTimesFile = resolvePath(dir, m.SampleTimesFile)

	return &m, nil
}

// Save writes the manifest as indented JSON.
func (m *RecordingManifest) Save(path string) error {
	data, err := sonic.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write manifest %s: %w", path, err)
	}
	return nil
}

// Validate checks the fields the loader depends on.
func (m *RecordingManifest) Validate() error {
	if m.SampleFile == "" {
		return fmt.Errorf("missing sampleFile")
	}
	if !m.Format.Valid() {
		return fmt.Errorf("unknown sample format %q", m.Format)
	}
	if m.TotalChannels <= 0 {
		return fmt.Errorf("totalChannels must be positive, got %d", m.TotalChannels)
	}
	if m.SamplingRate <= 0 {
		return fmt.Errorf("samplingRate must be positive, got %g", m.SamplingRate)
	}
	if m.HasSpikes() {
		if m.SpikeTimesFile == "" || m.SpikeChannelsFile == "" {
			return fmt.Errorf("spike sources require both spikeTimesFile and spikeChannelsFile")
		}
		if m.SampleTimesFile == "" {
			return fmt.Errorf("spike sources require sampleTimesFile for projection")
		}
	}
	return nil
}

// HasSpikes reports whether any spike source is declared.
func (m *RecordingManifest) HasSpikes() bool {
	return m.SpikeTimesFile != "" || m.SpikeChannelsFile != "" || m.SpikeCategoriesFile != ""
}

func resolvePath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
