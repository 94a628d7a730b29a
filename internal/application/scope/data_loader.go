package scope

import (
	"fmt"

	"github.com/ephyslab/sweepscope/internal/core/model"
	"github.com/ephyslab/sweepscope/internal/data/loader"
	"github.com/ephyslab/sweepscope/internal/util"
)

// DataLoader handles bundle loading for the viewer, including the reloads the
// watcher triggers.
type DataLoader struct {
	config *Config
	loader *loader.Loader
}

// NewDataLoader creates a new DataLoader instance
func NewDataLoader(config *Config) *DataLoader {
	ldr := loader.NewLoader(config.Concurrency)
	ldr.Truncate = config.Truncate
	return &DataLoader{
		config: config,
		loader: ldr,
	}
}

// Load reads the manifest and the full bundle from disk. Spike sources are
// stripped unless the overlay was requested, so a plain viewing session never
// pays for spike arrays it will not draw.
func (dl *DataLoader) Load() (*loader.Bundle, error) {
	m, err := dl.config.Manifest()
	if err != nil {
		return nil, err
	}

	if !dl.config.ShowEvents && m.HasSpikes() {
		util.LogDebug(fmt.Sprintf("Skipping spike sources for %s, overlay not requested", m.Name))
		stripped := *m
		stripped.SpikeTimesFile = ""
		stripped.SpikeChannelsFile = ""
		stripped.SpikeCategoriesFile = ""
		m = &stripped
	}

	bundle, err := dl.loader.LoadBundle(m)
	if err != nil {
		return nil, err
	}

	if err := dl.clampChannelRange(bundle); err != nil {
		return nil, err
	}
	return bundle, nil
}

// clampChannelRange resolves the open-ended --last sentinel against the
// loaded recording and rejects ranges outside it.
func (dl *DataLoader) clampChannelRange(bundle *loader.Bundle) error {
	total := bundle.Samples.TotalChannels()
	if dl.config.LastChannel == -1 {
		dl.config.LastChannel = total - 1
	}
	if dl.config.FirstChannel >= total {
		return fmt.Errorf("--first %d outside recording with %d channels", dl.config.FirstChannel, total)
	}
	if dl.config.LastChannel >= total {
		return fmt.Errorf("--last %d outside recording with %d channels", dl.config.LastChannel, total)
	}
	return nil
}

// WatchTargets lists the files a live session should watch for changes.
func (dl *DataLoader) WatchTargets(bundle *loader.Bundle) []string {
	files := bundle.SourceFiles()
	if dl.config.ManifestPath != "" {
		files = append(files, dl.config.ManifestPath)
	}
	return files
}

// Manifest re-reads the manifest for reload paths that need fresh metadata.
func (dl *DataLoader) Manifest() (*model.RecordingManifest, error) {
	return dl.config.Manifest()
}
