package analyzer

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/ephyslab/sweepscope/internal/data/cache"
	"github.com/ephyslab/sweepscope/internal/data/loader"
	"github.com/ephyslab/sweepscope/internal/data/stats"
	"github.com/ephyslab/sweepscope/internal/presentation/formatter"
	"github.com/ephyslab/sweepscope/internal/presentation/interaction"
	"github.com/ephyslab/sweepscope/internal/util"

	"github.com/ephyslab/sweepscope/internal/core/model"
)

// Config drives one info run.
type Config struct {
	Manifest     *model.RecordingManifest
	CacheDir     string
	OutputFormat string
	SortField    string
	Limit        int
	Truncate     bool
	Concurrency  int
	Output       io.Writer
}

// Analyzer runs the recording report pipeline: cache lookup, load, per-channel
// statistics, sort/limit, format.
type Analyzer struct {
	config     *Config
	cache      *cache.ReportCache
	loader     *loader.Loader
	calculator *stats.Calculator
	stats      *CacheStats
}

func New(config *Config) *Analyzer {
	if config.Concurrency == 0 {
		config.Concurrency = runtime.NumCPU()
	}
	if config.Output == nil {
		config.Output = os.Stdout
	}

	reportCache, err := cache.NewReportCache(config.CacheDir)
	if err != nil {
		util.LogWarn(fmt.Sprintf("Report cache unavailable, every run recomputes: %v", err))
		reportCache = nil
	}

	ldr := loader.NewLoader(config.Concurrency)
	ldr.Truncate = config.Truncate

	return &Analyzer{
		config:     config,
		cache:      reportCache,
		loader:     ldr,
		calculator: stats.NewCalculator(config.Concurrency),
		stats:      NewCacheStats(),
	}
}

// ClearCache drops every cached report so the next run recomputes from disk.
func (a *Analyzer) ClearCache() {
	if a.cache == nil {
		return
	}
	if err := a.cache.Clear(); err != nil {
		util.LogWarn(fmt.Sprintf("Failed to clear report cache: %v", err))
		return
	}
	util.LogInfo("Report cache cleared")
}

// recordingID keys the cache. Manifests written by synth carry a stable ID;
// ad-hoc flag-built manifests fall back to the sample path.
func recordingID(m *model.RecordingManifest) string {
	if m.ID != "" {
		return m.ID
	}
	return m.SampleFile
}

func (a *Analyzer) Run() error {
	built, err := a.BuildReport()
	if err != nil {
		return err
	}

	// Sort and limit work on a copy so a cached report is never mutated.
	report := *built
	report.Channels = append([]model.ChannelStats(nil), built.Channels...)

	sortStart := time.Now()
	field, err := interaction.ParseSortField(a.config.SortField)
	if err != nil {
		return err
	}
	sorter := interaction.NewChannelSorter()
	sorter.SetField(field)
	sorter.Sort(report.Channels)

	if a.config.Limit > 0 && len(report.Channels) > a.config.Limit {
		util.LogDebug(fmt.Sprintf("Applying channel limit: %d -> %d", len(report.Channels), a.config.Limit))
		report.Channels = report.Channels[:a.config.Limit]
	}
	util.LogDebug(fmt.Sprintf("Sort and limit duration: %v", time.Since(sortStart)))

	f, err := formatter.GetFormatter(a.config.OutputFormat, a.config.Output)
	if err != nil {
		return err
	}
	return f.Format(&report)
}

// BuildReport returns the recording report, from cache when the sample file
// is unchanged since it was computed.
func (a *Analyzer) BuildReport() (*model.RecordingReport, error) {
	startTime := time.Now()
	m := a.config.Manifest
	id := recordingID(m)

	if a.cache != nil {
		result := a.cache.Get(id)
		if result.Found {
			a.stats.IncrementHit()
			util.LogDebug(fmt.Sprintf("Report cache hit for %s, lookup duration: %v", m.Name, time.Since(startTime)))
			return result.Report, nil
		}
		a.stats.IncrementMiss(m.SampleFile, result.MissReason)
	}

	loadStart := time.Now()
	bundle, err := a.loader.LoadBundle(m)
	if err != nil {
		a.stats.IncrementFailure()
		return nil, fmt.Errorf("load bundle: %w", err)
	}
	util.LogDebug(fmt.Sprintf("Bundle load duration: %v", time.Since(loadStart)))

	statsStart := time.Now()
	report := a.calculator.BuildReport(bundle)
	util.LogDebug(fmt.Sprintf("Statistics duration: %v for %d channels", time.Since(statsStart), len(report.Channels)))

	if a.cache != nil {
		if err := a.cache.Set(id, m.SampleFile, report); err != nil {
			util.LogWarn(fmt.Sprintf("Failed to save report cache for %s: %v", m.Name, err))
		}
	}

	a.stats.LogSummary()
	util.LogDebug(fmt.Sprintf("Total report duration: %v", time.Since(startTime)))
	return report, nil
}
