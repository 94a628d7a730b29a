package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ephyslab/sweepscope/internal/analyzer"
	"github.com/ephyslab/sweepscope/internal/application/scope"
	"github.com/ephyslab/sweepscope/internal/core/model"
)

var (
	infoSource sourceFlags
	infoFormat string
	infoSort   string
	infoLimit  int
	infoReset  bool
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Report per-channel statistics for a recording",
	Long: `Computes min, max, mean, standard deviation, RMS, and spike counts for
every channel of a recording and prints them in the requested format.
Reports are cached by content fingerprint, so re-running on an unchanged
recording is fast.

Examples:
  sweepscope info --recording session.json
  sweepscope info --recording session.json --format json
  sweepscope info --recording session.json --sort spikes --limit 10`,
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoSource.register(infoCmd)
	infoCmd.Flags().StringVarP(&infoFormat, "output", "o", "table",
		"Output format (table, json, csv, summary)")
	infoCmd.Flags().StringVar(&infoSort, "sort", "channel",
		"Sort field (channel, mean, std, spikes)")
	infoCmd.Flags().IntVar(&infoLimit, "limit", 0,
		"Limit listed channels (0 = unlimited)")
	infoCmd.Flags().BoolVar(&infoReset, "reset", false,
		"Ignore and overwrite any cached report")
}

// sourceManifest resolves the shared source flags into a manifest.
func sourceManifest(f *sourceFlags) (*model.RecordingManifest, error) {
	cfg := &scope.Config{LastChannel: -1}
	f.apply(cfg)
	if cfg.ManifestPath == "" && cfg.SamplesPath == "" {
		return nil, fmt.Errorf("either --recording or --samples is required")
	}
	return cfg.Manifest()
}

func runInfo(cmd *cobra.Command, args []string) error {
	initLogging()

	m, err := sourceManifest(&infoSource)
	if err != nil {
		return err
	}

	cacheDir := expandPath(defaultCache)
	if err := ensureDir(cacheDir); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	config := &analyzer.Config{
		Manifest:     m,
		CacheDir:     cacheDir,
		OutputFormat: infoFormat,
		SortField:    infoSort,
		Limit:        infoLimit,
		Truncate:     infoSource.truncate,
		Concurrency:  runtime.NumCPU(),
	}

	a := analyzer.New(config)
	if infoReset {
		a.ClearCache()
	}
	return a.Run()
}
