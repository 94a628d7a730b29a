package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ephyslab/sweepscope/internal/core/model"
	"github.com/ephyslab/sweepscope/internal/util"
)

// BundleScanner discovers recording bundles under a base directory by walking
// for manifest files.
type BundleScanner struct {
	baseDir string
	pattern string
}

// DiscoveredBundle pairs a manifest path with its parsed contents.
type DiscoveredBundle struct {
	Path     string
	Manifest *model.RecordingManifest
}

// NewBundleScanner creates a scanner rooted at baseDir.
func NewBundleScanner(baseDir string) *BundleScanner {
	return &BundleScanner{
		baseDir: baseDir,
		pattern: "*.json",
	}
}

// Scan walks the base directory and returns every .json file path. Unreadable
// entries are skipped, not fatal.
func (s *BundleScanner) Scan() ([]string, error) {
	start := time.Now()
	var files []string
	dirCount := 0
	totalCount := 0

	util.LogDebug(fmt.Sprintf("Start scanning directory: %s", s.baseDir))

	err := filepath.Walk(s.baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			util.LogDebug(fmt.Sprintf("Skip entry (error): %s - %v", path, err))
			return nil
		}

		if info.IsDir() {
			dirCount++
			return nil
		}

		totalCount++
		if strings.HasSuffix(strings.ToLower(path), ".json") {
			files = append(files, path)
		}

		return nil
	})

	util.LogDebug(fmt.Sprintf("Directory scan completed: duration %v, scanned %d directories, %d files, found %d manifest candidates",
		time.Since(start), dirCount, totalCount, len(files)))

	return files, err
}

// Discover scans for manifest candidates and keeps the ones that parse and
// validate. JSON files that are not manifests are skipped with a debug log, so
// a bundle directory can hold unrelated metadata. Results are sorted by
// recording name for stable listings.
func (s *BundleScanner) Discover() ([]DiscoveredBundle, error) {
	candidates, err := s.Scan()
	if err != nil {
		return nil, err
	}

	var bundles []DiscoveredBundle
	for _, path := range candidates {
		m, err := model.LoadManifest(path)
		if err != nil {
			util.LogDebug(fmt.Sprintf("Skip non-manifest JSON: %s - %v", path, err))
			continue
		}
		bundles = append(bundles, DiscoveredBundle{Path: path, Manifest: m})
	}

	sort.Slice(bundles, func(i, j int) bool {
		if bundles[i].Manifest.Name != bundles[j].Manifest.Name {
			return bundles[i].Manifest.Name < bundles[j].Manifest.Name
		}
		return bundles[i].Path < bundles[j].Path
	})

	util.LogDebug(fmt.Sprintf("Discovered %d recording bundles under %s", len(bundles), s.baseDir))
	return bundles, nil
}
