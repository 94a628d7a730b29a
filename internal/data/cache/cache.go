package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bytedance/sonic"

	"github.com/ephyslab/sweepscope/internal/core/model"
	"github.com/ephyslab/sweepscope/internal/util"
)

// MissReason explains why a cached report was not used.
type MissReason int

const (
	MissNone MissReason = iota
	MissError
	MissInode
	MissSize
	MissModTime
	MissFingerprint
	MissNotFound
)

// CachedReport is one on-disk cache entry: the computed report plus the
// identity of the sample file it was computed from. A report is valid only
// while the sample file's inode, size, modtime, and content fingerprint all
// still match.
type CachedReport struct {
	SampleFile         string                 `json:"sampleFile"`
	Inode              uint64                 `json:"inode"`
	FileSize           int64                  `json:"fileSize"`
	LastModified       int64                  `json:"lastModified"`
	ContentFingerprint string                 `json:"contentFingerprint,omitempty"`
	Report             *model.RecordingReport `json:"report"`
}

// Result is a cache lookup outcome.
type Result struct {
	Report     *model.RecordingReport
	Found      bool
	MissReason MissReason
}

// ReportCache stores recording reports keyed by recording id, in memory and as
// JSON files under baseDir. Statistics over a multi-gigabyte sample file are
// expensive; a hit skips the whole load-and-compute pass.
type ReportCache struct {
	baseDir string
	mu      sync.RWMutex
	memory  map[string]*CachedReport
}

// NewReportCache creates the cache directory if needed.
func NewReportCache(baseDir string) (*ReportCache, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}
	return &ReportCache{
		baseDir: baseDir,
		memory:  make(map[string]*CachedReport),
	}, nil
}

// cacheKey turns a recording id into a safe filename. Ids come from manifests
// and may contain path separators.
func cacheKey(recordingID string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':':
			return '_'
		}
		return r
	}, recordingID)
}

// Get returns the cached report for a recording if its sample file is
// unchanged.
func (c *ReportCache) Get(recordingID string) Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.memory[cacheKey(recordingID)]; ok {
		if reason := c.validate(entry); reason == MissNone {
			return Result{Report: entry.Report, Found: true}
		}
		delete(c.memory, cacheKey(recordingID))
	}

	return c.getFromFile(recordingID)
}

func (c *ReportCache) getFromFile(recordingID string) Result {
	key := cacheKey(recordingID)
	raw, err := os.ReadFile(filepath.Join(c.baseDir, key+".json"))
	if err != nil {
		return Result{MissReason: MissNotFound}
	}

	var entry CachedReport
	if err := sonic.Unmarshal(raw, &entry); err != nil {
		return Result{MissReason: MissError}
	}

	if reason := c.validate(&entry); reason != MissNone {
		return Result{MissReason: reason}
	}

	c.memory[key] = &entry
	return Result{Report: entry.Report, Found: true}
}

func (c *ReportCache) validate(entry *CachedReport) MissReason {
	if entry.Report == nil {
		return MissError
	}

	info, err := util.GetFileInfo(entry.SampleFile)
	if err != nil {
		util.LogDebug(fmt.Sprintf("Cache validation failed for %s: %v", entry.SampleFile, err))
		return MissError
	}

	if info.Inode != entry.Inode {
		util.LogDebug(fmt.Sprintf("Cache invalidated for %s: inode changed (cached %d, current %d)",
			entry.SampleFile, entry.Inode, info.Inode))
		return MissInode
	}
	if info.Size != entry.FileSize {
		util.LogDebug(fmt.Sprintf("Cache invalidated for %s: size changed (cached %d, current %d)",
			entry.SampleFile, entry.FileSize, info.Size))
		return MissSize
	}
	if info.ModTime != entry.LastModified {
		util.LogDebug(fmt.Sprintf("Cache invalidated for %s: modtime changed (cached %d, current %d)",
			entry.SampleFile, entry.LastModified, info.ModTime))
		return MissModTime
	}

	// Recordings are usually written once, but a rewrite that preserves size
	// and timestamps still has to miss.
	if entry.ContentFingerprint != "" {
		fingerprint, err := util.CalculateFileFingerprint(entry.SampleFile)
		if err != nil || fingerprint != entry.ContentFingerprint {
			util.LogDebug(fmt.Sprintf("Cache invalidated for %s: fingerprint mismatch", entry.SampleFile))
			return MissFingerprint
		}
	}

	return MissNone
}

// Set stores a report, snapshotting the sample file's identity for later
// validation. A failed disk write degrades to memory-only with a warning; the
// viewer must not die over a cache.
func (c *ReportCache) Set(recordingID, sampleFile string, report *model.RecordingReport) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	info, err := util.GetFileInfo(sampleFile)
	if err != nil {
		return err
	}

	entry := &CachedReport{
		SampleFile:   sampleFile,
		Inode:        info.Inode,
		FileSize:     info.Size,
		LastModified: info.ModTime,
		Report:       report,
	}
	if fingerprint, err := util.CalculateFileFingerprint(sampleFile); err == nil {
		entry.ContentFingerprint = fingerprint
	}

	key := cacheKey(recordingID)
	c.memory[key] = entry

	raw, err := sonic.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(c.baseDir, key+".json"), raw, 0644); err != nil {
		util.LogWarn(fmt.Sprintf("Report cached in memory only, disk write failed: %v", err))
	}
	return nil
}

// Clear drops the memory cache and removes every on-disk entry.
func (c *ReportCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.memory = make(map[string]*CachedReport)

	return filepath.Walk(c.baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".json" {
			os.Remove(path)
		}
		return nil
	})
}

// Stats reports entry counts for the cache-stats listing.
func (c *ReportCache) Stats() (memoryCount, fileCount int) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	memoryCount = len(c.memory)

	filepath.Walk(c.baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() && strings.HasSuffix(strings.ToLower(path), ".json") {
			fileCount++
		}
		return nil
	})

	return memoryCount, fileCount
}
