package analyzer

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ephyslab/sweepscope/internal/data/cache"
	"github.com/ephyslab/sweepscope/internal/util"
)

// Translate cache miss reason to English string for logging
func cacheMissReasonString(r cache.MissReason) string {
	switch r {
	case cache.MissNone:
		return "none"
	case cache.MissError:
		return "Cache read error"
	case cache.MissInode:
		return "Sample file inode changed"
	case cache.MissSize:
		return "Sample file size changed"
	case cache.MissModTime:
		return "Modification time changed"
	case cache.MissFingerprint:
		return "Content fingerprint changed"
	case cache.MissNotFound:
		return "Cache not found"
	default:
		return "Unknown reason"
	}
}

// CacheStats counts report cache outcomes across a run. The viewer reloads
// bundles over its lifetime, so counters are safe for concurrent increments.
type CacheStats struct {
	hits        int64
	misses      int64
	failures    int64
	mu          sync.Mutex
	missDetails []MissDetail
}

// MissDetail records details of a cache miss
type MissDetail struct {
	SampleFile string
	Reason     cache.MissReason
}

// NewCacheStats creates a new CacheStats instance
func NewCacheStats() *CacheStats {
	return &CacheStats{
		missDetails: make([]MissDetail, 0),
	}
}

// IncrementHit increases the cache hit count
func (cs *CacheStats) IncrementHit() {
	atomic.AddInt64(&cs.hits, 1)
}

// IncrementMiss increases the cache miss count and records the miss detail
func (cs *CacheStats) IncrementMiss(sampleFile string, reason cache.MissReason) {
	atomic.AddInt64(&cs.misses, 1)

	cs.mu.Lock()
	cs.missDetails = append(cs.missDetails, MissDetail{
		SampleFile: sampleFile,
		Reason:     reason,
	})
	cs.mu.Unlock()
}

// IncrementFailure increases the failure count
func (cs *CacheStats) IncrementFailure() {
	atomic.AddInt64(&cs.failures, 1)
}

// GetStats returns the current counters
func (cs *CacheStats) GetStats() (hits, misses, failures int64) {
	return atomic.LoadInt64(&cs.hits), atomic.LoadInt64(&cs.misses), atomic.LoadInt64(&cs.failures)
}

// LogSummary logs the counters and every recorded miss reason
func (cs *CacheStats) LogSummary() {
	hits, misses, failures := cs.GetStats()
	util.LogDebug(fmt.Sprintf("Report cache stats: hits %d, misses %d, failures %d", hits, misses, failures))

	if misses > 0 {
		cs.mu.Lock()
		details := make([]MissDetail, len(cs.missDetails))
		copy(details, cs.missDetails)
		cs.mu.Unlock()

		for _, detail := range details {
			util.LogDebug(fmt.Sprintf("  %s (%s)", detail.SampleFile, cacheMissReasonString(detail.Reason)))
		}
	}
}
