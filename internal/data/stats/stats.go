package stats

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ephyslab/sweepscope/internal/core/model"
	"github.com/ephyslab/sweepscope/internal/data/loader"
	"github.com/ephyslab/sweepscope/internal/util"
)

// Calculator computes per-channel summary statistics for a loaded bundle.
// Channels are independent, so they are computed concurrently under a
// semaphore.
type Calculator struct {
	concurrency int
}

// NewCalculator creates a calculator with the given channel concurrency.
func NewCalculator(concurrency int) *Calculator {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Calculator{concurrency: concurrency}
}

// BuildReport computes the full report for a bundle: manifest summary,
// per-channel statistics, spike counts, and the category histogram.
func (c *Calculator) BuildReport(bundle *loader.Bundle) *model.RecordingReport {
	start := time.Now()
	m := bundle.Manifest
	samples := bundle.Samples

	report := &model.RecordingReport{
		Name:              m.Name,
		ID:                m.ID,
		SampleFile:        m.SampleFile,
		Format:            m.Format,
		TotalChannels:     m.TotalChannels,
		SamplingRate:      m.SamplingRate,
		SamplesPerChannel: samples.SamplesPerChannel(),
		DurationSeconds:   bundle.Table.Duration(),
		SampleBytes:       int64(samples.SamplesPerChannel()) * int64(m.TotalChannels) * int64(m.Format.BytesPerSample()),
		SpikeCount:        bundle.Spikes.Len(),
		Channels:          make([]model.ChannelStats, m.TotalChannels),
	}

	spikeCounts := make([]int, m.TotalChannels)
	categories := make(map[int]int)
	for i := 0; i < bundle.Spikes.Len(); i++ {
		ch := bundle.Spikes.Channel(i)
		if ch >= 0 && ch < m.TotalChannels {
			spikeCounts[ch]++
		}
		categories[bundle.Spikes.Category(i)]++
	}
	for cat, n := range categories {
		report.Categories = append(report.Categories, model.CategoryCount{Category: cat, Count: n})
	}
	sort.Slice(report.Categories, func(i, j int) bool {
		return report.Categories[i].Category < report.Categories[j].Category
	})

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, c.concurrency)
	for ch := 0; ch < m.TotalChannels; ch++ {
		wg.Add(1)
		go func(ch int) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			report.Channels[ch] = channelStats(ch, samples.ChannelData(ch))
			report.Channels[ch].SpikeCount = spikeCounts[ch]
		}(ch)
	}
	wg.Wait()

	util.LogDebug(fmt.Sprintf("Computed statistics for %d channels in %v", m.TotalChannels, time.Since(start)))
	return report
}

func channelStats(channel int, data []float64) model.ChannelStats {
	if len(data) == 0 {
		return model.ChannelStats{Channel: channel}
	}

	sumSquares := 0.0
	for _, v := range data {
		sumSquares += v * v
	}

	std := 0.0
	if len(data) > 1 {
		std = stat.StdDev(data, nil)
	}

	return model.ChannelStats{
		Channel: channel,
		Min:     floats.Min(data),
		Max:     floats.Max(data),
		Mean:    stat.Mean(data, nil),
		Std:     std,
		RMS:     math.Sqrt(sumSquares / float64(len(data))),
	}
}
