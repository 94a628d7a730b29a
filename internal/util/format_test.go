package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected string
	}{
		{
			name:     "zero",
			input:    0,
			expected: "0",
		},
		{
			name:     "small number",
			input:    42,
			expected: "42",
		},
		{
			name:     "just below K threshold",
			input:    999,
			expected: "999",
		},
		{
			name:     "exactly 1000",
			input:    1000,
			expected: "1.0K",
		},
		{
			name:     "thousands",
			input:    1500,
			expected: "1.5K",
		},
		{
			name:     "just below M threshold",
			input:    999999,
			expected: "1000.0K",
		},
		{
			name:     "exactly 1 million",
			input:    1000000,
			expected: "1.0M",
		},
		{
			name:     "millions",
			input:    2500000,
			expected: "2.5M",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatNumber(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Duration
		expected string
	}{
		{
			name:     "zero duration",
			input:    0,
			expected: "0s",
		},
		{
			name:     "seconds only",
			input:    45 * time.Second,
			expected: "45s",
		},
		{
			name:     "minutes and seconds",
			input:    5*time.Minute + 30*time.Second,
			expected: "5m 30s",
		},
		{
			name:     "exactly 1 hour",
			input:    time.Hour,
			expected: "1h 0m",
		},
		{
			name:     "1 hour 30 minutes",
			input:    90 * time.Minute,
			expected: "1h 30m",
		},
		{
			name:     "sub-second rounds down",
			input:    500 * time.Millisecond,
			expected: "0s",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatDuration(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestFormatHertz(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{
			name:     "sub-kilohertz",
			input:    100,
			expected: "100Hz",
		},
		{
			name:     "neural sampling rate",
			input:    30000,
			expected: "30kHz",
		},
		{
			name:     "audio sampling rate",
			input:    44100,
			expected: "44.1kHz",
		},
		{
			name:     "fractional kilohertz",
			input:    2500,
			expected: "2.5kHz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatHertz(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{
			name:     "milliseconds",
			input:    0.05,
			expected: "50.0ms",
		},
		{
			name:     "whole seconds",
			input:    12.3456,
			expected: "12.346s",
		},
		{
			name:     "exactly one second",
			input:    1.0,
			expected: "1.000s",
		},
		{
			name:     "negative clamps to zero",
			input:    -3,
			expected: "0.0ms",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatSeconds(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name     string
		input    int64
		expected string
	}{
		{
			name:     "bytes",
			input:    512,
			expected: "512B",
		},
		{
			name:     "kilobytes",
			input:    2048,
			expected: "2.0KB",
		},
		{
			name:     "fractional kilobytes",
			input:    1536,
			expected: "1.5KB",
		},
		{
			name:     "megabytes",
			input:    1 << 20,
			expected: "1.0MB",
		},
		{
			name:     "gigabytes",
			input:    3 << 30,
			expected: "3.0GB",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatBytes(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestChannelLabels(t *testing.T) {
	assert.Equal(t, "ch 007", ChannelLabel(7))
	assert.Equal(t, "ch 200-300", ChannelRangeLabel(200, 300))
	assert.Equal(t, "ch 042", ChannelRangeLabel(42, 42))
	assert.Equal(t, "unit 3", CategoryLabel(3))
}
