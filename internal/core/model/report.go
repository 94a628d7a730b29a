package model

// ChannelStats holds per-channel summary statistics for one recording.
// Computed once per load and cached by content fingerprint.
type ChannelStats struct {
	Channel    int     `json:"channel"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Mean       float64 `json:"mean"`
	Std        float64 `json:"std"`
	RMS        float64 `json:"rms"`
	SpikeCount int     `json:"spikeCount"`
}

// CategoryCount is one bucket of the spike category histogram.
type CategoryCount struct {
	Category int `json:"category"`
	Count    int `json:"count"`
}

// RecordingReport is what the info command prints: the manifest summary plus
// per-channel statistics and the spike category histogram.
type RecordingReport struct {
	Name              string          `json:"name"`
	ID                string          `json:"id,omitempty"`
	SampleFile        string          `json:"sampleFile"`
	Format            SampleFormat    `json:"format"`
	TotalChannels     int             `json:"totalChannels"`
	SamplingRate      float64         `json:"samplingRate"`
	SamplesPerChannel int             `json:"samplesPerChannel"`
	DurationSeconds   float64         `json:"durationSeconds"`
	SampleBytes       int64           `json:"sampleBytes"`
	SpikeCount        int             `json:"spikeCount"`
	Categories        []CategoryCount `json:"categories,omitempty"`
	Channels          []ChannelStats  `json:"channels"`
}
