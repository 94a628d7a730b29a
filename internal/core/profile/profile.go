package profile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ephyslab/sweepscope/internal/core/constants"
)

// Preset bundles the sweep tunables a named viewing profile sets. Zero-valued
// fields in the resolved options mean "flag not given", so presets apply first
// and explicit flags override them.
type Preset struct {
	Name           string
	Description    string
	SpeedFactor    float64
	SweepDuration  float64
	AmplitudeScale float64
	FrameRate      int
}

var presets = map[string]Preset{
	"default": {
		Name:           "default",
		Description:    "balanced playback for spike review",
		SpeedFactor:    constants.DefaultSpeedFactor,
		SweepDuration:  constants.DefaultSweepDuration,
		AmplitudeScale: constants.DefaultAmplitudeScale,
		FrameRate:      constants.DefaultFrameRate,
	},
	"fast": {
		Name:           "fast",
		Description:    "5x playback for skimming long recordings",
		SpeedFactor:    constants.DefaultSpeedFactor * 5,
		SweepDuration:  constants.DefaultSweepDuration,
		AmplitudeScale: constants.DefaultAmplitudeScale,
		FrameRate:      constants.DefaultFrameRate,
	},
	"slow": {
		Name:           "slow",
		Description:    "quarter-speed playback with a longer sweep for waveform inspection",
		SpeedFactor:    constants.DefaultSpeedFactor / 4,
		SweepDuration:  constants.DefaultSweepDuration * 4,
		AmplitudeScale: constants.DefaultAmplitudeScale * 2,
		FrameRate:      constants.DefaultFrameRate,
	},
	"dense": {
		Name:           "dense",
		Description:    "compressed amplitudes for high-channel-count arrays",
		SpeedFactor:    constants.DefaultSpeedFactor,
		SweepDuration:  constants.DefaultSweepDuration,
		AmplitudeScale: constants.DefaultAmplitudeScale / 3,
		FrameRate:      constants.DefaultFrameRate,
	},
}

// Resolve returns the named preset. An empty name resolves to "default".
func Resolve(name string) (Preset, error) {
	if name == "" {
		name = "default"
	}
	p, ok := presets[strings.ToLower(name)]
	if !ok {
		return Preset{}, fmt.Errorf("unknown profile %q, available: %s", name, strings.Join(Names(), ", "))
	}
	return p, nil
}

// Names lists the available preset names, sorted.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
