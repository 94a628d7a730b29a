package interaction

import (
	"fmt"
	"sort"

	"github.com/ephyslab/sweepscope/internal/core/model"
)

// SortField represents the field to sort channel stats by
type SortField int

const (
	SortByChannel SortField = iota
	SortByMean
	SortByStd
	SortBySpikes
)

// SortOrder represents the sort order
type SortOrder int

const (
	SortAscending SortOrder = iota
	SortDescending
)

// ParseSortField maps the --sort flag value to a field
func ParseSortField(name string) (SortField, error) {
	switch name {
	case "", "channel":
		return SortByChannel, nil
	case "mean":
		return SortByMean, nil
	case "std":
		return SortByStd, nil
	case "spikes":
		return SortBySpikes, nil
	default:
		return SortByChannel, fmt.Errorf("unknown sort field %q (channel, mean, std, spikes)", name)
	}
}

// ChannelSorter handles sorting of per-channel report rows
type ChannelSorter struct {
	field SortField
	order SortOrder
}

// NewChannelSorter creates a sorter with the default channel-ascending order
func NewChannelSorter() *ChannelSorter {
	return &ChannelSorter{
		field: SortByChannel,
		order: SortAscending,
	}
}

// SetField changes the sort field. Every field except channel defaults to
// descending, the order people scan a leaderboard in.
func (s *ChannelSorter) SetField(field SortField) {
	s.field = field
	if field == SortByChannel {
		s.order = SortAscending
	} else {
		s.order = SortDescending
	}
}

// Sort sorts the channel rows based on current settings
func (s *ChannelSorter) Sort(channels []model.ChannelStats) {
	sort.Slice(channels, func(i, j int) bool {
		var less bool

		switch s.field {
		case SortByChannel:
			less = channels[i].Channel < channels[j].Channel
		case SortByMean:
			less = channels[i].Mean < channels[j].Mean
		case SortByStd:
			less = channels[i].Std < channels[j].Std
		case SortBySpikes:
			less = channels[i].SpikeCount < channels[j].SpikeCount
		}

		if s.order == SortDescending {
			return !less
		}
		return less
	})
}
