package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ephyslab/sweepscope/internal/core/model"
)

func channelsFixture() []model.ChannelStats {
	return []model.ChannelStats{
		{Channel: 2, Mean: 0.5, Std: 3.0, SpikeCount: 10},
		{Channel: 0, Mean: 2.0, Std: 1.0, SpikeCount: 40},
		{Channel: 1, Mean: -1.0, Std: 2.0, SpikeCount: 25},
	}
}

func TestSorterDefaultChannelAscending(t *testing.T) {
	channels := channelsFixture()
	NewChannelSorter().Sort(channels)

	assert.Equal(t, 0, channels[0].Channel)
	assert.Equal(t, 1, channels[1].Channel)
	assert.Equal(t, 2, channels[2].Channel)
}

func TestSorterMetricFieldsDescend(t *testing.T) {
	sorter := NewChannelSorter()

	channels := channelsFixture()
	sorter.SetField(SortBySpikes)
	sorter.Sort(channels)
	assert.Equal(t, 40, channels[0].SpikeCount)
	assert.Equal(t, 10, channels[2].SpikeCount)

	sorter.SetField(SortByStd)
	sorter.Sort(channels)
	assert.Equal(t, 3.0, channels[0].Std)

	sorter.SetField(SortByMean)
	sorter.Sort(channels)
	assert.Equal(t, 2.0, channels[0].Mean)
}

func TestParseSortField(t *testing.T) {
	field, err := ParseSortField("")
	require.NoError(t, err)
	assert.Equal(t, SortByChannel, field)

	field, err = ParseSortField("spikes")
	require.NoError(t, err)
	assert.Equal(t, SortBySpikes, field)

	_, err = ParseSortField("bogus")
	assert.ErrorContains(t, err, "unknown sort field")
}
