package knet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestQInfoConsistentChannels(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, JST)
	data := &Data{
		Seconds: []SecondBlock{
			{SamplingStart: t0, Channels: make([]ChannelData, 3)},
			{SamplingStart: t0.Add(time.Second), Channels: make([]ChannelData, 3)},
		},
	}

	qa := data.QInfo()
	require.True(t, qa.ConsistentChannels)
	require.Equal(t, []int{3, 3}, qa.MinMaxChannelCounts)
	require.Empty(t, qa.DuplicateTimestamps)
}

func TestQInfoDetectsInconsistencyAndDuplicates(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, JST)
	data := &Data{
		Seconds: []SecondBlock{
			{SamplingStart: t0, Channels: make([]ChannelData, 3)},
			{SamplingStart: t0, Channels: make([]ChannelData, 2)},
		},
	}

	qa := data.QInfo()
	require.False(t, qa.ConsistentChannels)
	require.Equal(t, []int{2, 3}, qa.MinMaxChannelCounts)
	require.Equal(t, []time.Time{t0}, qa.DuplicateTimestamps)
}

func TestQInfoEmptyData(t *testing.T) {
	data := &Data{}
	qa := data.QInfo()
	require.Nil(t, qa.MinMaxChannelCounts)
	require.False(t, qa.ConsistentChannels)
}
