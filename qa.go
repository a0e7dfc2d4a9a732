package knet

import (
	"time"

	"github.com/samber/lo"
)

// QualityInfo summarises consistency checks over a decoded Data value,
// mirroring the teacher's per-ping QualityInfo but applied to per-second
// channel blocks instead of sonar pings.
type QualityInfo struct {
	MinMaxChannelCounts []int
	ConsistentChannels  bool
	DuplicateTimestamps []time.Time
}

// QInfo reports second-block consistency: whether every second block
// carries the same channel count, and which SamplingStart timestamps
// repeat (a malformed or duplicated recording, the waveform-viewer
// equivalent of the teacher's duplicate-ping detection).
func (d *Data) QInfo() QualityInfo {
	var qa QualityInfo

	n := len(d.Seconds)
	if n == 0 {
		return qa
	}

	counts := make([]int, n)
	timestamps := make([]time.Time, n)
	for i, sec := range d.Seconds {
		counts[i] = len(sec.Channels)
		timestamps[i] = sec.SamplingStart
	}

	max := lo.Max(counts)
	min := lo.Min(counts)
	qa.MinMaxChannelCounts = []int{min, max}
	qa.ConsistentChannels = min == max

	qa.DuplicateTimestamps = lo.FindDuplicates(timestamps)

	return qa
}
