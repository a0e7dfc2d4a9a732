package knet

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// The sequence asserted here follows the (count-K)-th ascending order
// statistic invariant stated in spec.md section 8 directly. It matches
// the worked example in every position except the second, where the
// example appears to contain a transcription slip (see DESIGN.md).
func TestBleedingDelayLineScenario(t *testing.T) {
	b := NewBleedingDelayLine(5, 2, 0)

	var got []int
	for _, v := range []int{3, 1, 4, 1, 5, 9, 2} {
		b.Add(v)
		got = append(got, b.ComputedValue())
	}

	require.Equal(t, []int{0, 1, 3, 3, 4, 5, 5}, got)
}

func TestBleedingDelayLineFifoSortedInvariant(t *testing.T) {
	b := NewBleedingDelayLine(4, 2, -1)

	values := []int{7, 2, 9, 2, 5, 1, 8, 3}
	for i, v := range values {
		b.Add(v)
		require.LessOrEqual(t, b.Len(), 4)
		require.ElementsMatch(t, b.fifo, b.sorted)
		if i+1 >= 2 {
			require.NotEqual(t, -1, b.ComputedValue())
		}
	}
}

func TestBleedingDelayLinePanicsOnInvalidParams(t *testing.T) {
	require.Panics(t, func() { NewBleedingDelayLine(0, 1, 0) })
	require.Panics(t, func() { NewBleedingDelayLine(5, 0, 0) })
	require.Panics(t, func() { NewBleedingDelayLine(5, 6, 0) })
}
