package knet

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIIRFilterGroupIdentity(t *testing.T) {
	sections := []BiquadSection{{A0: 1, A1: 0, A2: 0, B0: 1, B1: 0, B2: 0}}
	g := NewIIRFilterGroup(sections, 1.0, Float64Ops{})

	for _, x := range []float64{1, 2, 3} {
		require.Equal(t, x, g.Update(x))
	}
}

func TestIIRFilterGroupPureGainCascade(t *testing.T) {
	sections := []BiquadSection{{A0: 1, A1: 0, A2: 0, B0: 1, B1: 0, B2: 0}}
	g := NewIIRFilterGroup(sections, 2.0, Float64Ops{})

	got := []float64{g.Update(1), g.Update(2), g.Update(3)}
	require.Equal(t, []float64{2, 4, 6}, got)
}

func TestIIRFilterGroupRowsInvariant(t *testing.T) {
	sections := []BiquadSection{
		{A0: 1, A1: 0, A2: 0, B0: 1, B1: 0, B2: 0},
		{A0: 1, A1: 0, A2: 0, B0: 1, B1: 0, B2: 0},
	}
	g := NewIIRFilterGroup(sections, 1.0, Float64Ops{})

	for i := 0; i < 5; i++ {
		g.Update(float64(i))
		require.Equal(t, len(sections)+1, g.Rows())
	}
	require.Equal(t, len(sections), g.NumSections())
}
