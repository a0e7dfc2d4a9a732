package knet

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLPGMCalculatorPanicsOnInvalidParams(t *testing.T) {
	require.Panics(t, func() { NewDefaultRealtimeLPGMCalculator(0) })
	require.Panics(t, func() { NewRealtimeLPGMCalculator(100, 0) })
	require.Panics(t, func() { NewRealtimeLPGMCalculator(100, 1) })
}

func TestLPGMCalculatorZeroInputStaysZero(t *testing.T) {
	calc := NewDefaultRealtimeLPGMCalculator(100)

	for i := 0; i < 50; i++ {
		calc.Update(Vec3{})
	}

	require.Equal(t, 0.0, calc.MaxSVA())
	for _, v := range calc.SVA() {
		require.Equal(t, 0.0, v)
	}
}

func TestLPGMCalculatorProducesFiniteSVA(t *testing.T) {
	calc := NewDefaultRealtimeLPGMCalculator(100)

	for i := 0; i < 500; i++ {
		accel := Vec3{
			X: float32(math.Sin(float64(i) * 0.05)),
			Y: float32(math.Cos(float64(i) * 0.03)),
		}
		calc.Update(accel)
	}

	for _, v := range calc.SVA() {
		require.False(t, math.IsNaN(v))
		require.False(t, math.IsInf(v, 0))
		require.GreaterOrEqual(t, v, 0.0)
	}
	require.Equal(t, calc.MaxSVA(), maxOf(calc.SVA()))
}

func maxOf(vs [32]float64) float64 {
	m := vs[0]
	for _, v := range vs[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
