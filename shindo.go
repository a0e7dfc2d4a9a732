package knet

import "math"

// ShindoParams are the seismological constants behind the JMA
// intensity-weighting filter. A zero-value ShindoParams is used as given
// (all frequencies and the gain zero), not replaced by defaults; start
// from DefaultShindoParams when constructing non-default instances that
// still want most of the defaults.
type ShindoParams struct {
	F0, F1, F2, F3, F4, F5 float64
	H2a, H2b               float64
	H3, H4, H5             float64
	Gain                   float64
}

// DefaultShindoParams returns the standard JMA weighting-curve parameters.
func DefaultShindoParams() ShindoParams {
	return ShindoParams{
		F0: 0.45, F1: 7.0, F2: 0.5, F3: 12.0, F4: 20.0, F5: 30.0,
		H2a: 1.0, H2b: 0.75,
		H3:  0.6, H4: 0.6, H5: 0.6,
		Gain: 1.262,
	}
}

// shindoSections builds the six biquad sections realizing the JMA
// intensity-weighting curve for sampling period dt, per the coefficient
// table in the seismological derivation of the filter.
func shindoSections(dt float64, p ShindoParams) []BiquadSection {
	w0 := 2 * math.Pi * p.F0
	w1 := 2 * math.Pi * p.F1
	w2 := 2 * math.Pi * p.F2
	w3 := 2 * math.Pi * p.F3
	w4 := 2 * math.Pi * p.F4
	w5 := 2 * math.Pi * p.F5

	dt2 := dt * dt

	sec1 := BiquadSection{
		A0: 8/dt2 + w0*w1,
		A1: (4*w0 + 2*w1) / dt,
		A2: 2*w0*w1 - 16/dt2,
		B0: 4 / dt2,
		B1: 2 * w1 / dt,
		B2: -8 / dt2,
	}

	sec2 := BiquadSection{
		A0: 16/dt2 + w1*w1,
		A1: 17 * w1 / dt,
		A2: 2*w1*w1 - 32/dt2,
		B0: 4/dt2 + w1*w1,
		B1: 8.5 * w1 / dt,
		B2: 2*w1*w1 - 8/dt2,
	}

	sec3 := BiquadSection{
		A0: 12/dt2 + w2*w2,
		A1: 12 * p.H2b * w2 / dt,
		A2: 10*w2*w2 - 24/dt2,
		B0: 12/dt2 + w2*w2,
		B1: 12 * p.H2a * w2 / dt,
		B2: 10*w2*w2 - 24/dt2,
	}

	highOrderSection := func(w, h float64) BiquadSection {
		return BiquadSection{
			A0: 12/dt2 + w*w,
			A1: 12 * h * w / dt,
			A2: 10*w*w - 24/dt2,
			B0: w * w,
			B1: 0,
			B2: 10 * w * w,
		}
	}

	return []BiquadSection{
		sec1, sec2, sec3,
		highOrderSection(w3, p.H3),
		highOrderSection(w4, p.H4),
		highOrderSection(w5, p.H5),
	}
}

// RealtimeShindoFilter is a six-section biquad cascade realizing the JMA
// seismic-intensity weighting curve, parameterized over any sample type T
// carrying a VectorOps capability.
type RealtimeShindoFilter[T any] struct {
	group *IIRFilterGroup[T]
}

// NewRealtimeShindoFilter builds the filter for sampling period dt using
// the supplied seismological parameters.
func NewRealtimeShindoFilter[T any](dt float64, ops VectorOps[T], params ShindoParams) *RealtimeShindoFilter[T] {
	sections := shindoSections(dt, params)
	return &RealtimeShindoFilter[T]{
		group: NewIIRFilterGroup(sections, params.Gain, ops),
	}
}

// NewDefaultRealtimeShindoFilter builds the filter with the standard JMA
// weighting-curve parameters.
func NewDefaultRealtimeShindoFilter[T any](dt float64, ops VectorOps[T]) *RealtimeShindoFilter[T] {
	return NewRealtimeShindoFilter(dt, ops, DefaultShindoParams())
}

// Update feeds one sample through the weighting cascade.
func (f *RealtimeShindoFilter[T]) Update(x T) T {
	return f.group.Update(x)
}

// Intensity computes JMA seismic intensity from the bleeding-delay-line
// statistic v (in gal) applied to the filter's rolling magnitude envelope:
// I = 2*log10(v) + 0.94. Callers are expected to gate this on the filter
// having received enough samples for initial transients to decay (the
// library does not hard-code that startup guard; see DESIGN.md).
func Intensity(v float64) float64 {
	if v <= 0 {
		return math.Inf(-1)
	}
	return 2*math.Log10(v) + 0.94
}
