package knet

import "math"

// ButterworthHighpass2 derives the six biquad coefficients of a 2nd-order
// Butterworth highpass via the bilinear transform with prewarping.
// At freq == sampleRate/4, csq == 1 and a1 collapses to 0, a testable
// property of the bilinear transform.
func ButterworthHighpass2(freq, sampleRate float64) BiquadSection {
	c := math.Tan(math.Pi * freq / sampleRate)
	csq := c * c
	p := 1 + csq
	q := math.Sqrt2 * c

	return BiquadSection{
		A0: p + q,
		A1: 2 * (csq - 1),
		A2: p - q,
		B0: 1,
		B1: -2,
		B2: 1,
	}
}
