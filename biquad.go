package knet

// BiquadSection holds the six coefficients of a single second-order
// section: [A0, A1, A2, B0, B1, B2].
type BiquadSection struct {
	A0, A1, A2 float64
	B0, B1, B2 float64
}

// delayPair is the (n-1, n-2) history for one signal inside one section.
type delayPair[T any] struct {
	prev1 T
	prev2 T
}

// IIRFilterGroup is a cascade of N biquad sections followed by a scalar
// output gain, operating on any sample type T that carries a VectorOps
// capability. State is exclusive to the instance and is not safe to share
// across goroutines without external serialization.
type IIRFilterGroup[T any] struct {
	sections []BiquadSection
	gain     float64
	ops      VectorOps[T]

	xDelay []delayPair[T] // per-section input delay
	yDelay []delayPair[T] // per-section output delay
	tail   delayPair[T]   // terminal one-slot shift register, no-op on output
}

// NewIIRFilterGroup constructs a filter group from an ordered list of
// sections, a trailing output gain, and the vector-operator witness for T.
func NewIIRFilterGroup[T any](sections []BiquadSection, gain float64, ops VectorOps[T]) *IIRFilterGroup[T] {
	g := &IIRFilterGroup[T]{
		sections: sections,
		gain:     gain,
		ops:      ops,
		xDelay:   make([]delayPair[T], len(sections)),
		yDelay:   make([]delayPair[T], len(sections)),
	}
	return g
}

// Update feeds one sample through the cascade and returns gain * y_(N-1).
// a0 == 0 is caller error and yields a non-finite result, matching the
// library's policy of never failing at runtime once validly constructed.
func (g *IIRFilterGroup[T]) Update(x T) T {
	in := x
	var out T

	for i, sec := range g.sections {
		xd := &g.xDelay[i]
		yd := &g.yDelay[i]

		num := g.ops.Add(
			g.ops.Add(g.ops.Scale(sec.B0, in), g.ops.Scale(sec.B1, xd.prev1)),
			g.ops.Scale(sec.B2, xd.prev2),
		)
		den := g.ops.Add(g.ops.Scale(sec.A1, yd.prev1), g.ops.Scale(sec.A2, yd.prev2))
		y := g.ops.Scale(1.0/sec.A0, g.ops.Add(num, g.ops.Scale(-1, den)))

		xd.prev2 = xd.prev1
		xd.prev1 = in
		yd.prev2 = yd.prev1
		yd.prev1 = y

		in = y
		out = y
	}

	// terminal one-slot shift register: mirrors the per-section delay
	// pattern so the delay-line array has one row per section plus one
	// terminal row, but contributes nothing to the output.
	g.tail.prev2 = g.tail.prev1
	g.tail.prev1 = out

	return g.ops.Scale(g.gain, out)
}

// Rows returns the current number of delay-line rows (N sections + the
// terminal row), each holding a (prev1, prev2) pair — the testable
// invariant that an N-section cascade has exactly N+1 rows, however many
// updates have run.
func (g *IIRFilterGroup[T]) Rows() int {
	return len(g.sections) + 1
}

// NumSections reports N, the section count of the cascade.
func (g *IIRFilterGroup[T]) NumSections() int {
	return len(g.sections)
}
