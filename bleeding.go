package knet

import (
	"cmp"
	"sort"
)

// BleedingDelayLine is a fixed-capacity FIFO synchronized with a sorted
// index, answering "the value such that exactly K of the last D samples
// are >= it" in O(log D + D) per Add. It is used both to damp the Shindo
// magnitude envelope and to hold the running peak SVA over a trailing
// window.
type BleedingDelayLine[T cmp.Ordered] struct {
	duration int
	bleeding int
	def      T
	fifo     []T // ring contents in insertion order, front at index 0
	sorted   []T // same multiset, ascending
}

// NewBleedingDelayLine constructs a delay line of capacity duration,
// reporting the bleeding-th largest of the held samples once at least
// bleeding samples have been added, and def before that.
func NewBleedingDelayLine[T cmp.Ordered](duration, bleeding int, def T) *BleedingDelayLine[T] {
	if duration <= 0 {
		panic("knet: BleedingDelayLine duration must be positive")
	}
	if bleeding <= 0 || bleeding > duration {
		panic("knet: BleedingDelayLine bleeding must satisfy 0 < K <= duration")
	}
	return &BleedingDelayLine[T]{
		duration: duration,
		bleeding: bleeding,
		def:      def,
		fifo:     make([]T, 0, duration),
		sorted:   make([]T, 0, duration),
	}
}

// Add appends v, evicting the oldest sample first once the line is full.
// The FIFO and the sorted index always hold the same multiset.
func (b *BleedingDelayLine[T]) Add(v T) {
	if len(b.fifo) == b.duration {
		oldest := b.fifo[0]
		copy(b.fifo, b.fifo[1:])
		b.fifo = b.fifo[:len(b.fifo)-1]
		b.removeSorted(oldest)
	}
	b.fifo = append(b.fifo, v)
	b.insertSorted(v)
}

func (b *BleedingDelayLine[T]) insertSorted(v T) {
	i := sort.Search(len(b.sorted), func(i int) bool { return b.sorted[i] > v })
	b.sorted = append(b.sorted, v)
	copy(b.sorted[i+1:], b.sorted[i:])
	b.sorted[i] = v
}

// removeSorted removes one occurrence of the oldest evicted value. Ties
// are broken arbitrarily among equal elements (the interface only demands
// the multiset stays in sync, not which duplicate is removed).
func (b *BleedingDelayLine[T]) removeSorted(v T) {
	i := sort.Search(len(b.sorted), func(i int) bool { return b.sorted[i] >= v })
	b.sorted = append(b.sorted[:i], b.sorted[i+1:]...)
}

// ComputedValue returns def if fewer than bleeding samples have been
// added, otherwise the bleeding-th largest value currently held.
func (b *BleedingDelayLine[T]) ComputedValue() T {
	n := len(b.sorted)
	if n < b.bleeding {
		return b.def
	}
	return b.sorted[n-b.bleeding]
}

// Len reports the current sample count, for invariant checks.
func (b *BleedingDelayLine[T]) Len() int {
	return len(b.fifo)
}
