// Package arena implements a typed bump allocator over one pre-reserved
// backing slice. Allocations are never freed individually; Reset releases
// all of them at once.
package arena

import (
	"errors"
	"fmt"
)

// ErrExhausted is returned when a request does not fit in the remaining
// capacity of a region.
var ErrExhausted = errors.New("arena: capacity exhausted")

// Region hands out consecutive sub-slices of a single backing array.
// It is not safe for concurrent use.
type Region[T any] struct {
	buf []T
	off int
}

// NewRegion reserves capacity elements up front.
func NewRegion[T any](capacity int) *Region[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Region[T]{buf: make([]T, capacity)}
}

// Alloc returns n zeroed elements. The returned slice has its capacity
// clipped to n so an append can never spill into a neighbouring allocation.
func (r *Region[T]) Alloc(n int) ([]T, error) {
	if n < 0 {
		return nil, fmt.Errorf("arena: alloc %d: negative size", n)
	}
	if r.off+n > len(r.buf) {
		return nil, fmt.Errorf("arena: alloc %d (used %d of %d): %w", n, r.off, len(r.buf), ErrExhausted)
	}
	s := r.buf[r.off : r.off+n : r.off+n]
	r.off += n
	clear(s)
	return s, nil
}

// Reset makes the whole capacity available again. Slices handed out before
// the reset alias the new allocations and must no longer be used.
func (r *Region[T]) Reset() {
	r.off = 0
}

// Cap is the reserved element count.
func (r *Region[T]) Cap() int { return len(r.buf) }

// Used is the number of elements currently handed out.
func (r *Region[T]) Used() int { return r.off }

// Free is Cap - Used.
func (r *Region[T]) Free() int { return len(r.buf) - r.off }
