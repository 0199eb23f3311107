// Package ring implements a fixed-capacity lock-free FIFO.
//
// Push and Pop never block and never allocate, so both ends are safe to use
// from interrupt handlers. Each slot carries a sequence number: a producer
// reserves a position with a CAS on the enqueue cursor and publishes the slot
// by bumping its sequence, which means a consumer never observes a reserved
// but unwritten slot.
package ring

import "sync/atomic"

type slot[T any] struct {
	seq atomic.Uint64
	val T
}

// Ring is a bounded multi-producer FIFO. A Ring must not be copied.
//
// The slot array has at least two entries: with a single slot "published"
// and "free for the next lap" share one sequence value. The capacity is
// enforced on the cursors instead.
type Ring[T any] struct {
	capacity uint64
	size     uint64
	slots    []slot[T]
	head     atomic.Uint64 // next position to enqueue
	tail     atomic.Uint64 // next position to dequeue
}

// New allocates a ring holding up to capacity values.
//
// It panics if capacity is not positive.
func New[T any](capacity int) *Ring[T] {
	if capacity <= 0 {
		panic("ring: capacity must be positive")
	}
	size := max(capacity, 2)
	r := &Ring[T]{
		capacity: uint64(capacity),
		size:     uint64(size),
		slots:    make([]slot[T], size),
	}
	for i := range r.slots {
		r.slots[i].seq.Store(uint64(i))
	}
	return r
}

// Cap returns the fixed capacity.
func (r *Ring[T]) Cap() int { return int(r.capacity) }

// Len returns the number of queued values. It is a snapshot and may be stale
// by the time the caller looks at it.
func (r *Ring[T]) Len() int {
	head := r.head.Load()
	tail := r.tail.Load()
	if head <= tail {
		return 0
	}
	n := head - tail
	if n > r.capacity {
		n = r.capacity
	}
	return int(n)
}

// Empty reports whether no published values are waiting.
func (r *Ring[T]) Empty() bool {
	tail := r.tail.Load()
	s := &r.slots[tail%r.size]
	return s.seq.Load() != tail+1
}

// Push appends v, returning false if the ring is full.
func (r *Ring[T]) Push(v T) bool {
	pos := r.head.Load()
	for {
		s := &r.slots[pos%r.size]
		seq := s.seq.Load()
		switch diff := int64(seq) - int64(pos); {
		case diff == 0:
			if tail := r.tail.Load(); pos >= tail && pos-tail >= r.capacity {
				return false
			}
			if r.head.CompareAndSwap(pos, pos+1) {
				s.val = v
				s.seq.Store(pos + 1)
				return true
			}
			pos = r.head.Load()
		case diff < 0:
			return false
		default:
			pos = r.head.Load()
		}
	}
}

// Pop removes the oldest value, returning false if none is published.
func (r *Ring[T]) Pop() (T, bool) {
	var zero T
	pos := r.tail.Load()
	for {
		s := &r.slots[pos%r.size]
		seq := s.seq.Load()
		switch diff := int64(seq) - int64(pos+1); {
		case diff == 0:
			if r.tail.CompareAndSwap(pos, pos+1) {
				v := s.val
				s.val = zero
				s.seq.Store(pos + r.size)
				return v, true
			}
			pos = r.tail.Load()
		case diff < 0:
			return zero, false
		default:
			pos = r.tail.Load()
		}
	}
}
