// Package scancode hands keyboard scancodes from the keyboard interrupt
// handler to the single task reading them.
//
// The producer side (Add, AddScancode) runs in interrupt context: it never
// blocks, never allocates and drops the scancode with a warning when the
// buffer is full.
package scancode

import (
	"errors"
	"sync/atomic"

	"kestrel/internal/ring"
	"kestrel/kestrelos/kernel"
)

// DefaultCapacity is the scancode buffer size used when none is configured.
const DefaultCapacity = 100

const (
	msgQueueFull     = "warning: scancode queue full; dropping keyboard input"
	msgUninitialized = "warning: scancode queue uninitialized"
)

var (
	// ErrAlreadyInitialized is returned by Init after the first call.
	ErrAlreadyInitialized = errors.New("scancode: queue already initialized")
	// ErrNotInitialized is returned by NewStream before Init.
	ErrNotInitialized = errors.New("scancode: queue not initialized")
	// ErrStreamClaimed is returned when a second consumer asks for the stream.
	ErrStreamClaimed = errors.New("scancode: stream already claimed")
)

// Queue is a bounded scancode buffer plus the waker of the task waiting on it.
type Queue struct {
	codes   *ring.Ring[uint8]
	waker   kernel.AtomicWaker
	log     kernel.Logger
	dropped atomic.Uint64
	claimed atomic.Bool

	// beforeRegister runs between the consumer's failed pop and its waker
	// registration. Tests use it to force a producer into that window.
	beforeRegister func()
}

// NewQueue allocates a queue. Warnings go to log, which may be nil.
func NewQueue(capacity int, log kernel.Logger) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Queue{codes: ring.New[uint8](capacity), log: log}
}

// Add is the producer side. The scancode is published before the registered
// waker is taken and woken, so the woken task always sees it.
func (q *Queue) Add(code uint8) {
	if !q.codes.Push(code) {
		q.dropped.Add(1)
		if q.log != nil {
			q.log.WriteLineString(msgQueueFull)
		}
		return
	}
	q.waker.Wake()
}

// PollNext is the consumer side. It returns Pending after registering the
// task's waker when no scancode is buffered.
func (q *Queue) PollNext(cx *kernel.Context) (uint8, kernel.Poll) {
	if code, ok := q.codes.Pop(); ok {
		return code, kernel.Ready
	}

	if q.beforeRegister != nil {
		q.beforeRegister()
	}
	q.waker.Register(cx.Waker())

	// A scancode that arrived before registration would not have woken us.
	if code, ok := q.codes.Pop(); ok {
		q.waker.Take()
		return code, kernel.Ready
	}
	return 0, kernel.Pending
}

// Len returns a snapshot of the number of buffered scancodes.
func (q *Queue) Len() int { return q.codes.Len() }

// Cap returns the buffer capacity.
func (q *Queue) Cap() int { return q.codes.Cap() }

// Dropped returns how many scancodes were discarded on overflow.
func (q *Queue) Dropped() uint64 { return q.dropped.Load() }

// Stream is the consumer handle of a Queue.
type Stream struct {
	q *Queue
}

// Claim returns the queue's single consumer stream.
func (q *Queue) Claim() (*Stream, error) {
	if !q.claimed.CompareAndSwap(false, true) {
		return nil, ErrStreamClaimed
	}
	return &Stream{q: q}, nil
}

// PollValue implements kernel.ValueFuture for the next scancode.
func (s *Stream) PollValue(cx *kernel.Context) (uint8, kernel.Poll) {
	return s.q.PollNext(cx)
}
