package kernel

import (
	"errors"
	"sync/atomic"

	"kestrel/internal/ring"
)

// DefaultQueueCapacity is the ready queue size used when none is configured.
const DefaultQueueCapacity = 100

// ErrQueueFull is returned when a bounded queue has no free slot.
var ErrQueueFull = errors.New("queue full")

// ReadyQueue carries "poll this task again" notifications to the executor.
//
// Push may be called from any context, including interrupt handlers. Pop is
// reserved for the executor's run loop.
type ReadyQueue struct {
	ids     *ring.Ring[TaskID]
	dropped atomic.Uint64
}

// NewReadyQueue allocates a queue with the given fixed capacity.
func NewReadyQueue(capacity int) *ReadyQueue {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	return &ReadyQueue{ids: ring.New[TaskID](capacity)}
}

// Push enqueues id without blocking or allocating.
func (q *ReadyQueue) Push(id TaskID) error {
	if !q.ids.Push(id) {
		q.dropped.Add(1)
		return ErrQueueFull
	}
	return nil
}

// Pop dequeues the oldest notification.
func (q *ReadyQueue) Pop() (TaskID, bool) {
	return q.ids.Pop()
}

// Empty reports whether no notification is waiting.
func (q *ReadyQueue) Empty() bool { return q.ids.Empty() }

// Len returns a snapshot of the number of queued notifications.
func (q *ReadyQueue) Len() int { return q.ids.Len() }

// Cap returns the fixed capacity.
func (q *ReadyQueue) Cap() int { return q.ids.Cap() }

// Dropped returns how many pushes were rejected because the queue was full.
func (q *ReadyQueue) Dropped() uint64 { return q.dropped.Load() }
