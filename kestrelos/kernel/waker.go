package kernel

import "sync/atomic"

// Logger is the diagnostic line sink used by the kernel.
type Logger interface {
	WriteLineString(s string)
}

const msgWakeDropped = "warning: ready queue full; dropping wakeup"

// Waker marks one task as ready to be polled again.
//
// A Waker is a small value: copying it is cloning it, and every copy pushes
// into the same shared ReadyQueue. The zero Waker does nothing.
type Waker struct {
	id    TaskID
	queue *ReadyQueue
	log   Logger
}

func newWaker(id TaskID, q *ReadyQueue, log Logger) Waker {
	return Waker{id: id, queue: q, log: log}
}

// NoopWaker returns a waker whose Wake has no effect.
func NoopWaker() Waker { return Waker{} }

// TaskID returns the task this waker belongs to.
func (w Waker) TaskID() TaskID { return w.id }

// Clone returns an equivalent waker.
func (w Waker) Clone() Waker { return w }

// Wake enqueues the task. It never blocks, never allocates and never fails the
// caller: on a full ready queue the wakeup is dropped with a warning.
func (w Waker) Wake() {
	if w.queue == nil {
		return
	}
	if err := w.queue.Push(w.id); err != nil && w.log != nil {
		w.log.WriteLineString(msgWakeDropped)
	}
}

const (
	awWaiting     uint32 = 0
	awRegistering uint32 = 1
	awWaking      uint32 = 2
)

// AtomicWaker is a single waker slot shared between one consumer task and an
// interrupt handler. Register and Wake never allocate and never block.
//
// The slot is guarded by a state word: only the side that moves it out of
// awWaiting may touch the stored waker. A wake that races a registration is
// handed to the registering side, which delivers it before returning.
// An AtomicWaker must not be copied after first use.
type AtomicWaker struct {
	state atomic.Uint32
	waker Waker
	has   bool
}

// Register stores w, replacing any previously registered waker. If a wake is
// in progress, w is woken instead of stored.
func (a *AtomicWaker) Register(w Waker) {
	if !a.state.CompareAndSwap(awWaiting, awRegistering) {
		// A concurrent Wake owns the slot and will consume the old waker;
		// the new one must not be lost.
		w.Wake()
		return
	}
	a.waker, a.has = w, true
	if a.state.CompareAndSwap(awRegistering, awWaiting) {
		return
	}
	// Wake ran while we held the slot.
	w, a.waker, a.has = a.waker, Waker{}, false
	a.state.Store(awWaiting)
	w.Wake()
}

// Take empties the slot and returns what it held.
func (a *AtomicWaker) Take() (Waker, bool) {
	for {
		cur := a.state.Load()
		if cur&awWaking != 0 {
			return Waker{}, false
		}
		if !a.state.CompareAndSwap(cur, cur|awWaking) {
			continue
		}
		if cur != awWaiting {
			// Register holds the slot and will see the wake bit.
			return Waker{}, false
		}
		w, ok := a.waker, a.has
		a.waker, a.has = Waker{}, false
		a.state.Store(awWaiting)
		return w, ok
	}
}

// Wake takes the registered waker, if any, and wakes it.
func (a *AtomicWaker) Wake() {
	if w, ok := a.Take(); ok {
		w.Wake()
	}
}
