package scancode

import (
	"sync/atomic"

	"kestrel/kestrelos/kernel"
)

// The keyboard interrupt handler has no call-provided context, so the queue
// it feeds lives here. It is set once before interrupts are enabled.
var (
	global    atomic.Pointer[Queue]
	globalLog atomic.Pointer[logHolder]
)

type logHolder struct {
	log kernel.Logger
}

// Init creates the process-wide queue.
func Init(capacity int, log kernel.Logger) error {
	q := NewQueue(capacity, log)
	if !global.CompareAndSwap(nil, q) {
		return ErrAlreadyInitialized
	}
	SetUninitializedLogger(log)
	return nil
}

// AddScancode is called by the keyboard interrupt handler.
func AddScancode(code uint8) {
	q := global.Load()
	if q == nil {
		if h := globalLog.Load(); h != nil {
			h.log.WriteLineString(msgUninitialized)
		}
		return
	}
	q.Add(code)
}

// SetUninitializedLogger sets where AddScancode reports scancodes that arrive
// before Init.
func SetUninitializedLogger(log kernel.Logger) {
	if log != nil {
		globalLog.Store(&logHolder{log: log})
	}
}

// NewStream claims the consumer side of the process-wide queue.
func NewStream() (*Stream, error) {
	q := global.Load()
	if q == nil {
		return nil, ErrNotInitialized
	}
	return q.Claim()
}
