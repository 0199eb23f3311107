package kernel

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// PanicInfo describes a panic raised while polling a task.
type PanicInfo struct {
	TaskID TaskID
	Value  any
	// Stack is the panicking goroutine's trace, or nil where the runtime
	// cannot produce one.
	Stack []byte
}

func (p PanicInfo) String() string {
	return fmt.Sprintf("task %d: %v", p.TaskID, p.Value)
}

var panicState struct {
	active  atomic.Bool
	once    sync.Once
	handler atomic.Pointer[func(PanicInfo)]
}

// InPanicMode reports whether a task has panicked.
func InPanicMode() bool {
	return panicState.active.Load()
}

// SetPanicHandler installs the process-wide handler for task panics. It runs
// once, for the first panic, on the goroutine that panicked. A nil fn removes
// the handler.
func SetPanicHandler(fn func(PanicInfo)) {
	if fn == nil {
		panicState.handler.Store(nil)
		return
	}
	panicState.handler.Store(&fn)
}

func triggerPanic(info PanicInfo) {
	panicState.once.Do(func() {
		panicState.active.Store(true)
		info.Stack = captureStack()
		if fn := panicState.handler.Load(); fn != nil {
			(*fn)(info)
		}
	})
}
