package kernel

import "sync/atomic"

// TaskID identifies a spawned task. IDs are never reused.
type TaskID uint64

var lastTaskID atomic.Uint64

// NewTaskID returns a fresh process-wide unique ID.
//
// It is lock-free and safe to call from any context.
func NewTaskID() TaskID {
	return TaskID(lastTaskID.Add(1))
}
