package kernel

// SimpleExecutor polls tasks round-robin with a no-op waker.
//
// It never sleeps and ignores wakeups: a pending task is re-queued at the back
// and polled again on the next pass. It exists to exercise futures without the
// interrupt-driven wakeup path.
type SimpleExecutor struct {
	queue []*Task
	polls int
}

// NewSimpleExecutor creates an empty executor.
func NewSimpleExecutor() *SimpleExecutor {
	return &SimpleExecutor{}
}

// Spawn appends f to the run queue.
func (e *SimpleExecutor) Spawn(f Future) TaskID {
	t := NewTask(f)
	e.queue = append(e.queue, t)
	return t.id
}

// Run polls until every task completed.
func (e *SimpleExecutor) Run() {
	cx := NewContext(NoopWaker())
	for len(e.queue) > 0 {
		t := e.queue[0]
		e.queue[0] = nil
		e.queue = e.queue[1:]
		e.polls++
		if t.Poll(cx) == Pending {
			e.queue = append(e.queue, t)
		}
	}
}

// Polls returns the number of polls performed so far.
func (e *SimpleExecutor) Polls() int { return e.polls }
