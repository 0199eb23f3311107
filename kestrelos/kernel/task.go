package kernel

// Task owns one future and the ID it is scheduled under.
//
// The future lives on the heap behind an interface for the whole life of the
// task, so state machines may keep pointers into themselves across suspension
// points.
type Task struct {
	id     TaskID
	future Future
}

// NewTask wraps f in a task with a fresh ID.
//
// A nil future produces a task that completes on its first poll.
func NewTask(f Future) *Task {
	return &Task{id: NewTaskID(), future: f}
}

// ID returns the task ID.
func (t *Task) ID() TaskID { return t.id }

// Poll advances the task's future by one step.
func (t *Task) Poll(cx *Context) Poll {
	if t.future == nil {
		return Ready
	}
	return t.future.Poll(cx)
}
