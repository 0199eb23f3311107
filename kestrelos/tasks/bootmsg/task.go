package bootmsg

import (
	"strconv"

	"kestrel/kestrelos/kernel"
)

// Task awaits a number and prints it once it resolves.
type Task struct {
	number kernel.ValueFuture[uint32]
	out    kernel.Logger
}

// New returns the boot message task, which prints "async number: 42".
func New(out kernel.Logger) *Task {
	return NewWith(kernel.Resolved[uint32](42), out)
}

// NewWith returns a task printing the value of number.
func NewWith(number kernel.ValueFuture[uint32], out kernel.Logger) *Task {
	return &Task{number: number, out: out}
}

func (t *Task) Poll(cx *kernel.Context) kernel.Poll {
	n, p := t.number.PollValue(cx)
	if p == kernel.Pending {
		return kernel.Pending
	}
	if t.out != nil {
		t.out.WriteLineString("async number: " + strconv.FormatUint(uint64(n), 10))
	}
	return kernel.Ready
}
