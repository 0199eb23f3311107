package bootmsg

import (
	"testing"

	"kestrel/kestrelos/kernel"
)

type lineLog struct {
	lines []string
}

func (l *lineLog) WriteLineString(s string) { l.lines = append(l.lines, s) }

// later stays pending until released, then wakes nothing: the test polls.
type later struct {
	ready bool
	v     uint32
}

func (l *later) PollValue(*kernel.Context) (uint32, kernel.Poll) {
	if !l.ready {
		return 0, kernel.Pending
	}
	return l.v, kernel.Ready
}

func TestPrintsAsyncNumberInOnePoll(t *testing.T) {
	log := &lineLog{}
	ex := kernel.NewExecutor(kernel.Config{})
	if _, err := ex.Spawn(New(log)); err != nil {
		t.Fatalf("Spawn() error = %v", err)
	}

	if polls := ex.RunUntilIdle(); polls != 1 {
		t.Fatalf("RunUntilIdle() = %d polls, want 1", polls)
	}
	if len(log.lines) != 1 || log.lines[0] != "async number: 42" {
		t.Fatalf("lines = %q, want [async number: 42]", log.lines)
	}
	if ex.Len() != 0 {
		t.Fatalf("Len() = %d after completion, want 0", ex.Len())
	}
}

func TestWaitsForPendingNumber(t *testing.T) {
	log := &lineLog{}
	n := &later{v: 7}
	task := NewWith(n, log)
	cx := kernel.NewContext(kernel.NoopWaker())

	if p := task.Poll(cx); p != kernel.Pending {
		t.Fatalf("Poll() = %s, want pending", p)
	}
	if len(log.lines) != 0 {
		t.Fatalf("lines = %q while pending, want none", log.lines)
	}

	n.ready = true
	if p := task.Poll(cx); p != kernel.Ready {
		t.Fatalf("Poll() = %s, want ready", p)
	}
	if len(log.lines) != 1 || log.lines[0] != "async number: 7" {
		t.Fatalf("lines = %q, want [async number: 7]", log.lines)
	}
}
