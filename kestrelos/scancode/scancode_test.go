package scancode

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"kestrel/kestrelos/kernel"
)

type lineLog struct {
	mu    sync.Mutex
	lines []string
}

func (l *lineLog) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, s)
}

func (l *lineLog) count(sub string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, line := range l.lines {
		if strings.Contains(line, sub) {
			n++
		}
	}
	return n
}

// reader drains a queue, recording every scancode, and never completes.
type reader struct {
	q     *Queue
	got   []uint8
	polls int
}

func (r *reader) Poll(cx *kernel.Context) kernel.Poll {
	r.polls++
	for {
		code, p := r.q.PollNext(cx)
		if p == kernel.Pending {
			return kernel.Pending
		}
		r.got = append(r.got, code)
	}
}

func drain(t *testing.T, q *Queue) []uint8 {
	t.Helper()
	cx := kernel.NewContext(kernel.NoopWaker())
	var out []uint8
	for {
		code, p := q.PollNext(cx)
		if p == kernel.Pending {
			return out
		}
		out = append(out, code)
	}
}

func TestQueueRoundTripPreservesOrder(t *testing.T) {
	q := NewQueue(8, nil)
	want := []uint8{0x1E, 0x9E, 0x30, 0xB0, 0x2E}
	for _, c := range want {
		q.Add(c)
	}

	got := drain(t, q)
	if string(got) != string(want) {
		t.Fatalf("drained % x, want % x", got, want)
	}
}

func TestQueueOverflowDropsExcess(t *testing.T) {
	log := &lineLog{}
	q := NewQueue(4, log)
	for i := 0; i < 5; i++ {
		q.Add(uint8(i))
	}

	if q.Dropped() != 1 {
		t.Fatalf("Dropped() = %d, want 1", q.Dropped())
	}
	if n := log.count(msgQueueFull); n != 1 {
		t.Fatalf("logged %d overflow warnings, want 1", n)
	}
	got := drain(t, q)
	if string(got) != string([]uint8{0, 1, 2, 3}) {
		t.Fatalf("drained % x, want 00 01 02 03", got)
	}
}

func TestQueueOverflowDropsExcessAtCapacityOne(t *testing.T) {
	log := &lineLog{}
	q := NewQueue(1, log)
	q.Add(0x1e)
	q.Add(0x9e)

	if q.Dropped() != 1 {
		t.Fatalf("Dropped() = %d, want 1", q.Dropped())
	}
	if n := log.count(msgQueueFull); n != 1 {
		t.Fatalf("logged %d overflow warnings, want 1", n)
	}
	got := drain(t, q)
	if string(got) != string([]uint8{0x1e}) {
		t.Fatalf("drained % x, want 1e", got)
	}

	q.Add(0x30)
	if got := drain(t, q); string(got) != string([]uint8{0x30}) {
		t.Fatalf("drained % x after refill, want 30", got)
	}
}

func TestPollNextRegistersWakerWhenEmpty(t *testing.T) {
	e := kernel.NewExecutor(kernel.Config{})
	q := NewQueue(4, nil)
	r := &reader{q: q}
	e.Spawn(r)

	e.RunUntilIdle()
	if r.polls != 1 || len(r.got) != 0 {
		t.Fatalf("polls = %d, got = % x, want 1 poll and nothing", r.polls, r.got)
	}

	q.Add(0x10)
	if e.Queue().Len() != 1 {
		t.Fatalf("ready queue Len() = %d after Add, want 1", e.Queue().Len())
	}
	e.RunUntilIdle()
	if r.polls != 2 || string(r.got) != "\x10" {
		t.Fatalf("polls = %d, got = % x, want 2 polls and 10", r.polls, r.got)
	}

	// Two scancodes before the next poll: one wakeup, one poll drains both.
	q.Add(0x11)
	q.Add(0x12)
	e.RunUntilIdle()
	if r.polls != 3 {
		t.Fatalf("polls = %d, want 3", r.polls)
	}
	if string(r.got) != "\x10\x11\x12" {
		t.Fatalf("got = % x, want 10 11 12", r.got)
	}
}

func TestPollNextClosesRegistrationRace(t *testing.T) {
	e := kernel.NewExecutor(kernel.Config{})
	q := NewQueue(4, nil)
	r := &reader{q: q}

	fired := false
	q.beforeRegister = func() {
		if fired {
			return
		}
		fired = true
		// The interrupt lands after the failed pop, while no waker is set.
		q.Add(0x1C)
	}
	e.Spawn(r)

	e.RunUntilIdle()
	if string(r.got) != "\x1c" {
		t.Fatalf("got = % x, want 1c", r.got)
	}
	if r.polls != 1 {
		t.Fatalf("polls = %d, want 1", r.polls)
	}
	if !e.Queue().Empty() {
		t.Fatal("ready queue not empty after race")
	}

	q.Add(0x9C)
	if got := e.RunUntilIdle(); got != 1 {
		t.Fatalf("RunUntilIdle() = %d polls for the next scancode, want 1", got)
	}
	if string(r.got) != "\x1c\x9c" {
		t.Fatalf("got = % x, want 1c 9c", r.got)
	}
}

func TestPollNextTakesBackWakerOnSecondPop(t *testing.T) {
	e := kernel.NewExecutor(kernel.Config{})
	var w kernel.Waker
	e.Spawn(kernel.FutureFunc(func(cx *kernel.Context) kernel.Poll {
		w = cx.Waker()
		return kernel.Pending
	}))
	e.RunUntilIdle()

	q := NewQueue(4, nil)
	q.beforeRegister = func() { q.Add(0x01) }
	code, p := q.PollNext(kernel.NewContext(w))
	if p != kernel.Ready || code != 0x01 {
		t.Fatalf("PollNext() = %x, %s, want 01, ready", code, p)
	}

	// With the waker taken back, a later scancode must not wake the task.
	q.beforeRegister = nil
	q.Add(0x02)
	if !e.Queue().Empty() {
		t.Fatal("stale waker fired after the consumer already returned data")
	}
}

func TestClaimOnce(t *testing.T) {
	q := NewQueue(1, nil)
	if _, err := q.Claim(); err != nil {
		t.Fatalf("Claim() error = %v", err)
	}
	if _, err := q.Claim(); !errors.Is(err, ErrStreamClaimed) {
		t.Fatalf("Claim() error = %v, want ErrStreamClaimed", err)
	}
}

func TestGlobalQueueLifecycle(t *testing.T) {
	log := &lineLog{}
	SetUninitializedLogger(log)

	AddScancode(0x01)
	if n := log.count(msgUninitialized); n != 1 {
		t.Fatalf("logged %d uninitialized warnings, want 1", n)
	}
	if _, err := NewStream(); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("NewStream() error = %v, want ErrNotInitialized", err)
	}

	if err := Init(2, log); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := Init(2, log); !errors.Is(err, ErrAlreadyInitialized) {
		t.Fatalf("Init() error = %v, want ErrAlreadyInitialized", err)
	}

	s, err := NewStream()
	if err != nil {
		t.Fatalf("NewStream() error = %v", err)
	}
	if _, err := NewStream(); !errors.Is(err, ErrStreamClaimed) {
		t.Fatalf("NewStream() error = %v, want ErrStreamClaimed", err)
	}

	AddScancode(0x2A)
	code, p := s.PollValue(kernel.NewContext(kernel.NoopWaker()))
	if p != kernel.Ready || code != 0x2A {
		t.Fatalf("PollValue() = %x, %s, want 2a, ready", code, p)
	}
}
