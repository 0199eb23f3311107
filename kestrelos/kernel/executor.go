package kernel

import (
	"context"
	"fmt"
)

// Config configures an Executor.
type Config struct {
	// QueueCapacity bounds the ready queue. Zero selects DefaultQueueCapacity.
	QueueCapacity int
	// CPU is used to halt while idle. Nil spins instead of halting.
	CPU CPU
	// Logger receives diagnostics. Nil discards them.
	Logger Logger
}

// Stats counts executor activity.
type Stats struct {
	Polls     uint64
	Completed uint64
	Stale     uint64
	Halts     uint64
}

// Executor drives tasks on a single thread, polling a task only after its
// waker fired.
//
// Only the ready queue is shared with other contexts; the task table and the
// waker cache belong to the goroutine calling Run.
type Executor struct {
	tasks  map[TaskID]*Task
	wakers map[TaskID]Waker
	queue  *ReadyQueue
	cpu    CPU
	log    Logger

	cx    Context
	stats Stats
}

// NewExecutor creates an executor with an empty task table.
func NewExecutor(cfg Config) *Executor {
	cpu := cfg.CPU
	if cpu == nil {
		cpu = spinCPU{}
	}
	return &Executor{
		tasks:  make(map[TaskID]*Task),
		wakers: make(map[TaskID]Waker),
		queue:  NewReadyQueue(cfg.QueueCapacity),
		cpu:    cpu,
		log:    cfg.Logger,
	}
}

// Spawn schedules f as a new task. A new task is always ready to run.
//
// If the ready queue is full the task is not scheduled and the returned error
// wraps ErrQueueFull.
func (e *Executor) Spawn(f Future) (TaskID, error) {
	t := NewTask(f)
	if err := e.spawnTask(t); err != nil {
		return 0, err
	}
	return t.id, nil
}

func (e *Executor) spawnTask(t *Task) error {
	if _, ok := e.tasks[t.id]; ok {
		panic(fmt.Sprintf("kernel: task %d already spawned", t.id))
	}
	if err := e.queue.Push(t.id); err != nil {
		err = fmt.Errorf("spawn task %d: %w", t.id, err)
		e.logf("warning: %v", err)
		return err
	}
	e.tasks[t.id] = t
	return nil
}

// RunReady polls every task whose ID is in the ready queue, until the queue is
// empty.
func (e *Executor) RunReady() {
	for {
		id, ok := e.queue.Pop()
		if !ok {
			return
		}
		t, ok := e.tasks[id]
		if !ok {
			// Completed in an earlier cycle; duplicate wakeup.
			e.stats.Stale++
			continue
		}
		w, ok := e.wakers[id]
		if !ok {
			w = newWaker(id, e.queue, e.log)
			e.wakers[id] = w
		}
		e.cx.waker = w
		if e.poll(t, &e.cx) == Ready {
			delete(e.tasks, id)
			delete(e.wakers, id)
			e.stats.Completed++
		}
		e.cx = Context{}
	}
}

func (e *Executor) poll(t *Task, cx *Context) Poll {
	defer func() {
		if r := recover(); r != nil {
			triggerPanic(PanicInfo{TaskID: t.id, Value: r})
			panic(r)
		}
	}()
	e.stats.Polls++
	return t.Poll(cx)
}

// SleepIfIdle halts the CPU until the next interrupt if no task is ready.
//
// The queue is checked again with interrupts masked, and the CPU unmasks and
// halts in one step, so a wakeup arriving between the check and the halt is
// never slept through.
func (e *Executor) SleepIfIdle() {
	if !e.queue.Empty() {
		return
	}
	e.cpu.DisableInterrupts()
	if e.queue.Empty() {
		e.stats.Halts++
		e.cpu.EnableAndHalt()
		return
	}
	e.cpu.EnableInterrupts()
}

// Run executes tasks until ctx is done, halting whenever nothing is ready.
//
// The CPU implementation must return from EnableAndHalt once ctx is done, or
// Run keeps sleeping until the next interrupt.
func (e *Executor) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.RunReady()
		if ctx.Err() != nil {
			continue
		}
		e.SleepIfIdle()
	}
}

// RunUntilIdle polls ready tasks until the ready queue is empty and returns
// the number of polls performed.
func (e *Executor) RunUntilIdle() int {
	before := e.stats.Polls
	for !e.queue.Empty() {
		e.RunReady()
	}
	return int(e.stats.Polls - before)
}

// Len returns the number of live tasks.
func (e *Executor) Len() int { return len(e.tasks) }

// Stats returns a snapshot of the counters.
func (e *Executor) Stats() Stats { return e.stats }

// Queue returns the executor's ready queue.
func (e *Executor) Queue() *ReadyQueue { return e.queue }

func (e *Executor) logf(format string, args ...any) {
	if e.log == nil {
		return
	}
	e.log.WriteLineString(fmt.Sprintf(format, args...))
}
