package app

import (
	"errors"
	"fmt"

	"kestrel/hal"
	"kestrel/kestrelos/kernel"
	"kestrel/kestrelos/ps2"
	"kestrel/kestrelos/scancode"
	"kestrel/kestrelos/tasks/bootmsg"
)

// SelfTest is an in-kernel test case run by RunSelfTests.
type SelfTest struct {
	Name string
	Run  func() error
}

// RunSelfTests runs tests in order, reports each on the logger and exits with
// ExitSuccess, or ExitFailed at the first failure.
func RunSelfTests(h hal.HAL, tests []SelfTest) {
	h.Exit(runSelfTests(h.Logger(), tests))
}

func runSelfTests(log hal.Logger, tests []SelfTest) hal.ExitCode {
	log.WriteLineString(fmt.Sprintf("Running %d tests", len(tests)))
	for _, t := range tests {
		if err := runSelfTest(t); err != nil {
			log.WriteLineString(t.Name + "...\t[failed]")
			log.WriteLineString("Error: " + err.Error())
			return hal.ExitFailed
		}
		log.WriteLineString(t.Name + "...\t[ok]")
	}
	return hal.ExitSuccess
}

func runSelfTest(t SelfTest) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return t.Run()
}

type captureLog struct {
	lines []string
}

func (l *captureLog) WriteLineString(s string) { l.lines = append(l.lines, s) }

// DefaultSelfTests covers the heap, the executor and the keyboard path.
func DefaultSelfTests() []SelfTest {
	return []SelfTest{
		{Name: "trivial_assertion", Run: func() error {
			if got := 1; got != 1 {
				return fmt.Errorf("got %d, want 1", got)
			}
			return nil
		}},
		{Name: "heap_allocation::simple_allocation", Run: func() error {
			a, b := new(uint64), new(uint64)
			*a, *b = 41, 13
			if *a != 41 || *b != 13 {
				return fmt.Errorf("boxes = %d, %d, want 41, 13", *a, *b)
			}
			return nil
		}},
		{Name: "heap_allocation::large_vec", Run: func() error {
			const n = 1000
			var v []uint64
			for i := uint64(0); i < n; i++ {
				v = append(v, i)
			}
			var sum uint64
			for _, x := range v {
				sum += x
			}
			if want := uint64((n - 1) * n / 2); sum != want {
				return fmt.Errorf("sum = %d, want %d", sum, want)
			}
			return nil
		}},
		{Name: "heap_allocation::many_boxes", Run: func() error {
			for i := 0; i < 10000; i++ {
				x := new(int)
				*x = i
				if *x != i {
					return fmt.Errorf("box %d = %d", i, *x)
				}
			}
			return nil
		}},
		{Name: "executor::async_number", Run: func() error {
			log := &captureLog{}
			ex := kernel.NewExecutor(kernel.Config{})
			if _, err := ex.Spawn(bootmsg.New(log)); err != nil {
				return err
			}
			if polls := ex.RunUntilIdle(); polls != 1 {
				return fmt.Errorf("polls = %d, want 1", polls)
			}
			if len(log.lines) != 1 || log.lines[0] != "async number: 42" {
				return fmt.Errorf("output = %q", log.lines)
			}
			return nil
		}},
		{Name: "executor::wake_order", Run: func() error {
			ex := kernel.NewExecutor(kernel.Config{QueueCapacity: 4})
			var order []int
			for i := 1; i <= 3; i++ {
				i := i
				if _, err := ex.Spawn(kernel.FutureFunc(func(*kernel.Context) kernel.Poll {
					order = append(order, i)
					return kernel.Ready
				})); err != nil {
					return err
				}
			}
			ex.RunUntilIdle()
			if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
				return fmt.Errorf("order = %v, want [1 2 3]", order)
			}
			return nil
		}},
		{Name: "keyboard::scancode_round_trip", Run: func() error {
			q := scancode.NewQueue(8, nil)
			s, err := q.Claim()
			if err != nil {
				return err
			}
			codes := ps2.Encode(nil, ps2.Event{Press: true, Rune: 'K'})
			for _, c := range codes {
				q.Add(c)
			}
			var dec ps2.Decoder
			cx := kernel.NewContext(kernel.NoopWaker())
			for {
				c, p := s.PollValue(cx)
				if p == kernel.Pending {
					return errors.New("no key event decoded")
				}
				if ev, ok := dec.Add(c); ok {
					if ev.Rune != 'K' {
						return fmt.Errorf("rune = %q, want 'K'", ev.Rune)
					}
					return nil
				}
			}
		}},
		{Name: "keyboard::overflow_drops_excess", Run: func() error {
			q := scancode.NewQueue(2, nil)
			for i := 0; i < 5; i++ {
				q.Add(uint8(i))
			}
			if q.Len() != 2 || q.Dropped() != 3 {
				return fmt.Errorf("len = %d dropped = %d, want 2 and 3", q.Len(), q.Dropped())
			}
			return nil
		}},
	}
}
