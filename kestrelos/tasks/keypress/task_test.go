package keypress

import (
	"bytes"
	"testing"

	"kestrel/kestrelos/kernel"
	"kestrel/kestrelos/ps2"
	"kestrel/kestrelos/scancode"
)

func typeEvents(q *scancode.Queue, evs ...ps2.Event) {
	var buf []byte
	for _, ev := range evs {
		buf = ps2.Encode(buf[:0], ev)
		for _, b := range buf {
			q.Add(b)
		}
	}
}

func TestEchoesTypedText(t *testing.T) {
	q := scancode.NewQueue(64, nil)
	s, err := q.Claim()
	if err != nil {
		t.Fatalf("Claim() error = %v", err)
	}
	var out bytes.Buffer
	ex := kernel.NewExecutor(kernel.Config{})
	if _, err := ex.Spawn(New(s, &out)); err != nil {
		t.Fatalf("Spawn() error = %v", err)
	}

	if polls := ex.RunUntilIdle(); polls != 1 {
		t.Fatalf("first RunUntilIdle() = %d polls, want 1", polls)
	}
	if out.Len() != 0 {
		t.Fatalf("output = %q before input, want empty", out.String())
	}

	for _, r := range "Hi!" {
		typeEvents(q, ps2.Event{Press: true, Rune: r})
	}
	typeEvents(q, ps2.Event{Press: true, Rune: '\n'})
	if polls := ex.RunUntilIdle(); polls != 1 {
		t.Fatalf("RunUntilIdle() = %d polls after typing, want 1", polls)
	}
	if got := out.String(); got != "Hi!\n" {
		t.Fatalf("output = %q, want %q", got, "Hi!\n")
	}
	if ex.Len() != 1 {
		t.Fatalf("Len() = %d, want the task to stay alive", ex.Len())
	}
}

func TestNamesSpecialKeys(t *testing.T) {
	q := scancode.NewQueue(16, nil)
	s, err := q.Claim()
	if err != nil {
		t.Fatalf("Claim() error = %v", err)
	}
	var out bytes.Buffer
	task := New(s, &out)

	typeEvents(q,
		ps2.Event{Code: ps2.KeyUp, Press: true},
		ps2.Event{Code: ps2.KeyUp},
		ps2.Event{Code: ps2.KeyF1, Press: true},
	)
	if p := task.Poll(kernel.NewContext(kernel.NoopWaker())); p != kernel.Pending {
		t.Fatalf("Poll() = %s, want pending", p)
	}
	if got, want := out.String(), ps2.KeyUp.String()+ps2.KeyF1.String(); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}
