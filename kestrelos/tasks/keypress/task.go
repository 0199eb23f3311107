// Package keypress echoes keyboard input.
package keypress

import (
	"io"
	"unicode/utf8"

	"kestrel/kestrelos/kernel"
	"kestrel/kestrelos/ps2"
)

// Task decodes scancodes and writes what was typed to out. Printable keys
// are written as text, Enter as a newline, other keys by name.
//
// The scancode stream never ends, so the task never completes.
type Task struct {
	codes kernel.ValueFuture[uint8]
	dec   ps2.Decoder
	out   io.Writer
	buf   [utf8.UTFMax]byte
}

// New returns a task reading codes, usually the claimed scancode stream.
func New(codes kernel.ValueFuture[uint8], out io.Writer) *Task {
	return &Task{codes: codes, out: out}
}

func (t *Task) Poll(cx *kernel.Context) kernel.Poll {
	for {
		code, p := t.codes.PollValue(cx)
		if p == kernel.Pending {
			return kernel.Pending
		}
		if ev, ok := t.dec.Add(code); ok {
			t.print(ev)
		}
	}
}

func (t *Task) print(ev ps2.Event) {
	if !ev.Press || t.out == nil {
		return
	}
	switch {
	case ev.Code == ps2.KeyEnter:
		_, _ = io.WriteString(t.out, "\n")
	case ev.Code != ps2.KeyUnknown:
		_, _ = io.WriteString(t.out, ev.Code.String())
	default:
		n := utf8.EncodeRune(t.buf[:], ev.Rune)
		_, _ = t.out.Write(t.buf[:n])
	}
}
