//go:build tinygo && baremetal

package hal

import (
	"errors"
	"machine"
	"runtime"
)

type tinyGoDisplay struct{}

func (tinyGoDisplay) Framebuffer() Framebuffer { return nil }

var errNoHeap = errors.New("heap not available")

// The heap region is set up by the TinyGo runtime from the linker script;
// InitHeap checks that it is usable.
type tinyGoMemory struct{}

func (tinyGoMemory) InitHeap() error {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	if ms.HeapSys == 0 {
		return errNoHeap
	}
	return nil
}

// uartLogger writes CRLF-terminated lines. It is called from interrupt
// handlers too, so it writes byte by byte without buffering.
type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.endLine()
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for _, c := range b {
		l.uart.WriteByte(c)
	}
	l.endLine()
}

func (l *uartLogger) endLine() {
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}
