//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
)

type hostHAL struct {
	logger *hostLogger
	fb     *hostFramebuffer
	kbd    *hostKeyboard
	timer  *hostTimer
	cpu    *hostCPU
	irq    *hostIRQ
}

// New returns a host HAL implementation.
func New() HAL {
	cpu := newHostCPU()
	return &hostHAL{
		logger: newHostLogger(os.Stdout),
		fb:     newHostFramebuffer(320, 240),
		kbd:    newHostKeyboard(),
		timer:  newHostTimer(),
		cpu:    cpu,
		irq:    newHostIRQ(cpu),
	}
}

func (h *hostHAL) Logger() Logger         { return h.logger }
func (h *hostHAL) Display() Display       { return hostDisplay{fb: h.fb} }
func (h *hostHAL) CPU() CPU               { return h.cpu }
func (h *hostHAL) Interrupts() Interrupts { return h.irq }
func (h *hostHAL) Memory() Memory         { return hostMemory{} }

// Exit terminates the process with the harness exit code.
func (h *hostHAL) Exit(code ExitCode) {
	h.logger.WriteLineString(fmt.Sprintf("exit: 0x%02x", uint32(code)))
	os.Exit(int(code))
}

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

// The host heap belongs to the Go runtime.
type hostMemory struct{}

func (hostMemory) InitHeap() error { return nil }

type hostLogger struct {
	mu   sync.Mutex
	w    io.Writer
	warn *color.Color
	fail *color.Color
	// eol is "\r\n" while stdout is a terminal in raw mode.
	eol string
}

func newHostLogger(w io.Writer) *hostLogger {
	return &hostLogger{
		w:    w,
		warn: color.New(color.FgYellow),
		fail: color.New(color.FgRed, color.Bold),
		eol:  "\n",
	}
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	switch {
	case strings.HasPrefix(s, "warning:"):
		l.warn.Fprint(l.w, s)
	case strings.HasPrefix(s, "panic:"), strings.HasPrefix(s, "fatal:"):
		l.fail.Fprint(l.w, s)
	default:
		io.WriteString(l.w, s)
	}
	io.WriteString(l.w, l.eol)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.WriteLineString(string(b))
}
