// Package console prints text on the screen.
//
// Every line also goes to the serial logger, so output stays visible on
// machines without a display.
package console

import (
	"sync"

	"kestrel/hal"

	"tinygo.org/x/tinyfont/proggy"
	"tinygo.org/x/tinyterm"
)

// Console is a text terminal over a framebuffer. It is safe for concurrent
// use, but must not be written from interrupt handlers.
type Console struct {
	mu     sync.Mutex
	fb     hal.Framebuffer
	term   *tinyterm.Terminal
	serial hal.Logger
	line   []byte
}

// New returns a Console drawing on fb and mirroring to serial. Either may be
// nil.
func New(fb hal.Framebuffer, serial hal.Logger) *Console {
	c := &Console{fb: fb, serial: serial}
	c.reset()
	return c
}

func (c *Console) reset() {
	if c.fb == nil || c.fb.Buffer() == nil {
		c.term = nil
		return
	}
	c.term = tinyterm.NewTerminal(fbDisplay{fb: c.fb})
	c.term.Configure(&tinyterm.Config{
		Font:              &proggy.TinySZ8pt7b,
		FontHeight:        10,
		FontOffset:        6,
		UseSoftwareScroll: true,
	})
	c.fb.ClearRGB(0, 0, 0)
	_ = c.fb.Present()
}

// Write prints p without a trailing newline. Complete lines are flushed to
// the serial logger, the rest is held until the next newline.
func (c *Console) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.draw(p)
	for _, b := range p {
		if b == '\n' {
			c.flushLine()
			continue
		}
		c.line = append(c.line, b)
	}
	return len(p), nil
}

func (c *Console) WriteLineString(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.draw([]byte(s))
	c.draw([]byte{'\n'})
	c.line = append(c.line, s...)
	c.flushLine()
}

func (c *Console) WriteLineBytes(b []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.draw(b)
	c.draw([]byte{'\n'})
	c.line = append(c.line, b...)
	c.flushLine()
}

// Clear blanks the screen and drops any partial line.
func (c *Console) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.line = c.line[:0]
	c.reset()
}

func (c *Console) draw(p []byte) {
	if c.term == nil {
		return
	}
	_, _ = c.term.Write(p)
	c.term.Display()
}

func (c *Console) flushLine() {
	if c.serial != nil {
		c.serial.WriteLineBytes(c.line)
	}
	c.line = c.line[:0]
}
