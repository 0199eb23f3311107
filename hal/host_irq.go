//go:build !tinygo

package hal

import (
	"context"
	"sync/atomic"

	"kestrel/kestrelos/ps2"
)

// hostIRQ is the simulated interrupt controller. Device goroutines raise
// interrupts through it; handlers run on the raising goroutine, concurrently
// with the kernel unless the kernel masked interrupts.
type hostIRQ struct {
	cpu      *hostCPU
	enabled  atomic.Bool
	keyboard atomic.Pointer[func(uint8)]
	timer    atomic.Pointer[func()]
}

func newHostIRQ(cpu *hostCPU) *hostIRQ {
	return &hostIRQ{cpu: cpu}
}

func (irq *hostIRQ) SetKeyboardHandler(fn func(scancode uint8)) {
	irq.keyboard.Store(&fn)
}

func (irq *hostIRQ) SetTimerHandler(fn func()) {
	irq.timer.Store(&fn)
}

func (irq *hostIRQ) Enable() {
	irq.enabled.Store(true)
}

func (irq *hostIRQ) raiseKeyboard(code uint8) {
	if !irq.enabled.Load() {
		return
	}
	fn := irq.keyboard.Load()
	if fn == nil || *fn == nil {
		return
	}
	irq.cpu.deliver(func() { (*fn)(code) })
}

func (irq *hostIRQ) raiseTimer() {
	if !irq.enabled.Load() {
		return
	}
	fn := irq.timer.Load()
	if fn == nil || *fn == nil {
		irq.cpu.deliver(nil)
		return
	}
	irq.cpu.deliver(*fn)
}

// run turns device events into interrupts until ctx is done. Key events are
// sent as the set 1 bytes a PS/2 controller would produce.
func (irq *hostIRQ) run(ctx context.Context, keys <-chan ps2.Event, ticks <-chan uint64) error {
	var buf [8]byte
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-keys:
			if !ok {
				keys = nil
				continue
			}
			for _, b := range ps2.Encode(buf[:0], ev) {
				irq.raiseKeyboard(b)
			}
		case _, ok := <-ticks:
			if !ok {
				ticks = nil
				continue
			}
			irq.raiseTimer()
		}
	}
}
