//go:build !tinygo

package hal

import "sync"

// hostCPU models the interrupt mask with a mutex: interrupt delivery takes
// the same lock, so no handler runs while the kernel has interrupts disabled.
// Halting waits on a condition variable, which releases the mask and sleeps
// in one step.
type hostCPU struct {
	mu      sync.Mutex
	cond    *sync.Cond
	irqs    uint64
	stopped bool
}

func newHostCPU() *hostCPU {
	c := &hostCPU{}
	c.cond = sync.NewCond(&c.mu)
	return c
}

func (c *hostCPU) DisableInterrupts() { c.mu.Lock() }
func (c *hostCPU) EnableInterrupts()  { c.mu.Unlock() }

func (c *hostCPU) EnableAndHalt() {
	seen := c.irqs
	for c.irqs == seen && !c.stopped {
		c.cond.Wait()
	}
	c.mu.Unlock()
}

// deliver runs handler as an interrupt: it waits while interrupts are masked,
// then wakes a halted CPU. It reports false once the CPU is stopped.
func (c *hostCPU) deliver(handler func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return false
	}
	if handler != nil {
		handler()
	}
	c.irqs++
	c.cond.Broadcast()
	return true
}

// stop powers the CPU off: halts return immediately from now on.
func (c *hostCPU) stop() {
	c.mu.Lock()
	c.stopped = true
	c.cond.Broadcast()
	c.mu.Unlock()
}
