//go:build tinygo && baremetal

package hal

import (
	"device/arm"
	"runtime/interrupt"
)

// armCPU masks with PRIMASK. WFI wakes on a pending interrupt even while
// masked, so halting first and unmasking after cannot miss a wakeup.
type armCPU struct {
	state interrupt.State
}

func (c *armCPU) DisableInterrupts() { c.state = interrupt.Disable() }
func (c *armCPU) EnableInterrupts()  { interrupt.Restore(c.state) }

func (c *armCPU) EnableAndHalt() {
	arm.Asm("wfi")
	interrupt.Restore(c.state)
}
