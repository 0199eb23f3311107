package kernel

// CPU is the interrupt-mask and idle primitive the executor sleeps with.
//
// EnableAndHalt is called with interrupts disabled and must unmask and wait
// for the next interrupt as one indivisible step: an interrupt that became
// pending while masked makes it return immediately.
type CPU interface {
	DisableInterrupts()
	EnableInterrupts()
	EnableAndHalt()
}

// spinCPU never sleeps. It is used when no CPU is configured.
type spinCPU struct{}

func (spinCPU) DisableInterrupts() {}
func (spinCPU) EnableInterrupts()  {}
func (spinCPU) EnableAndHalt()     {}
