//go:build tinygo && baremetal

package hal

import (
	"machine"
)

// Scancodes sent by the board button: set 1 space make and break.
const (
	buttonMake  = 0x39
	buttonBreak = 0xB9
)

type tinyGoHAL struct {
	logger *uartLogger
	cpu    *armCPU
	irq    *tinyGoIRQ
}

// New returns a Pico 2 (RP2350) HAL implementation.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
// Keyboard: a button on GP15 (to ground) types a space.
// No display is wired; console output goes to the UART only.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	button := machine.GP15
	button.Configure(machine.PinConfig{Mode: machine.PinInputPullup})

	return &tinyGoHAL{
		logger: &uartLogger{uart: uart},
		cpu:    &armCPU{},
		irq:    &tinyGoIRQ{button: button},
	}
}

func (h *tinyGoHAL) Logger() Logger         { return h.logger }
func (h *tinyGoHAL) Display() Display       { return tinyGoDisplay{} }
func (h *tinyGoHAL) CPU() CPU               { return h.cpu }
func (h *tinyGoHAL) Interrupts() Interrupts { return h.irq }
func (h *tinyGoHAL) Memory() Memory         { return tinyGoMemory{} }

// Exit has no harness to report to on hardware: it logs the code and parks.
func (h *tinyGoHAL) Exit(code ExitCode) {
	if code == ExitSuccess {
		h.logger.WriteLineString("exit: success")
	} else {
		h.logger.WriteLineString("exit: failed")
	}
	h.cpu.DisableInterrupts()
	for {
		h.cpu.EnableAndHalt()
		h.cpu.DisableInterrupts()
	}
}

type tinyGoIRQ struct {
	button   machine.Pin
	keyboard func(uint8)
	timer    func()
}

func (irq *tinyGoIRQ) SetKeyboardHandler(fn func(scancode uint8)) { irq.keyboard = fn }

// SetTimerHandler records fn. No timer interrupt is routed on this board yet.
func (irq *tinyGoIRQ) SetTimerHandler(fn func()) { irq.timer = fn }

func (irq *tinyGoIRQ) Enable() {
	kbd := irq.keyboard
	if kbd == nil {
		return
	}
	irq.button.SetInterrupt(machine.PinFalling|machine.PinRising, func(p machine.Pin) {
		if p.Get() {
			kbd(buttonBreak)
		} else {
			kbd(buttonMake)
		}
	})
}
