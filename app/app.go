// Package app boots the kernel on a HAL.
package app

import (
	"context"
	"fmt"
	"sync/atomic"

	"kestrel/hal"
	"kestrel/kestrelos/kernel"
	"kestrel/kestrelos/scancode"
	"kestrel/kestrelos/services/console"
	"kestrel/kestrelos/tasks/bootmsg"
	"kestrel/kestrelos/tasks/keypress"
)

// System is a booted machine.
type System struct {
	h       hal.HAL
	console *console.Console
	ex      *kernel.Executor
	ticks   atomic.Uint64
}

// Ticks returns the number of timer interrupts seen since boot.
func (s *System) Ticks() uint64 { return s.ticks.Load() }

// Executor returns the kernel executor.
func (s *System) Executor() *kernel.Executor { return s.ex }

// Console returns the screen console.
func (s *System) Console() *console.Console { return s.console }

func newConsole(h hal.HAL) *console.Console {
	var fb hal.Framebuffer
	if d := h.Display(); d != nil {
		fb = d.Framebuffer()
	}
	return console.New(fb, h.Logger())
}

// Init brings the machine up to the point where tasks can run: console,
// panic screen, heap, scancode queue and interrupt handlers. Interrupts are
// enabled on return.
func Init(h hal.HAL, cfg Config) (*System, error) {
	s := &System{h: h, console: newConsole(h)}
	s.console.WriteLineString("Hello World!")
	installPanicHandler(h)

	if err := h.Memory().InitHeap(); err != nil {
		err = fmt.Errorf("heap initialization failed: %w", err)
		s.console.WriteLineString("fatal: " + err.Error())
		return nil, err
	}

	if err := scancode.Init(cfg.Keyboard.QueueCapacity, h.Logger()); err != nil {
		return nil, err
	}

	irq := h.Interrupts()
	irq.SetKeyboardHandler(scancode.AddScancode)
	irq.SetTimerHandler(func() { s.ticks.Add(1) })
	irq.Enable()

	s.ex = kernel.NewExecutor(kernel.Config{
		QueueCapacity: cfg.Executor.QueueCapacity,
		CPU:           h.CPU(),
		Logger:        h.Logger(),
	})
	return s, nil
}

// Run spawns the boot tasks and runs the executor until ctx is done.
func (s *System) Run(ctx context.Context) error {
	if _, err := s.ex.Spawn(bootmsg.New(s.console)); err != nil {
		return err
	}
	codes, err := scancode.NewStream()
	if err != nil {
		return err
	}
	if _, err := s.ex.Spawn(keypress.New(codes, s.console)); err != nil {
		return err
	}
	return s.ex.Run(ctx)
}

// Boot initializes the machine and runs it until ctx is done.
func Boot(ctx context.Context, h hal.HAL, cfg Config) error {
	s, err := Init(h, cfg)
	if err != nil {
		return err
	}
	return s.Run(ctx)
}

// Halt idles the CPU forever, waking only to service interrupts.
func Halt(cpu hal.CPU) {
	for {
		cpu.DisableInterrupts()
		cpu.EnableAndHalt()
	}
}
