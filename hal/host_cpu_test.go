//go:build !tinygo

package hal

import (
	"bytes"
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"kestrel/kestrelos/ps2"
)

const testTimeout = 1 * time.Second

func TestHostCPUDeliverWaitsWhileMasked(t *testing.T) {
	cpu := newHostCPU()
	var ran atomic.Bool

	cpu.DisableInterrupts()
	done := make(chan struct{})
	go func() {
		cpu.deliver(func() { ran.Store(true) })
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	if ran.Load() {
		t.Fatalf("handler ran while interrupts were disabled")
	}
	cpu.EnableInterrupts()

	select {
	case <-done:
	case <-time.After(testTimeout):
		t.Fatal("timed out waiting for delivery")
	}
	if !ran.Load() {
		t.Fatalf("handler did not run after enable")
	}
}

func TestHostCPUHaltWakesOnInterrupt(t *testing.T) {
	cpu := newHostCPU()
	halted := make(chan struct{})
	go func() {
		cpu.DisableInterrupts()
		cpu.EnableAndHalt()
		close(halted)
	}()

	select {
	case <-halted:
		t.Fatalf("EnableAndHalt returned without an interrupt")
	case <-time.After(20 * time.Millisecond):
	}

	cpu.deliver(nil)
	select {
	case <-halted:
	case <-time.After(testTimeout):
		t.Fatal("timed out waiting for halt to end")
	}
}

func TestHostCPUStopEndsHalt(t *testing.T) {
	cpu := newHostCPU()
	halted := make(chan struct{})
	go func() {
		cpu.DisableInterrupts()
		cpu.EnableAndHalt()
		close(halted)
	}()

	cpu.stop()
	select {
	case <-halted:
	case <-time.After(testTimeout):
		t.Fatal("timed out waiting for halt to end")
	}
	if cpu.deliver(nil) {
		t.Fatalf("deliver() = true after stop, want false")
	}
}

func TestHostIRQDisabledDropsInterrupts(t *testing.T) {
	irq := newHostIRQ(newHostCPU())
	var got []uint8
	irq.SetKeyboardHandler(func(code uint8) { got = append(got, code) })

	irq.raiseKeyboard(0x1E)
	if len(got) != 0 {
		t.Fatalf("handler got %v before Enable, want nothing", got)
	}

	irq.Enable()
	irq.raiseKeyboard(0x1E)
	if len(got) != 1 || got[0] != 0x1E {
		t.Fatalf("handler got %v, want [0x1e]", got)
	}
}

func TestHostIRQRunEncodesKeys(t *testing.T) {
	irq := newHostIRQ(newHostCPU())
	codes := make(chan uint8, 16)
	var ticks atomic.Int32
	irq.SetKeyboardHandler(func(code uint8) { codes <- code })
	irq.SetTimerHandler(func() { ticks.Add(1) })
	irq.Enable()

	keys := make(chan ps2.Event, 1)
	tick := make(chan uint64, 1)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		irq.run(ctx, keys, tick)
		close(done)
	}()

	keys <- ps2.Event{Press: true, Rune: 'A'}
	want := []uint8{0x2A, 0x1E, 0x9E, 0xAA}
	for i, w := range want {
		select {
		case got := <-codes:
			if got != w {
				t.Fatalf("scancode %d = %#x, want %#x", i, got, w)
			}
		case <-time.After(testTimeout):
			t.Fatal("timed out waiting for scancode")
		}
	}

	tick <- 1
	deadline := time.Now().Add(testTimeout)
	for ticks.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for timer interrupt")
		}
		time.Sleep(time.Millisecond)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(testTimeout):
		t.Fatal("run did not return after cancel")
	}
}

func TestHostLoggerWritesLines(t *testing.T) {
	var buf bytes.Buffer
	l := newHostLogger(&buf)
	l.WriteLineString("Hello World!")
	l.WriteLineBytes([]byte("warning: scancode queue full; dropping keyboard input"))

	got := buf.String()
	if !strings.Contains(got, "Hello World!\n") {
		t.Fatalf("log = %q, want Hello World! line", got)
	}
	if !strings.Contains(got, "warning: scancode queue full") {
		t.Fatalf("log = %q, want warning line", got)
	}
}

func TestRunHeadlessStopsAfterTicks(t *testing.T) {
	var booted atomic.Bool
	boot := func(ctx context.Context, h HAL) error {
		booted.Store(true)
		<-ctx.Done()
		return ctx.Err()
	}

	errc := make(chan error, 1)
	go func() {
		errc <- RunHeadless(context.Background(), boot, HeadlessConfig{Hz: 1000, Ticks: 5})
	}()

	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("RunHeadless() = %v, want nil", err)
		}
	case <-time.After(testTimeout):
		t.Fatal("timed out waiting for RunHeadless")
	}
	if !booted.Load() {
		t.Fatalf("boot was not called")
	}
}
