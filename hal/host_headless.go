//go:build !tinygo

package hal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"
)

// BootFunc runs the kernel on h until ctx is done.
type BootFunc func(ctx context.Context, h HAL) error

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	// Hz is the timer interrupt rate.
	Hz int
	// Ticks stops the machine after this many timer interrupts; 0 runs forever.
	Ticks uint64
	// Input, when set, is typed on the keyboard.
	Input io.Reader
	// RawTerminal ends log lines with CRLF for a terminal in raw mode.
	RawTerminal bool
}

// RunHeadless runs boot without opening a window.
func RunHeadless(ctx context.Context, boot BootFunc, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h := New().(*hostHAL)
	if cfg.RawTerminal {
		h.logger.eol = "\r\n"
	}
	if cfg.Input != nil {
		go h.kbd.feed(cfg.Input)
	}
	return h.run(ctx, boot, func(ctx context.Context) error {
		t := time.NewTicker(d)
		defer t.Stop()

		var tick uint64
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-t.C:
				h.timer.fire()
				tick++
				if cfg.Ticks > 0 && tick >= cfg.Ticks {
					return errStopped
				}
			}
		}
	})
}

var errStopped = errors.New("machine stopped")

// run boots the kernel next to the interrupt controller and clock. The
// machine powers off when any of them returns.
func (h *hostHAL) run(ctx context.Context, boot BootFunc, clock func(context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)
	stop := context.AfterFunc(gctx, h.cpu.stop)
	defer stop()

	g.Go(func() error {
		err := boot(gctx, h)
		if err == nil || errors.Is(err, context.Canceled) {
			return errStopped
		}
		return err
	})
	g.Go(func() error {
		h.irq.run(gctx, h.kbd.Events(), h.timer.Ticks())
		return nil
	})
	g.Go(func() error {
		return clock(gctx)
	})

	err := g.Wait()
	if errors.Is(err, errStopped) {
		return ctx.Err()
	}
	return err
}
