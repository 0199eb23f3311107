//go:build !tinygo

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"kestrel/app"
	"kestrel/hal"
	"kestrel/internal/buildinfo"
)

type options struct {
	configPath string
	selftest   bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	cfg := app.DefaultConfig()

	cmd := &cobra.Command{
		Use:           "kestrel",
		Short:         "Kestrel kernel on a simulated machine",
		Version:       buildinfo.Long(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.configPath != "" {
				fileCfg, err := app.LoadConfig(opts.configPath)
				if err != nil {
					return report(err)
				}
				applyFlags(cmd, &fileCfg, cfg)
				cfg = fileCfg
			}
			if err := cfg.Validate(); err != nil {
				return report(err)
			}
			return report(run(cmd.Context(), cfg, opts))
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "TOML config file")
	f.BoolVar(&opts.selftest, "selftest", false, "run the in-kernel self tests and exit")
	f.BoolVar(&cfg.Host.Headless, "headless", cfg.Host.Headless, "run without a window; stdin is the keyboard")
	f.IntVar(&cfg.Host.Hz, "hz", cfg.Host.Hz, "timer interrupt rate")
	f.Uint64Var(&cfg.Host.Ticks, "ticks", cfg.Host.Ticks, "stop after N timer interrupts in headless mode (0 = run forever)")
	return cmd
}

// applyFlags copies explicitly set flags over values loaded from a file.
func applyFlags(cmd *cobra.Command, dst *app.Config, flags app.Config) {
	f := cmd.Flags()
	if f.Changed("headless") {
		dst.Host.Headless = flags.Host.Headless
	}
	if f.Changed("hz") {
		dst.Host.Hz = flags.Host.Hz
	}
	if f.Changed("ticks") {
		dst.Host.Ticks = flags.Host.Ticks
	}
}

func report(err error) error {
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "kestrel:", err)
		return err
	}
	return nil
}

func run(ctx context.Context, cfg app.Config, opts options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	boot := func(ctx context.Context, h hal.HAL) error {
		if opts.selftest {
			app.RunSelfTests(h, app.DefaultSelfTests())
			return nil
		}
		return app.Boot(ctx, h, cfg)
	}

	if !cfg.Host.Headless && !opts.selftest {
		return hal.RunWindow(ctx, boot, cfg.Host.Hz)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	hcfg := hal.HeadlessConfig{Hz: cfg.Host.Hz, Ticks: cfg.Host.Ticks}
	if !opts.selftest {
		in, raw, restore, err := keyboardInput(cancel)
		if err != nil {
			return err
		}
		defer restore()
		hcfg.Input = in
		hcfg.RawTerminal = raw
	}
	return hal.RunHeadless(ctx, boot, hcfg)
}

// keyboardInput returns stdin as the headless keyboard. A terminal is switched
// to raw mode so every key arrives on its own; Ctrl-C then stops the machine.
func keyboardInput(cancel context.CancelFunc) (in io.Reader, raw bool, restore func(), err error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return os.Stdin, false, func() {}, nil
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, false, nil, fmt.Errorf("raw terminal: %w", err)
	}
	restore = func() { _ = term.Restore(fd, state) }
	return &interruptReader{r: os.Stdin, cancel: cancel}, true, restore, nil
}

// interruptReader ends the stream at Ctrl-C.
type interruptReader struct {
	r      io.Reader
	cancel context.CancelFunc
}

func (ir *interruptReader) Read(p []byte) (int, error) {
	n, err := ir.r.Read(p)
	for i := 0; i < n; i++ {
		if p[i] == 0x03 {
			ir.cancel()
			return i, io.EOF
		}
	}
	return n, err
}
