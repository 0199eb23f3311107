//go:build !tinygo && !cgo

package hal

import "kestrel/kestrelos/ps2"

type hostKeyboard struct {
	ch chan ps2.Event
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan ps2.Event, 64)}
}

func (k *hostKeyboard) Events() <-chan ps2.Event { return k.ch }

func (k *hostKeyboard) emit(ev ps2.Event) {
	select {
	case k.ch <- ev:
	default:
	}
}

func (k *hostKeyboard) poll() {
	// No keyboard support without the window backend.
}
