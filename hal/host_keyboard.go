//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"kestrel/kestrelos/ps2"
)

var hostKeys = []struct {
	key  ebiten.Key
	code ps2.KeyCode
}{
	{ebiten.KeyArrowUp, ps2.KeyUp},
	{ebiten.KeyArrowDown, ps2.KeyDown},
	{ebiten.KeyArrowLeft, ps2.KeyLeft},
	{ebiten.KeyArrowRight, ps2.KeyRight},
	{ebiten.KeyEnter, ps2.KeyEnter},
	{ebiten.KeyEscape, ps2.KeyEscape},
	{ebiten.KeyBackspace, ps2.KeyBackspace},
	{ebiten.KeyTab, ps2.KeyTab},
	{ebiten.KeyDelete, ps2.KeyDelete},
	{ebiten.KeyHome, ps2.KeyHome},
	{ebiten.KeyEnd, ps2.KeyEnd},
	{ebiten.KeyF1, ps2.KeyF1},
	{ebiten.KeyF2, ps2.KeyF2},
	{ebiten.KeyF3, ps2.KeyF3},
}

var hostCtrlKeys = []struct {
	key ebiten.Key
	r   rune
}{
	{ebiten.KeyA, 0x01},
	{ebiten.KeyC, 0x03},
	{ebiten.KeyE, 0x05},
	{ebiten.KeyU, 0x15},
	{ebiten.KeyW, 0x17},
}

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

// poll samples ebiten's input state. It must run on the game loop.
func (k *hostKeyboard) poll() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
	if ctrl {
		for _, ck := range hostCtrlKeys {
			if inpututil.IsKeyJustPressed(ck.key) {
				k.emit(ps2.Event{Press: true, Rune: ck.r})
			}
		}
	}

	for _, r := range ebiten.AppendInputChars(nil) {
		k.emit(ps2.Event{Press: true, Rune: r})
	}

	for _, hk := range hostKeys {
		if inpututil.IsKeyJustPressed(hk.key) {
			k.emit(ps2.Event{Code: hk.code, Press: true})
		}
		if inpututil.IsKeyJustReleased(hk.key) {
			k.emit(ps2.Event{Code: hk.code})
		}
	}
}
