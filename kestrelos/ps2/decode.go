package ps2

// Decoder turns a scancode byte stream into key events.
//
// It tracks modifier state, so one Decoder must see every byte of a stream.
type Decoder struct {
	extended   bool
	leftShift  bool
	rightShift bool
	ctrl       bool
	capsLock   bool
}

// Add feeds one byte and returns an event when the byte completes one.
//
// Printable keys produce an event only when pressed; Code keys produce both
// press and release events. Modifiers update state and produce nothing.
func (d *Decoder) Add(b byte) (Event, bool) {
	if b == prefixExtended {
		d.extended = true
		return Event{}, false
	}

	press := b&breakBit == 0
	code := b &^ breakBit
	extended := d.extended
	d.extended = false

	if extended {
		if code == scCtrl {
			d.ctrl = press
			return Event{}, false
		}
		if kc, ok := extendedKeys[code]; ok {
			return Event{Code: kc, Press: press}, true
		}
		return Event{}, false
	}

	switch code {
	case scLeftShift:
		d.leftShift = press
		return Event{}, false
	case scRightShift:
		d.rightShift = press
		return Event{}, false
	case scCtrl:
		d.ctrl = press
		return Event{}, false
	case scAlt:
		return Event{}, false
	case scCapsLock:
		if press {
			d.capsLock = !d.capsLock
		}
		return Event{}, false
	}

	if kc, ok := plainKeys[code]; ok {
		return Event{Code: kc, Press: press}, true
	}
	if !press || int(code) >= len(plainRunes) {
		return Event{}, false
	}
	r := plainRunes[code]
	if r == 0 {
		return Event{}, false
	}

	if r >= 'a' && r <= 'z' {
		if d.ctrl {
			return Event{Rune: r - 'a' + 1, Press: true}, true
		}
		if d.shifted() != d.capsLock {
			r = shiftedRunes[code]
		}
		return Event{Rune: r, Press: true}, true
	}
	if d.shifted() {
		r = shiftedRunes[code]
	}
	return Event{Rune: r, Press: true}, true
}

// Reset clears modifier and prefix state.
func (d *Decoder) Reset() {
	*d = Decoder{}
}

func (d *Decoder) shifted() bool {
	return d.leftShift || d.rightShift
}
