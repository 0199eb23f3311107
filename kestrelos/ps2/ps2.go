// Package ps2 translates PS/2 scancode set 1 bytes to key events and back,
// using a US layout.
package ps2

// KeyCode identifies a non-printing key.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
	KeyDelete
	KeyHome
	KeyEnd
	KeyF1
	KeyF2
	KeyF3
)

func (k KeyCode) String() string {
	switch k {
	case KeyUp:
		return "ArrowUp"
	case KeyDown:
		return "ArrowDown"
	case KeyLeft:
		return "ArrowLeft"
	case KeyRight:
		return "ArrowRight"
	case KeyEnter:
		return "Enter"
	case KeyEscape:
		return "Escape"
	case KeyBackspace:
		return "Backspace"
	case KeyTab:
		return "Tab"
	case KeyDelete:
		return "Delete"
	case KeyHome:
		return "Home"
	case KeyEnd:
		return "End"
	case KeyF1:
		return "F1"
	case KeyF2:
		return "F2"
	case KeyF3:
		return "F3"
	default:
		return "Unknown"
	}
}

// Event is a decoded key event. Exactly one of Code and Rune is set.
type Event struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

const (
	prefixExtended byte = 0xE0
	breakBit       byte = 0x80

	scLeftShift  byte = 0x2A
	scRightShift byte = 0x36
	scCtrl       byte = 0x1D
	scAlt        byte = 0x38
	scCapsLock   byte = 0x3A
)

var plainRunes = [0x3A]rune{
	0x02: '1', 0x03: '2', 0x04: '3', 0x05: '4', 0x06: '5', 0x07: '6',
	0x08: '7', 0x09: '8', 0x0A: '9', 0x0B: '0', 0x0C: '-', 0x0D: '=',
	0x10: 'q', 0x11: 'w', 0x12: 'e', 0x13: 'r', 0x14: 't', 0x15: 'y',
	0x16: 'u', 0x17: 'i', 0x18: 'o', 0x19: 'p', 0x1A: '[', 0x1B: ']',
	0x1E: 'a', 0x1F: 's', 0x20: 'd', 0x21: 'f', 0x22: 'g', 0x23: 'h',
	0x24: 'j', 0x25: 'k', 0x26: 'l', 0x27: ';', 0x28: '\'', 0x29: '`',
	0x2B: '\\', 0x2C: 'z', 0x2D: 'x', 0x2E: 'c', 0x2F: 'v', 0x30: 'b',
	0x31: 'n', 0x32: 'm', 0x33: ',', 0x34: '.', 0x35: '/', 0x39: ' ',
}

var shiftedRunes = [0x3A]rune{
	0x02: '!', 0x03: '@', 0x04: '#', 0x05: '$', 0x06: '%', 0x07: '^',
	0x08: '&', 0x09: '*', 0x0A: '(', 0x0B: ')', 0x0C: '_', 0x0D: '+',
	0x10: 'Q', 0x11: 'W', 0x12: 'E', 0x13: 'R', 0x14: 'T', 0x15: 'Y',
	0x16: 'U', 0x17: 'I', 0x18: 'O', 0x19: 'P', 0x1A: '{', 0x1B: '}',
	0x1E: 'A', 0x1F: 'S', 0x20: 'D', 0x21: 'F', 0x22: 'G', 0x23: 'H',
	0x24: 'J', 0x25: 'K', 0x26: 'L', 0x27: ':', 0x28: '"', 0x29: '~',
	0x2B: '|', 0x2C: 'Z', 0x2D: 'X', 0x2E: 'C', 0x2F: 'V', 0x30: 'B',
	0x31: 'N', 0x32: 'M', 0x33: '<', 0x34: '>', 0x35: '?', 0x39: ' ',
}

// Keys with a plain set 1 make code.
var plainKeys = map[byte]KeyCode{
	0x01: KeyEscape,
	0x0E: KeyBackspace,
	0x0F: KeyTab,
	0x1C: KeyEnter,
	0x3B: KeyF1,
	0x3C: KeyF2,
	0x3D: KeyF3,
}

// Keys sent behind the 0xE0 prefix.
var extendedKeys = map[byte]KeyCode{
	0x1C: KeyEnter,
	0x47: KeyHome,
	0x48: KeyUp,
	0x4B: KeyLeft,
	0x4D: KeyRight,
	0x4F: KeyEnd,
	0x50: KeyDown,
	0x53: KeyDelete,
}
