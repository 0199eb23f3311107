package ps2

type runeKey struct {
	code  byte
	shift bool
}

var runeCodes = func() map[rune]runeKey {
	m := make(map[rune]runeKey, 2*len(plainRunes))
	for i := len(plainRunes) - 1; i >= 0; i-- {
		if r := shiftedRunes[i]; r != 0 {
			m[r] = runeKey{code: byte(i), shift: true}
		}
	}
	for i, r := range plainRunes {
		if r != 0 {
			m[r] = runeKey{code: byte(i)}
		}
	}
	return m
}()

var codeKeys = func() map[KeyCode][2]byte {
	m := make(map[KeyCode][2]byte, len(plainKeys)+len(extendedKeys))
	for sc, kc := range extendedKeys {
		if kc == KeyEnter {
			continue
		}
		m[kc] = [2]byte{prefixExtended, sc}
	}
	for sc, kc := range plainKeys {
		m[kc] = [2]byte{0, sc}
	}
	return m
}()

// Encode appends the set 1 bytes a keyboard would send for ev.
//
// Rune events encode a full press and release (wrapped in shift or ctrl when
// needed). Unknown runes append nothing.
func Encode(dst []byte, ev Event) []byte {
	if ev.Code != KeyUnknown {
		sc, ok := codeKeys[ev.Code]
		if !ok {
			return dst
		}
		b := sc[1]
		if !ev.Press {
			b |= breakBit
		}
		if sc[0] != 0 {
			dst = append(dst, sc[0])
		}
		return append(dst, b)
	}

	switch r := ev.Rune; {
	case r == 0 || !ev.Press:
		return dst
	case r == '\n' || r == '\r':
		return Encode(Encode(dst, Event{Code: KeyEnter, Press: true}), Event{Code: KeyEnter})
	case r == '\b' || r == 0x7F:
		return Encode(Encode(dst, Event{Code: KeyBackspace, Press: true}), Event{Code: KeyBackspace})
	case r == '\t':
		return Encode(Encode(dst, Event{Code: KeyTab, Press: true}), Event{Code: KeyTab})
	case r >= 0x01 && r <= 0x1A:
		rc := runeCodes['a'+r-1]
		return append(dst, scCtrl, rc.code, rc.code|breakBit, scCtrl|breakBit)
	}

	rc, ok := runeCodes[ev.Rune]
	if !ok {
		return dst
	}
	if rc.shift {
		dst = append(dst, scLeftShift)
	}
	dst = append(dst, rc.code, rc.code|breakBit)
	if rc.shift {
		dst = append(dst, scLeftShift|breakBit)
	}
	return dst
}
