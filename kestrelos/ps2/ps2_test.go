package ps2

import "testing"

func decodeAll(d *Decoder, bs []byte) []Event {
	var out []Event
	for _, b := range bs {
		if ev, ok := d.Add(b); ok {
			out = append(out, ev)
		}
	}
	return out
}

func TestDecodeLowercaseAndShift(t *testing.T) {
	var d Decoder
	// h, shift+i
	evs := decodeAll(&d, []byte{0x23, 0xA3, 0x2A, 0x17, 0x97, 0xAA, 0x17})
	want := []rune{'h', 'I', 'i'}
	if len(evs) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(evs), len(want), evs)
	}
	for i, r := range want {
		if evs[i].Rune != r || !evs[i].Press {
			t.Fatalf("event %d = %+v, want press %q", i, evs[i], r)
		}
	}
}

func TestDecodeCapsLockTogglesLetters(t *testing.T) {
	var d Decoder
	evs := decodeAll(&d, []byte{0x3A, 0xBA, 0x1E, 0x02, 0x3A, 0xBA, 0x1E})
	got := string([]rune{evs[0].Rune, evs[1].Rune, evs[2].Rune})
	if got != "A1a" {
		t.Fatalf("decoded %q, want %q", got, "A1a")
	}
}

func TestDecodeExtendedKeys(t *testing.T) {
	var d Decoder
	evs := decodeAll(&d, []byte{0xE0, 0x48, 0xE0, 0xC8, 0x1C})
	if len(evs) != 3 {
		t.Fatalf("got %d events, want 3: %+v", len(evs), evs)
	}
	if evs[0] != (Event{Code: KeyUp, Press: true}) {
		t.Fatalf("event 0 = %+v, want KeyUp press", evs[0])
	}
	if evs[1] != (Event{Code: KeyUp, Press: false}) {
		t.Fatalf("event 1 = %+v, want KeyUp release", evs[1])
	}
	if evs[2] != (Event{Code: KeyEnter, Press: true}) {
		t.Fatalf("event 2 = %+v, want KeyEnter press", evs[2])
	}
}

func TestDecodeCtrlLetter(t *testing.T) {
	var d Decoder
	evs := decodeAll(&d, Encode(nil, Event{Rune: 0x03, Press: true}))
	if len(evs) != 1 || evs[0].Rune != 0x03 {
		t.Fatalf("decoded %+v, want ctrl-c", evs)
	}
}

func TestEncodeDecodeRoundTripASCII(t *testing.T) {
	var d Decoder
	for r := rune(0x20); r <= 0x7E; r++ {
		bs := Encode(nil, Event{Rune: r, Press: true})
		if len(bs) == 0 {
			t.Fatalf("Encode(%q) = empty", r)
		}
		evs := decodeAll(&d, bs)
		if len(evs) != 1 || evs[0].Rune != r {
			t.Fatalf("round trip %q = %+v", r, evs)
		}
	}
}

func TestEncodeSpecialKeys(t *testing.T) {
	cases := []struct {
		ev   Event
		want []byte
	}{
		{Event{Code: KeyLeft, Press: true}, []byte{0xE0, 0x4B}},
		{Event{Code: KeyLeft}, []byte{0xE0, 0xCB}},
		{Event{Code: KeyEscape, Press: true}, []byte{0x01}},
		{Event{Rune: '\n', Press: true}, []byte{0x1C, 0x9C}},
		{Event{Rune: 'x'}, nil},
		{Event{Rune: 'é', Press: true}, nil},
	}
	for _, tc := range cases {
		got := Encode(nil, tc.ev)
		if string(got) != string(tc.want) {
			t.Fatalf("Encode(%+v) = % x, want % x", tc.ev, got, tc.want)
		}
	}
}

func TestKeyCodeString(t *testing.T) {
	if got := KeyF2.String(); got != "F2" {
		t.Fatalf("KeyF2.String() = %q, want F2", got)
	}
	if got := KeyCode(200).String(); got != "Unknown" {
		t.Fatalf("KeyCode(200).String() = %q, want Unknown", got)
	}
}
