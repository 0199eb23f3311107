//go:build !tinygo

package hal

import (
	"bufio"
	"io"

	"kestrel/kestrelos/ps2"
)

// feed types the runes read from r on the host keyboard. It returns when r
// is exhausted; reads cannot be interrupted, so callers run it detached.
func (k *hostKeyboard) feed(r io.Reader) {
	br := bufio.NewReader(r)
	for {
		c, _, err := br.ReadRune()
		if err != nil {
			return
		}
		k.ch <- ps2.Event{Press: true, Rune: c}
	}
}
