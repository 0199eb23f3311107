//go:build !tinygo

package hal

// hostTimer is the simulated timer chip. Each fire publishes a sequence
// number; fires that find the channel full are lost, like a latched timer
// interrupt that was never serviced.
type hostTimer struct {
	ch   chan uint64
	seq  uint64
	lost uint64
}

func newHostTimer() *hostTimer {
	return &hostTimer{ch: make(chan uint64, 64)}
}

func (t *hostTimer) Ticks() <-chan uint64 { return t.ch }

// fire is called by the runner's clock goroutine only.
func (t *hostTimer) fire() {
	t.seq++
	select {
	case t.ch <- t.seq:
	default:
		t.lost++
	}
}
