//go:build !tinygo && cgo

package hal

import (
	"context"
	"errors"

	"github.com/hajimehoshi/ebiten/v2"

	"kestrel/internal/buildinfo"
)

// RunWindow boots the kernel behind a desktop window that shows the
// framebuffer and forwards keyboard input. ebiten owns the calling goroutine;
// RunWindow blocks until the window closes or the kernel stops.
func RunWindow(ctx context.Context, boot BootFunc, hz int) error {
	if hz <= 0 {
		hz = 60
	}
	h := New().(*hostHAL)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	done := make(chan error, 1)
	ticks := make(chan struct{}, 1)
	go func() {
		done <- h.run(ctx, boot, func(ctx context.Context) error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticks:
					h.timer.fire()
				}
			}
		})
	}()

	g := &hostGame{h: h, ctx: ctx, ticks: ticks}
	ebiten.SetWindowTitle("Kestrel (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*2, h.fb.height*2)
	ebiten.SetTPS(hz)
	err := ebiten.RunGame(g)
	cancel()
	runErr := <-done
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}

type hostGame struct {
	h     *hostHAL
	ctx   context.Context
	ticks chan<- struct{}
	fbImg *ebiten.Image
	pix   []byte
}

func (g *hostGame) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	g.h.kbd.poll()
	select {
	case g.ticks <- struct{}{}:
	default:
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.fbImg == nil {
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
		g.pix = make([]byte, fb.width*fb.height*4)
	}
	fb.snapshotRGBA(g.pix)
	g.fbImg.WritePixels(g.pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
