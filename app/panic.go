package app

import (
	"image/color"
	"strings"
	"unicode/utf8"

	"kestrel/hal"
	"kestrel/kestrelos/kernel"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

const (
	panicFontHeight = int16(10)
	panicFontOffset = int16(6)
)

// installPanicHandler reports the first task panic on the serial logger and
// paints it over the screen. The panic keeps unwinding afterwards.
func installPanicHandler(h hal.HAL) {
	kernel.SetPanicHandler(panicHandler(h))
}

// panicHandler never goes through the console: a panic can be raised while
// the console lock is held.
func panicHandler(h hal.HAL) func(kernel.PanicInfo) {
	return func(info kernel.PanicInfo) {
		lines := panicLines(info)
		if serial := h.Logger(); serial != nil {
			for _, line := range lines {
				serial.WriteLineString(line)
			}
		}

		disp := h.Display()
		if disp == nil {
			return
		}
		if fb := disp.Framebuffer(); fb != nil {
			drawPanic(fb, lines)
		}
	}
}

func panicLines(info kernel.PanicInfo) []string {
	lines := []string{"panic: " + info.String()}
	if len(info.Stack) == 0 {
		return append(lines, "stack: unavailable")
	}
	lines = append(lines, "stack:")
	for _, line := range strings.Split(string(info.Stack), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func drawPanic(fb hal.Framebuffer, lines []string) {
	font := &proggy.TinySZ8pt7b
	_, w := tinyfont.LineWidth(font, "0")
	fontWidth := int16(w)
	fb.ClearRGB(255, 255, 255)
	if fontWidth <= 0 {
		_ = fb.Present()
		return
	}

	d := panicDisplay{fb: fb}
	fg := color.RGBA{A: 255}
	cols := int16(fb.Width()) / fontWidth
	if cols <= 0 {
		cols = 1
	}
	maxH := int16(fb.Height())

	y := int16(0)
	for _, line := range lines {
		for len(line) > 0 {
			if y+panicFontHeight > maxH {
				_ = fb.Present()
				return
			}
			chunk, rest := takeRunes(line, cols)
			x := int16(0)
			for _, r := range chunk {
				tinyfont.DrawChar(d, font, x, y+panicFontOffset, r, fg)
				x += fontWidth
			}
			y += panicFontHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = fb.Present()
}

type panicDisplay struct {
	fb hal.Framebuffer
}

func (d panicDisplay) Size() (x, y int16) {
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d panicDisplay) SetPixel(x, y int16, c color.RGBA) {
	if d.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := d.fb.Buffer()
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}
	off := iy*d.fb.StrideBytes() + ix*2
	if off+1 >= len(buf) {
		return
	}
	pixel := hal.RGB565(c.R, c.G, c.B)
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d panicDisplay) Display() error { return nil }

func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	var i int
	for count := int16(0); i < len(s) && count < n; count++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return s[:i], s[i:]
}
