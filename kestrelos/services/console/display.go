package console

import (
	"image/color"

	"kestrel/hal"

	"tinygo.org/x/drivers"
)

// fbDisplay draws on an RGB565 framebuffer for tinyterm.
type fbDisplay struct {
	fb hal.Framebuffer
}

func (d fbDisplay) usable() ([]byte, bool) {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return nil, false
	}
	buf := d.fb.Buffer()
	return buf, buf != nil
}

func (d fbDisplay) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	buf, ok := d.usable()
	if !ok {
		return
	}
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

func (d fbDisplay) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

func (d fbDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	buf, ok := d.usable()
	if !ok {
		return nil
	}
	w, h := d.fb.Width(), d.fb.Height()
	x0 := clamp(int(x), 0, w)
	y0 := clamp(int(y), 0, h)
	x1 := clamp(int(x)+int(width), 0, w)
	y1 := clamp(int(y)+int(height), 0, h)

	pixel := hal.RGB565(c.R, c.G, c.B)
	lo, hi := byte(pixel), byte(pixel>>8)
	stride := d.fb.StrideBytes()
	for py := y0; py < y1; py++ {
		row := py * stride
		for px := x0; px < x1; px++ {
			off := row + px*2
			if off+1 >= len(buf) {
				break
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
	return nil
}

func (d fbDisplay) SetScroll(line int16) {}

func (d fbDisplay) SetRotation(rotation drivers.Rotation) error { return nil }

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
