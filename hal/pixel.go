package hal

// RGB565 packs an 8-bit-per-channel color.
func RGB565(r, g, b uint8) uint16 {
	return uint16(r>>3)&0x1F<<11 | uint16(g>>2)&0x3F<<5 | uint16(b>>3)&0x1F
}

func rgb888From565(p uint16) (r, g, b uint8) {
	r = uint8(uint32(p>>11&0x1F) * 255 / 31)
	g = uint8(uint32(p>>5&0x3F) * 255 / 63)
	b = uint8(uint32(p&0x1F) * 255 / 31)
	return r, g, b
}
