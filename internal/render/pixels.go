package render

import "image/color"

// fillPaletteRGBA converts palette indices into RGBA pixels in buf. Indices
// past the end of the palette use its last colour; an empty palette clears
// the buffer to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		col := palette[min(int(c), last)]
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// tint blends col over the pixel at base with strength in [0,1].
func tint(buf []byte, base int, col color.RGBA, strength float32) {
	if strength <= 0 {
		return
	}
	if strength > 1 {
		strength = 1
	}
	mix := func(dst, src uint8) uint8 {
		return uint8(float32(dst)*(1-strength) + float32(src)*strength)
	}
	buf[base+0] = mix(buf[base+0], col.R)
	buf[base+1] = mix(buf[base+1], col.G)
	buf[base+2] = mix(buf[base+2], col.B)
}
