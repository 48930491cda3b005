package render

import "image/color"

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		putRGBA(buf, i, palette[idx])
	}
}

// fillFieldRGBA shades a per-cell scalar field. Masked cells are left
// transparent so the layer underneath shows through.
func fillFieldRGBA(buf []byte, field []uint16, mask []bool, shade func(uint16) color.RGBA) {
	for i, v := range field {
		if i < len(mask) && mask[i] {
			putRGBA(buf, i, color.RGBA{})
			continue
		}
		putRGBA(buf, i, shade(v))
	}
}

func putRGBA(buf []byte, i int, c color.RGBA) {
	base := i * 4
	buf[base+0] = c.R
	buf[base+1] = c.G
	buf[base+2] = c.B
	buf[base+3] = c.A
}
