package qoi

import (
	"math"
)

// Pix16 returns the pixel buffer widened to 16 bits per channel. Each byte
// is replicated into the high and low byte, mapping 0 to 0 and 255 to
// 0xffff.
func (m *Image) Pix16() []uint16 {
	out := make([]uint16, len(m.Pix))
	for i, v := range m.Pix {
		out[i] = uint16(v)<<8 | uint16(v)
	}
	return out
}

// PixFloat returns the pixel buffer expanded to floats. Color channels map
// through pow(v/255, gamma)*scale; an alpha channel, if present, maps
// linearly to v/255. Pass gamma 2.2 and scale 1 for the conventional
// LDR-to-HDR expansion.
func (m *Image) PixFloat(gamma, scale float64) []float32 {
	out := make([]float32, len(m.Pix))

	// Number of non-alpha channels per pixel.
	comp := m.Channels
	n := comp
	if comp%2 == 0 {
		n = comp - 1
	}

	for i := 0; i < len(m.Pix)/comp; i++ {
		for k := 0; k < n; k++ {
			v := m.Pix[i*comp+k]
			out[i*comp+k] = float32(math.Pow(float64(v)/255, gamma) * scale)
		}
		if n < comp {
			out[i*comp+n] = float32(m.Pix[i*comp+n]) / 255
		}
	}
	return out
}
