package qoi

import (
	"fmt"
)

// luma reduces an RGB triple to a single grey value.
func luma(r, g, b byte) byte {
	return byte((77*int(r) + 150*int(g) + 29*int(b)) >> 8)
}

// ConvertChannels remaps a raw pixel buffer from one interleaved channel
// count to another (1 = grey, 2 = grey+alpha, 3 = RGB, 4 = RGBA). Grey is
// synthesized from RGB with a luma formula, a missing alpha channel becomes
// fully opaque, and dropping alpha simply discards the channel. from == to
// returns pix unchanged.
func ConvertChannels(pix []byte, width, height, from, to int) ([]byte, error) {
	if from == to {
		return pix, nil
	}
	if from < 1 || from > 4 || to < 1 || to > 4 {
		return nil, fmt.Errorf("%w: %d to %d channels", ErrUnsupportedConversion, from, to)
	}
	size, ok := pixelBufferSize(to, width, height)
	if !ok {
		return nil, fmt.Errorf("%w: %dx%dx%d overflows", ErrInvalidSize, width, height, to)
	}
	out := make([]byte, size)

	for j := 0; j < height; j++ {
		src := pix[j*width*from:]
		dst := out[j*width*to:]
		for i := 0; i < width; i++ {
			s := src[i*from : i*from+from]
			d := dst[i*to : i*to+to]
			switch from*8 + to {
			case 1*8 + 2:
				d[0], d[1] = s[0], 255
			case 1*8 + 3:
				d[0], d[1], d[2] = s[0], s[0], s[0]
			case 1*8 + 4:
				d[0], d[1], d[2], d[3] = s[0], s[0], s[0], 255
			case 2*8 + 1:
				d[0] = s[0]
			case 2*8 + 3:
				d[0], d[1], d[2] = s[0], s[0], s[0]
			case 2*8 + 4:
				d[0], d[1], d[2], d[3] = s[0], s[0], s[0], s[1]
			case 3*8 + 1:
				d[0] = luma(s[0], s[1], s[2])
			case 3*8 + 2:
				d[0], d[1] = luma(s[0], s[1], s[2]), 255
			case 3*8 + 4:
				d[0], d[1], d[2], d[3] = s[0], s[1], s[2], 255
			case 4*8 + 1:
				d[0] = luma(s[0], s[1], s[2])
			case 4*8 + 2:
				d[0], d[1] = luma(s[0], s[1], s[2]), s[3]
			case 4*8 + 3:
				d[0], d[1], d[2] = s[0], s[1], s[2]
			}
		}
	}
	return out, nil
}
