package qoi

import (
	"fmt"
	"image"
	"image/draw"
	"io"
)

// discardBackground is the fixed background translucent pixels are
// composited against when the caller asks to drop the alpha channel.
var discardBackground = [3]byte{255, 0, 255}

// Encode encodes an image to the QOI format and writes the bytes to w. The
// image is normalized to non-premultiplied RGBA first, so the stream always
// declares 4 channels.
func Encode(w io.Writer, img image.Image) error {
	return EncodeWithOptions(w, img, nil)
}

// EncodeWithOptions is Encode with explicit per-call options.
func EncodeWithOptions(w io.Writer, img image.Image, opts *Options) error {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return EncodePixels(w, dst.Pix, b.Dx(), b.Dy(), 4, opts)
}

// EncodePixels encodes a raw pixel buffer to the QOI format. The buffer is
// row-major, top-to-bottom, with channels interleaved per pixel: 1 = grey,
// 2 = grey+alpha, 3 = RGB, 4 = RGBA. Grey sources are replicated into R, G
// and B; a missing alpha channel defaults to 255. The header declares 4
// channels whenever the source format carries alpha (regardless of whether
// any pixel uses transparency) and 3 otherwise.
func EncodePixels(w io.Writer, pix []byte, width, height, channels int, opts *Options) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if channels < 1 || channels > 4 {
		return fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}
	need, ok := pixelBufferSize(channels, width, height)
	if !ok {
		return fmt.Errorf("%w: %dx%dx%d overflows", ErrInvalidSize, width, height, channels)
	}
	if len(pix) < need {
		return fmt.Errorf("%w: pixel buffer holds %d bytes, need %d", ErrInvalidSize, len(pix), need)
	}

	hasAlpha := (channels == 2 || channels == 4) && !opts.discardAlpha()

	bw := newByteWriter(w)
	bw.write([]byte(Magic))
	bw.writeUint32(uint32(width))
	bw.writeUint32(uint32(height))
	if hasAlpha {
		bw.writeByte(4)
	} else {
		bw.writeByte(3)
	}
	bw.writeByte(byte(opts.colorspace()))

	// Bottom-to-top scan when flipping on write.
	rowStart, rowDir := 0, 1
	if opts.flipVertical() {
		rowStart, rowDir = height-1, -1
	}

	prev := startPixel
	var cache [64]pixel
	run := 0

	total := width * height
	for i := 0; i < total; i++ {
		y := rowStart + (i/width)*rowDir
		x := i % width
		off := (y*width + x) * channels
		px := expandPixel(pix[off:off+channels], channels, hasAlpha)

		if px == prev {
			run++
			if run == maxRun || i == total-1 {
				bw.writeByte(opRun | byte(run-1))
				run = 0
			}
			continue
		}
		if run > 0 {
			bw.writeByte(opRun | byte(run-1))
			run = 0
		}

		hash := hashPixel(px)
		if cache[hash] == px {
			bw.writeByte(opIndex | hash)
			prev = px
			continue
		}
		cache[hash] = px

		if px[3] == prev[3] {
			// Deltas wrap at 8 bits on purpose.
			dr := int8(px[0] - prev[0])
			dg := int8(px[1] - prev[1])
			db := int8(px[2] - prev[2])

			switch {
			case dr >= -2 && dr <= 1 && dg >= -2 && dg <= 1 && db >= -2 && db <= 1:
				bw.writeByte(opDiff | byte(dr+2)<<4 | byte(dg+2)<<2 | byte(db+2))
			default:
				drDg := dr - dg
				dbDg := db - dg
				if drDg >= -8 && drDg <= 7 && dg >= -32 && dg <= 31 && dbDg >= -8 && dbDg <= 7 {
					bw.writeByte(opLuma | byte(dg+32))
					bw.writeByte(byte(drDg+8)<<4 | byte(dbDg+8))
				} else {
					bw.writeByte(opRgb)
					bw.write3(px[0], px[1], px[2])
				}
			}
		} else {
			bw.writeByte(opRgba)
			bw.write3(px[0], px[1], px[2])
			bw.writeByte(px[3])
		}
		prev = px
	}

	bw.write(endMarker[:])
	return bw.close()
}

// expandPixel widens one source pixel to 4 channels. A 4-channel source with
// hasAlpha false is composited against the magenta discard background.
func expandPixel(src []byte, channels int, hasAlpha bool) pixel {
	switch channels {
	case 1:
		return pixel{src[0], src[0], src[0], 255}
	case 2:
		px := pixel{src[0], src[0], src[0], 255}
		if hasAlpha {
			px[3] = src[1]
		}
		return px
	case 3:
		return pixel{src[0], src[1], src[2], 255}
	default:
		if hasAlpha {
			return pixel{src[0], src[1], src[2], src[3]}
		}
		a := int(src[3])
		var px pixel
		for k := 0; k < 3; k++ {
			bg := int(discardBackground[k])
			px[k] = byte(bg + (int(src[k])-bg)*a/255)
		}
		px[3] = 255
		return px
	}
}
