// Package qoi implements the "Quite OK Image" format, a lossless byte-stream
// pixel codec built on a 64-slot color cache and small per-pixel delta
// opcodes. It encodes and decodes raw 8-bit pixel buffers of 1 to 4 channels
// and plugs into the standard image package via Encode/Decode/DecodeConfig.
package qoi

import (
	"errors"
)

// A list of opcodes used in the encoded stream. The top two bits of a tag
// byte select the short opcodes; 0xFE and 0xFF sit at the top of the RUN
// range as full-byte tags.
const (
	opRgb   = byte(0b11111110)
	opRgba  = byte(0b11111111)
	opIndex = byte(0b00000000)
	opDiff  = byte(0b01000000)
	opLuma  = byte(0b10000000)
	opRun   = byte(0b11000000)
	// opMask is the mask for 2-bit opcodes
	opMask = byte(0b11000000)
)

// Magic is the magic code that starts every QOI file.
const Magic = "qoif"

// headerSize is the fixed byte length of the QOI header.
const headerSize = 14

// maxRun is the longest pixel run a single RUN opcode can carry.
const maxRun = 62

// endMarker terminates the opcode stream. The decoder never requires it; the
// pixel count from the header bounds decoding.
var endMarker = [8]byte{0, 0, 0, 0, 0, 0, 0, 1}

var (
	ErrInvalidMagic          = errors.New("invalid magic")
	ErrInvalidChannels       = errors.New("invalid channel count")
	ErrInvalidColorspace     = errors.New("invalid colorspace")
	ErrTooLarge              = errors.New("image dimensions too large")
	ErrInvalidSize           = errors.New("invalid image size")
	ErrUnsupportedConversion = errors.New("unsupported channel conversion")
)

// Colorspace is the informational colorspace tag carried in the header. It
// never affects how pixels are encoded or decoded.
type Colorspace uint8

const (
	SRGB   Colorspace = 0
	Linear Colorspace = 1
)

// pixel is one fully expanded RGBA value. Comparison is exact and
// component-wise.
type pixel [4]byte

// startPixel is the implicit previous pixel at the start of every encode and
// decode.
var startPixel = pixel{0, 0, 0, 255}

func hashPixel(p pixel) byte {
	return (p[0]*3 + p[1]*5 + p[2]*7 + p[3]*11) % 64
}

// mulValid reports whether a*b fits in an int without overflow. Negative
// factors are invalid.
func mulValid(a, b int) bool {
	if a < 0 || b < 0 {
		return false
	}
	if b == 0 {
		return true
	}
	return a <= int(^uint(0)>>1)/b
}

// pixelBufferSize returns channels*width*height, reporting false on overflow.
func pixelBufferSize(channels, width, height int) (int, bool) {
	if !mulValid(channels, width) || !mulValid(channels*width, height) {
		return 0, false
	}
	return channels * width * height, true
}
