package qoi

import (
	"fmt"
	"image"
	"image/color"
	"io"
)

// Decode reads a QOI stream from r and returns it as an image.Image.
func Decode(r io.Reader) (image.Image, error) {
	return DecodeImage(r, 0, nil)
}

// DecodeConfig returns the dimensions and color model of a QOI stream
// without decoding the pixels.
func DecodeConfig(r io.Reader) (image.Config, error) {
	h, err := decodeHeader(newByteReader(r))
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		Width:      int(h.width),
		Height:     int(h.height),
		ColorModel: color.NRGBAModel,
	}, nil
}

// Info parses and validates only the header of a QOI stream, returning the
// image dimensions and the channel count declared in the file.
func Info(r io.Reader) (width, height, channels int, err error) {
	h, err := decodeHeader(newByteReader(r))
	if err != nil {
		return 0, 0, 0, err
	}
	return int(h.width), int(h.height), int(h.channels), nil
}

// DecodeImage decodes a QOI stream into a newly allocated pixel buffer.
// desiredChannels selects the channel count of the result (1..4); 0 keeps
// the channel count declared in the file. Streams are decoded at 3 or 4
// channels directly and post-converted for grey requests.
//
// Decoding is driven by the pixel count from the header, not the stream
// length: a truncated stream does not fail but yields pixels derived from
// zero-filled reads past its end. This matches the reference format
// behavior.
func DecodeImage(r io.Reader, desiredChannels int, opts *Options) (*Image, error) {
	if desiredChannels < 0 || desiredChannels > 4 {
		return nil, fmt.Errorf("%w: desired %d", ErrInvalidChannels, desiredChannels)
	}

	br := newByteReader(r)
	h, err := decodeHeader(br)
	if err != nil {
		return nil, err
	}

	guard := opts.maxDimensions()
	if int64(h.width) > int64(guard) || int64(h.height) > int64(guard) {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d", ErrTooLarge, h.width, h.height, guard)
	}
	width, height := int(h.width), int(h.height)

	// 3 and 4 channels decode directly; grey requests convert afterwards.
	target := int(h.channels)
	if desiredChannels >= 3 {
		target = desiredChannels
	}

	pix, err := decodePixels(br, width, height, target)
	if err != nil {
		return nil, err
	}

	if desiredChannels != 0 && desiredChannels != target {
		pix, err = ConvertChannels(pix, width, height, target, desiredChannels)
		if err != nil {
			return nil, err
		}
		target = desiredChannels
	}

	if opts.flipVertical() {
		flipVertical(pix, width, height, target)
	}

	return &Image{
		Pix:            pix,
		Width:          width,
		Height:         height,
		Channels:       target,
		SourceChannels: int(h.channels),
		Colorspace:     Colorspace(h.colorspace),
	}, nil
}

type header struct {
	width      uint32
	height     uint32
	channels   byte
	colorspace byte
}

func decodeHeader(br *byteReader) (header, error) {
	var magic [4]byte
	for i := range magic {
		magic[i] = br.readByte()
	}
	if string(magic[:]) != Magic {
		return header{}, fmt.Errorf("%w: expected %q, actual %q", ErrInvalidMagic, Magic, string(magic[:]))
	}

	var h header
	h.width = br.readUint32()
	h.height = br.readUint32()
	h.channels = br.readByte()
	if h.channels != 3 && h.channels != 4 {
		return header{}, fmt.Errorf("%w: %d", ErrInvalidChannels, h.channels)
	}
	h.colorspace = br.readByte()
	if h.colorspace != 0 && h.colorspace != 1 {
		return header{}, fmt.Errorf("%w: %d", ErrInvalidColorspace, h.colorspace)
	}
	return h, nil
}

// decodePixels runs the opcode state machine for width*height pixel slots,
// producing a buffer of 3 or 4 channels per pixel.
func decodePixels(br *byteReader, width, height, channels int) ([]byte, error) {
	size, ok := pixelBufferSize(channels, width, height)
	if !ok {
		return nil, fmt.Errorf("%w: %dx%dx%d overflows", ErrInvalidSize, width, height, channels)
	}
	out := make([]byte, size)

	prev := startPixel
	var cache [64]pixel

	total := width * height
	for i := 0; i < total; i++ {
		tag := br.readByte()

		switch {
		case tag == opRgb:
			prev[0] = br.readByte()
			prev[1] = br.readByte()
			prev[2] = br.readByte()
		case tag == opRgba:
			prev[0] = br.readByte()
			prev[1] = br.readByte()
			prev[2] = br.readByte()
			prev[3] = br.readByte()
		case tag&opMask == opIndex:
			prev = cache[tag]
		case tag&opMask == opDiff:
			// 8-bit wraparound, not saturation.
			prev[0] += (tag>>4)&0x3 - 2
			prev[1] += (tag>>2)&0x3 - 2
			prev[2] += tag&0x3 - 2
		case tag&opMask == opLuma:
			b2 := br.readByte()
			dg := tag&0x3f - 32
			prev[0] += dg - 8 + (b2>>4)&0xf
			prev[1] += dg
			prev[2] += dg - 8 + b2&0xf
		default: // opRun
			run := int(tag&0x3f) + 1
			if run > total-i {
				// A malformed stream may declare more repeats than pixel
				// slots remain; clamp instead of overrunning the buffer.
				run = total - i
			}
			cache[hashPixel(prev)] = prev
			for n := 0; n < run; n++ {
				putPixel(out, (i+n)*channels, prev, channels)
			}
			i += run - 1
			continue
		}

		cache[hashPixel(prev)] = prev
		putPixel(out, i*channels, prev, channels)
	}

	return out, nil
}

func putPixel(out []byte, off int, px pixel, channels int) {
	out[off] = px[0]
	out[off+1] = px[1]
	out[off+2] = px[2]
	if channels == 4 {
		out[off+3] = px[3]
	}
}

// flipVertical swaps rows in place so the first row of the buffer becomes
// the bottom one.
func flipVertical(pix []byte, width, height, channels int) {
	rowLen := width * channels
	tmp := make([]byte, rowLen)
	for row := 0; row < height/2; row++ {
		top := pix[row*rowLen : (row+1)*rowLen]
		bottom := pix[(height-row-1)*rowLen : (height-row)*rowLen]
		copy(tmp, top)
		copy(top, bottom)
		copy(bottom, tmp)
	}
}
