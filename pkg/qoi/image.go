package qoi

import (
	"image"
	"image/color"
)

func init() {
	image.RegisterFormat("qoi", Magic, Decode, DecodeConfig)
}

// Image is a decoded pixel buffer. Pix holds Width*Height pixels in row-major
// order with Channels interleaved bytes per pixel (1 = grey, 2 = grey+alpha,
// 3 = RGB, 4 = RGBA). It implements the image.Image interface.
type Image struct {
	Pix    []byte
	Width  int
	Height int

	// Channels is the channel count of Pix; SourceChannels is the count the
	// file header declared, which differs when decoding requested another.
	Channels       int
	SourceChannels int

	// Colorspace is the informational tag from the header.
	Colorspace Colorspace
}

func (m *Image) ColorModel() color.Model {
	return color.NRGBAModel
}

func (m *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width, m.Height)
}

func (m *Image) At(x, y int) color.Color {
	off := (y*m.Width + x) * m.Channels
	switch m.Channels {
	case 1:
		g := m.Pix[off]
		return color.NRGBA{R: g, G: g, B: g, A: 255}
	case 2:
		g := m.Pix[off]
		return color.NRGBA{R: g, G: g, B: g, A: m.Pix[off+1]}
	case 3:
		return color.NRGBA{R: m.Pix[off], G: m.Pix[off+1], B: m.Pix[off+2], A: 255}
	default:
		return color.NRGBA{R: m.Pix[off], G: m.Pix[off+1], B: m.Pix[off+2], A: m.Pix[off+3]}
	}
}
