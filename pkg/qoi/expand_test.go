package qoi

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPix16(t *testing.T) {
	m := &Image{Pix: []byte{0, 0x12, 0x80, 255}, Width: 1, Height: 1, Channels: 4}
	require.Equal(t, []uint16{0, 0x1212, 0x8080, 0xFFFF}, m.Pix16())
}

func TestPixFloatLinear(t *testing.T) {
	m := &Image{Pix: []byte{0, 51, 255}, Width: 1, Height: 1, Channels: 3}
	got := m.PixFloat(1, 1)
	require.InDelta(t, 0, got[0], 1e-6)
	require.InDelta(t, 0.2, got[1], 1e-6)
	require.InDelta(t, 1, got[2], 1e-6)
}

func TestPixFloatGammaAndAlpha(t *testing.T) {
	// Alpha stays linear while color channels pass through the gamma curve.
	m := &Image{Pix: []byte{128, 128, 128, 51}, Width: 1, Height: 1, Channels: 4}
	got := m.PixFloat(2.2, 2)

	want := math.Pow(128.0/255, 2.2) * 2
	for k := 0; k < 3; k++ {
		require.InDelta(t, want, got[k], 1e-6)
	}
	require.InDelta(t, 0.2, got[3], 1e-6)
}

func TestPixFloatGreyAlpha(t *testing.T) {
	m := &Image{Pix: []byte{255, 102}, Width: 1, Height: 1, Channels: 2}
	got := m.PixFloat(2.2, 1)
	require.InDelta(t, 1, got[0], 1e-6)
	require.InDelta(t, 0.4, got[1], 1e-6)
}
