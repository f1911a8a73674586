package qoi

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"testing"
)

// testPattern fills a buffer with a mix of flat regions, gradients and
// jumps, so every opcode kind shows up: long runs, cache hits, small and
// large deltas, and (for 4 channels) alpha changes.
func testPattern(width, height, channels int) []byte {
	pix := make([]byte, width*height*channels)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			off := (y*width + x) * channels
			switch {
			case y%4 == 0:
				// flat rows produce runs longer than 62
			case y%4 == 1:
				// gentle gradient, DIFF/LUMA territory
				pix[off] = byte(x)
				if channels >= 3 {
					pix[off+1] = byte(x + y)
					pix[off+2] = byte(x / 2)
				}
			default:
				// pseudo-random jumps force RGB/RGBA and cache churn
				v := uint32(y*width+x)*2654435761 + 1
				pix[off] = byte(v)
				if channels >= 3 {
					pix[off+1] = byte(v >> 8)
					pix[off+2] = byte(v >> 16)
				}
			}
			if channels == 2 {
				pix[off+1] = byte(255 - x%3)
			}
			if channels == 4 {
				pix[off+3] = byte(255 - (x+y)%5)
			}
		}
	}
	return pix
}

func TestRoundTrip(t *testing.T) {
	sizes := []struct{ w, h int }{
		{1, 1},
		{1, 100},
		{100, 1},
		{257, 257}, // forces runs >= 62 and cache collisions
	}
	for _, channels := range []int{3, 4} {
		for _, size := range sizes {
			t.Run(fmt.Sprintf("%dx%dx%d", size.w, size.h, channels), func(t *testing.T) {

				// given
				pix := testPattern(size.w, size.h, channels)
				var buf bytes.Buffer

				// when
				if err := EncodePixels(&buf, pix, size.w, size.h, channels, nil); err != nil {
					t.Fatal(err)
				}
				img, err := DecodeImage(&buf, 0, nil)
				if err != nil {
					t.Fatal(err)
				}

				// then
				if img.Width != size.w || img.Height != size.h || img.Channels != channels {
					t.Fatalf("invalid geometry decoded: %dx%dx%d", img.Width, img.Height, img.Channels)
				}
				if !bytes.Equal(pix, img.Pix) {
					for i := range pix {
						if pix[i] != img.Pix[i] {
							t.Fatalf("pixel data differs at byte %d: expected %d, actual %d", i, pix[i], img.Pix[i])
						}
					}
				}
			})
		}
	}
}

func TestRoundTripCacheCollisions(t *testing.T) {
	// R values 64 apart hash to the same cache slot (3*64 = 192 = 0 mod 64),
	// so these two colors collide on every write. Alternating them must
	// never conflate one for the other.
	colliding := [2]pixel{
		{10, 0, 0, 255},
		{74, 0, 0, 255},
	}
	if hashPixel(colliding[0]) != hashPixel(colliding[1]) {
		t.Fatal("test colors no longer collide")
	}

	const n = 64
	pix := make([]byte, n*3)
	for i := 0; i < n; i++ {
		c := colliding[i%2]
		copy(pix[i*3:], c[:3])
	}

	var buf bytes.Buffer
	if err := EncodePixels(&buf, pix, n, 1, 3, nil); err != nil {
		t.Fatal(err)
	}
	img, err := DecodeImage(&buf, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(pix, img.Pix) {
		t.Fatal("colliding colors were conflated")
	}
}

func TestRoundTripGreySources(t *testing.T) {
	for _, channels := range []int{1, 2} {
		t.Run(fmt.Sprintf("%d-channel", channels), func(t *testing.T) {
			pix := testPattern(33, 7, channels)
			var buf bytes.Buffer
			if err := EncodePixels(&buf, pix, 33, 7, channels, nil); err != nil {
				t.Fatal(err)
			}

			// Grey sources widen into the stream; ask for the source layout
			// back.
			img, err := DecodeImage(&buf, channels, nil)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(pix, img.Pix) {
				t.Fatal("grey round trip differs")
			}
		})
	}
}

func TestEncodeDecodeImageInterface(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 40, 25))
	for y := 0; y < 25; y++ {
		for x := 0; x < 40; x++ {
			src.SetNRGBA(x, y, color.NRGBA{
				R: byte(x * 6),
				G: byte(y * 9),
				B: byte(x + y),
				A: byte(255 - x%2),
			})
		}
	}

	var buf bytes.Buffer
	if err := Encode(&buf, src); err != nil {
		t.Fatal(err)
	}
	decoded, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}

	for y := 0; y < 25; y++ {
		for x := 0; x < 40; x++ {
			wr, wg, wb, wa := src.At(x, y).RGBA()
			gr, gg, gb, ga := decoded.At(x, y).RGBA()
			if wr != gr || wg != gg || wb != gb || wa != ga {
				t.Fatalf("invalid pixel at (%d, %d): expected %+v, actual %+v", x, y, src.At(x, y), decoded.At(x, y))
			}
		}
	}
}
