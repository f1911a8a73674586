package qoi

// DefaultMaxDimensions is the largest width or height DecodeImage accepts
// before allocating, a guard against pathological memory and time requests
// from untrusted input.
const DefaultMaxDimensions = 1 << 24

// Options carries the per-call configuration for encoding and decoding. A
// nil *Options means all defaults. The value is read once at the start of a
// call and never re-checked mid-operation.
type Options struct {
	// FlipVertical flips the image vertically: the encoder scans the source
	// buffer bottom-to-top, the decoder flips the output buffer after
	// decoding, so the first pixel of the result is the bottom-left one.
	FlipVertical bool

	// Colorspace is the tag written into the header on encode. Purely
	// informational.
	Colorspace Colorspace

	// DiscardAlpha makes the encoder treat an alpha-carrying source as
	// opaque: the header declares 3 channels and translucent pixels are
	// composited against a fixed magenta (255,0,255) background. This is a
	// deliberate lossy convention, not a blend against the image content.
	DiscardAlpha bool

	// MaxDimensions caps the width and height the decoder accepts. Zero
	// means DefaultMaxDimensions.
	MaxDimensions int
}

func (o *Options) flipVertical() bool {
	return o != nil && o.FlipVertical
}

func (o *Options) colorspace() Colorspace {
	if o == nil {
		return SRGB
	}
	return o.Colorspace
}

func (o *Options) discardAlpha() bool {
	return o != nil && o.DiscardAlpha
}

func (o *Options) maxDimensions() int {
	if o == nil || o.MaxDimensions == 0 {
		return DefaultMaxDimensions
	}
	return o.MaxDimensions
}
