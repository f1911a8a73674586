package qoi

import (
	"os"
)

// LoadFile decodes the QOI file at name. See DecodeImage for the meaning of
// desiredChannels and opts.
func LoadFile(name string, desiredChannels int, opts *Options) (*Image, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeImage(f, desiredChannels, opts)
}

// WriteFile encodes a raw pixel buffer to a QOI file at name. See
// EncodePixels for the buffer layout.
func WriteFile(name string, pix []byte, width, height, channels int, opts *Options) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := EncodePixels(f, pix, width, height, channels, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
