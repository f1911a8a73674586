package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"go_koi/pkg/qoi"
)

func main() {
	flip := flag.Bool("flip", false, "flip the image vertically")
	linear := flag.Bool("linear", false, "tag the output as linear instead of sRGB")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, "Encode: koi [-flip] [-linear] <input-image>\nDecode: koi [-flip] <input.qoi>\n")
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	inputPath := flag.Arg(0)
	ext := strings.ToLower(filepath.Ext(inputPath))
	base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))

	opts := &qoi.Options{FlipVertical: *flip}
	if *linear {
		opts.Colorspace = qoi.Linear
	}

	// A .qoi input decodes to PNG, anything else encodes to .qoi.
	if ext == ".qoi" {
		if err := decodeToPng(inputPath, base+".png", opts); err != nil {
			fmt.Fprintln(os.Stderr, "decode error:", err)
			os.Exit(1)
		}
		fmt.Printf("Decoded %s -> %s\n", inputPath, base+".png")
		return
	}

	if err := encodeToQoi(inputPath, base+".qoi", opts); err != nil {
		fmt.Fprintln(os.Stderr, "encode error:", err)
		os.Exit(1)
	}
	fmt.Printf("Encoded %s -> %s\n", inputPath, base+".qoi")
}

func encodeToQoi(inPath, outPath string, opts *qoi.Options) error {
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	img, _, err := image.Decode(in)
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	return qoi.EncodeWithOptions(out, img, opts)
}

func decodeToPng(inPath, outPath string, opts *qoi.Options) error {
	img, err := qoi.LoadFile(inPath, 0, opts)
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	return png.Encode(out, img)
}
