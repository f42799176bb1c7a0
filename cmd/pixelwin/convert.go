package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/1broseidon/pixelwin/internal/imageio"
)

var errBadSize = errors.New("size must be WxH with positive integers")

func runConvert(args []string) int {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	resize := fs.String("resize", "", "Crop or pad to WxH, keeping rows in place")
	scale := fs.String("scale", "", "Smoothly scale to WxH")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: pixelwin convert [options] <in> <out>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Formats by extension: png, bmp, tif/tiff (webp input only).")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "convert requires <in> and <out>")
		fs.Usage()
		return 2
	}

	if err := convert(fs.Arg(0), fs.Arg(1), *resize, *scale); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// convert loads in, applies the optional scale then resize, and saves out.
func convert(in, out, resize, scale string) error {
	if _, err := imageio.FormatOf(out); err != nil {
		return err
	}
	img, err := imageio.Load(in)
	if err != nil {
		return err
	}
	defer func() { img.Free() }()

	if scale != "" {
		w, h, err := parseSize(scale)
		if err != nil {
			return fmt.Errorf("-scale: %w", err)
		}
		scaled := imageio.Scale(img, w, h)
		img.Free()
		img = scaled
	}
	if resize != "" {
		w, h, err := parseSize(resize)
		if err != nil {
			return fmt.Errorf("-resize: %w", err)
		}
		if err := img.Resize(w, h); err != nil {
			return err
		}
	}
	return imageio.Save(out, img)
}

func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, errBadSize
	}
	w, err := strconv.Atoi(ws)
	if err != nil || w <= 0 {
		return 0, 0, errBadSize
	}
	h, err := strconv.Atoi(hs)
	if err != nil || h <= 0 {
		return 0, 0, errBadSize
	}
	return w, h, nil
}
