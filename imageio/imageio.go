// Package imageio decodes and encodes the raster formats commonly met in
// scanned-document workflows: PNG, JPEG, BMP, and TIFF.
//
// Decoding failures are structural input failures: unlike out-of-range
// spans or token geometry, they surface to the caller as errors.
package imageio

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Decode reads an image from r, detecting the format from its magic bytes.
// It returns the decoded image and the format name ("png", "jpeg", "bmp",
// or "tiff").
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return img, format, nil
}

// Open reads and decodes the image file at the given path.
func Open(filename string) (image.Image, string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer f.Close()

	img, format, err := Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode %s: %w", filename, err)
	}
	return img, format, nil
}

// Encode writes img to w in the given format. Supported formats are
// "png", "jpeg" (or "jpg"), "bmp", and "tiff" (or "tif").
func Encode(w io.Writer, img image.Image, format string) error {
	switch strings.ToLower(format) {
	case "png":
		return png.Encode(w, img)
	case "jpeg", "jpg":
		return jpeg.Encode(w, img, nil)
	case "bmp":
		return bmp.Encode(w, img)
	case "tiff", "tif":
		return tiff.Encode(w, img, nil)
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
}

// Save encodes img to the file at the given path, deriving the format
// from the file extension.
func Save(filename string, img image.Image) error {
	format := strings.TrimPrefix(filepath.Ext(filename), ".")
	if format == "" {
		return fmt.Errorf("cannot derive image format from %s", filename)
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer f.Close()

	if err := Encode(f, img, format); err != nil {
		return fmt.Errorf("failed to encode %s: %w", filename, err)
	}
	return nil
}
