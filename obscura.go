// Package obscura provides a fluent API for redacting personally
// identifiable information that appears as visible text inside raster
// images (scanned forms, screenshots, photographs of documents).
//
// The engine aligns OCR tokens with entity spans detected over the
// reconstructed document text, computes the minimal set of pixel regions
// covering the sensitive text, and paints those regions onto a copy of the
// source image. The original image is never modified.
//
// Basic usage:
//
//	result, warnings, err := obscura.FromImage(img).
//	    Tokens(tokens).
//	    Entities(spans).
//	    Redact()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", obscura.FormatWarnings(warnings))
//	}
//
// With options:
//
//	result, _, err := obscura.FromImage(img).
//	    Tokens(tokens).
//	    Entities(spans).
//	    FillColor(color.White).
//	    MergeGap(2).
//	    MinScore(0.5).
//	    Redact()
//
// For advanced use cases, the lower-level index, regions, and compositor
// packages are also available.
package obscura

import (
	"image"

	"github.com/tsawler/obscura/imageio"
)

// FromImage creates a Redactor for an in-memory image.
//
// Example:
//
//	result, warnings, err := obscura.FromImage(img).Tokens(toks).Entities(spans).Redact()
func FromImage(img image.Image) *Redactor {
	return &Redactor{
		img:     img,
		options: defaultOptions(),
	}
}

// FromFile creates a Redactor for the image file at the given path.
// Supported formats are PNG, JPEG, BMP, and TIFF. Decoding failures
// surface from the terminal operation.
func FromFile(filename string) *Redactor {
	img, _, err := imageio.Open(filename)
	return &Redactor{
		img:     img,
		options: defaultOptions(),
		err:     err,
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustRedact is a helper that wraps a call to Redact() and panics if the
// error is non-nil. It discards warnings and returns just the result.
//
// Example:
//
//	result := obscura.MustRedact(obscura.FromImage(img).Tokens(toks).Entities(spans).Redact())
func MustRedact[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
