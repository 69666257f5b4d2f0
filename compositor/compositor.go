// Package compositor applies redaction rectangles to an image.
//
// The compositor is a pure function per call: it clamps rectangles to the
// image bounds, merges overlapping or adjacent ones, and paints solid
// fills onto a copy of the source image. The source is never mutated, and
// no pixel outside a painted rectangle is modified.
package compositor

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/tsawler/obscura/model"
	"github.com/tsawler/obscura/regions"
)

// Config holds compositor configuration.
type Config struct {
	// Fill is the color painted over redacted regions. Nil means opaque black.
	Fill color.Color

	// MergeGap is the maximum pixel gap between two rectangles for them to
	// be merged into one painted region. Zero merges only overlapping or
	// touching rectangles.
	MergeGap int
}

// DefaultConfig returns the default compositor configuration: opaque black
// fill, zero merge gap.
func DefaultConfig() Config {
	return Config{Fill: color.Black, MergeGap: 0}
}

// Redact paints the given rectangles onto a copy of src and returns the
// copy along with the final merged rectangles that were painted.
//
// Rectangles are clamped to the image bounds first; a rectangle entirely
// outside the bounds is dropped silently. Overlapping or adjacent
// rectangles are merged before painting, so no region is painted twice
// and repeated application with the same inputs is byte-identical.
func Redact(src image.Image, rects []model.Rect, cfg Config) (image.Image, []model.Rect) {
	bounds := model.FromImageRect(src.Bounds())

	clamped := make([]model.Rect, 0, len(rects))
	for _, r := range rects {
		c := r.Canon().Clip(bounds)
		if !c.IsEmpty() {
			clamped = append(clamped, c)
		}
	}

	final := regions.Merge(clamped, cfg.MergeGap)

	dst := cloneImage(src)
	if len(final) == 0 {
		return dst, final
	}

	fill := cfg.Fill
	if fill == nil {
		fill = color.Black
	}
	uniform := image.NewUniform(fill)

	for _, r := range final {
		draw.Draw(dst, r.ToImageRect(), uniform, image.Point{}, draw.Src)
	}

	return dst, final
}

// cloneImage copies src into a new drawable image of the same in-memory
// format where possible, so untouched regions stay byte-identical to the
// source. Unrecognized formats are redrawn into an RGBA buffer.
func cloneImage(src image.Image) draw.Image {
	var out draw.Image

	switch img := src.(type) {
	case *image.RGBA:
		c := image.NewRGBA(img.Rect)
		if c.Stride == img.Stride {
			copy(c.Pix, img.Pix)
			return c
		}
		out = c
	case *image.NRGBA:
		c := image.NewNRGBA(img.Rect)
		if c.Stride == img.Stride {
			copy(c.Pix, img.Pix)
			return c
		}
		out = c
	case *image.Gray:
		c := image.NewGray(img.Rect)
		if c.Stride == img.Stride {
			copy(c.Pix, img.Pix)
			return c
		}
		out = c
	case *image.Gray16:
		c := image.NewGray16(img.Rect)
		if c.Stride == img.Stride {
			copy(c.Pix, img.Pix)
			return c
		}
		out = c
	case *image.CMYK:
		c := image.NewCMYK(img.Rect)
		if c.Stride == img.Stride {
			copy(c.Pix, img.Pix)
			return c
		}
		out = c
	default:
		out = image.NewRGBA(src.Bounds())
	}

	draw.Draw(out, out.Bounds(), src, src.Bounds().Min, draw.Src)
	return out
}
