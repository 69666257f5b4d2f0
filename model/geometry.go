package model

import "image"

// Point represents a pixel position on an image.
type Point struct {
	X, Y int
}

// Rect represents an axis-aligned rectangle in image pixel coordinates.
// X and Y locate the top-left corner; Y grows downward.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// NewRect creates a rectangle from its top-left corner and extents.
func NewRect(x, y, width, height int) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// FromImageRect converts a standard library image.Rectangle to a Rect.
func FromImageRect(r image.Rectangle) Rect {
	r = r.Canon()
	return Rect{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// ToImageRect converts the rectangle to a standard library image.Rectangle.
func (r Rect) ToImageRect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Left returns the left edge X coordinate.
func (r Rect) Left() int {
	return r.X
}

// Right returns the right edge X coordinate.
func (r Rect) Right() int {
	return r.X + r.Width
}

// Top returns the top edge Y coordinate.
func (r Rect) Top() int {
	return r.Y
}

// Bottom returns the bottom edge Y coordinate.
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Area returns the area of the rectangle in pixels.
func (r Rect) Area() int {
	if r.IsEmpty() {
		return 0
	}
	return r.Width * r.Height
}

// IsEmpty returns true if the rectangle covers no pixels.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Canon returns the rectangle with negative extents clamped to zero.
func (r Rect) Canon() Rect {
	if r.Width < 0 {
		r.Width = 0
	}
	if r.Height < 0 {
		r.Height = 0
	}
	return r
}

// Contains checks if a pixel position is inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left() && p.X < r.Right() &&
		p.Y >= r.Top() && p.Y < r.Bottom()
}

// Intersects checks if two rectangles share at least one pixel.
func (r Rect) Intersects(other Rect) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	return r.Left() < other.Right() && other.Left() < r.Right() &&
		r.Top() < other.Bottom() && other.Top() < r.Bottom()
}

// Touches checks if two rectangles overlap or are adjacent with a
// zero-pixel gap (shared edge or corner).
func (r Rect) Touches(other Rect) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	return r.Left() <= other.Right() && other.Left() <= r.Right() &&
		r.Top() <= other.Bottom() && other.Top() <= r.Bottom()
}

// Union returns the smallest rectangle covering both rectangles.
// An empty rectangle does not contribute to the union.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other.Canon()
	}
	if other.IsEmpty() {
		return r.Canon()
	}

	x := minInt(r.Left(), other.Left())
	y := minInt(r.Top(), other.Top())
	right := maxInt(r.Right(), other.Right())
	bottom := maxInt(r.Bottom(), other.Bottom())

	return Rect{
		X:      x,
		Y:      y,
		Width:  right - x,
		Height: bottom - y,
	}
}

// Intersection returns the overlapping region of two rectangles, or an
// empty rectangle if they do not intersect.
func (r Rect) Intersection(other Rect) Rect {
	if !r.Intersects(other) {
		return Rect{}
	}

	x := maxInt(r.Left(), other.Left())
	y := maxInt(r.Top(), other.Top())
	right := minInt(r.Right(), other.Right())
	bottom := minInt(r.Bottom(), other.Bottom())

	return Rect{
		X:      x,
		Y:      y,
		Width:  right - x,
		Height: bottom - y,
	}
}

// Clip clamps the rectangle to the given bounds. Rectangles entirely
// outside the bounds clip to an empty rectangle.
func (r Rect) Clip(bounds Rect) Rect {
	return r.Intersection(bounds)
}

// Expand grows the rectangle by a margin on all sides. A negative margin
// shrinks it; extents never drop below zero.
func (r Rect) Expand(margin int) Rect {
	return Rect{
		X:      r.X - margin,
		Y:      r.Y - margin,
		Width:  r.Width + 2*margin,
		Height: r.Height + 2*margin,
	}.Canon()
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
