package glyph

import "math"

// Point is a position in screen space. The Y axis grows downward, matching
// typical raster coordinates: a glyph's ascender sits at a smaller Y than
// its baseline.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in screen space.
type Rect struct {
	// Min is the top-left corner.
	MinX, MinY float64
	// Max is the bottom-right corner.
	MaxX, MaxY float64
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the height of the rectangle.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Empty reports whether the rectangle encloses no area.
func (r Rect) Empty() bool { return r.MinX >= r.MaxX || r.MinY >= r.MaxY }

// Translate returns the rectangle shifted by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{
		MinX: r.MinX + dx,
		MinY: r.MinY + dy,
		MaxX: r.MaxX + dx,
		MaxY: r.MaxY + dy,
	}
}

// IntRect is a whole-pixel rectangle produced by [Rect.EnclosingInt] and by
// the pixel bounds queries.
type IntRect struct {
	MinX, MinY int
	MaxX, MaxY int
}

// Width returns the width of the rectangle.
func (r IntRect) Width() int { return r.MaxX - r.MinX }

// Height returns the height of the rectangle.
func (r IntRect) Height() int { return r.MaxY - r.MinY }

// EnclosingInt returns the smallest whole-pixel rectangle containing r:
// the minimum corner is floored and the maximum corner is ceiled.
// Components are clamped to the int32 range so that infinite or otherwise
// enormous float bounds stay representable as pixel coordinates.
func (r Rect) EnclosingInt() IntRect {
	return IntRect{
		MinX: floorInt(r.MinX),
		MinY: floorInt(r.MinY),
		MaxX: ceilInt(r.MaxX),
		MaxY: ceilInt(r.MaxY),
	}
}

// floorInt floors v toward negative infinity, clamped to the int32 range.
func floorInt(v float64) int {
	f := math.Floor(v)
	if f < math.MinInt32 {
		return math.MinInt32
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}

// ceilInt ceils v toward positive infinity, clamped to the int32 range.
func ceilInt(v float64) int {
	c := math.Ceil(v)
	if c > math.MaxInt32 {
		return math.MaxInt32
	}
	if c < math.MinInt32 {
		return math.MinInt32
	}
	return int(c)
}
