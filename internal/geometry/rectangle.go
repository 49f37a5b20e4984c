package geometry

import "fmt"

// VerticalOverlapThreshold is the default fraction of the smaller height
// two rectangles must share to be considered vertically overlapping.
// Ported from the teacher's tabula-java-derived overlap ratio, generalized
// to a named constant rather than a magic literal scattered at call sites.
const VerticalOverlapThreshold = 0.4

// Rectangle is an immutable, axis-aligned, top-left-origin rectangle.
//
// This is a value object: two rectangles with equal fields are equal.
// Invariants: Width >= 0, Height >= 0.
type Rectangle struct {
	Top, Left, Width, Height float64
}

// NewRectangle constructs a Rectangle from its top-left-origin fields.
func NewRectangle(top, left, width, height float64) Rectangle {
	return Rectangle{Top: top, Left: left, Width: width, Height: height}
}

// FromCorners constructs the smallest Rectangle covering two corner points.
func FromCorners(a, b Point) Rectangle {
	top := min(a.Y, b.Y)
	left := min(a.X, b.X)
	return Rectangle{
		Top:    top,
		Left:   left,
		Width:  max(a.X, b.X) - left,
		Height: max(a.Y, b.Y) - top,
	}
}

// Bottom returns Top + Height.
func (r Rectangle) Bottom() float64 { return r.Top + r.Height }

// Right returns Left + Width.
func (r Rectangle) Right() float64 { return r.Left + r.Width }

// CenterX returns the horizontal center.
func (r Rectangle) CenterX() float64 { return r.Left + r.Width/2 }

// CenterY returns the vertical center.
func (r Rectangle) CenterY() float64 { return r.Top + r.Height/2 }

// Contains reports whether point p lies within the rectangle (inclusive).
func (r Rectangle) Contains(p Point) bool {
	return p.X >= r.Left && p.X <= r.Right() && p.Y >= r.Top && p.Y <= r.Bottom()
}

// ContainsOrigin reports whether p's origin lies in the half-open interval
// [top, bottom) x [left, right), the membership rule the lattice extractor
// uses to assign glyphs to cells.
func (r Rectangle) ContainsOrigin(p Point) bool {
	return p.X >= r.Left && p.X < r.Right() && p.Y >= r.Top && p.Y < r.Bottom()
}

// Intersects reports whether two rectangles share any area.
func (r Rectangle) Intersects(other Rectangle) bool {
	return r.Left < other.Right() && other.Left < r.Right() &&
		r.Top < other.Bottom() && other.Top < r.Bottom()
}

// IntersectionArea returns the area of overlap between two rectangles, or
// zero if they don't overlap.
func (r Rectangle) IntersectionArea(other Rectangle) float64 {
	left := max(r.Left, other.Left)
	right := min(r.Right(), other.Right())
	top := max(r.Top, other.Top)
	bottom := min(r.Bottom(), other.Bottom())
	if right <= left || bottom <= top {
		return 0
	}
	return (right - left) * (bottom - top)
}

// Area returns width * height.
func (r Rectangle) Area() float64 { return r.Width * r.Height }

// Union returns the smallest rectangle covering both r and other.
func (r Rectangle) Union(other Rectangle) Rectangle {
	top := min(r.Top, other.Top)
	left := min(r.Left, other.Left)
	bottom := max(r.Bottom(), other.Bottom())
	right := max(r.Right(), other.Right())
	return Rectangle{Top: top, Left: left, Width: right - left, Height: bottom - top}
}

// VerticalOverlapRatio computes overlap(h1,h2) / min(h1,h2) between the
// vertical extents of r and other.
func (r Rectangle) VerticalOverlapRatio(other Rectangle) float64 {
	top := max(r.Top, other.Top)
	bottom := min(r.Bottom(), other.Bottom())
	overlap := bottom - top
	if overlap <= 0 {
		return 0
	}
	minHeight := min(r.Height, other.Height)
	if minHeight <= 0 {
		return 0
	}
	return overlap / minHeight
}

// VerticallyOverlaps reports whether r and other clear the default vertical
// overlap threshold.
func (r Rectangle) VerticallyOverlaps(other Rectangle) bool {
	return r.VerticalOverlapRatio(other) >= VerticalOverlapThreshold
}

// VerticallyOverlapsBy reports whether r and other clear a caller-supplied
// overlap threshold.
func (r Rectangle) VerticallyOverlapsBy(other Rectangle, threshold float64) bool {
	return r.VerticalOverlapRatio(other) >= threshold
}

// Less implements reading order: top ascending, then left ascending.
func (r Rectangle) Less(other Rectangle) bool {
	if r.Top != other.Top {
		return r.Top < other.Top
	}
	return r.Left < other.Left
}

// String returns a string representation of the rectangle.
func (r Rectangle) String() string {
	return fmt.Sprintf("Rectangle{top=%.2f, left=%.2f, w=%.2f, h=%.2f}", r.Top, r.Left, r.Width, r.Height)
}
