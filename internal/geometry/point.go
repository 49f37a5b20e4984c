// Package geometry provides the axis-aligned spatial primitives the
// extraction core is built on: points, rectangles, rulings, a spatial
// index, and a line clipper. Coordinates are top-left-origin page points,
// matching the PDF page as the graphics-stream receiver projects it.
package geometry

import "fmt"

// Point is an immutable (x, y) location in page coordinates.
type Point struct {
	X, Y float64
}

// NewPoint creates a Point.
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

// String returns a string representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}
