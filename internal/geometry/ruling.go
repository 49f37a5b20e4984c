package geometry

import (
	"fmt"
	"math"
	"sort"
)

// Orientation classifies a normalized Ruling.
type Orientation int

const (
	// Oblique rulings satisfy neither the horizontal nor vertical test and
	// must be dropped before any consumer sees them.
	Oblique Orientation = iota
	Horizontal
	Vertical
)

// Ruling is a line segment restricted to horizontal or vertical after
// normalization.
type Ruling struct {
	X1, Y1, X2, Y2 float64
	Orientation    Orientation
}

// NewRuling constructs and normalizes a ruling from two endpoints using the
// given orientation tolerance (default 1.0).
//
// Normalization rule: if |y2-y1| <= tolerance the segment is horizontal and
// both y-coordinates are replaced by their mean with endpoints ordered
// x1 <= x2; symmetric for vertical. Anything else is oblique.
func NewRuling(x1, y1, x2, y2, tolerance float64) Ruling {
	if math.Abs(y2-y1) <= tolerance {
		y := (y1 + y2) / 2
		if x1 > x2 {
			x1, x2 = x2, x1
		}
		return Ruling{X1: x1, Y1: y, X2: x2, Y2: y, Orientation: Horizontal}
	}
	if math.Abs(x2-x1) <= tolerance {
		x := (x1 + x2) / 2
		if y1 > y2 {
			y1, y2 = y2, y1
		}
		return Ruling{X1: x, Y1: y1, X2: x, Y2: y2, Orientation: Vertical}
	}
	return Ruling{X1: x1, Y1: y1, X2: x2, Y2: y2, Orientation: Oblique}
}

// IsHorizontal reports whether the ruling is horizontal.
func (r Ruling) IsHorizontal() bool { return r.Orientation == Horizontal }

// IsVertical reports whether the ruling is vertical.
func (r Ruling) IsVertical() bool { return r.Orientation == Vertical }

// IsOblique reports whether the ruling is oblique.
func (r Ruling) IsOblique() bool { return r.Orientation == Oblique }

// Length returns the Euclidean length of the ruling.
func (r Ruling) Length() float64 {
	dx := r.X2 - r.X1
	dy := r.Y2 - r.Y1
	return math.Sqrt(dx*dx + dy*dy)
}

// Position returns the perpendicular coordinate: the shared y for a
// horizontal ruling, the shared x for a vertical one.
func (r Ruling) Position() float64 {
	if r.IsHorizontal() {
		return r.Y1
	}
	return r.X1
}

// Start returns the extent-minimum coordinate along the ruling's own axis.
func (r Ruling) Start() float64 {
	if r.IsHorizontal() {
		return r.X1
	}
	return r.Y1
}

// End returns the extent-maximum coordinate along the ruling's own axis.
func (r Ruling) End() float64 {
	if r.IsHorizontal() {
		return r.X2
	}
	return r.Y2
}

// Colinear reports whether r and other share an orientation and their
// perpendicular positions differ by less than the given tolerance.
func (r Ruling) Colinear(other Ruling, tolerance float64) bool {
	if r.Orientation != other.Orientation || r.Orientation == Oblique {
		return false
	}
	return math.Abs(r.Position()-other.Position()) < tolerance
}

// CoversRange reports whether the ruling's extent covers [lo, hi] within
// tolerance, i.e. Start()-tolerance <= lo && hi <= End()+tolerance.
func (r Ruling) CoversRange(lo, hi, tolerance float64) bool {
	return r.Start()-tolerance <= lo && hi <= r.End()+tolerance
}

// ContainsPoint reports whether p lies on the ruling within tolerance,
// using a segment-contains-point test.
func (r Ruling) ContainsPoint(p Point, tolerance float64) bool {
	if r.IsHorizontal() {
		return math.Abs(p.Y-r.Y1) <= tolerance && p.X >= r.X1-tolerance && p.X <= r.X2+tolerance
	}
	if r.IsVertical() {
		return math.Abs(p.X-r.X1) <= tolerance && p.Y >= r.Y1-tolerance && p.Y <= r.Y2+tolerance
	}
	return false
}

// Intersection returns the crossing point of a horizontal and a vertical
// ruling, or (Point{}, false) when they don't cross within tolerance.
func (r Ruling) Intersection(other Ruling, tolerance float64) (Point, bool) {
	h, v := r, other
	if h.IsVertical() {
		h, v = v, h
	}
	if !h.IsHorizontal() || !v.IsVertical() {
		return Point{}, false
	}
	p := Point{X: v.X1, Y: h.Y1}
	if p.X < h.X1-tolerance || p.X > h.X2+tolerance {
		return Point{}, false
	}
	if p.Y < v.Y1-tolerance || p.Y > v.Y2+tolerance {
		return Point{}, false
	}
	return p, true
}

// String returns a string representation of the ruling.
func (r Ruling) String() string {
	orient := "oblique"
	switch r.Orientation {
	case Horizontal:
		orient = "horizontal"
	case Vertical:
		orient = "vertical"
	}
	return fmt.Sprintf("Ruling{(%.2f,%.2f)->(%.2f,%.2f), %s}", r.X1, r.Y1, r.X2, r.Y2, orient)
}

// CollapseOrientedRulings discards oblique rulings, splits the remainder
// into horizontal and vertical sets, sorts each by perpendicular
// coordinate, and merges consecutively colinear runs into a single ruling
// spanning [min(start), max(end)] at the run's mean perpendicular
// coordinate. The operation is idempotent.
func CollapseOrientedRulings(rulings []Ruling, colinearTolerance float64) []Ruling {
	var horiz, vert []Ruling
	for _, r := range rulings {
		switch r.Orientation {
		case Horizontal:
			horiz = append(horiz, r)
		case Vertical:
			vert = append(vert, r)
		}
	}
	out := make([]Ruling, 0, len(horiz)+len(vert))
	out = append(out, collapseRun(horiz, colinearTolerance, Horizontal)...)
	out = append(out, collapseRun(vert, colinearTolerance, Vertical)...)
	return out
}

func collapseRun(rulings []Ruling, tolerance float64, orientation Orientation) []Ruling {
	if len(rulings) == 0 {
		return nil
	}
	sorted := make([]Ruling, len(rulings))
	copy(sorted, rulings)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Position() != sorted[j].Position() {
			return sorted[i].Position() < sorted[j].Position()
		}
		return sorted[i].Start() < sorted[j].Start()
	})

	var out []Ruling
	runStart := 0
	flush := func(end int) {
		run := sorted[runStart:end]
		sumPos := 0.0
		minStart := run[0].Start()
		maxEnd := run[0].End()
		for _, r := range run {
			sumPos += r.Position()
			minStart = math.Min(minStart, r.Start())
			maxEnd = math.Max(maxEnd, r.End())
		}
		pos := sumPos / float64(len(run))
		if orientation == Horizontal {
			out = append(out, Ruling{X1: minStart, Y1: pos, X2: maxEnd, Y2: pos, Orientation: Horizontal})
		} else {
			out = append(out, Ruling{X1: pos, Y1: minStart, X2: pos, Y2: maxEnd, Orientation: Vertical})
		}
	}
	for i := 1; i < len(sorted); i++ {
		if !sorted[i].Colinear(sorted[i-1], tolerance) {
			flush(i)
			runStart = i
		}
	}
	flush(len(sorted))
	return out
}

// FindIntersections returns the set of points where any h in horiz crosses
// any v in vert, rounded to 0.01 to fuse floating-point duplicates
//.
func FindIntersections(horiz, vert []Ruling, tolerance float64) []Point {
	seen := make(map[Point]bool)
	var out []Point
	for _, h := range horiz {
		for _, v := range vert {
			p, ok := h.Intersection(v, tolerance)
			if !ok {
				continue
			}
			p = roundPoint(p, 0.01)
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}

func roundPoint(p Point, precision float64) Point {
	return Point{
		X: math.Round(p.X/precision) * precision,
		Y: math.Round(p.Y/precision) * precision,
	}
}
