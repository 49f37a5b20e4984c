package geometry

// regionCode is a Cohen-Sutherland outcode. Bits encode position relative
// to a clip rectangle's four edges.
type regionCode int

const (
	codeInside regionCode = 0
	codeLeft   regionCode = 1 << 0
	codeRight  regionCode = 1 << 1
	codeBottom regionCode = 1 << 2
	codeTop    regionCode = 1 << 3
)

func outcode(p Point, clip Rectangle) regionCode {
	code := codeInside
	switch {
	case p.X < clip.Left:
		code |= codeLeft
	case p.X > clip.Right():
		code |= codeRight
	}
	switch {
	case p.Y < clip.Top:
		code |= codeTop
	case p.Y > clip.Bottom():
		code |= codeBottom
	}
	return code
}

// ClipRuling clips a ruling against a rectangle using Cohen-Sutherland line
// clipping. Iterates until both endpoints share INSIDE (accept)
// or share an outside region (reject). The outside endpoint is replaced by
// its intersection with the first violated edge, tested in the order
// bottom, top, right, left. Oblique rulings must not be passed here; they
// are filtered upstream.
//
// Returns the clipped ruling and true, or an empty ruling and false if
// nothing remains inside the clip rectangle.
func ClipRuling(r Ruling, clip Rectangle) (Ruling, bool) {
	x1, y1, x2, y2 := r.X1, r.Y1, r.X2, r.Y2

	for {
		p1 := Point{X: x1, Y: y1}
		p2 := Point{X: x2, Y: y2}
		code1 := outcode(p1, clip)
		code2 := outcode(p2, clip)

		if code1 == codeInside && code2 == codeInside {
			return NewRuling(x1, y1, x2, y2, 1.0), true
		}
		if code1&code2 != 0 {
			return Ruling{}, false
		}

		outsideCode := code1
		outsideX, outsideY := x1, y1
		if code1 == codeInside {
			outsideCode = code2
			outsideX, outsideY = x2, y2
		}

		var nx, ny float64
		dx := x2 - x1
		dy := y2 - y1

		switch {
		case outsideCode&codeBottom != 0:
			nx = x1 + dx*(clip.Bottom()-y1)/dy
			ny = clip.Bottom()
		case outsideCode&codeTop != 0:
			nx = x1 + dx*(clip.Top-y1)/dy
			ny = clip.Top
		case outsideCode&codeRight != 0:
			ny = y1 + dy*(clip.Right()-x1)/dx
			nx = clip.Right()
		case outsideCode&codeLeft != 0:
			ny = y1 + dy*(clip.Left-x1)/dx
			nx = clip.Left
		}

		if outsideX == x1 && outsideY == y1 {
			x1, y1 = nx, ny
		} else {
			x2, y2 = nx, ny
		}
	}
}
