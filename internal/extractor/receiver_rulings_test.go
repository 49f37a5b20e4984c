package extractor

import (
	"testing"

	"github.com/coregx/pdftab/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rectSubpath builds the closed point list appendRectangle would produce
// for an (x, y, w, h) rectangle under the identity CTM.
func rectSubpath(x, y, w, h float64) []Point {
	return []Point{
		NewPoint(x, y),
		NewPoint(x+w, y),
		NewPoint(x+w, y+h),
		NewPoint(x, y+h),
		NewPoint(x, y),
	}
}

func TestFillRuling_ThinHorizontalRect(t *testing.T) {
	r, ok := fillRuling(rectSubpath(0, 10, 100, 1), thinRectMax)
	require.True(t, ok)
	assert.True(t, r.IsHorizontal())
	assert.Equal(t, 0.0, r.X1)
	assert.Equal(t, 100.0, r.X2)
	assert.InDelta(t, 10.5, r.Y1, 1e-9, "centerline of the filled rect")
}

func TestFillRuling_ThinVerticalRect(t *testing.T) {
	r, ok := fillRuling(rectSubpath(40, 0, 1, 30), thinRectMax)
	require.True(t, ok)
	assert.True(t, r.IsVertical())
	assert.InDelta(t, 40.5, r.X1, 1e-9)
	assert.Equal(t, 0.0, r.Y1)
	assert.Equal(t, 30.0, r.Y2)
}

func TestFillRuling_ThickRectIsAFillNotALine(t *testing.T) {
	_, ok := fillRuling(rectSubpath(0, 0, 100, 50), thinRectMax)
	assert.False(t, ok)

	// both dimensions thin: a dot, not a line
	_, ok = fillRuling(rectSubpath(0, 0, 2, 2), thinRectMax)
	assert.False(t, ok)
}

func TestFillRuling_AtThicknessBoundary(t *testing.T) {
	// thin dimension exactly 8.0 still counts; long dimension must exceed it
	r, ok := fillRuling(rectSubpath(0, 0, 100, 8), thinRectMax)
	require.True(t, ok)
	assert.True(t, r.IsHorizontal())

	_, ok = fillRuling(rectSubpath(0, 0, 8, 8), thinRectMax)
	assert.False(t, ok)
}

func TestStrokeRulings_DropsObliqueSegments(t *testing.T) {
	pts := []Point{
		NewPoint(0, 0),
		NewPoint(100, 0),  // horizontal
		NewPoint(150, 50), // oblique
		NewPoint(150, 90), // vertical
	}

	rulings := strokeRulings(pts)
	require.Len(t, rulings, 2)
	assert.True(t, rulings[0].IsHorizontal())
	assert.True(t, rulings[1].IsVertical())
}

func TestFlushPath_FilledFrameBecomesFourRulings(t *testing.T) {
	// two thin filled horizontals and two thin filled verticals forming a
	// 100x20 frame, drawn on a 100x20 page (cropY1 flips device y into
	// top-left page coordinates)
	rc := &Receiver{thickness: thinRectMax}
	st := &receiverState{cropX0: 0, cropY1: 20}
	st.subpaths = [][]Point{
		rectSubpath(0, 19, 100, 1), // top edge in device space
		rectSubpath(0, 0, 100, 1),  // bottom edge
		rectSubpath(0, 0, 1, 20),   // left edge
		rectSubpath(99, 0, 1, 20),  // right edge
	}

	rc.flushPath(st, false, true)
	require.Len(t, st.rulings, 4)

	processed := geometry.CollapseOrientedRulings(st.rulings, 1.0)
	require.Len(t, processed, 4)

	var horiz, vert []geometry.Ruling
	for _, r := range processed {
		if r.IsHorizontal() {
			horiz = append(horiz, r)
		} else {
			vert = append(vert, r)
		}
	}
	require.Len(t, horiz, 2)
	require.Len(t, vert, 2)

	assert.InDelta(t, 0.5, horiz[0].Position(), 1.0)
	assert.InDelta(t, 19.5, horiz[1].Position(), 1.0)
	assert.Equal(t, 0.0, horiz[0].Start())
	assert.Equal(t, 100.0, horiz[0].End())
	assert.InDelta(t, 0.5, vert[0].Position(), 1.0)
	assert.InDelta(t, 99.5, vert[1].Position(), 1.0)

	// path state is consumed
	assert.Empty(t, st.subpaths)
	assert.Empty(t, st.current)
}

func TestFlushPath_StrokeProcessesOnlyCurrentPath(t *testing.T) {
	rc := &Receiver{thickness: thinRectMax}
	st := &receiverState{cropX0: 0, cropY1: 100}
	st.subpaths = [][]Point{{NewPoint(0, 50), NewPoint(100, 50)}} // pooled, not stroked
	st.current = []Point{NewPoint(0, 10), NewPoint(100, 10)}

	rc.flushPath(st, true, false)
	require.Len(t, st.rulings, 1)
	assert.InDelta(t, 90.0, st.rulings[0].Position(), 1e-9, "device y=10 flips to page y=90")
}

func TestBeginSubpath_PoolsPendingPath(t *testing.T) {
	rc := &Receiver{thickness: thinRectMax}
	st := &receiverState{ctm: Identity()}

	rc.beginSubpath(st, 0, 0)
	st.current = append(st.current, NewPoint(10, 0))
	rc.beginSubpath(st, 50, 50)

	require.Len(t, st.subpaths, 1)
	require.Len(t, st.current, 1)
	assert.Equal(t, NewPoint(50, 50), st.current[0])
}
