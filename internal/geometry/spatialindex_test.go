package geometry

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sortRects(rects []Rectangle) {
	sort.Slice(rects, func(i, j int) bool {
		if rects[i].Top != rects[j].Top {
			return rects[i].Top < rects[j].Top
		}
		if rects[i].Left != rects[j].Left {
			return rects[i].Left < rects[j].Left
		}
		return rects[i].Width < rects[j].Width
	})
}

func TestSpatialIndex_IntersectsMatchesLinearScan(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	var rects []Rectangle
	idx := NewSpatialIndex()
	for i := 0; i < 200; i++ {
		r := NewRectangle(rng.Float64()*600, rng.Float64()*600, rng.Float64()*120, rng.Float64()*120)
		rects = append(rects, r)
		idx.Insert(r)
	}
	require.Equal(t, 200, idx.Len())

	queries := []Rectangle{
		NewRectangle(0, 0, 50, 50),
		NewRectangle(100, 100, 300, 10),
		NewRectangle(550, 550, 200, 200),
		NewRectangle(-50, -50, 40, 40),
	}
	for _, q := range queries {
		var want []Rectangle
		for _, r := range rects {
			if r.Intersects(q) {
				want = append(want, r)
			}
		}
		got := idx.Intersects(q)
		sortRects(want)
		sortRects(got)
		assert.Equal(t, want, got, "query %s", q)
	}
}

func TestSpatialIndex_Contains(t *testing.T) {
	idx := NewSpatialIndex()
	inside := NewRectangle(10, 10, 20, 20)
	straddling := NewRectangle(10, 90, 40, 20)
	outside := NewRectangle(200, 200, 10, 10)
	idx.Insert(inside)
	idx.Insert(straddling)
	idx.Insert(outside)

	got := idx.Contains(NewRectangle(0, 0, 100, 100))
	require.Len(t, got, 1)
	assert.Equal(t, inside, got[0])
}

func TestSpatialIndex_AtPoint(t *testing.T) {
	idx := NewSpatialIndex()
	a := NewRectangle(0, 0, 60, 60)
	b := NewRectangle(40, 40, 60, 60)
	idx.Insert(a)
	idx.Insert(b)

	got := idx.AtPoint(NewPoint(50, 50))
	sortRects(got)
	assert.Equal(t, []Rectangle{a, b}, got)

	assert.Empty(t, idx.AtPoint(NewPoint(300, 300)))
}

func TestSpatialIndex_Nearby(t *testing.T) {
	idx := NewSpatialIndex()
	r := NewRectangle(100, 100, 10, 10)
	idx.Insert(r)

	q := NewRectangle(100, 80, 10, 10) // 10 points to the left of r
	assert.Empty(t, idx.Intersects(q))
	got := idx.Nearby(q, 15)
	require.Len(t, got, 1)
	assert.Equal(t, r, got[0])
}

func TestSpatialIndex_DeduplicatesAcrossBuckets(t *testing.T) {
	// spans many 50-point grid cells but must be returned once
	idx := NewSpatialIndexWithCellSize(50)
	big := NewRectangle(0, 0, 400, 400)
	idx.Insert(big)

	got := idx.Intersects(NewRectangle(0, 0, 400, 400))
	assert.Len(t, got, 1)
}
