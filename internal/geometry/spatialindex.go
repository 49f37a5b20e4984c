package geometry

import "math"

// DefaultCellSize is the default uniform-grid bucket size.
const DefaultCellSize = 50.0

// SpatialIndex is a uniform-grid-bucketed lookup structure for rectangles.
// It is an acceleration structure only: every query returns the same set a
// linear scan of the same rectangles would.
type SpatialIndex struct {
	cellSize float64
	buckets  map[[2]int][]int
	items    []Rectangle
}

// NewSpatialIndex creates an empty index with the default cell size.
func NewSpatialIndex() *SpatialIndex {
	return NewSpatialIndexWithCellSize(DefaultCellSize)
}

// NewSpatialIndexWithCellSize creates an empty index with a custom cell size.
func NewSpatialIndexWithCellSize(cellSize float64) *SpatialIndex {
	return &SpatialIndex{
		cellSize: cellSize,
		buckets:  make(map[[2]int][]int),
	}
}

// Insert adds a rectangle to the index, listing it in every grid cell it
// overlaps.
func (idx *SpatialIndex) Insert(r Rectangle) {
	id := len(idx.items)
	idx.items = append(idx.items, r)
	for _, cell := range idx.cellsFor(r) {
		idx.buckets[cell] = append(idx.buckets[cell], id)
	}
}

// Len returns the number of rectangles stored in the index.
func (idx *SpatialIndex) Len() int { return len(idx.items) }

func (idx *SpatialIndex) cellsFor(r Rectangle) [][2]int {
	minCX := int(math.Floor(r.Left / idx.cellSize))
	maxCX := int(math.Floor(r.Right() / idx.cellSize))
	minCY := int(math.Floor(r.Top / idx.cellSize))
	maxCY := int(math.Floor(r.Bottom() / idx.cellSize))
	var cells [][2]int
	for cx := minCX; cx <= maxCX; cx++ {
		for cy := minCY; cy <= maxCY; cy++ {
			cells = append(cells, [2]int{cx, cy})
		}
	}
	return cells
}

// candidates gathers and de-duplicates rectangle ids from every bucket a
// query rectangle touches.
func (idx *SpatialIndex) candidates(q Rectangle) []int {
	seen := make(map[int]bool)
	var out []int
	for _, cell := range idx.cellsFor(q) {
		for _, id := range idx.buckets[cell] {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return out
}

// Intersects returns rectangles with non-empty intersection with q.
func (idx *SpatialIndex) Intersects(q Rectangle) []Rectangle {
	var out []Rectangle
	for _, id := range idx.candidates(q) {
		if idx.items[id].Intersects(q) {
			out = append(out, idx.items[id])
		}
	}
	return out
}

// Contains returns rectangles fully inside q.
func (idx *SpatialIndex) Contains(q Rectangle) []Rectangle {
	var out []Rectangle
	for _, id := range idx.candidates(q) {
		r := idx.items[id]
		if r.Left >= q.Left && r.Right() <= q.Right() && r.Top >= q.Top && r.Bottom() <= q.Bottom() {
			out = append(out, r)
		}
	}
	return out
}

// AtPoint returns rectangles containing point p.
func (idx *SpatialIndex) AtPoint(p Point) []Rectangle {
	q := Rectangle{Top: p.Y, Left: p.X, Width: 0, Height: 0}
	var out []Rectangle
	for _, id := range idx.candidates(q) {
		if idx.items[id].Contains(p) {
			out = append(out, idx.items[id])
		}
	}
	return out
}

// Nearby returns rectangles within distance d of q, implemented as
// Intersects(expand(q, d)).
func (idx *SpatialIndex) Nearby(q Rectangle, d float64) []Rectangle {
	expanded := Rectangle{
		Top:    q.Top - d,
		Left:   q.Left - d,
		Width:  q.Width + 2*d,
		Height: q.Height + 2*d,
	}
	return idx.Intersects(expanded)
}
