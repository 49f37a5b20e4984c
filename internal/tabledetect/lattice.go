package tabledetect

import (
	"math"
	"sort"

	"github.com/coregx/pdftab/internal/geometry"
	"github.com/coregx/pdftab/internal/layout"
	"github.com/coregx/pdftab/internal/models/page"
	"github.com/coregx/pdftab/internal/models/table"
)

// LatticeExtractor reconstructs tables from a page's ruling grid, the
// hardest subroutine in the package: per-row cell discovery
// decouples column boundaries across rows, which is what lets a grid with
// header or footnote spans yield a single non-rectangular table instead of
// failing the whole region.
type LatticeExtractor struct {
	cfg *Config
}

// NewLatticeExtractor creates a LatticeExtractor bound to cfg.
func NewLatticeExtractor(cfg *Config) *LatticeExtractor {
	return &LatticeExtractor{cfg: cfg}
}

// latticeCell is a candidate table cell discovered during per-row
// scanning, before region grouping.
type latticeCell struct {
	Rect geometry.Rectangle
}

// Extract builds zero or more tables from p's processed rulings.
func (e *LatticeExtractor) Extract(p *page.Page) []*table.Table {
	rulings := p.ProcessedRulings(e.cfg.OrientationTolerance)

	var horiz, vert []geometry.Ruling
	for _, r := range rulings {
		switch {
		case r.IsHorizontal():
			horiz = append(horiz, r)
		case r.IsVertical():
			vert = append(vert, r)
		}
	}
	if len(horiz) == 0 || len(vert) == 0 {
		return nil
	}

	intersections := geometry.FindIntersections(horiz, vert, e.cfg.IntersectionTolerance)

	rowLines := uniqueSortedFloats(positions(horiz), e.cfg.CellTolerance)

	var cells []latticeCell
	for i := 0; i+1 < len(rowLines); i++ {
		top, bottom := rowLines[i], rowLines[i+1]
		cells = append(cells, discoverRowCells(top, bottom, horiz, vert, intersections, e.cfg)...)
	}

	regions := groupCellsIntoRegions(cells, e.cfg)

	var tables []*table.Table
	for _, region := range regions {
		if len(region) < e.cfg.MinCells {
			continue
		}
		if t := buildTableFromRegion(region, p, e.cfg); t != nil {
			tables = append(tables, t)
		}
	}
	return tables
}

func positions(rulings []geometry.Ruling) []float64 {
	out := make([]float64, len(rulings))
	for i, r := range rulings {
		out[i] = r.Position()
	}
	return out
}

func uniqueSortedFloats(vals []float64, tolerance float64) []float64 {
	if len(vals) == 0 {
		return nil
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	out := sorted[:1]
	for _, v := range sorted[1:] {
		if v-out[len(out)-1] > tolerance {
			out = append(out, v)
		}
	}
	return out
}

// discoverRowCells picks the verticals that
// span this row, then accept each consecutive x-interval via the edge-OR-
// corner test.
func discoverRowCells(top, bottom float64, horiz, vert []geometry.Ruling, intersections []geometry.Point, cfg *Config) []latticeCell {
	tau := cfg.CellTolerance

	var rowVerticals []geometry.Ruling
	for _, v := range vert {
		if v.CoversRange(top, bottom, tau) {
			rowVerticals = append(rowVerticals, v)
		}
	}
	xList := uniqueSortedFloats(positions(rowVerticals), tau)

	var cells []latticeCell
	for i := 0; i+1 < len(xList); i++ {
		left, right := xList[i], xList[i+1]
		if edgeTestPasses(top, bottom, left, right, horiz, vert, tau) ||
			cornerTestPasses(top, bottom, left, right, intersections, tau) {
			cells = append(cells, latticeCell{Rect: geometry.NewRectangle(top, left, right-left, bottom-top)})
		}
	}
	return cells
}

func edgeTestPasses(top, bottom, left, right float64, horiz, vert []geometry.Ruling, tau float64) bool {
	hasHorizAt := func(y float64) bool {
		for _, h := range horiz {
			if math.Abs(h.Position()-y) <= tau && h.CoversRange(left, right, tau) {
				return true
			}
		}
		return false
	}
	hasVertAt := func(x float64) bool {
		for _, v := range vert {
			if math.Abs(v.Position()-x) <= tau && v.CoversRange(top, bottom, tau) {
				return true
			}
		}
		return false
	}
	return hasHorizAt(top) && hasHorizAt(bottom) && hasVertAt(left) && hasVertAt(right)
}

func cornerTestPasses(top, bottom, left, right float64, intersections []geometry.Point, tau float64) bool {
	corners := []geometry.Point{
		{X: left, Y: top}, {X: right, Y: top},
		{X: left, Y: bottom}, {X: right, Y: bottom},
	}
	for _, corner := range corners {
		if !anyPointNear(intersections, corner, tau) {
			return false
		}
	}
	return true
}

func anyPointNear(points []geometry.Point, target geometry.Point, tau float64) bool {
	for _, p := range points {
		if math.Abs(p.X-target.X) <= tau && math.Abs(p.Y-target.Y) <= tau {
			return true
		}
	}
	return false
}

// groupCellsIntoRegions merges discovered cells via union-find:
// cells are adjacent when their horizontal or vertical edges coincide
// within CellTolerance and their perpendicular extents overlap >= 50%.
func groupCellsIntoRegions(cells []latticeCell, cfg *Config) [][]latticeCell {
	n := len(cells)
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}

	tau := cfg.CellTolerance
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if cellsAdjacent(cells[i].Rect, cells[j].Rect, tau) {
				union(i, j)
			}
		}
	}

	groups := make(map[int][]latticeCell)
	for i, c := range cells {
		root := find(i)
		groups[root] = append(groups[root], c)
	}

	var regions [][]latticeCell
	for _, g := range groups {
		if len(g) == 0 {
			continue
		}
		area := boundingArea(g)
		if area <= 0 {
			continue
		}
		regions = append(regions, g)
	}
	// reading order: tables are reported top-then-left within a page
	sort.Slice(regions, func(i, j int) bool {
		return boundingRect(regions[i]).Less(boundingRect(regions[j]))
	})
	return regions
}

func cellsAdjacent(a, b geometry.Rectangle, tau float64) bool {
	horizontallyTouch := math.Abs(a.Right()-b.Left) <= tau || math.Abs(b.Right()-a.Left) <= tau
	if horizontallyTouch && verticalOverlapFraction(a, b) >= 0.5 {
		return true
	}
	verticallyTouch := math.Abs(a.Bottom()-b.Top) <= tau || math.Abs(b.Bottom()-a.Top) <= tau
	if verticallyTouch && horizontalOverlapFraction(a, b) >= 0.5 {
		return true
	}
	return false
}

func verticalOverlapFraction(a, b geometry.Rectangle) float64 {
	top := math.Max(a.Top, b.Top)
	bottom := math.Min(a.Bottom(), b.Bottom())
	overlap := bottom - top
	if overlap <= 0 {
		return 0
	}
	return overlap / math.Min(a.Height, b.Height)
}

func horizontalOverlapFraction(a, b geometry.Rectangle) float64 {
	left := math.Max(a.Left, b.Left)
	right := math.Min(a.Right(), b.Right())
	overlap := right - left
	if overlap <= 0 {
		return 0
	}
	return overlap / math.Min(a.Width, b.Width)
}

func boundingArea(cells []latticeCell) float64 {
	if len(cells) == 0 {
		return 0
	}
	bounds := cells[0].Rect
	for _, c := range cells[1:] {
		bounds = bounds.Union(c.Rect)
	}
	return bounds.Area()
}

// buildTableFromRegion assembles a region's grid: row/col indices
// derived independently per row so spanning cells don't force a
// rectangular grid, then glyphs populated via the page's spatial index.
func buildTableFromRegion(region []latticeCell, p *page.Page, cfg *Config) *table.Table {
	rowTops := uniqueSortedFloats(topsOf(region), 0.5)
	rowIndexOf := func(top float64) int {
		best, bestDist := 0, math.Inf(1)
		for i, t := range rowTops {
			if d := math.Abs(t - top); d < bestDist {
				best, bestDist = i, d
			}
		}
		return best
	}

	rows := make(map[int][]latticeCell)
	for _, c := range region {
		ri := rowIndexOf(c.Rect.Top)
		rows[ri] = append(rows[ri], c)
	}

	tbl := table.NewTable(table.MethodLattice, p.Number)
	for ri, rowCells := range rows {
		sort.Slice(rowCells, func(i, j int) bool { return rowCells[i].Rect.Left < rowCells[j].Rect.Left })
		for ci, c := range rowCells {
			cell := table.NewCell(ri, ci, c.Rect)
			populateCellText(cell, p, cfg)
			tbl.SetCell(ri, ci, cell)
		}
	}
	if tbl.RowCount == 0 {
		return nil
	}
	return tbl
}

func topsOf(cells []latticeCell) []float64 {
	out := make([]float64, len(cells))
	for i, c := range cells {
		out[i] = c.Rect.Top
	}
	return out
}

// populateCellText assigns the text of every glyph whose origin lies
// within cell.Rect to cell's text, merged into words
// and lines first so Cell.AddText's single-space join produces normal
// prose rather than one space per character.
func populateCellText(cell *table.Cell, p *page.Page, cfg *Config) {
	glyphs := p.GlyphsIn(cell.Rect)
	chunks := layout.MergeGlyphsToChunksOverlap(glyphs, nil, cfg.WordGapMultiplier, cfg.VerticalComparisonThreshold)
	lines := layout.MergeChunksToLinesOverlap(chunks, cfg.VerticalComparisonThreshold)
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].Rect.Less(lines[j].Rect) })
	for _, line := range lines {
		cell.AddText(line.Text(" "))
	}
}
