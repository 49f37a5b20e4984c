package tabledetect

import (
	"math"
	"sort"

	"github.com/coregx/pdftab/internal/geometry"
	"github.com/coregx/pdftab/internal/layout"
	"github.com/coregx/pdftab/internal/models/page"
)

// Region is a detected table's bounding rectangle, independent of any
// particular extraction algorithm. The orchestrator extracts
// each region with the lattice or stream extractor, per the `guess` option.
type Region struct {
	Rect geometry.Rectangle
}

// LatticeDetector runs a stripped-down variant of the lattice extractor
// that stops at region bounding boxes, rejecting anything too small or too
// sparse to be a plausible table.
type LatticeDetector struct {
	cfg *Config
}

// NewLatticeDetector creates a LatticeDetector bound to cfg.
func NewLatticeDetector(cfg *Config) *LatticeDetector {
	return &LatticeDetector{cfg: cfg}
}

// Detect returns the bounding regions of every lattice-like cell cluster
// on p that clears the minimum dimension and cell-count thresholds.
func (d *LatticeDetector) Detect(p *page.Page) []Region {
	rulings := p.ProcessedRulings(d.cfg.OrientationTolerance)

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

	intersections := geometry.FindIntersections(horiz, vert, d.cfg.IntersectionTolerance)
	rowLines := uniqueSortedFloats(positions(horiz), d.cfg.CellTolerance)

	var cells []latticeCell
	for i := 0; i+1 < len(rowLines); i++ {
		top, bottom := rowLines[i], rowLines[i+1]
		cells = append(cells, discoverRowCells(top, bottom, horiz, vert, intersections, d.cfg)...)
	}

	regions := groupCellsIntoRegions(cells, d.cfg)

	var out []Region
	for _, region := range regions {
		if len(region) < d.cfg.MinCells {
			continue
		}
		bounds := boundingRect(region)
		if bounds.Width < d.cfg.MinTableDimension || bounds.Height < d.cfg.MinTableDimension {
			continue
		}
		out = append(out, Region{Rect: bounds})
	}
	return out
}

func boundingRect(cells []latticeCell) geometry.Rectangle {
	bounds := cells[0].Rect
	for _, c := range cells[1:] {
		bounds = bounds.Union(c.Rect)
	}
	return bounds
}

// NurminenDetector finds table regions by edge-position clustering across
// consecutive lines, independently of any ruling geometry, then merges its
// findings with the lattice detector's.
type NurminenDetector struct {
	cfg             *Config
	latticeDetector *LatticeDetector
}

// NewNurminenDetector creates a NurminenDetector bound to cfg.
func NewNurminenDetector(cfg *Config) *NurminenDetector {
	return &NurminenDetector{cfg: cfg, latticeDetector: NewLatticeDetector(cfg)}
}

// chunkEdge is one of a chunk's three candidate column-boundary positions.
type chunkEdge struct {
	line  int
	value float64
}

// Detect returns the lattice detector's regions plus any additional
// regions found by edge-alignment clustering, deduplicated against the
// lattice regions at OverlapThreshold.
func (d *NurminenDetector) Detect(p *page.Page) []Region {
	latticeRegions := d.latticeDetector.Detect(p)

	verticals := verticalRulingsOf(p.ProcessedRulings(d.cfg.OrientationTolerance))
	chunks := layout.MergeGlyphsToChunksOverlap(p.Glyphs(), verticals, d.cfg.WordGapMultiplier, d.cfg.VerticalComparisonThreshold)
	lines := layout.MergeChunksToLinesOverlap(chunks, d.cfg.VerticalComparisonThreshold)
	if len(lines) == 0 {
		return latticeRegions
	}
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].Rect.Less(lines[j].Rect) })

	edges := collectEdges(lines)
	relevant := relevantEdgePositions(edges, d.cfg.EdgeClusteringTolerance)

	runs := findAlignedRuns(lines, relevant, d.cfg)

	out := append([]Region(nil), latticeRegions...)
	for _, run := range runs {
		padded := padAndClip(run, d.cfg.DetectionPadding, p.Bounds)
		if !overlapsAny(padded, latticeRegions, d.cfg.OverlapThreshold) {
			out = append(out, Region{Rect: padded})
		}
	}
	return out
}

// collectEdges extracts each chunk's left, center, and right x-position,
// tagged with its line index.
func collectEdges(lines []*layout.Line) []chunkEdge {
	var edges []chunkEdge
	for i, line := range lines {
		for _, c := range line.Chunks {
			edges = append(edges, chunkEdge{line: i, value: c.Rect.Left})
			edges = append(edges, chunkEdge{line: i, value: c.Rect.CenterX()})
			edges = append(edges, chunkEdge{line: i, value: c.Rect.Right()})
		}
	}
	return edges
}

// relevantEdgePositions clusters edge values by proximity and keeps the
// cluster means that recur at least max(2, ceil(0.1*edge_count)) times.
func relevantEdgePositions(edges []chunkEdge, tolerance float64) []float64 {
	if len(edges) == 0 {
		return nil
	}
	values := make([]float64, len(edges))
	for i, e := range edges {
		values[i] = e.value
	}
	sort.Float64s(values)
	clusters := clusterByProximity(values, tolerance)

	threshold := int(math.Ceil(0.1 * float64(len(edges))))
	if threshold < 2 {
		threshold = 2
	}

	var relevant []float64
	for _, c := range clusters {
		if len(c) >= threshold {
			relevant = append(relevant, meanOf(c))
		}
	}
	return relevant
}

// findAlignedRuns groups consecutive lines into runs where each line has
// at least 30% of its chunk-edges aligning with a relevant edge position
// within 10.0, keeping runs of 2 or more lines.
func findAlignedRuns(lines []*layout.Line, relevant []float64, cfg *Config) []geometry.Rectangle {
	const alignmentTolerance = 10.0
	const minAlignmentRatio = 0.3

	aligned := make([]bool, len(lines))
	for i, line := range lines {
		edges := collectEdges([]*layout.Line{line})
		if len(edges) == 0 {
			continue
		}
		matched := 0
		for _, e := range edges {
			if nearAny(relevant, e.value, alignmentTolerance) {
				matched++
			}
		}
		aligned[i] = float64(matched)/float64(len(edges)) >= minAlignmentRatio
	}

	var runs []geometry.Rectangle
	runStart := -1
	flush := func(end int) {
		if end-runStart < cfg.MinRows {
			return
		}
		for _, sub := range splitRunAtVerticalGaps(lines[runStart:end]) {
			if len(sub) < cfg.MinRows || !isTabular(sub, cfg.TabularRatioThreshold) {
				continue
			}
			bounds := sub[0].Rect
			for _, line := range sub[1:] {
				bounds = bounds.Union(line.Rect)
			}
			runs = append(runs, bounds)
		}
	}
	for i, ok := range aligned {
		switch {
		case ok && runStart == -1:
			runStart = i
		case !ok && runStart != -1:
			flush(i)
			runStart = -1
		}
	}
	if runStart != -1 {
		flush(len(aligned))
	}
	return runs
}

// isTabular reports whether a candidate run reads as a table rather than
// aligned prose: the fraction of lines carrying at least two chunks (so at
// least one column boundary) must reach ratio.
func isTabular(run []*layout.Line, ratio float64) bool {
	if len(run) == 0 {
		return false
	}
	multi := 0
	for _, line := range run {
		if len(line.Chunks) >= 2 {
			multi++
		}
	}
	return float64(multi)/float64(len(run)) >= ratio
}

// splitRunAtVerticalGaps breaks a run of aligned lines wherever a vertical
// projection profile of their bounding boxes shows a whitespace band taller
// than twice the run's mean line height. List-consecutive lines can sit far
// apart on the page; two stacked tables with matching column edges must not
// fuse into one region.
func splitRunAtVerticalGaps(run []*layout.Line) [][]*layout.Line {
	if len(run) < 2 {
		return [][]*layout.Line{run}
	}

	rects := make([]geometry.Rectangle, len(run))
	heightSum := 0.0
	for i, line := range run {
		rects[i] = line.Rect
		heightSum += line.Rect.Height
	}
	minGap := 2 * heightSum / float64(len(run))

	profile := NewProjectionProfile(rects, Vertical)
	cuts := profile.GapMidpoints(minGap)
	if len(cuts) == 0 {
		return [][]*layout.Line{run}
	}

	var out [][]*layout.Line
	var current []*layout.Line
	cutIdx := 0
	for _, line := range run {
		for cutIdx < len(cuts) && line.Rect.Top > cuts[cutIdx] {
			cutIdx++
			if len(current) > 0 {
				out = append(out, current)
				current = nil
			}
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		out = append(out, current)
	}
	return out
}

func nearAny(values []float64, target, tolerance float64) bool {
	for _, v := range values {
		if math.Abs(v-target) <= tolerance {
			return true
		}
	}
	return false
}

func padAndClip(r geometry.Rectangle, padding float64, pageBounds geometry.Rectangle) geometry.Rectangle {
	top := math.Max(pageBounds.Top, r.Top-padding)
	left := math.Max(pageBounds.Left, r.Left-padding)
	bottom := math.Min(pageBounds.Bottom(), r.Bottom()+padding)
	right := math.Min(pageBounds.Right(), r.Right()+padding)
	return geometry.NewRectangle(top, left, math.Max(0, right-left), math.Max(0, bottom-top))
}

func overlapsAny(r geometry.Rectangle, regions []Region, threshold float64) bool {
	for _, region := range regions {
		area := r.IntersectionArea(region.Rect)
		if area <= 0 {
			continue
		}
		smaller := math.Min(r.Area(), region.Rect.Area())
		if smaller <= 0 {
			continue
		}
		if area/smaller >= threshold {
			return true
		}
	}
	return false
}
