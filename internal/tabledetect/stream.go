package tabledetect

import (
	"math"
	"sort"

	"github.com/coregx/pdftab/internal/geometry"
	"github.com/coregx/pdftab/internal/layout"
	"github.com/coregx/pdftab/internal/models/page"
	"github.com/coregx/pdftab/internal/models/table"
)

// StreamExtractor reconstructs a single table from a page's assembled
// lines using whitespace-gap column guessing rather than rulings.
type StreamExtractor struct {
	cfg *Config
}

// NewStreamExtractor creates a StreamExtractor bound to cfg.
func NewStreamExtractor(cfg *Config) *StreamExtractor {
	return &StreamExtractor{cfg: cfg}
}

// Extract builds a single table from p's glyphs, using externalColumns
// (already-known vertical column x-positions, e.g. from ExtractionOptions
// .Columns) if non-empty. Returns nil if the page yields no non-empty
// table.
func (e *StreamExtractor) Extract(p *page.Page, externalColumns []float64) *table.Table {
	verticals := verticalRulingsOf(p.ProcessedRulings(e.cfg.OrientationTolerance))
	chunks := layout.MergeGlyphsToChunksOverlap(p.Glyphs(), verticals, e.cfg.WordGapMultiplier, e.cfg.VerticalComparisonThreshold)
	lines := layout.MergeChunksToLinesOverlap(chunks, e.cfg.VerticalComparisonThreshold)
	if len(lines) == 0 {
		return nil
	}
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].Rect.Less(lines[j].Rect) })

	columns := e.chooseColumns(lines, verticals, externalColumns)

	tbl := table.NewTable(table.MethodStream, p.Number)
	for rowIdx, line := range lines {
		assignLineToColumns(tbl, rowIdx, line, columns)
	}
	if tbl.RowCount == 0 || tbl.IsEmpty() {
		return nil
	}
	return tbl
}

func verticalRulingsOf(rulings []geometry.Ruling) []geometry.Ruling {
	var out []geometry.Ruling
	for _, r := range rulings {
		if r.IsVertical() {
			out = append(out, r)
		}
	}
	return out
}

// chooseColumns picks column positions from the first satisfied of four
// sources, in priority order.
func (e *StreamExtractor) chooseColumns(lines []*layout.Line, verticals []geometry.Ruling, externalColumns []float64) []float64 {
	if len(externalColumns) > 0 {
		sorted := make([]float64, len(externalColumns))
		copy(sorted, externalColumns)
		sort.Float64s(sorted)
		return sorted
	}

	if len(verticals) > 0 {
		positions := make([]float64, len(verticals))
		for i, v := range verticals {
			positions[i] = v.Position()
		}
		return uniqueSortedFloats(positions, e.cfg.CellTolerance)
	}

	if cols := e.guessColumnsFromGaps(lines); len(cols) > 0 {
		return cols
	}

	return nil
}

// guessColumnsFromGaps pools every line's gap midpoints and 1-D-clusters
// them by proximity, keeping clusters that recur in enough lines.
func (e *StreamExtractor) guessColumnsFromGaps(lines []*layout.Line) []float64 {
	var pooled []float64
	for _, line := range lines {
		pooled = append(pooled, line.GapPositions()...)
	}
	if len(pooled) == 0 {
		return nil
	}
	sort.Float64s(pooled)

	const clusterProximity = 5.0
	clusters := clusterByProximity(pooled, clusterProximity)

	threshold := int(math.Ceil(0.3 * float64(len(lines))))
	var columns []float64
	for _, c := range clusters {
		if len(c) >= threshold {
			columns = append(columns, meanOf(c))
		}
	}
	sort.Float64s(columns)
	return columns
}

// clusterByProximity groups pre-sorted values into runs where consecutive
// values are within proximity of each other.
func clusterByProximity(sorted []float64, proximity float64) [][]float64 {
	if len(sorted) == 0 {
		return nil
	}
	var clusters [][]float64
	current := []float64{sorted[0]}
	for _, v := range sorted[1:] {
		if v-current[len(current)-1] <= proximity {
			current = append(current, v)
		} else {
			clusters = append(clusters, current)
			current = []float64{v}
		}
	}
	clusters = append(clusters, current)
	return clusters
}

func meanOf(vals []float64) float64 {
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// assignLineToColumns routes a line's chunks into columns: boundaries
// are [line.left, col1, col2, ..., +inf], each chunk routed by its
// horizontal center into the first interval containing it.
func assignLineToColumns(tbl *table.Table, rowIdx int, line *layout.Line, columns []float64) {
	boundaries := append([]float64{line.Rect.Left}, columns...)
	boundaries = append(boundaries, math.Inf(1))

	colChunks := make(map[int][]*layout.TextChunk)
	for _, chunk := range line.Chunks {
		center := chunk.Rect.CenterX()
		col := columnIndexFor(center, boundaries)
		colChunks[col] = append(colChunks[col], chunk)
	}

	for col, members := range colChunks {
		sort.Slice(members, func(i, j int) bool { return members[i].Rect.Left < members[j].Rect.Left })
		rect := members[0].Rect
		for _, m := range members[1:] {
			rect = rect.Union(m.Rect)
		}
		cell := table.NewCell(rowIdx, col, rect)
		for _, m := range members {
			cell.AddText(m.Text())
		}
		tbl.SetCell(rowIdx, col, cell)
	}
}

func columnIndexFor(center float64, boundaries []float64) int {
	for i := 0; i+1 < len(boundaries); i++ {
		if center >= boundaries[i] && center < boundaries[i+1] {
			return i
		}
	}
	return len(boundaries) - 2
}
