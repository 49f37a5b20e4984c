// Package tabledetect implements table detection and extraction over a
// page's normalized rulings and assembled text lines: the projection
// profile, lattice extractor, stream extractor, and the lattice/Nurminen
// region detectors.
package tabledetect

// Config holds the extraction tunables. Every
// extractor/detector constructor in this package takes a *Config rather
// than reading a package-level global, so callers can clone-and-override
// without affecting concurrent extraction elsewhere.
type Config struct {
	// OrientationTolerance is the max slope, in points, for a ruling to be
	// considered axis-aligned.
	OrientationTolerance float64

	// IntersectionTolerance is the point-in-segment tolerance used by
	// intersection tests.
	IntersectionTolerance float64

	// RulingThicknessThreshold is the max thin-dimension of a filled
	// rectangle for it to be treated as a ruling.
	RulingThicknessThreshold float64

	// WordGapMultiplier is the fraction of space-width permitted as an
	// inter-glyph gap when merging glyphs into chunks.
	WordGapMultiplier float64

	// LineGapMultiplier is the fraction of average char width permitted
	// inside a line. No extractor or detector in this package reads it.
	LineGapMultiplier float64

	// MinCells is the minimum number of cells for a lattice table.
	MinCells int

	// MinTableDimension is the minimum width and height of a detected
	// region.
	MinTableDimension float64

	// CellTolerance is the corner/edge match tolerance in lattice cell
	// discovery.
	CellTolerance float64

	// MinRows is the minimum number of rows for a Nurminen-detected table.
	MinRows int

	// OverlapThreshold is the dedup threshold when merging detectors'
	// regions.
	OverlapThreshold float64

	// TabularRatioThreshold is the minimum row/col ratio for the
	// "tabular?" predicate.
	TabularRatioThreshold float64

	// EdgeClusteringTolerance is the edge cluster radius used by the
	// Nurminen detector.
	EdgeClusteringTolerance float64

	// DetectionPadding is the padding applied around detected regions.
	DetectionPadding float64

	// VerticalComparisonThreshold is the minimum fractional overlap
	// required for line grouping.
	VerticalComparisonThreshold float64
}

// DefaultConfig returns the tunables at their defaults.
func DefaultConfig() *Config {
	return &Config{
		OrientationTolerance:        1.0,
		IntersectionTolerance:       1.0,
		RulingThicknessThreshold:    8.0,
		WordGapMultiplier:           0.5,
		LineGapMultiplier:           0.5,
		MinCells:                    4,
		MinTableDimension:           10.0,
		CellTolerance:               2.0,
		MinRows:                     2,
		OverlapThreshold:            0.9,
		TabularRatioThreshold:       0.65,
		EdgeClusteringTolerance:     8.0,
		DetectionPadding:            2.0,
		VerticalComparisonThreshold: 0.4,
	}
}

// WithCellTolerance returns a copy of c with CellTolerance set to v.
func (c *Config) WithCellTolerance(v float64) *Config {
	clone := *c
	clone.CellTolerance = v
	return &clone
}

// WithMinCells returns a copy of c with MinCells set to v.
func (c *Config) WithMinCells(v int) *Config {
	clone := *c
	clone.MinCells = v
	return &clone
}

// WithOverlapThreshold returns a copy of c with OverlapThreshold set to v.
func (c *Config) WithOverlapThreshold(v float64) *Config {
	clone := *c
	clone.OverlapThreshold = v
	return &clone
}

// WithEdgeClusteringTolerance returns a copy of c with
// EdgeClusteringTolerance set to v.
func (c *Config) WithEdgeClusteringTolerance(v float64) *Config {
	clone := *c
	clone.EdgeClusteringTolerance = v
	return &clone
}
