package tabledetect

import (
	"math"

	"github.com/coregx/pdftab/internal/geometry"
)

// BinWidth is the default projection-profile bin width, in points.
const BinWidth = 1.0

// Orientation selects which axis a ProjectionProfile projects rectangles
// onto.
type Orientation int

const (
	// Horizontal projects each rectangle's [Left, Right] extent onto the
	// x-axis.
	Horizontal Orientation = iota
	// Vertical projects each rectangle's [Top, Bottom] extent onto the
	// y-axis.
	Vertical
)

// Gap is a contiguous run of empty bins in a ProjectionProfile.
type Gap struct {
	Low, High float64
}

// Midpoint returns the gap's center.
func (g Gap) Midpoint() float64 { return (g.Low + g.High) / 2 }

// ProjectionProfile is a fixed-bin-width histogram over a set of
// rectangles' extents along one axis.
type ProjectionProfile struct {
	binWidth   float64
	counts     map[int]int
	minBin     int
	maxBin     int
	hasEntries bool
}

// NewProjectionProfile builds a histogram over rects, projected per
// orientation, using BinWidth-wide bins.
func NewProjectionProfile(rects []geometry.Rectangle, orientation Orientation) *ProjectionProfile {
	p := &ProjectionProfile{binWidth: BinWidth, counts: make(map[int]int)}
	for _, r := range rects {
		var lo, hi float64
		if orientation == Horizontal {
			lo, hi = r.Left, r.Right()
		} else {
			lo, hi = r.Top, r.Bottom()
		}
		p.add(lo, hi)
	}
	return p
}

func (p *ProjectionProfile) add(lo, hi float64) {
	loBin := p.binOf(lo)
	hiBin := p.binOf(hi)
	for b := loBin; b <= hiBin; b++ {
		p.counts[b]++
		if !p.hasEntries || b < p.minBin {
			p.minBin = b
		}
		if !p.hasEntries || b > p.maxBin {
			p.maxBin = b
		}
		p.hasEntries = true
	}
}

func (p *ProjectionProfile) binOf(v float64) int {
	return int(math.Floor(v / p.binWidth))
}

// FindGaps sweeps bin indices from the minimum to the maximum occupied bin
// and yields contiguous zero-count intervals whose width is at least
// minGap.
func (p *ProjectionProfile) FindGaps(minGap float64) []Gap {
	if !p.hasEntries {
		return nil
	}
	var gaps []Gap
	runStart := -1
	for b := p.minBin; b <= p.maxBin+1; b++ {
		empty := b <= p.maxBin && p.counts[b] == 0
		switch {
		case empty && runStart == -1:
			runStart = b
		case !empty && runStart != -1:
			low := float64(runStart) * p.binWidth
			high := float64(b) * p.binWidth
			if high-low >= minGap {
				gaps = append(gaps, Gap{Low: low, High: high})
			}
			runStart = -1
		}
	}
	return gaps
}

// GapMidpoints returns the centers of FindGaps(minGap).
func (p *ProjectionProfile) GapMidpoints(minGap float64) []float64 {
	gaps := p.FindGaps(minGap)
	out := make([]float64, len(gaps))
	for i, g := range gaps {
		out[i] = g.Midpoint()
	}
	return out
}
