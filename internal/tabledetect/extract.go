package tabledetect

import (
	"github.com/coregx/pdftab/internal/models/page"
	"github.com/coregx/pdftab/internal/models/table"
)

// Method selects which extraction algorithm Extract dispatches to.
type Method int

const (
	// Auto tries lattice extraction first, falling back to stream
	// extraction if it yields no tables.
	Auto Method = iota
	// Lattice extracts using ruling geometry only.
	Lattice
	// Stream extracts using whitespace-gap column guessing only.
	Stream
)

// ExtractOptions configures a single Extract call.
type ExtractOptions struct {
	Method  Method
	Columns []float64
	Guess   bool
	Config  *Config
}

// Extract is the top-level extraction orchestration: choose lattice,
// stream, or auto; when Guess is set, run the
// Nurminen detector first and extract lattice/stream per detected region
// instead of over the whole page.
func Extract(p *page.Page, opts ExtractOptions) []*table.Table {
	cfg := opts.Config
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if opts.Guess {
		return extractGuessedRegions(p, opts, cfg)
	}
	return extractMethod(p, opts.Method, opts.Columns, cfg)
}

func extractMethod(p *page.Page, method Method, columns []float64, cfg *Config) []*table.Table {
	switch method {
	case Lattice:
		return NewLatticeExtractor(cfg).Extract(p)
	case Stream:
		return streamAsSlice(p, columns, cfg)
	default: // Auto
		if tables := NewLatticeExtractor(cfg).Extract(p); len(tables) > 0 {
			return tables
		}
		return streamAsSlice(p, columns, cfg)
	}
}

func streamAsSlice(p *page.Page, columns []float64, cfg *Config) []*table.Table {
	t := NewStreamExtractor(cfg).Extract(p, columns)
	if t == nil {
		return nil
	}
	return []*table.Table{t}
}

// extractGuessedRegions runs the Nurminen detector, then re-extracts each
// detected region as its own sub-page via Page.GetArea.
func extractGuessedRegions(p *page.Page, opts ExtractOptions, cfg *Config) []*table.Table {
	regions := NewNurminenDetector(cfg).Detect(p)

	var tables []*table.Table
	for _, region := range regions {
		sub := p.GetArea(region.Rect)
		tables = append(tables, extractMethod(sub, opts.Method, opts.Columns, cfg)...)
	}
	return tables
}
