package pdftab

import (
	"sort"
	"strings"

	"github.com/coregx/pdftab/internal/extractor"
	"github.com/coregx/pdftab/internal/layout"
	"github.com/coregx/pdftab/internal/tabledetect"
)

// Page represents a single page in a PDF document.
type Page struct {
	doc   *Document
	index int
}

// Index returns the page index (0-based).
func (p *Page) Index() int {
	return p.index
}

// Number returns the page number (1-based, for display).
func (p *Page) Number() int {
	return p.index + 1
}

// ExtractText extracts all text from the page.
//
// Returns the text content as a single string.
//
// Example:
//
//	text := page.ExtractText()
//	fmt.Println(text)
func (p *Page) ExtractText() string {
	receiver := extractor.NewReceiver(p.doc.reader)
	pg, err := receiver.ExtractPage(p.index)
	if err != nil {
		return ""
	}

	chunks := layout.MergeGlyphsToChunks(pg.Glyphs(), nil, 0.5)
	lines := layout.MergeChunksToLines(chunks)
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].Rect.Less(lines[j].Rect) })

	texts := make([]string, len(lines))
	for i, line := range lines {
		texts[i] = line.Text(" ")
	}
	return strings.Join(texts, "\n")
}

// ExtractTables extracts all tables from this page.
//
// Example:
//
//	tables := page.ExtractTables()
//	for _, t := range tables {
//	    fmt.Println(t.Rows())
//	}
func (p *Page) ExtractTables() []*Table {
	tables, _ := p.ExtractTablesWithOptions(nil)
	return tables
}

// ExtractTablesWithOptions extracts tables with custom options.
func (p *Page) ExtractTablesWithOptions(opts *ExtractionOptions) ([]*Table, error) {
	if opts == nil {
		opts = DefaultExtractionOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	cfg := tabledetect.DefaultConfig()
	receiver := extractor.NewReceiver(p.doc.reader).WithRulingThickness(cfg.RulingThicknessThreshold)
	pg, err := receiver.ExtractPage(p.index)
	if err != nil {
		return nil, NewPageError(InvalidPDF, p.index, err)
	}

	if opts.Area != nil {
		pg = pg.GetArea(geometryRectFromArea(opts.Area))
	}

	tbls := tabledetect.Extract(pg, tabledetect.ExtractOptions{
		Method:  toTableMethod(opts.Method),
		Columns: opts.Columns,
		Guess:   opts.Guess,
		Config:  cfg,
	})

	var tables []*Table
	for _, t := range tbls {
		tables = append(tables, &Table{internal: t})
	}
	return tables, nil
}

// GetImages extracts all images from this page.
//
// Returns all images found on the page as a slice.
//
// Example:
//
//	images := page.GetImages()
//	for i, img := range images {
//	    fmt.Printf("Image %d: %dx%d\n", i, img.Width(), img.Height())
//	    img.SaveToFile(fmt.Sprintf("page%d_image%d.jpg", page.Number(), i))
//	}
func (p *Page) GetImages() []*Image {
	images, _ := p.GetImagesWithError()
	return images
}

// GetImagesWithError extracts all images from this page, returning any errors.
//
// Use this when you need error handling for image extraction.
func (p *Page) GetImagesWithError() ([]*Image, error) {
	imageExtractor := extractor.NewImageExtractor(p.doc.reader)
	internalImages, err := imageExtractor.ExtractFromPage(p.index)
	if err != nil {
		return nil, err
	}

	// Wrap internal images in public API
	images := make([]*Image, len(internalImages))
	for i, internal := range internalImages {
		images[i] = &Image{internal: internal}
	}

	return images, nil
}
