package extractor

import (
	"fmt"
	"math"

	"github.com/coregx/pdftab/internal/geometry"
	"github.com/coregx/pdftab/internal/layout"
	"github.com/coregx/pdftab/internal/models/page"
	"github.com/coregx/pdftab/internal/parser"
)

// Point is a 2D point in the receiver's working coordinate space (device
// space: origin bottom-left, y-up, before the crop-box flip to top-left
// page coordinates).
type Point struct {
	X, Y float64
}

// NewPoint creates a new Point.
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

// colinearTolerance is the default tolerance used to snap near-horizontal
// and near-vertical path segments to true rulings.
const colinearTolerance = 0.1

// thinRectMax is the maximum thickness, in points, a filled rectangle's
// short dimension may have to be treated as a table ruling rather than a
// filled shape.
const thinRectMax = 8.0

// Receiver walks a page's content stream, interpreting its graphics and
// text-showing operators to build the page's glyphs and rulings in a
// single pass. It plays the role the PDF spec calls a content-stream
// "device": it owns the graphics-state stack and resolves fonts from
// /Resources/Font on demand.
//
// Reference: PDF 1.7 specification, Section 8 (Graphics) and Section 9
// (Text).
type Receiver struct {
	reader    *parser.Reader
	fontCache map[string]*fontInfo
	thickness float64
}

// NewReceiver creates a Receiver bound to reader's document.
func NewReceiver(reader *parser.Reader) *Receiver {
	return &Receiver{reader: reader, fontCache: make(map[string]*fontInfo), thickness: thinRectMax}
}

// WithRulingThickness returns the receiver with a custom filled-rectangle
// thickness threshold.
func (rc *Receiver) WithRulingThickness(threshold float64) *Receiver {
	rc.thickness = threshold
	return rc
}

// receiverState is the mutable graphics/text/path state threaded through
// one content stream walk.
type receiverState struct {
	ctm       Matrix
	ctmStack  []Matrix
	ts        *TextState
	fontRes   *parser.Dictionary
	subpaths  [][]Point
	current   []Point
	glyphs    []layout.Glyph
	rulings   []geometry.Ruling
	cropX0    float64
	cropY1    float64
}

// ExtractPage parses page index (0-based) into a fully built Page model:
// glyphs and rulings in top-left page coordinates, clipped to the page's
// crop box.
func (rc *Receiver) ExtractPage(index int) (*page.Page, error) {
	pageDict, err := rc.reader.GetPage(index)
	if err != nil {
		return nil, fmt.Errorf("extractor: %w", err)
	}

	mediaBox := resolveArray(rc.reader, pageDict.Get("MediaBox"))
	mx0, my0, mx1, my1 := rectCorners(mediaBox, 0, 0, 612, 792)

	cropBox := resolveArray(rc.reader, pageDict.Get("CropBox"))
	cx0, cy0, cx1, cy1 := rectCorners(cropBox, mx0, my0, mx1, my1)

	content, err := rc.pageContent(pageDict)
	if err != nil {
		return nil, fmt.Errorf("extractor: %w", err)
	}

	resources := rc.reader.ResolveDictionary(pageDict.Get("Resources"))
	var fontRes *parser.Dictionary
	if resources != nil {
		fontRes = rc.reader.ResolveDictionary(resources.Get("Font"))
	}

	st := &receiverState{
		ctm:     Identity(),
		ts:      NewTextState(),
		fontRes: fontRes,
		cropX0:  cx0,
		cropY1:  cy1,
	}

	operators, err := NewContentParser(content).ParseOperators()
	if err != nil {
		return nil, fmt.Errorf("extractor: failed to parse content stream: %w", err)
	}
	for _, op := range operators {
		rc.apply(st, op)
	}
	rc.flushPath(st, false, false)

	bounds := geometry.NewRectangle(0, 0, cx1-cx0, cy1-cy0)
	rotation := int(pageDict.GetInteger("Rotate"))
	return page.New(index, bounds, rotation, st.glyphs, st.rulings), nil
}

// rectCorners decodes a PDF rectangle array [x0 y0 x1 y1], normalizing so
// x0<=x1 and y0<=y1, or returns the supplied defaults if arr is malformed.
func rectCorners(arr *parser.Array, defX0, defY0, defX1, defY1 float64) (x0, y0, x1, y1 float64) {
	if arr == nil || arr.Len() < 4 {
		return defX0, defY0, defX1, defY1
	}
	vals := make([]float64, 4)
	for i := 0; i < 4; i++ {
		n := getNumber(arr.Get(i))
		if n == nil {
			return defX0, defY0, defX1, defY1
		}
		vals[i] = *n
	}
	x0, y0, x1, y1 = vals[0], vals[1], vals[2], vals[3]
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return x0, y0, x1, y1
}

// pageContent resolves and decodes a page's /Contents, which is either a
// single stream or an array of streams to be concatenated.
func (rc *Receiver) pageContent(pageDict *parser.Dictionary) ([]byte, error) {
	contentsObj := pageDict.Get("Contents")
	if contentsObj == nil {
		return nil, nil
	}

	resolved, err := rc.reader.Resolve(contentsObj)
	if err != nil {
		return nil, err
	}

	switch obj := resolved.(type) {
	case *parser.Stream:
		return obj.Decode()
	case *parser.Array:
		var all []byte
		for i := 0; i < obj.Len(); i++ {
			stream, err := rc.reader.ResolveStream(obj.Get(i))
			if err != nil {
				continue
			}
			decoded, err := stream.Decode()
			if err != nil {
				continue
			}
			all = append(all, decoded...)
			all = append(all, '\n')
		}
		return all, nil
	default:
		return nil, fmt.Errorf("unexpected Contents type %T", resolved)
	}
}

// apply dispatches one content-stream operator against st.
//
//nolint:cyclop,funlen // content-stream operator dispatch is inherently one big switch
func (rc *Receiver) apply(st *receiverState, op *Operator) {
	switch op.Name {
	case "q":
		st.ctmStack = append(st.ctmStack, st.ctm)
	case "Q":
		if n := len(st.ctmStack); n > 0 {
			st.ctm = st.ctmStack[n-1]
			st.ctmStack = st.ctmStack[:n-1]
		}
	case "cm":
		if m := operandMatrix(op.Operands); m != nil {
			st.ctm = st.ctm.Multiply(*m)
		}

	case "m":
		if p := point2(op.Operands); p != nil {
			x, y := st.ctm.Transform(p[0], p[1])
			rc.beginSubpath(st, x, y)
		}
	case "l":
		if p := point2(op.Operands); p != nil {
			x, y := st.ctm.Transform(p[0], p[1])
			st.current = append(st.current, NewPoint(x, y))
		}
	case "c", "v", "y":
		if p := curveEnd(op.Operands); p != nil {
			x, y := st.ctm.Transform(p[0], p[1])
			st.current = append(st.current, NewPoint(x, y))
		}
	case "re":
		rc.appendRectangle(st, op.Operands)
	case "h":
		if len(st.current) > 0 {
			st.current = append(st.current, st.current[0])
		}

	case "S":
		rc.flushPath(st, true, false)
	case "s":
		if len(st.current) > 0 {
			st.current = append(st.current, st.current[0])
		}
		rc.flushPath(st, true, false)
	case "f", "F":
		rc.flushPath(st, false, true)
	case "f*":
		rc.flushPath(st, false, true)
	case "B", "B*":
		rc.flushPath(st, true, true)
	case "b", "b*":
		if len(st.current) > 0 {
			st.current = append(st.current, st.current[0])
		}
		rc.flushPath(st, true, true)
	case "n":
		rc.flushPath(st, false, false)

	case "BT":
		st.ts.Reset()
	case "Tf":
		if len(op.Operands) >= 2 {
			name := nameOperand(op.Operands[0])
			size := getNumber(op.Operands[1])
			if size != nil {
				st.ts.SetFont(name, *size)
			}
		}
	case "Td":
		if p := point2(op.Operands); p != nil {
			st.ts.Translate(p[0], p[1])
		}
	case "TD":
		if p := point2(op.Operands); p != nil {
			st.ts.TranslateSetLeading(p[0], p[1])
		}
	case "Tm":
		if m := operandMatrix(op.Operands); m != nil {
			st.ts.SetTextMatrix(m.A, m.B, m.C, m.D, m.E, m.F)
		}
	case "T*":
		st.ts.MoveToNextLine()
	case "Tc":
		if n := getNumber(single(op.Operands)); n != nil {
			st.ts.CharSpace = *n
		}
	case "Tw":
		if n := getNumber(single(op.Operands)); n != nil {
			st.ts.WordSpace = *n
		}
	case "Tz":
		if n := getNumber(single(op.Operands)); n != nil {
			st.ts.HorizScale = *n
		}
	case "TL":
		if n := getNumber(single(op.Operands)); n != nil {
			st.ts.Leading = *n
		}
	case "Ts":
		if n := getNumber(single(op.Operands)); n != nil {
			st.ts.Rise = *n
		}
	case "Tj":
		if s, ok := stringOperand(single(op.Operands)); ok {
			rc.showText(st, []byte(s))
		}
	case "'":
		st.ts.MoveToNextLine()
		if s, ok := stringOperand(single(op.Operands)); ok {
			rc.showText(st, []byte(s))
		}
	case "\"":
		if len(op.Operands) == 3 {
			if aw := getNumber(op.Operands[0]); aw != nil {
				st.ts.WordSpace = *aw
			}
			if ac := getNumber(op.Operands[1]); ac != nil {
				st.ts.CharSpace = *ac
			}
			st.ts.MoveToNextLine()
			if s, ok := stringOperand(op.Operands[2]); ok {
				rc.showText(st, []byte(s))
			}
		}
	case "TJ":
		rc.showTextArray(st, op.Operands)
	}
}

// beginSubpath implements the subpath-pooling rule: a non-empty current
// subpath is pushed to the pool before a new one begins.
func (rc *Receiver) beginSubpath(st *receiverState, x, y float64) {
	if len(st.current) > 0 {
		st.subpaths = append(st.subpaths, st.current)
	}
	st.current = []Point{NewPoint(x, y)}
}

// appendRectangle pushes any open subpath, then appends the rectangle as
// its own closed subpath directly to the pool.
func (rc *Receiver) appendRectangle(st *receiverState, operands []parser.PdfObject) {
	if len(operands) < 4 {
		return
	}
	x := getNumber(operands[0])
	y := getNumber(operands[1])
	w := getNumber(operands[2])
	h := getNumber(operands[3])
	if x == nil || y == nil || w == nil || h == nil {
		return
	}
	if len(st.current) > 0 {
		st.subpaths = append(st.subpaths, st.current)
		st.current = nil
	}
	corners := [][2]float64{{*x, *y}, {*x + *w, *y}, {*x + *w, *y + *h}, {*x, *y + *h}, {*x, *y}}
	rect := make([]Point, len(corners))
	for i, c := range corners {
		dx, dy := st.ctm.Transform(c[0], c[1])
		rect[i] = NewPoint(dx, dy)
	}
	st.subpaths = append(st.subpaths, rect)
}

// flushPath consumes the accumulated path according to the current
// painting operator, emits the resulting rulings, and clears the path.
// stroke processes only current;
// fill processes pool+current.
func (rc *Receiver) flushPath(st *receiverState, stroke, fill bool) {
	if stroke {
		for _, r := range strokeRulings(st.current) {
			st.rulings = append(st.rulings, rc.place(st, r))
		}
	}
	if fill {
		for _, sp := range st.subpaths {
			if r, ok := fillRuling(sp, rc.thickness); ok {
				st.rulings = append(st.rulings, rc.place(st, r))
			}
		}
		if r, ok := fillRuling(st.current, rc.thickness); ok {
			st.rulings = append(st.rulings, rc.place(st, r))
		}
	}
	st.subpaths = nil
	st.current = nil
}

// strokeRulings converts consecutive point pairs of a stroked subpath
// into rulings, dropping oblique segments immediately.
func strokeRulings(pts []Point) []geometry.Ruling {
	var out []geometry.Ruling
	for i := 0; i+1 < len(pts); i++ {
		r := geometry.NewRuling(pts[i].X, pts[i].Y, pts[i+1].X, pts[i+1].Y, colinearTolerance)
		if r.IsOblique() {
			continue
		}
		out = append(out, r)
	}
	return out
}

// fillRuling reports whether subpath sp is a thin rectangle (one dimension
// at most threshold, the other wider) and, if so, returns its centerline
// ruling.
func fillRuling(sp []Point, threshold float64) (geometry.Ruling, bool) {
	if len(sp) < 4 {
		return geometry.Ruling{}, false
	}
	minX, minY := sp[0].X, sp[0].Y
	maxX, maxY := sp[0].X, sp[0].Y
	for _, p := range sp[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	w, h := maxX-minX, maxY-minY
	switch {
	case h <= threshold && w > threshold:
		cy := (minY + maxY) / 2
		return geometry.NewRuling(minX, cy, maxX, cy, colinearTolerance), true
	case w <= threshold && h > threshold:
		cx := (minX + maxX) / 2
		return geometry.NewRuling(cx, minY, cx, maxY, colinearTolerance), true
	default:
		return geometry.Ruling{}, false
	}
}

// place applies the page-space-to-top-left-space translation to a ruling
// expressed in the receiver's device (bottom-left, unflipped, un-cropped)
// space: origin moves to the crop box's top-left corner and y flips.
func (rc *Receiver) place(st *receiverState, r geometry.Ruling) geometry.Ruling {
	x1, y1 := st.cropX0, st.cropY1
	return geometry.NewRuling(r.X1-x1, y1-r.Y1, r.X2-x1, y1-r.Y2, colinearTolerance)
}

// showText decodes and positions the glyphs of one Tj-style byte string.
func (rc *Receiver) showText(st *receiverState, bytes []byte) {
	font := rc.font(st, st.ts.FontName)
	glyphSize := 1
	if font.use2Byte {
		glyphSize = 2
	}

	spaceWidth := st.ts.FontSize * (font.widthOf(' ') / 1000) * (st.ts.HorizScale / 100)
	if spaceWidth <= 0 {
		spaceWidth = st.ts.FontSize * 0.25
	}

	pos := 0
	for pos < len(bytes) {
		code := uint16(bytes[pos])
		if glyphSize == 2 && pos+1 < len(bytes) {
			code = uint16(bytes[pos])<<8 | uint16(bytes[pos+1])
		}
		text := font.decoder.DecodeString(bytes[pos : pos+min(glyphSize, len(bytes)-pos)])
		pos += glyphSize

		w0 := font.widthOf(code) / 1000

		fontMatrix := Matrix{A: st.ts.FontSize * st.ts.HorizScale / 100, B: 0, C: 0, D: st.ts.FontSize, E: 0, F: st.ts.Rise}
		trm := st.ctm.Multiply(st.ts.Tm.Multiply(fontMatrix))
		x0, y0 := trm.Transform(0, 0)

		isSpaceCode := code == ' '
		tx := w0 * st.ts.FontSize
		tx += st.ts.CharSpace
		if isSpaceCode {
			tx += st.ts.WordSpace
		}
		tx *= st.ts.HorizScale / 100

		_, sy := scaleOf(st.ctm.Multiply(st.ts.Tm))
		height := sy * st.ts.FontSize

		st.ts.AdvanceX(tx)
		x1, _ := st.ctm.Transform(st.ts.Tm.Transform(0, 0))

		width := math.Abs(x1 - x0)
		if width == 0 {
			width = math.Abs(w0 * st.ts.FontSize)
		}

		left := x0 - st.cropX0
		top := st.cropY1 - (y0 + height)

		rect := geometry.NewRectangle(top, left, width, height)
		st.glyphs = append(st.glyphs, layout.NewGlyph(text, rect, st.ts.FontName, st.ts.FontSize, spaceWidth))
	}
}

// showTextArray processes a TJ operator: a mix of strings (shown via
// showText) and numbers (additional negative-space adjustments to Tm).
func (rc *Receiver) showTextArray(st *receiverState, operands []parser.PdfObject) {
	if len(operands) != 1 {
		return
	}
	arr, ok := operands[0].(*parser.Array)
	if !ok {
		return
	}
	for i := 0; i < arr.Len(); i++ {
		item := arr.Get(i)
		if s, ok := stringOperand(item); ok {
			rc.showText(st, []byte(s))
			continue
		}
		if n := getNumber(item); n != nil {
			adj := -*n / 1000 * st.ts.FontSize * (st.ts.HorizScale / 100)
			st.ts.AdvanceX(adj)
		}
	}
}

// font resolves (and caches) the fontInfo for resource name.
func (rc *Receiver) font(st *receiverState, name string) *fontInfo {
	if f, ok := rc.fontCache[name]; ok {
		return f
	}
	var fontDict *parser.Dictionary
	if st.fontRes != nil {
		fontDict = rc.reader.ResolveDictionary(st.fontRes.Get(name))
	}
	f := resolveFont(rc.reader, fontDict)
	rc.fontCache[name] = f
	return f
}

// scaleOf returns the horizontal and vertical magnitudes of matrix m's
// linear part, used to approximate a glyph's device-space height.
func scaleOf(m Matrix) (sx, sy float64) {
	x0, y0 := m.Transform(0, 0)
	x1, y1 := m.Transform(1, 0)
	x2, y2 := m.Transform(0, 1)
	sx = math.Hypot(x1-x0, y1-y0)
	sy = math.Hypot(x2-x0, y2-y0)
	return sx, sy
}

func operandMatrix(operands []parser.PdfObject) *Matrix {
	if len(operands) < 6 {
		return nil
	}
	vals := make([]float64, 6)
	for i := 0; i < 6; i++ {
		n := getNumber(operands[i])
		if n == nil {
			return nil
		}
		vals[i] = *n
	}
	m := NewMatrix(vals[0], vals[1], vals[2], vals[3], vals[4], vals[5])
	return &m
}

func point2(operands []parser.PdfObject) []float64 {
	if len(operands) < 2 {
		return nil
	}
	x := getNumber(operands[0])
	y := getNumber(operands[1])
	if x == nil || y == nil {
		return nil
	}
	return []float64{*x, *y}
}

// curveEnd returns the final control point (the curve's endpoint) of a
// c/v/y Bezier operator, treating the curve as a straight segment to its
// endpoint; sufficient for ruling detection, which only cares about
// straight edges.
func curveEnd(operands []parser.PdfObject) []float64 {
	if len(operands) < 2 {
		return nil
	}
	x := getNumber(operands[len(operands)-2])
	y := getNumber(operands[len(operands)-1])
	if x == nil || y == nil {
		return nil
	}
	return []float64{*x, *y}
}

func single(operands []parser.PdfObject) parser.PdfObject {
	if len(operands) == 0 {
		return nil
	}
	return operands[0]
}

func nameOperand(obj parser.PdfObject) string {
	if n, ok := obj.(*parser.Name); ok {
		return n.Value()
	}
	return ""
}

func stringOperand(obj parser.PdfObject) (string, bool) {
	if s, ok := obj.(*parser.String); ok {
		return s.Value(), true
	}
	return "", false
}
