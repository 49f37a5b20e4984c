package extractor

import (
	"github.com/coregx/pdftab/internal/parser"
)

// fontInfo bundles the pieces needed to turn a show-text operator's raw
// bytes into positioned, decoded glyphs: a decoder for the bytes and a
// per-code width table in glyph-space thousandths (PDF 1.7 §9.2.2).
type fontInfo struct {
	decoder      *FontDecoder
	widths       map[uint16]float64
	defaultWidth float64
	use2Byte     bool
}

// widthOf returns the advance width (glyph-space/1000 units) for code.
func (f *fontInfo) widthOf(code uint16) float64 {
	if w, ok := f.widths[code]; ok {
		return w
	}
	return f.defaultWidth
}

// resolveArray resolves obj and type-asserts it to *parser.Array.
func resolveArray(reader *parser.Reader, obj parser.PdfObject) *parser.Array {
	resolved, err := reader.Resolve(obj)
	if err != nil {
		return nil
	}
	arr, _ := resolved.(*parser.Array)
	return arr
}

// resolveFont builds a fontInfo for one entry of a page's /Resources/Font
// dictionary. Missing or malformed pieces degrade gracefully: unknown
// widths fall back to defaultWidth, unknown encodings fall back to
// Latin-1 (handled by FontDecoder itself).
func resolveFont(reader *parser.Reader, fontDict *parser.Dictionary) *fontInfo {
	if fontDict == nil {
		return &fontInfo{decoder: NewFontDecoder(nil, "", false), defaultWidth: 500}
	}

	subtype := fontDict.GetName("Subtype")
	isCID := subtype != nil && subtype.Value() == "Type0"

	cmap := resolveToUnicode(reader, fontDict)

	info := &fontInfo{
		widths:       make(map[uint16]float64),
		defaultWidth: 500,
		use2Byte:     isCID,
	}

	if isCID {
		resolveCIDWidths(reader, fontDict, info)
		info.decoder = NewFontDecoder(cmap, "Identity-H", true)
		return info
	}

	resolveSimpleWidths(reader, fontDict, info)

	encodingName, differences := resolveEncoding(reader, fontDict)
	switch {
	case cmap != nil:
		info.decoder = NewFontDecoder(cmap, encodingName, false)
	case differences != nil:
		info.decoder = NewFontDecoderWithCustomEncoding(differences, encodingName, false)
	default:
		info.decoder = NewFontDecoder(nil, encodingName, false)
	}
	return info
}

func resolveToUnicode(reader *parser.Reader, fontDict *parser.Dictionary) *CMapTable {
	tu := fontDict.Get("ToUnicode")
	if tu == nil {
		return nil
	}
	stream, err := reader.ResolveStream(tu)
	if err != nil {
		return nil
	}
	data, err := stream.Decode()
	if err != nil {
		return nil
	}
	return ParseToUnicodeCMap(data)
}

func resolveSimpleWidths(reader *parser.Reader, fontDict *parser.Dictionary, info *fontInfo) {
	firstChar := fontDict.GetInteger("FirstChar")
	widthsArr := resolveArray(reader, fontDict.Get("Widths"))
	if widthsArr == nil {
		return
	}
	for i := 0; i < widthsArr.Len(); i++ {
		w := getNumber(widthsArr.Get(i))
		if w == nil {
			continue
		}
		info.widths[uint16(firstChar+int64(i))] = *w
	}
}

func resolveCIDWidths(reader *parser.Reader, fontDict *parser.Dictionary, info *fontInfo) {
	descendants := resolveArray(reader, fontDict.Get("DescendantFonts"))
	if descendants == nil || descendants.Len() == 0 {
		return
	}
	cidFont := reader.ResolveDictionary(descendants.Get(0))
	if cidFont == nil {
		return
	}
	if dw := getNumber(cidFont.Get("DW")); dw != nil {
		info.defaultWidth = *dw
	} else {
		info.defaultWidth = 1000
	}

	w := resolveArray(reader, cidFont.Get("W"))
	if w == nil {
		return
	}
	i := 0
	for i < w.Len() {
		first := getNumber(w.Get(i))
		if first == nil || i+1 >= w.Len() {
			break
		}
		next, ok := w.Get(i + 1).(*parser.Array)
		if ok {
			for j := 0; j < next.Len(); j++ {
				if wv := getNumber(next.Get(j)); wv != nil {
					info.widths[uint16(int64(*first)+int64(j))] = *wv
				}
			}
			i += 2
			continue
		}
		last := getNumber(w.Get(i + 1))
		if last == nil || i+2 >= w.Len() {
			break
		}
		width := getNumber(w.Get(i + 2))
		if width != nil {
			for code := int64(*first); code <= int64(*last); code++ {
				info.widths[uint16(code)] = *width
			}
		}
		i += 3
	}
}

// resolveEncoding returns the base encoding name and, if /Encoding is a
// dictionary carrying a /Differences array, the resulting code→glyph-name
// map.
func resolveEncoding(reader *parser.Reader, fontDict *parser.Dictionary) (string, map[uint16]string) {
	enc := fontDict.Get("Encoding")
	if enc == nil {
		return "", nil
	}
	if name, ok := enc.(*parser.Name); ok {
		return name.Value(), nil
	}
	encDict := reader.ResolveDictionary(enc)
	if encDict == nil {
		return "", nil
	}
	base := ""
	if bn := encDict.GetName("BaseEncoding"); bn != nil {
		base = bn.Value()
	}
	diffArr := resolveArray(reader, encDict.Get("Differences"))
	if diffArr == nil {
		return base, nil
	}
	differences := make(map[uint16]string)
	var code uint16
	for i := 0; i < diffArr.Len(); i++ {
		item := diffArr.Get(i)
		if n := getNumber(item); n != nil {
			code = uint16(*n)
			continue
		}
		if name, ok := item.(*parser.Name); ok {
			differences[code] = name.Value()
			code++
		}
	}
	return base, differences
}

// getNumber extracts a float64 from a PdfObject that is an Integer or
// Real, returning nil for any other type.
func getNumber(obj parser.PdfObject) *float64 {
	switch v := obj.(type) {
	case *parser.Integer:
		f := float64(v.Value())
		return &f
	case *parser.Real:
		f := v.Value()
		return &f
	default:
		return nil
	}
}
