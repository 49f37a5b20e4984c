package extractor

import (
	"encoding/binary"
	"strings"
	"unicode/utf16"
)

// FontDecoder turns the raw byte strings of text-showing operators into
// Unicode. A font may carry a ToUnicode CMap, a /Differences override, a
// named simple encoding, or nothing at all; decoding tries the CMap, then
// /Differences, then WinAnsiEncoding, and falls back to Latin-1, which
// covers unadorned ASCII fonts. WinAnsiEncoding is the only named encoding
// with its own table; any other name decodes as Latin-1.
type FontDecoder struct {
	cmap           *CMapTable
	encoding       string
	use2ByteGlyphs bool
	customEncoding map[uint16]rune
}

// NewFontDecoder builds a decoder over an optional ToUnicode CMap and a
// base encoding name. use2ByteGlyphs selects CID-style 2-byte codes.
func NewFontDecoder(cmap *CMapTable, encoding string, use2ByteGlyphs bool) *FontDecoder {
	return &FontDecoder{cmap: cmap, encoding: encoding, use2ByteGlyphs: use2ByteGlyphs}
}

// NewFontDecoderWithCMap builds a CMap-only decoder, inferring the code
// width from the CMap: any mapping above 255 means 2-byte codes.
func NewFontDecoderWithCMap(cmap *CMapTable) *FontDecoder {
	wide := false
	if cmap != nil {
		for code := range cmap.mappings {
			if code > 255 {
				wide = true
				break
			}
		}
	}
	return NewFontDecoder(cmap, "", wide)
}

// DecodeString decodes one Tj/TJ operand. Codes that resolve nowhere come
// back as U+FFFD.
func (d *FontDecoder) DecodeString(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}

	// Literal UTF-16BE strings appear in some producers' text operands.
	// Identity-H fonts are exempt: their 2-byte CIDs look like UTF-16 but
	// must go through the CMap.
	if !strings.Contains(d.encoding, "Identity") && looksLikeUTF16BE(raw) {
		return decodeUTF16BE(raw)
	}

	text := d.decodeAt(raw, d.use2ByteGlyphs)

	// A wide font whose operand decodes to mostly control characters was
	// probably a 1-byte string after all; retry narrow and keep whichever
	// reads clean.
	if d.use2ByteGlyphs && mostlyUnprintable(text) {
		if narrow := d.decodeAt(raw, false); !mostlyUnprintable(narrow) {
			text = narrow
		}
	}
	return text
}

// decodeAt walks raw at the given code width, resolving each code.
func (d *FontDecoder) decodeAt(raw []byte, wide bool) string {
	var b strings.Builder
	b.Grow(len(raw))

	for pos := 0; pos < len(raw); {
		var code uint16
		if wide && pos+1 < len(raw) {
			code = binary.BigEndian.Uint16(raw[pos : pos+2])
			pos += 2
		} else {
			code = uint16(raw[pos])
			pos++
		}
		b.WriteRune(d.resolve(code))
	}
	return b.String()
}

// resolve maps one character code to a rune: CMap, then /Differences, then
// WinAnsiEncoding (when named), then Latin-1.
func (d *FontDecoder) resolve(code uint16) rune {
	if d.cmap != nil {
		if r, ok := d.cmap.GetUnicode(code); ok {
			return r
		}
	}
	if r, ok := d.customEncoding[code]; ok {
		return r
	}
	if d.encoding != "" && code <= 255 && strings.Contains(d.encoding, "WinAnsi") {
		return winAnsiRune(byte(code))
	}
	if code <= 255 {
		return rune(code)
	}
	return '�'
}

// mostlyUnprintable reports whether more than 30% of s is control
// characters or replacement runes, the signature of decoding at the wrong
// code width.
func mostlyUnprintable(s string) bool {
	if s == "" {
		return false
	}
	bad, total := 0, 0
	for _, r := range s {
		total++
		if (r < 32 && r != '\n' && r != '\t') || r == '�' {
			bad++
		}
	}
	return float64(bad)/float64(total) > 0.3
}

// looksLikeUTF16BE sniffs for a BOM, or for the null-heavy even bytes that
// ASCII text produces when stored as UTF-16BE without one.
func looksLikeUTF16BE(data []byte) bool {
	if len(data) < 2 {
		return false
	}
	if data[0] == 0xFE && data[1] == 0xFF {
		return true
	}
	if len(data)%2 != 0 || len(data) < 4 {
		return false
	}
	nulls := 0
	for i := 0; i < len(data) && i < 20; i += 2 {
		if data[i] == 0 {
			nulls++
		}
	}
	return float64(nulls)/float64(len(data)/2) > 0.4
}

// decodeUTF16BE decodes big-endian UTF-16, BOM and surrogate pairs
// included; a trailing odd byte is dropped.
func decodeUTF16BE(data []byte) string {
	if len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF {
		data = data[2:]
	}
	if len(data)%2 != 0 {
		data = data[:len(data)-1]
	}
	units := make([]uint16, len(data)/2)
	for i := range units {
		units[i] = binary.BigEndian.Uint16(data[i*2:])
	}
	return string(utf16.Decode(units))
}

// winAnsi80 maps the 0x80-0x9F range where Windows-1252 departs from
// Latin-1; everywhere else the two encodings agree.
var winAnsi80 = [32]rune{
	0x20AC, 0xFFFD, 0x201A, 0x0192, 0x201E, 0x2026, 0x2020, 0x2021,
	0x02C6, 0x2030, 0x0160, 0x2039, 0x0152, 0xFFFD, 0x017D, 0xFFFD,
	0xFFFD, 0x2018, 0x2019, 0x201C, 0x201D, 0x2022, 0x2013, 0x2014,
	0x02DC, 0x2122, 0x0161, 0x203A, 0x0153, 0xFFFD, 0x017E, 0x0178,
}

func winAnsiRune(b byte) rune {
	if b < 0x80 || b >= 0xA0 {
		return rune(b)
	}
	return winAnsi80[b-0x80]
}

// HasCMap reports whether a ToUnicode CMap is attached.
func (d *FontDecoder) HasCMap() bool { return d.cmap != nil }

// Encoding returns the base encoding name.
func (d *FontDecoder) Encoding() string { return d.encoding }

// String returns a debug summary of the decoder's configuration.
func (d *FontDecoder) String() string {
	var parts []string
	if d.cmap != nil {
		parts = append(parts, "CMap:"+d.cmap.Name())
	}
	if d.encoding != "" {
		parts = append(parts, "Encoding:"+d.encoding)
	}
	if d.use2ByteGlyphs {
		parts = append(parts, "2-byte-glyphs")
	} else {
		parts = append(parts, "1-byte-glyphs")
	}
	return "FontDecoder{" + strings.Join(parts, ", ") + "}"
}
