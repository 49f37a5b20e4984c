package extractor

import "strconv"

// adobeGlyphNames maps the Adobe Glyph List names that turn up in
// /Encoding /Differences arrays to their code points. The full AGL runs to
// thousands of entries; this subset covers Latin text, punctuation, and
// the symbols table-bearing documents actually use. Names outside the
// table fall back to the uniXXXX convention in glyphNameRune.
var adobeGlyphNames = map[string]rune{
	"zero": '0', "one": '1', "two": '2', "three": '3', "four": '4',
	"five": '5', "six": '6', "seven": '7', "eight": '8', "nine": '9',

	"space": ' ', "exclam": '!', "quotedbl": '"', "numbersign": '#',
	"dollar": '$', "percent": '%', "ampersand": '&', "quotesingle": '\'',
	"parenleft": '(', "parenright": ')', "asterisk": '*', "plus": '+',
	"comma": ',', "hyphen": '-', "minus": '-', "period": '.', "slash": '/',
	"colon": ':', "semicolon": ';', "less": '<', "equal": '=', "greater": '>',
	"question": '?', "at": '@', "bracketleft": '[', "backslash": '\\',
	"bracketright": ']', "underscore": '_', "braceleft": '{', "braceright": '}',

	"a": 'a', "b": 'b', "c": 'c', "d": 'd', "e": 'e', "f": 'f', "g": 'g',
	"h": 'h', "i": 'i', "j": 'j', "k": 'k', "l": 'l', "m": 'm', "n": 'n',
	"o": 'o', "p": 'p', "q": 'q', "r": 'r', "s": 's', "t": 't', "u": 'u',
	"v": 'v', "w": 'w', "x": 'x', "y": 'y', "z": 'z',

	"A": 'A', "B": 'B', "C": 'C', "D": 'D', "E": 'E', "F": 'F', "G": 'G',
	"H": 'H', "I": 'I', "J": 'J', "K": 'K', "L": 'L', "M": 'M', "N": 'N',
	"O": 'O', "P": 'P', "Q": 'Q', "R": 'R', "S": 'S', "T": 'T', "U": 'U',
	"V": 'V', "W": 'W', "X": 'X', "Y": 'Y', "Z": 'Z',

	"aacute": 'á', "eacute": 'é', "iacute": 'í', "oacute": 'ó', "uacute": 'ú',
	"agrave": 'à', "egrave": 'è', "igrave": 'ì', "ograve": 'ò', "ugrave": 'ù',
	"acircumflex": 'â', "ecircumflex": 'ê', "icircumflex": 'î',
	"ocircumflex": 'ô', "ucircumflex": 'û',
	"adieresis": 'ä', "edieresis": 'ë', "idieresis": 'ï',
	"odieresis": 'ö', "udieresis": 'ü',
	"ntilde": 'ñ', "ccedilla": 'ç', "aring": 'å', "ae": 'æ', "oslash": 'ø',

	"quotedblleft": '“', "quotedblright": '”',
	"quoteleft": '‘', "quoteright": '’',
	"guillemotleft": '«', "guillemotright": '»',
	"guilsinglleft": '‹', "guilsinglright": '›',

	"cent": '¢', "sterling": '£', "yen": '¥', "Euro": '€', "currency": '¤',
	"degree": '°', "mu": 'µ', "section": '§', "paragraph": '¶',
	"copyright": '©', "registered": '®', "trademark": '™',
	"bullet": '•', "dagger": '†', "daggerdbl": '‡', "ellipsis": '…',

	"multiply": '×', "divide": '÷', "plusminus": '±',
	"onehalf": '½', "onequarter": '¼', "threequarters": '¾',

	"endash": '–', "emdash": '—',
	"nbspace": ' ', "enspace": ' ', "emspace": ' ',

	"fi": 'ﬁ', "fl": 'ﬂ', "ff": 'ﬀ', "ffi": 'ﬃ', "ffl": 'ﬄ',

	"arrowleft": '←', "arrowup": '↑', "arrowright": '→', "arrowdown": '↓',
	"club": '♣', "diamond": '♦', "heart": '♥', "spade": '♠',
}

// glyphNameRune resolves one glyph name: the AGL table first, then the
// AGL's uniXXXX / uXXXX hexadecimal conventions, then a single-character
// name read literally.
func glyphNameRune(name string) (rune, bool) {
	if r, ok := adobeGlyphNames[name]; ok {
		return r, true
	}
	if hex := hexSuffix(name); hex != "" {
		if v, err := strconv.ParseUint(hex, 16, 32); err == nil {
			return rune(v), true
		}
	}
	if len(name) == 1 {
		return rune(name[0]), true
	}
	return 0, false
}

// hexSuffix returns the hex digits of a uniXXXX (exactly four digits) or
// uXXXX..uXXXXXX name, or "" when name follows neither convention.
func hexSuffix(name string) string {
	if len(name) == 7 && name[:3] == "uni" {
		return name[3:]
	}
	if len(name) >= 5 && len(name) <= 7 && name[0] == 'u' {
		return name[1:]
	}
	return ""
}

// buildCustomEncoding converts a /Differences map (code -> glyph name)
// into a direct code -> rune mapping. Unresolvable names are omitted so
// the decoder's base-encoding fallback handles them.
func buildCustomEncoding(differences map[uint16]string) map[uint16]rune {
	encoding := make(map[uint16]rune, len(differences))
	for code, name := range differences {
		if r, ok := glyphNameRune(name); ok {
			encoding[code] = r
		}
	}
	return encoding
}

// NewFontDecoderWithCustomEncoding builds a decoder for a font that
// carries /Encoding /Differences but no ToUnicode CMap.
func NewFontDecoderWithCustomEncoding(differences map[uint16]string, baseEncoding string, use2ByteGlyphs bool) *FontDecoder {
	return &FontDecoder{
		encoding:       baseEncoding,
		use2ByteGlyphs: use2ByteGlyphs,
		customEncoding: buildCustomEncoding(differences),
	}
}
