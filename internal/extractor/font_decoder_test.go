package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func cmapOf(pairs map[uint16]rune) *CMapTable {
	cmap := NewCMapTable("TestCMap")
	for code, r := range pairs {
		cmap.set(code, r)
	}
	return cmap
}

func TestFontDecoder_CMapNarrow(t *testing.T) {
	decoder := NewFontDecoderWithCMap(cmapOf(map[uint16]rune{1: 'ط', 2: 'ب', 3: 'ق'}))

	assert.False(t, decoder.use2ByteGlyphs)
	assert.Equal(t, "طبق", decoder.DecodeString([]byte{1, 2, 3}))
}

func TestFontDecoder_CMapWide(t *testing.T) {
	// codes above 0xFF force 2-byte mode; picked high enough that the
	// UTF-16 sniff stays quiet
	decoder := NewFontDecoderWithCMap(cmapOf(map[uint16]rune{0x1001: 'a', 0x1002: 'b'}))

	assert.True(t, decoder.use2ByteGlyphs)
	assert.Equal(t, "ab", decoder.DecodeString([]byte{0x10, 0x01, 0x10, 0x02}))
}

func TestFontDecoder_UnmappedCodeIsReplacement(t *testing.T) {
	decoder := &FontDecoder{cmap: cmapOf(map[uint16]rune{0x1001: 'A'}), use2ByteGlyphs: true}

	got := []rune(decoder.DecodeString([]byte{0x10, 0x01, 0x7F, 0x07}))
	assert.Equal(t, 'A', got[0])
	assert.Len(t, got, 2)
	assert.Equal(t, '�', got[1])
}

func TestFontDecoder_Latin1Fallback(t *testing.T) {
	decoder := NewFontDecoder(nil, "", false)

	assert.Equal(t, "Hello", decoder.DecodeString([]byte("Hello")))
	assert.Equal(t, "é", decoder.DecodeString([]byte{0xE9}))
}

func TestFontDecoder_WinAnsi(t *testing.T) {
	decoder := NewFontDecoder(nil, "WinAnsiEncoding", false)

	assert.Equal(t, "Test", decoder.DecodeString([]byte("Test")))
	assert.Equal(t, "€", decoder.DecodeString([]byte{0x80}))
	assert.Equal(t, "™", decoder.DecodeString([]byte{0x99}))
}

func TestWinAnsiRune(t *testing.T) {
	tests := []struct {
		in   byte
		want rune
	}{
		{0x20, ' '},
		{0x41, 'A'},
		{0x80, '€'},
		{0x85, '…'},
		{0x96, '–'},
		{0xE9, 'é'},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, winAnsiRune(tt.in))
	}
}

func TestFontDecoder_UTF16WithBOM(t *testing.T) {
	decoder := NewFontDecoder(nil, "", false)

	data := []byte{0xFE, 0xFF, 0x00, 'H', 0x00, 'i', 0x26, 0x03} // "Hi☃"
	assert.Equal(t, "Hi☃", decoder.DecodeString(data))
}

func TestFontDecoder_UTF16Heuristic(t *testing.T) {
	decoder := NewFontDecoder(nil, "", false)

	// null-heavy even bytes: ASCII stored as BOM-less UTF-16BE
	assert.Equal(t, "ABC", decoder.DecodeString([]byte{0, 'A', 0, 'B', 0, 'C'}))

	// plain narrow bytes must not trip the sniff
	assert.Equal(t, "ABC", decoder.DecodeString([]byte{'A', 'B', 'C'}))
}

func TestFontDecoder_IdentityEncodingSkipsUTF16Sniff(t *testing.T) {
	// an Identity-H CID string can be all null-high-bytes; it still has to
	// route through the CMap, not the UTF-16 decoder
	decoder := &FontDecoder{
		cmap:           cmapOf(map[uint16]rune{0x41: 'x', 0x42: 'y'}),
		encoding:       "Identity-H",
		use2ByteGlyphs: true,
	}
	assert.Equal(t, "xy", decoder.DecodeString([]byte{0, 0x41, 0, 0x42}))
}

func TestFontDecoder_WideGarbageRetriesNarrow(t *testing.T) {
	// a wide decoder fed a plain ASCII operand would produce replacement
	// runes; the narrow retry should win
	decoder := NewFontDecoder(nil, "", true)
	assert.Equal(t, "Total", decoder.DecodeString([]byte("Total")))
}

func TestFontDecoder_Empty(t *testing.T) {
	assert.Equal(t, "", NewFontDecoderWithCMap(nil).DecodeString(nil))
}

func TestFontDecoder_Accessors(t *testing.T) {
	decoder := NewFontDecoder(cmapOf(nil), "WinAnsiEncoding", false)
	assert.True(t, decoder.HasCMap())
	assert.Equal(t, "WinAnsiEncoding", decoder.Encoding())
	assert.Contains(t, decoder.String(), "CMap:TestCMap")
	assert.Contains(t, decoder.String(), "1-byte-glyphs")

	bare := NewFontDecoder(nil, "", true)
	assert.False(t, bare.HasCMap())
	assert.Contains(t, bare.String(), "2-byte-glyphs")
}
