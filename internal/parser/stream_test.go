package parser

import (
	"bytes"
	"compress/zlib"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flateCompress(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestStream_DecodeNoFilter(t *testing.T) {
	s := NewStream(NewDictionary(), []byte("raw bytes"))

	decoded, err := s.Decode()
	require.NoError(t, err)
	assert.Equal(t, []byte("raw bytes"), decoded)
}

func TestStream_DecodeFlate(t *testing.T) {
	plain := []byte("BT /F1 12 Tf (cell) Tj ET")
	dict := NewDictionary()
	dict.Set("Filter", NewName("FlateDecode"))
	s := NewStream(dict, flateCompress(t, plain))

	decoded, err := s.Decode()
	require.NoError(t, err)
	assert.Equal(t, plain, decoded)
}

func TestStream_DecodeASCIIHex(t *testing.T) {
	dict := NewDictionary()
	dict.Set("Filter", NewName("ASCIIHexDecode"))
	s := NewStream(dict, []byte("48 65 6C 6C 6F>"))

	decoded, err := s.Decode()
	require.NoError(t, err)
	assert.Equal(t, []byte("Hello"), decoded)
}

func TestStream_DecodeFilterChain(t *testing.T) {
	// [ASCIIHexDecode FlateDecode]: hex applied first, flate second
	plain := []byte("chained")
	hexed := make([]byte, 0)
	for _, b := range flateCompress(t, plain) {
		hexed = append(hexed, "0123456789ABCDEF"[b>>4], "0123456789ABCDEF"[b&0xF])
	}
	hexed = append(hexed, '>')

	filters := NewArray()
	filters.Append(NewName("ASCIIHexDecode"))
	filters.Append(NewName("FlateDecode"))
	dict := NewDictionary()
	dict.Set("Filter", filters)
	s := NewStream(dict, hexed)

	decoded, err := s.Decode()
	require.NoError(t, err)
	assert.Equal(t, plain, decoded)
}

func TestStream_UnknownFilterPassesThrough(t *testing.T) {
	// image filters (DCTDecode etc.) are decoded downstream from the raw
	// bytes; Decode must hand them back untouched
	dict := NewDictionary()
	dict.Set("Filter", NewName("DCTDecode"))
	s := NewStream(dict, []byte{0xFF, 0xD8, 0xFF})

	decoded, err := s.Decode()
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xD8, 0xFF}, decoded)
}

func TestStream_NilDictionaryDefaults(t *testing.T) {
	s := NewStream(nil, []byte("x"))
	require.NotNil(t, s.Dictionary())
	assert.Nil(t, s.GetFilter())
	assert.Equal(t, int64(1), s.Length())
}

func TestStream_SetContentUpdatesLength(t *testing.T) {
	s := NewStream(NewDictionary(), []byte("old"))
	s.SetContent([]byte("longer content"))

	assert.Equal(t, []byte("longer content"), s.Content())
	assert.Equal(t, int64(14), s.Dictionary().GetInteger("Length"))
}

func TestStream_CloneIsIndependent(t *testing.T) {
	dict := NewDictionary()
	dict.SetInteger("Length", 5)
	s := NewStream(dict, []byte("Hello"))

	clone := s.Clone()
	clone.SetContent([]byte("World!"))

	assert.Equal(t, []byte("Hello"), s.Content())
	assert.Equal(t, int64(5), s.Dictionary().GetInteger("Length"))
	assert.Equal(t, []byte("World!"), clone.Content())
}
