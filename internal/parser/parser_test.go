package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDirect(t *testing.T, src string) PdfObject {
	t.Helper()
	obj, err := NewParser([]byte(src)).ParseObjectAt(0)
	require.NoError(t, err)
	return obj
}

func TestParser_DirectObjects(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string // String() rendering
	}{
		{"null", "null", "null"},
		{"boolean", "true", "true"},
		{"integer", "-42", "-42"},
		{"real", "3.25", "3.25"},
		{"literal string", "(Hello World)", "(Hello World)"},
		{"hex string", "<48 69>", "(Hi)"},
		{"name", "/Type", "/Type"},
		{"empty array", "[]", "[]"},
		{"flat array", "[1 2 3]", "[1 2 3]"},
		{"mixed array", "[1 (two) /Three true null]", "[1 (two) /Three true null]"},
		{"nested arrays", "[1 [2 3] [4 [5]]]", "[1 [2 3] [4 [5]]]"},
		{"empty dict", "<<>>", "<<>>"},
		{"simple dict", "<< /Type /Page >>", "<</Type /Page>>"},
		{"dict with array", "<< /Kids [3 0 R] >>", "<</Kids [3 0 R]>>"},
		{"reference", "7 0 R", "7 0 R"},
		{"references in array", "[1 0 R 2 0 R]", "[1 0 R 2 0 R]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseDirect(t, tt.src).String())
		})
	}
}

func TestParser_ReferenceVsInteger(t *testing.T) {
	// inside containers, "N G R" collapses to a reference while bare
	// integers stay integers
	arr := parseDirect(t, "[5 12 0 R]").(*Array)
	require.Equal(t, 2, arr.Len())
	assert.IsType(t, &Integer{}, arr.Get(0))
	ref, ok := arr.Get(1).(*IndirectReference)
	require.True(t, ok)
	assert.Equal(t, 12, ref.Number)
}

func TestParser_Errors(t *testing.T) {
	cases := []string{
		"[1 2 3",          // unterminated array
		"<< /Type /Page",  // unterminated dictionary
		"<< 42 /Value >>", // non-name key
	}
	for _, src := range cases {
		_, err := NewParser([]byte(src)).ParseObjectAt(0)
		assert.Error(t, err, src)
	}
}

func TestParser_ParseIndirectAt(t *testing.T) {
	src := "1 0 obj\n42\nendobj\n2 0 obj\n(text)\nendobj"
	p := NewParser([]byte(src))

	num, gen, obj, err := p.ParseIndirectAt(0)
	require.NoError(t, err)
	assert.Equal(t, 1, num)
	assert.Equal(t, 0, gen)
	assert.Equal(t, int64(42), obj.(*Integer).Value())

	off := len("1 0 obj\n42\nendobj\n")
	num, _, obj, err = p.ParseIndirectAt(off)
	require.NoError(t, err)
	assert.Equal(t, 2, num)
	assert.Equal(t, "text", obj.(*String).Value())
}

func TestParser_ParseIndirectAt_Malformed(t *testing.T) {
	p := NewParser([]byte("not an object"))
	_, _, _, err := p.ParseIndirectAt(0)
	assert.Error(t, err)

	_, _, _, err = p.ParseIndirectAt(-1)
	assert.Error(t, err)
	_, _, _, err = p.ParseIndirectAt(9999)
	assert.Error(t, err)

	// number without the obj keyword
	_, _, _, err = NewParser([]byte("1 0 notobj 42")).ParseIndirectAt(0)
	assert.Error(t, err)
}

func TestParser_IndirectStream(t *testing.T) {
	src := "4 0 obj\n<</Length 11>>\nstream\nbinary\x00data\nendstream\nendobj"
	p := NewParser([]byte(src))

	_, _, obj, err := p.ParseIndirectAt(0)
	require.NoError(t, err)
	stream, ok := obj.(*Stream)
	require.True(t, ok)
	assert.Equal(t, []byte("binary\x00data"), stream.Content())
	assert.Equal(t, int64(11), stream.Dictionary().GetInteger("Length"))
}

func TestParser_IndirectStream_CRLF(t *testing.T) {
	src := "4 0 obj\n<</Length 4>>\nstream\r\ndata\nendstream\nendobj"
	_, _, obj, err := NewParser([]byte(src)).ParseIndirectAt(0)
	require.NoError(t, err)
	stream, ok := obj.(*Stream)
	require.True(t, ok)
	assert.Equal(t, []byte("data"), stream.Content())
}

func TestParser_DictWithoutStreamStaysDict(t *testing.T) {
	src := "4 0 obj\n<</Type /Catalog>>\nendobj"
	_, _, obj, err := NewParser([]byte(src)).ParseIndirectAt(0)
	require.NoError(t, err)
	assert.IsType(t, &Dictionary{}, obj)
}

func TestParseIntString(t *testing.T) {
	assert.Equal(t, 123, parseIntString("123"))
	assert.Equal(t, -45, parseIntString("-45"))
	assert.Equal(t, 7, parseIntString("+7"))
	assert.Equal(t, 0, parseIntString(""))
}

func TestParseFloatString(t *testing.T) {
	assert.InDelta(t, 3.25, parseFloatString("3.25"), 1e-9)
	assert.InDelta(t, -0.5, parseFloatString("-.5"), 1e-9)
	assert.InDelta(t, 120.0, parseFloatString("120."), 1e-9)
}

func TestFindStreamKeyword(t *testing.T) {
	data := []byte("<<>>\nstream\nXYZ")
	pos, ok := findStreamKeyword(data, 0)
	require.True(t, ok)
	assert.Equal(t, byte('X'), data[pos])

	_, ok = findStreamKeyword([]byte("no keyword here"), 0)
	assert.False(t, ok)

	_, ok = findStreamKeyword(data, 999)
	assert.False(t, ok)
}

func TestParser_IntegerRunsSurviveReferenceProbe(t *testing.T) {
	// "1 3 2" looks like the start of a reference until the probe sees no
	// R; every integer must survive the pushback
	arr := parseDirect(t, "[1 3 2]").(*Array)
	require.Equal(t, 3, arr.Len())
	assert.Equal(t, "[1 3 2]", arr.String())

	dict := parseDirect(t, "<< /W [1 3 2] /Index [0 25] >>").(*Dictionary)
	require.Equal(t, 3, dict.GetArray("W").Len())
	require.Equal(t, 2, dict.GetArray("Index").Len())
	assert.Equal(t, int64(25), dict.GetArray("Index").Get(1).(*Integer).Value())
}
