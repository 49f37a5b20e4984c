package extractor

import (
	"testing"

	"github.com/coregx/pdftab/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageExtractor_ColorSpaceName(t *testing.T) {
	e := NewImageExtractor(nil)

	assert.Equal(t, "DeviceRGB", e.getColorSpaceName(nil), "missing entry defaults to RGB")
	assert.Equal(t, "DeviceGray", e.getColorSpaceName(parser.NewName("DeviceGray")))

	indexed := parser.NewArray()
	indexed.Append(parser.NewName("Indexed"))
	indexed.Append(parser.NewName("DeviceRGB"))
	assert.Equal(t, "Indexed", e.getColorSpaceName(indexed))
}

func TestImageExtractor_FilterName(t *testing.T) {
	e := NewImageExtractor(nil)

	assert.Equal(t, "", e.getFilterName(nil), "unfiltered stream")
	assert.Equal(t, "/DCTDecode", e.getFilterName(parser.NewName("DCTDecode")))

	chain := parser.NewArray()
	chain.Append(parser.NewName("ASCII85Decode"))
	chain.Append(parser.NewName("DCTDecode"))
	assert.Equal(t, "/ASCII85Decode", e.getFilterName(chain))
}

func TestImageExtractor_StreamWithoutDimensions(t *testing.T) {
	// no Width/Height and no JPEG header to recover them from
	dict := parser.NewDictionary()
	stream := parser.NewStream(dict, []byte("not image data"))

	e := NewImageExtractor(nil)
	_, err := e.extractImageFromStream(stream, "/Im1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid image dimensions")
}

func TestImageExtractor_UnfilteredImageStream(t *testing.T) {
	dict := parser.NewDictionary()
	dict.SetInteger("Width", 2)
	dict.SetInteger("Height", 2)
	dict.SetInteger("BitsPerComponent", 8)
	dict.SetName("ColorSpace", "DeviceGray")
	stream := parser.NewStream(dict, []byte{1, 2, 3, 4})

	e := NewImageExtractor(nil)
	img, err := e.extractImageFromStream(stream, "/Im3")
	require.NoError(t, err)
	assert.Equal(t, 2, img.Width())
	assert.Equal(t, 2, img.Height())
	assert.Equal(t, "DeviceGray", img.ColorSpace())
	assert.Equal(t, "/Im3", img.Name())
}
