package types

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grayPixels(w, h int, level byte) []byte {
	data := make([]byte, w*h)
	for i := range data {
		data[i] = level
	}
	return data
}

func jpegBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 180, G: 20, B: 20, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

func TestNewImage(t *testing.T) {
	img, err := NewImage(grayPixels(4, 4, 9), 4, 4, "DeviceGray", 8, "")
	require.NoError(t, err)

	assert.Equal(t, 4, img.Width())
	assert.Equal(t, 4, img.Height())
	assert.Equal(t, "DeviceGray", img.ColorSpace())
	assert.Equal(t, 8, img.BitsPerComponent())
	assert.Equal(t, "", img.Filter())
	assert.Len(t, img.Data(), 16)
}

func TestNewImage_Invalid(t *testing.T) {
	_, err := NewImage(nil, 4, 4, "DeviceGray", 8, "")
	assert.Error(t, err, "empty data")

	_, err = NewImage([]byte{1}, 0, 4, "DeviceGray", 8, "")
	assert.Error(t, err, "zero width")

	_, err = NewImage([]byte{1}, 4, -1, "DeviceGray", 8, "")
	assert.Error(t, err, "negative height")
}

func TestImage_SetName(t *testing.T) {
	img, err := NewImage(grayPixels(2, 2, 0), 2, 2, "DeviceGray", 8, "")
	require.NoError(t, err)

	assert.Empty(t, img.Name())
	img.SetName("/Im1")
	assert.Equal(t, "/Im1", img.Name())
}

func TestImage_ToGoImage_Gray(t *testing.T) {
	img, err := NewImage(grayPixels(3, 2, 77), 3, 2, "DeviceGray", 8, "")
	require.NoError(t, err)

	goImg, err := img.ToGoImage()
	require.NoError(t, err)
	assert.Equal(t, 3, goImg.Bounds().Dx())
	assert.Equal(t, 2, goImg.Bounds().Dy())
	gray, ok := goImg.(*image.Gray)
	require.True(t, ok)
	assert.Equal(t, uint8(77), gray.GrayAt(0, 0).Y)
}

func TestImage_ToGoImage_JPEG(t *testing.T) {
	img, err := NewImage(jpegBytes(t, 6, 4), 6, 4, "DeviceRGB", 8, "/DCTDecode")
	require.NoError(t, err)

	goImg, err := img.ToGoImage()
	require.NoError(t, err)
	assert.Equal(t, 6, goImg.Bounds().Dx())
}

func TestImage_SaveToFile_JPEGPassthrough(t *testing.T) {
	raw := jpegBytes(t, 5, 5)
	img, err := NewImage(raw, 5, 5, "DeviceRGB", 8, "/DCTDecode")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.jpg")
	require.NoError(t, img.SaveToFile(path))

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, raw, written, "DCTDecode data is written verbatim, not re-encoded")
}

func TestImage_SaveToFile_PNG(t *testing.T) {
	img, err := NewImage(grayPixels(4, 4, 200), 4, 4, "DeviceGray", 8, "")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, img.SaveToFile(path))

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, written[:4])
}

func TestImage_Equals(t *testing.T) {
	a, err := NewImage(grayPixels(2, 2, 1), 2, 2, "DeviceGray", 8, "")
	require.NoError(t, err)
	b, err := NewImage(grayPixels(2, 2, 1), 2, 2, "DeviceGray", 8, "")
	require.NoError(t, err)
	c, err := NewImage(grayPixels(2, 2, 2), 2, 2, "DeviceGray", 8, "")
	require.NoError(t, err)

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.False(t, a.Equals(nil))
}

func TestImage_String(t *testing.T) {
	img, err := NewImage(grayPixels(2, 2, 1), 2, 2, "DeviceGray", 8, "/FlateDecode")
	require.NoError(t, err)

	s := img.String()
	assert.Contains(t, s, "2x2")
	assert.Contains(t, s, "DeviceGray")
	assert.Contains(t, s, "/FlateDecode")
}
