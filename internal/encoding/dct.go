// Package encoding implements the stream decode filters the parser and
// image extractor rely on: Flate for content streams and DCT (JPEG) for
// image XObjects.
package encoding

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
)

// DCTDecoder decompresses DCTDecode (JPEG) image streams into raw pixel
// data. Decode-only: the library never produces JPEG streams.
type DCTDecoder struct{}

// NewDCTDecoder creates a DCT decoder.
func NewDCTDecoder() *DCTDecoder {
	return &DCTDecoder{}
}

// DCTResult is one decoded image: packed pixels plus the dimensions and
// component count needed to interpret them.
type DCTResult struct {
	// Data holds row-major pixels: 3 bytes per pixel for color, 1 for
	// grayscale.
	Data []byte

	Width  int
	Height int

	// Components is 1 for grayscale, 3 for color.
	Components int

	// BitsPerComponent is always 8 for baseline JPEG.
	BitsPerComponent int
}

// Decode decompresses JPEG data to raw pixels, discarding the metadata.
func (d *DCTDecoder) Decode(data []byte) ([]byte, error) {
	result, err := d.DecodeWithMetadata(data)
	if err != nil {
		return nil, err
	}
	return result.Data, nil
}

// DecodeWithMetadata decompresses JPEG data and reports dimensions and
// component count alongside the pixels.
func (d *DCTDecoder) DecodeWithMetadata(data []byte) (*DCTResult, error) {
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode JPEG: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if gray, ok := img.(*image.Gray); ok {
		return grayResult(gray, w, h), nil
	}
	return rgbResult(img, w, h), nil
}

func grayResult(img *image.Gray, w, h int) *DCTResult {
	data := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			data[y*w+x] = img.GrayAt(x, y).Y
		}
	}
	return &DCTResult{Data: data, Width: w, Height: h, Components: 1, BitsPerComponent: 8}
}

// rgbResult packs any non-grayscale image (YCbCr, RGBA, CMYK-converted)
// into 8-bit RGB triples via the image.Image interface.
func rgbResult(img image.Image, w, h int) *DCTResult {
	data := make([]byte, 0, w*h*3)
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			data = append(data, byte(r>>8), byte(g>>8), byte(b>>8))
		}
	}
	return &DCTResult{Data: data, Width: w, Height: h, Components: 3, BitsPerComponent: 8}
}

// DecodeToImage decompresses JPEG data to a Go image.Image, for callers
// that re-encode or inspect pixels through the standard library.
func (d *DCTDecoder) DecodeToImage(data []byte) (image.Image, error) {
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode JPEG: %w", err)
	}
	return img, nil
}
