package pdftab

import (
	"image"

	"github.com/coregx/pdftab/internal/models/types"
)

// Image is an image extracted from a PDF page, wrapping the internal
// value object behind the public API.
type Image struct {
	internal *types.Image
}

// Width returns the width in pixels.
func (img *Image) Width() int { return img.internal.Width() }

// Height returns the height in pixels.
func (img *Image) Height() int { return img.internal.Height() }

// ColorSpace returns the PDF color space name, e.g. "DeviceRGB" or
// "DeviceGray".
func (img *Image) ColorSpace() string { return img.internal.ColorSpace() }

// BitsPerComponent returns the bits per color component, typically 8.
func (img *Image) BitsPerComponent() int { return img.internal.BitsPerComponent() }

// Filter returns the compression filter the PDF stored the image with,
// e.g. "/DCTDecode" for JPEG.
func (img *Image) Filter() string { return img.internal.Filter() }

// Name returns the XObject resource name, e.g. "/Im1".
func (img *Image) Name() string { return img.internal.Name() }

// SaveToFile writes the image to path. The extension picks the format
// (.jpg/.jpeg or .png); JPEG-compressed data is written as-is, without
// re-encoding.
func (img *Image) SaveToFile(path string) error {
	return img.internal.SaveToFile(path)
}

// ToGoImage decodes the image into Go's standard image.Image for further
// processing.
func (img *Image) ToGoImage() (image.Image, error) {
	return img.internal.ToGoImage()
}

// String returns a debug summary of the image.
func (img *Image) String() string { return img.internal.String() }
