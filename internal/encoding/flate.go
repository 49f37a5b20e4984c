package encoding

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
)

// FlateDecoder decompresses FlateDecode (zlib, RFC 1950) streams, the
// filter nearly every content stream uses. Predictor post-processing is
// not applied; the xref-stream reader handles its own predictors.
type FlateDecoder struct{}

// NewFlateDecoder creates a Flate decoder.
func NewFlateDecoder() *FlateDecoder {
	return &FlateDecoder{}
}

// Decode inflates data.
func (d *FlateDecoder) Decode(data []byte) (result []byte, err error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open zlib stream: %w", err)
	}
	defer func() {
		if cerr := zr.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close zlib stream: %w", cerr)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, zr); err != nil {
		return nil, fmt.Errorf("inflate: %w", err)
	}
	return buf.Bytes(), nil
}
