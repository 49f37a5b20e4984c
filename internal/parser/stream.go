package parser

import (
	"bytes"
	"encoding/ascii85"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/coregx/pdftab/internal/encoding"
)

// Stream represents a PDF stream object.
// A stream consists of a dictionary followed by zero or more bytes bracketed
// between the keywords stream (followed by newline) and endstream.
//
// Reference: PDF 1.7 specification, Section 7.3.8 (Stream Objects).
type Stream struct {
	dict    *Dictionary // Stream dictionary
	content []byte      // Raw or decoded stream data
}

// NewStream creates a new Stream with the given dictionary and content.
func NewStream(dict *Dictionary, content []byte) *Stream {
	if dict == nil {
		dict = NewDictionary()
	}
	return &Stream{
		dict:    dict,
		content: content,
	}
}

// Dictionary returns the stream's dictionary.
func (s *Stream) Dictionary() *Dictionary {
	return s.dict
}

// Content returns the raw stream content.
func (s *Stream) Content() []byte {
	return s.content
}

// SetContent sets the stream content and updates the Length entry in the dictionary.
func (s *Stream) SetContent(content []byte) {
	s.content = content
	s.dict.SetInteger("Length", int64(len(content)))
}

// Length returns the length of the stream content.
func (s *Stream) Length() int64 {
	return int64(len(s.content))
}

// String returns the stream's dictionary and byte length; the content
// itself is elided.
func (s *Stream) String() string {
	return fmt.Sprintf("stream[dict=%s, length=%d]", s.dict.String(), len(s.content))
}

// Clone returns a deep copy: dictionary and content are both duplicated.
func (s *Stream) Clone() *Stream {
	content := make([]byte, len(s.content))
	copy(content, s.content)
	return &Stream{dict: s.dict.Clone(), content: content}
}

// Decode decodes the stream content by applying its filter chain in order.
//
// Supports FlateDecode, ASCIIHexDecode and ASCII85Decode, which cover
// content streams and the great majority of metadata streams. An
// unrecognized filter is left undecoded and returned as-is: callers that
// need image-specific filters (DCTDecode, CCITTFaxDecode) decode those
// themselves from the stream's raw bytes.
func (s *Stream) Decode() ([]byte, error) {
	names := s.filterNames()
	data := s.content
	for _, name := range names {
		decoded, err := decodeFilter(name, data)
		if err != nil {
			return nil, fmt.Errorf("parser: filter %s: %w", name, err)
		}
		data = decoded
	}
	return data, nil
}

// filterNames returns the stream's /Filter entry as a name list, in
// application order. A single Name or an Array of Names are both accepted.
func (s *Stream) filterNames() []string {
	filterObj := s.GetFilter()
	switch f := filterObj.(type) {
	case *Name:
		return []string{f.Value()}
	case *Array:
		names := make([]string, 0, f.Len())
		for i := 0; i < f.Len(); i++ {
			if n, ok := f.Get(i).(*Name); ok {
				names = append(names, n.Value())
			}
		}
		return names
	default:
		return nil
	}
}

func decodeFilter(name string, data []byte) ([]byte, error) {
	switch name {
	case "FlateDecode", "Fl":
		return encoding.NewFlateDecoder().Decode(data)
	case "ASCIIHexDecode", "AHx":
		trimmed := strings.TrimRight(strings.TrimSpace(string(data)), ">")
		trimmed = strings.Join(strings.Fields(trimmed), "")
		if len(trimmed)%2 != 0 {
			trimmed += "0"
		}
		return hex.DecodeString(trimmed)
	case "ASCII85Decode", "A85":
		trimmed := bytes.TrimSuffix(bytes.TrimSpace(data), []byte("~>"))
		dst := make([]byte, len(trimmed))
		n, _, err := ascii85.Decode(dst, trimmed, true)
		if err != nil {
			return nil, err
		}
		return dst[:n], nil
	default:
		return data, nil
	}
}

// GetFilter returns the filter(s) applied to this stream.
// Returns nil if no filters are applied.
func (s *Stream) GetFilter() PdfObject {
	return s.dict.Get("Filter")
}

// GetDecodeParams returns the decode parameters for the filters.
// Returns nil if no decode parameters are specified.
func (s *Stream) GetDecodeParams() PdfObject {
	return s.dict.Get("DecodeParms")
}

// Bytes returns the raw stream content as a byte slice.
// Alias for Content() for convenience.
func (s *Stream) Bytes() []byte {
	return s.content
}

// Reader returns an io.Reader for the stream content.
func (s *Stream) Reader() io.Reader {
	return bytes.NewReader(s.content)
}
