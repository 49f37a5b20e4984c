package parser

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/coregx/pdftab/internal/encoding"
	"github.com/coregx/pdftab/internal/security"
)

// ErrPasswordRequired is returned by Reader.GetPage when a document is
// encrypted and no correct password has been accepted by Authenticate.
var ErrPasswordRequired = fmt.Errorf("parser: password required")

// xrefEntry is one resolved cross-reference table entry.
type xrefEntry struct {
	offset    int64 // for free/in-use entries: byte offset of "N G obj"
	streamNum int   // for compressed entries: containing object stream's number
	streamIdx int   // index within that object stream
	compressed bool
	free      bool
}

// Reader parses the file-structure layer of a PDF document: header, xref
// table or stream, trailer, and the page tree. It resolves indirect
// references on demand and decrypts strings/streams transparently once
// authenticated.
type Reader struct {
	data    []byte
	parser  *Parser
	xref    map[int]xrefEntry
	trailer *Dictionary
	version string

	encrypted bool
	handler   *security.StandardSecurityHandler
	fileKey   []byte

	pages []*Dictionary
}

// OpenPDF opens the PDF file at path, parses its cross-reference
// information and trailer, and locates its pages. It does not require a
// password merely to open: password-gated documents can be opened and
// inspected structurally, but GetPage will refuse to return decrypted
// content until Authenticate succeeds (mirrors how encrypted documents
// signal password-required before any page access, not before open).
func OpenPDF(path string) (*Reader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("parser: %w", err)
	}
	return NewReader(data)
}

// NewReader builds a Reader directly from in-memory PDF bytes.
func NewReader(data []byte) (*Reader, error) {
	if !bytes.HasPrefix(bytes.TrimLeft(data, "\x00\t\n\f\r "), []byte("%PDF-")) {
		return nil, fmt.Errorf("parser: missing %%PDF- header")
	}
	// Xref offsets count from the header, so leading whitespace is dropped.
	data = data[bytes.Index(data, []byte("%PDF-")):]
	r := &Reader{
		data:   data,
		parser: NewParser(data),
		xref:   make(map[int]xrefEntry),
	}
	r.version = readHeaderVersion(data)

	if err := r.loadXref(); err != nil {
		return nil, err
	}
	if err := r.loadEncryption(); err != nil {
		return nil, err
	}
	if err := r.loadPages(); err != nil {
		return nil, err
	}
	return r, nil
}

func readHeaderVersion(data []byte) string {
	idx := bytes.Index(data, []byte("%PDF-"))
	if idx < 0 {
		return ""
	}
	rest := data[idx+len("%PDF-"):]
	end := 0
	for end < len(rest) && end < 8 && (rest[end] == '.' || (rest[end] >= '0' && rest[end] <= '9')) {
		end++
	}
	return string(rest[:end])
}

// Version returns the PDF header version string, e.g. "1.7".
func (r *Reader) Version() string { return r.version }

// Close releases resources held by the reader. In-memory Readers hold
// nothing beyond the byte slice, so this is a no-op kept for symmetry with
// other collaborator types that do own file handles.
func (r *Reader) Close() error { return nil }

// IsEncrypted reports whether the document has an /Encrypt entry.
func (r *Reader) IsEncrypted() bool { return r.encrypted }

// Authenticate checks password against the document's Standard Security
// Handler and reports whether it was accepted. An unencrypted document
// accepts any password; an encrypted one without a usable handler (a
// non-Standard /Filter) accepts none.
func (r *Reader) Authenticate(password string) bool {
	if !r.encrypted {
		return true
	}
	if r.handler == nil {
		return false
	}
	key, ok := r.handler.Authenticate(password)
	if !ok {
		return false
	}
	r.fileKey = key
	return true
}

// PageCount returns the number of pages found while walking the page tree.
func (r *Reader) PageCount() int { return len(r.pages) }

// GetPageCount returns the page count, matching the (int, error) shape the
// application-layer reader wrapper expects.
func (r *Reader) GetPageCount() (int, error) { return len(r.pages), nil }

// DocumentInfo is the subset of the trailer's /Info dictionary and
// encryption status the application layer surfaces as document metadata.
type DocumentInfo struct {
	Version   string
	Title     string
	Author    string
	Subject   string
	Keywords  string
	Creator   string
	Producer  string
	Encrypted bool
}

// GetDocumentInfo reads the document's /Info dictionary, if any.
func (r *Reader) GetDocumentInfo() *DocumentInfo {
	info := &DocumentInfo{Version: r.version, Encrypted: r.encrypted}
	infoDict := r.ResolveDictionary(r.trailer.Get("Info"))
	if infoDict == nil {
		return info
	}
	info.Title = infoDict.GetString("Title")
	info.Author = infoDict.GetString("Author")
	info.Subject = infoDict.GetString("Subject")
	info.Keywords = infoDict.GetString("Keywords")
	info.Creator = infoDict.GetString("Creator")
	info.Producer = infoDict.GetString("Producer")
	return info
}

// GetPage returns the page dictionary at the given zero-based index, with
// inherited /Resources, /MediaBox, /CropBox and /Rotate attributes already
// merged in by loadPages.
func (r *Reader) GetPage(index int) (*Dictionary, error) {
	if index < 0 || index >= len(r.pages) {
		return nil, fmt.Errorf("parser: page index %d out of range (have %d pages)", index, len(r.pages))
	}
	if r.encrypted && r.fileKey == nil {
		return nil, ErrPasswordRequired
	}
	return r.pages[index], nil
}

// Resolve follows obj if it is an *IndirectReference, returning the
// referenced object. Direct objects are returned unchanged.
func (r *Reader) Resolve(obj PdfObject) (PdfObject, error) {
	ref, ok := obj.(*IndirectReference)
	if !ok {
		return obj, nil
	}
	return r.getObject(ref.Number, ref.Generation)
}

// ResolveDictionary resolves obj and type-asserts the result to *Dictionary
// (also unwrapping a *Stream's own dictionary, since /Page-tree style
// pointers into a stream don't occur but defensive callers sometimes pass
// either).
func (r *Reader) ResolveDictionary(obj PdfObject) *Dictionary {
	resolved, err := r.Resolve(obj)
	if err != nil {
		return nil
	}
	switch v := resolved.(type) {
	case *Dictionary:
		return v
	case *Stream:
		return v.Dictionary()
	default:
		return nil
	}
}

// ResolveStream resolves obj, decrypting and filter-decoding its content
// when it is a *Stream.
func (r *Reader) ResolveStream(obj PdfObject) (*Stream, error) {
	resolved, err := r.Resolve(obj)
	if err != nil {
		return nil, err
	}
	s, ok := resolved.(*Stream)
	if !ok {
		return nil, fmt.Errorf("parser: object is not a stream")
	}
	return s, nil
}

// getObject resolves object number num to its PdfObject, loading compressed
// (object-stream-resident) objects on demand and decrypting strings/stream
// content when the document is encrypted.
func (r *Reader) getObject(num, _ int) (PdfObject, error) {
	entry, ok := r.xref[num]
	if !ok || entry.free {
		return NewNull(), nil
	}
	if entry.compressed {
		return r.getCompressedObject(entry)
	}

	_, gen, obj, err := r.parser.ParseIndirectAt(int(entry.offset))
	if err != nil {
		return nil, fmt.Errorf("parser: object %d: %w", num, err)
	}
	if r.encrypted && r.fileKey != nil {
		obj = r.decryptObject(obj, num, gen)
	}
	// Inflate Flate-compressed streams eagerly, dropping the consumed
	// filter entry so later Decode calls don't inflate twice. Image
	// filters (DCTDecode etc.) stay untouched: their consumers want the
	// compressed bytes and the filter name.
	if s, isStream := obj.(*Stream); isStream {
		if name, ok := s.GetFilter().(*Name); ok && name.Value() == "FlateDecode" {
			if decoded, derr := encoding.NewFlateDecoder().Decode(s.Content()); derr == nil {
				dict := s.Dictionary().Clone()
				dict.Remove("Filter")
				dict.Remove("DecodeParms")
				dict.SetInteger("Length", int64(len(decoded)))
				return NewStream(dict, decoded), nil
			}
		}
	}
	return obj, nil
}

func (r *Reader) decryptObject(obj PdfObject, num, gen int) PdfObject {
	switch v := obj.(type) {
	case *String:
		plain, err := r.decryptData([]byte(v.Value()), num, gen)
		if err != nil {
			return obj
		}
		return NewString(string(plain))
	case *Stream:
		plain, err := r.decryptData(v.Content(), num, gen)
		if err != nil {
			return obj
		}
		return NewStream(v.Dictionary(), plain)
	case *Array:
		out := NewArrayWithCapacity(v.Len())
		for i := 0; i < v.Len(); i++ {
			out.Append(r.decryptObject(v.Get(i), num, gen))
		}
		return out
	case *Dictionary:
		out := NewDictionary()
		for _, k := range v.Keys() {
			out.Set(k, r.decryptObject(v.Get(k), num, gen))
		}
		return out
	default:
		return obj
	}
}

// decryptData applies the document's crypt filter to one string or stream
// body. RC4 and AESV2 documents derive a per-object key; V5 (AES-256) uses
// the file key for every object.
func (r *Reader) decryptData(data []byte, num, gen int) ([]byte, error) {
	if r.handler != nil && r.handler.AES {
		key := r.fileKey
		if r.handler.V < 5 {
			key = security.ObjectKey(r.fileKey, num, gen, true)
		}
		return security.DecryptAES(key, data)
	}
	key := security.ObjectKey(r.fileKey, num, gen, false)
	return security.DecryptRC4(key, data)
}

func decodeStream(s *Stream) ([]byte, error) {
	filter := s.GetFilter()
	name, ok := filter.(*Name)
	if !ok {
		return s.Content(), nil
	}
	switch name.Value() {
	case "FlateDecode":
		return encoding.NewFlateDecoder().Decode(s.Content())
	default:
		return s.Content(), nil
	}
}

func (r *Reader) getCompressedObject(entry xrefEntry) (PdfObject, error) {
	containerObj, err := r.getObject(entry.streamNum, 0)
	if err != nil {
		return nil, err
	}
	stream, ok := containerObj.(*Stream)
	if !ok {
		return nil, fmt.Errorf("parser: object stream %d is not a stream", entry.streamNum)
	}
	content, err := decodeStream(stream)
	if err != nil {
		return nil, err
	}
	n := int(stream.Dictionary().GetInteger("N"))
	first := int(stream.Dictionary().GetInteger("First"))

	headerLex := NewLexer(bytes.NewReader(content[:first]))
	offsets := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if _, err := headerLex.NextToken(); err != nil { // object number, unused here
			return nil, err
		}
		offTok, err := headerLex.NextToken()
		if err != nil {
			return nil, err
		}
		offsets = append(offsets, parseIntString(offTok.Value))
	}
	if entry.streamIdx < 0 || entry.streamIdx >= len(offsets) {
		return nil, fmt.Errorf("parser: object stream index %d out of range", entry.streamIdx)
	}
	sub := NewParser(content)
	return sub.ParseObjectAt(first + offsets[entry.streamIdx])
}

// loadXref locates startxref, parses the referenced xref table or stream,
// and follows /Prev chains for incremental updates. Entries found in an
// earlier (more recent) section take precedence over /Prev sections, since
// PDF incremental updates only add or override objects going forward.
func (r *Reader) loadXref() error {
	startOff, err := findStartXref(r.data)
	if err != nil {
		return err
	}
	seen := make(map[int64]bool)
	for startOff >= 0 {
		if seen[startOff] {
			break
		}
		seen[startOff] = true

		trailer, prev, err := r.loadXrefSection(int(startOff))
		if err != nil {
			return err
		}
		if r.trailer == nil {
			r.trailer = trailer
		} else {
			for _, key := range trailer.Keys() {
				if !r.trailer.Has(key) {
					r.trailer.Set(key, trailer.Get(key))
				}
			}
		}
		if prev < 0 {
			break
		}
		startOff = prev
	}
	if r.trailer == nil {
		return fmt.Errorf("parser: could not locate trailer")
	}
	return nil
}

func findStartXref(data []byte) (int64, error) {
	idx := bytes.LastIndex(data, []byte("startxref"))
	if idx < 0 {
		return 0, fmt.Errorf("parser: missing startxref")
	}
	lex := NewLexer(bytes.NewReader(data[idx+len("startxref"):]))
	tok, err := lex.NextToken()
	if err != nil || tok.Type != TokenInteger {
		return 0, fmt.Errorf("parser: malformed startxref")
	}
	return int64(parseIntString(tok.Value)), nil
}

// loadXrefSection parses one xref table or xref stream at off, returning
// its trailer dictionary and the byte offset of /Prev (-1 if absent).
func (r *Reader) loadXrefSection(off int) (*Dictionary, int64, error) {
	lex := NewLexer(bytes.NewReader(r.data[off:]))
	tok, err := lex.Peek()
	if err == nil && tok.Type == TokenKeyword && tok.Value == "xref" {
		return r.loadClassicXref(off)
	}
	return r.loadXrefStream(off)
}

func (r *Reader) loadClassicXref(off int) (*Dictionary, int64, error) {
	rest := r.data[off:]
	idx := bytes.Index(rest, []byte("xref"))
	if idx < 0 {
		return nil, -1, fmt.Errorf("parser: expected 'xref' keyword")
	}
	pos := off + idx + len("xref")

	lines := splitLines(r.data[pos:])
	li := 0
	skip := func() string {
		for li < len(lines) && strings.TrimSpace(lines[li]) == "" {
			li++
		}
		if li >= len(lines) {
			return ""
		}
		s := lines[li]
		li++
		return s
	}

	for {
		header := skip()
		fields := strings.Fields(header)
		if len(fields) != 2 || !isDigits(fields[0]) || !isDigits(fields[1]) {
			// Not a subsection header: must be "trailer".
			li--
			break
		}
		start := parseIntString(fields[0])
		count := parseIntString(fields[1])
		for i := 0; i < count; i++ {
			entryLine := skip()
			if len(entryLine) < 18 {
				continue
			}
			fields := strings.Fields(entryLine)
			if len(fields) < 3 {
				continue
			}
			objNum := start + i
			if _, exists := r.xref[objNum]; exists {
				continue
			}
			offset := int64(parseIntString(fields[0]))
			if fields[2] == "f" {
				r.xref[objNum] = xrefEntry{free: true}
			} else {
				r.xref[objNum] = xrefEntry{offset: offset}
			}
		}
	}

	trailerRest := strings.Join(lines[li:], "\n")
	trailerIdx := strings.Index(trailerRest, "trailer")
	if trailerIdx < 0 {
		return nil, -1, fmt.Errorf("parser: missing trailer keyword")
	}
	consumed := 0
	for _, line := range lines[:li] {
		consumed += len(line) + 1 // the '\n' removed by splitLines
	}
	dictStart := pos + consumed + trailerIdx + len("trailer")
	dict, err := r.parseTrailerDict(dictStart)
	if err != nil {
		return nil, -1, err
	}
	prev := int64(-1)
	if dict.Has("Prev") {
		prev = int64(dict.GetInteger("Prev"))
	}
	return dict, prev, nil
}

func (r *Reader) parseTrailerDict(off int) (*Dictionary, error) {
	obj, err := r.parser.ParseObjectAt(off)
	if err != nil {
		return nil, err
	}
	dict, ok := obj.(*Dictionary)
	if !ok {
		return nil, fmt.Errorf("parser: trailer is not a dictionary")
	}
	return dict, nil
}

// loadXrefStream parses a cross-reference stream object (PDF 1.5+): the
// indirect object at off is itself the trailer-equivalent dictionary
// (merged with /Type /XRef), with entries packed as fixed-width fields
// described by /W and decoded from the decompressed stream content.
func (r *Reader) loadXrefStream(off int) (*Dictionary, int64, error) {
	_, _, obj, err := r.parser.ParseIndirectAt(off)
	if err != nil {
		return nil, -1, fmt.Errorf("parser: xref stream: %w", err)
	}
	stream, ok := obj.(*Stream)
	if !ok {
		return nil, -1, fmt.Errorf("parser: expected xref stream object")
	}
	dict := stream.Dictionary()
	content, err := decodeStream(stream)
	if err != nil {
		return nil, -1, err
	}

	wArr := dict.GetArray("W")
	if wArr == nil || wArr.Len() != 3 {
		return nil, -1, fmt.Errorf("parser: xref stream missing /W")
	}
	w := [3]int{
		int(asInt(wArr.Get(0))),
		int(asInt(wArr.Get(1))),
		int(asInt(wArr.Get(2))),
	}
	entryLen := w[0] + w[1] + w[2]

	var index []int
	if idxArr := dict.GetArray("Index"); idxArr != nil {
		for i := 0; i < idxArr.Len(); i++ {
			index = append(index, int(asInt(idxArr.Get(i))))
		}
	} else {
		index = []int{0, int(dict.GetInteger("Size"))}
	}

	pos := 0
	for sec := 0; sec+1 < len(index); sec += 2 {
		start := index[sec]
		count := index[sec+1]
		for i := 0; i < count; i++ {
			if pos+entryLen > len(content) {
				break
			}
			fields := readFixedFields(content[pos:pos+entryLen], w)
			pos += entryLen
			objNum := start + i
			if _, exists := r.xref[objNum]; exists {
				continue
			}
			switch fields[0] {
			case 0:
				r.xref[objNum] = xrefEntry{free: true}
			case 1:
				r.xref[objNum] = xrefEntry{offset: int64(fields[1])}
			case 2:
				r.xref[objNum] = xrefEntry{compressed: true, streamNum: fields[1], streamIdx: fields[2]}
			}
		}
	}

	prev := int64(-1)
	if dict.Has("Prev") {
		prev = int64(dict.GetInteger("Prev"))
	}
	return dict, prev, nil
}

func readFixedFields(entry []byte, w [3]int) [3]int {
	var out [3]int
	pos := 0
	for i, width := range w {
		if width == 0 {
			if i == 0 {
				out[i] = 1 // default type when /W[0] is 0 is "in-use"
			}
			continue
		}
		v := 0
		for j := 0; j < width; j++ {
			v = v<<8 | int(entry[pos+j])
		}
		out[i] = v
		pos += width
	}
	return out
}

func asInt(obj PdfObject) int64 {
	if i, ok := obj.(*Integer); ok {
		return i.Value()
	}
	return 0
}

// loadEncryption inspects the trailer's /Encrypt entry, if present, and
// builds the Standard Security Handler needed to authenticate a password.
func (r *Reader) loadEncryption() error {
	encRef := r.trailer.Get("Encrypt")
	if encRef == nil {
		return nil
	}
	r.encrypted = true

	encDict := r.ResolveDictionary(encRef)
	if encDict == nil {
		return nil
	}
	filter := encDict.GetName("Filter")
	if filter == nil || filter.Value() != "Standard" {
		return nil // unsupported filter; IsEncrypted still reports true
	}

	v := int(encDict.GetInteger("V"))
	rev := int(encDict.GetInteger("R"))
	length := int(encDict.GetInteger("Length"))
	if length == 0 {
		length = 40
	}

	var fileID []byte
	if idArr := r.trailer.GetArray("ID"); idArr != nil && idArr.Len() > 0 {
		if s, ok := idArr.Get(0).(*String); ok {
			fileID = []byte(s.Value())
		}
	}

	r.handler = &security.StandardSecurityHandler{
		V:         v,
		R:         rev,
		KeyLength: length,
		P:         int32(encDict.GetInteger("P")),
		O:         []byte(encDict.GetString("O")),
		U:         []byte(encDict.GetString("U")),
		OE:        []byte(encDict.GetString("OE")),
		UE:        []byte(encDict.GetString("UE")),
		FileID:    fileID,
		AES:       v >= 4,
	}
	return nil
}

// loadPages resolves /Root -> /Pages and walks the page tree, flattening
// it into r.pages with inherited attributes merged into each leaf.
func (r *Reader) loadPages() error {
	rootDict := r.ResolveDictionary(r.trailer.Get("Root"))
	if rootDict == nil {
		return fmt.Errorf("parser: missing document catalog")
	}
	pagesDict := r.ResolveDictionary(rootDict.Get("Pages"))
	if pagesDict == nil {
		return fmt.Errorf("parser: missing page tree root")
	}
	inherited := NewDictionary()
	return r.walkPageTree(pagesDict, inherited, map[*Dictionary]bool{})
}

var inheritableKeys = []string{"Resources", "MediaBox", "CropBox", "Rotate"}

func (r *Reader) walkPageTree(node *Dictionary, inherited *Dictionary, visited map[*Dictionary]bool) error {
	if visited[node] {
		return fmt.Errorf("parser: cyclic page tree")
	}
	visited[node] = true

	merged := inherited.Clone()
	for _, key := range inheritableKeys {
		if node.Has(key) {
			merged.Set(key, node.Get(key))
		}
	}

	kids := node.GetArray("Kids")
	if kids == nil {
		leaf := node.Clone()
		for _, key := range inheritableKeys {
			if !leaf.Has(key) && merged.Has(key) {
				leaf.Set(key, merged.Get(key))
			}
		}
		r.pages = append(r.pages, leaf)
		return nil
	}

	for i := 0; i < kids.Len(); i++ {
		child := r.ResolveDictionary(kids.Get(i))
		if child == nil {
			continue
		}
		if err := r.walkPageTree(child, merged, visited); err != nil {
			return err
		}
	}
	return nil
}

func splitLines(data []byte) []string {
	return strings.Split(string(data), "\n")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
