package parser

import (
	"bytes"
	"fmt"
)

// Parser builds PdfObjects from a fixed byte window, on top of the token
// stream produced by a Lexer. Unlike ContentParser (which only ever sees
// direct objects inside a content stream), Parser also resolves indirect
// object definitions ("N G obj ... endobj"), indirect references
// ("N G R"), and streams ("<<dict>> stream ... endstream"). Stream data is
// binary and is located in the byte slice by its /Length rather than
// tokenized, since the Lexer has no notion of raw byte runs.
type Parser struct {
	data []byte
}

// NewParser creates a Parser over data. Object offsets passed to
// ParseIndirectAt/ParseObjectAt are relative to the start of data.
func NewParser(data []byte) *Parser {
	return &Parser{data: data}
}

// ParseIndirectAt parses "N G obj ... endobj" starting at byte offset off
// and returns the object number, generation and contained object. A
// trailing stream is recognized by the "stream" keyword following the
// object's dictionary and read out of the byte slice directly using the
// dictionary's /Length entry.
func (p *Parser) ParseIndirectAt(off int) (num, gen int, obj PdfObject, err error) {
	if off < 0 || off >= len(p.data) {
		return 0, 0, nil, fmt.Errorf("parser: offset %d out of range", off)
	}
	lex := NewLexer(bytes.NewReader(p.data[off:]))

	numTok, err := lex.NextToken()
	if err != nil || numTok.Type != TokenInteger {
		return 0, 0, nil, fmt.Errorf("parser: expected object number at %d", off)
	}
	genTok, err := lex.NextToken()
	if err != nil || genTok.Type != TokenInteger {
		return 0, 0, nil, fmt.Errorf("parser: expected generation number at %d", off)
	}
	kwTok, err := lex.NextToken()
	if err != nil || kwTok.Type != TokenKeyword || kwTok.Value != "obj" {
		return 0, 0, nil, fmt.Errorf("parser: expected 'obj' keyword at %d", off)
	}

	n := parseIntString(numTok.Value)
	g := parseIntString(genTok.Value)

	object, err := p.parseObject(lex)
	if err != nil {
		return 0, 0, nil, err
	}

	if dict, isDict := object.(*Dictionary); isDict {
		endobj := bytes.Index(p.data[off:], []byte("endobj"))
		searchEnd := len(p.data)
		if endobj >= 0 {
			searchEnd = off + endobj
		}
		if streamOff, ok := findStreamKeyword(p.data[:searchEnd], off); ok {
			length := dictLength(dict)
			content := []byte{}
			if length >= 0 && streamOff+length <= len(p.data) {
				content = p.data[streamOff : streamOff+length]
			}
			return n, g, NewStream(dict, content), nil
		}
	}

	return n, g, object, nil
}

// ParseObjectAt parses a single direct object (no surrounding "N G obj")
// starting at byte offset off.
func (p *Parser) ParseObjectAt(off int) (PdfObject, error) {
	lex := NewLexer(bytes.NewReader(p.data[off:]))
	return p.parseObject(lex)
}

func (p *Parser) parseObject(lex *Lexer) (PdfObject, error) {
	tok, err := lex.NextToken()
	if err != nil {
		return nil, err
	}
	return p.tokenToObject(lex, tok)
}

// tokenToObject converts a single already-read token into a PdfObject,
// recursing into the lexer for compound objects (arrays, dictionaries,
// indirect references).
//
//nolint:cyclop // object-kind dispatch inherently has many cases.
func (p *Parser) tokenToObject(lex *Lexer, tok Token) (PdfObject, error) {
	switch tok.Type {
	case TokenNull:
		return NewNull(), nil
	case TokenBoolean:
		return NewBoolean(tok.Value == "true"), nil
	case TokenInteger:
		if ref, ok := p.tryParseReference(lex, tok); ok {
			return ref, nil
		}
		return NewInteger(int64(parseIntString(tok.Value))), nil
	case TokenReal:
		return NewReal(parseFloatString(tok.Value)), nil
	case TokenString, TokenHexString:
		return NewString(tok.Value), nil
	case TokenName:
		return NewName(tok.Value), nil
	case TokenArrayStart:
		return p.parseArray(lex)
	case TokenDictStart:
		return p.parseDictionary(lex)
	default:
		return nil, fmt.Errorf("parser: unexpected token %v %q", tok.Type, tok.Value)
	}
}

// tryParseReference speculatively reads "G R" after an already-read
// integer token N. On any mismatch the consumed tokens are pushed back so
// integer runs like "/W [1 3 2]" keep every value.
func (p *Parser) tryParseReference(lex *Lexer, numTok Token) (PdfObject, bool) {
	genTok, err := lex.NextToken()
	if err != nil || genTok.Type != TokenInteger {
		if err == nil {
			lex.Unread(genTok)
		}
		return nil, false
	}
	rTok, err := lex.NextToken()
	if err != nil || rTok.Type != TokenKeyword || rTok.Value != "R" {
		if err == nil {
			lex.Unread(genTok, rTok)
		} else {
			lex.Unread(genTok)
		}
		return nil, false
	}
	return &IndirectReference{
		Number:     parseIntString(numTok.Value),
		Generation: parseIntString(genTok.Value),
	}, true
}

func (p *Parser) parseArray(lex *Lexer) (PdfObject, error) {
	arr := NewArray()
	for {
		tok, err := lex.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == TokenEOF {
			return nil, fmt.Errorf("parser: unexpected EOF in array")
		}
		if tok.Type == TokenArrayEnd {
			return arr, nil
		}
		obj, err := p.tokenToObject(lex, tok)
		if err != nil {
			return nil, err
		}
		arr.Append(obj)
	}
}

func (p *Parser) parseDictionary(lex *Lexer) (PdfObject, error) {
	dict := NewDictionary()
	for {
		keyTok, err := lex.NextToken()
		if err != nil {
			return nil, err
		}
		if keyTok.Type == TokenEOF {
			return nil, fmt.Errorf("parser: unexpected EOF in dictionary")
		}
		if keyTok.Type == TokenDictEnd {
			return dict, nil
		}
		if keyTok.Type != TokenName {
			return nil, fmt.Errorf("parser: dictionary key must be a name, got %v", keyTok.Type)
		}
		valTok, err := lex.NextToken()
		if err != nil {
			return nil, err
		}
		val, err := p.tokenToObject(lex, valTok)
		if err != nil {
			return nil, err
		}
		dict.Set(keyTok.Value, val)
	}
}

func parseIntString(s string) int {
	n := 0
	neg := false
	for i, c := range s {
		switch {
		case c == '-' && i == 0:
			neg = true
		case c == '+' && i == 0:
		case c >= '0' && c <= '9':
			n = n*10 + int(c-'0')
		}
	}
	if neg {
		n = -n
	}
	return n
}

func parseFloatString(s string) float64 {
	neg := false
	whole, frac := 0.0, 0.0
	fracDiv := 1.0
	inFrac := false
	for i, c := range s {
		switch {
		case c == '-' && i == 0:
			neg = true
		case c == '+' && i == 0:
		case c == '.':
			inFrac = true
		case c >= '0' && c <= '9':
			d := float64(c - '0')
			if inFrac {
				fracDiv *= 10
				frac += d / fracDiv
			} else {
				whole = whole*10 + d
			}
		}
	}
	v := whole + frac
	if neg {
		v = -v
	}
	return v
}

// findStreamKeyword scans data starting at from for the "stream" keyword,
// returning the byte offset of the first content byte (immediately after
// the single CRLF or LF that must follow the keyword).
func findStreamKeyword(data []byte, from int) (int, bool) {
	if from < 0 || from >= len(data) {
		return 0, false
	}
	idx := bytes.Index(data[from:], []byte("stream"))
	if idx < 0 {
		return 0, false
	}
	pos := from + idx + len("stream")
	if pos < len(data) && data[pos] == '\r' {
		pos++
	}
	if pos < len(data) && data[pos] == '\n' {
		pos++
	}
	return pos, true
}

func dictLength(dict *Dictionary) int {
	obj := dict.Get("Length")
	if i, ok := obj.(*Integer); ok {
		return int(i.Value())
	}
	return -1
}
