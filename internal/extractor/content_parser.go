package extractor

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/coregx/pdftab/internal/parser"
)

// Operator is one content-stream instruction: postfix operands followed by
// the operator keyword, e.g. "100 200 Td" or "(Hi) Tj".
type Operator struct {
	Name     string
	Operands []parser.PdfObject
}

// NewOperator builds an Operator.
func NewOperator(name string, operands []parser.PdfObject) *Operator {
	return &Operator{Name: name, Operands: operands}
}

// String returns a debug rendering of the operator.
func (op *Operator) String() string {
	return fmt.Sprintf("Operator{%s, operands=%d}", op.Name, len(op.Operands))
}

// ContentParser turns a page's content stream into an Operator sequence.
// Content streams use the same lexical grammar as the file structure but a
// postfix evaluation model: operands accumulate until a keyword consumes
// them.
type ContentParser struct {
	lexer *parser.Lexer
}

// NewContentParser creates a parser over one decoded content stream.
func NewContentParser(content []byte) *ContentParser {
	return &ContentParser{lexer: parser.NewLexer(bytes.NewReader(content))}
}

// ParseOperators walks the whole stream and returns its operators in
// order, each carrying the operands that preceded it.
func (cp *ContentParser) ParseOperators() ([]*Operator, error) {
	var operators []*Operator
	var operands []parser.PdfObject

	for {
		tok, err := cp.lexer.NextToken()
		if err != nil {
			return operators, err
		}
		switch tok.Type {
		case parser.TokenEOF:
			return operators, nil
		case parser.TokenKeyword:
			operators = append(operators, NewOperator(tok.Value, operands))
			operands = nil
		default:
			obj, err := cp.operand(tok)
			if err != nil {
				return nil, fmt.Errorf("failed to parse operand: %w", err)
			}
			operands = append(operands, obj)
		}
	}
}

// operand converts one non-keyword token into its object form, recursing
// into arrays and dictionaries.
func (cp *ContentParser) operand(tok parser.Token) (parser.PdfObject, error) {
	switch tok.Type {
	case parser.TokenNull:
		return parser.NewNull(), nil
	case parser.TokenBoolean:
		return parser.NewBoolean(tok.Value == "true"), nil
	case parser.TokenInteger:
		v, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer: %s", tok.Value)
		}
		return parser.NewInteger(v), nil
	case parser.TokenReal:
		v, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid real: %s", tok.Value)
		}
		return parser.NewReal(v), nil
	case parser.TokenString, parser.TokenHexString:
		return parser.NewString(tok.Value), nil
	case parser.TokenName:
		return parser.NewName(tok.Value), nil
	case parser.TokenArrayStart:
		return cp.array()
	case parser.TokenDictStart:
		return cp.dictionary()
	case parser.TokenArrayEnd, parser.TokenDictEnd:
		return nil, fmt.Errorf("unbalanced %v", tok.Type)
	default:
		return nil, fmt.Errorf("unexpected token type for operand: %v", tok.Type)
	}
}

// array reads elements up to the matching ']'; the '[' is already
// consumed.
func (cp *ContentParser) array() (parser.PdfObject, error) {
	arr := parser.NewArray()
	for {
		tok, err := cp.lexer.NextToken()
		if err != nil {
			return nil, fmt.Errorf("error reading array element: %w", err)
		}
		switch tok.Type {
		case parser.TokenEOF:
			return nil, fmt.Errorf("unexpected EOF while parsing array")
		case parser.TokenArrayEnd:
			return arr, nil
		}
		obj, err := cp.operand(tok)
		if err != nil {
			return nil, fmt.Errorf("failed to parse array element: %w", err)
		}
		arr.Append(obj)
	}
}

// dictionary reads /Key value pairs up to the matching '>>'; the '<<' is
// already consumed.
func (cp *ContentParser) dictionary() (parser.PdfObject, error) {
	dict := parser.NewDictionary()
	for {
		keyTok, err := cp.lexer.NextToken()
		if err != nil {
			return nil, fmt.Errorf("error reading dictionary key: %w", err)
		}
		switch keyTok.Type {
		case parser.TokenEOF:
			return nil, fmt.Errorf("unexpected EOF while parsing dictionary")
		case parser.TokenDictEnd:
			return dict, nil
		}
		if keyTok.Type != parser.TokenName {
			return nil, fmt.Errorf("dictionary key must be a name, got %v", keyTok.Type)
		}

		valTok, err := cp.lexer.NextToken()
		if err != nil {
			return nil, fmt.Errorf("error reading dictionary value: %w", err)
		}
		if valTok.Type == parser.TokenEOF {
			return nil, fmt.Errorf("unexpected EOF while reading dictionary value")
		}
		val, err := cp.operand(valTok)
		if err != nil {
			return nil, fmt.Errorf("failed to parse dictionary value: %w", err)
		}
		dict.Set(keyTok.Value, val)
	}
}
