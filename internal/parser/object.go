package parser

import "fmt"

// PdfObject is the interface every PDF primitive satisfies. The reader
// only ever needs a debug rendering; serialization back to PDF syntax is
// deliberately out of scope.
type PdfObject interface {
	// String returns a readable rendering of the object.
	String() string
}

// Type tags a PdfObject's concrete kind, for callers that want to switch
// without a chain of type assertions.
type Type int

// The concrete object kinds.
const (
	TypeNull Type = iota
	TypeBoolean
	TypeInteger
	TypeReal
	TypeString
	TypeName
	TypeArray
	TypeDictionary
	TypeStream
	TypeIndirect
	TypeReference
)

// String returns the kind's name.
func (t Type) String() string {
	names := map[Type]string{
		TypeNull:       "Null",
		TypeBoolean:    "Boolean",
		TypeInteger:    "Integer",
		TypeReal:       "Real",
		TypeString:     "String",
		TypeName:       "Name",
		TypeArray:      "Array",
		TypeDictionary: "Dictionary",
		TypeStream:     "Stream",
		TypeIndirect:   "Indirect",
		TypeReference:  "Reference",
	}
	if name, ok := names[t]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", t)
}

// TypeOf reports the kind of obj, or -1 for types outside the model.
func TypeOf(obj PdfObject) Type {
	switch obj.(type) {
	case *Null:
		return TypeNull
	case *Boolean:
		return TypeBoolean
	case *Integer:
		return TypeInteger
	case *Real:
		return TypeReal
	case *String:
		return TypeString
	case *Name:
		return TypeName
	case *Array:
		return TypeArray
	case *Dictionary:
		return TypeDictionary
	case *Stream:
		return TypeStream
	case *IndirectReference:
		return TypeReference
	default:
		return Type(-1)
	}
}

// Clone deep-copies a PDF object; containers copy their elements, streams
// copy dictionary and content. Unknown types clone to nil.
func Clone(obj PdfObject) PdfObject {
	switch o := obj.(type) {
	case *Null:
		return NewNull()
	case *Boolean:
		return NewBoolean(o.Value())
	case *Integer:
		return NewInteger(o.Value())
	case *Real:
		return NewReal(o.Value())
	case *String:
		return NewString(o.Value())
	case *Name:
		return NewName(o.Value())
	case *Array:
		return o.Clone()
	case *Dictionary:
		return o.Clone()
	case *IndirectReference:
		return o.Clone()
	case *Stream:
		return o.Clone()
	default:
		return nil
	}
}
