package parser

import "fmt"

// IndirectObject is a numbered object definition: "N G obj ... endobj".
type IndirectObject struct {
	Number     int
	Generation int
	Object     PdfObject
}

// NewIndirectObject wraps obj as object (number, generation).
func NewIndirectObject(number, generation int, obj PdfObject) *IndirectObject {
	return &IndirectObject{Number: number, Generation: generation, Object: obj}
}

// String renders the definition in PDF syntax.
func (o *IndirectObject) String() string {
	return fmt.Sprintf("%d %d obj %v endobj", o.Number, o.Generation, o.Object)
}

// IndirectReference is a pointer to a numbered object: "N G R". The reader
// resolves these through the cross-reference table.
type IndirectReference struct {
	Number     int
	Generation int
}

// NewIndirectReference creates a reference to object (number, generation).
func NewIndirectReference(number, generation int) *IndirectReference {
	return &IndirectReference{Number: number, Generation: generation}
}

// String renders the reference in PDF syntax.
func (r *IndirectReference) String() string {
	return fmt.Sprintf("%d %d R", r.Number, r.Generation)
}

// Equals reports whether both references name the same object.
func (r *IndirectReference) Equals(other *IndirectReference) bool {
	return other != nil && r.Number == other.Number && r.Generation == other.Generation
}

// Clone copies the reference.
func (r *IndirectReference) Clone() *IndirectReference {
	return &IndirectReference{Number: r.Number, Generation: r.Generation}
}
