package extractor

import "fmt"

// TextState carries the text-positioning state the receiver threads through
// one content stream: the text matrix and line matrix plus the Tf/Tc/Tw/
// Tz/TL/Ts parameters that scale glyph advances.
type TextState struct {
	Tm  Matrix // current text matrix
	Tlm Matrix // line matrix, the start of the current line

	FontName   string
	FontSize   float64
	CharSpace  float64
	WordSpace  float64
	HorizScale float64 // percent; 100 is unscaled
	Leading    float64
	Rise       float64
}

// NewTextState returns the state a fresh content stream starts from.
func NewTextState() *TextState {
	return &TextState{Tm: Identity(), Tlm: Identity(), HorizScale: 100}
}

// Reset reinitializes both matrices to identity, the effect of the BT
// operator. Font and spacing parameters persist across text objects.
func (ts *TextState) Reset() {
	ts.Tm = Identity()
	ts.Tlm = Identity()
}

// SetTextMatrix replaces both matrices (Tm operator).
func (ts *TextState) SetTextMatrix(a, b, c, d, e, f float64) {
	ts.Tm = NewMatrix(a, b, c, d, e, f)
	ts.Tlm = ts.Tm
}

// Translate moves the line start by (tx, ty) and rebases the text matrix
// there (Td operator).
func (ts *TextState) Translate(tx, ty float64) {
	ts.Tlm = ts.Tlm.Multiply(Translation(tx, ty))
	ts.Tm = ts.Tlm
}

// TranslateSetLeading is the TD operator: set leading to -ty, then Td.
func (ts *TextState) TranslateSetLeading(tx, ty float64) {
	ts.Leading = -ty
	ts.Translate(tx, ty)
}

// MoveToNextLine is the T* operator: descend by the current leading.
func (ts *TextState) MoveToNextLine() {
	ts.Translate(0, -ts.Leading)
}

// SetFont records the Tf operator's font resource name and size.
func (ts *TextState) SetFont(fontName string, fontSize float64) {
	ts.FontName = fontName
	ts.FontSize = fontSize
}

// AdvanceX moves the text matrix right by width in text space, the cursor
// motion of showing a glyph.
func (ts *TextState) AdvanceX(width float64) {
	ts.Tm = ts.Tm.Multiply(Translation(width, 0))
}

// String returns a debug representation of the state.
func (ts *TextState) String() string {
	x, y := ts.Tm.Transform(0, 0)
	return fmt.Sprintf("TextState{font=%s, size=%.1f, pos=(%.2f, %.2f)}", ts.FontName, ts.FontSize, x, y)
}
