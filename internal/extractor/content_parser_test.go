package extractor

import (
	"testing"

	pdf "github.com/coregx/pdftab/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOps(t *testing.T, content string) []*Operator {
	t.Helper()
	ops, err := NewContentParser([]byte(content)).ParseOperators()
	require.NoError(t, err)
	return ops
}

func TestContentParser_OperandsAttachToOperator(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		op       string
		operands int
	}{
		{"bare operator", "BT", "BT", 0},
		{"two integers", "100 200 Td", "Td", 2},
		{"negative and real", "-100 200.75 Td", "Td", 2},
		{"string operand", "(Hello, World!) Tj", "Tj", 1},
		{"name and size", "/F1 12 Tf", "Tf", 2},
		{"six matrix entries", "1 0 0 1 100 200 Tm", "Tm", 6},
		{"rectangle", "10 20 80 5 re", "re", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops := parseOps(t, tt.content)
			require.Len(t, ops, 1)
			assert.Equal(t, tt.op, ops[0].Name)
			assert.Len(t, ops[0].Operands, tt.operands)
		})
	}
}

func TestContentParser_OperatorSequence(t *testing.T) {
	ops := parseOps(t, `
		BT
		/F1 12 Tf
		100 200 Td
		(Hello) Tj
		ET
	`)

	var names []string
	for _, op := range ops {
		names = append(names, op.Name)
	}
	assert.Equal(t, []string{"BT", "Tf", "Td", "Tj", "ET"}, names)
}

func TestContentParser_OperandTypes(t *testing.T) {
	ops := parseOps(t, "/F2 10.5 Tf")
	require.Len(t, ops, 1)

	name, ok := ops[0].Operands[0].(*pdf.Name)
	require.True(t, ok)
	assert.Equal(t, "F2", name.Value())

	size, ok := ops[0].Operands[1].(*pdf.Real)
	require.True(t, ok)
	assert.Equal(t, 10.5, size.Value())
}

func TestContentParser_TJArrayOperand(t *testing.T) {
	// TJ mixes strings and kerning adjustments in one array operand
	ops := parseOps(t, "[(Te) 120 (xt)] TJ")
	require.Len(t, ops, 1)
	require.Len(t, ops[0].Operands, 1)

	arr, ok := ops[0].Operands[0].(*pdf.Array)
	require.True(t, ok)
	assert.Equal(t, 3, arr.Len())
}

func TestContentParser_DictionaryOperand(t *testing.T) {
	ops := parseOps(t, "/MC0 <</MCID 3>> BDC")
	require.Len(t, ops, 1)
	require.Len(t, ops[0].Operands, 2)

	dict, ok := ops[0].Operands[1].(*pdf.Dictionary)
	require.True(t, ok)
	assert.Equal(t, int64(3), dict.GetInteger("MCID"))
}

func TestContentParser_EmptyAndComments(t *testing.T) {
	assert.Empty(t, parseOps(t, ""))

	ops := parseOps(t, "% leading comment\nBT\n% interior\nET")
	require.Len(t, ops, 2)
	assert.Equal(t, "BT", ops[0].Name)
	assert.Equal(t, "ET", ops[1].Name)
}

func TestContentParser_WhitespaceVariations(t *testing.T) {
	for _, content := range []string{"100 200 Td", "100\t200\tTd", "100\n200\nTd"} {
		ops := parseOps(t, content)
		require.Len(t, ops, 1)
		assert.Len(t, ops[0].Operands, 2)
	}
}

func TestContentParser_UnbalancedArray(t *testing.T) {
	_, err := NewContentParser([]byte("[(Te) 120 TJ")).ParseOperators()
	assert.Error(t, err)
}

func TestOperator_String(t *testing.T) {
	op := NewOperator("Tj", nil)
	assert.Contains(t, op.String(), "Tj")
	assert.Contains(t, op.String(), "operands=0")
}
