package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArray_AppendGetLen(t *testing.T) {
	arr := NewArray()
	assert.Equal(t, 0, arr.Len())

	arr.Append(NewInteger(1))
	arr.AppendAll(NewInteger(2), NewName("x"))

	require.Equal(t, 3, arr.Len())
	assert.Equal(t, int64(2), arr.Get(1).(*Integer).Value())
	assert.Nil(t, arr.Get(-1))
	assert.Nil(t, arr.Get(3))
}

func TestArray_SetInsertRemove(t *testing.T) {
	arr := NewArrayFromSlice([]PdfObject{NewInteger(1), NewInteger(3)})

	require.NoError(t, arr.Insert(1, NewInteger(2)))
	assert.Equal(t, "[1 2 3]", arr.String())

	require.NoError(t, arr.Set(0, NewInteger(0)))
	assert.Equal(t, "[0 2 3]", arr.String())

	require.NoError(t, arr.Remove(1))
	assert.Equal(t, "[0 3]", arr.String())

	assert.Error(t, arr.Set(9, NewNull()))
	assert.Error(t, arr.Insert(-1, NewNull()))
	assert.Error(t, arr.Remove(9))
}

func TestArray_ElementsIsACopy(t *testing.T) {
	arr := NewArrayFromSlice([]PdfObject{NewInteger(1)})
	elems := arr.Elements()
	elems[0] = NewInteger(99)

	assert.Equal(t, int64(1), arr.Get(0).(*Integer).Value())
}

func TestArray_StringRendersNilAsNull(t *testing.T) {
	arr := NewArray()
	arr.Append(NewInteger(1))
	arr.Append(nil)
	assert.Equal(t, "[1 null]", arr.String())
}

func TestArray_CloneIsDeep(t *testing.T) {
	inner := NewArray()
	inner.Append(NewInteger(1))
	arr := NewArray()
	arr.Append(inner)

	cloned := arr.Clone()
	inner.Append(NewInteger(2))

	assert.Equal(t, 2, inner.Len())
	assert.Equal(t, 1, cloned.Get(0).(*Array).Len())
}

func TestArray_Clear(t *testing.T) {
	arr := NewArrayFromSlice([]PdfObject{NewInteger(1), NewInteger(2)})
	arr.Clear()
	assert.Equal(t, 0, arr.Len())
}

func TestDictionary_SetGetHas(t *testing.T) {
	d := NewDictionary()
	assert.Equal(t, 0, d.Len())
	assert.False(t, d.Has("Type"))

	d.SetName("Type", "Page")
	d.SetInteger("Count", 3)
	d.SetReal("Scale", 0.5)
	d.SetBoolean("Open", true)
	d.SetString("Title", "Report")

	assert.Equal(t, 5, d.Len())
	assert.True(t, d.Has("Type"))
	assert.Equal(t, "Page", d.GetName("Type").Value())
	assert.Equal(t, int64(3), d.GetInteger("Count"))
	assert.Equal(t, 0.5, d.GetReal("Scale"))
	assert.True(t, d.GetBoolean("Open"))
	assert.Equal(t, "Report", d.GetString("Title"))
}

func TestDictionary_TypedGettersRejectWrongTypes(t *testing.T) {
	d := NewDictionary()
	d.SetString("Key", "text")

	assert.Nil(t, d.GetName("Key"))
	assert.Nil(t, d.GetArray("Key"))
	assert.Nil(t, d.GetDictionary("Key"))
	assert.Equal(t, int64(0), d.GetInteger("Key"))
	assert.Equal(t, 0.0, d.GetReal("Missing"))
	assert.False(t, d.GetBoolean("Missing"))
	assert.Equal(t, "", d.GetString("Missing"))
	assert.Nil(t, d.Get("Missing"))
}

func TestDictionary_KeysKeepInsertionOrder(t *testing.T) {
	d := NewDictionary()
	d.SetInteger("C", 1)
	d.SetInteger("A", 2)
	d.SetInteger("B", 3)
	d.SetInteger("A", 4) // overwrite keeps position

	assert.Equal(t, []string{"C", "A", "B"}, d.Keys())
	assert.Equal(t, []string{"A", "B", "C"}, d.KeysSorted())
	assert.Equal(t, int64(4), d.GetInteger("A"))
	assert.Equal(t, "<</C 1 /A 4 /B 3>>", d.String())
}

func TestDictionary_Remove(t *testing.T) {
	d := NewDictionary()
	d.SetInteger("A", 1)
	d.SetInteger("B", 2)

	d.Remove("A")
	assert.False(t, d.Has("A"))
	assert.Equal(t, []string{"B"}, d.Keys())

	d.Remove("NotThere") // no-op
	assert.Equal(t, 1, d.Len())
}

func TestDictionary_Clear(t *testing.T) {
	d := NewDictionary()
	d.SetInteger("A", 1)
	d.Clear()
	assert.Equal(t, 0, d.Len())
	assert.Empty(t, d.Keys())
}

func TestDictionary_CloneIsDeep(t *testing.T) {
	inner := NewDictionary()
	inner.SetInteger("N", 1)
	d := NewDictionary()
	d.Set("Inner", inner)

	cloned := d.Clone()
	inner.SetInteger("N", 99)

	assert.Equal(t, int64(1), cloned.GetDictionary("Inner").GetInteger("N"))
}

func TestDictionary_Merge(t *testing.T) {
	base := NewDictionary()
	base.SetInteger("A", 1)
	base.SetInteger("B", 2)

	patch := NewDictionary()
	patch.SetInteger("B", 20)
	patch.SetInteger("C", 30)

	base.Merge(patch)
	assert.Equal(t, int64(1), base.GetInteger("A"))
	assert.Equal(t, int64(20), base.GetInteger("B"))
	assert.Equal(t, int64(30), base.GetInteger("C"))

	base.Merge(nil) // no-op
	assert.Equal(t, 3, base.Len())
}

func TestDictionary_NestedPageTreeShape(t *testing.T) {
	kids := NewArray()
	kids.Append(NewIndirectReference(3, 0))

	pages := NewDictionary()
	pages.SetName("Type", "Pages")
	pages.Set("Kids", kids)
	pages.SetInteger("Count", 1)

	assert.Equal(t, 1, pages.GetArray("Kids").Len())
	assert.Equal(t, "<</Type /Pages /Kids [3 0 R] /Count 1>>", pages.String())
}
