package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeReference_String(t *testing.T) {
	// Test: Every grammar variant renders its diagnostic form
	tests := []struct {
		ref  TypeReference
		want string
	}{
		{Boolean(), "Boolean"},
		{U32(), "U32"},
		{U64(), "U64"},
		{Float(), "Float"},
		{Double(), "Double"},
		{String(), "String"},
		{Bytes(), "Bytes"},
		{Enum("Color"), "Enum(Color)"},
		{Record("Point"), "Record(Point)"},
		{Object("Counter"), "Object(Counter)"},
		{Optional(U32()), "Optional(U32)"},
		{Optional(Optional(Record("Point"))), "Optional(Optional(Record(Point)))"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.ref.String())
	}
}

func TestTypeReference_String_UnknownKind(t *testing.T) {
	// Test: An out-of-grammar kind still renders something identifiable
	ref := TypeReference{Kind: TypeKind("map")}
	assert.Equal(t, "Unknown(map)", ref.String())
}

func TestOptional_CopiesInner(t *testing.T) {
	// Test: Optional captures its own copy of the inner reference
	inner := U32()
	opt := Optional(inner)
	inner.Kind = KindU64

	require.NotNil(t, opt.Inner)
	assert.Equal(t, KindU32, opt.Inner.Kind)
}

func TestEnumDefinition_Ordinal(t *testing.T) {
	// Test: Ordinals are 1-based positions in declared order
	e := EnumDefinition{Name: "Color", Values: []string{"A", "B", "C"}}

	assert.Equal(t, 1, e.Ordinal("A"))
	assert.Equal(t, 2, e.Ordinal("B"))
	assert.Equal(t, 3, e.Ordinal("C"))
	assert.Equal(t, 0, e.Ordinal("D"))
}

func TestEnumDefinition_ValueAt(t *testing.T) {
	// Test: ValueAt reverses Ordinal and rejects out-of-range ordinals
	e := EnumDefinition{Name: "Color", Values: []string{"A", "B", "C"}}

	v, ok := e.ValueAt(2)
	require.True(t, ok)
	assert.Equal(t, "B", v)

	_, ok = e.ValueAt(0)
	assert.False(t, ok)

	_, ok = e.ValueAt(4)
	assert.False(t, ok)
}

func TestInterfaceModel_FindEnum(t *testing.T) {
	// Test: Enum lookup by name
	m := &InterfaceModel{
		Namespace: "demo",
		Enums: []EnumDefinition{
			{Name: "Color", Values: []string{"RED", "GREEN"}},
			{Name: "Shape", Values: []string{"CIRCLE"}},
		},
	}

	e, ok := m.FindEnum("Shape")
	require.True(t, ok)
	assert.Equal(t, []string{"CIRCLE"}, e.Values)

	_, ok = m.FindEnum("Size")
	assert.False(t, ok)
}

func TestInterfaceModel_FindRecord(t *testing.T) {
	// Test: Record lookup by name
	m := &InterfaceModel{
		Namespace: "demo",
		Records: []RecordDefinition{
			{Name: "Point", Fields: []Field{{Name: "x", Type: U32()}}},
		},
	}

	r, ok := m.FindRecord("Point")
	require.True(t, ok)
	require.Len(t, r.Fields, 1)
	assert.Equal(t, "x", r.Fields[0].Name)

	_, ok = m.FindRecord("Line")
	assert.False(t, ok)
}
