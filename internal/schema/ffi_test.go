package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFFISymbolName(t *testing.T) {
	// Test: Symbols are namespace-prefixed with an underscore
	m := &InterfaceModel{Namespace: "geometry"}
	assert.Equal(t, "geometry_translate", m.FFISymbolName("translate"))
}

func TestBufferLifecycleEntryPoints(t *testing.T) {
	// Test: Alloc takes a u32 size and returns a buffer; free takes a buffer
	m := &InterfaceModel{Namespace: "geometry"}

	alloc := m.BufferAllocFn()
	assert.Equal(t, "geometry_bytebuffer_alloc", alloc.Symbol)
	require.Len(t, alloc.Arguments, 1)
	assert.Equal(t, KindU32, alloc.Arguments[0].Type.Kind)
	require.NotNil(t, alloc.Return)
	assert.Equal(t, KindBytes, alloc.Return.Kind)

	free := m.BufferFreeFn()
	assert.Equal(t, "geometry_bytebuffer_free", free.Symbol)
	require.Len(t, free.Arguments, 1)
	assert.Equal(t, KindBytes, free.Arguments[0].Type.Kind)
	assert.Nil(t, free.Return)
}

func TestForeignFunctions_OrderAndShape(t *testing.T) {
	// Test: Lifecycle pair first, then model functions in declared order
	ret := Record("Point")
	m := &InterfaceModel{
		Namespace: "geometry",
		Functions: []FunctionDefinition{
			{Name: "translate", Arguments: []Argument{{Name: "p", Type: Record("Point")}}, Return: &ret},
			{Name: "reset"},
		},
	}

	fns := m.ForeignFunctions()
	require.Len(t, fns, 4)

	assert.Equal(t, "geometry_bytebuffer_alloc", fns[0].Symbol)
	assert.Equal(t, "geometry_bytebuffer_free", fns[1].Symbol)

	assert.Equal(t, "geometry_translate", fns[2].Symbol)
	require.Len(t, fns[2].Arguments, 1)
	assert.Equal(t, "p", fns[2].Arguments[0].Name)
	require.NotNil(t, fns[2].Return)
	assert.Equal(t, "Point", fns[2].Return.Name)

	assert.Equal(t, "geometry_reset", fns[3].Symbol)
	assert.Empty(t, fns[3].Arguments)
	assert.Nil(t, fns[3].Return)
}
