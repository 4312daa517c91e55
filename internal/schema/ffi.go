package schema

import "fmt"

// Suffixes of the two buffer lifecycle entry points every component
// exports alongside its own functions.
const (
	bufferAllocSuffix = "bytebuffer_alloc"
	bufferFreeSuffix  = "bytebuffer_free"
)

// ForeignFunction is one native entry point: its exported symbol name
// plus typed arguments and optional return. Derived from the model at
// generation time, never persisted.
type ForeignFunction struct {
	Symbol    string
	Arguments []Argument
	Return    *TypeReference
}

// FFISymbolName returns the exported native symbol for a model-level
// function name: "<namespace>_<name>".
func (m *InterfaceModel) FFISymbolName(name string) string {
	return fmt.Sprintf("%s_%s", m.Namespace, name)
}

// BufferAllocFn is the native buffer-allocation entry point: takes a
// byte count, returns a length+pointer buffer by value.
func (m *InterfaceModel) BufferAllocFn() ForeignFunction {
	ret := Bytes()
	return ForeignFunction{
		Symbol:    m.FFISymbolName(bufferAllocSuffix),
		Arguments: []Argument{{Name: "size", Type: U32()}},
		Return:    &ret,
	}
}

// BufferFreeFn is the native buffer-free entry point: takes a buffer
// previously returned by the component, releases it.
func (m *InterfaceModel) BufferFreeFn() ForeignFunction {
	return ForeignFunction{
		Symbol:    m.FFISymbolName(bufferFreeSuffix),
		Arguments: []Argument{{Name: "buf", Type: Bytes()}},
	}
}

// ForeignFunctions lists every native entry point the generated
// bindings call: the buffer lifecycle pair first, then one entry per
// model function in declared order.
func (m *InterfaceModel) ForeignFunctions() []ForeignFunction {
	fns := make([]ForeignFunction, 0, len(m.Functions)+2)
	fns = append(fns, m.BufferAllocFn(), m.BufferFreeFn())
	for _, f := range m.Functions {
		fns = append(fns, ForeignFunction{
			Symbol:    m.FFISymbolName(f.Name),
			Arguments: f.Arguments,
			Return:    f.Return,
		})
	}
	return fns
}
