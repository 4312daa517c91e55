package schema

import "fmt"

// TypeKind discriminates the variants of the closed type grammar.
type TypeKind string

const (
	KindBoolean  TypeKind = "boolean"
	KindU32      TypeKind = "u32"
	KindU64      TypeKind = "u64"
	KindFloat    TypeKind = "float"
	KindDouble   TypeKind = "double"
	KindString   TypeKind = "string"
	KindBytes    TypeKind = "bytes"
	KindEnum     TypeKind = "enum"
	KindRecord   TypeKind = "record"
	KindOptional TypeKind = "optional"
	KindObject   TypeKind = "object"
)

// TypeReference is one node of the recursive type grammar. Name is set
// for enum/record/object references, Inner for optional wrappers.
type TypeReference struct {
	Kind  TypeKind       `json:"kind"`
	Name  string         `json:"name,omitempty"`
	Inner *TypeReference `json:"inner,omitempty"`
}

// Constructors for each grammar variant, so callers build type trees
// without struct literals.

func Boolean() TypeReference { return TypeReference{Kind: KindBoolean} }

func U32() TypeReference { return TypeReference{Kind: KindU32} }

func U64() TypeReference { return TypeReference{Kind: KindU64} }

func Float() TypeReference { return TypeReference{Kind: KindFloat} }

func Double() TypeReference { return TypeReference{Kind: KindDouble} }

func String() TypeReference { return TypeReference{Kind: KindString} }

func Bytes() TypeReference { return TypeReference{Kind: KindBytes} }

func Enum(name string) TypeReference { return TypeReference{Kind: KindEnum, Name: name} }

func Record(name string) TypeReference { return TypeReference{Kind: KindRecord, Name: name} }

func Object(name string) TypeReference { return TypeReference{Kind: KindObject, Name: name} }

func Optional(inner TypeReference) TypeReference {
	return TypeReference{Kind: KindOptional, Inner: &inner}
}

// String renders the reference the way diagnostics print it, e.g.
// "Optional(Record(Point))".
func (t TypeReference) String() string {
	switch t.Kind {
	case KindBoolean:
		return "Boolean"
	case KindU32:
		return "U32"
	case KindU64:
		return "U64"
	case KindFloat:
		return "Float"
	case KindDouble:
		return "Double"
	case KindString:
		return "String"
	case KindBytes:
		return "Bytes"
	case KindEnum:
		return fmt.Sprintf("Enum(%s)", t.Name)
	case KindRecord:
		return fmt.Sprintf("Record(%s)", t.Name)
	case KindObject:
		return fmt.Sprintf("Object(%s)", t.Name)
	case KindOptional:
		return fmt.Sprintf("Optional(%s)", t.Inner)
	default:
		return fmt.Sprintf("Unknown(%s)", string(t.Kind))
	}
}

// EnumDefinition is a named enum with ordered values. A value's wire
// encoding is its 1-based position in Values; order is part of the
// binary contract and must never be reordered.
type EnumDefinition struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Ordinal returns the 1-based wire ordinal for a value name, or 0 if
// the value is not declared.
func (e EnumDefinition) Ordinal(value string) int {
	for i, v := range e.Values {
		if v == value {
			return i + 1
		}
	}
	return 0
}

// ValueAt returns the value name for a 1-based wire ordinal.
func (e EnumDefinition) ValueAt(ordinal int) (string, bool) {
	if ordinal < 1 || ordinal > len(e.Values) {
		return "", false
	}
	return e.Values[ordinal-1], true
}

// Field is one named, typed field of a record.
type Field struct {
	Name string        `json:"name"`
	Type TypeReference `json:"type"`
}

// RecordDefinition is a named record. Its wire form is the
// concatenation of field encodings in declared order — no tags, no
// padding; both sides reconstruct boundaries from this schema.
type RecordDefinition struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// Argument is one named, typed function argument.
type Argument struct {
	Name string        `json:"name"`
	Type TypeReference `json:"type"`
}

// FunctionDefinition maps 1:1 to exactly one foreign entry point.
// Return is nil for functions with no return value.
type FunctionDefinition struct {
	Name      string         `json:"name"`
	Arguments []Argument     `json:"arguments"`
	Return    *TypeReference `json:"return,omitempty"`
}

// ObjectDefinition is a named object interface. No generator supports
// objects yet; any reference to one fails that item's generation.
type ObjectDefinition struct {
	Name string `json:"name"`
}

// InterfaceModel is the parsed public surface of a native component:
// a namespace plus ordered item collections. It is handed in whole,
// already validated upstream, and never mutated during generation.
type InterfaceModel struct {
	Namespace string               `json:"namespace"`
	Enums     []EnumDefinition     `json:"enums"`
	Records   []RecordDefinition   `json:"records"`
	Functions []FunctionDefinition `json:"functions"`
	Objects   []ObjectDefinition   `json:"objects"`
}

// FindEnum returns the enum definition with the given name.
func (m *InterfaceModel) FindEnum(name string) (EnumDefinition, bool) {
	for _, e := range m.Enums {
		if e.Name == name {
			return e, true
		}
	}
	return EnumDefinition{}, false
}

// FindRecord returns the record definition with the given name.
func (m *InterfaceModel) FindRecord(name string) (RecordDefinition, bool) {
	for _, r := range m.Records {
		if r.Name == name {
			return r, true
		}
	}
	return RecordDefinition{}, false
}
