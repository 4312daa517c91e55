package kotlin

import (
	"strings"

	"github.com/componentry/ffigen/internal/schema"
)

// FFIType maps a type reference to its JNA declaration at the
// foreign-call boundary. The same mapping serves arguments and
// returns: scalars cross as fixed-width JVM primitives, Boolean as a
// single byte, enums as their ordinal, and everything composite as a
// buffer by value.
func FFIType(t schema.TypeReference) (string, error) {
	switch t.Kind {
	case schema.KindBoolean:
		return "Byte", nil
	case schema.KindU32:
		return "Int", nil
	case schema.KindU64:
		return "Long", nil
	case schema.KindFloat:
		return "Float", nil
	case schema.KindDouble:
		return "Double", nil
	case schema.KindString:
		return "String", nil
	case schema.KindEnum:
		return "Int", nil
	case schema.KindBytes, schema.KindRecord, schema.KindOptional:
		return "RustBuffer.ByValue", nil
	default:
		return "", unsupported(t)
	}
}

// SurfaceType maps a type reference to the Kotlin type used in
// generated public signatures and record fields. Optional maps to a
// nullable type; Kotlin collapses nested nullability, so optional
// chains share one surface type while their wire encodings stay
// distinct per nesting level.
func SurfaceType(t schema.TypeReference) (string, error) {
	switch t.Kind {
	case schema.KindBoolean:
		return "Boolean", nil
	case schema.KindU32:
		return "Int", nil
	case schema.KindU64:
		return "Long", nil
	case schema.KindFloat:
		return "Float", nil
	case schema.KindDouble:
		return "Double", nil
	case schema.KindString:
		return "String", nil
	case schema.KindBytes:
		return "RustBuffer.ByValue", nil
	case schema.KindEnum, schema.KindRecord:
		return t.Name, nil
	case schema.KindOptional:
		inner, err := SurfaceType(*t.Inner)
		if err != nil {
			return "", err
		}
		if strings.HasSuffix(inner, "?") {
			return inner, nil
		}
		return inner + "?", nil
	default:
		return "", unsupported(t)
	}
}
