package kotlin

import (
	"fmt"
	"strings"

	"github.com/componentry/ffigen/internal/schema"
)

// LowerExpr returns the Kotlin expression converting a host value to
// its foreign-call representation. Scalars, strings, and buffers pass
// through; Boolean and Enum convert to their integer forms; Record and
// Optional serialize into a freshly allocated native buffer, so their
// lower expression may span multiple lines.
func LowerExpr(t schema.TypeReference, value string) (string, error) {
	switch t.Kind {
	case schema.KindBoolean:
		return fmt.Sprintf("(if (%s) 1.toByte() else 0.toByte())", value), nil
	case schema.KindU32, schema.KindU64, schema.KindFloat, schema.KindDouble,
		schema.KindString, schema.KindBytes:
		return value, nil
	case schema.KindEnum:
		return fmt.Sprintf("(%s.ordinal + 1)", value), nil
	case schema.KindRecord:
		return fmt.Sprintf("%s.serializeForRust()", value), nil
	case schema.KindOptional:
		size, err := SizeExpr(t, value)
		if err != nil {
			return "", err
		}
		stmts, err := WriteStmts(t, value)
		if err != nil {
			return "", err
		}
		lines := []string{fmt.Sprintf("lowerIntoRustBuffer(%s) { buf ->", size)}
		for _, s := range stmts {
			lines = append(lines, indentUnit+s)
		}
		lines = append(lines, "}")
		return strings.Join(lines, "\n"), nil
	default:
		return "", unsupported(t)
	}
}

// LiftExpr returns the Kotlin expression reconstructing a host value
// from a foreign-call result. Buffer-backed types decode through
// liftFromRustBuffer, which frees the buffer whether or not decoding
// succeeds; an enum ordinal outside the declared range fails hard
// inside fromOrdinal.
func LiftExpr(t schema.TypeReference, value string) (string, error) {
	switch t.Kind {
	case schema.KindBoolean:
		return fmt.Sprintf("(%s.toInt() != 0)", value), nil
	case schema.KindU32, schema.KindU64, schema.KindFloat, schema.KindDouble,
		schema.KindString, schema.KindBytes:
		return value, nil
	case schema.KindEnum:
		return fmt.Sprintf("%s.fromOrdinal(%s)", t.Name, value), nil
	case schema.KindRecord:
		return fmt.Sprintf("liftFromRustBuffer(%s) { buf -> %s.deserializeItemFromRust(buf) }", value, t.Name), nil
	case schema.KindOptional:
		read, err := ReadExpr(t)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("liftFromRustBuffer(%s) { buf -> %s }", value, read), nil
	default:
		return "", unsupported(t)
	}
}
