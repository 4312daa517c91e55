package kotlin

import (
	"fmt"

	"github.com/componentry/ffigen/internal/schema"
)

// indentUnit is the relative indentation embedded in multi-line
// statement blocks; it matches the generator's writer indentation.
const indentUnit = "    "

// SizeExpr returns a Kotlin expression computing the exact number of
// bytes value occupies on the wire, recursively over t. The result
// funds a single native allocation; encoding never grows the buffer.
func SizeExpr(t schema.TypeReference, value string) (string, error) {
	fresh := 0
	return sizeExpr(t, value, &fresh)
}

func sizeExpr(t schema.TypeReference, value string, fresh *int) (string, error) {
	switch t.Kind {
	case schema.KindBoolean:
		return "1", nil
	case schema.KindU32, schema.KindFloat:
		return "4", nil
	case schema.KindU64, schema.KindDouble:
		return "8", nil
	case schema.KindString:
		return fmt.Sprintf("serializedStringSize(%s)", value), nil
	case schema.KindEnum, schema.KindRecord:
		return fmt.Sprintf("%s.serializeForRustSize()", value), nil
	case schema.KindOptional:
		*fresh++
		v := fmt.Sprintf("_v%d", *fresh)
		inner, err := sizeOfPresent(*t.Inner, v, fresh)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(1 + (%s?.let { %s -> %s } ?: 0))", value, v, inner), nil
	case schema.KindBytes:
		return "", unsupportedNested(t)
	default:
		return "", unsupported(t)
	}
}

// sizeOfPresent sizes a value already known to be non-null. Nested
// optional levels still contribute their presence byte: the host
// surface collapses nested nullability, so a present value is present
// at every remaining level of the chain.
func sizeOfPresent(t schema.TypeReference, value string, fresh *int) (string, error) {
	if t.Kind == schema.KindOptional {
		inner, err := sizeOfPresent(*t.Inner, value, fresh)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(1 + %s)", inner), nil
	}
	return sizeExpr(t, value, fresh)
}

// WriteStmts returns Kotlin statements encoding value into a
// big-endian ByteBuffer named buf, recursively over t. The value
// expression must be a local val or parameter so null checks on
// optional levels smart-cast it.
func WriteStmts(t schema.TypeReference, value string) ([]string, error) {
	return writeStmts(t, value, false)
}

func writeStmts(t schema.TypeReference, value string, knownPresent bool) ([]string, error) {
	switch t.Kind {
	case schema.KindBoolean:
		return []string{fmt.Sprintf("buf.put(if (%s) 1.toByte() else 0.toByte())", value)}, nil
	case schema.KindU32:
		return []string{fmt.Sprintf("buf.putInt(%s)", value)}, nil
	case schema.KindU64:
		return []string{fmt.Sprintf("buf.putLong(%s)", value)}, nil
	case schema.KindFloat:
		return []string{fmt.Sprintf("buf.putFloat(%s)", value)}, nil
	case schema.KindDouble:
		return []string{fmt.Sprintf("buf.putDouble(%s)", value)}, nil
	case schema.KindString:
		return []string{fmt.Sprintf("serializeStringInto(%s, buf)", value)}, nil
	case schema.KindEnum, schema.KindRecord:
		return []string{fmt.Sprintf("%s.serializeForRustInto(buf)", value)}, nil
	case schema.KindOptional:
		inner, err := writeStmts(*t.Inner, value, true)
		if err != nil {
			return nil, err
		}
		if knownPresent {
			// The value survived an enclosing null check, so this level's
			// presence byte is unconditional.
			return append([]string{"buf.put(1.toByte())"}, inner...), nil
		}
		lines := []string{
			fmt.Sprintf("if (%s == null) {", value),
			indentUnit + "buf.put(0.toByte())",
			"} else {",
			indentUnit + "buf.put(1.toByte())",
		}
		for _, l := range inner {
			lines = append(lines, indentUnit+l)
		}
		lines = append(lines, "}")
		return lines, nil
	case schema.KindBytes:
		return nil, unsupportedNested(t)
	default:
		return nil, unsupported(t)
	}
}

// ReadExpr returns a Kotlin expression decoding one value of type t
// from a big-endian ByteBuffer named buf. Reads advance the buffer;
// field boundaries come entirely from the type schema.
func ReadExpr(t schema.TypeReference) (string, error) {
	switch t.Kind {
	case schema.KindBoolean:
		return "(buf.get().toInt() != 0)", nil
	case schema.KindU32:
		return "buf.getInt()", nil
	case schema.KindU64:
		return "buf.getLong()", nil
	case schema.KindFloat:
		return "buf.getFloat()", nil
	case schema.KindDouble:
		return "buf.getDouble()", nil
	case schema.KindString:
		return "deserializeString(buf)", nil
	case schema.KindEnum, schema.KindRecord:
		return fmt.Sprintf("%s.deserializeItemFromRust(buf)", t.Name), nil
	case schema.KindOptional:
		inner, err := ReadExpr(*t.Inner)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(if (buf.get().toInt() == 0) null else %s)", inner), nil
	case schema.KindBytes:
		return "", unsupportedNested(t)
	default:
		return "", unsupported(t)
	}
}
