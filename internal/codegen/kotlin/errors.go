package kotlin

import (
	"fmt"

	"github.com/componentry/ffigen/internal/schema"
)

// UnsupportedTypeError reports a type reference the Kotlin mapper
// cannot express, together with the interface item that referenced it.
// Generation of that item aborts; sibling items are unaffected.
type UnsupportedTypeError struct {
	Type schema.TypeReference
	Item string

	// Detail explains restrictions narrower than the type kind itself,
	// e.g. buffers being fine at the call boundary but not inside
	// composite encodings.
	Detail string
}

func (e *UnsupportedTypeError) Error() string {
	msg := fmt.Sprintf("unsupported type %s", e.Type)
	if e.Item != "" {
		msg += fmt.Sprintf(" referenced by %s", e.Item)
	}
	if e.Detail != "" {
		msg += fmt.Sprintf(" (%s)", e.Detail)
	}
	return msg
}

func unsupported(t schema.TypeReference) error {
	return &UnsupportedTypeError{Type: t}
}

func unsupportedNested(t schema.TypeReference) error {
	return &UnsupportedTypeError{Type: t, Detail: "native buffers cannot nest inside composite values"}
}

// itemErr stamps err with the item whose generation failed, so every
// diagnostic names both the offending type and its declaring item.
func itemErr(item string, err error) error {
	if ute, ok := err.(*UnsupportedTypeError); ok && ute.Item == "" {
		ute.Item = item
		return ute
	}
	return fmt.Errorf("%s: %w", item, err)
}
