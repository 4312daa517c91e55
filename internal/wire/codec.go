// Package wire implements the binary encoding shared between generated
// bindings and the native component, over plain Go values. It is the
// executable form of the contract the Kotlin generator emits: the two
// must produce identical bytes for identical values.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/componentry/ffigen/internal/schema"
)

var (
	// ErrTrailingBytes indicates a decode consumed fewer bytes than the
	// buffer holds; the bindings and the component disagree about the
	// schema.
	ErrTrailingBytes = errors.New("trailing bytes after decoding")

	// ErrInvalidOrdinal indicates an enum ordinal outside the declared
	// value range; generated code and the component are version-skewed.
	ErrInvalidOrdinal = errors.New("enum ordinal out of range")

	// ErrShortBuffer indicates a decode ran past the end of the buffer.
	ErrShortBuffer = errors.New("buffer too short")
)

// Enum is an enum value carried by its declared name. Its wire form is
// the value's 1-based ordinal in the definition, as a 32-bit integer.
type Enum struct {
	Value string
}

// Opt is one level of optionality. Nested optionals nest Opt values;
// each level contributes its own presence byte on the wire.
type Opt struct {
	Present bool
	Value   any
}

// Some wraps a present value.
func Some(v any) Opt { return Opt{Present: true, Value: v} }

// None is an absent value.
func None() Opt { return Opt{} }

// Codec encodes and decodes values of the closed type grammar against
// an interface model. Records are map[string]any keyed by field name;
// scalars use their fixed-width Go equivalents.
type Codec struct {
	model *schema.InterfaceModel
}

// NewCodec creates a codec resolving enum and record names against model.
func NewCodec(model *schema.InterfaceModel) *Codec {
	return &Codec{model: model}
}

// Size returns the exact number of bytes Encode will write for v.
func (c *Codec) Size(t schema.TypeReference, v any) (int, error) {
	switch t.Kind {
	case schema.KindBoolean:
		if _, err := as[bool](t, v); err != nil {
			return 0, err
		}
		return 1, nil
	case schema.KindU32:
		if _, err := as[uint32](t, v); err != nil {
			return 0, err
		}
		return 4, nil
	case schema.KindU64:
		if _, err := as[uint64](t, v); err != nil {
			return 0, err
		}
		return 8, nil
	case schema.KindFloat:
		if _, err := as[float32](t, v); err != nil {
			return 0, err
		}
		return 4, nil
	case schema.KindDouble:
		if _, err := as[float64](t, v); err != nil {
			return 0, err
		}
		return 8, nil
	case schema.KindString:
		s, err := as[string](t, v)
		if err != nil {
			return 0, err
		}
		return 4 + len(s), nil
	case schema.KindEnum:
		if _, err := c.enumOrdinal(t, v); err != nil {
			return 0, err
		}
		return 4, nil
	case schema.KindRecord:
		return c.recordSize(t, v)
	case schema.KindOptional:
		o, err := as[Opt](t, v)
		if err != nil {
			return 0, err
		}
		if !o.Present {
			return 1, nil
		}
		inner, err := c.Size(*t.Inner, o.Value)
		if err != nil {
			return 0, err
		}
		return 1 + inner, nil
	default:
		return 0, fmt.Errorf("type %s is not encodable in a byte buffer", t)
	}
}

// Encode writes v into a single buffer of exactly Size(t, v) bytes.
// The byte count written must equal the precomputed size; a mismatch
// is an internal invariant violation, not a tolerated truncation.
func (c *Codec) Encode(t schema.TypeReference, v any) ([]byte, error) {
	size, err := c.Size(t, v)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, size)
	off, err := c.encode(t, v, buf, 0)
	if err != nil {
		return nil, err
	}
	if off != size {
		return nil, fmt.Errorf("encoded %d bytes for %s, size computation said %d", off, t, size)
	}
	return buf, nil
}

// Decode reads one value of type t from data. Every byte must be
// consumed; leftovers surface as ErrTrailingBytes.
func (c *Codec) Decode(t schema.TypeReference, data []byte) (any, error) {
	v, off, err := c.decode(t, data, 0)
	if err != nil {
		return nil, err
	}
	if off != len(data) {
		return nil, fmt.Errorf("%w: decoded %s but %d of %d bytes remain",
			ErrTrailingBytes, t, len(data)-off, len(data))
	}
	return v, nil
}

// RoundTrip encodes v and decodes the result.
func (c *Codec) RoundTrip(t schema.TypeReference, v any) (any, error) {
	data, err := c.Encode(t, v)
	if err != nil {
		return nil, err
	}
	return c.Decode(t, data)
}

func (c *Codec) encode(t schema.TypeReference, v any, buf []byte, off int) (int, error) {
	switch t.Kind {
	case schema.KindBoolean:
		b, err := as[bool](t, v)
		if err != nil {
			return 0, err
		}
		if b {
			buf[off] = 1
		} else {
			buf[off] = 0
		}
		return off + 1, nil
	case schema.KindU32:
		n, err := as[uint32](t, v)
		if err != nil {
			return 0, err
		}
		binary.BigEndian.PutUint32(buf[off:], n)
		return off + 4, nil
	case schema.KindU64:
		n, err := as[uint64](t, v)
		if err != nil {
			return 0, err
		}
		binary.BigEndian.PutUint64(buf[off:], n)
		return off + 8, nil
	case schema.KindFloat:
		f, err := as[float32](t, v)
		if err != nil {
			return 0, err
		}
		binary.BigEndian.PutUint32(buf[off:], math.Float32bits(f))
		return off + 4, nil
	case schema.KindDouble:
		f, err := as[float64](t, v)
		if err != nil {
			return 0, err
		}
		binary.BigEndian.PutUint64(buf[off:], math.Float64bits(f))
		return off + 8, nil
	case schema.KindString:
		s, err := as[string](t, v)
		if err != nil {
			return 0, err
		}
		binary.BigEndian.PutUint32(buf[off:], uint32(len(s)))
		copy(buf[off+4:], s)
		return off + 4 + len(s), nil
	case schema.KindEnum:
		ord, err := c.enumOrdinal(t, v)
		if err != nil {
			return 0, err
		}
		binary.BigEndian.PutUint32(buf[off:], uint32(ord))
		return off + 4, nil
	case schema.KindRecord:
		def, fields, err := c.recordValue(t, v)
		if err != nil {
			return 0, err
		}
		for _, f := range def.Fields {
			off, err = c.encode(f.Type, fields[f.Name], buf, off)
			if err != nil {
				return 0, fmt.Errorf("record %s field %s: %w", def.Name, f.Name, err)
			}
		}
		return off, nil
	case schema.KindOptional:
		o, err := as[Opt](t, v)
		if err != nil {
			return 0, err
		}
		if !o.Present {
			buf[off] = 0
			return off + 1, nil
		}
		buf[off] = 1
		return c.encode(*t.Inner, o.Value, buf, off+1)
	default:
		return 0, fmt.Errorf("type %s is not encodable in a byte buffer", t)
	}
}

func (c *Codec) decode(t schema.TypeReference, data []byte, off int) (any, int, error) {
	switch t.Kind {
	case schema.KindBoolean:
		if err := need(t, data, off, 1); err != nil {
			return nil, 0, err
		}
		return data[off] != 0, off + 1, nil
	case schema.KindU32:
		if err := need(t, data, off, 4); err != nil {
			return nil, 0, err
		}
		return binary.BigEndian.Uint32(data[off:]), off + 4, nil
	case schema.KindU64:
		if err := need(t, data, off, 8); err != nil {
			return nil, 0, err
		}
		return binary.BigEndian.Uint64(data[off:]), off + 8, nil
	case schema.KindFloat:
		if err := need(t, data, off, 4); err != nil {
			return nil, 0, err
		}
		return math.Float32frombits(binary.BigEndian.Uint32(data[off:])), off + 4, nil
	case schema.KindDouble:
		if err := need(t, data, off, 8); err != nil {
			return nil, 0, err
		}
		return math.Float64frombits(binary.BigEndian.Uint64(data[off:])), off + 8, nil
	case schema.KindString:
		if err := need(t, data, off, 4); err != nil {
			return nil, 0, err
		}
		n := int(binary.BigEndian.Uint32(data[off:]))
		if err := need(t, data, off+4, n); err != nil {
			return nil, 0, err
		}
		return string(data[off+4 : off+4+n]), off + 4 + n, nil
	case schema.KindEnum:
		def, ok := c.model.FindEnum(t.Name)
		if !ok {
			return nil, 0, fmt.Errorf("enum %s is not defined in the model", t.Name)
		}
		if err := need(t, data, off, 4); err != nil {
			return nil, 0, err
		}
		ord := int(binary.BigEndian.Uint32(data[off:]))
		value, ok := def.ValueAt(ord)
		if !ok {
			return nil, 0, fmt.Errorf("%w: enum %s has no ordinal %d (declares %d values)",
				ErrInvalidOrdinal, def.Name, ord, len(def.Values))
		}
		return Enum{Value: value}, off + 4, nil
	case schema.KindRecord:
		def, ok := c.model.FindRecord(t.Name)
		if !ok {
			return nil, 0, fmt.Errorf("record %s is not defined in the model", t.Name)
		}
		fields := make(map[string]any, len(def.Fields))
		var err error
		for _, f := range def.Fields {
			fields[f.Name], off, err = c.decode(f.Type, data, off)
			if err != nil {
				return nil, 0, fmt.Errorf("record %s field %s: %w", def.Name, f.Name, err)
			}
		}
		return fields, off, nil
	case schema.KindOptional:
		if err := need(t, data, off, 1); err != nil {
			return nil, 0, err
		}
		if data[off] == 0 {
			return None(), off + 1, nil
		}
		inner, off, err := c.decode(*t.Inner, data, off+1)
		if err != nil {
			return nil, 0, err
		}
		return Some(inner), off, nil
	default:
		return nil, 0, fmt.Errorf("type %s is not decodable from a byte buffer", t)
	}
}

func (c *Codec) enumOrdinal(t schema.TypeReference, v any) (int, error) {
	def, ok := c.model.FindEnum(t.Name)
	if !ok {
		return 0, fmt.Errorf("enum %s is not defined in the model", t.Name)
	}
	e, err := as[Enum](t, v)
	if err != nil {
		return 0, err
	}
	ord := def.Ordinal(e.Value)
	if ord == 0 {
		return 0, fmt.Errorf("enum %s does not declare value %q", def.Name, e.Value)
	}
	return ord, nil
}

func (c *Codec) recordSize(t schema.TypeReference, v any) (int, error) {
	def, fields, err := c.recordValue(t, v)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, f := range def.Fields {
		n, err := c.Size(f.Type, fields[f.Name])
		if err != nil {
			return 0, fmt.Errorf("record %s field %s: %w", def.Name, f.Name, err)
		}
		total += n
	}
	return total, nil
}

func (c *Codec) recordValue(t schema.TypeReference, v any) (schema.RecordDefinition, map[string]any, error) {
	def, ok := c.model.FindRecord(t.Name)
	if !ok {
		return schema.RecordDefinition{}, nil, fmt.Errorf("record %s is not defined in the model", t.Name)
	}
	fields, err := as[map[string]any](t, v)
	if err != nil {
		return schema.RecordDefinition{}, nil, err
	}
	for _, f := range def.Fields {
		if _, ok := fields[f.Name]; !ok {
			return schema.RecordDefinition{}, nil, fmt.Errorf("record %s value is missing field %s", def.Name, f.Name)
		}
	}
	return def, fields, nil
}

func as[T any](t schema.TypeReference, v any) (T, error) {
	typed, ok := v.(T)
	if !ok {
		return typed, fmt.Errorf("value %T does not match type %s", v, t)
	}
	return typed, nil
}

func need(t schema.TypeReference, data []byte, off, n int) error {
	if off+n > len(data) {
		return fmt.Errorf("%w: decoding %s needs %d bytes at offset %d of %d",
			ErrShortBuffer, t, n, off, len(data))
	}
	return nil
}
