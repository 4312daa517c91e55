package kotlin

import (
	"strings"
	"testing"

	"github.com/componentry/ffigen/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLowerExpr_Identity(t *testing.T) {
	// Test: Scalars, strings, and buffers cross the boundary unchanged
	for _, ref := range []schema.TypeReference{
		schema.U32(), schema.U64(), schema.Float(), schema.Double(),
		schema.String(), schema.Bytes(),
	} {
		got, err := LowerExpr(ref, "x")
		require.NoError(t, err)
		assert.Equal(t, "x", got, ref.String())
	}
}

func TestLowerExpr_Boolean(t *testing.T) {
	// Test: Booleans lower to a single byte
	got, err := LowerExpr(schema.Boolean(), "flag")
	require.NoError(t, err)
	assert.Equal(t, "(if (flag) 1.toByte() else 0.toByte())", got)
}

func TestLowerExpr_Enum(t *testing.T) {
	// Test: Enums lower to their 1-based wire ordinal
	got, err := LowerExpr(schema.Enum("Color"), "c")
	require.NoError(t, err)
	assert.Equal(t, "(c.ordinal + 1)", got)
}

func TestLowerExpr_Record(t *testing.T) {
	// Test: Records lower through their own serializer
	got, err := LowerExpr(schema.Record("Point"), "p")
	require.NoError(t, err)
	assert.Equal(t, "p.serializeForRust()", got)
}

func TestLowerExpr_Optional(t *testing.T) {
	// Test: Optionals allocate exactly one buffer sized ahead of the write
	got, err := LowerExpr(schema.Optional(schema.U32()), "n")
	require.NoError(t, err)

	want := strings.Join([]string{
		"lowerIntoRustBuffer((1 + (n?.let { _v1 -> 4 } ?: 0))) { buf ->",
		"    if (n == null) {",
		"        buf.put(0.toByte())",
		"    } else {",
		"        buf.put(1.toByte())",
		"        buf.putInt(n)",
		"    }",
		"}",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestLowerExpr_Unsupported(t *testing.T) {
	// Test: Object cannot be lowered
	_, err := LowerExpr(schema.Object("Counter"), "o")
	assert.Error(t, err)

	_, err = LowerExpr(schema.Optional(schema.Object("Counter")), "o")
	assert.Error(t, err)
}

func TestLiftExpr_Identity(t *testing.T) {
	// Test: Scalars, strings, and buffers lift unchanged
	for _, ref := range []schema.TypeReference{
		schema.U32(), schema.U64(), schema.Float(), schema.Double(),
		schema.String(), schema.Bytes(),
	} {
		got, err := LiftExpr(ref, "_retval")
		require.NoError(t, err)
		assert.Equal(t, "_retval", got, ref.String())
	}
}

func TestLiftExpr_Boolean(t *testing.T) {
	// Test: Any non-zero byte lifts to true
	got, err := LiftExpr(schema.Boolean(), "_retval")
	require.NoError(t, err)
	assert.Equal(t, "(_retval.toInt() != 0)", got)
}

func TestLiftExpr_Enum(t *testing.T) {
	// Test: Enums lift through the range-checked ordinal lookup
	got, err := LiftExpr(schema.Enum("Color"), "_retval")
	require.NoError(t, err)
	assert.Equal(t, "Color.fromOrdinal(_retval)", got)
}

func TestLiftExpr_Record(t *testing.T) {
	// Test: Records decode from the received buffer, which is then freed
	got, err := LiftExpr(schema.Record("Point"), "_retval")
	require.NoError(t, err)
	assert.Equal(t, "liftFromRustBuffer(_retval) { buf -> Point.deserializeItemFromRust(buf) }", got)
}

func TestLiftExpr_Optional(t *testing.T) {
	// Test: Optional lifts decode each presence level in order
	got, err := LiftExpr(schema.Optional(schema.Optional(schema.U32())), "_retval")
	require.NoError(t, err)
	assert.Equal(t,
		"liftFromRustBuffer(_retval) { buf -> (if (buf.get().toInt() == 0) null else (if (buf.get().toInt() == 0) null else buf.getInt())) }",
		got)
}

func TestLiftExpr_Unsupported(t *testing.T) {
	// Test: Object cannot be lifted
	_, err := LiftExpr(schema.Object("Counter"), "_retval")
	assert.Error(t, err)
}
