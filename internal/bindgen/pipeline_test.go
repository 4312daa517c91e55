package bindgen

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/componentry/ffigen/internal/codegen"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testModelJSON = `{
	"namespace": "geometry",
	"enums": [{"name": "Shape", "values": ["CIRCLE", "SQUARE"]}],
	"records": [{"name": "Point", "fields": [
		{"name": "x", "type": {"kind": "double"}},
		{"name": "y", "type": {"kind": "double"}}
	]}],
	"functions": [{"name": "translate", "arguments": [
		{"name": "p", "type": {"kind": "record", "name": "Point"}}
	], "return": {"kind": "record", "name": "Point"}}]
}`

func writeModel(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "interface.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestPipeline_Run(t *testing.T) {
	// Test: A full pass loads the model, generates, and writes the
	// namespace-derived output file with a matching checksum
	dir := t.TempDir()
	p := NewPipeline(codegen.DefaultRegistry, zerolog.Nop())

	info, err := p.Run(Request{
		ModelPath: writeModel(t, dir, testModelJSON),
		Language:  "kotlin",
		OutputDir: filepath.Join(dir, "bindings"),
	})
	require.NoError(t, err)

	assert.Equal(t, "kotlin", info.Language)
	assert.Equal(t, "geometry", info.Namespace)
	assert.Equal(t, filepath.Join(dir, "bindings", "Geometry.kt"), info.OutputPath)
	assert.Greater(t, info.Duration.Nanoseconds(), int64(0))

	written, err := os.ReadFile(info.OutputPath)
	require.NoError(t, err)
	assert.Contains(t, string(written), "package ffigen.geometry")
	assert.Contains(t, string(written), "data class Point(")

	sum := sha256.Sum256(written)
	assert.Equal(t, hex.EncodeToString(sum[:]), info.Checksum)
}

func TestPipeline_PackageOverride(t *testing.T) {
	// Test: An explicit package name reaches the generator
	dir := t.TempDir()
	p := NewPipeline(codegen.DefaultRegistry, zerolog.Nop())

	info, err := p.Run(Request{
		ModelPath:   writeModel(t, dir, testModelJSON),
		Language:    "kotlin",
		PackageName: "com.acme.geo",
		OutputDir:   dir,
	})
	require.NoError(t, err)

	written, err := os.ReadFile(info.OutputPath)
	require.NoError(t, err)
	assert.Contains(t, string(written), "package com.acme.geo")
}

func TestPipeline_Stdout(t *testing.T) {
	// Test: Stdout mode writes the source to the writer and no file
	dir := t.TempDir()
	p := NewPipeline(codegen.DefaultRegistry, zerolog.Nop())

	var out bytes.Buffer
	info, err := p.Run(Request{
		ModelPath: writeModel(t, dir, testModelJSON),
		Language:  "kotlin",
		OutputDir: filepath.Join(dir, "bindings"),
		Stdout:    &out,
	})
	require.NoError(t, err)

	assert.Empty(t, info.OutputPath)
	assert.Contains(t, out.String(), "package ffigen.geometry")
	assert.NoFileExists(t, filepath.Join(dir, "bindings", "Geometry.kt"))
}

func TestPipeline_NoFileOnGenerationError(t *testing.T) {
	// Test: A model with an unsupported item fails the run and leaves no
	// partial output behind
	dir := t.TempDir()
	p := NewPipeline(codegen.DefaultRegistry, zerolog.Nop())

	badModel := `{
		"namespace": "geometry",
		"functions": [{"name": "f", "arguments": [
			{"name": "c", "type": {"kind": "object", "name": "Counter"}}
		]}]
	}`

	outDir := filepath.Join(dir, "bindings")
	_, err := p.Run(Request{
		ModelPath: writeModel(t, dir, badModel),
		Language:  "kotlin",
		OutputDir: outDir,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported type Object(Counter)")
	assert.NoFileExists(t, filepath.Join(outDir, "Geometry.kt"))
}

func TestPipeline_UnknownLanguage(t *testing.T) {
	// Test: Languages the registry does not know fail before generation
	dir := t.TempDir()
	p := NewPipeline(codegen.DefaultRegistry, zerolog.Nop())

	_, err := p.Run(Request{
		ModelPath: writeModel(t, dir, testModelJSON),
		Language:  "cobol",
		OutputDir: dir,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported language: cobol")
}

func TestPipeline_MissingModel(t *testing.T) {
	// Test: An unreadable model path fails with context
	p := NewPipeline(codegen.DefaultRegistry, zerolog.Nop())

	_, err := p.Run(Request{
		ModelPath: filepath.Join(t.TempDir(), "nope.json"),
		Language:  "kotlin",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read interface model")
}

func TestOutputFileName(t *testing.T) {
	// Test: Namespace capitalization and extension join
	assert.Equal(t, "Geometry.kt", OutputFileName("geometry", ".kt"))
	assert.Equal(t, "X.kt", OutputFileName("x", ".kt"))
	assert.Equal(t, ".kt", OutputFileName("", ".kt"))
}
