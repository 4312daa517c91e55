// Package component checks a built native component against an
// interface model: every foreign entry point the generated bindings
// will call must exist in the component's exported symbol table.
package component

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/tetratelabs/wazero"

	"github.com/componentry/ffigen/internal/schema"
)

// Report lists how the component's exported functions line up with the
// model's foreign entry points.
type Report struct {
	// Matched entry points found in the export table.
	Matched []string

	// Missing entry points the bindings would fail to link against.
	Missing []string

	// Extra exports carrying the model's namespace prefix that no
	// model item accounts for — usually a model older than the build.
	Extra []string
}

// OK reports whether every required entry point is exported.
func (r *Report) OK() bool {
	return len(r.Missing) == 0
}

// VerifyFile loads a wasm32 build of the component from path and
// verifies its exports against the model.
func VerifyFile(ctx context.Context, path string, model *schema.InterfaceModel, logger zerolog.Logger) (*Report, error) {
	wasmBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read component: %w", err)
	}
	return VerifyExports(ctx, wasmBytes, model, logger)
}

// VerifyExports compiles wasmBytes and diffs its exported function
// table against the model's foreign entry points, including the buffer
// lifecycle pair.
func VerifyExports(ctx context.Context, wasmBytes []byte, model *schema.InterfaceModel, logger zerolog.Logger) (*Report, error) {
	if len(wasmBytes) == 0 {
		return nil, fmt.Errorf("wasm bytes cannot be empty")
	}

	runtime := wazero.NewRuntime(ctx)
	defer runtime.Close(ctx)

	compiled, err := runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to compile component module: %w", err)
	}
	defer compiled.Close(ctx)

	exported := make(map[string]bool)
	for name := range compiled.ExportedFunctions() {
		exported[name] = true
	}

	expected := make(map[string]bool)
	report := &Report{}
	for _, fn := range model.ForeignFunctions() {
		expected[fn.Symbol] = true
		if exported[fn.Symbol] {
			report.Matched = append(report.Matched, fn.Symbol)
		} else {
			report.Missing = append(report.Missing, fn.Symbol)
		}
	}

	prefix := model.Namespace + "_"
	for name := range exported {
		if strings.HasPrefix(name, prefix) && !expected[name] {
			report.Extra = append(report.Extra, name)
		}
	}
	sort.Strings(report.Extra)

	logger.Debug().
		Str("namespace", model.Namespace).
		Int("matched", len(report.Matched)).
		Int("missing", len(report.Missing)).
		Int("extra", len(report.Extra)).
		Msg("verified component exports")

	return report, nil
}
