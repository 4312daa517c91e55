// Package bindgen runs the end-to-end binding generation pass: load
// the interface model, pick a generator, emit source, write the output
// file. Generation failures never leave a partial file behind.
package bindgen

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/componentry/ffigen/internal/codegen"
	"github.com/componentry/ffigen/internal/schema"
)

// Request describes one generation run.
type Request struct {
	// ModelPath locates the interface model JSON.
	ModelPath string

	// Language selects the generator from the registry.
	Language string

	// PackageName overrides the generated package; empty means the
	// generator's namespace-derived default.
	PackageName string

	// OutputDir is where the bindings file lands.
	OutputDir string

	// Stdout, when set, receives the generated source instead of a file.
	Stdout io.Writer
}

// GenerationInfo describes a completed run.
type GenerationInfo struct {
	Language   string
	Namespace  string
	OutputPath string
	Checksum   string
	Duration   time.Duration
}

// Pipeline wires a generator registry to model loading and file output.
type Pipeline struct {
	registry *codegen.Registry
	logger   zerolog.Logger
}

// NewPipeline creates a pipeline using the given registry.
func NewPipeline(registry *codegen.Registry, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		registry: registry,
		logger:   logger,
	}
}

// Run executes one generation pass for req.
func (p *Pipeline) Run(req Request) (*GenerationInfo, error) {
	start := time.Now()

	model, err := schema.LoadModel(req.ModelPath)
	if err != nil {
		return nil, err
	}

	p.logger.Debug().
		Str("model", req.ModelPath).
		Str("namespace", model.Namespace).
		Int("enums", len(model.Enums)).
		Int("records", len(model.Records)).
		Int("functions", len(model.Functions)).
		Msg("loaded interface model")

	gen, err := p.registry.Get(req.Language, req.PackageName)
	if err != nil {
		return nil, err
	}

	code, err := gen.Generate(model)
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s bindings: %w", gen.Language(), err)
	}

	sum := sha256.Sum256(code)
	info := &GenerationInfo{
		Language:  gen.Language(),
		Namespace: model.Namespace,
		Checksum:  hex.EncodeToString(sum[:]),
	}

	if req.Stdout != nil {
		if _, err := req.Stdout.Write(code); err != nil {
			return nil, fmt.Errorf("failed to write bindings to stdout: %w", err)
		}
	} else {
		if err := os.MkdirAll(req.OutputDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
		info.OutputPath = filepath.Join(req.OutputDir, OutputFileName(model.Namespace, gen.FileExtension()))
		if err := os.WriteFile(info.OutputPath, code, 0644); err != nil {
			return nil, fmt.Errorf("failed to write bindings: %w", err)
		}
	}

	info.Duration = time.Since(start)

	p.logger.Info().
		Str("language", info.Language).
		Str("output", info.OutputPath).
		Str("checksum", info.Checksum[:12]).
		Dur("duration", info.Duration).
		Msg("bindings generated")

	return info, nil
}

// OutputFileName derives the bindings file name from the component
// namespace, e.g. "geometry" + ".kt" -> "Geometry.kt".
func OutputFileName(namespace, ext string) string {
	runes := []rune(namespace)
	if len(runes) > 0 {
		runes[0] = unicode.ToUpper(runes[0])
	}
	return string(runes) + ext
}
