package commands

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/componentry/ffigen/internal/bindgen"
	"github.com/componentry/ffigen/internal/codegen"
)

// GenerateOptions carries the generate command's flags.
type GenerateOptions struct {
	// ConfigPath is an explicit ffigen.json; empty searches the working
	// directory and its parents.
	ConfigPath string

	// Language overrides the configured target language.
	Language string

	// Stdout prints the bindings instead of writing the output file.
	Stdout bool
}

// Generate runs one binding generation pass for the project.
func (c *Controller) Generate(ctx context.Context, opts GenerateOptions) error {
	cfg, root, err := loadProject(opts.ConfigPath)
	if err != nil {
		return err
	}

	language := cfg.Language
	if opts.Language != "" {
		language = opts.Language
	}

	logger := log.With().Str("component", "bindgen").Logger()
	pipeline := bindgen.NewPipeline(codegen.DefaultRegistry, logger)

	req := bindgen.Request{
		ModelPath:   resolve(root, cfg.Model),
		Language:    language,
		PackageName: cfg.Package,
		OutputDir:   resolve(root, cfg.Output),
	}
	if opts.Stdout {
		req.Stdout = c.out()
	}

	_, err = pipeline.Run(req)
	return err
}
