package commands

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/componentry/ffigen/internal/bindgen"
	"github.com/componentry/ffigen/internal/codegen"
	"github.com/componentry/ffigen/internal/dev"
)

// Dev watches the project and regenerates bindings on change until the
// context is canceled.
func (c *Controller) Dev(ctx context.Context) error {
	cfg, root, err := loadProject("")
	if err != nil {
		return err
	}

	logger := log.With().Str("component", "dev").Logger()
	pipeline := bindgen.NewPipeline(codegen.DefaultRegistry, logger)
	runner := dev.NewRunner(cfg, root, pipeline, logger)

	return runner.Run(ctx)
}
