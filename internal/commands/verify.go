package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/componentry/ffigen/internal/component"
	"github.com/componentry/ffigen/internal/schema"
)

// Verify checks the built native component's exported symbol table
// against the interface model's foreign entry points.
func (c *Controller) Verify(ctx context.Context, configPath string) error {
	cfg, root, err := loadProject(configPath)
	if err != nil {
		return err
	}

	if cfg.Component == "" {
		return fmt.Errorf(`no component build configured; set "component" in ffigen.json to the wasm build path`)
	}

	model, err := schema.LoadModel(resolve(root, cfg.Model))
	if err != nil {
		return err
	}

	logger := log.With().Str("component", "verify").Logger()
	report, err := component.VerifyFile(ctx, resolve(root, cfg.Component), model, logger)
	if err != nil {
		return err
	}

	out := c.out()
	for _, sym := range report.Matched {
		fmt.Fprintf(out, "ok       %s\n", sym)
	}
	for _, sym := range report.Missing {
		fmt.Fprintf(out, "missing  %s\n", sym)
	}
	for _, sym := range report.Extra {
		fmt.Fprintf(out, "extra    %s\n", sym)
	}

	if !report.OK() {
		return fmt.Errorf("component %s is missing %d of %d entry points", cfg.Component, len(report.Missing), len(report.Matched)+len(report.Missing))
	}

	fmt.Fprintf(out, "component exports all %d entry points\n", len(report.Matched))
	return nil
}
