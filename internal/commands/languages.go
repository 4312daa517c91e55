package commands

import (
	"context"
	"fmt"

	"github.com/componentry/ffigen/internal/codegen"
)

// Languages lists the registered binding generators.
func (c *Controller) Languages(ctx context.Context) error {
	for _, lang := range codegen.DefaultRegistry.Languages() {
		fmt.Fprintln(c.out(), lang)
	}
	return nil
}
