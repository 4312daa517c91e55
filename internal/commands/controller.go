// Package commands contains the CLI commands for the application
package commands

import (
	"io"
	"os"
	"path/filepath"

	"github.com/componentry/ffigen/internal/config"
)

type Flags struct {
	LogLevel string
}

type Controller struct {
	Flags *Flags

	// Stdout receives command output; nil means os.Stdout. Tests set it
	// to capture output.
	Stdout io.Writer
}

func (c *Controller) out() io.Writer {
	if c.Stdout != nil {
		return c.Stdout
	}
	return os.Stdout
}

// loadProject resolves the project config: an explicit path wins,
// otherwise the working directory and its parents are searched.
func loadProject(configPath string) (*config.Config, string, error) {
	if configPath != "" {
		cfg, err := config.LoadConfigFromPath(configPath)
		if err != nil {
			return nil, "", err
		}
		return cfg, filepath.Dir(configPath), nil
	}
	return config.LoadConfig()
}

// resolve anchors a config-relative path at the project root.
func resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
