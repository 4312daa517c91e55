package dev

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/componentry/ffigen/internal/bindgen"
	"github.com/componentry/ffigen/internal/codegen"
	"github.com/componentry/ffigen/internal/config"
)

const runnerModel = `{
	"namespace": "demo",
	"functions": [{"name": "ping"}]
}`

func setupProject(t *testing.T) (string, *Runner) {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "interface.json"), []byte(runnerModel), 0644))

	cfg := &config.Config{
		Model:    "./interface.json",
		Language: "kotlin",
		Output:   "./bindings",
		Dev: config.DevConfig{
			Watch:   []string{"*.json", "**/*.json"},
			Exclude: []string{"bindings", ".git"},
		},
	}

	pipeline := bindgen.NewPipeline(codegen.DefaultRegistry, zerolog.Nop())
	return root, NewRunner(cfg, root, pipeline, zerolog.Nop())
}

func TestRunner_Regenerate(t *testing.T) {
	// Test: One regeneration writes the bindings file under the project
	root, runner := setupProject(t)

	require.NoError(t, runner.Regenerate())

	out := filepath.Join(root, "bindings", "Demo.kt")
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "fun ping()")
}

func TestRunner_RegenerateFailure(t *testing.T) {
	// Test: A broken model fails the run and leaves no output
	root, runner := setupProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "interface.json"), []byte("{"), 0644))

	err := runner.Regenerate()
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(root, "bindings", "Demo.kt"))
}

func TestRunner_WatchRegeneratesOnChange(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	// Test: Editing the model while watching regenerates the bindings
	root, runner := setupProject(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx) }()

	out := filepath.Join(root, "bindings", "Demo.kt")
	require.Eventually(t, func() bool {
		_, err := os.Stat(out)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond, "initial generation")

	updated := `{
		"namespace": "demo",
		"functions": [{"name": "ping"}, {"name": "pong"}]
	}`
	require.NoError(t, os.WriteFile(filepath.Join(root, "interface.json"), []byte(updated), 0644))

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(out)
		return err == nil && strings.Contains(string(data), "fun pong()")
	}, 3*time.Second, 25*time.Millisecond, "regeneration after change")

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
