// Package dev regenerates bindings whenever the interface model or
// project config changes.
package dev

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/componentry/ffigen/internal/bindgen"
	"github.com/componentry/ffigen/internal/config"
)

// debounceDelay coalesces the event bursts editors produce on save.
const debounceDelay = 250 * time.Millisecond

// Runner watches a project and reruns the generation pipeline on
// change. Regenerations are serialized; events arriving during a run
// are coalesced into one follow-up run.
type Runner struct {
	cfg         *config.Config
	projectRoot string
	pipeline    *bindgen.Pipeline
	logger      zerolog.Logger

	buildMutex sync.Mutex
	building   bool

	debounceMu sync.Mutex
	debounce   *time.Timer
}

// NewRunner creates a runner for the project rooted at projectRoot.
func NewRunner(cfg *config.Config, projectRoot string, pipeline *bindgen.Pipeline, logger zerolog.Logger) *Runner {
	return &Runner{
		cfg:         cfg,
		projectRoot: projectRoot,
		pipeline:    pipeline,
		logger:      logger,
	}
}

// Run generates once, then watches the project until ctx is canceled.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.Regenerate(); err != nil {
		// Initial failures don't stop the watch: fixing the model will
		// trigger a clean run.
		r.logger.Error().Err(err).Msg("initial generation failed")
	}

	watcher, err := NewFileWatcher(r.cfg.Dev.Watch, r.cfg.Dev.Exclude, r.logger, r.handleChange)
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.AddDirectory(r.projectRoot); err != nil {
		return err
	}

	r.logger.Info().
		Str("root", r.projectRoot).
		Strs("watch", r.cfg.Dev.Watch).
		Msg("watching for model changes")

	return watcher.Start(ctx)
}

func (r *Runner) handleChange(path string, op fsnotify.Op) {
	if op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return
	}

	r.logger.Debug().Str("path", path).Str("op", op.String()).Msg("change detected")

	r.debounceMu.Lock()
	defer r.debounceMu.Unlock()
	if r.debounce == nil {
		r.debounce = time.AfterFunc(debounceDelay, func() {
			if err := r.Regenerate(); err != nil {
				r.logger.Error().Err(err).Msg("regeneration failed")
			}
		})
		return
	}
	r.debounce.Reset(debounceDelay)
}

// Regenerate runs the pipeline once for the project's configuration.
// Calls arriving while a run is in flight are dropped; the debounce
// timer has already coalesced their events.
func (r *Runner) Regenerate() error {
	r.buildMutex.Lock()
	if r.building {
		r.buildMutex.Unlock()
		r.logger.Debug().Msg("generation already in progress, skipping")
		return nil
	}
	r.building = true
	r.buildMutex.Unlock()

	defer func() {
		r.buildMutex.Lock()
		r.building = false
		r.buildMutex.Unlock()
	}()

	_, err := r.pipeline.Run(bindgen.Request{
		ModelPath:   r.resolve(r.cfg.Model),
		Language:    r.cfg.Language,
		PackageName: r.cfg.Package,
		OutputDir:   r.resolve(r.cfg.Output),
	})
	return err
}

func (r *Runner) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.projectRoot, path)
}
