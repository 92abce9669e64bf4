package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/nguyentantai21042004/digest-flow/internal/acquirer"
	"github.com/nguyentantai21042004/digest-flow/internal/cache"
	"github.com/nguyentantai21042004/digest-flow/internal/config"
	"github.com/nguyentantai21042004/digest-flow/internal/content"
	"github.com/nguyentantai21042004/digest-flow/internal/logger"
	"github.com/nguyentantai21042004/digest-flow/internal/mailer"
	"github.com/nguyentantai21042004/digest-flow/internal/processor"
	"github.com/nguyentantai21042004/digest-flow/internal/summarizer"
	"github.com/nguyentantai21042004/digest-flow/internal/transcriber"
	"github.com/nguyentantai21042004/digest-flow/pkg/executor"
)

// app holds the wired pipeline for one CLI invocation
type app struct {
	cfg   *config.Config
	log   logger.Logger
	store *cache.Store
	proc  processor.Processor
}

// loadConfig reads config and .env and builds the logger. A malformed config
// file falls back to defaults with a warning.
func loadConfig(ctx context.Context, g *globalFlags) (*config.Config, logger.Logger, error) {
	cfg, loadErr := config.Load(g.configPath)

	level := cfg.Logging.Level
	if g.verbose {
		level = "debug"
	}
	log, err := logger.NewWithFile(level, cfg.Logging.File)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	if loadErr != nil {
		if !errors.Is(loadErr, config.ErrMalformed) {
			return nil, nil, loadErr
		}
		log.Warn(ctx, "Ignoring %s, using built-in defaults: %v", g.configPath, loadErr)
	}

	if err := cfg.LoadEnv(); err != nil {
		log.Warn(ctx, "Failed to read %s: %v", cfg.Paths.Env, err)
	}
	return cfg, log, nil
}

func newApp(ctx context.Context, g *globalFlags) (*app, error) {
	cfg, log, err := loadConfig(ctx, g)
	if err != nil {
		return nil, err
	}

	store := cache.New(cfg.Paths.Base)
	if err := store.Init(); err != nil {
		return nil, err
	}

	exec := executor.New()

	var m mailer.Mailer
	if cfg.Email.Enabled() {
		m = mailer.New(cfg.Email, log)
	} else {
		log.Info(ctx, "Email settings incomplete in %s, email delivery disabled", cfg.Paths.Env)
	}

	proc := processor.New(cfg, processor.Deps{
		Store:       store,
		Detector:    content.NewDetector(content.NewHTTPProber(cfg.Detect.ProbeTimeout), log),
		Acquirer:    acquirer.New(cfg, store, store.TempDir(), exec, log),
		Transcriber: transcriber.New(cfg, store.TempDir(), exec, log),
		Summarizer:  summarizer.New(cfg, exec, log),
		Mailer:      m,
	}, log)
	proc.Sweep(ctx)

	return &app{cfg: cfg, log: log, store: store, proc: proc}, nil
}
