package main

import (
	"fmt"
	"log/slog"
	"time"

	"gradetl/internal/config"
	"gradetl/internal/logging"
	"gradetl/internal/pipeline"
	"gradetl/internal/source"
	"gradetl/internal/standardize"
	"gradetl/internal/store"
)

// commandContext lazily resolves shared dependencies for CLI commands.
type commandContext struct {
	configFlag *string

	cfg     *config.Config
	cfgPath string
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	path := ""
	if c.configFlag != nil {
		path = *c.configFlag
	}
	cfg, resolvedPath, _, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	c.cfgPath = resolvedPath
	return cfg, nil
}

func (c *commandContext) newLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewFromConfig(cfg)
}

// buildRunner wires the production collaborators: the JSON handoff file as
// fetch source and the hosted standardizer service. Callers own closing the
// returned store.
func (c *commandContext) buildRunner() (*pipeline.Runner, *store.Store, *slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := c.newLogger()
	if err != nil {
		return nil, nil, nil, err
	}

	st, err := store.Open(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open applicants store: %w", err)
	}

	standardizer, err := standardize.New(cfg.Standardizer.URL, time.Duration(cfg.Standardizer.TimeoutSeconds)*time.Second)
	if err != nil {
		_ = st.Close()
		return nil, nil, nil, err
	}

	runner := pipeline.NewRunner(cfg, st, source.New(cfg.Paths.SourceFile), standardizer, logger)
	return runner, st, logger, nil
}
