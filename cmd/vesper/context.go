package main

import (
	"context"
	"strings"
	"sync"

	"vesper/internal/config"
	"vesper/internal/drive"
	"vesper/internal/tts"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) driveStore(ctx context.Context) (drive.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return drive.NewGoogleStore(ctx, cfg)
}

func (c *commandContext) synthesizer(ctx context.Context) (tts.Synthesizer, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return tts.NewGoogleSynthesizerFromConfig(ctx, cfg)
}
