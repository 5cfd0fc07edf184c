package commands

import (
	"fmt"

	"github.com/luckyframework/lucky-esbuild/internal/logger"
	"github.com/luckyframework/lucky-esbuild/internal/pipeline"
)

type BuildCmd struct {
	AssetFlags
}

func (c *BuildCmd) Run(globals *Globals) error {
	log := logger.Setup(globals.Debug)

	log.Info().Str("version", globals.Version).Str("env", c.Env).Msg("Building assets")

	adapter, err := c.adapter()
	if err != nil {
		return fmt.Errorf("failed to load shared config: %w", err)
	}

	cfg, err := adapter.BuildConfig()
	if err != nil {
		return fmt.Errorf("failed to derive build config: %w", err)
	}

	if err := pipeline.New(adapter, cfg, log).Build(); err != nil {
		return fmt.Errorf("failed to build assets: %w", err)
	}

	log.Info().Str("outDir", cfg.OutDir).Msg("Build complete")
	return nil
}
