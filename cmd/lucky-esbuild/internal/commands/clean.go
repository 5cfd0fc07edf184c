package commands

import (
	"fmt"

	"github.com/luckyframework/lucky-esbuild/internal/logger"
)

type CleanCmd struct {
	AssetFlags
}

func (c *CleanCmd) Run(globals *Globals) error {
	log := logger.Setup(globals.Debug)

	adapter, err := c.adapter()
	if err != nil {
		return fmt.Errorf("failed to load shared config: %w", err)
	}

	if err := adapter.CleanOutputs(); err != nil {
		return fmt.Errorf("failed to clean outputs: %w", err)
	}

	log.Info().Str("outDir", adapter.OutDir()).Msg("Removed generated output sub-directories")
	return nil
}
