package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/luckyframework/lucky-esbuild/internal/devserver"
	"github.com/luckyframework/lucky-esbuild/internal/logger"
	"github.com/luckyframework/lucky-esbuild/internal/pipeline"
)

type DevCmd struct {
	AssetFlags

	Cert string `help:"path to TLS cert file" default:"" env:"LUCKY_TLS_CERT"`
	Key  string `help:"path to TLS key file" default:"" env:"LUCKY_TLS_KEY"`
}

func (c *DevCmd) Run(globals *Globals) error {
	log := logger.Setup(globals.Debug)

	log.Info().Str("version", globals.Version).Str("env", c.Env).Msg("Starting dev server")

	adapter, err := c.adapter()
	if err != nil {
		return fmt.Errorf("failed to load shared config: %w", err)
	}

	cfg, err := adapter.BuildConfig()
	if err != nil {
		return fmt.Errorf("failed to derive build config: %w", err)
	}

	p := pipeline.New(adapter, cfg, log)
	if err := p.Build(); err != nil {
		return fmt.Errorf("failed to build assets: %w", err)
	}

	server := devserver.New(cfg, p.Build, log)

	if cfg.Server.Secure {
		if c.Cert == "" || c.Key == "" {
			return errors.New("TLS certificate and key are required for an https origin (--cert and --key)")
		}
		if _, err := os.Stat(c.Cert); err != nil {
			return fmt.Errorf("TLS certificate not found at %s: %w", c.Cert, err)
		}
		if _, err := os.Stat(c.Key); err != nil {
			return fmt.Errorf("TLS key not found at %s: %w", c.Key, err)
		}
		server.Cert = c.Cert
		server.Key = c.Key
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Start(ctx)
}
