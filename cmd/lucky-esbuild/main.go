package main

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/luckyframework/lucky-esbuild/cmd/lucky-esbuild/internal/commands"
)

var (
	version = "dev"
	cli     struct {
		Debug   bool `help:"Enable debug logging."`
		Version kong.VersionFlag
		Build   commands.BuildCmd `cmd:"" help:"Build assets once and exit."`
		Dev     commands.DevCmd   `cmd:"" help:"Build assets, then watch and serve them."`
		Clean   commands.CleanCmd `cmd:"" help:"Remove generated output sub-directories."`
	}
)

func main() {
	// A local .env may carry LUCKY_ENV alongside the framework's own settings.
	_ = godotenv.Load()

	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&commands.Globals{Debug: cli.Debug, Version: version})
	cmd.FatalIfErrorf(err)
}
