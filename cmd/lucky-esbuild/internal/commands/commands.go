package commands

import (
	"github.com/luckyframework/lucky-esbuild/internal/bridge"
)

type Globals struct {
	Debug   bool
	Version string
}

// AssetFlags are shared by every command that needs the bridged
// configuration.
type AssetFlags struct {
	Config string `help:"path to the shared framework config file" default:"config/lucky_vite.json" env:"LUCKY_VITE_CONFIG"`
	Env    string `help:"framework environment" default:"development" env:"LUCKY_ENV"`
}

func (f AssetFlags) adapter() (*bridge.Adapter, error) {
	return bridge.New(bridge.Options{
		ConfigPath: f.Config,
		Env:        f.Env,
	})
}
