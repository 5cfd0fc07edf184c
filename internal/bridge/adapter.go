package bridge

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultConfigPath is where the framework generator writes the shared
	// config file.
	DefaultConfigPath = "config/lucky_vite.json"
	// DefaultEnv is the framework environment assumed when none is injected.
	DefaultEnv = "development"

	cacheDirName = ".lucky-esbuild"
)

// cleanDirs are the output sub-directories recreated on every build.
var cleanDirs = []string{"js", "css", "images", "fonts", cacheDirName}

// Options configures the adapter.
type Options struct {
	// ConfigPath is the shared JSON file written by the framework generator.
	ConfigPath string
	// Env is the framework environment, injected once at startup.
	Env string
	// WorkDir anchors relative paths; defaults to the process working
	// directory.
	WorkDir string
}

// Adapter translates the shared framework configuration into build tool
// settings. The effective config and server binding are computed once in New
// and immutable afterwards.
type Adapter struct {
	opts    Options
	cfg     Config
	binding Binding
}

// BuildConfig is the composed configuration handed to the build tool host.
type BuildConfig struct {
	WorkDir     string
	Root        string
	OutDir      string
	CacheDir    string
	Aliases     []Alias
	Server      Binding
	EntryPoints []string
	Sourcemap   bool
	Minify      bool
	Manifest    bool
}

// New reads the shared config and derives the server binding. Any config or
// origin problem surfaces here, before the host sees a single hook.
func New(opts Options) (*Adapter, error) {
	if opts.ConfigPath == "" {
		opts.ConfigPath = DefaultConfigPath
	}
	if opts.Env == "" {
		opts.Env = DefaultEnv
	}
	if opts.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		opts.WorkDir = wd
	}

	cfg, err := Load(absJoin(opts.WorkDir, opts.ConfigPath))
	if err != nil {
		return nil, err
	}

	binding, err := ResolveBinding(cfg.Host, cfg.Port, cfg.HTTPS, cfg.Origin)
	if err != nil {
		return nil, err
	}

	return &Adapter{opts: opts, cfg: cfg, binding: binding}, nil
}

// Config returns the effective configuration.
func (a *Adapter) Config() Config {
	return a.cfg
}

// Env returns the injected framework environment.
func (a *Adapter) Env() string {
	return a.opts.Env
}

// Sourcemap reports whether source maps are emitted: every environment except
// development and test.
func (a *Adapter) Sourcemap() bool {
	return a.opts.Env != "development" && a.opts.Env != "test"
}

// OutDir returns the absolute output directory.
func (a *Adapter) OutDir() string {
	return absJoin(a.opts.WorkDir, a.cfg.OutDir)
}

// BuildConfig composes the full build tool configuration. Idempotent and
// side-effect free; the only filesystem access is the entry directory
// listing.
func (a *Adapter) BuildConfig() (*BuildConfig, error) {
	root := absJoin(a.opts.WorkDir, a.cfg.Root)

	entries, err := ScanEntries(filepath.Join(root, a.cfg.Entry))
	if err != nil {
		return nil, err
	}

	outDir := a.OutDir()

	return &BuildConfig{
		WorkDir:     a.opts.WorkDir,
		Root:        root,
		OutDir:      outDir,
		CacheDir:    filepath.Join(outDir, cacheDirName),
		Aliases:     ResolveAliases(a.opts.WorkDir, a.cfg.Aliases),
		Server:      a.binding,
		EntryPoints: entries,
		Sourcemap:   a.Sourcemap(),
		Minify:      a.opts.Env == "production",
		Manifest:    true,
	}, nil
}

// CleanOutputs removes the known output sub-directories so hashed files from
// earlier builds cannot pile up. Other framework-managed files in the output
// directory are left alone, and removing a directory that is already gone is
// a no-op.
func (a *Adapter) CleanOutputs() error {
	outDir := a.OutDir()
	for _, dir := range cleanDirs {
		if err := os.RemoveAll(filepath.Join(outDir, dir)); err != nil {
			return fmt.Errorf("clean %s: %w", dir, err)
		}
	}
	return nil
}

func absJoin(workDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workDir, path)
}
