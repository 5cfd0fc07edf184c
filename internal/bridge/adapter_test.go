package bridge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestProject lays out a minimal project tree with a shared config file
// and an entry directory containing the given scripts.
func newTestProject(t *testing.T, config string, scripts ...string) string {
	t.Helper()
	workDir := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(workDir, "config"), 0700))
	require.NoError(t, os.WriteFile(filepath.Join(workDir, DefaultConfigPath), []byte(config), 0600))

	entryDir := filepath.Join(workDir, "src", "js", "entry")
	require.NoError(t, os.MkdirAll(entryDir, 0700))
	for _, script := range scripts {
		require.NoError(t, os.WriteFile(filepath.Join(entryDir, script), []byte("export {}"), 0600))
	}
	return workDir
}

func TestNewFailsFast(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T) Options
		expected error
	}{
		{
			name: "missing config file",
			setup: func(t *testing.T) Options {
				return Options{WorkDir: t.TempDir()}
			},
			expected: ErrConfigNotFound,
		},
		{
			name: "invalid config file",
			setup: func(t *testing.T) Options {
				return Options{WorkDir: newTestProject(t, `{"port":`)}
			},
			expected: ErrConfigInvalid,
		},
		{
			name: "malformed origin",
			setup: func(t *testing.T) Options {
				return Options{WorkDir: newTestProject(t, `{"origin": "ftp://example.test"}`)}
			},
			expected: ErrMalformedOrigin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter, err := New(tt.setup(t))
			require.ErrorIs(t, err, tt.expected)
			require.Nil(t, adapter)
		})
	}
}

func TestBuildConfig(t *testing.T) {
	workDir := newTestProject(t, `{}`, "main.js", "admin.js")

	adapter, err := New(Options{WorkDir: workDir, Env: "development"})
	require.NoError(t, err)

	cfg, err := adapter.BuildConfig()
	require.NoError(t, err)

	require.Equal(t, filepath.Join(workDir, "src", "js"), cfg.Root)
	require.Equal(t, filepath.Join(workDir, "public"), cfg.OutDir)
	require.Equal(t, filepath.Join(workDir, "public", ".lucky-esbuild"), cfg.CacheDir)

	require.Equal(t, []Alias{
		{Name: "@js", Path: filepath.Join(workDir, "src", "js")},
		{Name: "@css", Path: filepath.Join(workDir, "src", "css")},
		{Name: "@images", Path: filepath.Join(workDir, "src", "images")},
		{Name: "@fonts", Path: filepath.Join(workDir, "src", "fonts")},
	}, cfg.Aliases)

	require.Equal(t, "http://127.0.0.1:3010", cfg.Server.Origin)
	require.Len(t, cfg.EntryPoints, 2)
	require.False(t, cfg.Sourcemap)
	require.False(t, cfg.Minify)
	require.True(t, cfg.Manifest)
}

func TestBuildConfigMissingEntryRoot(t *testing.T) {
	workDir := newTestProject(t, `{"entry": "pages"}`, "main.js")

	adapter, err := New(Options{WorkDir: workDir})
	require.NoError(t, err)

	_, err = adapter.BuildConfig()
	require.ErrorIs(t, err, ErrEntryRootNotFound)
}

func TestSourcemapPolicy(t *testing.T) {
	tests := []struct {
		name      string
		env       string
		sourcemap bool
		minify    bool
	}{
		{name: "development", env: "development", sourcemap: false, minify: false},
		{name: "test", env: "test", sourcemap: false, minify: false},
		{name: "production", env: "production", sourcemap: true, minify: true},
		{name: "staging", env: "staging", sourcemap: true, minify: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			workDir := newTestProject(t, `{}`, "main.js")
			adapter, err := New(Options{WorkDir: workDir, Env: tt.env})
			require.NoError(t, err)

			require.Equal(t, tt.sourcemap, adapter.Sourcemap())

			cfg, err := adapter.BuildConfig()
			require.NoError(t, err)
			require.Equal(t, tt.sourcemap, cfg.Sourcemap)
			require.Equal(t, tt.minify, cfg.Minify)
		})
	}
}

func TestCleanOutputs(t *testing.T) {
	workDir := newTestProject(t, `{}`, "main.js")
	outDir := filepath.Join(workDir, "public")

	for _, dir := range []string{"js", "css", "images", "fonts", ".lucky-esbuild"} {
		require.NoError(t, os.MkdirAll(filepath.Join(outDir, dir), 0700))
		require.NoError(t, os.WriteFile(filepath.Join(outDir, dir, "stale"), []byte("old"), 0600))
	}
	// Framework-managed files outside the known sub-directories survive.
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "robots.txt"), []byte("ok"), 0600))

	adapter, err := New(Options{WorkDir: workDir})
	require.NoError(t, err)

	require.NoError(t, adapter.CleanOutputs())
	for _, dir := range []string{"js", "css", "images", "fonts", ".lucky-esbuild"} {
		require.NoDirExists(t, filepath.Join(outDir, dir))
	}
	require.FileExists(t, filepath.Join(outDir, "robots.txt"))

	// Deleting already-absent directories is a no-op.
	require.NoError(t, adapter.CleanOutputs())
}
