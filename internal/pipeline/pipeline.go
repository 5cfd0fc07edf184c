package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/rs/zerolog"

	"github.com/luckyframework/lucky-esbuild/internal/bridge"
)

// Pipeline runs esbuild with the bridged configuration and places every
// output file under its hashed, type-partitioned name.
type Pipeline struct {
	adapter *bridge.Adapter
	cfg     *bridge.BuildConfig
	log     zerolog.Logger

	mu       sync.Mutex
	manifest Manifest
}

// New creates a pipeline for one build configuration.
func New(adapter *bridge.Adapter, cfg *bridge.BuildConfig, log zerolog.Logger) *Pipeline {
	return &Pipeline{adapter: adapter, cfg: cfg, log: log}
}

// Manifest returns the manifest of the most recent successful build.
func (p *Pipeline) Manifest() Manifest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.manifest
}

// Build cleans the known output sub-directories, bundles the entry points and
// writes the hashed outputs plus the manifest.
func (p *Pipeline) Build() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.adapter.CleanOutputs(); err != nil {
		return fmt.Errorf("clean outputs: %w", err)
	}

	aliases := make(map[string]string, len(p.cfg.Aliases))
	for _, alias := range p.cfg.Aliases {
		aliases[alias.Name] = alias.Path
	}

	p.log.Info().Strs("entrypoints", p.cfg.EntryPoints).Msg("Building assets")

	result := api.Build(api.BuildOptions{
		AbsWorkingDir:     p.cfg.WorkDir,
		EntryPoints:       p.cfg.EntryPoints,
		Bundle:            true,
		Write:             false,
		Outdir:            p.cfg.OutDir,
		AssetNames:        "[name]",
		PublicPath:        "/",
		Format:            api.FormatESModule,
		Alias:             aliases,
		Loader:            assetLoaders(),
		MinifyWhitespace:  p.cfg.Minify,
		MinifyIdentifiers: p.cfg.Minify,
		MinifySyntax:      p.cfg.Minify,
		TreeShaking:       api.TreeShakingTrue,
		Sourcemap:         cond(p.cfg.Sourcemap, api.SourceMapLinked, api.SourceMapNone),
		Metafile:          true,
	})

	if len(result.Errors) > 0 {
		for _, msg := range result.Errors {
			p.log.Error().Str("error", msg.Text).Msg("Build error")
		}
		return errors.New("esbuild failed with errors")
	}

	placed, err := p.placeOutputs(result.OutputFiles)
	if err != nil {
		return err
	}

	manifest, err := buildManifest([]byte(result.Metafile), placed, p.cfg.WorkDir, p.cfg.OutDir)
	if err != nil {
		return err
	}

	if p.cfg.Manifest {
		if err := writeManifest(p.cfg.CacheDir, []byte(result.Metafile), manifest); err != nil {
			return err
		}
	}

	p.manifest = manifest
	return nil
}

// placeOutputs writes the in-memory build outputs to their hashed locations
// and returns the mapping from esbuild's planned path to the final one, both
// relative to the output directory. References between outputs are rewritten
// against the final placement; source maps follow their partner file.
func (p *Pipeline) placeOutputs(files []api.OutputFile) (map[string]string, error) {
	placed := make(map[string]string, len(files))
	outputs := make(map[string][]byte, len(files))
	var maps []string

	for _, file := range files {
		rel, err := filepath.Rel(p.cfg.OutDir, file.Path)
		if err != nil {
			return nil, fmt.Errorf("place outputs: %w", err)
		}
		rel = filepath.ToSlash(rel)
		outputs[rel] = file.Contents

		if strings.HasSuffix(rel, ".map") {
			maps = append(maps, rel)
			continue
		}

		ext := path.Ext(rel)
		name := strings.TrimSuffix(path.Base(rel), ext)

		template := bridge.AssetFileNames(rel)
		if ext == ".js" || ext == ".mjs" {
			template = bridge.EntryFileNames()
		}

		placed[rel] = bridge.RenderAssetPath(template, name, bridge.HashContents(file.Contents), ext)
	}

	for _, rel := range maps {
		partner := strings.TrimSuffix(rel, ".map")
		if hashed, ok := placed[partner]; ok {
			placed[rel] = hashed + ".map"
		} else {
			placed[rel] = rel
		}
	}

	rewrite := referenceRewriter(placed)
	for rel, contents := range outputs {
		if ext := path.Ext(strings.TrimSuffix(rel, ".map")); ext == ".js" || ext == ".mjs" || ext == ".css" {
			contents = rewrite(contents)
		}
		if err := p.writeFile(placed[rel], contents); err != nil {
			return nil, err
		}
	}

	return placed, nil
}

// referenceRewriter maps the planned output paths embedded in bundled code to
// their final locations. Root-relative references (the public path form) move
// to the hashed path; bare source map references stay sibling-relative.
func referenceRewriter(placed map[string]string) func([]byte) []byte {
	var pairs []string
	for rel, hashed := range placed {
		if strings.HasSuffix(rel, ".map") {
			pairs = append(pairs, path.Base(rel), path.Base(hashed))
			continue
		}
		pairs = append(pairs, "/"+rel, "/"+hashed)
	}
	replacer := strings.NewReplacer(pairs...)
	return func(contents []byte) []byte {
		return []byte(replacer.Replace(string(contents)))
	}
}

func (p *Pipeline) writeFile(rel string, contents []byte) error {
	outPath := filepath.Join(p.cfg.OutDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	if err := os.WriteFile(outPath, contents, 0644); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	p.log.Debug().Str("file", rel).Msg("Built file")
	return nil
}

// assetLoaders routes image and font files through the file loader so they
// come out as standalone hashed assets rather than inlined data.
func assetLoaders() map[string]api.Loader {
	loaders := make(map[string]api.Loader, 9)
	for _, ext := range []string{".gif", ".jpg", ".jpeg", ".png", ".webp", ".avif", ".svg", ".woff", ".woff2"} {
		loaders[ext] = api.LoaderFile
	}
	return loaders
}

func cond[T any](condition bool, trueVal, falseVal T) T {
	if condition {
		return trueVal
	}
	return falseVal
}
