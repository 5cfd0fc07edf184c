package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	manifestName = "manifest.json"
	metafileName = "meta.json"
)

// Manifest maps source asset names to their hashed output files. The
// framework reads it to emit correct script and stylesheet tags.
type Manifest map[string]ManifestEntry

type ManifestEntry struct {
	File    string   `json:"file"`
	Src     string   `json:"src,omitempty"`
	IsEntry bool     `json:"isEntry,omitempty"`
	CSS     []string `json:"css,omitempty"`
}

type buildMetadata struct {
	Outputs map[string]outputInfo `json:"outputs"`
}

type outputInfo struct {
	EntryPoint string                     `json:"entryPoint"`
	Inputs     map[string]json.RawMessage `json:"inputs"`
	CSSBundle  string                     `json:"cssBundle"`
}

// buildManifest joins the esbuild metafile with the hashed placement of each
// output file. Metafile paths are relative to the working directory, placed
// keys to the output directory.
func buildManifest(metafile []byte, placed map[string]string, workDir, outDir string) (Manifest, error) {
	var metadata buildMetadata
	if err := json.Unmarshal(metafile, &metadata); err != nil {
		return nil, fmt.Errorf("parse metafile: %w", err)
	}

	outPrefix, err := filepath.Rel(workDir, outDir)
	if err != nil {
		return nil, fmt.Errorf("build manifest: %w", err)
	}
	outPrefix = filepath.ToSlash(outPrefix) + "/"

	manifest := make(Manifest, len(metadata.Outputs))
	for outputPath, info := range metadata.Outputs {
		if strings.HasSuffix(outputPath, ".map") {
			continue
		}

		rel := strings.TrimPrefix(outputPath, outPrefix)
		file, ok := placed[rel]
		if !ok {
			continue
		}

		key := rel
		entry := ManifestEntry{File: file}
		switch {
		case info.EntryPoint != "":
			key = info.EntryPoint
			entry.Src = info.EntryPoint
			entry.IsEntry = true
			if css, ok := placed[strings.TrimPrefix(info.CSSBundle, outPrefix)]; ok && info.CSSBundle != "" {
				entry.CSS = []string{css}
			}
		case len(info.Inputs) == 1:
			for input := range info.Inputs {
				key = input
				entry.Src = input
			}
		}
		manifest[key] = entry
	}

	return manifest, nil
}

// writeManifest persists the manifest and the raw metafile under the cache
// directory so the framework and tooling can inspect the last build.
func writeManifest(cacheDir string, metafile []byte, manifest Manifest) error {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(cacheDir, manifestName), data, 0600); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(cacheDir, metafileName), metafile, 0600); err != nil {
		return fmt.Errorf("write metafile: %w", err)
	}
	return nil
}
