package bridge

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"slices"
	"strings"
)

// Extension groups for output partitioning, checked first match wins.
var (
	imageExts = []string{"gif", "jpg", "jpeg", "png", "webp", "avif", "svg"}
	fontExts  = []string{"woff", "woff2"}
)

// AssetDir classifies an output asset name into its destination
// sub-directory. Unknown extensions land at the top of the output directory.
func AssetDir(name string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	switch {
	case slices.Contains(imageExts, ext):
		return "images"
	case ext == "css":
		return "css"
	case slices.Contains(fontExts, ext):
		return "fonts"
	}
	return ""
}

// AssetFileNames returns the hashed output template for a non-script asset,
// partitioned by type so the framework finds files where it expects them.
func AssetFileNames(name string) string {
	if dir := AssetDir(name); dir != "" {
		return dir + "/[name].[hash][extname]"
	}
	return "[name].[hash][extname]"
}

// EntryFileNames is the template for bundled entry scripts. Scripts always
// land in js/ with a literal .js extension.
func EntryFileNames() string {
	return "js/[name].[hash].js"
}

// ChunkFileNames is the template for shared chunks split out of entries.
func ChunkFileNames() string {
	return "js/[name].[hash].js"
}

// HashContents returns the content hash embedded in output filenames.
func HashContents(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:8]
}

// RenderAssetPath expands a naming template for one concrete asset. The
// [extname] placeholder receives the extension with its leading dot.
func RenderAssetPath(template, name, hash, ext string) string {
	r := strings.NewReplacer(
		"[name]", name,
		"[hash]", hash,
		"[extname]", ext,
	)
	return r.Replace(template)
}
