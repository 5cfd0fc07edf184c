package bridge

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAssetFileNames(t *testing.T) {
	tests := []struct {
		name     string
		asset    string
		expected string
	}{
		{name: "svg", asset: "logo.svg", expected: "images/[name].[hash][extname]"},
		{name: "png", asset: "photo.png", expected: "images/[name].[hash][extname]"},
		{name: "avif", asset: "photo.avif", expected: "images/[name].[hash][extname]"},
		{name: "stylesheet", asset: "style.css", expected: "css/[name].[hash][extname]"},
		{name: "woff2", asset: "font.woff2", expected: "fonts/[name].[hash][extname]"},
		{name: "woff", asset: "font.woff", expected: "fonts/[name].[hash][extname]"},
		{name: "unclassified", asset: "data.json", expected: "[name].[hash][extname]"},
		{name: "no extension", asset: "LICENSE", expected: "[name].[hash][extname]"},
		{name: "empty name", asset: "", expected: "[name].[hash][extname]"},
		{name: "case insensitive", asset: "LOGO.SVG", expected: "images/[name].[hash][extname]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, AssetFileNames(tt.asset))
		})
	}
}

func TestScriptFileNames(t *testing.T) {
	require.Equal(t, "js/[name].[hash].js", EntryFileNames())
	require.Equal(t, "js/[name].[hash].js", ChunkFileNames())
}

func TestRenderAssetPath(t *testing.T) {
	path := RenderAssetPath("images/[name].[hash][extname]", "logo", "abc12345", ".svg")
	require.Equal(t, "images/logo.abc12345.svg", path)

	path = RenderAssetPath(EntryFileNames(), "main", "abc12345", ".js")
	require.Equal(t, "js/main.abc12345.js", path)
}

func TestHashContents(t *testing.T) {
	hash := HashContents([]byte("body { color: red }"))
	require.Len(t, hash, 8)
	require.Equal(t, hash, HashContents([]byte("body { color: red }")))
	require.NotEqual(t, hash, HashContents([]byte("body { color: blue }")))
}
