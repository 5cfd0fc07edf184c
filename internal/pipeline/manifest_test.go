package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const metafileFixture = `{
  "outputs": {
    "public/main.js": {
      "entryPoint": "src/js/entry/main.js",
      "inputs": {"src/js/entry/main.js": {}, "src/css/app.css": {}},
      "cssBundle": "public/main.css"
    },
    "public/main.js.map": {"inputs": {}},
    "public/main.css": {
      "inputs": {"src/css/app.css": {}}
    },
    "public/logo.png": {
      "inputs": {"src/images/logo.png": {}}
    }
  }
}`

func TestBuildManifest(t *testing.T) {
	placed := map[string]string{
		"main.js":     "js/main.aaaa1111.js",
		"main.js.map": "js/main.aaaa1111.js.map",
		"main.css":    "css/main.bbbb2222.css",
		"logo.png":    "images/logo.cccc3333.png",
	}

	manifest, err := buildManifest([]byte(metafileFixture), placed, "/app", "/app/public")
	require.NoError(t, err)

	require.Equal(t, Manifest{
		"src/js/entry/main.js": {
			File:    "js/main.aaaa1111.js",
			Src:     "src/js/entry/main.js",
			IsEntry: true,
			CSS:     []string{"css/main.bbbb2222.css"},
		},
		"src/css/app.css": {
			File: "css/main.bbbb2222.css",
			Src:  "src/css/app.css",
		},
		"src/images/logo.png": {
			File: "images/logo.cccc3333.png",
			Src:  "src/images/logo.png",
		},
	}, manifest)
}

func TestBuildManifestBadMetafile(t *testing.T) {
	_, err := buildManifest([]byte("not json"), nil, "/app", "/app/public")
	require.Error(t, err)
}

func TestWriteManifest(t *testing.T) {
	cacheDir := filepath.Join(t.TempDir(), ".lucky-esbuild")
	manifest := Manifest{
		"src/js/entry/main.js": {File: "js/main.aaaa1111.js", IsEntry: true},
	}

	require.NoError(t, writeManifest(cacheDir, []byte(metafileFixture), manifest))

	data, err := os.ReadFile(filepath.Join(cacheDir, manifestName))
	require.NoError(t, err)

	var loaded Manifest
	require.NoError(t, json.Unmarshal(data, &loaded))
	require.Equal(t, manifest, loaded)

	require.FileExists(t, filepath.Join(cacheDir, metafileName))
}
