package manifest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kilometers.ai/assets/internal/core/asset"
)

const themeManifest = `
name: theme
assets:
  - type: css
    source: theme/style.css
    priority: 90
  - type: js
    group: footer
    source: https://cdn.example.com/menu.js
    defer: true
  - source: "document.documentElement.className = 'js'"
`

func TestParse_DecodesRecords(t *testing.T) {
	m, err := Parse([]byte(themeManifest))
	require.NoError(t, err)

	assert.Equal(t, "theme", m.Name)
	require.Len(t, m.Assets, 3)

	css, err := asset.Normalize(m.Assets[0], "/", asset.PolicyStrict)
	require.NoError(t, err)
	assert.Equal(t, asset.TypeCSS, css.Type())
	assert.Equal(t, 90, css.Priority())
	assert.Equal(t, "/plugins/theme/style.css", css.Source())

	js, err := asset.Normalize(m.Assets[1], "/", asset.PolicyStrict)
	require.NoError(t, err)
	assert.Equal(t, asset.GroupFooter, js.Group())
	assert.True(t, js.Defer())
	assert.False(t, js.Async())
	assert.Equal(t, "https://cdn.example.com/menu.js", js.Source())

	assert.Nil(t, m.Assets[2].Type, "absent fields stay unset until normalization")
	inline, err := asset.Normalize(m.Assets[2], "/", asset.PolicyStrict)
	require.NoError(t, err)
	assert.Equal(t, asset.TypeInline, inline.Type())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "unknown_key", data: "assets:\n  - type: css\n    href: a.css\n"},
		{name: "wrong_priority_type", data: "assets:\n  - priority: high\n"},
		{name: "not_a_list", data: "assets: a.css\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	m, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, m.Assets)
}

func TestDiscover_LoadsInFileNameOrder(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	write("20-analytics.yml", "assets:\n  - type: js\n    source: stats.js\n")
	write("10-theme.yaml", themeManifest)
	write("notes.txt", "ignored")
	write(".hidden.yaml", "assets: []\n")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.yaml"), 0o755))

	contributors, err := Discover(dir)
	require.NoError(t, err)
	require.Len(t, contributors, 2)

	assert.Equal(t, "theme", contributors[0].Name())
	assert.Equal(t, "20-analytics", contributors[1].Name(), "unnamed manifests take their file name")
	assert.Equal(t, filepath.Join(dir, "20-analytics.yml"), contributors[1].Path())

	collector := asset.NewCollector()
	require.NoError(t, contributors[0].ContributeAssets(context.Background(), collector))
	assert.Equal(t, 3, collector.Len())
}

func TestDiscover_MissingDirectory(t *testing.T) {
	contributors, err := Discover(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Empty(t, contributors)
}

func TestDiscover_InvalidManifest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("assets: [\n"), 0o644))

	_, err := Discover(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.yaml")
}

func TestDiscover_ExampleManifestsAreStrictlyValid(t *testing.T) {
	contributors, err := Discover(filepath.Join("..", "..", "..", "examples", "plugins"))
	require.NoError(t, err)
	require.Len(t, contributors, 3)

	assert.Equal(t, []string{"theme", "analytics", "30-comments"},
		[]string{contributors[0].Name(), contributors[1].Name(), contributors[2].Name()})

	for _, c := range contributors {
		for i, rec := range c.Manifest().Assets {
			_, err := asset.Normalize(rec, "/", asset.PolicyStrict)
			assert.NoError(t, err, "%s asset #%d", c.Name(), i)
		}
	}
}
