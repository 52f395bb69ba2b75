package di

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kilometers.ai/assets/internal/core/asset"
	"kilometers.ai/assets/internal/infrastructure/config"
)

func TestNewContainerFromConfig_WiresManifests(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "theme.yaml"), []byte(`
assets:
  - type: css
    source: style.css
`), 0o644))

	cfg := config.DefaultConfig()
	cfg.ManifestsDir = dir
	cfg.BaseURL = "https://example.com/"

	container, err := NewContainerFromConfig(cfg, io.Discard)
	require.NoError(t, err)

	require.Len(t, container.Manifests, 1)
	assert.Equal(t, 1, container.Registry.Len())

	require.NoError(t, container.RegisterContributor("late", func(_ context.Context, c *asset.Collector) error {
		c.Add(asset.Inline("late()").InFooter())
		return nil
	}))

	slots, _, err := container.Pages.RenderPage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `<link rel="stylesheet" href="https://example.com/plugins/style.css">`, slots.StyleBlock)
	assert.Equal(t, `<script>late()</script>`, slots.FooterScripts)
}

func TestNewContainerFromConfig_StrictPolicy(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ManifestsDir = filepath.Join(t.TempDir(), "none")
	cfg.Strict = true

	container, err := NewContainerFromConfig(cfg, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, asset.PolicyStrict, container.Collection.Policy())
	assert.Empty(t, container.Manifests)
}

func TestNewContainerFromConfig_InvalidManifest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("assets: {"), 0o644))

	cfg := config.DefaultConfig()
	cfg.ManifestsDir = dir

	_, err := NewContainerFromConfig(cfg, io.Discard)
	assert.Error(t, err)
}

func TestNewContainerFromConfig_InvalidLogLevel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.LogLevel = "loud"

	_, err := NewContainerFromConfig(cfg, io.Discard)
	assert.Error(t, err)
}
