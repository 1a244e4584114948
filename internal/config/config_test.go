package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "https://dummyjson.com", cfg.Catalog.BaseURL)
	assert.Equal(t, 10, cfg.Catalog.TimeoutSeconds)
	assert.Equal(t, 5, cfg.Report.TopProducts)
	assert.Equal(t, 10, cfg.Report.LowQuantityThreshold)
	assert.Equal(t, "output", cfg.Output.Dir)
}

func TestLoadLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
catalog:
  base_url: http://localhost:9999
report:
  top_products: 3
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999", cfg.Catalog.BaseURL)
	assert.Equal(t, 3, cfg.Report.TopProducts)
	assert.Equal(t, 10, cfg.Catalog.TimeoutSeconds, "unset keys keep defaults")
	assert.Equal(t, "output", cfg.Output.Dir)
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("catalog: [not: a mapping"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestCatalogTimeout(t *testing.T) {
	cfg := Default()
	cfg.Catalog.TimeoutSeconds = 30
	assert.Equal(t, 30*time.Second, cfg.CatalogTimeout())

	cfg.Catalog.TimeoutSeconds = 0
	assert.Equal(t, 10*time.Second, cfg.CatalogTimeout())
}
