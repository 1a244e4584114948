package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the run settings shared by the CLI and the server. Everything
// has a usable default so a missing config file is not an error.
type Config struct {
	Catalog CatalogConfig `yaml:"catalog"`
	Report  ReportConfig  `yaml:"report"`
	Output  OutputConfig  `yaml:"output"`
}

type CatalogConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type ReportConfig struct {
	TopProducts          int `yaml:"top_products"`
	LowQuantityThreshold int `yaml:"low_quantity_threshold"`
}

type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Catalog: CatalogConfig{
			BaseURL:        "https://dummyjson.com",
			TimeoutSeconds: 10,
		},
		Report: ReportConfig{
			TopProducts:          5,
			LowQuantityThreshold: 10,
		},
		Output: OutputConfig{
			Dir: "output",
		},
	}
}

// Load reads a YAML config file, layering it over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads the file when it exists and silently falls back to the
// defaults when it does not. Other errors still surface.
func LoadOrDefault(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// CatalogTimeout returns the catalog request timeout as a duration.
func (c Config) CatalogTimeout() time.Duration {
	if c.Catalog.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Catalog.TimeoutSeconds) * time.Second
}
