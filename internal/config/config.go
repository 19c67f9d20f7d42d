// Package config loads the optional driver configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/mitchellh/mapstructure"
)

// DefaultFile is looked up in the working directory when no explicit path is
// given.
const DefaultFile = ".yaipl.yaml"

type Config struct {
	Debug bool   `mapstructure:"debug"`
	Color string `mapstructure:"color"`
}

func Default() *Config {
	return &Config{Color: "auto"}
}

func Load(path string) (*Config, error) {
	yamlBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%q): %w", path, err)
	}
	return parse(yamlBytes)
}

// LoadDefault loads DefaultFile when present and falls back to defaults when
// it is missing.
func LoadDefault() (*Config, error) {
	cfg, err := Load(DefaultFile)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func parse(yamlBytes []byte) (*Config, error) {
	if len(bytes.TrimSpace(yamlBytes)) == 0 {
		return Default(), nil
	}

	jsonBytes, err := yaml.YAMLToJSON(yamlBytes)
	if err != nil {
		return nil, fmt.Errorf("yaml.YAMLToJSON: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(jsonBytes, &raw); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}
	if raw == nil {
		return Default(), nil
	}

	cfg := Default()
	if err := mapstructure.Decode(raw, cfg); err != nil {
		return nil, fmt.Errorf("mapstructure.Decode: %w", err)
	}

	switch cfg.Color {
	case "auto", "always", "never":
	default:
		return nil, fmt.Errorf("invalid color mode: %q", cfg.Color)
	}
	return cfg, nil
}
