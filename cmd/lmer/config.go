package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/tailscale/hujson"
)

// Config holds the driver defaults that flags can override.
type Config struct {
	Count  int     `json:"count,omitempty"`
	Eps    float64 `json:"eps,omitempty"`
	Seed   uint64  `json:"seed,omitempty"`
	OutDir string  `json:"out_dir,omitempty"`
}

// ConfigFileName is the config file looked up in the working directory
// when --config is not given.
const ConfigFileName = "lmer.json"

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Count:  1_000_000,
		Eps:    0.3,
		Seed:   42,
		OutDir: ".",
	}
}

// LoadConfig reads a HuJSON config file and merges it over the
// defaults. With an empty path the default file is optional; an
// explicit path must exist.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		path = ConfigFileName
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	std, err := hujson.Standardize(data)
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := json.Unmarshal(std, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Count < 1 {
		return cfg, fmt.Errorf("config %s: count must be positive", path)
	}
	if cfg.Eps <= 0 {
		return cfg, fmt.Errorf("config %s: eps must be positive", path)
	}
	return cfg, nil
}
