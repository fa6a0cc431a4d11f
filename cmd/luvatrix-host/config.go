package main

import (
	"os"

	"gopkg.in/yaml.v3"

	luvatrix "github.com/0202alcc/luvatrix-sub001"
)

// Config is the host configuration file (YAML).
type Config struct {
	// AppDir is the application directory containing page.json.
	AppDir string `yaml:"app_dir"`
	// FPS is the engine frame rate target.
	FPS int `yaml:"fps"`
	// SnapshotPNG, when set, receives the final frame on shutdown.
	SnapshotPNG string `yaml:"snapshot_png"`
	// Verbose enables logging to stderr.
	Verbose bool `yaml:"verbose"`
}

func defaultConfig() Config {
	return Config{FPS: 30}
}

// loadConfig reads a YAML config file over the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, luvatrix.Configf("config %s: %v", path, err)
	}
	if cfg.FPS < 1 {
		return cfg, luvatrix.Configf("config %s: fps must be >= 1", path)
	}
	return cfg, nil
}
