package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config is the CLI configuration, read from a TOML file. Every field has
// a usable default so a missing file is not an error.
type Config struct {
	StorePath    string `toml:"store_path"`
	Currency     string `toml:"currency"`
	DefaultRange string `toml:"default_range"`
	AdvisorModel string `toml:"advisor_model"`
	LogLevel     string `toml:"log_level"`
}

// defaultConfig returns the configuration used when no file overrides it.
func defaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		StorePath:    filepath.Join(home, ".networth", "history"),
		Currency:     "EUR",
		DefaultRange: "1Y",
		LogLevel:     "info",
	}
}

// LoadConfig reads the TOML config at path, layered over the defaults.
// A missing file yields the defaults; a malformed file is an error.
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("cannot read config %q: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("cannot parse config %q: %w", path, err)
	}
	return cfg, nil
}
