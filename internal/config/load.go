package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// FileName is the per-project config file name.
const FileName = "x3ships.yaml"

// ErrInvalidConfig is returned when a loaded config cannot drive an export.
var ErrInvalidConfig = errors.New("invalid config")

// Load loads configuration with priority: defaults < file < flags.
// projectDir, when not empty, is searched for a project config first.
func Load(projectDir string) (*Config, error) {
	cfg := Default()

	// Explicit path takes priority over the search
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile(projectDir)
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile looks for config next to the project, in the working
// directory, then in the user config directory.
func findConfigFile(projectDir string) string {
	var candidates []string
	if projectDir != "" {
		candidates = append(candidates, filepath.Join(projectDir, FileName))
	}
	candidates = append(candidates,
		FileName,
		filepath.Join(ConfigDir(), "config.yaml"),
	)

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "X3Ships")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "X3Ships")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "x3ships")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "x3ships")
	}
}

// loadFromFile merges a YAML file into cfg. Unknown keys are rejected so a
// misspelled setting does not silently fall back to its default.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks the settings every export relies on.
func (c *Config) Validate() error {
	switch {
	case c.Export.ExtensionName == "":
		return fmt.Errorf("%w: export.extension_name is empty", ErrInvalidConfig)
	case c.Export.ConnectionsCollection == "" || c.Export.PartsCollection == "":
		return fmt.Errorf("%w: collection names must not be empty", ErrInvalidConfig)
	case c.Export.FPSOverride < 0:
		return fmt.Errorf("%w: export.fps_override is negative", ErrInvalidConfig)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Logging.Level)
	}
	return nil
}
