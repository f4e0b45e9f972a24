package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFilename is the default configuration filename.
const DefaultConfigFilename = "vmportal.yaml"

// TokenEnvVar holds the Hetzner Cloud API token.
const TokenEnvVar = "HCLOUD_TOKEN"

// Load reads the file at path, applies defaults and the token from the
// environment, and validates the result. An empty path loads defaults only.
func Load(path string) (*Config, error) {
	var data []byte
	if path != "" {
		var err error
		// #nosec G304
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg, err := LoadFromBytes(data)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// LoadFromBytes parses YAML and applies defaults and the environment token
// without validating.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	cfg.ApplyDefaults()
	cfg.HCloudToken = os.Getenv(TokenEnvVar)
	return &cfg, nil
}

// Resolve returns path if set, otherwise the file FindConfigFile locates,
// otherwise "" so that Load falls back to defaults.
func Resolve(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	found, err := FindConfigFile()
	if errors.Is(err, ErrConfigNotFound) {
		return "", nil
	}
	return found, err
}

// FindConfigFile searches the current directory, then each parent, for
// vmportal.yaml.
func FindConfigFile() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	dir := cwd
	for {
		path := filepath.Join(dir, DefaultConfigFilename)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("%w: %s", ErrConfigNotFound, DefaultConfigFilename)
}

// Save writes cfg to path with owner-only permissions.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
