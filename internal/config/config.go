// Package config loads the client configuration file and selects the
// storage backend at composition time.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tecai-sistemas/tecai/internal/storage"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Config is the client configuration.
type Config struct {
	APIURL  string        `yaml:"api_url"`
	Timeout time.Duration `yaml:"timeout"`
	Debug   bool          `yaml:"debug"`
	Storage StorageConfig `yaml:"storage"`
}

// StorageConfig selects the credential store backend.
type StorageConfig struct {
	Backend string `yaml:"backend"`
	Dir     string `yaml:"dir"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIURL:  "http://localhost:3000",
		Timeout: 20 * time.Second,
		Storage: StorageConfig{Backend: BackendFile},
	}
}

// DefaultPath returns the default config file location (~/.tecai/config.yaml).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".tecai", "config.yaml"), nil
}

// Load reads the config file at path, falling back to defaults when the
// file is missing. An empty path means the default location. Environment
// variables override the file: TECAI_API_URL, TECAI_DEBUG.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = defaultPath
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	applyEnv(&cfg)

	if cfg.Timeout <= 0 {
		cfg.Timeout = Default().Timeout
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = BackendFile
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("TECAI_API_URL")); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv("TECAI_DEBUG")); v == "1" || strings.EqualFold(v, "true") {
		cfg.Debug = true
	}
}

// NewStore builds the credential store the config selects.
func (c Config) NewStore() (storage.Store, error) {
	switch c.Storage.Backend {
	case BackendFile:
		return storage.NewFileStore(c.Storage.Dir)
	case BackendMemory:
		return storage.NewMemStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
}
