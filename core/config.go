// Package core holds project-level configuration shared by the capmap CLI
// and servers.
package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/capmap-hq/capmap/tokens"
)

// DefaultListen is the HTTP API listen address when none is configured.
const DefaultListen = ":8321"

// Config holds settings loaded from .capmap.yaml.
type Config struct {
	Server ServerSettings `yaml:"server"`
	Vault  VaultSettings  `yaml:"vault"`
	Tokens TokenSettings  `yaml:"tokens"`
}

// ServerSettings controls the HTTP API.
type ServerSettings struct {
	Listen string `yaml:"listen"`    // listen address (default ":8321")
	Seed   string `yaml:"seed_path"` // capability seed file; empty uses the built-in framework
	Watch  bool   `yaml:"watch"`     // reload the knowledge base when the seed file changes
}

// VaultSettings controls secret-store discovery. URL is a pointer so a
// config can explicitly disable the vault ("") as opposed to leaving
// discovery to KEY_VAULT_URL and the built-in default.
type VaultSettings struct {
	URL *string `yaml:"url"`
}

// TokenSettings controls token accounting.
type TokenSettings struct {
	Model string `yaml:"model"` // tokenizer model (default: gpt-3.5-turbo)
}

// LoadConfig reads .capmap.yaml from root and returns the parsed config
// with defaults applied. A missing file yields the defaults with no error.
func LoadConfig(root string) (*Config, error) {
	path := filepath.Join(root, ".capmap.yaml")

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if cfg.Server.Listen == "" {
		cfg.Server.Listen = DefaultListen
	}
	if cfg.Tokens.Model == "" {
		cfg.Tokens.Model = tokens.DefaultModel
	}
	return &cfg, nil
}
