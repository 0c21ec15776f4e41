// Package config holds the CLI configuration stored under the user's
// config directory
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultServerURL is used when no server is configured.
const DefaultServerURL = "http://localhost:8080"

type Config struct {
	ServerURL string `toml:"server_url"`
	Token     string `toml:"token"` // session token saved by login
}

func Load() (*Config, error) {
	cfg := &Config{
		ServerURL: DefaultServerURL,
	}

	if path := configFilePath(); path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, err
			}
		}
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultServerURL
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// Save writes the config back so the session token survives between
// invocations
func (c *Config) Save() error {
	path := configFilePath()
	if path == "" {
		return os.ErrNotExist
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("NOTESNAP_SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("NOTESNAP_TOKEN"); v != "" {
		cfg.Token = v
	}
}

func configFilePath() string {
	var configDir string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		configDir = filepath.Join(xdg, "notesnap")
	} else if home, err := os.UserHomeDir(); err == nil {
		configDir = filepath.Join(home, ".config", "notesnap")
	} else {
		return ""
	}

	return filepath.Join(configDir, "config.toml")
}
