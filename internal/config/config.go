// Package config handles bm configuration and path resolution.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvHome overrides the bm home directory when set.
const EnvHome = "BM_HOME"

const (
	ConfigFile = "config.yaml"
	StoreFile  = "bookmarks.csv"
	CacheDir   = "cache"
	IndexFile  = "index.db"
	LogFile    = "browse.log"
)

// DefaultOpenRate is the default maximum number of targets opened per
// second during a batch open.
const DefaultOpenRate = 4

// Config is the bm configuration stored in config.yaml under the bm home
// directory. Zero values mean "use the default".
type Config struct {
	Store    string  `yaml:"store,omitempty"`     // path to the bookmark file
	Browser  string  `yaml:"browser,omitempty"`   // command used to open targets; empty uses the system opener
	OpenRate float64 `yaml:"open_rate,omitempty"` // max opens per second in batch open
}

// Home returns the bm home directory: $BM_HOME if set, otherwise bm/ under
// the user configuration directory.
func Home() (string, error) {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config dir: %w", err)
	}
	return filepath.Join(base, "bm"), nil
}

// ConfigPath returns the path to config.yaml under home.
func ConfigPath(home string) string {
	return filepath.Join(home, ConfigFile)
}

// StorePath returns the default bookmark file path under home.
func StorePath(home string) string {
	return filepath.Join(home, StoreFile)
}

// IndexPath returns the path to the ephemeral SQLite index under home.
func IndexPath(home string) string {
	return filepath.Join(home, CacheDir, IndexFile)
}

// LogPath returns the path to the browse session log under home.
func LogPath(home string) string {
	return filepath.Join(home, LogFile)
}

// Load reads configuration from home. A missing config file yields the
// defaults rather than an error.
func Load(home string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(home))
	if err != nil {
		if os.IsNotExist(err) {
			cfg := &Config{}
			cfg.applyDefaults(home)
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults(home)
	return &cfg, nil
}

// Save writes configuration to config.yaml under home, creating the
// directory if needed.
func (c *Config) Save(home string) error {
	if err := os.MkdirAll(home, 0755); err != nil {
		return fmt.Errorf("creating bm home: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(ConfigPath(home), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func (c *Config) applyDefaults(home string) {
	if c.Store == "" {
		c.Store = StorePath(home)
	}
	if c.OpenRate <= 0 {
		c.OpenRate = DefaultOpenRate
	}
}
