package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the veildiary CLI.
type Config struct {
	ServerEndpointAddr string
	SessionFile        string
	RequestTimeout     time.Duration
}

// LoadDefaults populates c with defaults. The session file lives under the
// user's home directory, or the working directory when that is unknown.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.SessionFile = DefaultSessionFile()
	c.RequestTimeout = 10 * time.Second
}

// DefaultSessionFile returns ~/.veildiary/session.json.
func DefaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".veildiary", "session.json")
	}
	return filepath.Join(home, ".veildiary", "session.json")
}

// Load builds a Config from defaults, the JSON file at path (skipped when
// path is empty) and the environment.
func Load(path string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, path); err != nil {
		return nil, err
	}
	parseEnv(cfg, lookup)
	return cfg, nil
}
