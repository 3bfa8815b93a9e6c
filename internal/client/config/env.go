package config

import "time"

// parseEnv overlays VEILDIARY_* variables. A malformed timeout is ignored.
func parseEnv(cfg *Config, lookup func(string) (string, bool)) {
	if lookup == nil {
		return
	}
	if v, ok := lookup("VEILDIARY_SERVER"); ok && v != "" {
		cfg.ServerEndpointAddr = v
	}
	if v, ok := lookup("VEILDIARY_SESSION_FILE"); ok && v != "" {
		cfg.SessionFile = v
	}
	if v, ok := lookup("VEILDIARY_TIMEOUT"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
}
