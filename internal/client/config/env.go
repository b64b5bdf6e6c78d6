package config

import (
	"fmt"
	"time"
)

// Environment variables read by parseEnv.
const (
	EnvAPIBaseURL     = "PORTAL_API_URL"
	EnvDataDir        = "PORTAL_DATA_DIR"
	EnvRequestTimeout = "PORTAL_REQUEST_TIMEOUT"
	EnvLogLevel       = "PORTAL_LOG_LEVEL"
	EnvLogFormat      = "PORTAL_LOG_FORMAT"
)

func parseEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAPIBaseURL); ok && v != "" {
		cfg.APIBaseURL = v
	}
	if v, ok := lookup(EnvDataDir); ok && v != "" {
		cfg.DataDir = v
	}
	if v, ok := lookup(EnvRequestTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRequestTimeout, err)
		}
		cfg.RequestTimeout = d
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		cfg.LogFormat = v
	}
	return nil
}
