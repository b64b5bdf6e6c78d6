package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// Names of the configuration flags.
const (
	FlagConfig    = "config"
	FlagAPI       = "api"
	FlagDataDir   = "data-dir"
	FlagTimeout   = "timeout"
	FlagRedirect  = "redirect"
	FlagLogLevel  = "log-level"
	FlagLogFormat = "log-format"
)

// BindFlags declares the configuration flags on fs. The root command binds
// them as persistent flags so every subcommand accepts them.
func BindFlags(fs *pflag.FlagSet) {
	fs.StringP(FlagConfig, "c", "", "path to a JSON or YAML config file")
	fs.StringP(FlagAPI, "a", "", "base URL of the account API")
	fs.StringP(FlagDataDir, "d", "", "directory for local session storage")
	fs.IntP(FlagTimeout, "t", 0, "request timeout in seconds")
	fs.IntP(FlagRedirect, "r", 0, "delay before the login page after registering, in milliseconds")
	fs.StringP(FlagLogLevel, "l", "", "log level: debug, info, warn, error")
	fs.StringP(FlagLogFormat, "f", "", "log format: text, json, zap")
}

// applyFlags overlays cfg with the flags explicitly set on fs.
func applyFlags(cfg *Config, fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		if err != nil || !f.Changed {
			return
		}
		switch f.Name {
		case FlagAPI:
			cfg.APIBaseURL = f.Value.String()
		case FlagDataDir:
			cfg.DataDir = f.Value.String()
		case FlagLogLevel:
			cfg.LogLevel = f.Value.String()
		case FlagLogFormat:
			cfg.LogFormat = f.Value.String()
		case FlagTimeout:
			var n int
			if n, err = positive(fs, f.Name); err == nil {
				cfg.RequestTimeout = time.Duration(n) * time.Second
			}
		case FlagRedirect:
			var n int
			if n, err = positive(fs, f.Name); err == nil {
				cfg.RedirectDelay = time.Duration(n) * time.Millisecond
			}
		}
	})
	return err
}

func positive(fs *pflag.FlagSet, name string) (int, error) {
	n, err := fs.GetInt(name)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("--%s must be positive, got %d", name, n)
	}
	return n, nil
}
