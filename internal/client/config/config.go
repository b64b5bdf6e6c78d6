package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/gophportal/internal/filex"
	"github.com/spf13/pflag"
)

// Default registration values sent with every new account.
const (
	DefaultDocumentTypeID = 1
	DefaultCountryID      = 179
)

// Config holds runtime settings for the portal client.
type Config struct {
	APIBaseURL     string
	DataDir        string
	RequestTimeout time.Duration
	// RedirectDelay is how long the registration success view stays before
	// navigating to the login view.
	RedirectDelay  time.Duration
	DocumentTypeID int
	CountryID      int
	LogLevel       string
	LogFormat      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000/api"
	c.DataDir = filex.DefaultDataDir()
	c.RequestTimeout = 15 * time.Second
	c.RedirectDelay = 2 * time.Second
	c.DocumentTypeID = DefaultDocumentTypeID
	c.CountryID = DefaultCountryID
	c.LogLevel = "warn"
	c.LogFormat = "text"
}

// DBPath is the SQLite file holding the persisted session.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "portal.db")
}

// KeyPath is the file holding the key that seals the stored token.
func (c *Config) KeyPath() string {
	return filepath.Join(c.DataDir, "portal.key")
}

// LoadFlags builds a Config from defaults, the config file named by the
// config flag, the environment and finally the flags set on fs. fs must be
// parsed and carry the flags declared by BindFlags.
func LoadFlags(fs *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	path, err := fs.GetString(FlagConfig)
	if err != nil {
		return nil, err
	}
	if err := parseFile(cfg, path); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := applyFlags(cfg, fs); err != nil {
		return nil, err
	}
	return cfg, nil
}
