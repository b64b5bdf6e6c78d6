package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gophportal/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk representation. Zero values leave the
// corresponding Config field untouched.
type FileConfig struct {
	APIBaseURL     string         `json:"api_base_url" yaml:"api_base_url"`
	DataDir        string         `json:"data_dir" yaml:"data_dir"`
	RequestTimeout timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	RedirectDelay  timex.Duration `json:"redirect_delay" yaml:"redirect_delay"`
	DocumentTypeID int            `json:"document_type_id" yaml:"document_type_id"`
	CountryID      int            `json:"country_id" yaml:"country_id"`
	LogLevel       string         `json:"log_level" yaml:"log_level"`
	LogFormat      string         `json:"log_format" yaml:"log_format"`
}

// parseFile overlays cfg with the file at path. An empty path is no file.
func parseFile(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *FileConfig) apply(cfg *Config) {
	if fc.APIBaseURL != "" {
		cfg.APIBaseURL = fc.APIBaseURL
	}
	if fc.DataDir != "" {
		cfg.DataDir = fc.DataDir
	}
	if fc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.RedirectDelay.Duration > 0 {
		cfg.RedirectDelay = fc.RedirectDelay.Duration
	}
	if fc.DocumentTypeID != 0 {
		cfg.DocumentTypeID = fc.DocumentTypeID
	}
	if fc.CountryID != 0 {
		cfg.CountryID = fc.CountryID
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.LogFormat != "" {
		cfg.LogFormat = fc.LogFormat
	}
}
