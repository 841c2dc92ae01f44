package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gamezone/internal/timex"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk form of Config. Absent keys leave the current
// values alone.
type FileConfig struct {
	APIBaseURL      *string         `json:"api_base_url" yaml:"api_base_url"`
	DatabasePath    *string         `json:"database_path" yaml:"database_path"`
	RequestTimeout  *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	LogLevel        *string         `json:"log_level" yaml:"log_level"`
	LogFormat       *string         `json:"log_format" yaml:"log_format"`
	Debug           *bool           `json:"debug" yaml:"debug"`
	AvatarBucket    *string         `json:"avatar_bucket" yaml:"avatar_bucket"`
	AvatarRegion    *string         `json:"avatar_region" yaml:"avatar_region"`
	AvatarEndpoint  *string         `json:"avatar_endpoint" yaml:"avatar_endpoint"`
	AvatarPublicURL *string         `json:"avatar_public_url" yaml:"avatar_public_url"`
}

// parseFile overlays cfg with the file at path. An empty path is a no-op.
func parseFile(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
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

func (fc FileConfig) apply(cfg *Config) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&cfg.APIBaseURL, fc.APIBaseURL)
	set(&cfg.DatabasePath, fc.DatabasePath)
	set(&cfg.LogLevel, fc.LogLevel)
	set(&cfg.LogFormat, fc.LogFormat)
	set(&cfg.AvatarBucket, fc.AvatarBucket)
	set(&cfg.AvatarRegion, fc.AvatarRegion)
	set(&cfg.AvatarEndpoint, fc.AvatarEndpoint)
	set(&cfg.AvatarPublicURL, fc.AvatarPublicURL)

	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.Debug != nil {
		cfg.Debug = *fc.Debug
	}
}
