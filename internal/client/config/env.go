package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "GAMEZONE_"

// loadDotEnv copies variables from path into the process environment without
// overriding ones that are already set. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// parseEnv overlays cfg with GAMEZONE_* variables found by lookup.
func parseEnv(cfg *Config, lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"API_URL":           &cfg.APIBaseURL,
		"DATABASE":          &cfg.DatabasePath,
		"LOG_LEVEL":         &cfg.LogLevel,
		"LOG_FORMAT":        &cfg.LogFormat,
		"AVATAR_BUCKET":     &cfg.AvatarBucket,
		"AVATAR_REGION":     &cfg.AvatarRegion,
		"AVATAR_ENDPOINT":   &cfg.AvatarEndpoint,
		"AVATAR_PUBLIC_URL": &cfg.AvatarPublicURL,
		"AVATAR_ACCESS_KEY": &cfg.AvatarAccessKey,
		"AVATAR_SECRET_KEY": &cfg.AvatarSecretKey,
	}
	for name, dst := range strs {
		if v, ok := lookup(envPrefix + name); ok {
			*dst = v
		}
	}

	if v, ok := lookup(envPrefix + "TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sTIMEOUT: %w", envPrefix, err)
		}
		cfg.RequestTimeout = d
	}
	if v, ok := lookup(envPrefix + "DEBUG"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sDEBUG: %w", envPrefix, err)
		}
		cfg.Debug = b
	}
	return nil
}
