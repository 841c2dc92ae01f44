package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/gamezone/internal/client/avatars"
	"github.com/dmitrijs2005/gamezone/internal/common"
	"github.com/dmitrijs2005/gamezone/internal/flagx"
)

// Config holds runtime settings for the GameZone client.
type Config struct {
	APIBaseURL     string
	DatabasePath   string
	RequestTimeout time.Duration
	LogLevel       string
	// LogFormat is "json" (zap) or "text" (slog key=value lines).
	LogFormat string
	Debug     bool

	// Avatar publishing is disabled while AvatarBucket is empty.
	AvatarBucket    string
	AvatarRegion    string
	AvatarEndpoint  string
	AvatarPublicURL string
	AvatarAccessKey string
	AvatarSecretKey string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080"
	c.DatabasePath = common.DefaultDatabasePath
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "info"
	c.LogFormat = "json"
	c.AvatarRegion = "us-east-1"
}

// Avatars returns the S3 options for avatar publishing.
func (c *Config) Avatars() avatars.Options {
	return avatars.Options{
		Bucket:    c.AvatarBucket,
		Region:    c.AvatarRegion,
		Endpoint:  c.AvatarEndpoint,
		PublicURL: c.AvatarPublicURL,
		AccessKey: c.AvatarAccessKey,
		SecretKey: c.AvatarSecretKey,
	}
}

// LoadConfig builds a Config from defaults, the environment, an optional
// config file and the flags found in args (os.Args[1:] in production).
// Later sources take precedence over earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := parseFile(cfg, flagx.ConfigFileFlag(args)); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
