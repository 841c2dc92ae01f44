package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gamezone/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   API base URL
//	-d string   database path
//	-t int      request timeout in seconds
//	-l string   log level
//
// Only these flags are picked out of args with flagx.FilterArgs; everything
// else belongs to the command tree.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-t", "-l"})

	fs := flagx.NewFlagSet("gamezone")

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the GameZone API")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local database")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
