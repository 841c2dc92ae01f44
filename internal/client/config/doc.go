// Package config loads runtime configuration for the GameZone client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file in the working directory, then GAMEZONE_* environment
//     variables.
//  3. Optional config file selected with -c or -config. Files ending in
//     .yaml or .yml are read as YAML, anything else as JSON.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the GameZone API
//	-d string   path of the local SQLite database
//	-t int      request timeout (seconds)
//	-l string   log level (debug, info, warn, error)
//
// # File schema
//
// Durations use timex.Duration, so they can be strings like "3s" or integer
// nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:8080",
//	  "database_path": "gamezone.db",
//	  "request_timeout": "10s",
//	  "log_level": "info",
//	  "log_format": "text",
//	  "avatar_bucket": "gamezone-avatars"
//	}
package config
