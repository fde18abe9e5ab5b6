// Package config loads runtime configuration for the GamingClub CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c / --config. Files ending in
//     .yaml or .yml are read as YAML, anything else as JSON.
//  3. Command-line flags. Only flags that were set explicitly override the
//     earlier sources.
//
// # File schema
//
// Durations use timex.Duration, so they can be strings like "2s" or integer
// nanoseconds. Keys that are absent keep their previous value:
//
//	{
//	  "storage_backend": "sqlite",
//	  "sqlite_path": "data/gamingclub.db",
//	  "poll_interval": "2s",
//	  "payment_delay": "3s",
//	  "payment_success_rate": 0.9,
//	  "image_store": "data"
//	}
//
// The package does not read environment variables.
package config
