// Package config loads runtime configuration for the GrowLog CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c / -config or GROWLOG_CONFIG.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the GrowLog HTTP server
//	-f string   path of the local SQLite session database
//	-i int      online status check interval (seconds)
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
// Intervals use timex.Duration, so values can be either strings like "3s"
// or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "database_file": "growlog.db",
//	  "online_check_interval": "3s",
//	  "log_level": "warn"
//	}
package config
