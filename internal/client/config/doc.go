// Package config loads runtime configuration for the fittrack CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables prefixed with FITTRACK_ (see Config's env tags).
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string     backend base URL
//	-d string     local database file
//	-t duration   request timeout
//	-i duration   online check interval
//	-l string     log level
//
// # JSON schema
//
//	{
//	  "server_url": "https://api.fittrack.example",
//	  "database_path": "/var/lib/fittrack/client.db",
//	  "request_timeout": "15s",
//	  "online_check_interval": "1m",
//	  "log_level": "debug",
//	  "log_format": "json"
//	}
//
// The merged result is validated before LoadConfig returns it.
package config
