// Package config loads runtime configuration for the authkeep client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. AUTHKEEP_* environment variables (see parseEnv).
//  4. Command-line flags (see parseFlags), which override everything else.
//
// Supported flags
//
//	-u string   base URL of the backend auth API
//	-t int      request timeout (seconds)
//	-d string   path to the local credentials database
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "15s" or integer nanoseconds:
//
//	{
//	  "server_base_url": "http://localhost:8080",
//	  "request_timeout": "15s",
//	  "refresh_check_interval": "30s",
//	  "refresh_expiry_margin": "1m",
//	  "database_path": "authkeep.db"
//	}
package config
