// Package config loads runtime configuration for the veildiary CLI.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file passed with --config.
//  3. VEILDIARY_SERVER, VEILDIARY_SESSION_FILE and VEILDIARY_TIMEOUT.
//  4. Command-line flags, applied by the cli package on top of Load.
//
// # JSON schema
//
// Durations accept "10s"-style strings or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "session_file": "/home/me/.veildiary/session.json",
//	  "request_timeout": "10s"
//	}
package config
