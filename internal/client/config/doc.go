// Package config loads runtime configuration for the ghostproof CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, optionally loaded from a .env file (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the proof gateway
//	-g string   base URL of the identity gateway
//	-d string   path of the local ledger database
//	-m          use the in-memory mock backend
//	-i int      online status check interval (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "3s" or integer nanoseconds:
//
//	{
//	  "proof_gateway_addr": "http://127.0.0.1:8080",
//	  "identity_gateway_addr": "http://127.0.0.1:8081",
//	  "mock_backend": false,
//	  "online_check_interval": "3s",
//	  "reconnect_interval": "15s",
//	  "database_path": "ghostproof.db"
//	}
//
// Primary API
//
//   - type Config                     — holds gateway addresses, intervals and file paths
//   - func LoadConfig() *Config       — builds Config by applying defaults, env, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
package config
