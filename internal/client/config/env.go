package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from environment variables, loading a
// .env file first when one is present. Unset or malformed variables leave the
// current value in place.
//
// Recognized variables:
//
//	GHOST_GATEWAY_ADDR           proof gateway base URL
//	GHOST_IDENTITY_GATEWAY_ADDR  identity gateway base URL
//	GHOST_MOCK_BACKEND           "true"/"false"
//	GHOST_ONLINE_CHECK_INTERVAL  duration, e.g. "3s"
//	GHOST_RECONNECT_INTERVAL     duration, e.g. "15s"
//	GHOST_DATABASE_PATH          sqlite file path
//	GHOST_TOKEN_FILE             delegation token cache path
//	GHOST_KEY_FILE               sealed device key path
//	GHOST_SHARE_BASE_URL         base URL for share links
func parseEnv(cfg *Config) {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	if v := os.Getenv("GHOST_GATEWAY_ADDR"); v != "" {
		cfg.ProofGatewayAddr = v
	}
	if v := os.Getenv("GHOST_IDENTITY_GATEWAY_ADDR"); v != "" {
		cfg.IdentityGatewayAddr = v
	}
	if v := os.Getenv("GHOST_MOCK_BACKEND"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.MockBackend = b
		}
	}
	if v := os.Getenv("GHOST_ONLINE_CHECK_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.OnlineCheckInterval = d
		}
	}
	if v := os.Getenv("GHOST_RECONNECT_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ReconnectInterval = d
		}
	}
	if v := os.Getenv("GHOST_DATABASE_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("GHOST_TOKEN_FILE"); v != "" {
		cfg.TokenFile = v
	}
	if v := os.Getenv("GHOST_KEY_FILE"); v != "" {
		cfg.KeyFile = v
	}
	if v := os.Getenv("GHOST_SHARE_BASE_URL"); v != "" {
		cfg.ShareBaseURL = v
	}
}
