package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080", c.ProofGatewayAddr)
	assert.Equal(t, "http://127.0.0.1:8081", c.IdentityGatewayAddr)
	assert.False(t, c.MockBackend)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, 15*time.Second, c.ReconnectInterval)
	assert.Equal(t, "ghostproof.db", c.DatabasePath)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://127.0.0.1:8080", cfg.ProofGatewayAddr)
	assert.Equal(t, 3*time.Second, cfg.OnlineCheckInterval)
}

func Test_parseEnv_Overlays(t *testing.T) {
	t.Setenv("GHOST_GATEWAY_ADDR", "http://gw.example:9999")
	t.Setenv("GHOST_MOCK_BACKEND", "true")
	t.Setenv("GHOST_ONLINE_CHECK_INTERVAL", "7s")

	var cfg Config
	cfg.LoadDefaults()
	parseEnv(&cfg)

	assert.Equal(t, "http://gw.example:9999", cfg.ProofGatewayAddr)
	assert.True(t, cfg.MockBackend)
	assert.Equal(t, 7*time.Second, cfg.OnlineCheckInterval)
	// untouched fields keep their defaults
	assert.Equal(t, "ghostproof.db", cfg.DatabasePath)
}

func Test_parseEnv_MalformedValuesIgnored(t *testing.T) {
	t.Setenv("GHOST_MOCK_BACKEND", "not-a-bool")
	t.Setenv("GHOST_ONLINE_CHECK_INTERVAL", "soon")

	var cfg Config
	cfg.LoadDefaults()
	parseEnv(&cfg)

	assert.False(t, cfg.MockBackend)
	assert.Equal(t, 3*time.Second, cfg.OnlineCheckInterval)
}
