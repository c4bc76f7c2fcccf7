package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"proof_gateway_addr":    "http://gw.example:9000",
		"mock_backend":          true,
		"online_check_interval": "10s",
	})

	t.Run("loads from flags", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "http://gw.example:9000", cfg.ProofGatewayAddr)
		assert.True(t, cfg.MockBackend)
		assert.Equal(t, 10*time.Second, cfg.OnlineCheckInterval)
		// fields absent from the file keep their defaults
		assert.Equal(t, "ghostproof.db", cfg.DatabasePath)
	})

	t.Run("no CONFIG and no flags → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{
			ProofGatewayAddr:    "http://defaults:1234",
			OnlineCheckInterval: 42 * time.Second,
		}
		parseJson(cfg)

		assert.Equal(t, "http://defaults:1234", cfg.ProofGatewayAddr)
		assert.Equal(t, 42*time.Second, cfg.OnlineCheckInterval)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
