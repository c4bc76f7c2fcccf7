package config

import "time"

// Config holds runtime settings for the ghostproof CLI.
//
// Fields:
//   - ProofGatewayAddr: base URL of the proof service HTTP gateway.
//   - IdentityGatewayAddr: base URL of the delegation identity gateway.
//   - MockBackend: when true, proofs are generated locally in memory instead
//     of calling the gateway.
//   - OnlineCheckInterval: how often the client probes gateway reachability
//     and re-checks the active session.
//   - ReconnectInterval: how often a lost session is re-probed.
//   - DatabasePath: sqlite file holding the local proof ledger.
//   - TokenFile: file caching the delegation token between runs.
//   - KeyFile: file holding the sealed device key.
//   - ShareBaseURL: base URL used when building proof share links.
type Config struct {
	ProofGatewayAddr    string
	IdentityGatewayAddr string
	MockBackend         bool
	OnlineCheckInterval time.Duration
	ReconnectInterval   time.Duration
	DatabasePath        string
	TokenFile           string
	KeyFile             string
	ShareBaseURL        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ProofGatewayAddr = "http://127.0.0.1:8080"
	c.IdentityGatewayAddr = "http://127.0.0.1:8081"
	c.MockBackend = false
	c.OnlineCheckInterval = 3 * time.Second
	c.ReconnectInterval = 15 * time.Second
	c.DatabasePath = "ghostproof.db"
	c.TokenFile = ".ghostproof-token"
	c.KeyFile = ".ghostproof-key"
	c.ShareBaseURL = "https://ghostproof.app/"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, a JSON file (if present) and command-line flags (if
// present). Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
