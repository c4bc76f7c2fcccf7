package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/ghostproof/internal/flagx"
	"github.com/dmitrijs2005/ghostproof/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "3s" or
// as integer nanoseconds. After parsing, values are copied into the runtime
// Config (which uses time.Duration).
type JsonConfig struct {
	ProofGatewayAddr    string         `json:"proof_gateway_addr"`
	IdentityGatewayAddr string         `json:"identity_gateway_addr"`
	MockBackend         *bool          `json:"mock_backend"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	ReconnectInterval   timex.Duration `json:"reconnect_interval"`
	DatabasePath        string         `json:"database_path"`
	TokenFile           string         `json:"token_file"`
	KeyFile             string         `json:"key_file"`
	ShareBaseURL        string         `json:"share_base_url"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Panics on read or unmarshal errors. Fields absent from the file leave the
// current value in place.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ProofGatewayAddr != "" {
		cfg.ProofGatewayAddr = jc.ProofGatewayAddr
	}
	if jc.IdentityGatewayAddr != "" {
		cfg.IdentityGatewayAddr = jc.IdentityGatewayAddr
	}
	if jc.MockBackend != nil {
		cfg.MockBackend = *jc.MockBackend
	}
	if jc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = time.Duration(jc.OnlineCheckInterval.Duration)
	}
	if jc.ReconnectInterval.Duration != 0 {
		cfg.ReconnectInterval = time.Duration(jc.ReconnectInterval.Duration)
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.TokenFile != "" {
		cfg.TokenFile = jc.TokenFile
	}
	if jc.KeyFile != "" {
		cfg.KeyFile = jc.KeyFile
	}
	if jc.ShareBaseURL != "" {
		cfg.ShareBaseURL = jc.ShareBaseURL
	}
}
