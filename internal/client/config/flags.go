package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/ghostproof/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the proof gateway (default from Config)
//	-g string   base URL of the identity gateway (default from Config)
//	-d string   path of the local ledger database (default from Config)
//	-m          use the in-memory mock backend
//	-i int      online check interval in seconds (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-d", "-m", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ProofGatewayAddr, "a", cfg.ProofGatewayAddr, "base URL of the proof gateway")
	fs.StringVar(&cfg.IdentityGatewayAddr, "g", cfg.IdentityGatewayAddr, "base URL of the identity gateway")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local ledger database")
	fs.BoolVar(&cfg.MockBackend, "m", cfg.MockBackend, "use the in-memory mock backend")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
