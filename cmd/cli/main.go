package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/dmitrijs2005/ghostproof/internal/buildinfo"
	"github.com/dmitrijs2005/ghostproof/internal/client/cli"
	"github.com/dmitrijs2005/ghostproof/internal/client/config"
	"github.com/dmitrijs2005/ghostproof/internal/flagx"
)

// sharedProofFlag extracts the -proof flag: a share link (or bare reference)
// to verify right after startup, before the REPL begins.
func sharedProofFlag() string {
	var proof string
	args := flagx.FilterArgs(os.Args[1:], []string{"-proof"})
	fs := flag.NewFlagSet("proof", flag.ContinueOnError)
	fs.StringVar(&proof, "proof", "", "share link or proof reference to verify on startup")
	_ = fs.Parse(args)
	return proof
}

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if proof := sharedProofFlag(); proof != "" {
		app.VerifySharedProof(ctx, proof)
	}

	app.Run(ctx)

}
