package cli

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/dmitrijs2005/ghostproof/internal/common"
)

// Balances fetches and prints the wallet summary of the signed-in principal.
func (a *App) Balances(ctx context.Context) error {
	info, err := a.walletService.FetchBalances(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNotAuthenticated) {
			log.Printf("Please log in first")
		} else {
			log.Printf("Error: %s", err.Error())
		}
		return err
	}

	printlnFn("Wallet:", info.Address)
	for _, tok := range info.Tokens {
		printlnFn(fmt.Sprintf("  %-8s %s", tok.Symbol, tok.Balance))
	}
	printlnFn("Total:", info.TotalBalance)
	return nil
}
