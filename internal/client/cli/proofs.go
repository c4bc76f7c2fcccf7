package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dmitrijs2005/ghostproof/internal/client/share"
	"github.com/dmitrijs2005/ghostproof/internal/common"
)

// Prove interactively collects a token symbol and amount, generates a balance
// proof and records it in the local ledger.
func (a *App) Prove(ctx context.Context) error {

	token, err := GetSimpleText(a.reader, "Enter token symbol (e.g. GHOST)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	amount, err := GetSimpleText(a.reader, "Enter amount to prove", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	out := a.proofService.GenerateProof(ctx, token, amount)
	if !out.OK {
		log.Printf("%s", out.Message)
		return out.Err
	}

	printlnFn("Proof recorded")
	printlnFn("  Reference:", out.Record.Reference)
	return nil
}

// Verify re-checks a recorded proof with the service and prints the verdict.
func (a *App) Verify(ctx context.Context, args []string) error {

	ref, err := a.argOrPrompt(args, "Enter proof reference to verify")
	if err != nil {
		return err
	}

	valid, err := a.proofService.VerifyProof(ctx, ref)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			printlnFn("Proof not found")
		} else {
			log.Printf("Error: %s", err.Error())
		}
		return err
	}

	if valid {
		printlnFn("Proof verified")
	} else {
		printlnFn("Invalid proof")
	}
	return nil
}

// History lists every recorded proof, oldest first.
func (a *App) History(ctx context.Context) error {
	records, err := a.proofService.History(ctx)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	if len(records) == 0 {
		printlnFn("No proofs recorded yet")
		return nil
	}

	for _, rec := range records {
		ts := time.UnixMilli(rec.Timestamp).Format(time.RFC3339)
		printlnFn(fmt.Sprintf("%s  %-8s %-9s %s", ts, rec.TokenSymbol, string(rec.Status), rec.Reference))
	}
	return nil
}

// Share prints a share link for a recorded proof.
func (a *App) Share(ctx context.Context, args []string) error {

	ref, err := a.argOrPrompt(args, "Enter proof reference to share")
	if err != nil {
		return err
	}

	rec, err := a.proofService.GetRecord(ctx, ref)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}
	if rec == nil {
		printlnFn("Proof not found")
		return common.ErrNotFound
	}

	link, err := share.Encode(a.config.ShareBaseURL, ref)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	printlnFn("Share link:", link)
	return nil
}

// Delete removes a proof from the local ledger.
func (a *App) Delete(ctx context.Context, args []string) error {

	ref, err := a.argOrPrompt(args, "Enter proof reference to delete")
	if err != nil {
		return err
	}

	if err := a.proofService.DeleteRecord(ctx, ref); err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	printlnFn("Deleted")
	return nil
}

func (a *App) argOrPrompt(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	ref, err := GetSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return "", err
	}
	return ref, nil
}
