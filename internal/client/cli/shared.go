package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/ghostproof/internal/client/share"
	"github.com/dmitrijs2005/ghostproof/internal/common"
)

// VerifySharedProof resolves a share link (or bare reference) and prints the
// verification verdict. It runs before the REPL when the program is started
// with -proof, so a recipient can check a link without knowing any commands.
func (a *App) VerifySharedProof(ctx context.Context, raw string) {

	ref := raw
	if decoded, err := share.Decode(raw); err == nil && decoded != "" {
		ref = decoded
	}

	valid, err := a.proofService.VerifyProof(ctx, ref)
	switch {
	case errors.Is(err, common.ErrNotFound):
		printlnFn("Proof not found")
	case err != nil:
		printlnFn("Could not verify proof:", err.Error())
	case valid:
		printlnFn("Proof verified")
	default:
		printlnFn("Invalid proof")
	}
}
