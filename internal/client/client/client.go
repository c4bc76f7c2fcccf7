// Package client contains the remote proof-service capability: the Client
// interface the services depend on, an HTTP implementation talking to the
// proof gateway, and an in-memory mock used in offline development mode.
package client

import (
	"context"

	"github.com/dmitrijs2005/ghostproof/internal/client/identity"
	"github.com/dmitrijs2005/ghostproof/internal/client/models"
)

// ZKProof is the proof-service response for a generated proof. Reference is
// the unique string under which the service (and the local ledger) know the
// proof.
type ZKProof struct {
	Proof         []byte   `json:"proof"`
	PublicSignals []string `json:"public_signals"`
	Reference     string   `json:"reference"`
}

// Client is the remote proof-service capability.
//
// SetCredential installs (or, with nil, clears) the identity used to
// authorize outbound calls; implementations must tolerate concurrent use.
type Client interface {
	Close() error
	SetCredential(id identity.Identity)
	GenerateProof(ctx context.Context, tokenID string, amount string) (*ZKProof, error)
	VerifyProof(ctx context.Context, reference string) (bool, error)
	FetchWalletInfo(ctx context.Context, principal string) (*models.WalletInfo, error)
	Ping(ctx context.Context) error
}
