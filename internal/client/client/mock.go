package client

import (
	"context"
	"encoding/hex"
	"sync"

	"github.com/dmitrijs2005/ghostproof/internal/client/identity"
	"github.com/dmitrijs2005/ghostproof/internal/client/models"
	"github.com/dmitrijs2005/ghostproof/internal/common"
)

// MockClient is an in-memory stand-in for the proof gateway. Proof bytes are
// derived deterministically from the request, so the same (tokenID, amount)
// always yields the same reference. Useful for demos and offline work.
type MockClient struct {
	mu     sync.Mutex
	proofs map[string]*ZKProof
}

func NewMockClient() *MockClient {
	return &MockClient{proofs: make(map[string]*ZKProof)}
}

func (c *MockClient) Close() error { return nil }

func (c *MockClient) SetCredential(id identity.Identity) {}

func (c *MockClient) GenerateProof(ctx context.Context, tokenID string, amount string) (*ZKProof, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	seed := []byte(tokenID + "-" + amount)
	proof := make([]byte, 32)
	for i := range proof {
		proof[i] = seed[i%len(seed)]
	}
	zk := &ZKProof{
		Proof:         proof,
		PublicSignals: []string{tokenID, amount},
		Reference:     hex.EncodeToString(proof),
	}
	c.mu.Lock()
	c.proofs[zk.Reference] = zk
	c.mu.Unlock()
	return zk, nil
}

func (c *MockClient) VerifyProof(ctx context.Context, reference string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	c.mu.Lock()
	_, ok := c.proofs[reference]
	c.mu.Unlock()
	return ok, nil
}

func (c *MockClient) FetchWalletInfo(ctx context.Context, principal string) (*models.WalletInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if principal == "" {
		return nil, common.ErrInvalidInput
	}
	return &models.WalletInfo{
		Address:      principal,
		TotalBalance: "1350.00",
		Tokens: []models.TokenInfo{
			{Symbol: "GHOST", Balance: "1000.00"},
			{Symbol: "TEST", Balance: "250.00"},
			{Symbol: "DEMO", Balance: "100.00"},
		},
	}, nil
}

func (c *MockClient) Ping(ctx context.Context) error { return ctx.Err() }

var _ Client = (*MockClient)(nil)
