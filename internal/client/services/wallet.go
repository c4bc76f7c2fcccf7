package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/ghostproof/internal/client/client"
	"github.com/dmitrijs2005/ghostproof/internal/client/identity"
	"github.com/dmitrijs2005/ghostproof/internal/client/models"
	"github.com/dmitrijs2005/ghostproof/internal/common"
)

// WalletService reads token balances for the currently signed-in principal.
type WalletService struct {
	api client.Client

	mu   sync.Mutex
	cred identity.Identity
}

func NewWalletService(api client.Client) *WalletService {
	return &WalletService{api: api}
}

// SetCredential installs (or, with nil, clears) the identity whose balances
// are fetched.
func (s *WalletService) SetCredential(id identity.Identity) {
	s.mu.Lock()
	s.cred = id
	s.mu.Unlock()
}

// FetchBalances returns the wallet summary of the signed-in principal.
func (s *WalletService) FetchBalances(ctx context.Context) (*models.WalletInfo, error) {
	s.mu.Lock()
	cred := s.cred
	s.mu.Unlock()
	if cred == nil {
		return nil, common.ErrNotAuthenticated
	}
	return s.api.FetchWalletInfo(ctx, cred.Principal())
}
