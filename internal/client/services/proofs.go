package services

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/dmitrijs2005/ghostproof/internal/client/client"
	"github.com/dmitrijs2005/ghostproof/internal/client/identity"
	"github.com/dmitrijs2005/ghostproof/internal/client/models"
	"github.com/dmitrijs2005/ghostproof/internal/client/repositories/proofs"
	"github.com/dmitrijs2005/ghostproof/internal/common"
	"github.com/dmitrijs2005/ghostproof/internal/logging"
)

// GenerateOutcome is the structured result of a proof generation attempt.
// OK with a Record means the proof was produced and recorded; otherwise Err
// carries the sentinel cause and Message a short operator-facing explanation.
type GenerateOutcome struct {
	OK      bool
	Record  *models.ProofRecord
	Err     error
	Message string
}

// ProofService drives proof generation and verification against the remote
// service and keeps the local ledger in step with what the service reports.
type ProofService struct {
	api  client.Client
	repo proofs.Repository
	log  logging.Logger

	mu   sync.Mutex
	cred identity.Identity
}

func NewProofService(api client.Client, repo proofs.Repository, log logging.Logger) *ProofService {
	return &ProofService{api: api, repo: repo, log: log}
}

// SetCredential installs (or, with nil, clears) the identity used for remote
// calls. Generation is refused while no credential is set.
func (s *ProofService) SetCredential(id identity.Identity) {
	s.mu.Lock()
	s.cred = id
	s.mu.Unlock()
	s.api.SetCredential(id)
}

func (s *ProofService) credential() identity.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cred
}

// GenerateProof requests a balance proof for (tokenSymbol, amount) and, on
// success, records it locally with pending status. Failures never touch the
// ledger.
func (s *ProofService) GenerateProof(ctx context.Context, tokenSymbol string, amount string) GenerateOutcome {
	if tokenSymbol == "" {
		return GenerateOutcome{
			Err:     fmt.Errorf("%w: token symbol is required", common.ErrInvalidInput),
			Message: "Token symbol is required",
		}
	}
	if err := validateAmount(amount); err != nil {
		return GenerateOutcome{Err: err, Message: "Amount must be a non-negative integer"}
	}
	if s.credential() == nil {
		return GenerateOutcome{
			Err:     common.ErrNotAuthenticated,
			Message: "Please log in before generating proofs",
		}
	}

	proof, err := s.api.GenerateProof(ctx, tokenSymbol, amount)
	if err != nil {
		return s.generateFailure(ctx, err)
	}

	record := &models.ProofRecord{
		Reference:     proof.Reference,
		TokenSymbol:   tokenSymbol,
		Timestamp:     common.UnixMilli(),
		Status:        models.StatusPending,
		Proof:         proof.Proof,
		PublicSignals: proof.PublicSignals,
	}
	if err := s.repo.Save(ctx, record); err != nil {
		return GenerateOutcome{
			Err:     fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err),
			Message: "Proof was generated but could not be recorded",
		}
	}

	s.log.Info(ctx, "proof generated", "reference", record.Reference, "token", tokenSymbol)
	return GenerateOutcome{OK: true, Record: record}
}

func (s *ProofService) generateFailure(ctx context.Context, err error) GenerateOutcome {
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		return GenerateOutcome{
			Err:     fmt.Errorf("%w: %v", common.ErrNotAuthenticated, err),
			Message: "Session is no longer valid, please log in again",
		}
	case errors.Is(err, common.ErrInvalidInput):
		return GenerateOutcome{Err: err, Message: "The proof service rejected the request"}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return GenerateOutcome{
			Err:     fmt.Errorf("%w: %v", common.ErrCancelled, err),
			Message: "Proof generation was cancelled",
		}
	default:
		s.log.Warn(ctx, "proof generation failed", "error", err)
		return GenerateOutcome{
			Err:     fmt.Errorf("%w: %v", common.ErrBackendUnavailable, err),
			Message: "The proof service is unavailable, please try again later",
		}
	}
}

// VerifyProof re-checks a recorded proof with the remote service and persists
// the verdict. An unknown reference reports (false, ErrNotFound) and leaves
// the ledger untouched; a reachable service always settles the record to
// verified or failed before the verdict is returned.
func (s *ProofService) VerifyProof(ctx context.Context, reference string) (bool, error) {
	record, err := s.repo.Get(ctx, reference)
	if err != nil {
		return false, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}
	if record == nil {
		return false, common.ErrNotFound
	}

	valid, err := s.api.VerifyProof(ctx, reference)
	if err != nil {
		return false, fmt.Errorf("%w: %v", common.ErrBackendUnavailable, err)
	}

	status := models.StatusFailed
	if valid {
		status = models.StatusVerified
	}
	if err := s.repo.UpdateStatus(ctx, reference, status); err != nil {
		return false, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}
	return valid, nil
}

// GetRecord reads a single ledger entry; a missing reference yields (nil, nil).
func (s *ProofService) GetRecord(ctx context.Context, reference string) (*models.ProofRecord, error) {
	return s.repo.Get(ctx, reference)
}

// History lists all recorded proofs, oldest first.
func (s *ProofService) History(ctx context.Context) ([]models.ProofRecord, error) {
	return s.repo.GetAll(ctx)
}

// DeleteRecord removes a ledger entry. Unknown references are a no-op.
func (s *ProofService) DeleteRecord(ctx context.Context, reference string) error {
	return s.repo.Delete(ctx, reference)
}

func validateAmount(amount string) error {
	n, ok := new(big.Int).SetString(amount, 10)
	if !ok {
		return fmt.Errorf("%w: amount %q is not an integer", common.ErrInvalidInput, amount)
	}
	if n.Sign() < 0 {
		return fmt.Errorf("%w: amount must not be negative", common.ErrInvalidInput)
	}
	return nil
}
