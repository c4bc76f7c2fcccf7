// Package proofs contains the repository for proof records stored in the
// local sqlite ledger.
package proofs

import (
	"context"

	"github.com/dmitrijs2005/ghostproof/internal/client/models"
)

// Repository defines storage operations on proof records.
//
// Contract:
//   - Save: upsert keyed by Reference; an existing record is fully replaced.
//   - Get: point lookup, (nil, nil) when the reference is absent.
//   - GetAll: every record ordered by Timestamp ascending.
//   - UpdateStatus: mutates only the status column; common.ErrNotFound when
//     the reference is absent.
//   - Delete: removal; a missing reference is a no-op.
type Repository interface {
	Save(ctx context.Context, rec *models.ProofRecord) error
	Get(ctx context.Context, reference string) (*models.ProofRecord, error)
	GetAll(ctx context.Context) ([]models.ProofRecord, error)
	UpdateStatus(ctx context.Context, reference string, status models.ProofStatus) error
	Delete(ctx context.Context, reference string) error
}
