// Package ledger owns the durable proof store: it opens the local sqlite
// database, applies schema migrations, and exposes the record operations the
// rest of the client uses. No other component opens a second connection to
// the underlying database, and the ledger itself performs no network I/O.
package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/ghostproof/internal/client/migrations"
	"github.com/dmitrijs2005/ghostproof/internal/client/models"
	"github.com/dmitrijs2005/ghostproof/internal/client/repositories/proofs"
	"github.com/dmitrijs2005/ghostproof/internal/common"
	"github.com/pressly/goose/v3"
)

// Ledger is the durable, process-surviving mapping reference -> proof record.
// It satisfies proofs.Repository, so services depend on the interface and
// tests can substitute fakes.
type Ledger struct {
	db   *sql.DB
	repo *proofs.SQLiteRepository
}

// RunMigrations applies the embedded goose migrations. Safe to call more than
// once; already-applied migrations are skipped.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open opens (or creates) the ledger database at dsn and brings the schema up
// to date. Any failure is reported as common.ErrStorageUnavailable; the
// caller treats that as fatal.
func Open(ctx context.Context, dsn string) (*Ledger, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}

	return &Ledger{db: db, repo: proofs.NewSQLiteRepository(db)}, nil
}

// Close releases the underlying database handle.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Save upserts a record keyed by its reference.
func (l *Ledger) Save(ctx context.Context, rec *models.ProofRecord) error {
	return l.repo.Save(ctx, rec)
}

// Get returns the record at reference, or (nil, nil) when absent.
func (l *Ledger) Get(ctx context.Context, reference string) (*models.ProofRecord, error) {
	return l.repo.Get(ctx, reference)
}

// GetAll returns every record ordered by timestamp ascending.
func (l *Ledger) GetAll(ctx context.Context) ([]models.ProofRecord, error) {
	return l.repo.GetAll(ctx)
}

// UpdateStatus rewrites a single record's status. common.ErrNotFound when the
// reference does not exist; the caller must not swallow it.
func (l *Ledger) UpdateStatus(ctx context.Context, reference string, status models.ProofStatus) error {
	return l.repo.UpdateStatus(ctx, reference, status)
}

// Delete removes a record. Deleting a missing reference is a no-op.
func (l *Ledger) Delete(ctx context.Context, reference string) error {
	return l.repo.Delete(ctx, reference)
}
